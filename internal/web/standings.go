package web

import (
	"sort"

	"petak-app/internal/awards"
)

const (
	pointsPerWin  = 3
	pointsPerDraw = 1
)

// BuildStandings turns aggregated player stats into the league table: three
// points per win, one per draw, then goal involvement, then name.
func BuildStandings(stats []awards.PlayerStats) []StandingEntry {
	standings := make([]StandingEntry, 0, len(stats))
	for _, s := range stats {
		if s.Played == 0 {
			continue
		}
		standings = append(standings, StandingEntry{
			Player:  s.Identity,
			Played:  s.Played,
			Wins:    s.Wins,
			Draws:   s.Draws,
			Losses:  s.Losses,
			Goals:   s.Goals,
			Assists: s.Assists,
			MVPs:    s.MVPs,
			Points:  s.Wins*pointsPerWin + s.Draws*pointsPerDraw,
		})
	}

	c := awards.NameCollator()
	sort.SliceStable(standings, func(i, j int) bool {
		a, b := standings[i], standings[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.Goals+a.Assists != b.Goals+b.Assists {
			return a.Goals+a.Assists > b.Goals+b.Assists
		}
		if cmp := c.CompareString(a.Player.Name, b.Player.Name); cmp != 0 {
			return cmp < 0
		}
		return a.Player.ID < b.Player.ID
	})
	for i := range standings {
		standings[i].Rank = i + 1
	}
	return standings
}
