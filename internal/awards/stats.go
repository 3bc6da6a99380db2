package awards

import "petak-app/internal/model"

// IDSet is a set of match ids.
type IDSet map[string]struct{}

func NewIDSet(ids []string) IDSet {
	set := make(IDSet, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func (s IDSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Visible is the privacy filter shared by every aggregation: rows without an
// embedded player, or with a player explicitly marked non-public, never count.
func Visible(p *model.PlayerLite) bool {
	if p == nil {
		return false
	}
	if p.IsPublic != nil && !*p.IsPublic {
		return false
	}
	return true
}

// Identity is the public part of a player summary carried on every result.
type Identity struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Slug     *string `json:"slug"`
	ImageURL *string `json:"image_url"`
}

func IdentityOf(p *model.PlayerLite) Identity {
	return Identity{ID: p.ID, Name: p.Name, Slug: p.Slug, ImageURL: p.ImageURL}
}

type PlayerStats struct {
	Identity
	Played   int `json:"played"`
	Wins     int `json:"wins"`
	Draws    int `json:"draws"`
	Losses   int `json:"losses"`
	Goals    int `json:"goals"`
	Assists  int `json:"assists"`
	MVPs     int `json:"mvps"`
	Conceded int `json:"conceded"`
}

// eventValue applies the "missing value counts as one" rule at read time.
func eventValue(e model.EventRow) int {
	if e.Value == nil {
		return 1
	}
	return *e.Value
}

// ComputePlayerStats folds team and event rows of the selected matches into one
// record per visible player. Records come back in first-seen order.
func ComputePlayerStats(matches []model.Match, events []model.EventRow, teams []model.TeamRow, matchIDs IDSet) []PlayerStats {
	matchByID := make(map[string]model.Match, len(matchIDs))
	for _, m := range matches {
		if matchIDs.Has(m.ID) {
			matchByID[m.ID] = m
		}
	}

	index := map[string]int{}
	stats := []PlayerStats{}
	ensure := func(playerID string, p *model.PlayerLite) *PlayerStats {
		if playerID == "" {
			playerID = p.ID
		}
		if i, ok := index[playerID]; ok {
			return &stats[i]
		}
		index[playerID] = len(stats)
		stats = append(stats, PlayerStats{Identity: IdentityOf(p)})
		return &stats[len(stats)-1]
	}

	for _, tr := range teams {
		if tr.PlayerID == nil || *tr.PlayerID == "" {
			continue
		}
		if !matchIDs.Has(tr.MatchID) || !Visible(tr.Player) {
			continue
		}
		m, ok := matchByID[tr.MatchID]
		if !ok {
			continue
		}
		cur := ensure(*tr.PlayerID, tr.Player)
		cur.Played++
		scored, conceded := m.ScoresFor(tr.Team)
		cur.Conceded += conceded
		switch {
		case scored > conceded:
			cur.Wins++
		case scored < conceded:
			cur.Losses++
		default:
			cur.Draws++
		}
	}

	for _, e := range events {
		if !matchIDs.Has(e.MatchID) || !Visible(e.Player) {
			continue
		}
		cur := ensure(e.PlayerID, e.Player)
		switch e.Type {
		case model.EventGoal:
			cur.Goals += eventValue(e)
		case model.EventAssist:
			cur.Assists += eventValue(e)
		case model.EventMVP:
			cur.MVPs++
		}
	}

	return stats
}
