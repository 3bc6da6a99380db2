// Package awards computes the petak trophies (Golden Boot, Assist King, MVP,
// Ironman and the rate-based efficiency awards) over any subset of matches.
//
// Everything here is a pure function of its inputs: callers fetch rows, choose
// a set of match ids (usually through MatchIDsForPeriod) and call ComputeAwards
// as often as they like.
package awards

import (
	"fmt"

	"petak-app/internal/model"
)

// DefaultMinMatches is the appearance threshold for rate-based awards.
const DefaultMinMatches = 3

type Options struct {
	MinMatchesEff  int
	MinMatchesForm int
}

// WithDefaults replaces unset thresholds with DefaultMinMatches.
func (o Options) WithDefaults() Options {
	if o.MinMatchesEff <= 0 {
		o.MinMatchesEff = DefaultMinMatches
	}
	if o.MinMatchesForm <= 0 {
		o.MinMatchesForm = DefaultMinMatches
	}
	return o
}

type Input struct {
	Matches  []model.Match
	Events   []model.EventRow
	Teams    []model.TeamRow
	MatchIDs []string
}

type Awards struct {
	Goals       MaxAward `json:"goals"`
	Assists     MaxAward `json:"assists"`
	MVPs        MaxAward `json:"mvps"`
	Ironman     MaxAward `json:"ironman"`
	GA          MaxAward `json:"ga"`
	GoalRate    MaxAward `json:"goalRate"`
	AssistRate  MaxAward `json:"assistRate"`
	MVPRate     MaxAward `json:"mvpRate"`
	Form        MaxAward `json:"form"`
	LeastLosses MinAward `json:"leastLosses"`
	Stub        MinAward `json:"stub"`
}

func ComputeAwards(in Input, opts Options) Awards {
	opts = opts.WithDefaults()
	ids := NewIDSet(in.MatchIDs)
	c := NameCollator()

	goals, assists, mvps := eventTotals(in.Events, ids)
	stats := ComputePlayerStats(in.Matches, in.Events, in.Teams, ids)

	var ironman, ga, goalRate, assistRate, mvpRate, form, leastLosses, stub []Winner
	for _, p := range stats {
		ironman = append(ironman, Winner{Identity: p.Identity, Value: float64(p.Played), Extra: fmt.Sprintf("%d meča", p.Played)})
		ga = append(ga, Winner{Identity: p.Identity, Value: float64(p.Goals + p.Assists), Extra: fmt.Sprintf("%dG • %dA", p.Goals, p.Assists)})

		if p.Played >= opts.MinMatchesEff {
			goalRate = append(goalRate, Winner{Identity: p.Identity, Value: rate(p.Goals, p.Played), Extra: fmt.Sprintf("%dG / %d meča", p.Goals, p.Played)})
			assistRate = append(assistRate, Winner{Identity: p.Identity, Value: rate(p.Assists, p.Played), Extra: fmt.Sprintf("%dA / %d meča", p.Assists, p.Played)})
			mvpRate = append(mvpRate, Winner{Identity: p.Identity, Value: rate(p.MVPs, p.Played), Extra: fmt.Sprintf("%d MVP / %d meča", p.MVPs, p.Played)})
			leastLosses = append(leastLosses, Winner{Identity: p.Identity, Value: float64(p.Losses), Extra: fmt.Sprintf("%d poraza • %d-%d-%d", p.Losses, p.Wins, p.Draws, p.Losses)})
			stub = append(stub, Winner{Identity: p.Identity, Value: float64(p.Conceded), Extra: fmt.Sprintf("%d primljenih • %d meča", p.Conceded, p.Played)})
		}
		if p.Played >= opts.MinMatchesForm {
			r := rate(p.Wins, p.Played)
			form = append(form, Winner{Identity: p.Identity, Value: r, Extra: fmt.Sprintf("%s • %d/%d pobeda", Pct(r), p.Wins, p.Played)})
		}
	}

	return Awards{
		Goals:       WinnersByMax(goals, c),
		Assists:     WinnersByMax(assists, c),
		MVPs:        WinnersByMax(mvps, c),
		Ironman:     WinnersByMax(ironman, c),
		GA:          WinnersByMax(ga, c),
		GoalRate:    WinnersByMax(goalRate, c),
		AssistRate:  WinnersByMax(assistRate, c),
		MVPRate:     WinnersByMax(mvpRate, c),
		Form:        WinnersByMax(form, c),
		LeastLosses: WinnersByMin(leastLosses, c),
		Stub:        WinnersByMin(stub, c),
	}
}

// eventTotals sums the raw goal, assist and mvp events per visible player.
func eventTotals(events []model.EventRow, ids IDSet) (goals, assists, mvps []Winner) {
	type totals struct {
		index map[string]int
		list  []Winner
	}
	add := func(t *totals, playerID string, p *model.PlayerLite, v int) {
		if playerID == "" {
			playerID = p.ID
		}
		i, ok := t.index[playerID]
		if !ok {
			i = len(t.list)
			t.index[playerID] = i
			t.list = append(t.list, Winner{Identity: IdentityOf(p)})
		}
		t.list[i].Value += float64(v)
	}
	g := &totals{index: map[string]int{}}
	a := &totals{index: map[string]int{}}
	m := &totals{index: map[string]int{}}
	for _, e := range events {
		if !ids.Has(e.MatchID) || !Visible(e.Player) {
			continue
		}
		switch e.Type {
		case model.EventGoal:
			add(g, e.PlayerID, e.Player, eventValue(e))
		case model.EventAssist:
			add(a, e.PlayerID, e.Player, eventValue(e))
		case model.EventMVP:
			add(m, e.PlayerID, e.Player, 1)
		}
	}
	return g.list, a.list, m.list
}

func rate(n, played int) float64 {
	if played == 0 {
		return 0
	}
	return float64(n) / float64(played)
}
