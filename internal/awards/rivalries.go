package awards

import (
	"sort"

	"petak-app/internal/model"
)

type RivalryMode string

const (
	RivalryNemesis    RivalryMode = "nemesis"
	RivalryDomination RivalryMode = "domination"
)

// Rivalry is the head-to-head record of Player against Opponent, counted over
// matches where they lined up on opposite sides.
type Rivalry struct {
	Player   Identity `json:"player"`
	Opponent Identity `json:"opponent"`
	Duels    int      `json:"duels"`
	Wins     int      `json:"wins"`
	Losses   int      `json:"losses"`
	Draws    int      `json:"draws"`
	GoalDiff int      `json:"goal_diff"`
	Net      int      `json:"net"`
}

func ComputeRivalries(matches []model.Match, teams []model.TeamRow, matchIDs IDSet) []Rivalry {
	matchByID := make(map[string]model.Match, len(matchIDs))
	for _, m := range matches {
		if matchIDs.Has(m.ID) {
			matchByID[m.ID] = m
		}
	}

	type lineup struct {
		a, b []model.TeamRow
	}
	lineups := map[string]*lineup{}
	order := []string{}
	for _, tr := range teams {
		if tr.PlayerID == nil || *tr.PlayerID == "" || !Visible(tr.Player) {
			continue
		}
		if _, ok := matchByID[tr.MatchID]; !ok {
			continue
		}
		l, ok := lineups[tr.MatchID]
		if !ok {
			l = &lineup{}
			lineups[tr.MatchID] = l
			order = append(order, tr.MatchID)
		}
		if tr.Team == model.SideA {
			l.a = append(l.a, tr)
		} else {
			l.b = append(l.b, tr)
		}
	}

	index := map[[2]string]int{}
	rows := []Rivalry{}
	record := func(p, o model.TeamRow, m model.Match) {
		key := [2]string{*p.PlayerID, *o.PlayerID}
		if key[0] == key[1] {
			return
		}
		i, ok := index[key]
		if !ok {
			i = len(rows)
			index[key] = i
			rows = append(rows, Rivalry{Player: IdentityOf(p.Player), Opponent: IdentityOf(o.Player)})
		}
		scored, conceded := m.ScoresFor(p.Team)
		r := &rows[i]
		r.Duels++
		r.GoalDiff += scored - conceded
		switch {
		case scored > conceded:
			r.Wins++
		case scored < conceded:
			r.Losses++
		default:
			r.Draws++
		}
		r.Net = r.Wins - r.Losses
	}

	for _, matchID := range order {
		l := lineups[matchID]
		m := matchByID[matchID]
		for _, pa := range l.a {
			for _, pb := range l.b {
				record(pa, pb, m)
				record(pb, pa, m)
			}
		}
	}
	return rows
}

// SortRivalries filters to pairs with at least minDuels meetings and orders
// them worst-first (nemesis) or best-first (domination) by net, then goal
// difference. limit <= 0 keeps everything.
func SortRivalries(rows []Rivalry, mode RivalryMode, minDuels int, limit int) []Rivalry {
	out := []Rivalry{}
	for _, r := range rows {
		if r.Duels >= minDuels {
			out = append(out, r)
		}
	}
	c := NameCollator()
	sort.SliceStable(out, func(i, j int) bool {
		x, y := out[i], out[j]
		if x.Net != y.Net {
			if mode == RivalryDomination {
				return x.Net > y.Net
			}
			return x.Net < y.Net
		}
		if x.GoalDiff != y.GoalDiff {
			if mode == RivalryDomination {
				return x.GoalDiff > y.GoalDiff
			}
			return x.GoalDiff < y.GoalDiff
		}
		if cmp := c.CompareString(x.Player.Name, y.Player.Name); cmp != 0 {
			return cmp < 0
		}
		return c.CompareString(x.Opponent.Name, y.Opponent.Name) < 0
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
