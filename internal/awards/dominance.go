package awards

import "sort"

// DefaultMinDominance is the number of categories a player must win to be listed.
const DefaultMinDominance = 2

type DominanceEntry struct {
	Identity
	Count      int      `json:"count"`
	Categories []string `json:"categories"`
}

// Dominance counts, per player, how many of the discrete categories (every
// category except the three per-match rates) list them as a winner.
func Dominance(a Awards, minWins int) []DominanceEntry {
	if minWins <= 0 {
		minWins = DefaultMinDominance
	}
	categories := []struct {
		name    string
		winners []Winner
	}{
		{"goals", a.Goals.Winners},
		{"assists", a.Assists.Winners},
		{"mvps", a.MVPs.Winners},
		{"ironman", a.Ironman.Winners},
		{"ga", a.GA.Winners},
		{"form", a.Form.Winners},
		{"leastLosses", a.LeastLosses.Winners},
		{"stub", a.Stub.Winners},
	}

	index := map[string]int{}
	entries := []DominanceEntry{}
	for _, cat := range categories {
		for _, w := range cat.winners {
			i, ok := index[w.ID]
			if !ok {
				i = len(entries)
				index[w.ID] = i
				entries = append(entries, DominanceEntry{Identity: w.Identity})
			}
			entries[i].Count++
			entries[i].Categories = append(entries[i].Categories, cat.name)
		}
	}

	out := []DominanceEntry{}
	for _, e := range entries {
		if e.Count >= minWins {
			out = append(out, e)
		}
	}
	c := NameCollator()
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		if cmp := c.CompareString(out[i].Name, out[j].Name); cmp != 0 {
			return cmp < 0
		}
		return out[i].ID < out[j].ID
	})
	return out
}
