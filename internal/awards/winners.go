package awards

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Winner is a player holding the winning value of an award category.
type Winner struct {
	Identity
	Value float64 `json:"value"`
	Extra string  `json:"extra,omitempty"`
}

type MaxAward struct {
	Max     float64  `json:"max"`
	Winners []Winner `json:"winners"`
}

type MinAward struct {
	Min     float64  `json:"min"`
	Winners []Winner `json:"winners"`
}

var nameLocale = language.MustParse("sr-Latn")

// NameCollator returns a collator for display-name ordering. Collators keep
// internal buffers, so each computation gets its own.
func NameCollator() *collate.Collator {
	return collate.New(nameLocale)
}

// WinnersByMax keeps every candidate sharing the highest value.
func WinnersByMax(candidates []Winner, c *collate.Collator) MaxAward {
	if len(candidates) == 0 {
		return MaxAward{Winners: []Winner{}}
	}
	best := candidates[0].Value
	for _, w := range candidates[1:] {
		if w.Value > best {
			best = w.Value
		}
	}
	return MaxAward{Max: best, Winners: tieSet(candidates, best, c)}
}

// WinnersByMin keeps every candidate sharing the lowest value.
func WinnersByMin(candidates []Winner, c *collate.Collator) MinAward {
	if len(candidates) == 0 {
		return MinAward{Winners: []Winner{}}
	}
	best := candidates[0].Value
	for _, w := range candidates[1:] {
		if w.Value < best {
			best = w.Value
		}
	}
	return MinAward{Min: best, Winners: tieSet(candidates, best, c)}
}

func tieSet(candidates []Winner, value float64, c *collate.Collator) []Winner {
	winners := []Winner{}
	for _, w := range candidates {
		if w.Value == value {
			winners = append(winners, w)
		}
	}
	sortByName(winners, c)
	return winners
}

func sortByName(winners []Winner, c *collate.Collator) {
	sort.SliceStable(winners, func(i, j int) bool {
		if cmp := c.CompareString(winners[i].Name, winners[j].Name); cmp != 0 {
			return cmp < 0
		}
		return winners[i].ID < winners[j].ID
	})
}
