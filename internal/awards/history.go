package awards

type PeriodCard struct {
	Period     Period `json:"period"`
	Label      string `json:"label"`
	MatchCount int    `json:"match_count"`
	Awards     Awards `json:"awards"`
}

// History builds one award card per period of the year that has matches: the
// whole-year card first, then months in calendar order. Empty periods are skipped.
func History(in Input, year string, opts Options) []PeriodCard {
	periods := ListPeriodsForYear(in.Matches, year)
	all := append([]Period{periods.YearPeriod}, periods.MonthPeriods...)

	cards := []PeriodCard{}
	for _, p := range all {
		ids := MatchIDsForPeriod(in.Matches, p)
		if len(ids) == 0 {
			continue
		}
		scoped := in
		scoped.MatchIDs = ids
		cards = append(cards, PeriodCard{
			Period:     p,
			Label:      PeriodLabel(p),
			MatchCount: len(ids),
			Awards:     ComputeAwards(scoped, opts),
		})
	}
	return cards
}
