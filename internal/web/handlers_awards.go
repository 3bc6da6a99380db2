package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"petak-app/internal/awards"
	"petak-app/internal/metrics"
)

func (s *Server) loadInput() (awards.Input, error) {
	matches, err := s.store.ListMatches()
	if err != nil {
		return awards.Input{}, err
	}
	events, err := s.store.ListEventRows()
	if err != nil {
		return awards.Input{}, err
	}
	teams, err := s.store.ListTeamRows()
	if err != nil {
		return awards.Input{}, err
	}
	return awards.Input{Matches: matches, Events: events, Teams: teams}, nil
}

// cachedJSON serves key from the snapshot cache, or builds, stores and
// serves it on a miss. The snapshot is stored under the generation seen
// before build read any rows; failed builds are never stored.
func (s *Server) cachedJSON(w http.ResponseWriter, r *http.Request, key string, build func() (any, error)) {
	body, gen, ok := s.cache.Get(r.Context(), key)
	if ok {
		w.Header().Set("X-Cache", "hit")
		writeRawJSON(w, http.StatusOK, body)
		return
	}
	view, err := build()
	if err != nil {
		s.writeStoreError(w, err, "build snapshot")
		return
	}
	body, err = json.Marshal(view)
	if err != nil {
		s.log.WithError(err).WithField("key", key).Error("marshal snapshot")
		writeError(w, http.StatusInternalServerError, "")
		return
	}
	s.cache.Set(r.Context(), gen, key, body)
	w.Header().Set("X-Cache", "miss")
	writeRawJSON(w, http.StatusOK, body)
}

func optionsView(opts awards.Options) OptionsView {
	return OptionsView{MinMatchesEff: opts.MinMatchesEff, MinMatchesForm: opts.MinMatchesForm}
}

func (s *Server) handleYears(w http.ResponseWriter, r *http.Request) {
	matches, err := s.store.ListMatches()
	if err != nil {
		s.writeStoreError(w, err, "list matches")
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"years": awards.ListYears(matches)})
}

// resolveYear returns ?year= or, when absent, the most recent year with matches.
func resolveYear(r *http.Request, years []string) string {
	if year := strings.TrimSpace(r.URL.Query().Get("year")); year != "" {
		return year
	}
	if len(years) > 0 {
		return years[0]
	}
	return ""
}

func (s *Server) handlePeriods(w http.ResponseWriter, r *http.Request) {
	matches, err := s.store.ListMatches()
	if err != nil {
		s.writeStoreError(w, err, "list matches")
		return
	}
	year := resolveYear(r, awards.ListYears(matches))
	view := PeriodsView{Year: year, Months: []PeriodView{}}
	if year == "" {
		writeJSON(w, http.StatusOK, view)
		return
	}
	periods := awards.ListPeriodsForYear(matches, year)
	yp := periods.YearPeriod
	view.YearPeriod = periodSelection{Period: &yp}.view()
	for i := range periods.MonthPeriods {
		view.Months = append(view.Months, periodSelection{Period: &periods.MonthPeriods[i]}.view())
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleAwards(w http.ResponseWriter, r *http.Request) {
	sel, err := parsePeriod(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, adminMessage(err))
		return
	}
	opts := parseAwardOptions(r, s.awardOpts)
	key := fmt.Sprintf("awards:%s:%d:%d", sel.key(), opts.MinMatchesEff, opts.MinMatchesForm)

	s.cachedJSON(w, r, key, func() (any, error) {
		in, err := s.loadInput()
		if err != nil {
			return nil, err
		}
		in.MatchIDs = sel.matchIDs(in.Matches)
		period := sel.view()
		metrics.AwardsComputed.WithLabelValues(period.Mode).Inc()
		return AwardsView{
			Period:     period,
			MatchCount: len(in.MatchIDs),
			Options:    optionsView(opts),
			Awards:     awards.ComputeAwards(in, opts),
		}, nil
	})
}

func (s *Server) handleAwardsHistory(w http.ResponseWriter, r *http.Request) {
	opts := parseAwardOptions(r, s.awardOpts)
	matches, err := s.store.ListMatches()
	if err != nil {
		s.writeStoreError(w, err, "list matches")
		return
	}
	year := resolveYear(r, awards.ListYears(matches))
	key := fmt.Sprintf("history:%s:%d:%d", year, opts.MinMatchesEff, opts.MinMatchesForm)

	s.cachedJSON(w, r, key, func() (any, error) {
		cards := []awards.PeriodCard{}
		if year != "" {
			in, err := s.loadInput()
			if err != nil {
				return nil, err
			}
			cards = awards.History(in, year, opts)
		}
		metrics.AwardsComputed.WithLabelValues("history").Inc()
		return HistoryView{Year: year, Options: optionsView(opts), Cards: cards}, nil
	})
}

func (s *Server) handleDominance(w http.ResponseWriter, r *http.Request) {
	sel, err := parsePeriod(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, adminMessage(err))
		return
	}
	opts := parseAwardOptions(r, s.awardOpts)
	minWins := parseBoundedInt(r.URL.Query().Get("min_wins"), awards.DefaultMinDominance, 1, 8)

	in, err := s.loadInput()
	if err != nil {
		s.writeStoreError(w, err, "load awards input")
		return
	}
	in.MatchIDs = sel.matchIDs(in.Matches)
	writeJSON(w, http.StatusOK, DominanceView{
		Period:  sel.view(),
		MinWins: minWins,
		Players: awards.Dominance(awards.ComputeAwards(in, opts), minWins),
	})
}

func (s *Server) handleStandings(w http.ResponseWriter, r *http.Request) {
	sel, err := parsePeriod(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, adminMessage(err))
		return
	}
	in, err := s.loadInput()
	if err != nil {
		s.writeStoreError(w, err, "load awards input")
		return
	}
	ids := awards.NewIDSet(sel.matchIDs(in.Matches))
	stats := awards.ComputePlayerStats(in.Matches, in.Events, in.Teams, ids)
	writeJSON(w, http.StatusOK, StandingsView{Period: sel.view(), Standings: BuildStandings(stats)})
}

func (s *Server) handleRivalries(w http.ResponseWriter, r *http.Request) {
	sel, err := parsePeriod(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, adminMessage(err))
		return
	}
	q := r.URL.Query()
	mode := awards.RivalryMode(strings.ToLower(strings.TrimSpace(q.Get("mode"))))
	if mode == "" {
		mode = awards.RivalryNemesis
	}
	if mode != awards.RivalryNemesis && mode != awards.RivalryDomination {
		writeError(w, http.StatusBadRequest, "Nepoznat režim rivalstva.")
		return
	}
	minDuels := parseBoundedInt(q.Get("min_duels"), 3, 1, 100)
	limit := parseBoundedInt(q.Get("limit"), 20, 1, 200)

	matches, err := s.store.ListMatches()
	if err != nil {
		s.writeStoreError(w, err, "list matches")
		return
	}
	teams, err := s.store.ListTeamRows()
	if err != nil {
		s.writeStoreError(w, err, "list team rows")
		return
	}
	rows := awards.ComputeRivalries(matches, teams, awards.NewIDSet(sel.matchIDs(matches)))
	if slug := strings.TrimSpace(q.Get("player")); slug != "" {
		filtered := rows[:0]
		for _, row := range rows {
			if row.Player.Slug != nil && *row.Player.Slug == slug {
				filtered = append(filtered, row)
			}
		}
		rows = filtered
	}
	writeJSON(w, http.StatusOK, RivalriesView{
		Period:    sel.view(),
		Mode:      string(mode),
		MinDuels:  minDuels,
		Rivalries: awards.SortRivalries(rows, mode, minDuels, limit),
	})
}
