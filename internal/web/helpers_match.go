package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"petak-app/internal/awards"
	"petak-app/internal/model"
)

var errBadPeriod = errors.New("neispravan period")

// periodSelection is a parsed ?mode=&year=&month= query. A nil Period means
// all matches ever played.
type periodSelection struct {
	Period *awards.Period
}

func (p periodSelection) key() string {
	if p.Period == nil {
		return "all"
	}
	return p.Period.Key()
}

func (p periodSelection) matchIDs(matches []model.Match) []string {
	if p.Period == nil {
		return awards.AllMatchIDs(matches)
	}
	return awards.MatchIDsForPeriod(matches, *p.Period)
}

func (p periodSelection) view() PeriodView {
	if p.Period == nil {
		return PeriodView{Mode: "all", Key: "all", Label: "Sva vremena"}
	}
	return PeriodView{
		Mode:  string(p.Period.Mode),
		Year:  p.Period.Year,
		Month: p.Period.Month,
		Key:   p.Period.Key(),
		Label: awards.PeriodLabel(*p.Period),
	}
}

func parsePeriod(r *http.Request) (periodSelection, error) {
	q := r.URL.Query()
	mode := strings.ToLower(strings.TrimSpace(q.Get("mode")))
	year := strings.TrimSpace(q.Get("year"))
	month := strings.TrimSpace(q.Get("month"))

	if year == "" {
		if mode == string(awards.ModeYear) || mode == string(awards.ModeMonth) {
			return periodSelection{}, fmt.Errorf("%w: year is required", errBadPeriod)
		}
		return periodSelection{}, nil
	}
	y, err := strconv.Atoi(year)
	if err != nil || y < 1900 || y > 9999 {
		return periodSelection{}, fmt.Errorf("%w: year %q", errBadPeriod, year)
	}
	if mode == "" {
		mode = string(awards.ModeYear)
		if month != "" {
			mode = string(awards.ModeMonth)
		}
	}
	switch mode {
	case string(awards.ModeYear):
		p := awards.YearPeriod(strconv.Itoa(y))
		return periodSelection{Period: &p}, nil
	case string(awards.ModeMonth):
		m, err := strconv.Atoi(month)
		if err != nil || m < 1 || m > 12 {
			return periodSelection{}, fmt.Errorf("%w: month %q", errBadPeriod, month)
		}
		p := awards.MonthPeriod(strconv.Itoa(y), awards.Pad2(m))
		return periodSelection{Period: &p}, nil
	}
	return periodSelection{}, fmt.Errorf("%w: mode %q", errBadPeriod, mode)
}

// parseAwardOptions applies ?min_eff= and ?min_form= over the configured
// defaults, clamped to a sane range.
func parseAwardOptions(r *http.Request, defaults awards.Options) awards.Options {
	opts := defaults
	opts.MinMatchesEff = parseBoundedInt(r.URL.Query().Get("min_eff"), opts.MinMatchesEff, 1, 50)
	opts.MinMatchesForm = parseBoundedInt(r.URL.Query().Get("min_form"), opts.MinMatchesForm, 1, 50)
	return opts
}

func parseBoundedInt(value string, fallback, min, max int) int {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < min {
		return fallback
	}
	if max > 0 && parsed > max {
		return max
	}
	return parsed
}

// parseMatchDate accepts a full RFC 3339 timestamp or a bare "2006-01-02"
// date, which is read in loc.
func parseMatchDate(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, model.ErrDateRequired
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02", value, loc); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02T15:04", value, loc); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("neispravan datum %q", value)
}

func scoreLine(m model.Match) string {
	return fmt.Sprintf("%d : %d", m.HomeScore, m.AwayScore)
}
