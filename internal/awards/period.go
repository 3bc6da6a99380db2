package awards

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"petak-app/internal/model"
)

type PeriodMode string

const (
	ModeYear  PeriodMode = "year"
	ModeMonth PeriodMode = "month"
)

// Period selects matches by calendar year, or by a month ("01".."12") within a year.
type Period struct {
	Mode  PeriodMode `json:"mode"`
	Year  string     `json:"year"`
	Month string     `json:"month,omitempty"`
}

func YearPeriod(year string) Period {
	return Period{Mode: ModeYear, Year: year}
}

func MonthPeriod(year, month string) Period {
	return Period{Mode: ModeMonth, Year: year, Month: month}
}

func (p Period) Key() string {
	if p.Mode == ModeMonth {
		return p.Year + "-" + p.Month
	}
	return p.Year
}

type YearPeriods struct {
	MonthPeriods []Period `json:"month_periods"`
	YearPeriod   Period   `json:"year_period"`
}

func Pad2(n int) string {
	return fmt.Sprintf("%02d", n)
}

// Pct renders a rate as a rounded percentage ("0.666" -> "67%").
func Pct(rate float64) string {
	return fmt.Sprintf("%d%%", int(math.Round(rate*100)))
}

var monthNames = map[string]string{
	"01": "Januar",
	"02": "Februar",
	"03": "Mart",
	"04": "April",
	"05": "Maj",
	"06": "Jun",
	"07": "Jul",
	"08": "Avgust",
	"09": "Septembar",
	"10": "Oktobar",
	"11": "Novembar",
	"12": "Decembar",
}

func MonthName(month string) string {
	if name, ok := monthNames[month]; ok {
		return name
	}
	return month
}

func PeriodLabel(p Period) string {
	if p.Mode == ModeYear {
		return p.Year + " • Godina"
	}
	return p.Year + " • " + MonthName(p.Month)
}

// bucket returns the calendar year and zero-padded month of a match date in
// the location the time value carries.
func bucket(m model.Match) (string, string) {
	return strconv.Itoa(m.Date.Year()), Pad2(int(m.Date.Month()))
}

func ListYears(matches []model.Match) []string {
	seen := map[int]bool{}
	years := []int{}
	for _, m := range matches {
		y := m.Date.Year()
		if seen[y] {
			continue
		}
		seen[y] = true
		years = append(years, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	out := make([]string, 0, len(years))
	for _, y := range years {
		out = append(out, strconv.Itoa(y))
	}
	return out
}

func ListPeriodsForYear(matches []model.Match, year string) YearPeriods {
	seen := map[string]bool{}
	months := []string{}
	for _, m := range matches {
		y, mo := bucket(m)
		if y != year || seen[mo] {
			continue
		}
		seen[mo] = true
		months = append(months, mo)
	}
	sort.Strings(months)
	periods := make([]Period, 0, len(months))
	for _, mo := range months {
		periods = append(periods, MonthPeriod(year, mo))
	}
	return YearPeriods{MonthPeriods: periods, YearPeriod: YearPeriod(year)}
}

// MatchIDsForPeriod never returns nil; an empty slice means the period has no data.
func MatchIDsForPeriod(matches []model.Match, period Period) []string {
	ids := []string{}
	for _, m := range matches {
		y, mo := bucket(m)
		if y != period.Year {
			continue
		}
		if period.Mode == ModeMonth && mo != period.Month {
			continue
		}
		ids = append(ids, m.ID)
	}
	return ids
}

// AllMatchIDs is the all-time selection.
func AllMatchIDs(matches []model.Match) []string {
	ids := make([]string, 0, len(matches))
	for _, m := range matches {
		ids = append(ids, m.ID)
	}
	return ids
}
