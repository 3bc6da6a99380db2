package web

import (
	"time"

	"petak-app/internal/awards"
	"petak-app/internal/model"
)

type PeriodView struct {
	Mode  string `json:"mode"`
	Year  string `json:"year,omitempty"`
	Month string `json:"month,omitempty"`
	Key   string `json:"key"`
	Label string `json:"label"`
}

type OptionsView struct {
	MinMatchesEff  int `json:"min_eff"`
	MinMatchesForm int `json:"min_form"`
}

type AwardsView struct {
	Period     PeriodView    `json:"period"`
	MatchCount int           `json:"match_count"`
	Options    OptionsView   `json:"options"`
	Awards     awards.Awards `json:"awards"`
}

type HistoryView struct {
	Year    string              `json:"year"`
	Options OptionsView         `json:"options"`
	Cards   []awards.PeriodCard `json:"cards"`
}

type DominanceView struct {
	Period  PeriodView              `json:"period"`
	MinWins int                     `json:"min_wins"`
	Players []awards.DominanceEntry `json:"players"`
}

type PeriodsView struct {
	Year       string       `json:"year"`
	YearPeriod PeriodView   `json:"year_period"`
	Months     []PeriodView `json:"months"`
}

type StandingEntry struct {
	Rank    int             `json:"rank"`
	Player  awards.Identity `json:"player"`
	Played  int             `json:"played"`
	Wins    int             `json:"wins"`
	Draws   int             `json:"draws"`
	Losses  int             `json:"losses"`
	Goals   int             `json:"goals"`
	Assists int             `json:"assists"`
	MVPs    int             `json:"mvps"`
	Points  int             `json:"points"`
}

type StandingsView struct {
	Period    PeriodView      `json:"period"`
	Standings []StandingEntry `json:"standings"`
}

type RivalriesView struct {
	Period    PeriodView       `json:"period"`
	Mode      string           `json:"mode"`
	MinDuels  int              `json:"min_duels"`
	Rivalries []awards.Rivalry `json:"rivalries"`
}

type MatchSummary struct {
	ID        string    `json:"id"`
	Date      time.Time `json:"date"`
	DateLabel string    `json:"date_label"`
	HomeScore int       `json:"home_score"`
	AwayScore int       `json:"away_score"`
	ScoreLine string    `json:"score_line"`
	HasColumn bool      `json:"has_column"`
}

type MatchesListView struct {
	Items      []MatchSummary `json:"items"`
	Total      int            `json:"total"`
	Page       int            `json:"page"`
	TotalPages int            `json:"total_pages"`
	HasPrev    bool           `json:"has_prev"`
	HasNext    bool           `json:"has_next"`
	PrevPage   int            `json:"prev_page,omitempty"`
	NextPage   int            `json:"next_page,omitempty"`
}

type ContributionView struct {
	Player awards.Identity `json:"player"`
	Value  int             `json:"value"`
}

type MatchDetailView struct {
	Match   MatchSummary        `json:"match"`
	TeamA   []awards.Identity   `json:"team_a"`
	TeamB   []awards.Identity   `json:"team_b"`
	Goals   []ContributionView  `json:"goals"`
	Assists []ContributionView  `json:"assists"`
	MVP     *awards.Identity    `json:"mvp"`
	Column  *model.MatchColumn  `json:"column"`
	Gallery []model.GalleryItem `json:"gallery"`
}

type PlayerCard struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Nickname    string `json:"nickname,omitempty"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
}

type PlayerYearView struct {
	Year  string             `json:"year"`
	Stats awards.PlayerStats `json:"stats"`
}

type PlayerProfileView struct {
	Player  PlayerCard         `json:"player"`
	AllTime awards.PlayerStats `json:"all_time"`
	ByYear  []PlayerYearView   `json:"by_year"`
}

type AdminView struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}
