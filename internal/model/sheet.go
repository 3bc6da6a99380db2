package model

import (
	"errors"
	"strings"
	"time"
)

// TeamSize is the number of players each side fields in a petak match.
const TeamSize = 5

var (
	ErrDateRequired       = errors.New("match date is required")
	ErrNegativeScore      = errors.New("score cannot be negative")
	ErrTeamSize           = errors.New("each side needs exactly 5 players")
	ErrDuplicatePlayer    = errors.New("player listed more than once")
	ErrMVPNotInTeams      = errors.New("mvp must play for one of the sides")
	ErrScorerNotInTeams   = errors.New("goal scorer must play for one of the sides")
	ErrAssisterNotInTeams = errors.New("assist provider must play for one of the sides")
	ErrContributionValue  = errors.New("goals and assists must be at least 1")
)

type Contribution struct {
	PlayerID string `json:"player_id"`
	Value    int    `json:"value"`
}

// MatchSheet is everything the admin editor submits for one match.
type MatchSheet struct {
	Match   Match          `json:"match"`
	TeamA   []string       `json:"team_a"`
	TeamB   []string       `json:"team_b"`
	Goals   []Contribution `json:"goals"`
	Assists []Contribution `json:"assists"`
	MVP     string         `json:"mvp"`
	Column  *MatchColumn   `json:"column"`
}

func (s MatchSheet) Validate() error {
	if s.Match.Date.IsZero() {
		return ErrDateRequired
	}
	if s.Match.HomeScore < 0 || s.Match.AwayScore < 0 {
		return ErrNegativeScore
	}
	if len(s.TeamA) != TeamSize || len(s.TeamB) != TeamSize {
		return ErrTeamSize
	}
	eligible := make(map[string]bool, 2*TeamSize)
	for _, id := range append(append([]string{}, s.TeamA...), s.TeamB...) {
		id = strings.TrimSpace(id)
		if id == "" {
			return ErrTeamSize
		}
		if eligible[id] {
			return ErrDuplicatePlayer
		}
		eligible[id] = true
	}
	if mvp := strings.TrimSpace(s.MVP); mvp != "" && !eligible[mvp] {
		return ErrMVPNotInTeams
	}
	for _, g := range s.Goals {
		if !eligible[strings.TrimSpace(g.PlayerID)] {
			return ErrScorerNotInTeams
		}
		if g.Value < 1 {
			return ErrContributionValue
		}
	}
	for _, a := range s.Assists {
		if !eligible[strings.TrimSpace(a.PlayerID)] {
			return ErrAssisterNotInTeams
		}
		if a.Value < 1 {
			return ErrContributionValue
		}
	}
	return nil
}

func (s MatchSheet) TeamRows(matchID string) []TeamRow {
	rows := make([]TeamRow, 0, len(s.TeamA)+len(s.TeamB))
	for _, id := range s.TeamA {
		rows = append(rows, TeamRow{MatchID: matchID, Team: SideA, PlayerID: StringPtr(strings.TrimSpace(id))})
	}
	for _, id := range s.TeamB {
		rows = append(rows, TeamRow{MatchID: matchID, Team: SideB, PlayerID: StringPtr(strings.TrimSpace(id))})
	}
	return rows
}

func (s MatchSheet) EventRows(matchID string) []EventRow {
	rows := make([]EventRow, 0, len(s.Goals)+len(s.Assists)+1)
	for _, g := range s.Goals {
		rows = append(rows, EventRow{MatchID: matchID, PlayerID: strings.TrimSpace(g.PlayerID), Type: EventGoal, Value: IntPtr(g.Value)})
	}
	for _, a := range s.Assists {
		rows = append(rows, EventRow{MatchID: matchID, PlayerID: strings.TrimSpace(a.PlayerID), Type: EventAssist, Value: IntPtr(a.Value)})
	}
	if mvp := strings.TrimSpace(s.MVP); mvp != "" {
		rows = append(rows, EventRow{MatchID: matchID, PlayerID: mvp, Type: EventMVP, Value: IntPtr(1)})
	}
	return rows
}

// NormalizedColumn returns the column to persist, or nil when the sheet
// carries no report. Missing title and author get the site defaults.
func (s MatchSheet) NormalizedColumn(matchID string) *MatchColumn {
	if s.Column == nil {
		return nil
	}
	title := strings.TrimSpace(s.Column.Title)
	content := strings.TrimSpace(s.Column.Content)
	if title == "" && content == "" {
		return nil
	}
	if title == "" {
		title = "Miljanov ugao"
	}
	author := strings.TrimSpace(s.Column.Author)
	if author == "" {
		author = "Miljan"
	}
	return &MatchColumn{MatchID: matchID, Title: title, Author: author, Content: content}
}

// NormalizeMatchDate pins date-only input to noon so it cannot slip into the
// neighbouring day when converted between timezones.
func NormalizeMatchDate(t time.Time) time.Time {
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, t.Location())
	}
	return t
}
