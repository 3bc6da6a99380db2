package model

import (
	"strings"
	"time"
)

type Side string
type EventType string
type MediaType string

type Outcome int

const (
	SideA Side = "A"
	SideB Side = "B"

	EventGoal   EventType = "goal"
	EventAssist EventType = "assist"
	EventMVP    EventType = "mvp"

	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
)

const (
	OutcomeDraw Outcome = iota
	OutcomeHomeWin
	OutcomeAwayWin
)

// PlayerLite is the player summary embedded on team and event rows.
type PlayerLite struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Slug     *string `json:"slug"`
	ImageURL *string `json:"image_url"`
	IsPublic *bool   `json:"is_public,omitempty"`
}

type Player struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Nickname    string    `json:"nickname"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	IsPublic    bool      `json:"is_public"`
	CreatedAt   time.Time `json:"created_at"`
}

// Lite projects a stored player onto the embedded summary shape. Empty slug
// and image url become nil.
func (p Player) Lite() PlayerLite {
	public := p.IsPublic
	lite := PlayerLite{ID: p.ID, Name: p.Name, IsPublic: &public}
	if slug := strings.TrimSpace(p.Slug); slug != "" {
		lite.Slug = &slug
	}
	if img := strings.TrimSpace(p.ImageURL); img != "" {
		lite.ImageURL = &img
	}
	return lite
}

type Match struct {
	ID        string    `json:"id"`
	Date      time.Time `json:"date"`
	HomeScore int       `json:"home_score"`
	AwayScore int       `json:"away_score"`
}

func (m Match) Outcome() Outcome {
	switch {
	case m.HomeScore > m.AwayScore:
		return OutcomeHomeWin
	case m.HomeScore < m.AwayScore:
		return OutcomeAwayWin
	}
	return OutcomeDraw
}

// ScoresFor returns the goals scored and conceded by the given side.
func (m Match) ScoresFor(side Side) (scored int, conceded int) {
	if side == SideA {
		return m.HomeScore, m.AwayScore
	}
	return m.AwayScore, m.HomeScore
}

type TeamRow struct {
	MatchID  string      `json:"match_id"`
	Team     Side        `json:"team"`
	PlayerID *string     `json:"player_id"`
	Player   *PlayerLite `json:"players"`
}

type EventRow struct {
	MatchID  string      `json:"match_id"`
	PlayerID string      `json:"player_id"`
	Type     EventType   `json:"type"`
	Value    *int        `json:"value"`
	Player   *PlayerLite `json:"players"`
}

type MatchColumn struct {
	MatchID string `json:"match_id"`
	Title   string `json:"title"`
	Author  string `json:"author"`
	Content string `json:"content"`
}

type GalleryItem struct {
	ID          string    `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	MediaType   MediaType `json:"media_type"`
	PublicURL   string    `json:"public_url"`
	MatchID     *string   `json:"match_id"`
}

type Admin struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Slugify turns a display name into a url-safe slug ("Marko Petrović" -> "marko-petrovic").
func Slugify(name string) string {
	replacer := strings.NewReplacer(
		"č", "c", "ć", "c", "đ", "dj", "š", "s", "ž", "z",
		"Č", "c", "Ć", "c", "Đ", "dj", "Š", "s", "Ž", "z",
	)
	name = strings.ToLower(replacer.Replace(strings.TrimSpace(name)))
	var b strings.Builder
	dash := false
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

func StringPtr(s string) *string { return &s }

func IntPtr(n int) *int { return &n }

func BoolPtr(b bool) *bool { return &b }
