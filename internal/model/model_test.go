package model

import (
	"errors"
	"testing"
	"time"
)

func validSheet() MatchSheet {
	return MatchSheet{
		Match:   Match{Date: time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), HomeScore: 2, AwayScore: 1},
		TeamA:   []string{"a1", "a2", "a3", "a4", "a5"},
		TeamB:   []string{"b1", "b2", "b3", "b4", "b5"},
		Goals:   []Contribution{{PlayerID: "a1", Value: 2}, {PlayerID: "b2", Value: 1}},
		Assists: []Contribution{{PlayerID: "a3", Value: 1}},
		MVP:     "a1",
	}
}

func TestMatchSheet_Validate(t *testing.T) {
	if err := validSheet().Validate(); err != nil {
		t.Fatalf("valid sheet rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*MatchSheet)
		want   error
	}{
		{"no date", func(s *MatchSheet) { s.Match.Date = time.Time{} }, ErrDateRequired},
		{"negative score", func(s *MatchSheet) { s.Match.AwayScore = -1 }, ErrNegativeScore},
		{"short team", func(s *MatchSheet) { s.TeamB = s.TeamB[:4] }, ErrTeamSize},
		{"blank slot", func(s *MatchSheet) { s.TeamA[2] = " " }, ErrTeamSize},
		{"same player twice", func(s *MatchSheet) { s.TeamB[0] = "a1" }, ErrDuplicatePlayer},
		{"mvp outside", func(s *MatchSheet) { s.MVP = "x" }, ErrMVPNotInTeams},
		{"scorer outside", func(s *MatchSheet) { s.Goals[0].PlayerID = "x" }, ErrScorerNotInTeams},
		{"assister outside", func(s *MatchSheet) { s.Assists[0].PlayerID = "x" }, ErrAssisterNotInTeams},
		{"zero goals", func(s *MatchSheet) { s.Goals[1].Value = 0 }, ErrContributionValue},
	}
	for _, tc := range cases {
		sheet := validSheet()
		tc.mutate(&sheet)
		if err := sheet.Validate(); !errors.Is(err, tc.want) {
			t.Errorf("%s: got %v, want %v", tc.name, err, tc.want)
		}
	}
}

func TestMatchSheet_Rows(t *testing.T) {
	sheet := validSheet()
	teams := sheet.TeamRows("m1")
	if len(teams) != 10 || teams[0].Team != SideA || teams[9].Team != SideB || *teams[9].PlayerID != "b5" {
		t.Errorf("unexpected team rows %+v", teams)
	}
	events := sheet.EventRows("m1")
	if len(events) != 4 {
		t.Fatalf("expected 2 goals, 1 assist and the mvp, got %d rows", len(events))
	}
	if last := events[3]; last.Type != EventMVP || *last.Value != 1 || last.PlayerID != "a1" {
		t.Errorf("unexpected mvp row %+v", last)
	}
}

func TestMatchSheet_NormalizedColumn(t *testing.T) {
	sheet := validSheet()
	if sheet.NormalizedColumn("m1") != nil {
		t.Errorf("expected nil column when none is given")
	}
	sheet.Column = &MatchColumn{Title: "  ", Content: " "}
	if sheet.NormalizedColumn("m1") != nil {
		t.Errorf("expected blank column to be dropped")
	}
	sheet.Column = &MatchColumn{Content: "Tesna pobeda."}
	col := sheet.NormalizedColumn("m1")
	if col == nil || col.Title != "Miljanov ugao" || col.Author != "Miljan" || col.MatchID != "m1" {
		t.Errorf("expected defaulted column, got %+v", col)
	}
}

func TestNormalizeMatchDate(t *testing.T) {
	midnight := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	if got := NormalizeMatchDate(midnight); got.Hour() != 12 || got.Day() != 1 {
		t.Errorf("midnight should be pinned to noon, got %v", got)
	}
	evening := time.Date(2024, time.March, 1, 20, 15, 0, 0, time.UTC)
	if got := NormalizeMatchDate(evening); !got.Equal(evening) {
		t.Errorf("explicit time must be kept, got %v", got)
	}
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Marko Petrović":   "marko-petrovic",
		"  Đorđe   Čolić ": "djordje-colic",
		"Žika (golman)!":   "zika-golman",
		"Igrač 7":          "igrac-7",
		"???":              "",
	}
	for in, want := range cases {
		if got := Slugify(in); got != want {
			t.Errorf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestMatch_Outcome(t *testing.T) {
	if (Match{HomeScore: 2, AwayScore: 1}).Outcome() != OutcomeHomeWin {
		t.Errorf("expected home win")
	}
	if (Match{HomeScore: 0, AwayScore: 1}).Outcome() != OutcomeAwayWin {
		t.Errorf("expected away win")
	}
	scored, conceded := Match{HomeScore: 4, AwayScore: 3}.ScoresFor(SideB)
	if scored != 3 || conceded != 4 {
		t.Errorf("side B: got %d/%d", scored, conceded)
	}
}

func TestPlayer_Lite(t *testing.T) {
	lite := Player{ID: "p1", Name: "Ana", IsPublic: false}.Lite()
	if lite.Slug != nil || lite.ImageURL != nil {
		t.Errorf("empty slug and image should be nil, got %+v", lite)
	}
	if lite.IsPublic == nil || *lite.IsPublic {
		t.Errorf("expected private flag to be carried")
	}
}
