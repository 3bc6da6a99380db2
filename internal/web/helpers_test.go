package web

import (
	"net/http/httptest"
	"testing"
	"time"

	"petak-app/internal/awards"
	"petak-app/internal/model"
)

func TestParsePeriod(t *testing.T) {
	cases := []struct {
		query   string
		wantKey string
		wantErr bool
	}{
		{"", "all", false},
		{"mode=all", "all", false},
		{"year=2024", "2024", false},
		{"year=2024&month=3", "2024-03", false},
		{"mode=month&year=2024&month=11", "2024-11", false},
		{"mode=year&year=2024&month=3", "2024", false},
		{"mode=year", "", true},
		{"mode=month&year=2024", "", true},
		{"mode=month&year=2024&month=0", "", true},
		{"year=24x", "", true},
		{"mode=week&year=2024", "", true},
	}
	for _, tc := range cases {
		r := httptest.NewRequest("GET", "/api/awards?"+tc.query, nil)
		sel, err := parsePeriod(r)
		if tc.wantErr {
			if err == nil {
				t.Errorf("%q: expected error", tc.query)
			}
			continue
		}
		if err != nil {
			t.Errorf("%q: unexpected error %v", tc.query, err)
			continue
		}
		if sel.key() != tc.wantKey {
			t.Errorf("%q: key %q, want %q", tc.query, sel.key(), tc.wantKey)
		}
	}
}

func TestParseAwardOptions(t *testing.T) {
	defaults := awards.Options{MinMatchesEff: 3, MinMatchesForm: 3}
	r := httptest.NewRequest("GET", "/api/awards?min_eff=5&min_form=999", nil)
	opts := parseAwardOptions(r, defaults)
	if opts.MinMatchesEff != 5 || opts.MinMatchesForm != 50 {
		t.Errorf("unexpected options %+v", opts)
	}
	r = httptest.NewRequest("GET", "/api/awards?min_eff=-1&min_form=x", nil)
	if opts := parseAwardOptions(r, defaults); opts != defaults {
		t.Errorf("invalid values should keep defaults, got %+v", opts)
	}
}

func TestParseMatchDate(t *testing.T) {
	belgrade := time.FixedZone("CET", 3600)
	got, err := parseMatchDate("2024-03-01", belgrade)
	if err != nil || got.Location() != belgrade || got.Day() != 1 {
		t.Errorf("date-only: got %v, %v", got, err)
	}
	got, err = parseMatchDate("2024-03-01T20:30:00Z", belgrade)
	if err != nil || got.Hour() != 20 {
		t.Errorf("rfc3339: got %v, %v", got, err)
	}
	if _, err := parseMatchDate("", belgrade); err != model.ErrDateRequired {
		t.Errorf("expected ErrDateRequired, got %v", err)
	}
	if _, err := parseMatchDate("01.03.2024", belgrade); err == nil {
		t.Errorf("expected error for an unknown layout")
	}
}

func TestBuildMatchesListView(t *testing.T) {
	matches := make([]model.Match, 23)
	for i := range matches {
		matches[i].ID = string(rune('a' + i))
	}
	summarized := 0
	summarize := func(m model.Match) MatchSummary {
		summarized++
		return MatchSummary{ID: m.ID}
	}

	first := buildMatchesListView(matches, 1, 10, summarize)
	if len(first.Items) != 10 || first.TotalPages != 3 || first.HasPrev || !first.HasNext || first.NextPage != 2 {
		t.Errorf("unexpected first page %+v", first)
	}
	if first.Items[0].ID != "a" || first.Total != 23 {
		t.Errorf("unexpected first page contents %+v", first)
	}
	if summarized != 10 {
		t.Errorf("only the visible page should be summarized, got %d calls", summarized)
	}
	summarized = 0
	last := buildMatchesListView(matches, 7, 10, summarize)
	if last.Page != 3 || len(last.Items) != 3 || last.HasNext || last.PrevPage != 2 {
		t.Errorf("out-of-range page should clamp to the last one, got %+v", last)
	}
	if last.Items[0].ID != "u" || summarized != 3 {
		t.Errorf("last page: first item %q, %d summaries", last.Items[0].ID, summarized)
	}
	empty := buildMatchesListView(nil, 1, 10, summarize)
	if empty.Total != 0 || len(empty.Items) != 0 || empty.HasNext || empty.HasPrev {
		t.Errorf("unexpected empty view %+v", empty)
	}
}

func TestBuildStandings(t *testing.T) {
	stat := func(id, name string, wins, draws, losses, goals, assists int) awards.PlayerStats {
		return awards.PlayerStats{
			Identity: awards.Identity{ID: id, Name: name},
			Played:   wins + draws + losses,
			Wins:     wins,
			Draws:    draws,
			Losses:   losses,
			Goals:    goals,
			Assists:  assists,
		}
	}
	rows := BuildStandings([]awards.PlayerStats{
		stat("1", "Žarko", 2, 0, 1, 1, 0),
		stat("2", "Ana", 1, 3, 0, 0, 0),
		stat("3", "Čeda", 2, 0, 0, 1, 0),
		stat("4", "Bora", 2, 0, 2, 3, 1),
		stat("5", "Nema", 0, 0, 0, 0, 0),
	})
	want := []string{"Bora", "Čeda", "Žarko", "Ana"}
	if len(rows) != len(want) {
		t.Fatalf("players without matches must be skipped, got %d rows", len(rows))
	}
	for i, name := range want {
		if rows[i].Player.Name != name || rows[i].Rank != i+1 {
			t.Errorf("row %d: got %s (rank %d), want %s", i, rows[i].Player.Name, rows[i].Rank, name)
		}
	}
	if rows[3].Points != 6 {
		t.Errorf("expected draws to count one point, got %d", rows[3].Points)
	}
}

func TestAdminMessage(t *testing.T) {
	if msg := adminMessage(model.ErrMVPNotInTeams); msg != "MVP mora igrati za jedan od timova." {
		t.Errorf("unexpected message %q", msg)
	}
	if msg := adminMessage(errBadPeriod); msg == "" {
		t.Errorf("expected a message for a bad period")
	}
	if status := statusFor(model.ErrTeamSize); status != 400 {
		t.Errorf("validation errors should be 400, got %d", status)
	}
	if status := statusFor(errNoSession); status != 500 {
		t.Errorf("unknown errors should be 500, got %d", status)
	}
}
