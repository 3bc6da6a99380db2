package store

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"petak-app/internal/model"
)

func newTestStore(t *testing.T) (*MemoryStore, []model.Player) {
	t.Helper()
	s := NewMemoryStore(MemoryOptions{Location: time.UTC})
	players := make([]model.Player, 0, 10)
	for i := 0; i < 10; i++ {
		p, err := s.CreatePlayer(model.Player{Name: fmt.Sprintf("Igrač %d", i), IsPublic: i != 9})
		if err != nil {
			t.Fatalf("create player: %v", err)
		}
		players = append(players, p)
	}
	return s, players
}

func testSheet(players []model.Player) model.MatchSheet {
	ids := make([]string, 0, len(players))
	for _, p := range players {
		ids = append(ids, p.ID)
	}
	return model.MatchSheet{
		Match:   model.Match{Date: time.Date(2024, time.May, 10, 0, 0, 0, 0, time.UTC), HomeScore: 3, AwayScore: 2},
		TeamA:   ids[:5],
		TeamB:   ids[5:10],
		Goals:   []model.Contribution{{PlayerID: ids[0], Value: 2}, {PlayerID: ids[1], Value: 1}, {PlayerID: ids[6], Value: 2}},
		Assists: []model.Contribution{{PlayerID: ids[2], Value: 1}},
		MVP:     ids[0],
		Column:  &model.MatchColumn{Content: "Dobar meč."},
	}
}

func TestMemoryStore_SaveMatchCreatesRows(t *testing.T) {
	s, players := newTestStore(t)

	match, err := s.SaveMatch(testSheet(players))
	if err != nil {
		t.Fatalf("save match: %v", err)
	}
	if match.ID == "" {
		t.Fatalf("expected generated id")
	}
	if match.Date.Hour() != 12 {
		t.Errorf("date-only input should be pinned to noon, got %v", match.Date)
	}

	teams, err := s.MatchTeams(match.ID)
	if err != nil || len(teams) != 10 {
		t.Fatalf("expected 10 team rows, got %d", len(teams))
	}
	for _, row := range teams {
		if row.Player == nil || row.Player.ID != *row.PlayerID {
			t.Fatalf("team row missing embedded player: %+v", row)
		}
	}
	if teams[9].Player.IsPublic == nil || *teams[9].Player.IsPublic {
		t.Errorf("expected private flag to be carried on the embedded player")
	}

	events, err := s.MatchEvents(match.ID)
	if err != nil || len(events) != 5 {
		t.Fatalf("expected 3 goals + 1 assist + 1 mvp, got %d", len(events))
	}
	if last := events[len(events)-1]; last.Type != model.EventMVP || *last.Value != 1 {
		t.Errorf("expected trailing mvp row with value 1, got %+v", last)
	}

	column, ok := s.GetMatchColumn(match.ID)
	if !ok || column.Title != "Miljanov ugao" || column.Author != "Miljan" {
		t.Errorf("expected defaulted column, got %+v (ok=%v)", column, ok)
	}
}

func TestMemoryStore_SaveMatchReplacesRows(t *testing.T) {
	s, players := newTestStore(t)
	match, err := s.SaveMatch(testSheet(players))
	if err != nil {
		t.Fatalf("save match: %v", err)
	}

	edit := testSheet(players)
	edit.Match.ID = match.ID
	edit.Match.HomeScore = 0
	edit.Goals = []model.Contribution{{PlayerID: players[7].ID, Value: 2}}
	edit.Assists = nil
	edit.MVP = ""
	edit.Column = nil
	if _, err := s.SaveMatch(edit); err != nil {
		t.Fatalf("update match: %v", err)
	}

	if got, _ := s.ListMatches(); len(got) != 1 {
		t.Fatalf("update must not duplicate the match, got %d", len(got))
	}
	if events, _ := s.MatchEvents(match.ID); len(events) != 1 || events[0].PlayerID != players[7].ID {
		t.Errorf("expected events to be replaced, got %+v", events)
	}
	if _, ok := s.GetMatchColumn(match.ID); ok {
		t.Errorf("expected column to be removed")
	}
	stored, _ := s.GetMatch(match.ID)
	if stored.HomeScore != 0 {
		t.Errorf("expected updated score, got %d", stored.HomeScore)
	}
}

func TestMemoryStore_SaveMatchRejects(t *testing.T) {
	s, players := newTestStore(t)

	unknown := testSheet(players)
	unknown.TeamB[4] = "ghost"
	if _, err := s.SaveMatch(unknown); !errors.Is(err, ErrUnknownPlayer) {
		t.Errorf("expected ErrUnknownPlayer, got %v", err)
	}

	short := testSheet(players)
	short.TeamA = short.TeamA[:4]
	if _, err := s.SaveMatch(short); !errors.Is(err, model.ErrTeamSize) {
		t.Errorf("expected ErrTeamSize, got %v", err)
	}

	missing := testSheet(players)
	missing.Match.ID = "nope"
	if _, err := s.SaveMatch(missing); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if stored, _ := s.ListMatches(); len(stored) != 0 {
		t.Errorf("rejected sheets must not be stored")
	}
}

func TestMemoryStore_DeleteMatch(t *testing.T) {
	s, players := newTestStore(t)
	match, _ := s.SaveMatch(testSheet(players))
	item, err := s.CreateGalleryItem(model.GalleryItem{PublicURL: "https://cdn/x.jpg", MatchID: model.StringPtr(match.ID)})
	if err != nil {
		t.Fatalf("create gallery item: %v", err)
	}

	if err := s.DeleteMatch(match.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	teams, _ := s.ListTeamRows()
	events, _ := s.ListEventRows()
	if len(teams) != 0 || len(events) != 0 {
		t.Errorf("expected rows to be removed with the match")
	}
	items, _ := s.ListGalleryItems()
	if len(items) != 1 || items[0].ID != item.ID || items[0].MatchID != nil {
		t.Errorf("expected gallery item to survive unlinked, got %+v", items)
	}
	if err := s.DeleteMatch(match.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestMemoryStore_Players(t *testing.T) {
	s := NewMemoryStore(MemoryOptions{})

	p, err := s.CreatePlayer(model.Player{Name: "Đorđe Čolić", IsPublic: true})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.Slug != "djordje-colic" {
		t.Errorf("unexpected slug %q", p.Slug)
	}
	if _, err := s.CreatePlayer(model.Player{Name: "Djordje Colic"}); !errors.Is(err, ErrSlugTaken) {
		t.Errorf("expected ErrSlugTaken, got %v", err)
	}
	if _, err := s.CreatePlayer(model.Player{Name: "  "}); err == nil {
		t.Errorf("expected error for empty name")
	}

	p.Nickname = "Đole"
	p.IsPublic = false
	if err := s.UpdatePlayer(p); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, ok := s.GetPlayerBySlug("djordje-colic")
	if !ok || got.Nickname != "Đole" || got.IsPublic {
		t.Errorf("unexpected player after update: %+v", got)
	}
	if err := s.UpdatePlayer(model.Player{ID: "missing", Name: "X"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStore_Admins(t *testing.T) {
	s := NewMemoryStore(MemoryOptions{})
	admin, err := s.CreateAdmin(model.Admin{Email: "Boss@Petak.rs", PasswordHash: "x"})
	if err != nil {
		t.Fatalf("create admin: %v", err)
	}
	if _, ok := s.GetAdminByEmail("boss@petak.rs"); !ok {
		t.Errorf("expected case-insensitive email lookup")
	}
	if _, ok := s.GetAdmin(admin.ID); !ok {
		t.Errorf("expected lookup by id")
	}
	if _, err := s.CreateAdmin(model.Admin{Email: "boss@petak.rs"}); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}
}

func TestMemoryStore_DatesUseConfiguredLocation(t *testing.T) {
	belgrade := time.FixedZone("CET", 3600)
	s := NewMemoryStore(MemoryOptions{Location: belgrade})
	players := make([]model.Player, 0, 10)
	for i := 0; i < 10; i++ {
		p, _ := s.CreatePlayer(model.Player{Name: fmt.Sprintf("P%d", i), IsPublic: true})
		players = append(players, p)
	}
	sheet := testSheet(players)
	sheet.Match.Date = time.Date(2024, time.December, 31, 23, 30, 0, 0, time.UTC)
	match, err := s.SaveMatch(sheet)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	got, _ := s.GetMatch(match.ID)
	if got.Date.Location() != belgrade || got.Date.Year() != 2025 {
		t.Errorf("expected date in configured location, got %v", got.Date)
	}
}

func TestMemoryStore_SeedIsConsistent(t *testing.T) {
	s := NewMemoryStore(MemoryOptions{Seed: true, Location: time.UTC})
	if _, ok := s.GetAdminByEmail(DevAdminEmail); !ok {
		t.Fatalf("expected seeded dev admin")
	}
	matches, err := s.ListMatches()
	if err != nil || len(matches) == 0 {
		t.Fatalf("expected seeded matches")
	}
	for i := 1; i < len(matches); i++ {
		if matches[i].Date.After(matches[i-1].Date) {
			t.Fatalf("matches must be listed newest first")
		}
	}
	for _, m := range matches {
		if teams, _ := s.MatchTeams(m.ID); len(teams) != 2*model.TeamSize {
			t.Fatalf("match %s has %d team rows", m.ID, len(teams))
		}
	}
}
