package awards

import (
	"testing"

	"petak-app/internal/model"
)

func statsByID(stats []PlayerStats) map[string]PlayerStats {
	out := map[string]PlayerStats{}
	for _, s := range stats {
		out[s.ID] = s
	}
	return out
}

func TestComputePlayerStats_DrawCountsForBothSides(t *testing.T) {
	a1, a2, b1 := lite("a1", "Ana"), lite("a2", "Aca"), lite("b1", "Bora")
	matches := []model.Match{match("m1", 1, 2, 2)}
	teams := []model.TeamRow{team("m1", model.SideA, a1), team("m1", model.SideA, a2), team("m1", model.SideB, b1)}

	stats := statsByID(ComputePlayerStats(matches, nil, teams, NewIDSet([]string{"m1"})))
	if len(stats) != 3 {
		t.Fatalf("expected 3 players, got %d", len(stats))
	}
	for id, s := range stats {
		if s.Played != 1 || s.Draws != 1 || s.Wins != 0 || s.Losses != 0 {
			t.Errorf("%s: expected one draw, got %+v", id, s)
		}
		if s.Conceded != 2 {
			t.Errorf("%s: expected 2 conceded, got %d", id, s.Conceded)
		}
	}
}

func TestComputePlayerStats_WinsLossesAndEvents(t *testing.T) {
	a, b := lite("a", "Ana"), lite("b", "Bora")
	matches := []model.Match{match("m1", 1, 3, 1), match("m2", 2, 0, 2), match("m3", 3, 9, 9)}
	teams := []model.TeamRow{
		team("m1", model.SideA, a), team("m1", model.SideB, b),
		team("m2", model.SideA, a), team("m2", model.SideB, b),
	}
	events := []model.EventRow{
		event("m1", model.EventGoal, a, model.IntPtr(3)),
		event("m1", model.EventAssist, b, nil),
		event("m2", model.EventGoal, b, nil),
		event("m2", model.EventGoal, b, nil),
		event("m2", model.EventMVP, b, model.IntPtr(5)),
		event("m3", model.EventGoal, a, model.IntPtr(9)),
	}

	stats := statsByID(ComputePlayerStats(matches, events, teams, NewIDSet([]string{"m1", "m2"})))
	want := map[string]PlayerStats{
		"a": {Played: 2, Wins: 1, Losses: 1, Goals: 3, Conceded: 3},
		"b": {Played: 2, Wins: 1, Losses: 1, Goals: 2, Assists: 1, MVPs: 1, Conceded: 3},
	}
	for id, w := range want {
		got := stats[id]
		if got.Played != w.Played || got.Wins != w.Wins || got.Losses != w.Losses || got.Draws != w.Draws ||
			got.Goals != w.Goals || got.Assists != w.Assists || got.MVPs != w.MVPs || got.Conceded != w.Conceded {
			t.Errorf("%s: expected %+v, got %+v", id, w, got)
		}
	}
}

func TestComputePlayerStats_EventOnlyPlayerMerged(t *testing.T) {
	guest := lite("g", "Gost")
	matches := []model.Match{match("m1", 1, 1, 0)}
	events := []model.EventRow{event("m1", model.EventGoal, guest, nil), event("m1", model.EventAssist, guest, nil)}

	stats := ComputePlayerStats(matches, events, nil, NewIDSet([]string{"m1"}))
	if len(stats) != 1 {
		t.Fatalf("expected one consolidated record, got %d", len(stats))
	}
	if stats[0].Played != 0 || stats[0].Goals != 1 || stats[0].Assists != 1 {
		t.Fatalf("unexpected record %+v", stats[0])
	}
}

func TestComputePlayerStats_MatchWithoutRowsAddsNothing(t *testing.T) {
	matches := []model.Match{match("m1", 1, 4, 4)}
	if stats := ComputePlayerStats(matches, nil, nil, NewIDSet([]string{"m1"})); len(stats) != 0 {
		t.Fatalf("expected no records, got %+v", stats)
	}
}

func TestVisible(t *testing.T) {
	tests := []struct {
		name string
		p    *model.PlayerLite
		want bool
	}{
		{"nil player", nil, false},
		{"unset flag", &model.PlayerLite{ID: "x"}, true},
		{"public", &model.PlayerLite{ID: "x", IsPublic: model.BoolPtr(true)}, true},
		{"private", &model.PlayerLite{ID: "x", IsPublic: model.BoolPtr(false)}, false},
	}
	for _, tc := range tests {
		if got := Visible(tc.p); got != tc.want {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}
