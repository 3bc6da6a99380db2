package awards

import (
	"reflect"
	"testing"
	"time"

	"petak-app/internal/model"
)

func TestDominance(t *testing.T) {
	ana := Identity{ID: "ana", Name: "Ana"}
	bora := Identity{ID: "bora", Name: "Bora"}
	cica := Identity{ID: "cica", Name: "Cica"}
	win := func(id Identity) []Winner { return []Winner{{Identity: id}} }

	a := Awards{
		Goals:       MaxAward{Winners: win(bora)},
		Assists:     MaxAward{Winners: win(ana)},
		MVPs:        MaxAward{Winners: []Winner{{Identity: ana}, {Identity: bora}}},
		Ironman:     MaxAward{Winners: win(cica)},
		GA:          MaxAward{Winners: win(ana)},
		GoalRate:    MaxAward{Winners: win(cica)},
		AssistRate:  MaxAward{Winners: win(cica)},
		MVPRate:     MaxAward{Winners: win(cica)},
		Form:        MaxAward{Winners: []Winner{}},
		LeastLosses: MinAward{Winners: win(bora)},
		Stub:        MinAward{Winners: []Winner{}},
	}

	got := Dominance(a, 0)
	if len(got) != 2 {
		t.Fatalf("expected 2 dominant players, got %+v", got)
	}
	if got[0].ID != "ana" || got[0].Count != 3 {
		t.Errorf("expected ana first with 3, got %+v", got[0])
	}
	if got[1].ID != "bora" || got[1].Count != 3 {
		t.Errorf("expected bora second with 3, got %+v", got[1])
	}
	if !reflect.DeepEqual(got[0].Categories, []string{"assists", "mvps", "ga"}) {
		t.Errorf("unexpected categories %v", got[0].Categories)
	}

	if all := Dominance(a, 1); len(all) != 3 {
		t.Errorf("with minWins=1 expected 3 entries, got %d", len(all))
	}
}

func TestHistory(t *testing.T) {
	p := lite("p", "Pera")
	at := func(id string, month time.Month) model.Match {
		return model.Match{ID: id, Date: time.Date(2024, month, 10, 20, 0, 0, 0, time.UTC), HomeScore: 1}
	}
	in := Input{
		Matches: []model.Match{at("m1", time.May), at("m2", time.February), at("m3", time.February)},
		Teams:   []model.TeamRow{team("m1", model.SideA, p), team("m2", model.SideA, p), team("m3", model.SideA, p)},
	}

	cards := History(in, "2024", Options{})
	if len(cards) != 3 {
		t.Fatalf("expected year + 2 month cards, got %d", len(cards))
	}
	if cards[0].Period != YearPeriod("2024") || cards[0].MatchCount != 3 {
		t.Errorf("unexpected year card %+v", cards[0].Period)
	}
	if cards[1].Period.Month != "02" || cards[1].MatchCount != 2 || cards[2].Period.Month != "05" {
		t.Errorf("unexpected month order: %+v, %+v", cards[1].Period, cards[2].Period)
	}
	if cards[0].Awards.Ironman.Max != 3 || cards[1].Awards.Ironman.Max != 2 {
		t.Errorf("each card should be computed over its own matches")
	}
	if cards[1].Label != "2024 • Februar" {
		t.Errorf("unexpected label %q", cards[1].Label)
	}

	if empty := History(in, "2019", Options{}); len(empty) != 0 {
		t.Errorf("expected no cards for a year without matches, got %d", len(empty))
	}
}

func TestComputeRivalries(t *testing.T) {
	a, b, c := lite("a", "Ana"), lite("b", "Bora"), private("c", "Cile")
	matches := []model.Match{match("m1", 1, 3, 1), match("m2", 2, 0, 2), match("m3", 3, 2, 2)}
	var teams []model.TeamRow
	for _, m := range matches {
		teams = append(teams, team(m.ID, model.SideA, a), team(m.ID, model.SideB, b), team(m.ID, model.SideB, c))
	}

	rows := ComputeRivalries(matches, teams, NewIDSet([]string{"m1", "m2", "m3"}))
	if len(rows) != 2 {
		t.Fatalf("expected a-vs-b and b-vs-a only, got %d rows", len(rows))
	}
	byPair := map[string]Rivalry{}
	for _, r := range rows {
		byPair[r.Player.ID+">"+r.Opponent.ID] = r
	}
	ab := byPair["a>b"]
	if ab.Duels != 3 || ab.Wins != 1 || ab.Losses != 1 || ab.Draws != 1 || ab.GoalDiff != 0 || ab.Net != 0 {
		t.Errorf("unexpected a>b record %+v", ab)
	}

	// a beats b twice more in separate matches.
	matches = append(matches, match("m4", 4, 1, 0), match("m5", 5, 4, 0))
	teams = append(teams, team("m4", model.SideA, a), team("m4", model.SideB, b), team("m5", model.SideA, a), team("m5", model.SideB, b))
	rows = ComputeRivalries(matches, teams, NewIDSet([]string{"m1", "m2", "m3", "m4", "m5"}))

	nemesis := SortRivalries(rows, RivalryNemesis, 3, 0)
	if nemesis[0].Player.ID != "b" || nemesis[0].Net != -2 {
		t.Errorf("expected b's worst rivalry first, got %+v", nemesis[0])
	}
	domination := SortRivalries(rows, RivalryDomination, 3, 1)
	if len(domination) != 1 || domination[0].Player.ID != "a" || domination[0].GoalDiff != 5 {
		t.Errorf("expected a dominating first, got %+v", domination)
	}
	if filtered := SortRivalries(rows, RivalryNemesis, 6, 0); len(filtered) != 0 {
		t.Errorf("expected min duels to filter everything, got %d", len(filtered))
	}
}
