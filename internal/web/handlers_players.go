package web

import (
	"net/http"
	"sort"
	"strings"

	"petak-app/internal/awards"
	"petak-app/internal/model"

	"github.com/go-chi/chi/v5"
)

type playerRequest struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Nickname    string `json:"nickname"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	IsPublic    *bool  `json:"is_public"`
}

func (req playerRequest) apply(p model.Player) model.Player {
	p.Name = strings.TrimSpace(req.Name)
	p.Slug = strings.TrimSpace(req.Slug)
	p.Nickname = req.Nickname
	p.Description = strings.TrimSpace(req.Description)
	p.ImageURL = req.ImageURL
	if req.IsPublic != nil {
		p.IsPublic = *req.IsPublic
	}
	return p
}

func playerCard(p model.Player) PlayerCard {
	return PlayerCard{
		ID:          p.ID,
		Name:        p.Name,
		Slug:        p.Slug,
		Nickname:    p.Nickname,
		Description: p.Description,
		ImageURL:    p.ImageURL,
	}
}

func (s *Server) handlePlayers(w http.ResponseWriter, r *http.Request) {
	players, err := s.store.ListPlayers()
	if err != nil {
		s.writeStoreError(w, err, "list players")
		return
	}
	cards := make([]PlayerCard, 0, len(players))
	for _, p := range players {
		if p.IsPublic {
			cards = append(cards, playerCard(p))
		}
	}
	c := awards.NameCollator()
	sort.SliceStable(cards, func(i, j int) bool {
		if cmp := c.CompareString(cards[i].Name, cards[j].Name); cmp != 0 {
			return cmp < 0
		}
		return cards[i].ID < cards[j].ID
	})
	writeJSON(w, http.StatusOK, map[string][]PlayerCard{"players": cards})
}

func (s *Server) handlePlayerShow(w http.ResponseWriter, r *http.Request) {
	player, ok := s.store.GetPlayerBySlug(chi.URLParam(r, "slug"))
	if !ok || !player.IsPublic {
		writeError(w, http.StatusNotFound, "Igrač nije pronađen.")
		return
	}
	view, err := s.playerProfile(player)
	if err != nil {
		s.writeStoreError(w, err, "load player profile")
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// playerProfile collects the player's all-time line and one line per year
// in which they played.
func (s *Server) playerProfile(player model.Player) (PlayerProfileView, error) {
	in, err := s.loadInput()
	if err != nil {
		return PlayerProfileView{}, err
	}
	lite := player.Lite()
	statsFor := func(ids []string) awards.PlayerStats {
		for _, st := range awards.ComputePlayerStats(in.Matches, in.Events, in.Teams, awards.NewIDSet(ids)) {
			if st.ID == player.ID {
				return st
			}
		}
		return awards.PlayerStats{Identity: awards.IdentityOf(&lite)}
	}

	view := PlayerProfileView{
		Player:  playerCard(player),
		AllTime: statsFor(awards.AllMatchIDs(in.Matches)),
		ByYear:  []PlayerYearView{},
	}
	for _, year := range awards.ListYears(in.Matches) {
		st := statsFor(awards.MatchIDsForPeriod(in.Matches, awards.YearPeriod(year)))
		if st.Played == 0 {
			continue
		}
		view.ByYear = append(view.ByYear, PlayerYearView{Year: year, Stats: st})
	}
	return view, nil
}

func (s *Server) handlePlayerCreate(w http.ResponseWriter, r *http.Request) {
	var req playerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Neispravan zahtev.")
		return
	}
	player, err := s.store.CreatePlayer(req.apply(model.Player{IsPublic: true}))
	if err != nil {
		s.writeStoreError(w, err, "create player")
		return
	}
	s.invalidate(r.Context())
	s.log.WithField("player_id", player.ID).Info("player created")
	writeJSON(w, http.StatusCreated, player)
}

func (s *Server) handlePlayerUpdate(w http.ResponseWriter, r *http.Request) {
	existing, ok := s.store.GetPlayer(chi.URLParam(r, "playerID"))
	if !ok {
		writeError(w, http.StatusNotFound, "Igrač nije pronađen.")
		return
	}
	var req playerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Neispravan zahtev.")
		return
	}
	player := req.apply(existing)
	if err := s.store.UpdatePlayer(player); err != nil {
		s.writeStoreError(w, err, "update player")
		return
	}
	s.invalidate(r.Context())
	updated, _ := s.store.GetPlayer(player.ID)
	writeJSON(w, http.StatusOK, updated)
}
