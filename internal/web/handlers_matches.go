package web

import (
	"context"
	"net/http"
	"strings"
	"time"

	"petak-app/internal/awards"
	"petak-app/internal/model"

	"github.com/go-chi/chi/v5"
)

const matchesPageSize = 10

type matchRequest struct {
	Date      string               `json:"date"`
	HomeScore int                  `json:"home_score"`
	AwayScore int                  `json:"away_score"`
	TeamA     []string             `json:"team_a"`
	TeamB     []string             `json:"team_b"`
	Goals     []model.Contribution `json:"goals"`
	Assists   []model.Contribution `json:"assists"`
	MVP       string               `json:"mvp"`
	Column    *model.MatchColumn   `json:"column"`
}

func (req matchRequest) sheet(matchID string, loc *time.Location) (model.MatchSheet, error) {
	date, err := parseMatchDate(req.Date, loc)
	if err != nil {
		return model.MatchSheet{}, err
	}
	return model.MatchSheet{
		Match: model.Match{
			ID:        matchID,
			Date:      date,
			HomeScore: req.HomeScore,
			AwayScore: req.AwayScore,
		},
		TeamA:   trimIDs(req.TeamA),
		TeamB:   trimIDs(req.TeamB),
		Goals:   req.Goals,
		Assists: req.Assists,
		MVP:     strings.TrimSpace(req.MVP),
		Column:  req.Column,
	}, nil
}

func trimIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, strings.TrimSpace(id))
	}
	return out
}

func (s *Server) matchSummary(m model.Match) MatchSummary {
	_, hasColumn := s.store.GetMatchColumn(m.ID)
	return MatchSummary{
		ID:        m.ID,
		Date:      m.Date,
		DateLabel: m.Date.In(s.loc).Format("02.01.2006."),
		HomeScore: m.HomeScore,
		AwayScore: m.AwayScore,
		ScoreLine: scoreLine(m),
		HasColumn: hasColumn,
	}
}

func (s *Server) handleMatches(w http.ResponseWriter, r *http.Request) {
	sel, err := parsePeriod(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, adminMessage(err))
		return
	}
	matches, err := s.store.ListMatches()
	if err != nil {
		s.writeStoreError(w, err, "list matches")
		return
	}
	ids := awards.NewIDSet(sel.matchIDs(matches))
	selected := make([]model.Match, 0, len(ids))
	for _, m := range matches {
		if ids.Has(m.ID) {
			selected = append(selected, m)
		}
	}
	page := parseBoundedInt(r.URL.Query().Get("page"), 1, 1, 0)
	writeJSON(w, http.StatusOK, buildMatchesListView(selected, page, matchesPageSize, s.matchSummary))
}

func (s *Server) handleMatchShow(w http.ResponseWriter, r *http.Request) {
	matchID := chi.URLParam(r, "matchID")
	match, ok := s.store.GetMatch(matchID)
	if !ok {
		writeError(w, http.StatusNotFound, "Meč nije pronađen.")
		return
	}
	view, err := s.matchDetail(match)
	if err != nil {
		s.writeStoreError(w, err, "load match detail")
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// matchDetail assembles the public match page. Private players are left out
// of line-ups and contributions.
func (s *Server) matchDetail(match model.Match) (MatchDetailView, error) {
	view := MatchDetailView{
		Match:   s.matchSummary(match),
		TeamA:   []awards.Identity{},
		TeamB:   []awards.Identity{},
		Goals:   []ContributionView{},
		Assists: []ContributionView{},
		Gallery: []model.GalleryItem{},
	}
	teams, err := s.store.MatchTeams(match.ID)
	if err != nil {
		return MatchDetailView{}, err
	}
	events, err := s.store.MatchEvents(match.ID)
	if err != nil {
		return MatchDetailView{}, err
	}
	gallery, err := s.store.ListGalleryItems()
	if err != nil {
		return MatchDetailView{}, err
	}
	for _, row := range teams {
		if !awards.Visible(row.Player) {
			continue
		}
		if row.Team == model.SideA {
			view.TeamA = append(view.TeamA, awards.IdentityOf(row.Player))
		} else {
			view.TeamB = append(view.TeamB, awards.IdentityOf(row.Player))
		}
	}
	for _, ev := range events {
		if !awards.Visible(ev.Player) {
			continue
		}
		value := 1
		if ev.Value != nil {
			value = *ev.Value
		}
		switch ev.Type {
		case model.EventGoal:
			view.Goals = append(view.Goals, ContributionView{Player: awards.IdentityOf(ev.Player), Value: value})
		case model.EventAssist:
			view.Assists = append(view.Assists, ContributionView{Player: awards.IdentityOf(ev.Player), Value: value})
		case model.EventMVP:
			id := awards.IdentityOf(ev.Player)
			view.MVP = &id
		}
	}
	if column, ok := s.store.GetMatchColumn(match.ID); ok {
		view.Column = &column
	}
	for _, item := range gallery {
		if item.MatchID != nil && *item.MatchID == match.ID {
			view.Gallery = append(view.Gallery, item)
		}
	}
	return view, nil
}

func (s *Server) handleMatchCreate(w http.ResponseWriter, r *http.Request) {
	s.saveMatch(w, r, "")
}

func (s *Server) handleMatchUpdate(w http.ResponseWriter, r *http.Request) {
	s.saveMatch(w, r, chi.URLParam(r, "matchID"))
}

func (s *Server) saveMatch(w http.ResponseWriter, r *http.Request, matchID string) {
	var req matchRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Neispravan zahtev.")
		return
	}
	sheet, err := req.sheet(matchID, s.loc)
	if err != nil {
		msg := adminMessage(err)
		if msg == "" {
			msg = "Neispravan datum."
		}
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	match, err := s.store.SaveMatch(sheet)
	if err != nil {
		s.writeStoreError(w, err, "save match")
		return
	}
	s.invalidate(r.Context())

	admin, _ := adminFromContext(r.Context())
	s.log.WithField("match_id", match.ID).WithField("admin_id", admin.ID).Info("match saved")
	view, err := s.matchDetail(match)
	if err != nil {
		s.writeStoreError(w, err, "load match detail")
		return
	}
	status := http.StatusOK
	if matchID == "" {
		status = http.StatusCreated
	}
	writeJSON(w, status, view)
}

func (s *Server) handleMatchDelete(w http.ResponseWriter, r *http.Request) {
	matchID := chi.URLParam(r, "matchID")
	if err := s.store.DeleteMatch(matchID); err != nil {
		s.writeStoreError(w, err, "delete match")
		return
	}
	s.invalidate(r.Context())
	s.log.WithField("match_id", matchID).Info("match deleted")
	w.WriteHeader(http.StatusNoContent)
}

// writeStoreError answers with the editor message for known errors and logs
// anything unexpected.
func (s *Server) writeStoreError(w http.ResponseWriter, err error, op string) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.log.WithError(err).Error(op)
	}
	writeError(w, status, adminMessage(err))
}

func (s *Server) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.WithError(err).Warn("invalidate snapshot cache")
	}
}
