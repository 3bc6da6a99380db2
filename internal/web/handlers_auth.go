package web

import (
	"net/http"
	"strings"
	"time"

	"petak-app/internal/metrics"
	"petak-app/internal/model"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func adminView(admin model.Admin) AdminView {
	return AdminView{ID: admin.ID, Email: admin.Email}
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Neispravan zahtev.")
		return
	}
	email := strings.TrimSpace(req.Email)
	admin, ok := s.store.GetAdminByEmail(email)
	if !ok || !checkPassword(admin.PasswordHash, req.Password) {
		metrics.AdminLogins.WithLabelValues("failure").Inc()
		s.log.WithField("email", email).Warn("admin login failed")
		writeError(w, http.StatusUnauthorized, "Pogrešan email ili lozinka.")
		return
	}
	if err := s.startSession(w, admin); err != nil {
		s.log.WithError(err).Error("issue session")
		writeError(w, http.StatusInternalServerError, "")
		return
	}
	metrics.AdminLogins.WithLabelValues("success").Inc()
	writeJSON(w, http.StatusOK, adminView(admin))
}

func (s *Server) startSession(w http.ResponseWriter, admin model.Admin) error {
	token, err := s.issueSession(admin.ID, time.Now())
	if err != nil {
		return err
	}
	s.setSessionCookie(w, token)
	return nil
}

func (s *Server) handleAdminMe(w http.ResponseWriter, r *http.Request) {
	admin, _ := adminFromContext(r.Context())
	writeJSON(w, http.StatusOK, adminView(admin))
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	clearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}
