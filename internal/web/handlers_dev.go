package web

import (
	"net/http"
	"strings"

	"petak-app/internal/store"
)

type devSessionRequest struct {
	Email string `json:"email"`
}

// handleDevSession logs in as any existing admin without a password. Only
// routed when the server runs in dev mode.
func (s *Server) handleDevSession(w http.ResponseWriter, r *http.Request) {
	if !s.dev {
		writeError(w, http.StatusNotFound, "Nije pronađeno.")
		return
	}
	var req devSessionRequest
	if r.ContentLength > 0 {
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "Neispravan zahtev.")
			return
		}
	}
	email := strings.TrimSpace(req.Email)
	if email == "" {
		email = store.DevAdminEmail
	}
	admin, ok := s.store.GetAdminByEmail(email)
	if !ok {
		writeError(w, http.StatusNotFound, "Administrator nije pronađen.")
		return
	}
	if err := s.startSession(w, admin); err != nil {
		s.log.WithError(err).Error("issue dev session")
		writeError(w, http.StatusInternalServerError, "")
		return
	}
	s.log.WithField("admin_id", admin.ID).Warn("dev session issued")
	writeJSON(w, http.StatusOK, adminView(admin))
}
