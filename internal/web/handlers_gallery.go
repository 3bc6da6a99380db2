package web

import (
	"net/http"
	"strings"

	"petak-app/internal/model"
)

type galleryRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	MediaType   string `json:"media_type"`
	PublicURL   string `json:"public_url"`
	MatchID     string `json:"match_id"`
}

func (s *Server) handleGallery(w http.ResponseWriter, r *http.Request) {
	matchID := strings.TrimSpace(r.URL.Query().Get("match_id"))
	items, err := s.store.ListGalleryItems()
	if err != nil {
		s.writeStoreError(w, err, "list gallery items")
		return
	}
	out := make([]model.GalleryItem, 0, len(items))
	for _, item := range items {
		if matchID != "" && (item.MatchID == nil || *item.MatchID != matchID) {
			continue
		}
		out = append(out, item)
	}
	writeJSON(w, http.StatusOK, map[string][]model.GalleryItem{"items": out})
}

func (s *Server) handleGalleryCreate(w http.ResponseWriter, r *http.Request) {
	var req galleryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Neispravan zahtev.")
		return
	}
	item := model.GalleryItem{
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		MediaType:   model.MediaType(strings.ToLower(strings.TrimSpace(req.MediaType))),
		PublicURL:   req.PublicURL,
	}
	if id := strings.TrimSpace(req.MatchID); id != "" {
		item.MatchID = &id
	}
	created, err := s.store.CreateGalleryItem(item)
	if err != nil {
		s.writeStoreError(w, err, "create gallery item")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}
