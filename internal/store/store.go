package store

import (
	"errors"

	"petak-app/internal/model"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrEmailTaken    = errors.New("email already exists")
	ErrSlugTaken     = errors.New("slug already exists")
	ErrUnknownPlayer = errors.New("unknown player")
	ErrInvalid       = errors.New("invalid input")
)

// Store is the persistence boundary. Team and event rows come back with the
// referenced player embedded, nil when the player row is missing.
type Store interface {
	GetAdmin(id string) (model.Admin, bool)
	GetAdminByEmail(email string) (model.Admin, bool)
	CreateAdmin(admin model.Admin) (model.Admin, error)

	ListPlayers() ([]model.Player, error)
	GetPlayer(id string) (model.Player, bool)
	GetPlayerBySlug(slug string) (model.Player, bool)
	CreatePlayer(player model.Player) (model.Player, error)
	UpdatePlayer(player model.Player) error

	ListMatches() ([]model.Match, error)
	GetMatch(id string) (model.Match, bool)
	SaveMatch(sheet model.MatchSheet) (model.Match, error)
	DeleteMatch(id string) error

	ListTeamRows() ([]model.TeamRow, error)
	ListEventRows() ([]model.EventRow, error)
	MatchTeams(matchID string) ([]model.TeamRow, error)
	MatchEvents(matchID string) ([]model.EventRow, error)
	GetMatchColumn(matchID string) (model.MatchColumn, bool)

	ListGalleryItems() ([]model.GalleryItem, error)
	CreateGalleryItem(item model.GalleryItem) (model.GalleryItem, error)
}
