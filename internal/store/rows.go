package store

import (
	"database/sql"
	"strings"

	"petak-app/internal/model"
)

// nullPlayerLite receives the LEFT JOINed player columns of a team or event row.
type nullPlayerLite struct {
	ID       sql.NullString
	Name     sql.NullString
	Slug     sql.NullString
	ImageURL sql.NullString
	IsPublic sql.NullBool
}

func (n nullPlayerLite) toLite() *model.PlayerLite {
	if !n.ID.Valid {
		return nil
	}
	p := model.Player{
		ID:       n.ID.String,
		Name:     n.Name.String,
		Slug:     n.Slug.String,
		ImageURL: n.ImageURL.String,
		IsPublic: !n.IsPublic.Valid || n.IsPublic.Bool,
	}
	lite := p.Lite()
	return &lite
}

func intPtrValue(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

func stringPtrValue(v *string) any {
	if v == nil {
		return nil
	}
	return *v
}

func isUniqueViolation(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate key")
}
