package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"petak-app/internal/model"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const dialectSQLite = "sqlite"

type SQLiteStore struct {
	db  *sql.DB
	loc *time.Location
}

type SQLiteOptions struct {
	MigrationsDir string
	Location      *time.Location
}

func NewSQLiteStore(path string, opts SQLiteOptions) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("sqlite path is required")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// A single connection keeps ":memory:" databases and transactions consistent.
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if _, err := db.Exec(`PRAGMA foreign_keys = ON`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	if err := applyMigrations(db, dialectSQLite, opts.MigrationsDir); err != nil {
		_ = db.Close()
		return nil, err
	}
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	return &SQLiteStore{db: db, loc: loc}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) GetAdmin(id string) (model.Admin, bool) {
	row := s.db.QueryRow(`SELECT id, email, password_hash, created_at FROM admins WHERE id = ?`, id)
	admin, err := scanSQLiteAdminRow(row)
	if err != nil {
		return model.Admin{}, false
	}
	return admin, true
}

func (s *SQLiteStore) GetAdminByEmail(email string) (model.Admin, bool) {
	row := s.db.QueryRow(`SELECT id, email, password_hash, created_at FROM admins WHERE lower(email) = lower(?) LIMIT 1`, strings.TrimSpace(email))
	admin, err := scanSQLiteAdminRow(row)
	if err != nil {
		return model.Admin{}, false
	}
	return admin, true
}

func (s *SQLiteStore) CreateAdmin(admin model.Admin) (model.Admin, error) {
	admin.Email = strings.TrimSpace(admin.Email)
	if admin.Email == "" {
		return model.Admin{}, errors.New("email is required")
	}
	if _, exists := s.GetAdminByEmail(admin.Email); exists {
		return model.Admin{}, ErrEmailTaken
	}
	if admin.ID == "" {
		admin.ID = uuid.NewString()
	}
	if admin.CreatedAt.IsZero() {
		admin.CreatedAt = time.Now()
	}
	_, err := s.db.Exec(`INSERT INTO admins (id, email, password_hash, created_at) VALUES (?,?,?,?)`,
		admin.ID, admin.Email, admin.PasswordHash, timeValueString(admin.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.Admin{}, ErrEmailTaken
		}
		return model.Admin{}, err
	}
	return admin, nil
}

func (s *SQLiteStore) ListPlayers() ([]model.Player, error) {
	rows, err := s.db.Query(`SELECT id, name, slug, nickname, description, image_url, is_public, created_at FROM players ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	defer rows.Close()

	players := []model.Player{}
	for rows.Next() {
		p, err := scanSQLitePlayerRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan player: %w", err)
		}
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	return players, nil
}

func (s *SQLiteStore) GetPlayer(id string) (model.Player, bool) {
	row := s.db.QueryRow(`SELECT id, name, slug, nickname, description, image_url, is_public, created_at FROM players WHERE id = ?`, id)
	p, err := scanSQLitePlayerRow(row)
	if err != nil {
		return model.Player{}, false
	}
	return p, true
}

func (s *SQLiteStore) GetPlayerBySlug(slug string) (model.Player, bool) {
	row := s.db.QueryRow(`SELECT id, name, slug, nickname, description, image_url, is_public, created_at FROM players WHERE slug = ?`, slug)
	p, err := scanSQLitePlayerRow(row)
	if err != nil {
		return model.Player{}, false
	}
	return p, true
}

func (s *SQLiteStore) CreatePlayer(player model.Player) (model.Player, error) {
	player, err := preparePlayer(player)
	if err != nil {
		return model.Player{}, err
	}
	if player.ID == "" {
		player.ID = uuid.NewString()
	}
	if player.CreatedAt.IsZero() {
		player.CreatedAt = time.Now()
	}
	_, err = s.db.Exec(`INSERT INTO players (id, name, slug, nickname, description, image_url, is_public, created_at) VALUES (?,?,?,?,?,?,?,?)`,
		player.ID, player.Name, player.Slug, player.Nickname, player.Description, player.ImageURL, player.IsPublic, timeValueString(player.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.Player{}, ErrSlugTaken
		}
		return model.Player{}, err
	}
	return player, nil
}

func (s *SQLiteStore) UpdatePlayer(player model.Player) error {
	player, err := preparePlayer(player)
	if err != nil {
		return err
	}
	res, err := s.db.Exec(`UPDATE players SET name = ?, slug = ?, nickname = ?, description = ?, image_url = ?, is_public = ? WHERE id = ?`,
		player.Name, player.Slug, player.Nickname, player.Description, player.ImageURL, player.IsPublic, player.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrSlugTaken
		}
		return err
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("player %s: %w", player.ID, ErrNotFound)
	}
	return nil
}

func (s *SQLiteStore) ListMatches() ([]model.Match, error) {
	rows, err := s.db.Query(`SELECT id, date, home_score, away_score FROM matches`)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	defer rows.Close()

	matches := []model.Match{}
	for rows.Next() {
		m, err := scanSQLiteMatchRow(rows, s.loc)
		if err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	sortMatches(matches)
	return matches, nil
}

func (s *SQLiteStore) GetMatch(id string) (model.Match, bool) {
	row := s.db.QueryRow(`SELECT id, date, home_score, away_score FROM matches WHERE id = ?`, id)
	m, err := scanSQLiteMatchRow(row, s.loc)
	if err != nil {
		return model.Match{}, false
	}
	return m, true
}

// SaveMatch creates the match when its id is empty, otherwise replaces the
// stored match together with its lineups, events and column in one transaction.
func (s *SQLiteStore) SaveMatch(sheet model.MatchSheet) (model.Match, error) {
	if err := sheet.Validate(); err != nil {
		return model.Match{}, err
	}
	match := sheet.Match
	match.Date = model.NormalizeMatchDate(match.Date)
	creating := match.ID == ""
	if creating {
		match.ID = uuid.NewString()
	}

	tx, err := s.db.Begin()
	if err != nil {
		return model.Match{}, fmt.Errorf("begin save match: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, row := range sheet.TeamRows(match.ID) {
		var exists int
		if err := tx.QueryRow(`SELECT COUNT(1) FROM players WHERE id = ?`, *row.PlayerID).Scan(&exists); err != nil {
			return model.Match{}, err
		}
		if exists == 0 {
			return model.Match{}, fmt.Errorf("%w: %s", ErrUnknownPlayer, *row.PlayerID)
		}
	}

	if creating {
		_, err = tx.Exec(`INSERT INTO matches (id, date, home_score, away_score) VALUES (?,?,?,?)`,
			match.ID, timeValueString(match.Date.UTC()), match.HomeScore, match.AwayScore)
		if err != nil {
			return model.Match{}, err
		}
	} else {
		res, err := tx.Exec(`UPDATE matches SET date = ?, home_score = ?, away_score = ? WHERE id = ?`,
			timeValueString(match.Date.UTC()), match.HomeScore, match.AwayScore, match.ID)
		if err != nil {
			return model.Match{}, err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return model.Match{}, fmt.Errorf("match %s: %w", match.ID, ErrNotFound)
		}
		for _, stmt := range []string{
			`DELETE FROM match_teams WHERE match_id = ?`,
			`DELETE FROM match_events WHERE match_id = ?`,
			`DELETE FROM match_columns WHERE match_id = ?`,
		} {
			if _, err := tx.Exec(stmt, match.ID); err != nil {
				return model.Match{}, err
			}
		}
	}

	for i, row := range sheet.TeamRows(match.ID) {
		if _, err := tx.Exec(`INSERT INTO match_teams (match_id, team, player_id, position) VALUES (?,?,?,?)`,
			row.MatchID, string(row.Team), *row.PlayerID, i); err != nil {
			return model.Match{}, err
		}
	}
	for i, row := range sheet.EventRows(match.ID) {
		if _, err := tx.Exec(`INSERT INTO match_events (match_id, player_id, type, value, position) VALUES (?,?,?,?,?)`,
			row.MatchID, row.PlayerID, string(row.Type), intPtrValue(row.Value), i); err != nil {
			return model.Match{}, err
		}
	}
	if column := sheet.NormalizedColumn(match.ID); column != nil {
		if _, err := tx.Exec(`INSERT INTO match_columns (match_id, title, author, content) VALUES (?,?,?,?)`,
			column.MatchID, column.Title, column.Author, column.Content); err != nil {
			return model.Match{}, err
		}
	}
	if err := tx.Commit(); err != nil {
		return model.Match{}, fmt.Errorf("commit save match: %w", err)
	}
	match.Date = match.Date.In(s.loc)
	return match, nil
}

func (s *SQLiteStore) DeleteMatch(id string) error {
	res, err := s.db.Exec(`DELETE FROM matches WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("match %s: %w", id, ErrNotFound)
	}
	return nil
}

const sqliteTeamRowsQuery = `SELECT t.match_id, t.team, t.player_id, p.id, p.name, p.slug, p.image_url, p.is_public
FROM match_teams t
JOIN matches m ON m.id = t.match_id
LEFT JOIN players p ON p.id = t.player_id`

const sqliteEventRowsQuery = `SELECT e.match_id, e.player_id, e.type, e.value, p.id, p.name, p.slug, p.image_url, p.is_public
FROM match_events e
JOIN matches m ON m.id = e.match_id
LEFT JOIN players p ON p.id = e.player_id`

func (s *SQLiteStore) ListTeamRows() ([]model.TeamRow, error) {
	return s.queryTeamRows(sqliteTeamRowsQuery + ` ORDER BY m.date DESC, m.id, t.position`)
}

func (s *SQLiteStore) MatchTeams(matchID string) ([]model.TeamRow, error) {
	return s.queryTeamRows(sqliteTeamRowsQuery+` WHERE t.match_id = ? ORDER BY t.position`, matchID)
}

func (s *SQLiteStore) queryTeamRows(query string, args ...any) ([]model.TeamRow, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query team rows: %w", err)
	}
	defer rows.Close()

	out := []model.TeamRow{}
	for rows.Next() {
		var row model.TeamRow
		var team string
		var playerID sql.NullString
		var lite nullPlayerLite
		if err := rows.Scan(&row.MatchID, &team, &playerID, &lite.ID, &lite.Name, &lite.Slug, &lite.ImageURL, &lite.IsPublic); err != nil {
			return nil, fmt.Errorf("scan team row: %w", err)
		}
		row.Team = model.Side(team)
		if playerID.Valid {
			row.PlayerID = model.StringPtr(playerID.String)
		}
		row.Player = lite.toLite()
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *SQLiteStore) ListEventRows() ([]model.EventRow, error) {
	return s.queryEventRows(sqliteEventRowsQuery + ` ORDER BY m.date DESC, m.id, e.position`)
}

func (s *SQLiteStore) MatchEvents(matchID string) ([]model.EventRow, error) {
	return s.queryEventRows(sqliteEventRowsQuery+` WHERE e.match_id = ? ORDER BY e.position`, matchID)
}

func (s *SQLiteStore) queryEventRows(query string, args ...any) ([]model.EventRow, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query event rows: %w", err)
	}
	defer rows.Close()

	out := []model.EventRow{}
	for rows.Next() {
		var row model.EventRow
		var typ string
		var value sql.NullInt64
		var lite nullPlayerLite
		if err := rows.Scan(&row.MatchID, &row.PlayerID, &typ, &value, &lite.ID, &lite.Name, &lite.Slug, &lite.ImageURL, &lite.IsPublic); err != nil {
			return nil, fmt.Errorf("scan event row: %w", err)
		}
		row.Type = model.EventType(typ)
		if value.Valid {
			row.Value = model.IntPtr(int(value.Int64))
		}
		row.Player = lite.toLite()
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *SQLiteStore) GetMatchColumn(matchID string) (model.MatchColumn, bool) {
	var c model.MatchColumn
	err := s.db.QueryRow(`SELECT match_id, title, author, content FROM match_columns WHERE match_id = ?`, matchID).
		Scan(&c.MatchID, &c.Title, &c.Author, &c.Content)
	if err != nil {
		return model.MatchColumn{}, false
	}
	return c, true
}

func (s *SQLiteStore) ListGalleryItems() ([]model.GalleryItem, error) {
	rows, err := s.db.Query(`SELECT id, created_at, title, description, media_type, public_url, match_id FROM gallery_items ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list gallery items: %w", err)
	}
	defer rows.Close()

	items := []model.GalleryItem{}
	for rows.Next() {
		var item model.GalleryItem
		var createdAt string
		var mediaType string
		var matchID sql.NullString
		if err := rows.Scan(&item.ID, &createdAt, &item.Title, &item.Description, &mediaType, &item.PublicURL, &matchID); err != nil {
			return nil, fmt.Errorf("scan gallery item: %w", err)
		}
		if parsed, ok := parseTimeString(createdAt); ok {
			item.CreatedAt = parsed
		}
		item.MediaType = model.MediaType(mediaType)
		if matchID.Valid {
			item.MatchID = model.StringPtr(matchID.String)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list gallery items: %w", err)
	}
	return items, nil
}

func (s *SQLiteStore) CreateGalleryItem(item model.GalleryItem) (model.GalleryItem, error) {
	item, err := prepareGalleryItem(item)
	if err != nil {
		return model.GalleryItem{}, err
	}
	if item.MatchID != nil {
		if _, ok := s.GetMatch(*item.MatchID); !ok {
			return model.GalleryItem{}, fmt.Errorf("match %s: %w", *item.MatchID, ErrNotFound)
		}
	}
	_, err = s.db.Exec(`INSERT INTO gallery_items (id, created_at, title, description, media_type, public_url, match_id) VALUES (?,?,?,?,?,?,?)`,
		item.ID, timeValueString(item.CreatedAt.UTC()), item.Title, item.Description, string(item.MediaType), item.PublicURL, stringPtrValue(item.MatchID),
	)
	if err != nil {
		return model.GalleryItem{}, err
	}
	return item, nil
}

func scanSQLiteAdminRow(scanner interface{ Scan(dest ...any) error }) (model.Admin, error) {
	var admin model.Admin
	var createdAt sql.NullString
	if err := scanner.Scan(&admin.ID, &admin.Email, &admin.PasswordHash, &createdAt); err != nil {
		return model.Admin{}, err
	}
	if createdAt.Valid {
		if parsed, ok := parseTimeString(createdAt.String); ok {
			admin.CreatedAt = parsed
		}
	}
	return admin, nil
}

func scanSQLitePlayerRow(scanner interface{ Scan(dest ...any) error }) (model.Player, error) {
	var p model.Player
	var createdAt sql.NullString
	if err := scanner.Scan(&p.ID, &p.Name, &p.Slug, &p.Nickname, &p.Description, &p.ImageURL, &p.IsPublic, &createdAt); err != nil {
		return model.Player{}, err
	}
	if createdAt.Valid {
		if parsed, ok := parseTimeString(createdAt.String); ok {
			p.CreatedAt = parsed
		}
	}
	return p, nil
}

func scanSQLiteMatchRow(scanner interface{ Scan(dest ...any) error }, loc *time.Location) (model.Match, error) {
	var m model.Match
	var date string
	if err := scanner.Scan(&m.ID, &date, &m.HomeScore, &m.AwayScore); err != nil {
		return model.Match{}, err
	}
	parsed, ok := parseTimeString(date)
	if !ok {
		return model.Match{}, fmt.Errorf("match %s: bad date %q", m.ID, date)
	}
	m.Date = parsed.In(loc)
	return m, nil
}

func timeValueString(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.Format(time.RFC3339Nano)
}

func parseTimeString(value string) (time.Time, bool) {
	if strings.TrimSpace(value) == "" {
		return time.Time{}, false
	}
	if parsed, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return parsed, true
	}
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed, true
	}
	return time.Time{}, false
}
