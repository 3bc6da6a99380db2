package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"petak-app/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
)

const dialectPostgres = "postgres"

type PostgresStore struct {
	db  *sql.DB
	loc *time.Location
}

type PostgresOptions struct {
	MigrationsDir string
	Location      *time.Location
}

func NewPostgresStore(dsn string, opts PostgresOptions) (*PostgresStore, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, errors.New("postgres dsn is required")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if err := applyMigrations(db, dialectPostgres, opts.MigrationsDir); err != nil {
		_ = db.Close()
		return nil, err
	}
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	return &PostgresStore{db: db, loc: loc}, nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func (s *PostgresStore) GetAdmin(id string) (model.Admin, bool) {
	var a model.Admin
	err := s.db.QueryRow(`SELECT id, email, password_hash, created_at FROM admins WHERE id = $1`, id).
		Scan(&a.ID, &a.Email, &a.PasswordHash, &a.CreatedAt)
	if err != nil {
		return model.Admin{}, false
	}
	return a, true
}

func (s *PostgresStore) GetAdminByEmail(email string) (model.Admin, bool) {
	var a model.Admin
	err := s.db.QueryRow(`SELECT id, email, password_hash, created_at FROM admins WHERE lower(email) = lower($1) LIMIT 1`, strings.TrimSpace(email)).
		Scan(&a.ID, &a.Email, &a.PasswordHash, &a.CreatedAt)
	if err != nil {
		return model.Admin{}, false
	}
	return a, true
}

func (s *PostgresStore) CreateAdmin(admin model.Admin) (model.Admin, error) {
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
	_, err := s.db.Exec(`INSERT INTO admins (id, email, password_hash, created_at) VALUES ($1,$2,$3,$4)`,
		admin.ID, admin.Email, admin.PasswordHash, admin.CreatedAt,
	)
	if err != nil {
		if isPgUniqueViolation(err) {
			return model.Admin{}, ErrEmailTaken
		}
		return model.Admin{}, err
	}
	return admin, nil
}

func (s *PostgresStore) ListPlayers() ([]model.Player, error) {
	rows, err := s.db.Query(`SELECT id, name, slug, nickname, description, image_url, is_public, created_at FROM players ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	defer rows.Close()

	players := []model.Player{}
	for rows.Next() {
		p, err := scanPlayerRow(rows)
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

func (s *PostgresStore) GetPlayer(id string) (model.Player, bool) {
	p, err := scanPlayerRow(s.db.QueryRow(`SELECT id, name, slug, nickname, description, image_url, is_public, created_at FROM players WHERE id = $1`, id))
	if err != nil {
		return model.Player{}, false
	}
	return p, true
}

func (s *PostgresStore) GetPlayerBySlug(slug string) (model.Player, bool) {
	p, err := scanPlayerRow(s.db.QueryRow(`SELECT id, name, slug, nickname, description, image_url, is_public, created_at FROM players WHERE slug = $1`, slug))
	if err != nil {
		return model.Player{}, false
	}
	return p, true
}

func (s *PostgresStore) CreatePlayer(player model.Player) (model.Player, error) {
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
	_, err = s.db.Exec(`INSERT INTO players (id, name, slug, nickname, description, image_url, is_public, created_at) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		player.ID, player.Name, player.Slug, player.Nickname, player.Description, player.ImageURL, player.IsPublic, player.CreatedAt,
	)
	if err != nil {
		if isPgUniqueViolation(err) {
			return model.Player{}, ErrSlugTaken
		}
		return model.Player{}, err
	}
	return player, nil
}

func (s *PostgresStore) UpdatePlayer(player model.Player) error {
	player, err := preparePlayer(player)
	if err != nil {
		return err
	}
	res, err := s.db.Exec(`UPDATE players SET name = $1, slug = $2, nickname = $3, description = $4, image_url = $5, is_public = $6 WHERE id = $7`,
		player.Name, player.Slug, player.Nickname, player.Description, player.ImageURL, player.IsPublic, player.ID,
	)
	if err != nil {
		if isPgUniqueViolation(err) {
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

func (s *PostgresStore) ListMatches() ([]model.Match, error) {
	rows, err := s.db.Query(`SELECT id, date, home_score, away_score FROM matches ORDER BY date DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	defer rows.Close()

	matches := []model.Match{}
	for rows.Next() {
		var m model.Match
		if err := rows.Scan(&m.ID, &m.Date, &m.HomeScore, &m.AwayScore); err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		m.Date = m.Date.In(s.loc)
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	return matches, nil
}

func (s *PostgresStore) GetMatch(id string) (model.Match, bool) {
	var m model.Match
	err := s.db.QueryRow(`SELECT id, date, home_score, away_score FROM matches WHERE id = $1`, id).
		Scan(&m.ID, &m.Date, &m.HomeScore, &m.AwayScore)
	if err != nil {
		return model.Match{}, false
	}
	m.Date = m.Date.In(s.loc)
	return m, true
}

func (s *PostgresStore) SaveMatch(sheet model.MatchSheet) (model.Match, error) {
	if err := sheet.Validate(); err != nil {
		return model.Match{}, err
	}
	match := sheet.Match
	match.Date = model.NormalizeMatchDate(match.Date)
	creating := match.ID == ""
	if creating {
		match.ID = uuid.NewString()
	}
	teams := sheet.TeamRows(match.ID)

	tx, err := s.db.Begin()
	if err != nil {
		return model.Match{}, fmt.Errorf("begin save match: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	ids := make([]string, 0, len(teams))
	for _, row := range teams {
		ids = append(ids, *row.PlayerID)
	}
	var known int
	if err := tx.QueryRow(`SELECT COUNT(*) FROM players WHERE id = ANY($1)`, ids).Scan(&known); err != nil {
		return model.Match{}, err
	}
	if known != len(ids) {
		return model.Match{}, ErrUnknownPlayer
	}

	if creating {
		if _, err := tx.Exec(`INSERT INTO matches (id, date, home_score, away_score) VALUES ($1,$2,$3,$4)`,
			match.ID, match.Date, match.HomeScore, match.AwayScore); err != nil {
			return model.Match{}, err
		}
	} else {
		res, err := tx.Exec(`UPDATE matches SET date = $1, home_score = $2, away_score = $3 WHERE id = $4`,
			match.Date, match.HomeScore, match.AwayScore, match.ID)
		if err != nil {
			return model.Match{}, err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return model.Match{}, fmt.Errorf("match %s: %w", match.ID, ErrNotFound)
		}
		for _, stmt := range []string{
			`DELETE FROM match_teams WHERE match_id = $1`,
			`DELETE FROM match_events WHERE match_id = $1`,
			`DELETE FROM match_columns WHERE match_id = $1`,
		} {
			if _, err := tx.Exec(stmt, match.ID); err != nil {
				return model.Match{}, err
			}
		}
	}

	for i, row := range teams {
		if _, err := tx.Exec(`INSERT INTO match_teams (match_id, team, player_id, position) VALUES ($1,$2,$3,$4)`,
			row.MatchID, string(row.Team), *row.PlayerID, i); err != nil {
			return model.Match{}, err
		}
	}
	for i, row := range sheet.EventRows(match.ID) {
		if _, err := tx.Exec(`INSERT INTO match_events (match_id, player_id, type, value, position) VALUES ($1,$2,$3,$4,$5)`,
			row.MatchID, row.PlayerID, string(row.Type), intPtrValue(row.Value), i); err != nil {
			return model.Match{}, err
		}
	}
	if column := sheet.NormalizedColumn(match.ID); column != nil {
		if _, err := tx.Exec(`INSERT INTO match_columns (match_id, title, author, content) VALUES ($1,$2,$3,$4)`,
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

func (s *PostgresStore) DeleteMatch(id string) error {
	res, err := s.db.Exec(`DELETE FROM matches WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("match %s: %w", id, ErrNotFound)
	}
	return nil
}

const pgTeamRowsQuery = `SELECT t.match_id, t.team, t.player_id, p.id, p.name, p.slug, p.image_url, p.is_public
FROM match_teams t
JOIN matches m ON m.id = t.match_id
LEFT JOIN players p ON p.id = t.player_id`

const pgEventRowsQuery = `SELECT e.match_id, e.player_id, e.type, e.value, p.id, p.name, p.slug, p.image_url, p.is_public
FROM match_events e
JOIN matches m ON m.id = e.match_id
LEFT JOIN players p ON p.id = e.player_id`

func (s *PostgresStore) ListTeamRows() ([]model.TeamRow, error) {
	return s.queryTeamRows(pgTeamRowsQuery + ` ORDER BY m.date DESC, m.id, t.position`)
}

func (s *PostgresStore) MatchTeams(matchID string) ([]model.TeamRow, error) {
	return s.queryTeamRows(pgTeamRowsQuery+` WHERE t.match_id = $1 ORDER BY t.position`, matchID)
}

func (s *PostgresStore) queryTeamRows(query string, args ...any) ([]model.TeamRow, error) {
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

func (s *PostgresStore) ListEventRows() ([]model.EventRow, error) {
	return s.queryEventRows(pgEventRowsQuery + ` ORDER BY m.date DESC, m.id, e.position`)
}

func (s *PostgresStore) MatchEvents(matchID string) ([]model.EventRow, error) {
	return s.queryEventRows(pgEventRowsQuery+` WHERE e.match_id = $1 ORDER BY e.position`, matchID)
}

func (s *PostgresStore) queryEventRows(query string, args ...any) ([]model.EventRow, error) {
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

func (s *PostgresStore) GetMatchColumn(matchID string) (model.MatchColumn, bool) {
	var c model.MatchColumn
	err := s.db.QueryRow(`SELECT match_id, title, author, content FROM match_columns WHERE match_id = $1`, matchID).
		Scan(&c.MatchID, &c.Title, &c.Author, &c.Content)
	if err != nil {
		return model.MatchColumn{}, false
	}
	return c, true
}

func (s *PostgresStore) ListGalleryItems() ([]model.GalleryItem, error) {
	rows, err := s.db.Query(`SELECT id, created_at, title, description, media_type, public_url, match_id FROM gallery_items ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list gallery items: %w", err)
	}
	defer rows.Close()

	items := []model.GalleryItem{}
	for rows.Next() {
		var item model.GalleryItem
		var mediaType string
		var matchID sql.NullString
		if err := rows.Scan(&item.ID, &item.CreatedAt, &item.Title, &item.Description, &mediaType, &item.PublicURL, &matchID); err != nil {
			return nil, fmt.Errorf("scan gallery item: %w", err)
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

func (s *PostgresStore) CreateGalleryItem(item model.GalleryItem) (model.GalleryItem, error) {
	item, err := prepareGalleryItem(item)
	if err != nil {
		return model.GalleryItem{}, err
	}
	if item.MatchID != nil {
		if _, ok := s.GetMatch(*item.MatchID); !ok {
			return model.GalleryItem{}, fmt.Errorf("match %s: %w", *item.MatchID, ErrNotFound)
		}
	}
	_, err = s.db.Exec(`INSERT INTO gallery_items (id, created_at, title, description, media_type, public_url, match_id) VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		item.ID, item.CreatedAt, item.Title, item.Description, string(item.MediaType), item.PublicURL, stringPtrValue(item.MatchID),
	)
	if err != nil {
		return model.GalleryItem{}, err
	}
	return item, nil
}

func scanPlayerRow(scanner interface{ Scan(dest ...any) error }) (model.Player, error) {
	var p model.Player
	var createdAt sql.NullTime
	if err := scanner.Scan(&p.ID, &p.Name, &p.Slug, &p.Nickname, &p.Description, &p.ImageURL, &p.IsPublic, &createdAt); err != nil {
		return model.Player{}, err
	}
	if createdAt.Valid {
		p.CreatedAt = createdAt.Time
	}
	return p, nil
}

func isPgUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return isUniqueViolation(err)
}
