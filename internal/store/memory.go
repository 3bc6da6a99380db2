package store

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"petak-app/internal/model"

	"github.com/google/uuid"
)

// Admin account seeded into the memory store.
const (
	DevAdminEmail    = "admin@petak.local"
	DevAdminPassword = "petak123"
)

type MemoryStore struct {
	mu      sync.RWMutex
	loc     *time.Location
	admins  map[string]model.Admin
	players map[string]model.Player
	matches map[string]model.Match
	teams   map[string][]model.TeamRow
	events  map[string][]model.EventRow
	columns map[string]model.MatchColumn
	gallery map[string]model.GalleryItem
}

type MemoryOptions struct {
	Seed     bool
	Location *time.Location
}

func NewMemoryStore(opts MemoryOptions) *MemoryStore {
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	s := &MemoryStore{
		loc:     loc,
		admins:  make(map[string]model.Admin),
		players: make(map[string]model.Player),
		matches: make(map[string]model.Match),
		teams:   make(map[string][]model.TeamRow),
		events:  make(map[string][]model.EventRow),
		columns: make(map[string]model.MatchColumn),
		gallery: make(map[string]model.GalleryItem),
	}
	if opts.Seed {
		seedData(s)
	}
	return s
}

func (s *MemoryStore) GetAdmin(id string) (model.Admin, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.admins[id]
	return a, ok
}

func (s *MemoryStore) GetAdminByEmail(email string) (model.Admin, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, a := range s.admins {
		if strings.EqualFold(a.Email, strings.TrimSpace(email)) {
			return a, true
		}
	}
	return model.Admin{}, false
}

func (s *MemoryStore) CreateAdmin(admin model.Admin) (model.Admin, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	admin.Email = strings.TrimSpace(admin.Email)
	if admin.Email == "" {
		return model.Admin{}, errors.New("email is required")
	}
	for _, a := range s.admins {
		if strings.EqualFold(a.Email, admin.Email) {
			return model.Admin{}, ErrEmailTaken
		}
	}
	if admin.ID == "" {
		admin.ID = uuid.NewString()
	}
	if admin.CreatedAt.IsZero() {
		admin.CreatedAt = time.Now()
	}
	s.admins[admin.ID] = admin
	return admin, nil
}

func (s *MemoryStore) ListPlayers() ([]model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	players := make([]model.Player, 0, len(s.players))
	for _, p := range s.players {
		players = append(players, p)
	}
	sort.Slice(players, func(i, j int) bool { return players[i].Name < players[j].Name })
	return players, nil
}

func (s *MemoryStore) GetPlayer(id string) (model.Player, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.players[id]
	return p, ok
}

func (s *MemoryStore) GetPlayerBySlug(slug string) (model.Player, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.players {
		if p.Slug == slug {
			return p, true
		}
	}
	return model.Player{}, false
}

func (s *MemoryStore) CreatePlayer(player model.Player) (model.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

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
	if s.slugTaken(player.Slug, player.ID) {
		return model.Player{}, ErrSlugTaken
	}
	s.players[player.ID] = player
	return player, nil
}

func (s *MemoryStore) UpdatePlayer(player model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.players[player.ID]
	if !ok {
		return fmt.Errorf("player %s: %w", player.ID, ErrNotFound)
	}
	player, err := preparePlayer(player)
	if err != nil {
		return err
	}
	if s.slugTaken(player.Slug, player.ID) {
		return ErrSlugTaken
	}
	player.CreatedAt = existing.CreatedAt
	s.players[player.ID] = player
	return nil
}

func (s *MemoryStore) slugTaken(slug, exceptID string) bool {
	for _, p := range s.players {
		if p.Slug == slug && p.ID != exceptID {
			return true
		}
	}
	return false
}

func (s *MemoryStore) ListMatches() ([]model.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.sortedMatches(), nil
}

func (s *MemoryStore) sortedMatches() []model.Match {
	matches := make([]model.Match, 0, len(s.matches))
	for _, m := range s.matches {
		m.Date = m.Date.In(s.loc)
		matches = append(matches, m)
	}
	sortMatches(matches)
	return matches
}

func (s *MemoryStore) GetMatch(id string) (model.Match, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.matches[id]
	if !ok {
		return model.Match{}, false
	}
	m.Date = m.Date.In(s.loc)
	return m, true
}

func (s *MemoryStore) SaveMatch(sheet model.MatchSheet) (model.Match, error) {
	if err := sheet.Validate(); err != nil {
		return model.Match{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	match := sheet.Match
	if match.ID == "" {
		match.ID = uuid.NewString()
	} else if _, ok := s.matches[match.ID]; !ok {
		return model.Match{}, fmt.Errorf("match %s: %w", match.ID, ErrNotFound)
	}
	for _, row := range sheet.TeamRows(match.ID) {
		if _, ok := s.players[*row.PlayerID]; !ok {
			return model.Match{}, fmt.Errorf("%w: %s", ErrUnknownPlayer, *row.PlayerID)
		}
	}
	match.Date = model.NormalizeMatchDate(match.Date)

	s.matches[match.ID] = match
	s.teams[match.ID] = sheet.TeamRows(match.ID)
	s.events[match.ID] = sheet.EventRows(match.ID)
	if column := sheet.NormalizedColumn(match.ID); column != nil {
		s.columns[match.ID] = *column
	} else {
		delete(s.columns, match.ID)
	}
	match.Date = match.Date.In(s.loc)
	return match, nil
}

func (s *MemoryStore) DeleteMatch(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.matches[id]; !ok {
		return fmt.Errorf("match %s: %w", id, ErrNotFound)
	}
	delete(s.matches, id)
	delete(s.teams, id)
	delete(s.events, id)
	delete(s.columns, id)
	for key, item := range s.gallery {
		if item.MatchID != nil && *item.MatchID == id {
			item.MatchID = nil
			s.gallery[key] = item
		}
	}
	return nil
}

func (s *MemoryStore) ListTeamRows() ([]model.TeamRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := []model.TeamRow{}
	for _, m := range s.sortedMatches() {
		rows = append(rows, s.embedTeams(s.teams[m.ID])...)
	}
	return rows, nil
}

func (s *MemoryStore) ListEventRows() ([]model.EventRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := []model.EventRow{}
	for _, m := range s.sortedMatches() {
		rows = append(rows, s.embedEvents(s.events[m.ID])...)
	}
	return rows, nil
}

func (s *MemoryStore) MatchTeams(matchID string) ([]model.TeamRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.embedTeams(s.teams[matchID]), nil
}

func (s *MemoryStore) MatchEvents(matchID string) ([]model.EventRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.embedEvents(s.events[matchID]), nil
}

func (s *MemoryStore) embedTeams(rows []model.TeamRow) []model.TeamRow {
	out := make([]model.TeamRow, 0, len(rows))
	for _, row := range rows {
		if row.PlayerID != nil {
			row.Player = s.lite(*row.PlayerID)
		}
		out = append(out, row)
	}
	return out
}

func (s *MemoryStore) embedEvents(rows []model.EventRow) []model.EventRow {
	out := make([]model.EventRow, 0, len(rows))
	for _, row := range rows {
		row.Player = s.lite(row.PlayerID)
		out = append(out, row)
	}
	return out
}

func (s *MemoryStore) lite(playerID string) *model.PlayerLite {
	p, ok := s.players[playerID]
	if !ok {
		return nil
	}
	lite := p.Lite()
	return &lite
}

func (s *MemoryStore) GetMatchColumn(matchID string) (model.MatchColumn, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.columns[matchID]
	return c, ok
}

func (s *MemoryStore) ListGalleryItems() ([]model.GalleryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]model.GalleryItem, 0, len(s.gallery))
	for _, item := range s.gallery {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	return items, nil
}

func (s *MemoryStore) CreateGalleryItem(item model.GalleryItem) (model.GalleryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, err := prepareGalleryItem(item)
	if err != nil {
		return model.GalleryItem{}, err
	}
	if item.MatchID != nil {
		if _, ok := s.matches[*item.MatchID]; !ok {
			return model.GalleryItem{}, fmt.Errorf("match %s: %w", *item.MatchID, ErrNotFound)
		}
	}
	s.gallery[item.ID] = item
	return item, nil
}

// preparePlayer trims input and derives the slug from the name when none is given.
func preparePlayer(player model.Player) (model.Player, error) {
	player.Name = strings.TrimSpace(player.Name)
	if player.Name == "" {
		return model.Player{}, fmt.Errorf("%w: player name is required", ErrInvalid)
	}
	player.Slug = model.Slugify(player.Slug)
	if player.Slug == "" {
		player.Slug = model.Slugify(player.Name)
	}
	if player.Slug == "" {
		return model.Player{}, fmt.Errorf("%w: player slug is required", ErrInvalid)
	}
	player.Nickname = strings.TrimSpace(player.Nickname)
	player.ImageURL = strings.TrimSpace(player.ImageURL)
	return player, nil
}

func prepareGalleryItem(item model.GalleryItem) (model.GalleryItem, error) {
	item.PublicURL = strings.TrimSpace(item.PublicURL)
	if item.PublicURL == "" {
		return model.GalleryItem{}, fmt.Errorf("%w: public url is required", ErrInvalid)
	}
	if item.MediaType == "" {
		item.MediaType = model.MediaImage
	}
	if item.MediaType != model.MediaImage && item.MediaType != model.MediaVideo {
		return model.GalleryItem{}, fmt.Errorf("%w: unknown media type %q", ErrInvalid, item.MediaType)
	}
	if item.MatchID != nil && strings.TrimSpace(*item.MatchID) == "" {
		item.MatchID = nil
	}
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now()
	}
	return item, nil
}

// sortMatches orders newest first; id breaks ties so listings are stable.
func sortMatches(matches []model.Match) {
	sort.Slice(matches, func(i, j int) bool {
		if !matches[i].Date.Equal(matches[j].Date) {
			return matches[i].Date.After(matches[j].Date)
		}
		return matches[i].ID < matches[j].ID
	})
}

func seedData(s *MemoryStore) {
	rng := rand.New(rand.NewSource(42))

	if hash, err := HashPassword(DevAdminPassword); err == nil {
		admin := model.Admin{ID: uuid.NewString(), Email: DevAdminEmail, PasswordHash: hash, CreatedAt: time.Now()}
		s.admins[admin.ID] = admin
	}

	names := []string{
		"Miljan Jovanović", "Marko Petrović", "Nikola Đorđević", "Stefan Ilić",
		"Luka Šarić", "Bojan Čolić", "Dušan Marković", "Aleksa Živković",
		"Ognjen Pavlović", "Vuk Stanković", "Filip Nikolić", "Petar Ristić",
	}
	playerIDs := make([]string, 0, len(names))
	for i, name := range names {
		p := model.Player{
			ID:        uuid.NewString(),
			Name:      name,
			Slug:      model.Slugify(name),
			ImageURL:  fmt.Sprintf("https://i.pravatar.cc/100?img=%d", 10+i),
			IsPublic:  i != len(names)-1,
			CreatedAt: time.Now(),
		}
		s.players[p.ID] = p
		playerIDs = append(playerIDs, p.ID)
	}

	currentYear := time.Now().Year()
	seedMatches(s, playerIDs, rng, currentYear-1, 30)
	seedMatches(s, playerIDs, rng, currentYear, 12)
}

// seedMatches plays count Friday matches spread over the year.
func seedMatches(s *MemoryStore, playerIDs []string, rng *rand.Rand, year int, count int) {
	if len(playerIDs) < 2*model.TeamSize {
		return
	}
	for i := 0; i < count; i++ {
		ids := append([]string{}, playerIDs...)
		rng.Shuffle(len(ids), func(a, b int) { ids[a], ids[b] = ids[b], ids[a] })
		sheet := model.MatchSheet{
			Match: model.Match{
				ID:        uuid.NewString(),
				Date:      randomFriday(rng, year, (i%12)+1, s.loc),
				HomeScore: rng.Intn(9),
				AwayScore: rng.Intn(9),
			},
			TeamA: ids[:model.TeamSize],
			TeamB: ids[model.TeamSize : 2*model.TeamSize],
			MVP:   ids[rng.Intn(2*model.TeamSize)],
		}
		sheet.Goals = randomContributions(rng, sheet.TeamA, sheet.Match.HomeScore)
		sheet.Goals = append(sheet.Goals, randomContributions(rng, sheet.TeamB, sheet.Match.AwayScore)...)
		sheet.Assists = randomContributions(rng, append(append([]string{}, sheet.TeamA...), sheet.TeamB...), rng.Intn(5))
		if i%4 == 0 {
			sheet.Column = &model.MatchColumn{Content: "Još jedan petak za pamćenje."}
		}

		id := sheet.Match.ID
		s.matches[id] = sheet.Match
		s.teams[id] = sheet.TeamRows(id)
		s.events[id] = sheet.EventRows(id)
		if column := sheet.NormalizedColumn(id); column != nil {
			s.columns[id] = *column
		}
	}
}

// randomContributions spreads goals over random members of a side, one row per player.
func randomContributions(rng *rand.Rand, side []string, goals int) []model.Contribution {
	byPlayer := map[string]int{}
	order := []string{}
	for g := 0; g < goals; g++ {
		id := side[rng.Intn(len(side))]
		if byPlayer[id] == 0 {
			order = append(order, id)
		}
		byPlayer[id]++
	}
	out := make([]model.Contribution, 0, len(order))
	for _, id := range order {
		out = append(out, model.Contribution{PlayerID: id, Value: byPlayer[id]})
	}
	return out
}

func randomFriday(rng *rand.Rand, year int, month int, loc *time.Location) time.Time {
	if month < 1 || month > 12 {
		month = 1
	}
	day := time.Date(year, time.Month(month), 1, 20, 0, 0, 0, loc)
	for day.Weekday() != time.Friday {
		day = day.AddDate(0, 0, 1)
	}
	return day.AddDate(0, 0, 7*rng.Intn(4))
}
