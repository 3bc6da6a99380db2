package web

import (
	"net/http"
	"time"

	"petak-app/internal/awards"
	"petak-app/internal/cache"
	"petak-app/internal/metrics"
	"petak-app/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

type Options struct {
	Store         store.Store
	Cache         cache.Cache
	Log           *logrus.Entry
	SessionSecret []byte
	SessionTTL    time.Duration
	Awards        awards.Options
	Location      *time.Location
	Dev           bool
}

type Server struct {
	store         store.Store
	cache         cache.Cache
	log           *logrus.Entry
	sessionSecret []byte
	sessionTTL    time.Duration
	awardOpts     awards.Options
	loc           *time.Location
	dev           bool
}

func NewServer(opts Options) *Server {
	s := &Server{
		store:         opts.Store,
		cache:         opts.Cache,
		log:           opts.Log,
		sessionSecret: opts.SessionSecret,
		sessionTTL:    opts.SessionTTL,
		awardOpts:     opts.Awards.WithDefaults(),
		loc:           opts.Location,
		dev:           opts.Dev,
	}
	if s.cache == nil {
		s.cache = cache.Noop{}
	}
	if s.log == nil {
		s.log = logrus.NewEntry(logrus.StandardLogger())
	}
	if s.sessionTTL <= 0 {
		s.sessionTTL = 7 * 24 * time.Hour
	}
	if s.loc == nil {
		s.loc = time.Local
	}
	return s
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(Instrument(s.log))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/years", s.handleYears)
		r.Get("/periods", s.handlePeriods)
		r.Get("/awards", s.handleAwards)
		r.Get("/awards/history", s.handleAwardsHistory)
		r.Get("/awards/dominance", s.handleDominance)
		r.Get("/standings", s.handleStandings)
		r.Get("/rivalries", s.handleRivalries)
		r.Get("/matches", s.handleMatches)
		r.Get("/matches/{matchID}", s.handleMatchShow)
		r.Get("/players", s.handlePlayers)
		r.Get("/players/{slug}", s.handlePlayerShow)
		r.Get("/gallery", s.handleGallery)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Post("/login", s.handleLogin)
		r.Group(func(r chi.Router) {
			r.Use(s.WithAdminSession)
			r.Get("/me", s.handleAdminMe)
			r.Post("/logout", s.handleLogout)
			r.Post("/matches", s.handleMatchCreate)
			r.Put("/matches/{matchID}", s.handleMatchUpdate)
			r.Delete("/matches/{matchID}", s.handleMatchDelete)
			r.Post("/players", s.handlePlayerCreate)
			r.Put("/players/{playerID}", s.handlePlayerUpdate)
			r.Post("/gallery", s.handleGalleryCreate)
		})
	})

	if s.dev {
		r.Post("/dev/session", s.handleDevSession)
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Nije pronađeno.")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "")
	})
	return r
}
