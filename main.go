package main

import (
	"errors"
	"io"
	"net/http"

	"petak-app/internal/awards"
	"petak-app/internal/cache"
	"petak-app/internal/config"
	"petak-app/internal/logging"
	"petak-app/internal/model"
	"petak-app/internal/store"
	"petak-app/internal/web"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/awslabs/aws-lambda-go-api-proxy/httpadapter"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg := config.Load()
	log := logging.NewLogger("petak", cfg.LogLevel)
	if cfg.SessionSecret == "" {
		log.Fatal("SESSION_SECRET is required outside dev mode")
	}

	appStore, err := openStore(cfg)
	if err != nil {
		log.WithError(err).Fatal("open store")
	}
	if closer, ok := appStore.(io.Closer); ok {
		defer closer.Close()
	}
	seedAdmin(appStore, cfg, log)

	var snapshots cache.Cache = cache.Noop{}
	if cfg.RedisURL != "" {
		redisCache, err := cache.NewRedis(cfg.RedisURL, cfg.CacheTTL)
		if err != nil {
			log.WithError(err).Warn("redis unavailable, serving without snapshot cache")
		} else {
			snapshots = redisCache
		}
	}

	server := web.NewServer(web.Options{
		Store:         appStore,
		Cache:         snapshots,
		Log:           log,
		SessionSecret: []byte(cfg.SessionSecret),
		SessionTTL:    cfg.SessionTTL,
		Awards:        awards.Options{MinMatchesEff: cfg.MinMatchesEff, MinMatchesForm: cfg.MinMatchesForm},
		Location:      cfg.Location,
		Dev:           cfg.IsDev(),
	})
	handler := server.Routes()

	if config.InLambda() {
		log.Info("starting in lambda mode")
		adapter := httpadapter.New(handler)
		lambda.Start(adapter.ProxyWithContext)
		return
	}
	log.WithField("addr", cfg.HTTPAddr).Info("starting http server")
	if err := http.ListenAndServe(cfg.HTTPAddr, handler); err != nil {
		log.WithError(err).Fatal("http server")
	}
}

// openStore prefers postgres, then sqlite, and falls back to the in-memory
// store, which is seeded with demo data in dev mode.
func openStore(cfg config.Config) (store.Store, error) {
	switch {
	case cfg.PostgresDSN != "":
		return store.NewPostgresStore(cfg.PostgresDSN, store.PostgresOptions{
			MigrationsDir: cfg.PostgresMigrationsDir,
			Location:      cfg.Location,
		})
	case cfg.DBPath != "":
		return store.NewSQLiteStore(cfg.DBPath, store.SQLiteOptions{
			MigrationsDir: cfg.DBMigrationsDir,
			Location:      cfg.Location,
		})
	}
	return store.NewMemoryStore(store.MemoryOptions{Seed: cfg.IsDev(), Location: cfg.Location}), nil
}

func seedAdmin(s store.Store, cfg config.Config, log *logrus.Entry) {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return
	}
	hash, err := store.HashPassword(cfg.AdminPassword)
	if err != nil {
		log.WithError(err).Error("hash admin password")
		return
	}
	_, err = s.CreateAdmin(model.Admin{Email: cfg.AdminEmail, PasswordHash: hash})
	if err != nil && !errors.Is(err, store.ErrEmailTaken) {
		log.WithError(err).Error("seed admin")
	}
}
