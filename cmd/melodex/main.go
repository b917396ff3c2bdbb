package main

import (
	"context"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"melodex/internal/app/access"
	"melodex/internal/app/engagement"
	"melodex/internal/app/playlists"
	"melodex/internal/cache"
	"melodex/internal/httpapi"
	"melodex/internal/middleware"
	"melodex/internal/store"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	setupLogging(cfg)

	db, err := openDatabase(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer db.Close()

	if err := bootstrapSchema(context.Background(), db); err != nil {
		log.Fatal().Err(err).Msg("bootstrap schema")
	}

	aggregateCache, err := openCache(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("open cache")
	}
	defer aggregateCache.Close()

	dataStore := store.New(db)

	accessSvc := access.New(dataStore)
	engagementSvc := engagement.New(dataStore, aggregateCache, log.Logger)
	playlistSvc := playlists.New(dataStore, accessSvc)

	server := httpapi.New(engagementSvc, playlistSvc, dataStore)

	handler := middleware.RequestLogging()(
		middleware.Recovery()(
			withCORS(cfg.AllowedOrigins, server.Routes()),
		),
	)

	log.Info().Str("addr", cfg.Addr).Msg("API listening")
	if err := http.ListenAndServe(cfg.Addr, handler); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}

func setupLogging(cfg Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	if cfg.LogFormat == "text" {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		}).Level(level).With().Timestamp().Logger()
	} else {
		log.Logger = zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()
	}
}

// openCache picks the aggregate cache backend: a BoltDB file when CACHE_PATH
// is set, an in-process map otherwise.
func openCache(cfg Config) (cache.Cache, error) {
	if cfg.CachePath != "" {
		return cache.NewBolt(cfg.CachePath)
	}
	return cache.NewMemory(), nil
}

func withCORS(allowedOrigins []string, next http.Handler) http.Handler {
	originAllowed := func(origin string) bool {
		if len(allowedOrigins) == 0 || origin == "" {
			return false
		}
		for _, o := range allowedOrigins {
			if strings.EqualFold(o, origin) {
				return true
			}
		}
		return false
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if originAllowed(origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, X-User-ID")
			w.Header().Set("Access-Control-Max-Age", "3600")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
