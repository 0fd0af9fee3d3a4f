package main

import (
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordsmith/internal/auth"
	"github.com/robalobadob/wordsmith/internal/config"
	"github.com/robalobadob/wordsmith/internal/httpserver"
	"github.com/robalobadob/wordsmith/internal/session"
	"github.com/robalobadob/wordsmith/internal/store"
	"github.com/robalobadob/wordsmith/internal/words"
)

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to read config")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	wl, err := words.Load(words.Sources{
		StartFile:      cfg.WordsStartFile,
		DictionaryFile: cfg.WordsDictionaryFile,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load word lists")
	}
	start, dict := wl.Stats()
	log.Info().Int("start", start).Int("dictionary", dict).Msg("word lists loaded")

	var (
		st      store.Store
		authSvc *auth.Service
	)
	if cfg.InMemory() {
		st = store.NewMemoryStore()
		log.Warn().Msg("using in-memory store; sessions are lost on restart and accounts are disabled")
	} else {
		db, err := store.OpenSQLite(cfg.DBPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("failed to open database")
		}
		defer db.Close()
		st = db
		authSvc = auth.NewService(db.DB(), cfg.JWTSecret, cfg.TokenTTL())
	}

	mgr := session.NewManager(st, wl, session.WithDailySalt(cfg.DailySalt))
	srv := httpserver.New(cfg, mgr, wl, authSvc)
	log.Info().Str("port", cfg.Port).Msg("starting wordsmith server")
	if err := srv.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
