package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordscramble/server/internal/config"
	"github.com/robalobadob/wordscramble/server/internal/countdown"
	"github.com/robalobadob/wordscramble/server/internal/dictdb"
	"github.com/robalobadob/wordscramble/server/internal/game"
	"github.com/robalobadob/wordscramble/server/internal/httpserver"
	"github.com/robalobadob/wordscramble/server/internal/store"
	"github.com/robalobadob/wordscramble/server/internal/words"
)

func main() {
	cfg := config.Load()
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	if err := words.Init(); err != nil {
		log.Fatal().Err(err).Msg("failed to load word lists")
	}
	roots, known := words.Stats()
	log.Info().Int("roots", roots).Int("known", known).Msg("word lists loaded")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dict, admin, db, err := buildDictionary(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("dictionary", cfg.Dictionary).Msg("failed to set up dictionary")
	}
	if db != nil {
		defer db.Close()
	}

	mem := store.NewMemoryStore()
	go countdown.Run(ctx, cfg.TickInterval, mem, nil)
	go countdown.Sweep(ctx, cfg.SessionTTL/2, cfg.SessionTTL, mem)

	srv := httpserver.New(mem, httpserver.Options{
		Dictionary:        dict,
		Locale:            cfg.Locale,
		RoundSeconds:      cfg.RoundSeconds,
		RandomRoot:        words.RandomRoot,
		DailyRoot:         words.DailyRoot,
		DailySalt:         cfg.DailySalt,
		WordStats:         words.Stats,
		JWTSecret:         cfg.JWTSecret,
		TokenTTL:          cfg.TokenTTL,
		ClientOrigin:      cfg.ClientOrigin,
		SubmitRPS:         cfg.SubmitRPS,
		SubmitBurst:       cfg.SubmitBurst,
		Admin:             admin,
		AdminUser:         cfg.AdminUser,
		AdminPasswordHash: cfg.AdminPasswordHash,
	})

	log.Info().Str("port", cfg.Port).Str("dictionary", cfg.Dictionary).Int("roundSeconds", cfg.RoundSeconds).Msg("starting wordscramble server")
	if err := srv.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

// buildDictionary selects the dictionary backend. For "sqlite" it opens and
// migrates the database, seeds it from the loaded word list when empty, and
// returns the store as the admin word sink too.
func buildDictionary(ctx context.Context, cfg *config.Config) (game.Dictionary, httpserver.WordAdder, *sql.DB, error) {
	if cfg.Dictionary != "sqlite" {
		return words.NewStatic(words.Known(), cfg.Locale), nil, nil, nil
	}

	db, err := openDB(cfg.DBPath)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := migrate(db, migrationsFS); err != nil {
		db.Close()
		return nil, nil, nil, err
	}
	ds := dictdb.NewStore(db)
	n, err := ds.SeedIfEmpty(ctx, cfg.Locale, words.Known())
	if err != nil {
		db.Close()
		return nil, nil, nil, err
	}
	if n > 0 {
		log.Info().Int("words", n).Str("locale", cfg.Locale).Msg("seeded sqlite dictionary")
	}
	return ds, ds, db, nil
}
