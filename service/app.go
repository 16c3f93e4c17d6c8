package service

import (
	"net/http"

	"inkwell/app/config"
	"inkwell/app/routes"

	"github.com/dgraph-io/badger/v4"
)

// RunAppServer starts the blog service.
func RunAppServer(cfg config.Config) {
	logger := newLogger()

	opts := badger.DefaultOptions(cfg.DBPath).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		logger.Fatal().Err(err).Str("path", cfg.DBPath).Msg("failed to open database")
	}
	defer db.Close()

	router := routes.SetupRoutes(db, logger, cfg)

	logger.Info().Str("addr", cfg.Addr).Msg("starting blog service")
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		logger.Fatal().Err(err).Msg("server error")
	}
}
