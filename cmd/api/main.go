package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/flashfund/server/internal/adapter/repo"
	"github.com/flashfund/server/internal/domain"
	"github.com/flashfund/server/internal/http/handlers"
	"github.com/flashfund/server/internal/http/httpapi"
	"github.com/flashfund/server/internal/infra"
	"github.com/flashfund/server/internal/ledger"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()

	// Journal: Postgres when configured, in-memory otherwise.
	var journal domain.EventJournal
	if cfg.DatabaseURL != "" {
		dbpool, err := infra.NewDBPool(ctx, cfg)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect database")
		}
		defer dbpool.Close()

		pg := repo.NewEventJournal(dbpool)
		if err := pg.EnsureSchema(ctx); err != nil {
			logger.Fatal().Err(err).Msg("failed to prepare journal schema")
		}
		journal = pg
	} else {
		logger.Warn().Msg("DATABASE_URL not set, journal is in-memory only")
		journal = repo.NewMemoryJournal()
	}

	engine, err := ledger.New(cfg.LedgerOwner, logger,
		ledger.WithFeeBps(cfg.PlatformFeeBps),
		ledger.WithJournal(journal),
	)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to construct ledger engine")
	}

	replayed, err := engine.Replay(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to replay journal")
	}
	if replayed > 0 {
		logger.Info().Int("events", replayed).Msg("ledger state rebuilt from journal")
	}

	app := handlers.NewApp(engine, logger)
	router := httpapi.NewRouter(app, cfg, logger)
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
