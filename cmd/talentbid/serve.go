package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ramcignex-del/TalentBid/internal/ai"
	"github.com/ramcignex-del/TalentBid/internal/ai/gemini"
	"github.com/ramcignex-del/TalentBid/internal/auth"
	"github.com/ramcignex-del/TalentBid/internal/bidding"
	"github.com/ramcignex-del/TalentBid/internal/config"
	"github.com/ramcignex-del/TalentBid/internal/db"
	"github.com/ramcignex-del/TalentBid/internal/httpapi"
	"github.com/ramcignex-del/TalentBid/internal/logger"
	"github.com/ramcignex-del/TalentBid/internal/notify"
	"github.com/ramcignex-del/TalentBid/internal/repository"
	"github.com/ramcignex-del/TalentBid/internal/sweeper"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run migrations and start the HTTP service",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context())
		},
	}
}

func serve(ctx context.Context) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.LogJSON, cfg.Debug)
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := db.RunMigrations(cfg.MigrationURL, cfg.PostgresConn); err != nil {
		return err
	}
	log.Info("migrations applied")

	pool, err := db.NewPostgresPool(ctx, cfg.PostgresConn)
	if err != nil {
		return err
	}
	defer pool.Close()
	log.Info("postgres connected")

	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		return err
	}
	defer rdb.Close()
	log.Info("redis connected")

	bids := repository.NewPostgresBidRepository(pool)
	candidates := repository.NewPostgresCandidateRepository(pool)
	employers := repository.NewPostgresEmployerRepository(pool)
	gateway := notify.NewGateway(rdb, log)

	assistant, err := buildAssistant(ctx, cfg, log)
	if err != nil {
		return err
	}

	svc := bidding.NewService(bids, candidates, employers, assistant, gateway, log)

	var sw *sweeper.Sweeper
	if cfg.SweepSpec != "" {
		sw = sweeper.New(bids, candidates, employers, gateway, log, cfg.SweepSpec)
		if err := sw.Start(ctx); err != nil {
			return err
		}
		defer sw.Stop()
	}

	authmw := auth.NewMiddleware(cfg.JWTSecret, candidates, employers, log)
	handler := httpapi.NewHandler(svc, assistant, log)

	srv := &http.Server{
		Addr:         cfg.ServerAddress,
		Handler:      handler.Routes(authmw.Handler),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", cfg.ServerAddress), zap.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errc:
		return err
	case sig := <-quit:
		log.Info("shutting down", zap.String("signal", sig.String()))
	case <-ctx.Done():
		log.Info("shutting down", zap.String("reason", "context canceled"))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("shutdown error", zap.Error(err))
	}
	log.Info("stopped")
	return nil
}

// buildAssistant selects the Gemini assistant when a key is configured and
// the deterministic fallback otherwise.
func buildAssistant(ctx context.Context, cfg *config.Config, log *zap.Logger) (ai.Assistant, error) {
	if cfg.GeminiAPIKey == "" {
		log.Info("no gemini api key, using fallback assistant")
		return ai.Fallback{}, nil
	}
	gen, err := gemini.NewGenerator(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		return nil, err
	}
	log.Info("gemini assistant enabled", zap.String("model", gen.Model()))
	return gemini.NewAssistant(gen), nil
}
