package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/preptrack/preptrack-go/internal/crypto"
	"github.com/preptrack/preptrack-go/internal/handler"
	"github.com/preptrack/preptrack-go/internal/middleware"
	"github.com/preptrack/preptrack-go/internal/repository"
	"github.com/preptrack/preptrack-go/internal/service"
	"github.com/preptrack/preptrack-go/internal/telemetry"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand() *cobra.Command {
	var memory bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), memory)
		},
	}

	cmd.Flags().BoolVar(&memory, "memory", false, "Keep data in memory instead of MySQL (lost on exit)")
	return cmd
}

func runServe(ctx context.Context, memory bool) error {
	cfg, logger, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	shutdownTracing, err := telemetry.Init(ctx, serviceName, cfg.OTLPEndpoint)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Warn().Err(err).Msg("tracer shutdown failed")
		}
	}()

	var (
		users     service.UserStore
		questions service.QuestionStore
	)
	if memory {
		logger.Warn().Msg("using in-memory storage, data will not survive a restart")
		store := repository.NewMemoryStore()
		users, questions = store.Users(), store.Questions()
	} else {
		if err := cfg.RequireDatabase(); err != nil {
			return err
		}
		db, err := repository.NewDB(ctx, cfg.DatabaseDSN)
		if err != nil {
			return err
		}
		defer db.Close()
		users, questions = repository.NewUserRepository(db), repository.NewQuestionRepository(db)
	}

	tokens := crypto.NewTokenService(cfg.JWTSecret)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	router := handler.NewRouter(handler.RouterOptions{
		Auth:           handler.NewAuthHandler(service.NewAuthService(users, tokens)),
		Questions:      handler.NewQuestionHandler(service.NewQuestionService(questions)),
		Tokens:         tokens,
		Logger:         logger,
		Metrics:        middleware.NewMetrics(reg),
		Gatherer:       reg,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced shutdown: %w", err)
	}

	logger.Info().Msg("server stopped")
	return nil
}
