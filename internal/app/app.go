// Package app wires configuration, storage, services, and the HTTP server
// into a runnable application.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gigfrog/backend/internal/adapter/postgres"
	activityrepo "github.com/gigfrog/backend/internal/adapter/postgres/activity"
	leadrepo "github.com/gigfrog/backend/internal/adapter/postgres/lead"
	profilerepo "github.com/gigfrog/backend/internal/adapter/postgres/profile"
	referralrepo "github.com/gigfrog/backend/internal/adapter/postgres/referral"
	userleadrepo "github.com/gigfrog/backend/internal/adapter/postgres/userlead"
	"github.com/gigfrog/backend/internal/auth"
	"github.com/gigfrog/backend/internal/config"
	jobpagesvc "github.com/gigfrog/backend/internal/service/jobpage"
	leadsvc "github.com/gigfrog/backend/internal/service/lead"
	pipelinesvc "github.com/gigfrog/backend/internal/service/pipeline"
	publishsvc "github.com/gigfrog/backend/internal/service/publish"
	referralsvc "github.com/gigfrog/backend/internal/service/referral"
	userleadsvc "github.com/gigfrog/backend/internal/service/userlead"
	"github.com/gigfrog/backend/internal/transport/middleware"
	"github.com/gigfrog/backend/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, connects to
// the database, wires repositories and services, and serves HTTP until the
// context is canceled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	if cfg.Database.Migrate {
		if err := migrate(ctx, logger, cfg.Database); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()

	leads := leadrepo.New(pool)
	userLeads := userleadrepo.New(pool)
	referrals := referralrepo.New(pool)
	activities := activityrepo.New(pool)
	profiles := profilerepo.New(pool)
	tx := postgres.NewTxManager(pool)

	verifier := auth.NewTokenVerifier(cfg.Auth.SupabaseJWTSecret, cfg.Auth.SupabaseIssuer)
	authSvc := auth.NewService(logger, verifier, profiles)

	leadService := leadsvc.NewService(logger, leads, cfg.Leads.DefaultPageSize, cfg.Leads.MaxPageSize)
	userLeadService := userleadsvc.NewService(logger, userLeads, leads, activities, tx)
	referralService := referralsvc.NewService(logger, referrals, userLeads, tx)
	pipelineService := pipelinesvc.NewService(logger, userLeads, leads, referrals)
	publishService := publishsvc.NewService(logger, leads, userLeads)
	jobPageService := jobpagesvc.NewService(logger, nil)

	router := rest.NewRouter(rest.Handlers{
		Health:    rest.NewHealthHandler(pool, BuildVersion()),
		Leads:     rest.NewLeadHandler(leadService, logger),
		UserLeads: rest.NewUserLeadHandler(userLeadService, logger),
		Referrals: rest.NewReferralHandler(referralService, logger),
		Pipeline:  rest.NewPipelineHandler(pipelineService, logger),
		Publish:   rest.NewPublishHandler(publishService, logger),
		ParseJob:  rest.NewParseJobHandler(jobPageService, logger),
	})

	limiter := middleware.NewRateLimiter(time.Minute)
	defer limiter.Stop()

	handler := middleware.Chain(
		middleware.RequestID,
		middleware.Recovery(logger),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
		limiter.Limit(cfg.Server.RateLimitPerMin),
		middleware.Auth(authSvc),
	)(router)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	return nil
}
