// Command backoffice serves the admin shell.
//
// @title        99minutos Backoffice API
// @version      1.0
// @description  Session, menu and audit endpoints of the back-office shell.
// @BasePath     /
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/99minutos/backoffice/internal/api"
	"github.com/99minutos/backoffice/internal/api/handler"
	"github.com/99minutos/backoffice/internal/core/domain"
	"github.com/99minutos/backoffice/internal/core/gatekeeper"
	"github.com/99minutos/backoffice/internal/core/service"
	"github.com/99minutos/backoffice/internal/infrastructure/config"
	mongodb "github.com/99minutos/backoffice/internal/infrastructure/db/mongo"
	redisdb "github.com/99minutos/backoffice/internal/infrastructure/db/redis"
	"github.com/99minutos/backoffice/internal/infrastructure/queue"
	"github.com/99minutos/backoffice/internal/view"
	"github.com/99minutos/backoffice/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		l := logger.Get()
		l.Fatal().Err(err).Msg("backoffice stopped")
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Init(logger.Options{Service: "backoffice"})
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "backoffice",
	})

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  "backoffice",
	})
	if err != nil {
		return err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = mongoClient.Disconnect(dctx)
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB, ClientName: "backoffice-sessions"})
	if err != nil {
		return err
	}
	defer rdb.Close()

	authRepo := mongodb.NewAuthRepository(db)
	auditRepo := mongodb.NewAuditRepository(db)
	if err := authRepo.EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := auditRepo.EnsureIndexes(ctx); err != nil {
		return err
	}

	authService := service.NewAuthService(authRepo, logger.Component("auth"))
	if err := seedAdmin(ctx, authService, cfg.Seed, log); err != nil {
		return err
	}

	auditService := service.NewAuditService(auditRepo, logger.Component("audit"))
	dispatcher := queue.NewDispatcher(cfg.Audit.Workers, auditService, logger.Component("dispatcher"))

	storage := redisdb.NewContextStorage(rdb, cfg.Session.TTL)
	pages := view.NewLoader(view.DefaultFactories(), cfg.Pages.LoadTimeout)

	router := api.NewRouter(api.Dependencies{
		Log:           log,
		SessionSecret: []byte(cfg.Session.Secret),
		SessionTTL:    cfg.Session.TTL,
		SecureCookies: cfg.Session.Secure,
		AssetsDir:     cfg.AssetsDir,
		Storage:       storage,
		Auth:          authService,
		Audit:         auditService,
		AuditQueue:    dispatcher,
		Pages:         pages,
		Checks: map[string]handler.Check{
			"mongodb": mongodb.Check(db),
			"redis":   storage.Check,
			"pages":   pages.Check("login", gatekeeper.NotFoundPage),
		},
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	workerCtx, stopWorkers := context.WithCancel(context.Background())
	dispatcher.Start(workerCtx)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("backoffice listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(sctx)
	})

	err = g.Wait()
	stopWorkers()
	dispatcher.Wait()
	return err
}

// seedAdmin creates the first admin account when configured. An existing
// account with that email is left alone.
func seedAdmin(ctx context.Context, auth *service.AuthService, seed config.SeedConfig, log zerolog.Logger) error {
	if seed.AdminEmail == "" || seed.AdminPassword == "" {
		return nil
	}
	_, err := auth.Register(ctx, "admin", seed.AdminPassword, seed.AdminEmail, domain.RoleAdmin)
	switch {
	case errors.Is(err, domain.ErrUserExists):
		log.Debug().Str("email", seed.AdminEmail).Msg("seed admin already present")
		return nil
	case err != nil:
		return err
	}
	log.Info().Str("email", seed.AdminEmail).Msg("seed admin created")
	return nil
}
