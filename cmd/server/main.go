// @title                       Private Navigation API
// @version                     1.0
// @description                 Bookmark dashboard backend with access-token and refresh-cookie sessions.
// @BasePath                    /api
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/XploitFox/private-navigation-system/internal/api"
	"github.com/XploitFox/private-navigation-system/internal/core/service"
	"github.com/XploitFox/private-navigation-system/internal/infrastructure/config"
	"github.com/XploitFox/private-navigation-system/internal/infrastructure/db/jsonstore"
	mongostore "github.com/XploitFox/private-navigation-system/internal/infrastructure/db/mongo"
	redisstore "github.com/XploitFox/private-navigation-system/internal/infrastructure/db/redis"
	"github.com/XploitFox/private-navigation-system/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "navdash",
	})

	backend, closeBackend, err := openBackend(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeBackend(context.Background()); err != nil {
			log.Warn().Err(err).Msg("closing store backend")
		}
	}()

	users := jsonstore.NewUserRepository(backend)
	navigations := jsonstore.NewNavigationRepository(backend, logger.Component("navigation-repository"))

	tokens := service.NewTokenService(service.TokenConfig{
		AccessSecret:  cfg.Auth.JWTSecret,
		RefreshSecret: cfg.Auth.RefreshSecret,
		AccessTTL:     cfg.AccessTTL(),
		RefreshTTL:    cfg.RefreshTTL(),
	})
	authService := service.NewAuthService(users, service.NewBcryptHasher(cfg.Auth.BcryptCost), tokens, logger.Component("auth"))
	navService := service.NewNavigationService(navigations, logger.Component("navigation"))

	if err := authService.BootstrapAdmin(ctx, cfg.Auth.AdminUsername, cfg.Auth.AdminPassword); err != nil {
		return fmt.Errorf("initialize admin: %w", err)
	}
	if cfg.Auth.AdminPassword == "admin" {
		log.Warn().Str("username", cfg.Auth.AdminUsername).Msg("admin is using the default password")
	}

	e := api.NewRouter(api.Deps{
		Auth:           authService,
		Tokens:         tokens,
		Navigations:    navService,
		Store:          backend,
		Backend:        cfg.Store.Backend,
		Log:            logger.Component("http"),
		CookieName:     cfg.Auth.RefreshCookieName,
		SecureCookies:  cfg.IsProduction(),
		Production:     cfg.IsProduction(),
		AllowedOrigins: cfg.CORSOrigins,
		StaticDir:      cfg.StaticDir,
	})

	srv := &http.Server{
		Addr:              net.JoinHostPort("", cfg.Port),
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Str("store", cfg.Store.Backend).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}

// openBackend connects the configured document store and returns a close func.
func openBackend(ctx context.Context, cfg *config.Config, log zerolog.Logger) (jsonstore.Backend, func(context.Context) error, error) {
	switch strings.ToLower(cfg.Store.Backend) {
	case config.BackendRedis:
		client, err := redisstore.Connect(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, nil, err
		}
		log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to redis")
		return redisstore.NewDocumentBackend(client, cfg.Redis.KeyPrefix), func(context.Context) error {
			return client.Close()
		}, nil

	case config.BackendMongo:
		db, disconnect, err := mongostore.Connect(ctx, mongostore.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			return nil, nil, err
		}
		log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongodb")
		return mongostore.NewDocumentBackend(db), disconnect, nil

	default:
		backend := jsonstore.NewFileBackend(cfg.Store.DataDir)
		if err := backend.Ping(ctx); err != nil {
			return nil, nil, err
		}
		log.Info().Str("dir", backend.Dir()).Msg("using file store")
		return backend, func(context.Context) error { return nil }, nil
	}
}
