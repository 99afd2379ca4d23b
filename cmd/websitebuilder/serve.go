package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/bizsites/website-builder/internal/api"
	"github.com/bizsites/website-builder/internal/api/handler"
	"github.com/bizsites/website-builder/internal/core/ports"
	"github.com/bizsites/website-builder/internal/core/service"
	"github.com/bizsites/website-builder/internal/core/validation"
	"github.com/bizsites/website-builder/internal/infrastructure/config"
	"github.com/bizsites/website-builder/internal/infrastructure/db/memory"
	redisdb "github.com/bizsites/website-builder/internal/infrastructure/db/redis"
	"github.com/bizsites/website-builder/internal/infrastructure/media"
	"github.com/bizsites/website-builder/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func setup(ctx context.Context) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "website-builder",
	})
	return cfg, log, nil
}

func runServer(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, log, err := setup(ctx)
	if err != nil {
		return err
	}
	if cfg.Auth.JWTSecret == "" {
		cfg.Auth.JWTSecret = "dev-secret-change-me"
		log.Warn().Msg("JWT_SECRET not set, using an insecure development secret")
	}

	st, err := openStores(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := st.close(closeCtx); err != nil {
			log.Error().Err(err).Msg("failed to close store")
		}
	}()
	log.Info().Str("driver", cfg.StoreDriver).Msg("store ready")

	health := map[string]handler.Pinger{"store": st.sites}

	var revoker ports.TokenRevoker = memory.NewRevoker()
	if cfg.Redis.Addr != "" {
		rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err != nil {
			return err
		}
		defer rdb.Close()
		r := redisdb.NewRevoker(rdb)
		revoker = r
		health["redis"] = r
	} else {
		log.Warn().Msg("REDIS_ADDR not set, logged-out sessions are tracked in memory")
	}

	deps := api.Deps{
		Sites:           service.NewSiteService(st.sites, validation.New(), logger.Component("sites")),
		Auth:            service.NewAuthService(st.users, revoker, cfg.Auth.JWTSecret, cfg.Auth.SessionTTL),
		Revoker:         revoker,
		Health:          health,
		Logger:          logger.Component("http"),
		JWTSecret:       cfg.Auth.JWTSecret,
		ExposeEditToken: cfg.Public.ExposeEditToken,
		SecureCookie:    !cfg.IsDevelopment(),
		BaseURL:         cfg.Public.BaseURL,
		CreateRate:      cfg.Limits.CreateRate,
		CreateBurst:     cfg.Limits.CreateBurst,
		MaxUploadBytes:  cfg.Limits.MaxUploadBytes,
	}
	if cfg.Cloudinary.Enabled() {
		store, err := media.NewCloudinaryStore(cfg.Cloudinary.CloudName, cfg.Cloudinary.APIKey, cfg.Cloudinary.APISecret, cfg.Cloudinary.Folder)
		if err != nil {
			return err
		}
		deps.Media = service.NewMediaService(store, logger.Component("media"))
	} else {
		log.Warn().Msg("Cloudinary credentials not set, image uploads are disabled")
	}

	e, err := api.NewRouter(deps)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
