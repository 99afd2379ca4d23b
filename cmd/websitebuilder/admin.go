package main

import (
	"context"
	"fmt"

	"github.com/bizsites/website-builder/internal/core/service"
	"github.com/bizsites/website-builder/internal/infrastructure/config"
	"github.com/bizsites/website-builder/internal/infrastructure/db/memory"
)

func createAdmin(ctx context.Context, username, password string) error {
	cfg, log, err := setup(ctx)
	if err != nil {
		return err
	}

	if cfg.StoreDriver == config.DriverMemory {
		log.Warn().Msg("memory store selected, the admin will not outlive this process")
	}

	st, err := openStores(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = st.close(context.Background()) }()

	auth := service.NewAuthService(st.users, memory.NewRevoker(), cfg.Auth.JWTSecret, cfg.Auth.SessionTTL)
	user, err := auth.CreateAdmin(ctx, username, password)
	if err != nil {
		return fmt.Errorf("create admin: %w", err)
	}

	log.Info().Int64("id", user.ID).Str("username", user.Username).Str("driver", cfg.StoreDriver).Msg("admin created")
	return nil
}
