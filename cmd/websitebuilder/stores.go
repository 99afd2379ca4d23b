package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/bizsites/website-builder/internal/core/ports"
	"github.com/bizsites/website-builder/internal/infrastructure/config"
	"github.com/bizsites/website-builder/internal/infrastructure/db/memory"
	mongodb "github.com/bizsites/website-builder/internal/infrastructure/db/mongo"
	"github.com/bizsites/website-builder/internal/infrastructure/db/sqldb"
)

// stores bundles the repositories of the configured driver with a function
// that releases their connections.
type stores struct {
	sites ports.SiteRepository
	users ports.AuthRepository
	close func(context.Context) error
}

func openStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	switch cfg.StoreDriver {
	case config.DriverMongo:
		client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		sites := mongodb.NewSiteRepository(db)
		users := mongodb.NewAuthRepository(db)
		if err := errors.Join(sites.EnsureIndexes(ctx), users.EnsureIndexes(ctx)); err != nil {
			_ = client.Disconnect(ctx)
			return nil, fmt.Errorf("mongo indexes: %w", err)
		}
		return &stores{sites: sites, users: users, close: client.Disconnect}, nil

	case config.DriverSQLite, config.DriverPostgres:
		db, err := sqldb.Open(cfg.SQL.URL)
		if err != nil {
			return nil, err
		}
		if err := sqldb.Migrate(ctx, db); err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		return &stores{
			sites: sqldb.NewSiteRepository(db),
			users: sqldb.NewAuthRepository(db),
			close: func(context.Context) error { return sqlDB.Close() },
		}, nil

	case config.DriverMemory:
		return &stores{
			sites: memory.NewSiteRepository(),
			users: memory.NewAuthRepository(),
			close: func(context.Context) error { return nil },
		}, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}
