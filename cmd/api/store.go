package main

import (
	"context"
	"fmt"

	"github.com/AgusMolinaCode/Movers_Api.git/internal/config"
	"github.com/AgusMolinaCode/Movers_Api.git/internal/database"
	"github.com/AgusMolinaCode/Movers_Api.git/internal/repository"
)

// openStore crea el BlobStore según STORE_DRIVER y devuelve la función para cerrarlo
func openStore(ctx context.Context, cfg config.Store) (repository.BlobStore, func(), error) {
	switch cfg.Driver {
	case config.StoreFile:
		return repository.NewFileStore(cfg.FilePath), func() {}, nil

	case config.StoreSQLite:
		db, err := database.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewSQLStore(db, database.DriverSQLite, cfg.CacheKey), func() { db.Close() }, nil

	case config.StorePostgres:
		db, err := database.OpenPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewSQLStore(db, database.DriverPostgres, cfg.CacheKey), func() { db.Close() }, nil

	case config.StoreRedis:
		client, err := database.OpenRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewRedisStore(client, cfg.CacheKey), func() { client.Close() }, nil
	}

	return nil, nil, fmt.Errorf("%w: %q", config.ErrUnknownStoreDriver, cfg.Driver)
}
