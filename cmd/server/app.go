package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/iudanet/passkeeper/internal/config"
	"github.com/iudanet/passkeeper/internal/crypto"
	"github.com/iudanet/passkeeper/internal/server/metrics"
	"github.com/iudanet/passkeeper/internal/server/records"
	"github.com/iudanet/passkeeper/internal/server/storage"
	"github.com/iudanet/passkeeper/internal/server/storage/boltdb"
	"github.com/iudanet/passkeeper/internal/server/storage/mongodb"
	"github.com/iudanet/passkeeper/internal/server/storage/sqlstore"
)

// openStorage открывает хранилище выбранного драйвера
func openStorage(ctx context.Context, c config.StorageConfig) (storage.CredentialStorage, error) {
	switch c.Driver {
	case sqlstore.DriverSQLite, sqlstore.DriverPostgres, sqlstore.DriverMySQL:
		st, err := sqlstore.New(ctx, c.Driver, c.DSN)
		if err != nil {
			return nil, err
		}
		return st, nil
	case "bolt":
		st, err := boltdb.New(ctx, c.DSN)
		if err != nil {
			return nil, err
		}
		return st, nil
	case "mongo":
		st, err := mongodb.New(ctx, c.DSN, c.MongoDatabase)
		if err != nil {
			return nil, err
		}
		return st, nil
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", c.Driver)
	}
}

// components общие зависимости serve и encrypt-legacy
type components struct {
	storage  storage.CredentialStorage
	store    *records.Store
	metrics  *metrics.Metrics
	gatherer prometheus.Gatherer
}

// buildComponents открывает хранилище и собирает Store с шифрованием.
// Вызывающий закрывает components.storage.
func buildComponents(ctx context.Context, logger *slog.Logger, cfg config.Config, prompt config.SecretPrompter) (*components, error) {
	secret, err := config.ResolveCipherSecret(logger, cfg.Cipher, prompt)
	if err != nil {
		return nil, err
	}

	cipher, err := crypto.NewCipher(secret)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	st, err := openStorage(ctx, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s storage: %w", cfg.Storage.Driver, err)
	}

	c := &components{storage: st}

	var opts []records.Option
	if cfg.Metrics.Enabled {
		reg := metrics.NewRegistry()
		c.metrics = metrics.New(reg)
		c.gatherer = reg
		opts = append(opts, records.WithMetrics(c.metrics))
	}

	c.store = records.NewStore(logger, st, cipher, opts...)
	return c, nil
}
