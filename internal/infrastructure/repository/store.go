package repository

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sangkips/order-notifier/internal/config"
	domainRepo "github.com/sangkips/order-notifier/internal/domain/repository"
	"github.com/sangkips/order-notifier/internal/infrastructure/database"
)

// Store drivers accepted in STORE_CREDENTIALS.
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
)

// NewOrderStoreFromConfig selects the order store once at startup.
//
//	no credentials        -> no-op store, persistence skipped
//	driver "mongo"        -> MongoDB "orders" collection
//	driver "postgres"     -> PostgreSQL "orders" table via gorm
//
// An empty driver is inferred from the URI scheme.
func NewOrderStoreFromConfig(ctx context.Context, cfg *config.StoreConfig, debug bool, log *slog.Logger) (domainRepo.OrderStore, error) {
	if !cfg.PersistenceEnabled() {
		return NewNullOrderRepository(), nil
	}

	creds, err := cfg.ParseCredentials()
	if err != nil {
		return nil, err
	}

	driver, err := resolveDriver(creds)
	if err != nil {
		return nil, err
	}

	switch driver {
	case DriverMongo:
		db, err := database.ConnectMongoDB(ctx, creds.URI, creds.Database)
		if err != nil {
			return nil, err
		}
		log.Info("order persistence enabled", "driver", driver, "database", db.Name())
		return NewMongoOrderRepository(db), nil
	default:
		db, err := database.NewPostgresDB(creds.URI, debug, log)
		if err != nil {
			return nil, err
		}
		if err := database.AutoMigrate(db, log); err != nil {
			return nil, err
		}
		log.Info("order persistence enabled", "driver", driver)
		return NewOrderRepository(db), nil
	}
}

func resolveDriver(creds *config.StoreCredentials) (string, error) {
	switch creds.Driver {
	case "mongo", "mongodb":
		return DriverMongo, nil
	case "postgres", "postgresql":
		return DriverPostgres, nil
	case "":
	default:
		return "", fmt.Errorf("unknown store driver %q (use mongo or postgres)", creds.Driver)
	}

	uri := strings.ToLower(creds.URI)
	switch {
	case strings.HasPrefix(uri, "mongodb://"), strings.HasPrefix(uri, "mongodb+srv://"):
		return DriverMongo, nil
	case strings.HasPrefix(uri, "postgres://"), strings.HasPrefix(uri, "postgresql://"), strings.Contains(uri, "dbname="):
		return DriverPostgres, nil
	}
	return "", fmt.Errorf("cannot infer store driver from uri; set \"driver\" in STORE_CREDENTIALS")
}
