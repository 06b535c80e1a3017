package factory

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/imanelbaz22-debug/serene-app/internal/config"
	storepkg "github.com/imanelbaz22-debug/serene-app/internal/store"
	storepg "github.com/imanelbaz22-debug/serene-app/internal/store/postgres"
	storesqlite "github.com/imanelbaz22-debug/serene-app/internal/store/sqlite"
)

// NewStore opens the store selected by cfg.DBDriver and bootstraps its schema.
// The returned close func releases the underlying connection pool.
func NewStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (storepkg.Store, func() error, error) {
	bootstrapTimeout := time.Duration(cfg.BootstrapTimeoutSeconds) * time.Second
	if bootstrapTimeout <= 0 {
		bootstrapTimeout = 10 * time.Second
	}
	bootstrapCtx, cancel := context.WithTimeout(ctx, bootstrapTimeout)
	defer cancel()

	switch cfg.DBDriver {
	case "postgres":
		if cfg.PostgresDSN == "" {
			return nil, nil, fmt.Errorf("SERENE_POSTGRES_DSN is required when DB_DRIVER=postgres")
		}
		db, err := storepg.Open(cfg.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		if err := storepg.EnsureSchema(bootstrapCtx, db); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		log.Debug().Str("driver", cfg.DBDriver).Msg("store schema ready")
		return storepg.NewWithDB(db), db.Close, nil

	case "sqlite":
		db, err := storesqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		if err := storesqlite.EnsureSchema(bootstrapCtx, db); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		log.Debug().Str("driver", cfg.DBDriver).Str("path", cfg.SQLitePath).Msg("store schema ready")
		return storesqlite.NewWithDB(db), db.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown DB_DRIVER: %s", cfg.DBDriver)
	}
}
