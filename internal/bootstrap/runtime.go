// Package bootstrap wires up the process-level runtime: database, cache
// and the built-in data the API expects to exist.
package bootstrap

import (
	"fmt"

	"teamdex/internal/cache"
	"teamdex/internal/config"
	"teamdex/internal/database"
	"teamdex/internal/seed"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	// SeedShowcase loads the Pokémon catalog and the system-owned showcase
	// teams. Both seeders are idempotent, so enabling this on every boot
	// is safe.
	SeedShowcase bool
}

// InitRuntime connects to the database and Redis and optionally seeds the
// built-in data. The Redis client may be nil if the server is unreachable;
// the API degrades gracefully without it.
func InitRuntime(cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()

	if opts.SeedShowcase {
		if err := seed.LoadCatalog(db); err != nil {
			return nil, nil, fmt.Errorf("failed to load catalog: %w", err)
		}
		if err := seed.BuiltInTeams(db); err != nil {
			return nil, nil, fmt.Errorf("failed to seed showcase teams: %w", err)
		}
	}

	return db, r, nil
}
