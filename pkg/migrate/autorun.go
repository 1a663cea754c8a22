package migrate

import (
	"context"

	"github.com/hamzasiddiqui/bazaarline-backend/pkg/config"
	"github.com/hamzasiddiqui/bazaarline-backend/pkg/logger"
)

// AutoRun applies pending migrations at boot when the feature flag is on.
// Intended for development and single-instance deploys; production rollouts
// should use the migrate binary.
func AutoRun(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	if !cfg.FeatureFlags.AutoMigrate {
		return nil
	}

	log.Info(ctx, "auto-migrate enabled, applying pending migrations")
	if err := Up(ctx, cfg.DB.DSN); err != nil {
		return err
	}
	log.Info(ctx, "migrations up to date")
	return nil
}
