package database

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jamapp/jam-admin/internal/config"
	"github.com/jamapp/jam-admin/internal/constants"
	"github.com/jamapp/jam-admin/internal/logging"
)

// CatalogSeeder fills empty catalog tables from the configuration file
type CatalogSeeder struct {
	store  *CatalogStore
	logger zerolog.Logger
}

// NewCatalogSeeder creates a new catalog seeder
func NewCatalogSeeder(store *CatalogStore) *CatalogSeeder {
	return &CatalogSeeder{
		store:  store,
		logger: logging.GetLogger("catalog-seeder"),
	}
}

// SeedFromConfig is called on every startup. Each tag kind is seeded only
// while its table is empty, so entries managed later are never overwritten.
func (s *CatalogSeeder) SeedFromConfig(ctx context.Context, cfg *config.Config) error {
	s.logger.Info().Msg("Checking if the catalog needs seeding")

	seeds := map[constants.TagKind][]string{
		constants.TagKindActivity: cfg.Catalog.Activities,
		constants.TagKindServing:  cfg.Catalog.Servings,
	}

	for _, kind := range constants.GetAllTagKinds() {
		if err := s.seedKind(ctx, kind, seeds[kind]); err != nil {
			return fmt.Errorf("failed to seed %s catalog: %w", kind, err)
		}
	}
	return nil
}

func (s *CatalogSeeder) seedKind(ctx context.Context, kind constants.TagKind, names []string) error {
	logger := s.logger.With().Str("kind", kind.String()).Logger()

	count, err := s.store.Count(ctx, kind)
	if err != nil {
		return err
	}
	if count > 0 {
		logger.Debug().Int("count", count).Msg("Catalog already populated, skipping seeding")
		return nil
	}
	if len(names) == 0 {
		logger.Debug().Msg("No catalog entries configured")
		return nil
	}

	if err := s.store.Add(ctx, kind, names...); err != nil {
		return err
	}
	logger.Info().Int("count", len(names)).Msg("Catalog seeded from configuration")
	return nil
}
