package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jamapp/jam-admin/internal/constants"
	"github.com/jamapp/jam-admin/internal/logging"
)

// CatalogStore manages the activity and serving tags offered by the admin forms
type CatalogStore struct {
	db     *DB
	logger zerolog.Logger
}

// NewCatalogStore creates a new catalog store
func NewCatalogStore(db *DB) *CatalogStore {
	return &CatalogStore{
		db:     db,
		logger: logging.GetLogger("catalog-store"),
	}
}

// List returns the tag names of the given kind in insertion order
func (s *CatalogStore) List(ctx context.Context, kind constants.TagKind) ([]string, error) {
	if !kind.IsValid() {
		return nil, fmt.Errorf("invalid tag kind: %s", kind)
	}

	rows, err := s.db.Conn().QueryContext(ctx, `SELECT name FROM `+kind.Table()+` ORDER BY id`)
	if err != nil {
		s.logger.Error().Err(err).Str("kind", kind.String()).Msg("Failed to query catalog")
		return nil, fmt.Errorf("failed to query %s: %w", kind.Table(), err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", kind, err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s rows: %w", kind.Table(), err)
	}

	s.logger.Debug().Str("kind", kind.String()).Int("count", len(names)).Msg("Catalog listed")
	return names, nil
}

// Add inserts names of the given kind. Blank names are rejected and names
// already present are skipped.
func (s *CatalogStore) Add(ctx context.Context, kind constants.TagKind, names ...string) error {
	if !kind.IsValid() {
		return fmt.Errorf("invalid tag kind: %s", kind)
	}
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("%s name cannot be blank", kind)
		}
	}

	query := `INSERT INTO ` + kind.Table() + ` (name) VALUES (?) ON CONFLICT(name) DO NOTHING`
	err := s.db.WithTransaction(ctx, func(tx *sql.Tx) error {
		for _, name := range names {
			if _, err := tx.ExecContext(ctx, query, strings.TrimSpace(name)); err != nil {
				return fmt.Errorf("failed to insert %s %q: %w", kind, name, err)
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error().Err(err).Str("kind", kind.String()).Msg("Failed to add catalog entries")
		return err
	}

	s.logger.Debug().Str("kind", kind.String()).Strs("names", names).Msg("Catalog entries added")
	return nil
}

// Count returns how many tags of the given kind exist
func (s *CatalogStore) Count(ctx context.Context, kind constants.TagKind) (int, error) {
	if !kind.IsValid() {
		return 0, fmt.Errorf("invalid tag kind: %s", kind)
	}
	var count int
	if err := s.db.Conn().QueryRowContext(ctx, `SELECT COUNT(*) FROM `+kind.Table()).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", kind.Table(), err)
	}
	return count, nil
}
