package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jamapp/jam-admin/internal/logging"
	"github.com/jamapp/jam-admin/internal/openinghours"
	"github.com/jamapp/jam-admin/internal/restaurant"
)

// ErrRestaurantNotFound is returned when no restaurant has the requested ID
var ErrRestaurantNotFound = errors.New("restaurant not found")

const restaurantColumns = `id, name, website, featured_image, logo, price, age_restriction,
	is_facilitated, address, activities, servings, opening_hours, latitude, longitude,
	created_at, updated_at`

// RestaurantStore persists restaurants in SQLite
type RestaurantStore struct {
	db     *DB
	logger zerolog.Logger
}

// NewRestaurantStore creates a new restaurant store
func NewRestaurantStore(db *DB) *RestaurantStore {
	return &RestaurantStore{
		db:     db,
		logger: logging.GetLogger("restaurant-store"),
	}
}

// rowScanner is satisfied by *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

// List returns every restaurant ordered by name
func (s *RestaurantStore) List(ctx context.Context) ([]*restaurant.Restaurant, error) {
	s.logger.Debug().Msg("Listing restaurants")
	rows, err := s.db.Conn().QueryContext(ctx, `SELECT `+restaurantColumns+`
		FROM restaurants
		ORDER BY name COLLATE NOCASE, created_at`)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to query restaurants")
		return nil, fmt.Errorf("failed to query restaurants: %w", err)
	}
	defer rows.Close()

	restaurants := []*restaurant.Restaurant{}
	for rows.Next() {
		r, err := scanRestaurant(rows)
		if err != nil {
			s.logger.Error().Err(err).Msg("Failed to scan restaurant row")
			return nil, err
		}
		restaurants = append(restaurants, r)
	}
	if err := rows.Err(); err != nil {
		s.logger.Error().Err(err).Msg("Error iterating restaurant rows")
		return nil, fmt.Errorf("error iterating restaurant rows: %w", err)
	}

	s.logger.Debug().Int("count", len(restaurants)).Msg("Restaurants listed")
	return restaurants, nil
}

// Get returns the restaurant with the given ID or ErrRestaurantNotFound
func (s *RestaurantStore) Get(ctx context.Context, id string) (*restaurant.Restaurant, error) {
	logger := s.logger.With().Str("restaurant_id", id).Logger()
	logger.Debug().Msg("Fetching restaurant")

	row := s.db.Conn().QueryRowContext(ctx, `SELECT `+restaurantColumns+`
		FROM restaurants
		WHERE id = ?`, id)
	r, err := scanRestaurant(row)
	if errors.Is(err, sql.ErrNoRows) {
		logger.Debug().Msg("Restaurant not found")
		return nil, ErrRestaurantNotFound
	}
	if err != nil {
		logger.Error().Err(err).Msg("Failed to fetch restaurant")
		return nil, err
	}
	return r, nil
}

// Create inserts r. CreatedAt and UpdatedAt are set on r.
func (s *RestaurantStore) Create(ctx context.Context, r *restaurant.Restaurant) error {
	logger := s.logger.With().Str("restaurant_id", r.ID).Str("name", r.Name).Logger()
	args, err := restaurantArgs(r)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	args = append([]any{r.ID}, args...)
	args = append(args, now, now)

	_, err = s.db.Conn().ExecContext(ctx, `INSERT INTO restaurants (`+restaurantColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to insert restaurant")
		return fmt.Errorf("failed to insert restaurant: %w", err)
	}

	r.CreatedAt = now
	r.UpdatedAt = now
	logger.Info().Msg("Restaurant created")
	return nil
}

// Update replaces every editable column of r. UpdatedAt is refreshed on r.
func (s *RestaurantStore) Update(ctx context.Context, r *restaurant.Restaurant) error {
	logger := s.logger.With().Str("restaurant_id", r.ID).Str("name", r.Name).Logger()
	args, err := restaurantArgs(r)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	args = append(args, now, r.ID)

	return s.db.WithTransaction(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `UPDATE restaurants SET
				name = ?, website = ?, featured_image = ?, logo = ?, price = ?,
				age_restriction = ?, is_facilitated = ?, address = ?, activities = ?,
				servings = ?, opening_hours = ?, latitude = ?, longitude = ?, updated_at = ?
			WHERE id = ?`, args...)
		if err != nil {
			logger.Error().Err(err).Msg("Failed to update restaurant")
			return fmt.Errorf("failed to update restaurant: %w", err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to read affected rows: %w", err)
		}
		if affected == 0 {
			logger.Debug().Msg("Restaurant to update not found")
			return ErrRestaurantNotFound
		}

		r.UpdatedAt = now
		logger.Info().Msg("Restaurant updated")
		return nil
	})
}

// Delete removes the restaurant with the given ID
func (s *RestaurantStore) Delete(ctx context.Context, id string) error {
	logger := s.logger.With().Str("restaurant_id", id).Logger()
	result, err := s.db.Conn().ExecContext(ctx, `DELETE FROM restaurants WHERE id = ?`, id)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to delete restaurant")
		return fmt.Errorf("failed to delete restaurant: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrRestaurantNotFound
	}
	logger.Info().Msg("Restaurant deleted")
	return nil
}

// restaurantArgs returns the editable column values of r in column order,
// from name to longitude
func restaurantArgs(r *restaurant.Restaurant) ([]any, error) {
	activities, err := encodeTags(r.Activities)
	if err != nil {
		return nil, fmt.Errorf("failed to encode activities: %w", err)
	}
	servings, err := encodeTags(r.Servings)
	if err != nil {
		return nil, fmt.Errorf("failed to encode servings: %w", err)
	}

	var hours sql.NullString
	if r.OpeningHours != nil {
		raw, err := r.OpeningHours.MarshalJSON()
		if err != nil {
			return nil, fmt.Errorf("failed to encode opening hours: %w", err)
		}
		hours = sql.NullString{String: string(raw), Valid: true}
	}

	return []any{
		r.Name,
		r.Website,
		r.FeaturedImage,
		r.Logo,
		r.Price,
		r.AgeRestriction,
		r.IsFacilitated,
		r.Address,
		activities,
		servings,
		hours,
		nullFloat(r.Latitude),
		nullFloat(r.Longitude),
	}, nil
}

func scanRestaurant(row rowScanner) (*restaurant.Restaurant, error) {
	var (
		r                    restaurant.Restaurant
		activities, servings string
		hours                sql.NullString
		lat, long            sql.NullFloat64
	)
	err := row.Scan(
		&r.ID, &r.Name, &r.Website, &r.FeaturedImage, &r.Logo, &r.Price, &r.AgeRestriction,
		&r.IsFacilitated, &r.Address, &activities, &servings, &hours, &lat, &long,
		&r.CreatedAt, &r.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan restaurant: %w", err)
	}

	if r.Activities, err = decodeTags(activities); err != nil {
		return nil, fmt.Errorf("failed to decode activities of %s: %w", r.ID, err)
	}
	if r.Servings, err = decodeTags(servings); err != nil {
		return nil, fmt.Errorf("failed to decode servings of %s: %w", r.ID, err)
	}
	if hours.Valid {
		r.OpeningHours = openinghours.Decode([]byte(hours.String))
	}
	if lat.Valid {
		r.Latitude = &lat.Float64
	}
	if long.Valid {
		r.Longitude = &long.Float64
	}
	return &r, nil
}

// encodeTags stores a nil list as JSON null so "never recorded" survives a
// round trip
func encodeTags(tags []string) (string, error) {
	raw, err := json.Marshal(tags)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func decodeTags(raw string) ([]string, error) {
	if raw == "" {
		return []string{}, nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(raw), &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}
