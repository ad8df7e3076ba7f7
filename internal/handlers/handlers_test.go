package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jamapp/jam-admin/internal/constants"
	"github.com/jamapp/jam-admin/internal/database"
	"github.com/jamapp/jam-admin/internal/restaurant"
)

// testServer bundles a migrated database and a mux with every route registered
type testServer struct {
	db          *database.DB
	restaurants *database.RestaurantStore
	catalog     *database.CatalogStore
	health      *HealthHandler
	mux         *http.ServeMux
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	db, err := database.New(database.NewDefaultOptions(filepath.Join(t.TempDir(), "handlers.db")))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.MigrateDatabase())

	restaurants := database.NewRestaurantStore(db)
	catalog := database.NewCatalogStore(db)
	ctx := context.Background()
	require.NoError(t, catalog.Add(ctx, constants.TagKindActivity, "Quiz", "Darts"))
	require.NoError(t, catalog.Add(ctx, constants.TagKindServing, "Beer", "Wine"))

	base, err := NewBaseHandler(restaurants, catalog)
	require.NoError(t, err)
	static, err := NewStaticHandler()
	require.NoError(t, err)
	health := NewHealthHandler(db)

	mux := http.NewServeMux()
	NewHomeHandler(base).RegisterRoutes(mux)
	NewRestaurantsHandler(base).RegisterRoutes(mux)
	NewRestaurantHandler(base).RegisterRoutes(mux)
	static.RegisterRoutes(mux)
	health.RegisterRoutes(mux)

	return &testServer{
		db:          db,
		restaurants: restaurants,
		catalog:     catalog,
		health:      health,
		mux:         mux,
	}
}

func (s *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.mux.ServeHTTP(w, req)
	return w
}

func (s *testServer) createRestaurant(t *testing.T, name string) *restaurant.Restaurant {
	t.Helper()
	r := restaurant.New()
	r.Name = name
	r.Activities = []string{"Quiz"}
	require.NoError(t, s.restaurants.Create(context.Background(), r))
	return r
}
