package signals

import (
	"context"

	"github.com/maniartech/signals"
)

// RestaurantSavedData is emitted after a restaurant was inserted or updated
type RestaurantSavedData struct {
	ID      string
	Name    string
	Created bool
}

// RestaurantDeletedData is emitted after a restaurant was removed
type RestaurantDeletedData struct {
	ID string
}

// Signal definitions using generics
var RestaurantSaved = signals.New[RestaurantSavedData]()
var RestaurantDeleted = signals.New[RestaurantDeletedData]()

// EmitRestaurantSaved emits a signal when a restaurant has been persisted
func EmitRestaurantSaved(ctx context.Context, id, name string, created bool) {
	RestaurantSaved.Emit(ctx, RestaurantSavedData{
		ID:      id,
		Name:    name,
		Created: created,
	})
}

// EmitRestaurantDeleted emits a signal when a restaurant has been deleted
func EmitRestaurantDeleted(ctx context.Context, id string) {
	RestaurantDeleted.Emit(ctx, RestaurantDeletedData{ID: id})
}

// OnRestaurantSaved registers a handler for restaurant save events
func OnRestaurantSaved(handler func(ctx context.Context, data RestaurantSavedData), key ...string) {
	if len(key) > 0 {
		RestaurantSaved.AddListener(handler, key[0])
	} else {
		RestaurantSaved.AddListener(handler)
	}
}

// OnRestaurantDeleted registers a handler for restaurant delete events
func OnRestaurantDeleted(handler func(ctx context.Context, data RestaurantDeletedData), key ...string) {
	if len(key) > 0 {
		RestaurantDeleted.AddListener(handler, key[0])
	} else {
		RestaurantDeleted.AddListener(handler)
	}
}
