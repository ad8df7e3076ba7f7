package handlers

import (
	"errors"
	"net/http"

	"github.com/jamapp/jam-admin/internal/database"
	"github.com/jamapp/jam-admin/internal/restaurant"
	"github.com/jamapp/jam-admin/internal/signals"
)

const listPath = "/protected/view"

// RestaurantsHandler manages the restaurant list and deletions
type RestaurantsHandler struct {
	*BaseHandler
}

// NewRestaurantsHandler creates a new restaurant list handler
func NewRestaurantsHandler(baseHandler *BaseHandler) *RestaurantsHandler {
	return &RestaurantsHandler{
		BaseHandler: baseHandler,
	}
}

// RegisterRoutes registers list related routes
func (h *RestaurantsHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET "+listPath, h.handleList)
	mux.HandleFunc("POST /protected/bar/{id}/delete", h.handleDelete)
}

// RestaurantsPageData contains data for the restaurant list template
type RestaurantsPageData struct {
	BasePageData
	Restaurants    []*restaurant.Restaurant
	ErrorMessage   string
	SuccessMessage string
}

func (h *RestaurantsHandler) handleList(w http.ResponseWriter, r *http.Request) {
	handlerLogger := h.logger.With().Str("handler", "handleList").Logger()
	handlerLogger.Debug().Msg("Handling restaurant list request")

	errorMessage, successMessage := h.processMessages(r, handlerLogger)
	restaurants, err := h.Restaurants.List(r.Context())
	if err != nil {
		handlerLogger.Error().Err(err).Msg("Failed to list restaurants")
		errorMessage = GetErrorMessage(ErrCodeFailedLoadRestaurants)
		restaurants = nil
	}

	h.RenderTemplate(w, "restaurants.html", RestaurantsPageData{
		BasePageData:   h.NewBasePageData(r),
		Restaurants:    restaurants,
		ErrorMessage:   errorMessage,
		SuccessMessage: successMessage,
	})
}

func (h *RestaurantsHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	handlerLogger := h.logger.With().Str("handler", "handleDelete").Str("restaurant_id", id).Logger()

	if !restaurant.IsValidID(id) {
		handlerLogger.Warn().Msg("Rejected delete for malformed restaurant ID")
		redirectWithCode(w, r, listPath, "error", ErrCodeRestaurantNotFound)
		return
	}

	err := h.Restaurants.Delete(r.Context(), id)
	if errors.Is(err, database.ErrRestaurantNotFound) {
		handlerLogger.Warn().Msg("Restaurant to delete not found")
		redirectWithCode(w, r, listPath, "error", ErrCodeRestaurantNotFound)
		return
	}
	if err != nil {
		handlerLogger.Error().Err(err).Msg("Failed to delete restaurant")
		redirectWithCode(w, r, listPath, "error", ErrCodeFailedDeleteRestaurant)
		return
	}

	signals.EmitRestaurantDeleted(r.Context(), id)
	handlerLogger.Info().Msg("Restaurant deleted")
	redirectWithCode(w, r, listPath, "success", SuccessCodeRestaurantDeleted)
}
