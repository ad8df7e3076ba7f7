package handlers

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/jamapp/jam-admin/internal/constants"
	"github.com/jamapp/jam-admin/internal/database"
	"github.com/jamapp/jam-admin/internal/restaurant"
	"github.com/jamapp/jam-admin/internal/signals"
	"github.com/jamapp/jam-admin/internal/viewhelpers"
)

const addPath = "/protected/bar/add"

// RestaurantHandler manages adding, viewing and editing a single restaurant
type RestaurantHandler struct {
	*BaseHandler
}

// NewRestaurantHandler creates a new restaurant handler
func NewRestaurantHandler(baseHandler *BaseHandler) *RestaurantHandler {
	return &RestaurantHandler{
		BaseHandler: baseHandler,
	}
}

// RegisterRoutes registers restaurant related routes
func (h *RestaurantHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET "+addPath, h.handleAddForm)
	mux.HandleFunc("POST "+addPath, h.handleAdd)
	mux.HandleFunc("GET /protected/bar/{id}", h.handleView)
	mux.HandleFunc("POST /protected/bar/{id}", h.handleUpdate)
}

// RestaurantPageData contains data for the read-only restaurant page
type RestaurantPageData struct {
	BasePageData
	Restaurant     *restaurant.Restaurant
	ErrorMessage   string
	SuccessMessage string
}

// RestaurantFormPageData contains data for the add and edit form
type RestaurantFormPageData struct {
	BasePageData
	Title           string
	Action          string
	SubmitLabel     string
	CancelURL       string
	Form            *restaurant.Form
	HourRows        []viewhelpers.HourRow
	ActivityOptions []viewhelpers.TagOption
	ServingOptions  []viewhelpers.TagOption
	Errors          []string
	ErrorMessage    string
}

func viewPath(id string) string {
	return "/protected/bar/" + id
}

func (h *RestaurantHandler) handleAddForm(w http.ResponseWriter, r *http.Request) {
	handlerLogger := h.logger.With().Str("handler", "handleAddForm").Logger()
	handlerLogger.Debug().Msg("Rendering add form")

	errorMessage, _ := h.processMessages(r, handlerLogger)
	data := h.newFormPageData(r, restaurant.NewForm(), handlerLogger)
	data.Title = "Add restaurant"
	data.Action = addPath
	data.SubmitLabel = "Add"
	data.CancelURL = listPath
	if errorMessage != "" {
		data.ErrorMessage = errorMessage
	}
	h.RenderTemplate(w, "restaurant_form.html", data)
}

func (h *RestaurantHandler) handleAdd(w http.ResponseWriter, r *http.Request) {
	handlerLogger := h.logger.With().Str("handler", "handleAdd").Logger()

	if err := r.ParseForm(); err != nil {
		handlerLogger.Warn().Err(err).Msg("Failed to parse add form")
		redirectWithCode(w, r, addPath, "error", ErrCodeInvalidFormData)
		return
	}

	form, err := restaurant.DecodeForm(r.PostForm)
	if err != nil {
		handlerLogger.Debug().Err(err).Msg("Add form rejected")
		data := h.newFormPageData(r, form, handlerLogger)
		data.Title = "Add restaurant"
		data.Action = addPath
		data.SubmitLabel = "Add"
		data.CancelURL = listPath
		data.Errors = restaurant.Messages(err)
		h.RenderTemplateWithStatus(w, http.StatusUnprocessableEntity, "restaurant_form.html", data)
		return
	}

	rest := restaurant.New()
	if err := form.Apply(rest); err != nil {
		handlerLogger.Error().Err(err).Msg("Failed to apply add form")
		redirectWithCode(w, r, addPath, "error", ErrCodeInvalidFormData)
		return
	}
	if err := h.Restaurants.Create(r.Context(), rest); err != nil {
		handlerLogger.Error().Err(err).Msg("Failed to create restaurant")
		redirectWithCode(w, r, addPath, "error", ErrCodeFailedSaveRestaurant)
		return
	}

	signals.EmitRestaurantSaved(r.Context(), rest.ID, rest.Name, true)
	handlerLogger.Info().Str("restaurant_id", rest.ID).Str("name", rest.Name).Msg("Restaurant added")
	redirectWithCode(w, r, listPath, "success", SuccessCodeRestaurantCreated)
}

func (h *RestaurantHandler) handleView(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	handlerLogger := h.logger.With().Str("handler", "handleView").Str("restaurant_id", id).Logger()

	rest, ok := h.loadRestaurant(w, r, id, handlerLogger)
	if !ok {
		return
	}

	if r.URL.Query().Get("edit") != "" {
		h.renderEditForm(w, r, rest, restaurant.FormFromRestaurant(rest), nil, http.StatusOK, handlerLogger)
		return
	}

	errorMessage, successMessage := h.processMessages(r, handlerLogger)
	h.RenderTemplate(w, "restaurant.html", RestaurantPageData{
		BasePageData:   h.NewBasePageData(r),
		Restaurant:     rest,
		ErrorMessage:   errorMessage,
		SuccessMessage: successMessage,
	})
}

func (h *RestaurantHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	handlerLogger := h.logger.With().Str("handler", "handleUpdate").Str("restaurant_id", id).Logger()

	rest, ok := h.loadRestaurant(w, r, id, handlerLogger)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		handlerLogger.Warn().Err(err).Msg("Failed to parse edit form")
		redirectWithCode(w, r, viewPath(id), "error", ErrCodeInvalidFormData)
		return
	}

	form, err := restaurant.DecodeForm(r.PostForm)
	if err != nil {
		handlerLogger.Debug().Err(err).Msg("Edit form rejected")
		h.renderEditForm(w, r, rest, form, restaurant.Messages(err), http.StatusUnprocessableEntity, handlerLogger)
		return
	}

	if err := form.Apply(rest); err != nil {
		handlerLogger.Error().Err(err).Msg("Failed to apply edit form")
		redirectWithCode(w, r, viewPath(id), "error", ErrCodeInvalidFormData)
		return
	}

	err = h.Restaurants.Update(r.Context(), rest)
	if errors.Is(err, database.ErrRestaurantNotFound) {
		handlerLogger.Warn().Msg("Restaurant disappeared before update")
		h.RenderNotFound(w, r)
		return
	}
	if err != nil {
		handlerLogger.Error().Err(err).Msg("Failed to update restaurant")
		redirectWithCode(w, r, viewPath(id), "error", ErrCodeFailedSaveRestaurant)
		return
	}

	signals.EmitRestaurantSaved(r.Context(), rest.ID, rest.Name, false)
	handlerLogger.Info().Str("name", rest.Name).Msg("Restaurant updated")
	redirectWithCode(w, r, viewPath(id), "success", SuccessCodeRestaurantUpdated)
}

// loadRestaurant fetches the restaurant for a request. It writes the not
// found page or a redirect itself and reports false when the caller should stop.
func (h *RestaurantHandler) loadRestaurant(w http.ResponseWriter, r *http.Request, id string, logger zerolog.Logger) (*restaurant.Restaurant, bool) {
	if !restaurant.IsValidID(id) {
		logger.Debug().Msg("Malformed restaurant ID")
		h.RenderNotFound(w, r)
		return nil, false
	}

	rest, err := h.Restaurants.Get(r.Context(), id)
	if errors.Is(err, database.ErrRestaurantNotFound) {
		logger.Debug().Msg("Restaurant not found")
		h.RenderNotFound(w, r)
		return nil, false
	}
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load restaurant")
		redirectWithCode(w, r, listPath, "error", ErrCodeFailedLoadRestaurants)
		return nil, false
	}
	return rest, true
}

func (h *RestaurantHandler) renderEditForm(w http.ResponseWriter, r *http.Request, rest *restaurant.Restaurant, form *restaurant.Form, errs []string, status int, logger zerolog.Logger) {
	data := h.newFormPageData(r, form, logger)
	data.Title = "Edit " + rest.Name
	data.Action = viewPath(rest.ID)
	data.SubmitLabel = "Save"
	data.CancelURL = viewPath(rest.ID)
	data.Errors = errs
	h.RenderTemplateWithStatus(w, status, "restaurant_form.html", data)
}

// newFormPageData builds the shared form page state. Catalog failures are
// reported on the page instead of failing the request.
func (h *BaseHandler) newFormPageData(r *http.Request, form *restaurant.Form, logger zerolog.Logger) RestaurantFormPageData {
	activities, okActivities := h.loadCatalog(r, constants.TagKindActivity, logger)
	servings, okServings := h.loadCatalog(r, constants.TagKindServing, logger)

	data := RestaurantFormPageData{
		BasePageData:    h.NewBasePageData(r),
		Form:            form,
		HourRows:        viewhelpers.HourRows(form.OpeningHours),
		ActivityOptions: viewhelpers.TagOptions(activities, form.Activities),
		ServingOptions:  viewhelpers.TagOptions(servings, form.Servings),
	}
	if !okActivities || !okServings {
		data.ErrorMessage = GetErrorMessage(ErrCodeFailedLoadCatalog)
	}
	return data
}
