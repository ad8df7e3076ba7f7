package handlers

import (
	"net/http"
)

// HomeHandler manages the landing page
type HomeHandler struct {
	*BaseHandler
}

// NewHomeHandler creates a new home page handler
func NewHomeHandler(baseHandler *BaseHandler) *HomeHandler {
	return &HomeHandler{
		BaseHandler: baseHandler,
	}
}

// RegisterRoutes registers home page related routes. The catch-all pattern
// renders the not found page for every unknown path.
func (h *HomeHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.handleHome)
	mux.HandleFunc("/", h.handleNotFound)
}

// HomePageData contains data for the home page template
type HomePageData struct {
	BasePageData
	ErrorMessage   string
	SuccessMessage string
}

func (h *HomeHandler) handleHome(w http.ResponseWriter, r *http.Request) {
	handlerLogger := h.logger.With().Str("handler", "handleHome").Logger()
	handlerLogger.Debug().Msg("Handling home page request")

	errorMessage, successMessage := h.processMessages(r, handlerLogger)
	h.RenderTemplate(w, "home.html", HomePageData{
		BasePageData:   h.NewBasePageData(r),
		ErrorMessage:   errorMessage,
		SuccessMessage: successMessage,
	})
}

func (h *HomeHandler) handleNotFound(w http.ResponseWriter, r *http.Request) {
	h.logger.Debug().Str("path", r.URL.Path).Str("method", r.Method).Msg("No route matched")
	h.RenderNotFound(w, r)
}
