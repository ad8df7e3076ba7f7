package handlers

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jamapp/jam-admin/internal/constants"
	"github.com/jamapp/jam-admin/internal/database"
	"github.com/jamapp/jam-admin/internal/logging"
	"github.com/jamapp/jam-admin/internal/openinghours"
	"github.com/jamapp/jam-admin/internal/viewhelpers"
)

//go:embed templates/*.html
var templateFS embed.FS

// BaseHandler contains common handler functionality
type BaseHandler struct {
	tmpl        *template.Template
	Restaurants *database.RestaurantStore
	Catalog     *database.CatalogStore
	logger      zerolog.Logger
}

// NewBaseHandler creates a common base handler with shared components
func NewBaseHandler(restaurants *database.RestaurantStore, catalog *database.CatalogStore) (*BaseHandler, error) {
	logger := logging.GetLogger("base-handler")
	logger.Debug().Msg("Parsing templates")

	funcMap := template.FuncMap{
		"orNA":        viewhelpers.OrNA,
		"joinOrNA":    viewhelpers.JoinOrNA,
		"capitalize":  openinghours.Capitalize,
		"formatHours": openinghours.Format,
		"yesNo": func(b bool) string {
			if b {
				return "Yes"
			}
			return "No"
		},
	}

	// Parse only layout.html initially, pages are parsed into clones
	tmpl, err := template.New("").Funcs(funcMap).ParseFS(templateFS, "templates/layout.html")
	if err != nil {
		logger.Error().Err(err).Msg("Failed to parse templates")
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	logger.Debug().Msg("Templates parsed successfully")

	return &BaseHandler{
		tmpl:        tmpl,
		Restaurants: restaurants,
		Catalog:     catalog,
		logger:      logger,
	}, nil
}

// RenderTemplate renders a page template inside the layout
func (h *BaseHandler) RenderTemplate(w http.ResponseWriter, name string, data interface{}) {
	h.RenderTemplateWithStatus(w, http.StatusOK, name, data)
}

// RenderTemplateWithStatus renders a page template inside the layout with
// the given status code
func (h *BaseHandler) RenderTemplateWithStatus(w http.ResponseWriter, status int, name string, data interface{}) {
	h.logger.Debug().Str("template_name", name).Int("status", status).Msg("Executing template")

	tmpl, err := h.tmpl.Clone()
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to clone template")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if _, err = tmpl.ParseFS(templateFS, "templates/"+name); err != nil {
		h.logger.Error().Err(err).Str("template", name).Msg("Failed to parse page template")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.ExecuteTemplate(w, "layout.html", data); err != nil {
		h.logger.Error().Err(err).Str("template", name).Msg("Failed to execute template")
	}
}

// RenderNotFound renders the not found page
func (h *BaseHandler) RenderNotFound(w http.ResponseWriter, r *http.Request) {
	data := NotFoundPageData{
		BasePageData: h.NewBasePageData(r),
		Path:         r.URL.Path,
	}
	h.RenderTemplateWithStatus(w, http.StatusNotFound, "not_found.html", data)
}

// processMessages extracts and translates error/success codes from query parameters
func (h *BaseHandler) processMessages(r *http.Request, logger zerolog.Logger) (errorMessage, successMessage string) {
	errorCode := r.URL.Query().Get("error")
	successCode := r.URL.Query().Get("success")

	if errorCode != "" {
		errorMessage = GetErrorMessage(errorCode)
		logger.Warn().Str("error_code", errorCode).Str("error_message", errorMessage).Msg("Processing error message")
	}

	if successCode != "" {
		successMessage = GetSuccessMessage(successCode)
		logger.Debug().Str("success_code", successCode).Str("success_message", successMessage).Msg("Processing success message")
	}
	return errorMessage, successMessage
}

// loadCatalog returns the offered tags of a kind, or none when the catalog
// cannot be read
func (h *BaseHandler) loadCatalog(r *http.Request, kind constants.TagKind, logger zerolog.Logger) ([]string, bool) {
	names, err := h.Catalog.List(r.Context(), kind)
	if err != nil {
		logger.Error().Err(err).Str("kind", kind.String()).Msg("Failed to load catalog")
		return []string{}, false
	}
	return names, true
}

// redirectWithCode redirects to target with a single error or success query parameter
func redirectWithCode(w http.ResponseWriter, r *http.Request, target, param, code string) {
	sep := "?"
	if strings.Contains(target, "?") {
		sep = "&"
	}
	http.Redirect(w, r, target+sep+param+"="+code, http.StatusSeeOther)
}

// BasePageData contains common data for all pages
type BasePageData struct {
	AppName     string
	CurrentYear int
	CurrentPath string
}

// NotFoundPageData contains data for the not found page
type NotFoundPageData struct {
	BasePageData
	Path string
}

// NewBasePageData creates a new BasePageData with common fields populated
func (h *BaseHandler) NewBasePageData(r *http.Request) BasePageData {
	return BasePageData{
		AppName:     constants.AppName,
		CurrentYear: time.Now().Year(),
		CurrentPath: r.URL.Path,
	}
}
