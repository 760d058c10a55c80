// Package api serves the country list, on-demand country profiles and the
// browser page that consumes them.
package api

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"net/url"

	"wbcountries-backend/internal/assert"
	"wbcountries-backend/internal/components/telemetry"
	"wbcountries-backend/internal/countries"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const (
	report_handler_country_details = "handler.country-details"
	report_handler_index           = "handler.index"
	report_handler_write_response  = "handler.write-response"
)

const (
	detailCountryNotFound = "Country not found"
	detailCodeNotFound    = "Country code not found for profile lookup"
)

// Store is the read side of countries.Store the handler depends on.
type Store interface {
	List() []countries.Country
	Details(ctx context.Context, name string) (countries.Country, error)
	Counts() (matched, unmatched int)
}

// Handler wires the country endpoints to the store.
type Handler struct {
	store Store
	tel   telemetry.API
	index *template.Template
}

func NewHandler(store Store, tel telemetry.API) *Handler {
	assert.NotNil(store, "store")
	assert.NotNil(tel, "tel")

	return &Handler{
		store: store,
		tel:   telemetry.NewScopedAPI("api", tel),
		index: indexTemplate,
	}
}

// Register mounts the endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/", h.HandleIndex)
	r.Get("/api/countries", h.HandleListCountries)
	r.Get("/api/countries/{name}", h.HandleCountryDetails)
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFiles))))
}

// NewRouter builds the full http handler of the service.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	h.Register(r)
	return r
}

type countriesResponse struct {
	Countries []countries.Country `json:"countries"`
}

type countryResponse struct {
	Country countries.Country `json:"country"`
}

// HandleListCountries handles GET /api/countries.
func (h *Handler) HandleListCountries(w http.ResponseWriter, r *http.Request) {
	list := h.store.List()
	if list == nil {
		list = []countries.Country{}
	}
	h.writeJSON(w, http.StatusOK, countriesResponse{Countries: list})
}

// HandleCountryDetails handles GET /api/countries/{name}, building the
// country's profile on first access.
func (h *Handler) HandleCountryDetails(w http.ResponseWriter, r *http.Request) {
	// chi matches against RawPath when it is set, leaving the param escaped
	name := chi.URLParam(r, "name")
	if r.URL.RawPath != "" {
		unescaped, err := url.PathUnescape(name)
		if err != nil {
			h.writeError(w, http.StatusNotFound, detailCountryNotFound)
			return
		}
		name = unescaped
	}

	country, err := h.store.Details(r.Context(), name)
	switch {
	case errors.Is(err, countries.ErrCountryNotFound):
		h.writeError(w, http.StatusNotFound, detailCountryNotFound)
		return
	case errors.Is(err, countries.ErrCodeNotFound):
		h.writeError(w, http.StatusNotFound, detailCodeNotFound)
		return
	case err != nil:
		h.tel.ReportBroken(report_handler_country_details, err, name)
		h.writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.writeJSON(w, http.StatusOK, countryResponse{Country: country})
}

type indexData struct {
	Title     string
	Total     int
	Unmatched int
}

// HandleIndex handles GET /, rendering the browser page.
func (h *Handler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	matched, unmatched := h.store.Counts()

	w.Header().Set("content-type", "text/html; charset=utf-8")
	err := h.index.Execute(w, indexData{
		Title:     "World Bank Countries",
		Total:     matched + unmatched,
		Unmatched: unmatched,
	})
	if err != nil {
		h.tel.ReportBroken(report_handler_index, err)
	}
}
