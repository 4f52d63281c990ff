package api

import (
	"encoding/json"
	"iter"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/alexivanou/restcountries/internal/model"
	"github.com/alexivanou/restcountries/internal/service"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Handler handles HTTP requests
type Handler struct {
	service service.ServiceInterface
	logger  *zap.Logger
}

// NewHandler creates a new handler instance
func NewHandler(service service.ServiceInterface, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{service: service, logger: logger}
}

// ListCountries handles GET /api/v1/countries
func (h *Handler) ListCountries(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, collect(h.service.AllCountries()))
}

// SearchCountries handles GET /api/v1/countries/search
func (h *Handler) SearchCountries(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if strings.TrimSpace(query) == "" {
		http.Error(w, "query parameter 'q' is required", http.StatusBadRequest)
		return
	}

	h.writeJSON(w, collect(h.service.CountriesByNameContains(query)))
}

// GetCountryByName handles GET /api/v1/countries/name/{name}
func (h *Handler) GetCountryByName(w http.ResponseWriter, r *http.Request) {
	country, ok := h.service.CountryByFullName(mux.Vars(r)["name"])
	if !ok {
		http.Error(w, "country not found", http.StatusNotFound)
		return
	}

	h.writeJSON(w, country)
}

// GetCountryByCode handles GET /api/v1/countries/code/{code}
func (h *Handler) GetCountryByCode(w http.ResponseWriter, r *http.Request) {
	country, ok := h.service.CountryByCode(mux.Vars(r)["code"])
	if !ok {
		http.Error(w, "country not found", http.StatusNotFound)
		return
	}

	h.writeJSON(w, country)
}

// ListCountriesByCurrency handles GET /api/v1/countries/currency/{code}
func (h *Handler) ListCountriesByCurrency(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, collect(h.service.CountriesByCurrency(mux.Vars(r)["code"])))
}

// ListCountriesByLanguage handles GET /api/v1/countries/language/{lang}
func (h *Handler) ListCountriesByLanguage(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, collect(h.service.CountriesByLanguage(mux.Vars(r)["lang"])))
}

// ListCountryNames handles GET /api/v1/countries/names
func (h *Handler) ListCountryNames(w http.ResponseWriter, r *http.Request) {
	lang := model.TranslationLanguage(r.URL.Query().Get("lang"))
	if lang != "" {
		lang = model.ParseTranslationLanguage(string(lang))
	}

	names := collect(h.service.CountryNames(lang))
	h.writeJSON(w, model.NamesResponse{
		Language: lang,
		Names:    names,
		Count:    len(names),
	})
}

// ListStates handles GET /api/v1/countries/{code}/states
func (h *Handler) ListStates(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, collect(h.service.StatesByCountryCode(mux.Vars(r)["code"])))
}

// ListCities handles GET /api/v1/countries/{code}/states/{state}/cities
func (h *Handler) ListCities(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	h.writeJSON(w, collect(h.service.CitiesInState(vars["state"], vars["code"])))
}

// FindNearestCity handles GET /api/v1/nearest
func (h *Handler) FindNearestCity(w http.ResponseWriter, r *http.Request) {
	latStr := r.URL.Query().Get("lat")
	lonStr := r.URL.Query().Get("lon")

	if latStr == "" || lonStr == "" {
		http.Error(w, "parameters 'lat' and 'lon' are required", http.StatusBadRequest)
		return
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		http.Error(w, "invalid lat parameter", http.StatusBadRequest)
		return
	}

	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		http.Error(w, "invalid lon parameter", http.StatusBadRequest)
		return
	}

	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		http.Error(w, "invalid coordinates range", http.StatusBadRequest)
		return
	}

	nearest, ok := h.service.NearestCity(lat, lon)
	if !ok {
		http.Error(w, "no cities found", http.StatusNotFound)
		return
	}

	h.writeJSON(w, model.NearestCityResponse{
		NearestCity:        nearest,
		RequestCoordinates: model.Coordinate{Lat: lat, Lon: lon},
	})
}

// GetAvailableLanguages handles GET /api/v1/languages
func (h *Handler) GetAvailableLanguages(w http.ResponseWriter, r *http.Request) {
	languages := h.service.TranslationLanguages()
	if languages == nil {
		languages = []model.TranslationLanguage{}
	}

	h.writeJSON(w, model.LanguagesResponse{
		Languages: languages,
		Count:     len(languages),
	})
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (h *Handler) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("Error encoding response", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

// collect drains seq into a non-nil slice so empty results encode as []
func collect[T any](seq iter.Seq[T]) []T {
	items := slices.Collect(seq)
	if items == nil {
		return []T{}
	}
	return items
}
