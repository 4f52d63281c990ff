package api

import (
	"github.com/alexivanou/restcountries/internal/service"
	"github.com/alexivanou/restcountries/internal/stats"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// NewRouter creates a new HTTP router
func NewRouter(service service.ServiceInterface, statsCollector *stats.Collector, logger *zap.Logger) *mux.Router {
	handler := NewHandler(service, logger)
	statsHandler := NewStatsHandler(statsCollector, logger)

	router := mux.NewRouter()

	// Health check
	router.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	// API v1
	v1 := router.PathPrefix("/api/v1").Subrouter()
	v1.HandleFunc("/countries", handler.ListCountries).Methods("GET")
	v1.HandleFunc("/countries/search", handler.SearchCountries).Methods("GET")
	v1.HandleFunc("/countries/names", handler.ListCountryNames).Methods("GET")
	v1.HandleFunc("/countries/name/{name}", handler.GetCountryByName).Methods("GET")
	v1.HandleFunc("/countries/code/{code}", handler.GetCountryByCode).Methods("GET")
	v1.HandleFunc("/countries/currency/{code}", handler.ListCountriesByCurrency).Methods("GET")
	v1.HandleFunc("/countries/language/{lang}", handler.ListCountriesByLanguage).Methods("GET")
	v1.HandleFunc("/countries/{code}/states", handler.ListStates).Methods("GET")
	v1.HandleFunc("/countries/{code}/states/{state}/cities", handler.ListCities).Methods("GET")
	v1.HandleFunc("/nearest", handler.FindNearestCity).Methods("GET")
	v1.HandleFunc("/languages", handler.GetAvailableLanguages).Methods("GET")
	v1.HandleFunc("/stats", statsHandler.GetStats).Methods("GET")

	return router
}
