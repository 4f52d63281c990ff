package service

import (
	"iter"

	"github.com/alexivanou/restcountries/internal/model"
)

// ServiceInterface defines the service interface for testing
type ServiceInterface interface {
	AllCountries() iter.Seq[model.Country]
	CountriesByNameContains(name string) iter.Seq[model.Country]
	CountryByFullName(name string) (model.Country, bool)
	CountryByCode(code string) (model.Country, bool)
	CountriesByCurrency(currency string) iter.Seq[model.Country]
	CountriesByLanguage(language string) iter.Seq[model.Country]
	CountryNames(lang model.TranslationLanguage) iter.Seq[string]
	TranslationLanguages() []model.TranslationLanguage
	StatesByCountryCode(countryCode string) iter.Seq[model.State]
	CitiesInState(stateCode, countryCode string) iter.Seq[model.City]
	NearestCity(lat, lon float64) (model.NearestCity, bool)
}

var _ ServiceInterface = (*Service)(nil)
