package service

import (
	"iter"

	"github.com/alexivanou/restcountries/internal/model"
)

// AllCountries yields every country in dataset order
func (s *Service) AllCountries() iter.Seq[model.Country] {
	return s.source.Snapshot().Countries.All()
}

// CountriesByNameContains yields countries whose common name contains name, ignoring case
func (s *Service) CountriesByNameContains(name string) iter.Seq[model.Country] {
	return s.source.Snapshot().Countries.NameContains(name)
}

// CountryByFullName finds the country whose common, official or native name equals name
func (s *Service) CountryByFullName(name string) (model.Country, bool) {
	return s.source.Snapshot().Countries.ByFullName(name)
}

// CountryByCode finds a country by ISO2 or ISO3 code
func (s *Service) CountryByCode(code string) (model.Country, bool) {
	return s.source.Snapshot().Countries.ByCode(code)
}

// CountriesByCurrency yields countries using the currency code
func (s *Service) CountriesByCurrency(currency string) iter.Seq[model.Country] {
	return s.source.Snapshot().Countries.ByCurrency(currency)
}

// CountriesByLanguage yields countries speaking the language, by code or English name
func (s *Service) CountriesByLanguage(language string) iter.Seq[model.Country] {
	return s.source.Snapshot().Countries.ByLanguage(language)
}

// CountryNames yields the common name of every country, or its translation in lang.
// lang may be a key ("fra") or an English name ("French"); an unknown lang yields nothing.
func (s *Service) CountryNames(lang model.TranslationLanguage) iter.Seq[string] {
	if lang != "" {
		lang = model.ParseTranslationLanguage(string(lang))
	}
	return s.source.Snapshot().Countries.Names(lang)
}

// TranslationLanguages lists the translation languages present in the dataset
func (s *Service) TranslationLanguages() []model.TranslationLanguage {
	return s.source.Snapshot().Countries.TranslationLanguages()
}
