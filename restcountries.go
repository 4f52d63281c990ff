// Package restcountries answers read-only queries over a bundled dataset of
// countries, their states and their cities.
//
// The package-level functions use a default dataset that is indexed on first
// use. New and NewFromDir build independent instances.
//
//	fr, ok := restcountries.CountryByCode("FRA")
//	for c := range restcountries.CountriesByCurrency("EUR") {
//		fmt.Println(c.Name.Common)
//	}
package restcountries

import (
	"context"
	"errors"
	"iter"
	"sync"

	"github.com/alexivanou/restcountries/internal/dataset"
	"github.com/alexivanou/restcountries/internal/index"
	"github.com/alexivanou/restcountries/internal/model"
	"github.com/alexivanou/restcountries/internal/service"
	"github.com/alexivanou/restcountries/internal/store"
	"go.uber.org/zap"
)

type (
	Country             = model.Country
	CountryName         = model.CountryName
	NameTranslation     = model.NameTranslation
	Currency            = model.Currency
	State               = model.State
	City                = model.City
	NearestCityResult   = model.NearestCity
	TranslationLanguage = model.TranslationLanguage
)

// Common translation languages
const (
	French   = model.French
	German   = model.German
	Spanish  = model.Spanish
	Italian  = model.Italian
	Japanese = model.Japanese
)

// Option configures how names are matched
type Option = index.Option

// WithAccentFolding makes name matching ignore diacritics: "Benin" finds "Bénin".
func WithAccentFolding() Option {
	return index.WithAccentFolding()
}

// Countries is a queryable dataset. It is safe for concurrent use, including
// concurrent Reload.
type Countries struct {
	*service.Service
	store *store.Store
	dir   string
}

// ErrNotWatchable is returned by Watch on a dataset that was not read from a directory
var ErrNotWatchable = errors.New("restcountries: only a dataset read from a directory can be watched")

// New indexes the bundled dataset
func New(opts ...Option) (*Countries, error) {
	return open("", func(context.Context) (*dataset.Dataset, error) {
		return dataset.Bundled()
	}, opts)
}

// NewFromDir indexes countries.json, states.json and cities.json from dir.
// Reload and Watch read the directory again.
func NewFromDir(dir string, opts ...Option) (*Countries, error) {
	return open(dir, func(context.Context) (*dataset.Dataset, error) {
		return dataset.FromDir(dir)
	}, opts)
}

func open(dir string, load store.LoaderFunc, opts []Option) (*Countries, error) {
	ds, err := load(context.Background())
	if err != nil {
		return nil, err
	}
	st := store.New(ds, load, zap.NewNop(), opts...)
	return &Countries{Service: service.NewService(st), store: st, dir: dir}, nil
}

// Reload reads the dataset again and swaps it in; on error the current data stays.
func (c *Countries) Reload(ctx context.Context) error {
	return c.store.Reload(ctx)
}

// Watch reloads whenever a dataset file in the directory given to NewFromDir
// changes, until ctx is done. Other instances return ErrNotWatchable.
func (c *Countries) Watch(ctx context.Context) error {
	if c.dir == "" {
		return ErrNotWatchable
	}
	return c.store.Watch(ctx, c.dir)
}

var defaultCountries = sync.OnceValue(func() *Countries {
	c, err := New()
	if err != nil {
		// the bundled files are compiled in; failing here means a broken build
		panic("restcountries: " + err.Error())
	}
	return c
})

// AllCountries yields every country in dataset order
func AllCountries() iter.Seq[Country] {
	return defaultCountries().AllCountries()
}

// CountriesByNameContains yields countries whose common name contains name, ignoring case
func CountriesByNameContains(name string) iter.Seq[Country] {
	return defaultCountries().CountriesByNameContains(name)
}

// CountryByFullName finds a country by its common, official or native name, ignoring case
func CountryByFullName(name string) (Country, bool) {
	return defaultCountries().CountryByFullName(name)
}

// CountryByCode finds a country by ISO2 or ISO3 code, ignoring case
func CountryByCode(code string) (Country, bool) {
	return defaultCountries().CountryByCode(code)
}

// CountriesByCurrency yields countries using a currency code such as "EUR"
func CountriesByCurrency(currency string) iter.Seq[Country] {
	return defaultCountries().CountriesByCurrency(currency)
}

// CountriesByLanguage yields countries speaking a language, by code ("fra") or name ("French")
func CountriesByLanguage(language string) iter.Seq[Country] {
	return defaultCountries().CountriesByLanguage(language)
}

// CountryNames yields common names, or names translated into lang
func CountryNames(lang TranslationLanguage) iter.Seq[string] {
	return defaultCountries().CountryNames(lang)
}

// TranslationLanguages lists the languages CountryNames accepts
func TranslationLanguages() []TranslationLanguage {
	return defaultCountries().TranslationLanguages()
}

// StatesByCountryCode yields the states of a country
func StatesByCountryCode(countryCode string) iter.Seq[State] {
	return defaultCountries().StatesByCountryCode(countryCode)
}

// CitiesInState yields the cities of a state inside a country
func CitiesInState(stateCode, countryCode string) iter.Seq[City] {
	return defaultCountries().CitiesInState(stateCode, countryCode)
}

// NearestCity finds the closest city with known coordinates
func NearestCity(lat, lon float64) (NearestCityResult, bool) {
	return defaultCountries().NearestCity(lat, lon)
}
