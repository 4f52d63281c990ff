package model

import (
	"maps"
	"slices"
)

// NameTranslation is a (common, official) name pair in a given language
type NameTranslation struct {
	Official string `json:"official"`
	Common   string `json:"common"`
}

// CountryName holds the English names of a country and its names in its own languages
type CountryName struct {
	Common     string                     `json:"common"`
	Official   string                     `json:"official"`
	NativeName map[string]NameTranslation `json:"nativeName,omitempty"`
}

// Currency describes one currency in use by a country
type Currency struct {
	Name   string `json:"name"`
	Symbol string `json:"symbol,omitempty"`
}

// Flags holds flag image URLs
type Flags struct {
	PNG string `json:"png,omitempty"`
	SVG string `json:"svg,omitempty"`
}

// Country represents a country of the bundled dataset.
// Only codes, names, currencies and languages are matched on; the rest is passthrough.
type Country struct {
	Name         CountryName                             `json:"name"`
	CCA2         string                                  `json:"cca2"`
	CCA3         string                                  `json:"cca3"`
	Currencies   map[string]Currency                     `json:"currencies,omitempty"`
	Languages    map[string]string                       `json:"languages,omitempty"`
	Translations map[TranslationLanguage]NameTranslation `json:"translations,omitempty"`
	Region       string                                  `json:"region,omitempty"`
	Subregion    string                                  `json:"subregion,omitempty"`
	Capital      []string                                `json:"capital,omitempty"`
	Population   int64                                   `json:"population"`
	LatLng       []float64                               `json:"latlng,omitempty"`
	Flags        Flags                                   `json:"flags"`
}

// State represents a first-level subdivision (state, province, region).
// Code is unique only within CountryCode.
type State struct {
	Code        string `json:"code" db:"code"`
	Name        string `json:"name" db:"name"`
	CountryCode string `json:"countryCode" db:"country_code"`
}

// City represents a city scoped to a (state, country) pair
type City struct {
	Name        string   `json:"name" db:"name"`
	StateCode   string   `json:"stateCode" db:"state_code"`
	CountryCode string   `json:"countryCode" db:"country_code"`
	Latitude    *float64 `json:"latitude,omitempty" db:"lat"`
	Longitude   *float64 `json:"longitude,omitempty" db:"lon"`
}

// HasCoordinates reports whether both coordinates are present
func (c City) HasCoordinates() bool {
	return c.Latitude != nil && c.Longitude != nil
}

// Clone returns a copy of c that shares no maps or slices with it
func (c Country) Clone() Country {
	c.Name.NativeName = maps.Clone(c.Name.NativeName)
	c.Currencies = maps.Clone(c.Currencies)
	c.Languages = maps.Clone(c.Languages)
	c.Translations = maps.Clone(c.Translations)
	c.Capital = slices.Clone(c.Capital)
	c.LatLng = slices.Clone(c.LatLng)
	return c
}

// Clone returns a copy of c with its own coordinates
func (c City) Clone() City {
	if c.Latitude != nil {
		lat := *c.Latitude
		c.Latitude = &lat
	}
	if c.Longitude != nil {
		lon := *c.Longitude
		c.Longitude = &lon
	}
	return c
}
