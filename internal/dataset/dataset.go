// Package dataset loads the countries/states/cities reference data.
//
// A copy of the data is embedded in the binary; a directory holding the same
// three files can be used instead. Whatever the source, the result is a flat,
// already validated Dataset that is never modified afterwards.
package dataset

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strings"

	"github.com/alexivanou/restcountries/internal/model"
)

// File names expected in a dataset directory
const (
	CountriesFile = "countries.json"
	StatesFile    = "states.json"
	CitiesFile    = "cities.json"
)

//go:embed data/*.json
var bundled embed.FS

// Dataset is the flat collection of every record, in declaration order
type Dataset struct {
	Countries []model.Country
	States    []model.State
	Cities    []model.City
}

// Parser decodes dataset files from a filesystem
type Parser struct {
	fsys fs.FS
}

// NewParser creates a parser reading from fsys
func NewParser(fsys fs.FS) *Parser {
	return &Parser{fsys: fsys}
}

// Bundled returns the dataset embedded in the binary
func Bundled() (*Dataset, error) {
	sub, err := fs.Sub(bundled, "data")
	if err != nil {
		return nil, fmt.Errorf("failed to open bundled dataset: %w", err)
	}
	return NewParser(sub).Parse()
}

// FromDir loads a dataset from a directory on disk
func FromDir(dir string) (*Dataset, error) {
	return NewParser(os.DirFS(dir)).Parse()
}

// Parse reads and validates all three files
func (p *Parser) Parse() (*Dataset, error) {
	countries, err := p.ParseCountries()
	if err != nil {
		return nil, err
	}
	states, err := p.ParseStates()
	if err != nil {
		return nil, err
	}
	cities, err := p.ParseCities()
	if err != nil {
		return nil, err
	}

	ds := &Dataset{Countries: countries, States: states, Cities: cities}
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	return ds, nil
}

// ParseCountries parses countries.json
func (p *Parser) ParseCountries() ([]model.Country, error) {
	var countries []model.Country
	if err := p.decode(CountriesFile, &countries); err != nil {
		return nil, err
	}
	return countries, nil
}

// ParseStates parses states.json
func (p *Parser) ParseStates() ([]model.State, error) {
	var states []model.State
	if err := p.decode(StatesFile, &states); err != nil {
		return nil, err
	}
	return states, nil
}

// ParseCities parses cities.json
func (p *Parser) ParseCities() ([]model.City, error) {
	var cities []model.City
	if err := p.decode(CitiesFile, &cities); err != nil {
		return nil, err
	}
	return cities, nil
}

func (p *Parser) decode(name string, v any) error {
	file, err := p.fsys.Open(name)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", name, err)
	}
	defer file.Close()

	if err := json.NewDecoder(file).Decode(v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", name, err)
	}
	return nil
}

// Validate checks the structural guarantees the indexes rely on:
// every country has unique ISO2/ISO3 codes, every state and city points at a known country
// by either code. Snapshots key locations by the owner's ISO2 code.
func (d *Dataset) Validate() error {
	if len(d.Countries) == 0 {
		return fmt.Errorf("dataset has no countries")
	}

	codes := make(map[string]bool, len(d.Countries)*2)
	for i, c := range d.Countries {
		if c.CCA2 == "" || c.CCA3 == "" {
			return fmt.Errorf("country #%d (%q) is missing an ISO code", i, c.Name.Common)
		}
		for _, code := range []string{strings.ToUpper(c.CCA2), strings.ToUpper(c.CCA3)} {
			if codes[code] {
				return fmt.Errorf("duplicate country code %q", code)
			}
			codes[code] = true
		}
	}

	for _, s := range d.States {
		if !codes[strings.ToUpper(s.CountryCode)] {
			return fmt.Errorf("state %q references unknown country %q", s.Code, s.CountryCode)
		}
	}
	for _, c := range d.Cities {
		if !codes[strings.ToUpper(c.CountryCode)] {
			return fmt.Errorf("city %q references unknown country %q", c.Name, c.CountryCode)
		}
	}
	return nil
}

// WithISO2Owners returns a dataset whose states and cities name their country by
// upper-case ISO2 code. Owners given by ISO3 are rewritten; d is not modified.
func (d *Dataset) WithISO2Owners() *Dataset {
	iso2 := make(map[string]string, len(d.Countries)*2)
	for _, c := range d.Countries {
		code := strings.ToUpper(c.CCA2)
		iso2[code] = code
		iso2[strings.ToUpper(c.CCA3)] = code
	}
	owner := func(code string) string {
		code = strings.ToUpper(strings.TrimSpace(code))
		if c, ok := iso2[code]; ok {
			return c
		}
		return code
	}

	out := &Dataset{
		Countries: d.Countries,
		States:    slices.Clone(d.States),
		Cities:    slices.Clone(d.Cities),
	}
	for i := range out.States {
		out.States[i].CountryCode = owner(out.States[i].CountryCode)
	}
	for i := range out.Cities {
		out.Cities[i].CountryCode = owner(out.Cities[i].CountryCode)
	}
	return out
}

// Subset keeps only the countries whose ISO2 or ISO3 code is listed, with their states and cities.
// An empty list returns d unchanged.
func (d *Dataset) Subset(codes []string) *Dataset {
	if len(codes) == 0 {
		return d
	}

	wanted := make(map[string]bool, len(codes))
	for _, code := range codes {
		wanted[strings.ToUpper(strings.TrimSpace(code))] = true
	}

	out := &Dataset{}
	kept := make(map[string]bool)
	for _, c := range d.Countries {
		if wanted[strings.ToUpper(c.CCA2)] || wanted[strings.ToUpper(c.CCA3)] {
			out.Countries = append(out.Countries, c)
			kept[strings.ToUpper(c.CCA2)] = true
			kept[strings.ToUpper(c.CCA3)] = true
		}
	}
	for _, s := range d.States {
		if kept[strings.ToUpper(s.CountryCode)] {
			out.States = append(out.States, s)
		}
	}
	for _, c := range d.Cities {
		if kept[strings.ToUpper(c.CountryCode)] {
			out.Cities = append(out.Cities, c)
		}
	}
	return out
}
