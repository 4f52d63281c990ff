package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alexivanou/restcountries/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDataset(t *testing.T, countries, states, cities string) string {
	t.Helper()
	dir := t.TempDir()
	for name, data := range map[string]string{
		CountriesFile: countries,
		StatesFile:    states,
		CitiesFile:    cities,
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(data), 0644))
	}
	return dir
}

const testCountries = `[
  {"name": {"common": "France", "official": "French Republic"}, "cca2": "FR", "cca3": "FRA",
   "currencies": {"EUR": {"name": "Euro", "symbol": "€"}}, "languages": {"fra": "French"},
   "translations": {"deu": {"official": "Französische Republik", "common": "Frankreich"}}},
  {"name": {"common": "Togo", "official": "Togolese Republic"}, "cca2": "TG", "cca3": "TGO"}
]`

func TestBundled(t *testing.T) {
	ds, err := Bundled()
	require.NoError(t, err)

	require.NotEmpty(t, ds.Countries)
	assert.Equal(t, "Afghanistan", ds.Countries[0].Name.Common)
	assert.NotEmpty(t, ds.States)
	assert.NotEmpty(t, ds.Cities)
	assert.NoError(t, ds.Validate())
}

func TestParser_ParseCountries(t *testing.T) {
	dir := writeDataset(t, testCountries, `[]`, `[]`)

	countries, err := NewParser(os.DirFS(dir)).ParseCountries()
	require.NoError(t, err)
	require.Len(t, countries, 2)

	fr := countries[0]
	assert.Equal(t, "France", fr.Name.Common)
	assert.Equal(t, "FRA", fr.CCA3)
	assert.Equal(t, "€", fr.Currencies["EUR"].Symbol)
	assert.Equal(t, "Frankreich", fr.Translations[model.German].Common)
	assert.Empty(t, countries[1].Currencies)
}

func TestFromDir(t *testing.T) {
	dir := writeDataset(t, testCountries,
		`[{"code": "IDF", "name": "Île-de-France", "countryCode": "FR"}]`,
		`[{"name": "Paris", "stateCode": "IDF", "countryCode": "FR", "latitude": 48.85, "longitude": 2.35},
		  {"name": "Versailles", "stateCode": "IDF", "countryCode": "FR"}]`)

	ds, err := FromDir(dir)
	require.NoError(t, err)

	assert.Len(t, ds.Countries, 2)
	assert.Equal(t, "Île-de-France", ds.States[0].Name)
	require.Len(t, ds.Cities, 2)
	assert.True(t, ds.Cities[0].HasCoordinates())
	assert.False(t, ds.Cities[1].HasCoordinates())
}

func TestFromDir_Errors(t *testing.T) {
	tests := []struct {
		name      string
		countries string
		states    string
		cities    string
		errMsg    string
	}{
		{
			name:      "malformed json",
			countries: `[{"name": `,
			states:    `[]`,
			cities:    `[]`,
			errMsg:    "failed to decode countries.json",
		},
		{
			name:      "no countries",
			countries: `[]`,
			states:    `[]`,
			cities:    `[]`,
			errMsg:    "no countries",
		},
		{
			name:      "duplicate code",
			countries: `[{"name": {"common": "A"}, "cca2": "AA", "cca3": "AAA"}, {"name": {"common": "B"}, "cca2": "aa", "cca3": "BBB"}]`,
			states:    `[]`,
			cities:    `[]`,
			errMsg:    "duplicate country code",
		},
		{
			name:      "missing code",
			countries: `[{"name": {"common": "A"}, "cca2": "AA"}]`,
			states:    `[]`,
			cities:    `[]`,
			errMsg:    "missing an ISO code",
		},
		{
			name:      "state of unknown country",
			countries: testCountries,
			states:    `[{"code": "CA", "name": "California", "countryCode": "US"}]`,
			cities:    `[]`,
			errMsg:    "unknown country",
		},
		{
			name:      "city of unknown country",
			countries: testCountries,
			states:    `[]`,
			cities:    `[{"name": "Austin", "stateCode": "TX", "countryCode": "US"}]`,
			errMsg:    "unknown country",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeDataset(t, tt.countries, tt.states, tt.cities)
			_, err := FromDir(dir)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestFromDir_MissingFile(t *testing.T) {
	_, err := FromDir(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open countries.json")
}

func TestDataset_Subset(t *testing.T) {
	ds, err := Bundled()
	require.NoError(t, err)

	assert.Same(t, ds, ds.Subset(nil))

	sub := ds.Subset([]string{"us", "FRA", "XX"})
	require.Len(t, sub.Countries, 2)
	assert.Equal(t, "France", sub.Countries[0].Name.Common)
	assert.Equal(t, "United States", sub.Countries[1].Name.Common)

	for _, s := range sub.States {
		assert.Contains(t, []string{"US", "FR"}, s.CountryCode)
	}
	for _, c := range sub.Cities {
		assert.Contains(t, []string{"US", "FR"}, c.CountryCode)
	}
	assert.NotEmpty(t, sub.Cities)
	assert.NoError(t, sub.Validate())
}

func TestDataset_SubsetKeepsISO3Owners(t *testing.T) {
	ds := &Dataset{
		Countries: []model.Country{
			{CCA2: "US", CCA3: "USA"},
			{CCA2: "FR", CCA3: "FRA"},
		},
		States: []model.State{
			{Code: "CA", CountryCode: "USA"},
			{Code: "IDF", CountryCode: "FR"},
		},
		Cities: []model.City{{Name: "Los Angeles", StateCode: "CA", CountryCode: "usa"}},
	}
	require.NoError(t, ds.Validate())

	sub := ds.Subset([]string{"US"})
	require.Len(t, sub.States, 1)
	assert.Equal(t, "CA", sub.States[0].Code)
	require.Len(t, sub.Cities, 1)
}
