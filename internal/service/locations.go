package service

import (
	"iter"

	"github.com/alexivanou/restcountries/internal/index"
	"github.com/alexivanou/restcountries/internal/model"
)

// StatesByCountryCode yields the states of a country given by ISO2 or ISO3 code
func (s *Service) StatesByCountryCode(countryCode string) iter.Seq[model.State] {
	snap := s.source.Snapshot()
	return snap.Locations.States(resolveCountry(snap, countryCode))
}

// CitiesInState yields the cities of the state stateCode inside countryCode.
// Both codes must match; a state code valid in another country yields nothing.
func (s *Service) CitiesInState(stateCode, countryCode string) iter.Seq[model.City] {
	snap := s.source.Snapshot()
	return snap.Locations.Cities(stateCode, resolveCountry(snap, countryCode))
}

// NearestCity finds the closest city with known coordinates
func (s *Service) NearestCity(lat, lon float64) (model.NearestCity, bool) {
	return s.source.Snapshot().Locations.Nearest(lat, lon)
}

// resolveCountry turns an ISO3 code into the ISO2 code locations are keyed by.
// Unknown codes are passed through and simply match nothing.
func resolveCountry(snap *index.Snapshot, code string) string {
	return snap.Countries.ISO2(code)
}
