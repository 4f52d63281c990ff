package index

import (
	"iter"
	"math"
	"slices"
	"strings"

	"github.com/alexivanou/restcountries/internal/model"
	"github.com/golang/geo/s2"
)

// s2CellLevel gives cells of roughly 10km, enough to find a neighbour city
// without scanning the whole dataset.
const s2CellLevel = 10

const earthRadiusKm = 6371

type stateKey struct {
	state   string
	country string
}

// LocationIndex answers country -> states -> cities lookups by exact code
type LocationIndex struct {
	states []model.State
	cities []model.City

	statesByCountry map[string][]int
	citiesByState   map[stateKey][]int
	cellIndex       map[s2.CellID][]int
	geoCount        int
}

// NewLocationIndex groups states by country and cities by (state, country).
// owner maps the country code of a record to the ISO2 code lookups use; nil only upper-cases.
// States and cities are copied with their country code rewritten.
func NewLocationIndex(states []model.State, cities []model.City, owner func(string) string) *LocationIndex {
	if owner == nil {
		owner = func(code string) string { return strings.ToUpper(strings.TrimSpace(code)) }
	}
	states = slices.Clone(states)
	cities = slices.Clone(cities)

	x := &LocationIndex{
		states:          states,
		cities:          cities,
		statesByCountry: make(map[string][]int),
		citiesByState:   make(map[stateKey][]int),
		cellIndex:       make(map[s2.CellID][]int),
	}

	for i := range states {
		states[i].CountryCode = owner(states[i].CountryCode)
		country := states[i].CountryCode
		x.statesByCountry[country] = append(x.statesByCountry[country], i)
	}

	for i := range cities {
		cities[i].CountryCode = owner(cities[i].CountryCode)
		c := cities[i]
		key := stateKey{state: strings.ToUpper(c.StateCode), country: c.CountryCode}
		x.citiesByState[key] = append(x.citiesByState[key], i)

		if c.HasCoordinates() {
			cell := s2.CellIDFromLatLng(s2.LatLngFromDegrees(*c.Latitude, *c.Longitude)).Parent(s2CellLevel)
			x.cellIndex[cell] = append(x.cellIndex[cell], i)
			x.geoCount++
		}
	}

	return x
}

// StateCount returns the number of indexed states
func (x *LocationIndex) StateCount() int {
	return len(x.states)
}

// CityCount returns the number of indexed cities
func (x *LocationIndex) CityCount() int {
	return len(x.cities)
}

// GeoCityCount returns the number of cities with coordinates
func (x *LocationIndex) GeoCityCount() int {
	return x.geoCount
}

// States yields the states of a country, given its ISO2 code
func (x *LocationIndex) States(countryCode string) iter.Seq[model.State] {
	idx := x.statesByCountry[strings.ToUpper(strings.TrimSpace(countryCode))]
	return func(yield func(model.State) bool) {
		for _, i := range idx {
			if !yield(x.states[i]) {
				return
			}
		}
	}
}

// Cities yields the cities of exactly (stateCode, countryCode)
func (x *LocationIndex) Cities(stateCode, countryCode string) iter.Seq[model.City] {
	key := stateKey{
		state:   strings.ToUpper(strings.TrimSpace(stateCode)),
		country: strings.ToUpper(strings.TrimSpace(countryCode)),
	}
	idx := x.citiesByState[key]
	return func(yield func(model.City) bool) {
		for _, i := range idx {
			if !yield(x.cities[i].Clone()) {
				return
			}
		}
	}
}

// Nearest finds the city with coordinates closest to (lat, lon).
// The search starts at the S2 cell holding the point and grows ring by ring until no
// unvisited cell can hold a closer city; a sparse area ends in a full scan.
func (x *LocationIndex) Nearest(lat, lon float64) (model.NearestCity, bool) {
	if math.IsNaN(lat) || math.IsNaN(lon) || math.IsInf(lat, 0) || math.IsInf(lon, 0) || x.geoCount == 0 {
		return model.NearestCity{}, false
	}

	origin := s2.PointFromLatLng(s2.LatLngFromDegrees(lat, lon))
	cell := s2.CellIDFromLatLng(s2.LatLngFromDegrees(lat, lon)).Parent(s2CellLevel)

	best := -1
	minDist := math.MaxFloat64
	consider := func(i int) {
		c := x.cities[i]
		dist := calculateDistance(lat, lon, *c.Latitude, *c.Longitude)
		// ties go to the earlier declared city
		if dist < minDist || (dist == minDist && i < best) {
			minDist = dist
			best = i
		}
	}

	visited := map[s2.CellID]bool{cell: true}
	ring := []s2.CellID{cell}
	for step := 0; step < maxRingSteps && len(ring) > 0; step++ {
		for _, c := range ring {
			for _, i := range x.cellIndex[c] {
				consider(i)
			}
		}

		next := nextRing(ring, visited)
		if best >= 0 && minDist < ringDistanceKm(origin, next) {
			return model.NearestCity{City: x.cities[best].Clone(), DistanceKm: minDist}, true
		}
		ring = next
	}

	for i, c := range x.cities {
		if c.HasCoordinates() {
			consider(i)
		}
	}
	return model.NearestCity{City: x.cities[best].Clone(), DistanceKm: minDist}, true
}

// maxRingSteps bounds the ring search before falling back to a full scan
const maxRingSteps = 8

// nextRing returns the unvisited edge neighbours of ring and marks them visited
func nextRing(ring []s2.CellID, visited map[s2.CellID]bool) []s2.CellID {
	var next []s2.CellID
	for _, c := range ring {
		for _, n := range c.EdgeNeighbors() {
			if !visited[n] {
				visited[n] = true
				next = append(next, n)
			}
		}
	}
	return next
}

// ringDistanceKm is a lower bound on the distance from origin to any point of the cells
func ringDistanceKm(origin s2.Point, ring []s2.CellID) float64 {
	minDist := math.MaxFloat64
	for _, id := range ring {
		d := s2.CellFromCellID(id).Distance(origin).Angle().Radians() * earthRadiusKm
		minDist = min(minDist, d)
	}
	return minDist
}

// calculateDistance returns the haversine distance in km
func calculateDistance(lat1, lon1, lat2, lon2 float64) float64 {
	const R = earthRadiusKm
	dLat := (lat2 - lat1) * (math.Pi / 180.0)
	dLon := (lon2 - lon1) * (math.Pi / 180.0)
	lat1Rad := lat1 * (math.Pi / 180.0)
	lat2Rad := lat2 * (math.Pi / 180.0)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return R * c
}
