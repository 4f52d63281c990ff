package model

// NearestCity is the result of a nearest-city lookup
type NearestCity struct {
	City       City    `json:"city"`
	DistanceKm float64 `json:"distance_km"`
}

// NearestCityResponse represents the response for nearest city search
type NearestCityResponse struct {
	NearestCity
	RequestCoordinates Coordinate `json:"request_coordinates"`
}

// Coordinate represents geographic coordinates
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// NamesResponse lists country names, optionally translated
type NamesResponse struct {
	Language TranslationLanguage `json:"language,omitempty"`
	Names    []string            `json:"names"`
	Count    int                 `json:"count"`
}

// LanguagesResponse lists the translation languages present in the dataset
type LanguagesResponse struct {
	Languages []TranslationLanguage `json:"languages"`
	Count     int                   `json:"count"`
}
