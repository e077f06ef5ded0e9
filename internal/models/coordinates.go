package models

import "math"

// Coordinates represents a geographical point defined by its latitude and longitude.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`  // Latitude of the geographical point.
	Longitude float64 `json:"longitude"` // Longitude of the geographical point.
}

// Valid reports whether the coordinates lie inside the WGS84 bounds.
func (c Coordinates) Valid() bool {
	return c.Latitude >= -90 && c.Latitude <= 90 && c.Longitude >= -180 && c.Longitude <= 180
}

// Seed derives a stable pseudo-random seed from the coordinates rounded to
// ~10 m. Mock data generators use it so repeated requests for the same point
// produce the same substitute values.
func (c Coordinates) Seed() uint64 {
	lat := int64(math.Round(c.Latitude * 1e4))
	lon := int64(math.Round(c.Longitude * 1e4))

	return uint64(lat)*0x9E3779B97F4A7C15 ^ uint64(lon)
}
