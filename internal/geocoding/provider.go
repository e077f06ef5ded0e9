package geocoding

import (
	"context"

	"github.com/Houeta/floodwatch/internal/models"
)

// Provider is an interface that defines a method for geocoding a place name.
// The Geocode method takes a context and a city or address string as input,
// and returns the corresponding coordinates and an error if any occurs.
type Provider interface {
	Geocode(ctx context.Context, place string) (*models.Coordinates, error)
}
