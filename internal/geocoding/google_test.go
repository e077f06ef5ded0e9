package geocoding_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/Houeta/floodwatch/internal/geocoding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"googlemaps.github.io/maps"
)

// mockGoogleClient is a mock implementation of GoogleAPIClient for testing.
type mockGoogleClient struct {
	geocodeFunc func(ctx context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error)
}

func (m *mockGoogleClient) Geocode(
	ctx context.Context,
	r *maps.GeocodingRequest,
) ([]maps.GeocodingResult, error) {
	return m.geocodeFunc(ctx, r)
}

func TestGoogleProvider_Geocode(t *testing.T) {
	ctx := t.Context()
	logger := slog.Default()

	t.Run("api returns error", func(t *testing.T) {
		mockClient := &mockGoogleClient{
			geocodeFunc: func(_ context.Context, _ *maps.GeocodingRequest) ([]maps.GeocodingResult, error) {
				return nil, assert.AnError
			},
		}

		provider := geocoding.NewGoogleProvider(mockClient, logger)
		coords, err := provider.Geocode(ctx, "some invalid place")

		require.Error(t, err)
		require.Nil(t, coords)
		require.ErrorIs(t, err, assert.AnError)
	})

	t.Run("api returns empty response", func(t *testing.T) {
		mockClient := &mockGoogleClient{
			geocodeFunc: func(_ context.Context, _ *maps.GeocodingRequest) ([]maps.GeocodingResult, error) {
				return nil, nil
			},
		}

		provider := geocoding.NewGoogleProvider(mockClient, logger)
		coords, err := provider.Geocode(ctx, "some invalid place")

		require.Nil(t, coords)
		require.ErrorIs(t, err, geocoding.ErrEmptyResponse)
	})

	t.Run("successful geocoding", func(t *testing.T) {
		mockClient := &mockGoogleClient{
			geocodeFunc: func(_ context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error) {
				assert.Equal(t, "Kuala Lumpur", r.Address)
				return []maps.GeocodingResult{
					{Geometry: maps.AddressGeometry{Location: maps.LatLng{Lat: 3.15, Lng: 101.69}}},
				}, nil
			},
		}

		provider := geocoding.NewGoogleProvider(mockClient, logger)
		coords, err := provider.Geocode(ctx, "Kuala Lumpur")

		require.NoError(t, err)
		require.NotNil(t, coords)
		require.InEpsilon(t, 3.15, coords.Latitude, 0.01)
		require.InEpsilon(t, 101.69, coords.Longitude, 0.01)
	})
}
