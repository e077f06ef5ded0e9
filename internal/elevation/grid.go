package elevation

import (
	"math"

	"github.com/Houeta/floodwatch/internal/models"
)

// kmPerDegree is the rough length of one degree of latitude in kilometres.
const kmPerDegree = 111.0

// gridAxes builds the latitude and longitude sample axes for a square grid
// covering radiusKM around the location. The longitude span is corrected for
// the shrinking of a degree of longitude away from the equator.
func gridAxes(location models.Coordinates, radiusKM float64, resolution int) ([]float64, []float64) {
	latOffset := radiusKM / kmPerDegree
	lonOffset := radiusKM / (kmPerDegree * math.Cos(location.Latitude*math.Pi/180))

	lats := linspace(location.Latitude-latOffset, location.Latitude+latOffset, resolution)
	lons := linspace(location.Longitude-lonOffset, location.Longitude+lonOffset, resolution)

	return lats, lons
}

// linspace returns n evenly spaced values from start to end inclusive.
func linspace(start, end float64, n int) []float64 {
	if n == 1 {
		return []float64{start}
	}

	values := make([]float64, n)
	step := (end - start) / float64(n-1)
	for i := range n {
		values[i] = start + float64(i)*step
	}

	return values
}

// buildProfile summarizes an elevation grid: centre, minimum, maximum and
// average elevation plus the slope statistics.
func buildProfile(lats, lons []float64, grid [][]float64) *models.ElevationProfile {
	resolution := len(grid)
	center := grid[resolution/2][resolution/2]

	minElev := math.Inf(1)
	maxElev := math.Inf(-1)
	var sum float64
	for _, row := range grid {
		for _, elev := range row {
			minElev = math.Min(minElev, elev)
			maxElev = math.Max(maxElev, elev)
			sum += elev
		}
	}

	return &models.ElevationProfile{
		Latitudes:  lats,
		Longitudes: lons,
		Elevations: grid,
		Center:     center,
		Min:        minElev,
		Max:        maxElev,
		Avg:        sum / float64(resolution*resolution),
		Slope:      slopeStats(grid),
	}
}

// slopeStats computes the average and maximum gradient magnitude over the
// grid using central differences on interior points and one-sided differences
// at the edges.
func slopeStats(grid [][]float64) models.SlopeStats {
	rows := len(grid)
	cols := len(grid[0])

	var sum, maxSlope float64
	for i := range rows {
		for j := range cols {
			dy := axisDiff(func(k int) float64 { return grid[k][j] }, i, rows)
			dx := axisDiff(func(k int) float64 { return grid[i][k] }, j, cols)
			slope := math.Sqrt(dx*dx + dy*dy)

			sum += slope
			maxSlope = math.Max(maxSlope, slope)
		}
	}

	return models.SlopeStats{
		Average: sum / float64(rows*cols),
		Max:     maxSlope,
	}
}

// axisDiff computes the finite-difference derivative along one axis:
// central difference on interior points, one-sided at the edges.
func axisDiff(at func(int) float64, idx, n int) float64 {
	switch {
	case n == 1:
		return 0
	case idx == 0:
		return at(1) - at(0)
	case idx == n-1:
		return at(n-1) - at(n-2)
	default:
		return (at(idx+1) - at(idx-1)) / 2
	}
}
