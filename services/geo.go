package services

import (
	"math"

	"GuardTrack/models"
	"GuardTrack/util"
)

const earthRadiusMeters = 6371000.0

// DistanceMeters is the great-circle distance between two points.
func DistanceMeters(a, b models.Coordinates) float64 {
	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180
	dLng := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusMeters * math.Asin(math.Min(1, math.Sqrt(h)))
}

func coordinatesFrom(lat, lng *float64) (models.Coordinates, error) {
	if lat == nil || lng == nil {
		return models.Coordinates{}, badRequest(util.INVALID_COORDINATES)
	}
	c := models.Coordinates{Latitude: *lat, Longitude: *lng}
	if math.IsNaN(c.Latitude) || math.IsNaN(c.Longitude) ||
		c.Latitude < -90 || c.Latitude > 90 ||
		c.Longitude < -180 || c.Longitude > 180 {
		return models.Coordinates{}, badRequest(util.INVALID_COORDINATES)
	}
	return c, nil
}
