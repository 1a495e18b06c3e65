package spatial

import (
	"math"

	"github.com/golang/geo/s2"
)

// EarthRadiusMeters is the mean Earth radius used for distance math
const EarthRadiusMeters = 6371000.0

// Unit conversion factors
const (
	MetersPerMile = 1609.344
	FeetPerMeter  = 3.28084
)

// Point is one point of a trail route with optional elevation in meters
type Point struct {
	Lat       float64
	Lon       float64
	Elevation float64
}

// HaversineDistance calculates the great-circle distance between two
// points in meters
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Radians() * EarthRadiusMeters
}

// RouteLength sums the great-circle distances along a coordinate
// sequence, in meters
func RouteLength(points []Point) float64 {
	var total float64
	for i := 1; i < len(points); i++ {
		total += HaversineDistance(
			points[i-1].Lat, points[i-1].Lon,
			points[i].Lat, points[i].Lon,
		)
	}
	return total
}

// ElevationProfile accumulates total ascent and descent in meters over
// a coordinate sequence. Both results are non-negative.
func ElevationProfile(points []Point) (gain, loss float64) {
	for i := 1; i < len(points); i++ {
		diff := points[i].Elevation - points[i-1].Elevation
		if diff > 0 {
			gain += diff
		} else {
			loss -= diff
		}
	}
	return gain, loss
}

// Centroid calculates the geographic centroid of a set of points
func Centroid(points []Point) Point {
	if len(points) == 0 {
		return Point{}
	}

	var sumLat, sumLon float64
	for _, p := range points {
		sumLat += p.Lat
		sumLon += p.Lon
	}

	return Point{
		Lat: sumLat / float64(len(points)),
		Lon: sumLon / float64(len(points)),
	}
}

// MetersToMiles converts meters to statute miles
func MetersToMiles(m float64) float64 {
	return m / MetersPerMile
}

// MetersToFeet converts meters to feet
func MetersToFeet(m float64) float64 {
	return m * FeetPerMeter
}

// RoundTo rounds v to the given number of decimal places
func RoundTo(v float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(v*factor) / factor
}
