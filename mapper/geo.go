package mapper

import "math"

// earthRadiusKM is the Earth radius used by HaversineDistance (spec.md §6).
const earthRadiusKM = 6373.0

// HaversineDistance returns the great-circle distance in kilometers between
// two (longitude, latitude) points expressed in degrees. It is exported so
// client pipelines can use it inside an ArithmeticProcedureForMultipleColumns
// closure, the way yandex_maps_graph does in the reference implementation
// this engine was distilled from.
func HaversineDistance(a, b [2]float64) float64 {
	lonA, latA := degreesToRadians(a[0]), degreesToRadians(a[1])
	lonB, latB := degreesToRadians(b[0]), degreesToRadians(b[1])

	dLat := latB - latA
	dLon := lonB - lonA

	h := math.Pow(math.Sin(dLat/2), 2) +
		math.Cos(latA)*math.Cos(latB)*math.Pow(math.Sin(dLon/2), 2)

	return 2 * earthRadiusKM * math.Asin(math.Sqrt(h))
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
