// Package geo approximates shipping durations from a shop's state to HQ
// using great-circle distance bucketing over state centroids
package geo

import "math"

// earthRadiusMiles is the haversine radius in statute miles
const earthRadiusMiles = 3959

// Estimate is a shipping duration band in days
type Estimate struct {
	Avg int `json:"avg"`
	Min int `json:"min"`
	Max int `json:"max"`
}

// DefaultEstimate is the conservative band for unknown or missing states
var DefaultEstimate = Estimate{Avg: 3, Min: 2, Max: 4}

// shipTier maps a distance ceiling in miles to a fixed estimate
type shipTier struct {
	maxMiles float64
	est      Estimate
}

// tiers are checked in order; the last one catches everything else
var tiers = []shipTier{
	{maxMiles: 400, est: Estimate{Avg: 2, Min: 1, Max: 3}},
	{maxMiles: 900, est: Estimate{Avg: 3, Min: 2, Max: 4}},
	{maxMiles: 1500, est: Estimate{Avg: 4, Min: 3, Max: 5}},
	{maxMiles: math.Inf(1), est: Estimate{Avg: 5, Min: 4, Max: 7}},
}

// EstimateShipping returns the shipping band for a two-letter state code.
// Total function, unknown codes get DefaultEstimate
func EstimateShipping(stateCode string) Estimate {
	c, ok := centroids[stateCode]
	if !ok {
		return DefaultEstimate
	}
	d := haversineMiles(hq.lat, hq.lon, c.lat, c.lon)
	for _, t := range tiers {
		if d < t.maxMiles {
			return t.est
		}
	}
	return DefaultEstimate // unreachable, last tier is +Inf
}

// haversineMiles computes great-circle distance between two points in miles
func haversineMiles(lat1, lon1, lat2, lon2 float64) float64 {
	const degToRad = math.Pi / 180

	dLat := (lat2 - lat1) * degToRad
	dLon := (lon2 - lon1) * degToRad

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*degToRad)*math.Cos(lat2*degToRad)*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	return 2 * earthRadiusMiles * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}
