package pos

import "math"

// Vendors express money in minor units (cents); everything on our side of
// the boundary uses major units. Round-tripping a major-unit price through
// these two must be exact at currency precision.

// MinorToMajor converts a vendor minor-unit amount to major units.
func MinorToMajor(amount int64) float64 {
	return float64(amount) / 100
}

// MajorToMinor converts a major-unit price to vendor minor units,
// rounding to the nearest cent.
func MajorToMinor(price float64) int64 {
	return int64(math.Round(price * 100))
}
