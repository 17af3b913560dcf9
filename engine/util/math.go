package util

import "math"

// RoundHalfUp snaps x to the block grid the way block coordinates do:
// floor(x+0.5). math.Round would send -0.5 to -1.
func RoundHalfUp(x float64) float64 {
	return math.Floor(x + 0.5)
}

func Clamp(value, min, max float64) float64 {
	return math.Min(math.Max(value, min), max)
}

func ClampInt(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

func FloorInt(x float64) int {
	return int(math.Floor(x))
}
