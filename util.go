package main

import (
	"math"
	"math/rand/v2"

	"github.com/google/uuid"
	"github.com/jakecoffman/cp"
)

// GenerateTag returns a random tag used to correlate log lines of one connection
func GenerateTag() string {
	return uuid.NewString()[:8]
}

// Clamp restricts v to [min, max]
func Clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// Direction returns the unit vector for an angle in radians
func Direction(angle float64) cp.Vector {
	return cp.ForAngle(angle)
}

// finite reports whether f is usable as an angle
func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// RandomLocation draws each axis independently from [0, size)
func RandomLocation(rng *rand.Rand, size cp.Vector) cp.Vector {
	return cp.Vector{X: rng.Float64() * size.X, Y: rng.Float64() * size.Y}
}
