package mapview

import "math/rand"

// Random is the source of uniform draws in [0, 1) used by the generator.
type Random interface {
	Float64() float64
}

type systemRandom struct{}

func (systemRandom) Float64() float64 { return rand.Float64() }

// SystemRandom returns the process-wide unseeded source.
func SystemRandom() Random { return systemRandom{} }
