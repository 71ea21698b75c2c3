package physics

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConstants is returned by Constants.Validate.
var ErrInvalidConstants = errors.New("physics: invalid constants")

// Constants are the per-run physical parameters. They never change during a run.
type Constants struct {
	// Gravity is G; the higher, the stronger the attraction.
	Gravity float64
	// SofteningFactor is added to squared distances (gravity) and distances (contact normal)
	// to keep both finite as separation goes to zero. Must be > 0.
	SofteningFactor float64
	// RestitutionFactor is the bounciness: 0 no bounce, 1 elastic. Must be >= 0.
	RestitutionFactor float64
}

// Validate reports whether the constants can drive a simulation.
func (c Constants) Validate() error {
	switch {
	case math.IsNaN(c.Gravity) || math.IsInf(c.Gravity, 0):
		return fmt.Errorf("%w: gravity %v", ErrInvalidConstants, c.Gravity)
	case !(c.SofteningFactor > 0) || math.IsInf(c.SofteningFactor, 1):
		return fmt.Errorf("%w: softening factor %v must be > 0", ErrInvalidConstants, c.SofteningFactor)
	case !(c.RestitutionFactor >= 0) || math.IsInf(c.RestitutionFactor, 1):
		return fmt.Errorf("%w: restitution factor %v must be >= 0", ErrInvalidConstants, c.RestitutionFactor)
	}
	return nil
}
