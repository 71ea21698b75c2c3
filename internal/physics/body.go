package physics

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

var (
	// ErrInvalidRadius is returned when a body is requested with radius <= 0 (or NaN/Inf).
	ErrInvalidRadius = errors.New("physics: radius must be positive and finite")
	// ErrInvalidID is returned for negative body ids.
	ErrInvalidID = errors.New("physics: body id must be non-negative")
	// ErrDuplicateID is returned when two bodies of one set share an id.
	ErrDuplicateID = errors.New("physics: duplicate body id")
)

// Body is a 2D disc with a stable id. Mass scales with area (radius^2).
// Impulse is only meaningful between the collision pass and the integration pass of one step.
type Body struct {
	ID          int
	Position    r2.Vec
	Velocity    r2.Vec
	Impulse     r2.Vec
	Radius      float64
	Mass        float64
	InverseMass float64
}

// NewBody returns a body at (x, y) with zero velocity and impulse.
// radius must be > 0; mass and inverse mass are derived from it once.
func NewBody(id int, x, y, radius float64) (Body, error) {
	if id < 0 {
		return Body{}, fmt.Errorf("%w: %d", ErrInvalidID, id)
	}
	if !(radius > 0) || math.IsInf(radius, 1) {
		return Body{}, fmt.Errorf("%w: %v", ErrInvalidRadius, radius)
	}
	mass := radius * radius
	return Body{
		ID:          id,
		Position:    r2.Vec{X: x, Y: y},
		Radius:      radius,
		Mass:        mass,
		InverseMass: 1 / mass,
	}, nil
}

// validate checks the construction invariants of a body that did not come from NewBody.
func (b Body) validate() error {
	if b.ID < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidID, b.ID)
	}
	if !(b.Radius > 0) || math.IsInf(b.Radius, 1) {
		return fmt.Errorf("body %d: %w: %v", b.ID, ErrInvalidRadius, b.Radius)
	}
	if b.Mass != b.Radius*b.Radius || b.InverseMass != 1/b.Mass {
		return fmt.Errorf("body %d: mass %v / inverse mass %v do not match radius %v", b.ID, b.Mass, b.InverseMass, b.Radius)
	}
	return nil
}

// KineticEnergy returns 1/2 m |v|^2.
func (b Body) KineticEnergy() float64 {
	return 0.5 * b.Mass * r2.Norm2(b.Velocity)
}
