package physics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Spec describes one body to construct: center (X, Y) and Radius.
// VX, VY give an optional initial velocity; zero for the usual at-rest start.
type Spec struct {
	X, Y   float64
	Radius float64
	VX, VY float64
}

// BodySet is an insertion-ordered collection of bodies. Order has no physical meaning.
type BodySet []Body

// NewBodySet builds one body per spec with sequential ids 0..n-1.
// The first invalid spec aborts construction.
func NewBodySet(specs []Spec) (BodySet, error) {
	set := make(BodySet, 0, len(specs))
	for i, s := range specs {
		b, err := NewBody(i, s.X, s.Y, s.Radius)
		if err != nil {
			return nil, fmt.Errorf("body %d: %w", i, err)
		}
		b.Velocity = r2.Vec{X: s.VX, Y: s.VY}
		set = append(set, b)
	}
	return set, nil
}

// Validate checks every body's invariants and that ids are pairwise distinct.
func (s BodySet) Validate() error {
	seen := make(map[int]struct{}, len(s))
	for _, b := range s {
		if err := b.validate(); err != nil {
			return err
		}
		if _, dup := seen[b.ID]; dup {
			return fmt.Errorf("%w: %d", ErrDuplicateID, b.ID)
		}
		seen[b.ID] = struct{}{}
	}
	return nil
}

// Clone returns an independent copy.
func (s BodySet) Clone() BodySet {
	if s == nil {
		return nil
	}
	out := make(BodySet, len(s))
	copy(out, s)
	return out
}

// Index returns the position of the body with the given id, or -1.
func (s BodySet) Index(id int) int {
	for i := range s {
		if s[i].ID == id {
			return i
		}
	}
	return -1
}

// Momentum returns the total linear momentum sum(m v).
func (s BodySet) Momentum() r2.Vec {
	var p r2.Vec
	for _, b := range s {
		p = r2.Add(p, r2.Scale(b.Mass, b.Velocity))
	}
	return p
}

// KineticEnergy returns the total kinetic energy of the set.
func (s BodySet) KineticEnergy() float64 {
	var e float64
	for _, b := range s {
		e += b.KineticEnergy()
	}
	return e
}

// PotentialEnergy returns the softened gravitational potential energy,
// -G m_i m_j / sqrt(d^2 + softening) summed over unordered pairs.
func (s BodySet) PotentialEnergy(c Constants) float64 {
	var e float64
	for i := range s {
		for j := i + 1; j < len(s); j++ {
			sq := r2.Norm2(r2.Sub(s[j].Position, s[i].Position))
			e -= c.Gravity * s[i].Mass * s[j].Mass / math.Sqrt(sq+c.SofteningFactor)
		}
	}
	return e
}

// CenterOfMass returns the mass-weighted mean position. Empty sets yield the origin.
func (s BodySet) CenterOfMass() r2.Vec {
	var (
		sum   r2.Vec
		total float64
	)
	for _, b := range s {
		sum = r2.Add(sum, r2.Scale(b.Mass, b.Position))
		total += b.Mass
	}
	if total == 0 {
		return r2.Vec{}
	}
	return r2.Scale(1/total, sum)
}
