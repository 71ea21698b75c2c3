package physics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Acceleration returns the net softened gravitational acceleration on self from every
// other body of the set. Self is recognised by id, not by slice position.
func Acceleration(self Body, bodies BodySet, c Constants) r2.Vec {
	acc, _ := accumulateGravity(self, bodies, c)
	return acc
}

// accumulateGravity also reports how many other bodies sit exactly on self's center.
func accumulateGravity(self Body, bodies BodySet, c Constants) (acc r2.Vec, coincident int) {
	for i := range bodies {
		a, degenerate := pairAcceleration(self, &bodies[i], c)
		if degenerate {
			coincident++
			continue
		}
		acc = r2.Add(acc, a)
	}
	return acc, coincident
}

// pairAcceleration is a = G m_other / (d^2 + softening) along the unit vector toward other.
// Coincident centers have no direction and contribute zero.
func pairAcceleration(self Body, other *Body, c Constants) (r2.Vec, bool) {
	if self.ID == other.ID {
		return r2.Vec{}, false
	}
	d := r2.Sub(other.Position, self.Position)
	sq := r2.Norm2(d)
	if sq == 0 {
		return r2.Vec{}, true
	}
	a := c.Gravity * other.Mass / (sq + c.SofteningFactor)
	return r2.Scale(a/math.Sqrt(sq), d), false
}
