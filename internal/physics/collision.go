package physics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Intersect reports whether two discs overlap. Touching discs overlap.
// Compares squared lengths so no square root is taken.
func Intersect(a, b Body) bool {
	return overlaps(a.Position, a.Radius, b.Position, b.Radius)
}

func overlaps(p0 r2.Vec, r0 float64, p1 r2.Vec, r1 float64) bool {
	sumR := r0 + r1
	return r2.Norm2(r2.Sub(p1, p0)) <= sumR*sumR
}

// Impulse returns the velocity correction self needs for every overlapping body it is
// approaching. Only self's side of each contact is computed; the other body computes
// its own when it is the subject. Velocities are read as they are, so call this after
// the gravity pass of the step.
func Impulse(self Body, bodies BodySet, c Constants) r2.Vec {
	imp, _, _ := accumulateImpulse(self, bodies, c)
	return imp
}

// accumulateImpulse also counts applied contacts and coincident centers.
func accumulateImpulse(self Body, bodies BodySet, c Constants) (imp r2.Vec, contacts, coincident int) {
	for i := range bodies {
		j, hit, degenerate := pairImpulse(self, &bodies[i], c)
		if degenerate {
			coincident++
		}
		if !hit {
			continue
		}
		imp = r2.Add(imp, j)
		contacts++
	}
	return imp, contacts, coincident
}

// pairImpulse resolves one contact from self's point of view.
// Returns hit=false for self, non-overlapping pairs, separating pairs and coincident centers.
// other's Impulse field is never read: it may be written concurrently during the pass.
func pairImpulse(self Body, other *Body, c Constants) (j r2.Vec, hit, degenerate bool) {
	if self.ID == other.ID || !overlaps(self.Position, self.Radius, other.Position, other.Radius) {
		return r2.Vec{}, false, false
	}
	d := r2.Sub(other.Position, self.Position)
	dist := math.Sqrt(r2.Norm2(d))
	if dist == 0 {
		return r2.Vec{}, false, true
	}
	normal := r2.Scale(1/(dist+c.SofteningFactor), d)
	closing := r2.Dot(normal, r2.Sub(other.Velocity, self.Velocity))
	if closing > 0 {
		// already separating
		return r2.Vec{}, false, false
	}
	mag := -(1 + c.RestitutionFactor) * closing
	mag = mag / (self.InverseMass + other.InverseMass) * self.InverseMass
	return r2.Scale(-mag, normal), true, false
}
