package physics

import "gonum.org/v1/gonum/spatial/r2"

// Integrate applies b's pending impulse to its velocity, then moves it by velocity*dt
// (semi-implicit Euler: the position uses the corrected velocity). The impulse is consumed.
func Integrate(b *Body, dt float64) {
	b.Velocity = r2.Add(b.Velocity, b.Impulse)
	b.Position = r2.Add(b.Position, r2.Scale(dt, b.Velocity))
	b.Impulse = r2.Vec{}
}
