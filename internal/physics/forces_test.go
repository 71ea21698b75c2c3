package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

var defaultConstants = Constants{Gravity: 0.05, SofteningFactor: 0.01, RestitutionFactor: 0.2}

func mustBody(t *testing.T, id int, x, y, r float64) Body {
	t.Helper()
	b, err := NewBody(id, x, y, r)
	require.NoError(t, err)
	return b
}

func TestAcceleration_SelfExcluded(t *testing.T) {
	b := mustBody(t, 0, 1, 1, 2)
	assert.Equal(t, r2.Vec{}, Acceleration(b, BodySet{b}, defaultConstants))
	assert.Equal(t, r2.Vec{}, Impulse(b, BodySet{b}, defaultConstants))
}

func TestAcceleration_SelfExcludedByIDNotPosition(t *testing.T) {
	// A stale copy of self at another position is still self.
	self := mustBody(t, 4, 0, 0, 1)
	moved := self
	moved.Position = r2.Vec{X: 10}
	assert.Equal(t, r2.Vec{}, Acceleration(self, BodySet{moved}, defaultConstants))
}

func TestAcceleration_SoftenedMagnitude(t *testing.T) {
	a := mustBody(t, 0, 0, 0, 1)
	b := mustBody(t, 1, 0, 4, 3) // mass 9, straight above
	got := Acceleration(a, BodySet{a, b}, defaultConstants)

	want := 0.05 * 9 / (16 + 0.01)
	assert.InDelta(t, 0, got.X, 1e-15)
	assert.InDelta(t, want, got.Y, 1e-15)

	// heavier body is pulled less
	back := Acceleration(b, BodySet{a, b}, defaultConstants)
	assert.InDelta(t, -0.05*1/(16+0.01), back.Y, 1e-15)
}

func TestAcceleration_SumsOverBodies(t *testing.T) {
	self := mustBody(t, 0, 0, 0, 1)
	left := mustBody(t, 1, -5, 0, 2)
	right := mustBody(t, 2, 5, 0, 2)
	got := Acceleration(self, BodySet{left, self, right}, defaultConstants)
	assert.InDelta(t, 0, got.X, 1e-15)
	assert.InDelta(t, 0, got.Y, 1e-15)
}

func TestCoincidentCentersContributeNothing(t *testing.T) {
	a := mustBody(t, 0, 2, 2, 1)
	b := mustBody(t, 1, 2, 2, 1)
	b.Velocity = r2.Vec{X: -1}
	set := BodySet{a, b}

	acc, n := accumulateGravity(a, set, defaultConstants)
	assert.Equal(t, r2.Vec{}, acc)
	assert.Equal(t, 1, n)

	imp, contacts, coincident := accumulateImpulse(a, set, defaultConstants)
	assert.Equal(t, r2.Vec{}, imp)
	assert.Equal(t, 0, contacts)
	assert.Equal(t, 1, coincident)
}

func TestIntersect(t *testing.T) {
	tests := []struct {
		name   string
		a, b   Body
		expect bool
	}{
		{"touching is overlapping", mustBody(t, 0, 0, 0, 1), mustBody(t, 1, 3, 0, 2), true},
		{"just apart", mustBody(t, 0, 0, 0, 1), mustBody(t, 1, 3.0001, 0, 2), false},
		{"deep overlap", mustBody(t, 0, 0, 0, 2), mustBody(t, 1, 1, 0, 2), true},
		{"diagonal touch", mustBody(t, 0, 0, 0, 2.5), mustBody(t, 1, 3, 4, 2.5), true},
		{"far", mustBody(t, 0, 0, 0, 1), mustBody(t, 1, 100, -100, 1), false},
		{"same center", mustBody(t, 0, 5, 5, 1), mustBody(t, 1, 5, 5, 1), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, Intersect(tt.a, tt.b))
			assert.Equal(t, Intersect(tt.a, tt.b), Intersect(tt.b, tt.a))
		})
	}
}

func TestImpulse_SeparatingContactIgnored(t *testing.T) {
	a := mustBody(t, 0, 0, 0, 2)
	b := mustBody(t, 1, 1, 0, 2)
	a.Velocity = r2.Vec{X: -1}
	b.Velocity = r2.Vec{X: 1}
	set := BodySet{a, b}
	require.True(t, Intersect(a, b))
	assert.Equal(t, r2.Vec{}, Impulse(a, set, defaultConstants))
	assert.Equal(t, r2.Vec{}, Impulse(b, set, defaultConstants))
}

func TestImpulse_NoContactNoImpulse(t *testing.T) {
	a := mustBody(t, 0, 0, 0, 1)
	b := mustBody(t, 1, 3, 0, 1)
	a.Velocity = r2.Vec{X: 5}
	assert.Equal(t, r2.Vec{}, Impulse(a, BodySet{a, b}, defaultConstants))
}

func TestImpulse_OneSidedFormula(t *testing.T) {
	c := Constants{Gravity: 0, SofteningFactor: 0.01, RestitutionFactor: 0.5}
	a := mustBody(t, 0, 0, 0, 1) // mass 1
	b := mustBody(t, 1, 2, 0, 2) // mass 4
	a.Velocity = r2.Vec{X: 1}
	set := BodySet{a, b}

	n := 2 / (2 + 0.01)
	closing := n * -1
	mag := -(1 + 0.5) * closing / (1 + 0.25) * 1
	got := Impulse(a, set, c)
	assert.InDelta(t, -mag*n, got.X, 1e-15)
	assert.Equal(t, 0.0, got.Y)

	other := Impulse(b, set, c)
	magB := -(1 + 0.5) * closing / (1 + 0.25) * 0.25
	assert.InDelta(t, magB*n, other.X, 1e-15)
}

func TestIntegrate(t *testing.T) {
	b := mustBody(t, 0, 1, 1, 1)
	b.Velocity = r2.Vec{X: 2, Y: 0}
	b.Impulse = r2.Vec{X: -1, Y: 3}

	Integrate(&b, 0.5)

	// impulse is not scaled by dt, position uses the corrected velocity
	assert.Equal(t, r2.Vec{X: 1, Y: 3}, b.Velocity)
	assert.Equal(t, r2.Vec{X: 1.5, Y: 2.5}, b.Position)
	assert.Equal(t, r2.Vec{}, b.Impulse)
}
