package physics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

type recordLogger struct {
	lines []string
}

func (r *recordLogger) Log(line string) {
	r.lines = append(r.lines, line)
}

func newWorld(t *testing.T, c Constants, specs []Spec, opts ...Option) *World {
	t.Helper()
	set, err := NewBodySet(specs)
	require.NoError(t, err)
	w, err := NewWorld(c, set, opts...)
	require.NoError(t, err)
	return w
}

func TestNewWorld_RejectsInvalidInput(t *testing.T) {
	set, err := NewBodySet([]Spec{{Radius: 1}})
	require.NoError(t, err)

	_, err = NewWorld(Constants{Gravity: 1}, set)
	assert.ErrorIs(t, err, ErrInvalidConstants)

	dup := BodySet{set[0], set[0]}
	_, err = NewWorld(defaultConstants, dup)
	assert.ErrorIs(t, err, ErrDuplicateID)
}

func TestNewWorld_OwnsItsBodies(t *testing.T) {
	set, err := NewBodySet([]Spec{{Radius: 1}, {X: 10, Radius: 1}})
	require.NoError(t, err)
	w, err := NewWorld(defaultConstants, set)
	require.NoError(t, err)

	set[0].Position.X = 500
	assert.Equal(t, 0.0, w.Body(0).Position.X)
	assert.Equal(t, 2, w.Len())
	assert.Equal(t, defaultConstants, w.Constants())
}

func TestStep_GravityOnlyAttraction(t *testing.T) {
	w := newWorld(t, defaultConstants, []Spec{
		{X: 0, Y: 0, Radius: 1},
		{X: 3, Y: 0, Radius: 1},
	})
	const dt = 0.1
	w.Step(dt)

	a := 0.05 * 1 / (9 + 0.01)
	wantV := 3 * (a / 3) * dt

	b0, b1 := w.Body(0), w.Body(1)
	assert.Greater(t, b0.Velocity.X, 0.0)
	assert.Less(t, b1.Velocity.X, 0.0)
	assert.InDelta(t, wantV, b0.Velocity.X, 1e-15)
	assert.InDelta(t, -wantV, b1.Velocity.X, 1e-15)
	assert.Equal(t, 0.0, b0.Velocity.Y)
	assert.Equal(t, 0.0, b1.Velocity.Y)

	assert.InDelta(t, b0.Velocity.X*dt, b0.Position.X, 1e-18)
	assert.InDelta(t, 3+b1.Velocity.X*dt, b1.Position.X, 1e-15)
	assert.Greater(t, b0.Position.X, 0.0)
	assert.Less(t, b1.Position.X, 3.0)

	assert.Equal(t, Stats{Tick: 1}, w.Stats())
}

func TestStep_ElasticHeadOnExchangesVelocities(t *testing.T) {
	c := Constants{Gravity: 0, SofteningFactor: 1e-12, RestitutionFactor: 1}
	w := newWorld(t, c, []Spec{
		{X: 0, Y: 0, Radius: 1, VX: 1},
		{X: 1.5, Y: 0, Radius: 1, VX: -1},
	})
	w.Step(0.01)

	assert.InDelta(t, -1, w.Body(0).Velocity.X, 1e-9)
	assert.InDelta(t, 1, w.Body(1).Velocity.X, 1e-9)
	assert.InDelta(t, 0, w.Body(0).Velocity.Y, 1e-12)
	assert.Equal(t, 2, w.Stats().Contacts)
}

func TestStep_InelasticContactRemovesClosingSpeed(t *testing.T) {
	c := Constants{Gravity: 0.05, SofteningFactor: 1e-9, RestitutionFactor: 0}
	w := newWorld(t, c, []Spec{
		{X: 0, Y: 0, Radius: 2, VX: 1},
		{X: 1, Y: 0, Radius: 2, VX: -1},
	})
	w.Step(0.1)

	v0, v1 := w.Body(0).Velocity, w.Body(1).Velocity
	assert.InDelta(t, v0.X, v1.X, 1e-6)
	assert.InDelta(t, 0, v0.X, 1e-6)
}

func TestStep_ImpulseDoesNotLeak(t *testing.T) {
	w := newWorld(t, defaultConstants, []Spec{
		{X: 0, Y: 0, Radius: 2, VX: 1},
		{X: 1, Y: 0, Radius: 2, VX: -1},
	})
	w.Step(0.1)
	for i := 0; i < w.Len(); i++ {
		assert.Equal(t, r2.Vec{}, w.Body(i).Impulse)
	}
}

func TestStep_MomentumConservedForUnequalMasses(t *testing.T) {
	c := Constants{Gravity: 0.05, SofteningFactor: 0.01, RestitutionFactor: 0.7}
	w := newWorld(t, c, []Spec{
		{X: 0, Y: 0, Radius: 1, VX: 2, VY: 0.5},
		{X: 2, Y: 0.5, Radius: 3, VX: -0.5},
	})
	before := w.Bodies(nil).Momentum()
	for i := 0; i < 10; i++ {
		w.Step(0.1)
	}
	after := w.Bodies(nil).Momentum()
	assert.InDelta(t, before.X, after.X, 1e-12)
	assert.InDelta(t, before.Y, after.Y, 1e-12)
}

func TestStep_InvalidDtIgnored(t *testing.T) {
	log := &recordLogger{}
	w := newWorld(t, defaultConstants, []Spec{{Radius: 1}, {X: 3, Radius: 1}}, WithLogger(log))
	before := w.Bodies(nil)

	for _, dt := range []float64{0, -0.1, math.NaN(), math.Inf(1)} {
		w.Step(dt)
	}
	assert.Equal(t, before, w.Bodies(nil))
	assert.Equal(t, uint64(0), w.Tick())
	assert.Len(t, log.lines, 4)
}

func TestStep_CoincidentCentersReported(t *testing.T) {
	log := &recordLogger{}
	w := newWorld(t, defaultConstants, []Spec{{X: 1, Y: 1, Radius: 1}, {X: 1, Y: 1, Radius: 2}}, WithLogger(log))
	w.Step(0.1)

	assert.Equal(t, 4, w.Stats().Coincident)
	assert.Equal(t, 0, w.Stats().Contacts)
	require.Len(t, log.lines, 1)
	assert.Contains(t, log.lines[0], "coincident")
	for i := 0; i < w.Len(); i++ {
		assert.Equal(t, r2.Vec{X: 1, Y: 1}, w.Body(i).Position)
		assert.False(t, math.IsNaN(w.Body(i).Velocity.X))
	}
}

func clusterSpecs() []Spec {
	var specs []Spec
	for i := 0; i < 7; i++ {
		for j := 0; j < 6; j++ {
			specs = append(specs, Spec{
				X:      float64(i) * 1.7,
				Y:      float64(j) * 1.9,
				Radius: 0.6 + 0.15*float64((i+j)%4),
				VX:     0.3 * float64((i*3+j)%5-2),
				VY:     0.2 * float64((i+j*2)%7-3),
			})
		}
	}
	return specs
}

func TestStep_OrderInvariant(t *testing.T) {
	c := Constants{Gravity: 0.5, SofteningFactor: 0.01, RestitutionFactor: 0.3}
	set, err := NewBodySet(clusterSpecs())
	require.NoError(t, err)

	permuted := make(BodySet, len(set))
	for i := range set {
		permuted[i] = set[(i*5+3)%len(set)]
	}
	require.NoError(t, permuted.Validate())

	a, err := NewWorld(c, set)
	require.NoError(t, err)
	b, err := NewWorld(c, permuted)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		a.Step(0.05)
		b.Step(0.05)
	}

	got := b.Bodies(nil)
	for _, want := range a.Bodies(nil) {
		idx := got.Index(want.ID)
		require.GreaterOrEqual(t, idx, 0)
		other := got[idx]
		assert.InDelta(t, want.Position.X, other.Position.X, 1e-9, "body %d", want.ID)
		assert.InDelta(t, want.Position.Y, other.Position.Y, 1e-9, "body %d", want.ID)
		assert.InDelta(t, want.Velocity.X, other.Velocity.X, 1e-9, "body %d", want.ID)
		assert.InDelta(t, want.Velocity.Y, other.Velocity.Y, 1e-9, "body %d", want.ID)
	}
	assert.Equal(t, a.Stats().Contacts, b.Stats().Contacts)
}

func TestStep_WorkersMatchSequential(t *testing.T) {
	c := Constants{Gravity: 0.5, SofteningFactor: 0.01, RestitutionFactor: 0.3}
	seq := newWorld(t, c, clusterSpecs())
	par := newWorld(t, c, clusterSpecs(), WithWorkers(4))
	wide := newWorld(t, c, clusterSpecs(), WithWorkers(1000))

	for i := 0; i < 20; i++ {
		seq.Step(0.05)
		par.Step(0.05)
		wide.Step(0.05)
	}
	assert.Equal(t, seq.Bodies(nil), par.Bodies(nil))
	assert.Equal(t, seq.Bodies(nil), wide.Bodies(nil))
	assert.Equal(t, seq.Stats(), par.Stats())
	assert.Equal(t, uint64(20), par.Tick())
}

func TestWorld_BodiesReusesBuffer(t *testing.T) {
	w := newWorld(t, defaultConstants, []Spec{{Radius: 1}, {X: 5, Radius: 2}})
	buf := make(BodySet, 0, 8)
	out := w.Bodies(buf)
	require.Len(t, out, 2)
	assert.Same(t, &buf[:1][0], &out[0])

	out[0].Position.X = 42
	assert.Equal(t, 0.0, w.Body(0).Position.X)
}

func TestWorld_EmptySetSteps(t *testing.T) {
	w, err := NewWorld(defaultConstants, nil, WithWorkers(3))
	require.NoError(t, err)
	w.Step(0.1)
	assert.Equal(t, 0, w.Len())
	assert.Equal(t, uint64(1), w.Tick())
}
