package physics

import (
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"
)

// Logger receives one line per notable event. *logger.Logger satisfies it.
type Logger interface {
	Log(line string)
}

// Stats describes the most recent step.
type Stats struct {
	// Tick is the number of completed steps.
	Tick uint64
	// Contacts is the number of (body, other) impulse contributions applied.
	Contacts int
	// Coincident is the number of (body, other) pairs met with exactly equal centers.
	// Such pairs contribute nothing; each unordered pair is counted once per pass from each side.
	Coincident int
}

// World owns a body set and the constants for a whole run and advances them with Step.
// Each step is three passes with a barrier between them: gravity (velocities),
// collision (impulses), integration (velocities and positions).
type World struct {
	constants Constants
	bodies    BodySet
	workers   int
	log       Logger
	tick      uint64
	stats     Stats

	// per-body scratch for counters written during a pass
	contacts   []int
	coincident []int
}

// Option configures a World.
type Option func(*World)

// WithWorkers spreads each pass over n goroutines. n <= 1 runs sequentially.
// Results do not depend on n.
func WithWorkers(n int) Option {
	return func(w *World) {
		w.workers = n
	}
}

// WithLogger sets where the world reports ignored steps and coincident centers.
func WithLogger(l Logger) Option {
	return func(w *World) {
		w.log = l
	}
}

// NewWorld validates c and bodies and returns a world holding its own copy of bodies.
// Nothing can be stepped if this fails.
func NewWorld(c Constants, bodies BodySet, opts ...Option) (*World, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := bodies.Validate(); err != nil {
		return nil, err
	}
	w := &World{
		constants:  c,
		bodies:     bodies.Clone(),
		contacts:   make([]int, len(bodies)),
		coincident: make([]int, len(bodies)),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Constants returns the run's constants.
func (w *World) Constants() Constants {
	return w.constants
}

// Len returns the number of bodies.
func (w *World) Len() int {
	return len(w.bodies)
}

// Body returns a copy of the i-th body in storage order.
func (w *World) Body(i int) Body {
	return w.bodies[i]
}

// Bodies copies the current bodies into dst (reusing its storage) and returns it.
func (w *World) Bodies(dst BodySet) BodySet {
	return append(dst[:0], w.bodies...)
}

// Tick returns the number of completed steps.
func (w *World) Tick() uint64 {
	return w.tick
}

// Stats returns counters for the most recent step.
func (w *World) Stats() Stats {
	return w.stats
}

// Step advances the simulation by dt. Non-positive or non-finite dt is ignored.
func (w *World) Step(dt float64) {
	if !(dt > 0) || math.IsInf(dt, 1) {
		w.logf("step %d ignored: invalid dt %v", w.tick, dt)
		return
	}

	w.forEach(func(i int) {
		acc, coincident := accumulateGravity(w.bodies[i], w.bodies, w.constants)
		b := &w.bodies[i]
		b.Velocity.X += acc.X * dt
		b.Velocity.Y += acc.Y * dt
		w.coincident[i] = coincident
	})

	w.forEach(func(i int) {
		imp, contacts, coincident := accumulateImpulse(w.bodies[i], w.bodies, w.constants)
		w.bodies[i].Impulse = imp
		w.contacts[i] = contacts
		w.coincident[i] += coincident
	})

	w.forEach(func(i int) {
		Integrate(&w.bodies[i], dt)
	})

	w.tick++
	w.stats = Stats{Tick: w.tick}
	for i := range w.bodies {
		w.stats.Contacts += w.contacts[i]
		w.stats.Coincident += w.coincident[i]
	}
	if w.stats.Coincident > 0 {
		w.logf("step %d: %d coincident body centers skipped", w.tick, w.stats.Coincident)
	}
}

// forEach runs fn for every body index and returns once all calls are done.
// fn(i) may only write to body i and to per-body scratch slot i.
func (w *World) forEach(fn func(i int)) {
	n := len(w.bodies)
	if w.workers <= 1 || n < 2 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}
	chunk := (n + w.workers - 1) / w.workers
	var g errgroup.Group
	for lo := 0; lo < n; lo += chunk {
		lo := lo
		hi := min(lo+chunk, n)
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				fn(i)
			}
			return nil
		})
	}
	_ = g.Wait()
}

func (w *World) logf(format string, args ...any) {
	if w.log == nil {
		return
	}
	w.log.Log(fmt.Sprintf(format, args...))
}
