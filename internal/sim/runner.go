package sim

import (
	"fmt"
	"io"
	"sync"

	"galaxy/internal/physics"
)

// Runner drives a world at a fixed dt per frame and supports pausing and single-stepping.
// Viewers call Frame once per rendered frame; input handlers call TogglePause and StepOnce.
type Runner struct {
	mu     sync.Mutex
	world  *physics.World
	dt     float64
	paused bool
	buf    physics.BodySet
}

// NewRunner returns a running (not paused) runner.
func NewRunner(w *physics.World, dt float64) *Runner {
	return &Runner{world: w, dt: dt}
}

// Frame advances the world by one step unless paused. Returns whether it stepped.
func (r *Runner) Frame() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.paused {
		return false
	}
	r.world.Step(r.dt)
	return true
}

// TogglePause flips the paused state and returns the new state.
func (r *Runner) TogglePause() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paused = !r.paused
	return r.paused
}

// SetPaused pauses or resumes.
func (r *Runner) SetPaused(paused bool) {
	r.mu.Lock()
	r.paused = paused
	r.mu.Unlock()
}

// StepOnce advances one step while paused. It does nothing when running.
func (r *Runner) StepOnce() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.paused {
		r.world.Step(r.dt)
	}
}

// Paused reports whether Frame is currently a no-op.
func (r *Runner) Paused() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.paused
}

// Snapshot copies the current bodies and the last step's stats for drawing.
// The returned set is reused by the next call.
func (r *Runner) Snapshot() (physics.BodySet, physics.Stats) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.buf = r.world.Bodies(r.buf)
	return r.buf, r.world.Stats()
}

// Constants returns the world's constants.
func (r *Runner) Constants() physics.Constants {
	return r.world.Constants()
}

// Headless steps the world ticks times, writing one row per body every `every` ticks
// (and for the initial state), then a summary line with energy and momentum.
// every <= 0 only writes the initial and final states.
func Headless(out io.Writer, w *physics.World, dt float64, ticks, every int) error {
	var buf physics.BodySet
	dump := func() error {
		buf = w.Bodies(buf)
		for _, b := range buf {
			_, err := fmt.Fprintf(out, "%d\t%d\t%.6f\t%.6f\t%.6f\t%.6f\n",
				w.Tick(), b.ID, b.Position.X, b.Position.Y, b.Velocity.X, b.Velocity.Y)
			if err != nil {
				return err
			}
		}
		return nil
	}

	if _, err := fmt.Fprintln(out, "tick\tid\tx\ty\tvx\tvy"); err != nil {
		return err
	}
	if err := dump(); err != nil {
		return err
	}
	contacts := 0
	for i := 1; i <= ticks; i++ {
		w.Step(dt)
		contacts += w.Stats().Contacts
		if (every > 0 && i%every == 0) || i == ticks {
			if err := dump(); err != nil {
				return err
			}
		}
	}
	buf = w.Bodies(buf)
	p := buf.Momentum()
	ke := buf.KineticEnergy()
	pe := buf.PotentialEnergy(w.Constants())
	_, err := fmt.Fprintf(out, "# ticks=%d contacts=%d kinetic=%.6g potential=%.6g total=%.6g momentum=(%.6g, %.6g)\n",
		w.Tick(), contacts, ke, pe, ke+pe, p.X, p.Y)
	return err
}

// StatusLine is the one-line summary drawn by the viewers.
func StatusLine(stats physics.Stats, kinetic float64, paused bool) string {
	state := "running"
	if paused {
		state = "paused"
	}
	return fmt.Sprintf("tick %d  contacts %d  KE %.4g  %s", stats.Tick, stats.Contacts, kinetic, state)
}
