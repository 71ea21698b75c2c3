package sim

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"galaxy/internal/camera"
	"galaxy/internal/commands"
	"galaxy/internal/physics"
)

var errUsage = errors.New("bad arguments")

// ConsoleCommands returns the commands typed into a viewer's console:
//
//	/pause            toggle pause
//	/step [n]         pause, then advance n steps (default 1)
//	/zoom z           set the camera zoom
//	/center [id]      center the camera on a body, or on the center of mass
//	/stats            log tick, contacts, energy and momentum
//
// Results and errors go to log.
func ConsoleCommands(r *Runner, cam *camera.Camera, log physics.Logger) *commands.Registry {
	reg := commands.NewRegistry("")

	add := func(name, summary string, run func(args []string) error) {
		fs := flag.NewFlagSet(name, flag.ContinueOnError)
		fs.SetOutput(io.Discard)
		reg.Register(name, summary, fs, func() error { return run(fs.Args()) })
	}

	add("pause", "toggle pause", func([]string) error {
		if r.TogglePause() {
			log.Log("paused")
		} else {
			log.Log("running")
		}
		return nil
	})

	add("step", "advance n steps while paused", func(args []string) error {
		n := 1
		if len(args) > 0 {
			v, err := strconv.Atoi(args[0])
			if err != nil || v < 1 {
				return fmt.Errorf("%w: step count %q", errUsage, args[0])
			}
			n = v
		}
		r.SetPaused(true)
		for i := 0; i < n; i++ {
			r.StepOnce()
		}
		_, stats := r.Snapshot()
		log.Log(fmt.Sprintf("stepped to tick %d", stats.Tick))
		return nil
	})

	add("zoom", "set camera zoom", func(args []string) error {
		if len(args) != 1 {
			return fmt.Errorf("%w: zoom needs a value", errUsage)
		}
		z, err := strconv.ParseFloat(args[0], 64)
		if err != nil || z <= 0 {
			return fmt.Errorf("%w: zoom %q", errUsage, args[0])
		}
		cam.SetZoom(z)
		return nil
	})

	add("center", "center camera on a body id (default: center of mass)", func(args []string) error {
		bodies, _ := r.Snapshot()
		if len(args) == 0 {
			cam.CenterOn(bodies.CenterOfMass())
			return nil
		}
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("%w: body id %q", errUsage, args[0])
		}
		i := bodies.Index(id)
		if i < 0 {
			return fmt.Errorf("%w: no body %d", errUsage, id)
		}
		cam.CenterOn(bodies[i].Position)
		return nil
	})

	add("stats", "log energy and momentum", func([]string) error {
		bodies, stats := r.Snapshot()
		ke := bodies.KineticEnergy()
		pe := bodies.PotentialEnergy(r.Constants())
		p := bodies.Momentum()
		log.Log(fmt.Sprintf("tick %d contacts %d coincident %d kinetic %.6g potential %.6g momentum (%.6g, %.6g)",
			stats.Tick, stats.Contacts, stats.Coincident, ke, pe, p.X, p.Y))
		return nil
	})

	return reg
}

// Submit handles one console line: commands (see ConsoleCommands) are executed,
// anything else is logged as a note. Command errors are logged, not returned.
func Submit(reg *commands.Registry, log physics.Logger, line string) {
	args, ok := commands.Parse(line)
	if !ok {
		log.Log(line)
		return
	}
	log.Log(commands.Prefix + strings.Join(args, " "))
	if err := reg.Execute(args); err != nil {
		log.Log(err.Error())
	}
}
