package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/gdamore/tcell/v2"

	"galaxy/internal/camera"
	"galaxy/internal/commands"
	"galaxy/internal/config"
	"galaxy/internal/console"
	"galaxy/internal/env"
	"galaxy/internal/fonts"
	"galaxy/internal/graphics"
	"galaxy/internal/logger"
	"galaxy/internal/physics"
	"galaxy/internal/sim"
	"galaxy/internal/snapshot"
	"galaxy/internal/tui"
	"galaxy/internal/view"
)

func main() {
	_ = env.Load(".env")
	log := logger.New(env.String(env.LogKey, logger.DefaultPath))

	reg := newRegistry(log)
	if err := reg.Execute(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, "galaxy:", err)
		if errors.Is(err, commands.ErrUnknown) {
			fmt.Fprintln(os.Stderr, "commands:")
			reg.Usage(os.Stderr)
		}
		log.Logf("exit: %v", err)
		os.Exit(1)
	}
}

func newRegistry(log *logger.Logger) *commands.Registry {
	reg := commands.NewRegistry("window")

	var winOpts worldOptions
	winFlags := flag.NewFlagSet("window", flag.ContinueOnError)
	winOpts.bind(winFlags)
	reg.Register("window", "open the raylib viewer", winFlags, func() error {
		return runWindow(log, winOpts)
	})

	var termOpts worldOptions
	termFlags := flag.NewFlagSet("term", flag.ContinueOnError)
	termOpts.bind(termFlags)
	frame := termFlags.Duration("frame", 33*time.Millisecond, "redraw (and step) interval")
	reg.Register("term", "draw the galaxy in the terminal", termFlags, func() error {
		return runTerminal(log, termOpts, *frame)
	})

	var runOpts worldOptions
	runFlags := flag.NewFlagSet("run", flag.ContinueOnError)
	runOpts.bind(runFlags)
	ticks := runFlags.Int("ticks", 100, "number of steps")
	every := runFlags.Int("every", 10, "print bodies every n steps (0: first and last only)")
	pngPath := runFlags.String("png", "", "also render the final state to this PNG")
	reg.Register("run", "step without a window and print body states", runFlags, func() error {
		cfg, w, err := buildWorld(log, runOpts)
		if err != nil {
			return err
		}
		if err := sim.Headless(os.Stdout, w, cfg.FrameTimeStep, *ticks, *every); err != nil {
			return err
		}
		if *pngPath == "" {
			return nil
		}
		cam := camera.New(camera.SettingsFrom(cfg))
		img := snapshot.Render(w.Bodies(nil), cam, snapshot.OptionsFrom(cfg))
		if err := snapshot.Save(*pngPath, img); err != nil {
			return err
		}
		log.Logf("wrote %s", *pngPath)
		return nil
	})

	return reg
}

func runWindow(log *logger.Logger, opts worldOptions) error {
	cfg, w, err := buildWorld(log, opts)
	if err != nil {
		return err
	}
	runner := sim.NewRunner(w, cfg.FrameTimeStep)
	g := view.New(runner, cfg, log)
	reg := sim.ConsoleCommands(runner, g.Camera, log)
	con := console.New(log, func(line string) { sim.Submit(reg, log, line) })
	font := graphics.NewFont(findFont(log, cfg.Font))
	g.HUD.Font = font
	con.Font = font

	update := func() {
		con.Update()
		if !con.IsOpen() {
			g.HandleInput()
		}
		g.Update()
	}
	draw := func() {
		g.Draw()
		con.Draw()
	}
	graphics.Run(graphics.Window{
		Width:      cfg.WindowSize[0],
		Height:     cfg.WindowSize[1],
		Title:      "galaxy",
		Background: g.Background(),
		OnClose:    font.Unload,
	}, update, draw)
	return nil
}

// findFont resolves the configured font name; "" means the default font.
func findFont(log *logger.Logger, name string) string {
	if name == "" {
		return ""
	}
	path, err := fonts.Find(name)
	if err != nil {
		log.Logf("font %q: %v; using default font", name, err)
		return ""
	}
	return path
}

func runTerminal(log *logger.Logger, opts worldOptions, frame time.Duration) error {
	cfg, w, err := buildWorld(log, opts)
	if err != nil {
		return err
	}
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runner := sim.NewRunner(w, cfg.FrameTimeStep)
	t := tui.New(screen, runner, cfg, frame)
	reg := sim.ConsoleCommands(runner, t.Camera, log)
	t.OnSubmit = func(line string) { sim.Submit(reg, log, line) }
	t.Notes = func() []string { return log.Tail(1) }
	if err := t.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// buildWorld loads the config (falling back to defaults when the file is missing),
// optionally swaps in a generated galaxy and builds the world.
func buildWorld(log *logger.Logger, opts worldOptions) (config.Config, *physics.World, error) {
	cfg, err := config.Load(opts.configPath)
	switch {
	case errors.Is(err, config.ErrNotFound):
		log.Logf("%v; using built-in galaxy", err)
	case err != nil:
		return cfg, nil, err
	}

	if err := opts.generate(&cfg); err != nil {
		return cfg, nil, err
	}
	if opts.savePath != "" {
		if err := config.Save(opts.savePath, cfg); err != nil {
			return cfg, nil, err
		}
		log.Logf("saved config to %s", opts.savePath)
	}

	set, err := cfg.BodySet()
	if err != nil {
		return cfg, nil, err
	}
	workers := env.Int(env.WorkersKey, cfg.Workers)
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	w, err := physics.NewWorld(cfg.Constants(), set,
		physics.WithWorkers(workers),
		physics.WithLogger(log),
	)
	if err != nil {
		return cfg, nil, err
	}
	log.Logf("loaded %d bodies, %d workers, dt %g", w.Len(), workers, cfg.FrameTimeStep)
	return cfg, w, nil
}
