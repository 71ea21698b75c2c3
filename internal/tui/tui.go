package tui

import (
	"context"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"

	"galaxy/internal/camera"
	"galaxy/internal/config"
	"galaxy/internal/sim"
)

const (
	planetRune = '█'
	dotRune    = '•'
	// terminal cells are about twice as tall as wide; bodies are rasterized
	// on a grid with two rows per cell so they come out round
	rowsPerCell = 2
)

// Terminal renders a running simulation into a tcell screen.
// Keys: arrows pan, PageUp/PageDown or +/- zoom, p pauses, n single-steps while paused,
// q, Esc or Ctrl+C quit. "/" opens a command line on the bottom row; Enter passes it
// (with the slash) to OnSubmit, Esc cancels. Otherwise the bottom row shows the
// last line returned by Notes, when set.
type Terminal struct {
	Camera   *camera.Camera
	OnSubmit func(line string)
	Notes    func() []string

	screen     tcell.Screen
	runner     *sim.Runner
	planet     tcell.Style
	background tcell.Style
	frame      time.Duration
	input      []rune
	typing     bool
}

// New returns a terminal view. The screen must already be initialized.
// frame is the redraw interval; each redraw advances the simulation one step.
func New(screen tcell.Screen, runner *sim.Runner, cfg config.Config, frame time.Duration) *Terminal {
	bg := toColor(cfg.BackgroundColor)
	if frame <= 0 {
		frame = 16 * time.Millisecond
	}
	return &Terminal{
		Camera:     camera.New(camera.SettingsFrom(cfg)),
		screen:     screen,
		runner:     runner,
		planet:     tcell.StyleDefault.Foreground(toColor(cfg.PlanetColor)).Background(bg),
		background: tcell.StyleDefault.Background(bg),
		frame:      frame,
	}
}

// Run polls input and redraws until quit or ctx is done.
func (t *Terminal) Run(ctx context.Context) error {
	ticker := time.NewTicker(t.frame)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	t.Draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if !t.HandleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			t.runner.Frame()
			t.Draw()
		}
	}
}

// HandleEvent applies one input event. It returns false when the user asked to quit.
func (t *Terminal) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if t.typing {
			t.editLine(ev)
			t.Draw()
			return true
		}
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyLeft:
			t.Camera.Pan(-1, 0)
		case tcell.KeyRight:
			t.Camera.Pan(1, 0)
		case tcell.KeyUp:
			t.Camera.Pan(0, -1)
		case tcell.KeyDown:
			t.Camera.Pan(0, 1)
		case tcell.KeyPgUp:
			t.Camera.ZoomIn()
		case tcell.KeyPgDn:
			t.Camera.ZoomOut()
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case '+', '=':
				t.Camera.ZoomIn()
			case '-':
				t.Camera.ZoomOut()
			case 'p':
				t.runner.TogglePause()
			case 'n':
				t.runner.StepOnce()
			case '/':
				t.typing = true
				t.input = append(t.input[:0], '/')
			}
		}
		t.Draw()
	case *tcell.EventResize:
		t.screen.Sync()
		t.Draw()
	}
	return true
}

func (t *Terminal) editLine(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		t.typing = false
	case tcell.KeyEnter:
		t.typing = false
		if t.OnSubmit != nil {
			t.OnSubmit(string(t.input))
		}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(t.input) > 0 {
			t.input = t.input[:len(t.input)-1]
		}
		if len(t.input) == 0 {
			t.typing = false
		}
	case tcell.KeyRune:
		t.input = append(t.input, ev.Rune())
	}
}

// Draw rasterizes every visible body and the status line, then shows the screen.
func (t *Terminal) Draw() {
	cols, rows := t.screen.Size()
	t.screen.SetStyle(t.background)
	t.screen.Clear()

	height := rows * rowsPerCell
	bodies, stats := t.runner.Snapshot()
	for i := range bodies {
		b := &bodies[i]
		if !t.Camera.Visible(b.Position, b.Radius, cols, height) {
			continue
		}
		c := t.Camera.ToScreen(b.Position, cols, height)
		r := t.Camera.Length(b.Radius)
		if r < 1 {
			t.set(int(math.Floor(c.X)), int(math.Floor(c.Y/rowsPerCell)), dotRune, cols, rows)
			continue
		}
		y0 := int(math.Floor((c.Y - r) / rowsPerCell))
		y1 := int(math.Ceil((c.Y + r) / rowsPerCell))
		x0 := int(math.Floor(c.X - r))
		x1 := int(math.Ceil(c.X + r))
		for y := y0; y <= y1; y++ {
			// cell centers in grid units
			dy := (float64(y)+0.5)*rowsPerCell - c.Y
			for x := x0; x <= x1; x++ {
				dx := float64(x) + 0.5 - c.X
				if dx*dx+dy*dy <= r*r {
					t.set(x, y, planetRune, cols, rows)
				}
			}
		}
	}

	status := sim.StatusLine(stats, bodies.KineticEnergy(), t.runner.Paused())
	for i, ch := range []rune(status) {
		if i >= cols {
			break
		}
		t.screen.SetContent(i, 0, ch, nil, t.background.Foreground(tcell.ColorGreen))
	}
	switch {
	case t.typing:
		t.bottomRow(append(t.input, '_'), cols, rows, tcell.ColorWhite)
	case t.Notes != nil:
		if notes := t.Notes(); len(notes) > 0 {
			t.bottomRow([]rune(notes[len(notes)-1]), cols, rows, tcell.ColorSilver)
		}
	}
	t.screen.Show()
}

func (t *Terminal) bottomRow(line []rune, cols, rows int, fg tcell.Color) {
	for i := 0; i < cols; i++ {
		ch := ' '
		if i < len(line) {
			ch = line[i]
		}
		t.screen.SetContent(i, rows-1, ch, nil, t.background.Foreground(fg))
	}
}

func (t *Terminal) set(x, y int, ch rune, cols, rows int) {
	if x < 0 || y < 0 || x >= cols || y >= rows {
		return
	}
	t.screen.SetContent(x, y, ch, nil, t.planet)
}

func toColor(c config.Color) tcell.Color {
	r, g, b, _ := c.RGBA8()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
