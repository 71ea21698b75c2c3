package view

import (
	"fmt"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"galaxy/internal/camera"
	"galaxy/internal/config"
	"galaxy/internal/graphics"
	"galaxy/internal/logger"
	"galaxy/internal/sim"
)

// minPixelRadius keeps far-zoomed planets visible as a dot.
const minPixelRadius float32 = 1

// Galaxy draws the bodies of a running simulation through a 2D camera and handles
// the window's keyboard input. Arrow keys pan, PageUp/PageDown zoom, P pauses,
// N single-steps while paused and H toggles the HUD.
type Galaxy struct {
	Camera *camera.Camera
	HUD    *HUD

	runner     *sim.Runner
	background rl.Color
	planet     rl.Color
}

// New returns a view over runner using cfg's colors and camera settings.
// The HUD shows the last lines of log; log may be nil.
func New(runner *sim.Runner, cfg config.Config, log *logger.Logger) *Galaxy {
	hud := NewHUD()
	if log != nil {
		hud.Notes = func() []string { return log.Tail(hudNotes) }
	}
	return &Galaxy{
		Camera:     camera.New(camera.SettingsFrom(cfg)),
		HUD:        hud,
		runner:     runner,
		background: toColor(cfg.BackgroundColor),
		planet:     toColor(cfg.PlanetColor),
	}
}

// Background is the clear color for the window.
func (g *Galaxy) Background() rl.Color {
	return g.background
}

// HandleInput applies this frame's key presses. Skip it while a console has the keyboard.
func (g *Galaxy) HandleInput() {
	switch {
	case rl.IsKeyPressed(rl.KeyLeft):
		g.Camera.Pan(-1, 0)
	case rl.IsKeyPressed(rl.KeyRight):
		g.Camera.Pan(1, 0)
	case rl.IsKeyPressed(rl.KeyUp):
		g.Camera.Pan(0, -1)
	case rl.IsKeyPressed(rl.KeyDown):
		g.Camera.Pan(0, 1)
	case rl.IsKeyPressed(rl.KeyPageUp):
		g.Camera.ZoomIn()
	case rl.IsKeyPressed(rl.KeyPageDown):
		g.Camera.ZoomOut()
	case rl.IsKeyPressed(rl.KeyP):
		g.runner.TogglePause()
	case rl.IsKeyPressed(rl.KeyN):
		g.runner.StepOnce()
	case rl.IsKeyPressed(rl.KeyH):
		g.HUD.Visible = !g.HUD.Visible
	}
}

// Update advances the simulation one step unless paused.
func (g *Galaxy) Update() {
	g.runner.Frame()
}

// Draw renders every body on screen, then the HUD. Call between BeginDrawing and EndDrawing.
func (g *Galaxy) Draw() {
	w, h := rl.GetScreenWidth(), rl.GetScreenHeight()
	bodies, stats := g.runner.Snapshot()
	for i := range bodies {
		b := &bodies[i]
		if !g.Camera.Visible(b.Position, b.Radius, w, h) {
			continue
		}
		p := g.Camera.ToScreen(b.Position, w, h)
		r := math32.Max(float32(g.Camera.Length(b.Radius)), minPixelRadius)
		rl.DrawCircleV(rl.NewVector2(float32(p.X), float32(p.Y)), r, g.planet)
	}
	g.HUD.Draw(sim.StatusLine(stats, bodies.KineticEnergy(), g.runner.Paused()))
}

func toColor(c config.Color) rl.Color {
	r, gr, b, a := c.RGBA8()
	return rl.NewColor(r, gr, b, a)
}

const (
	hudFontSize   = 20
	hudPadding    = 12
	hudLineHeight = hudFontSize + 4
	hudNotes      = 3
	// only refresh text every N frames to reduce allocations
	updateInterval = 30
)

// HUD is the top-left text overlay: FPS and the simulation status line,
// then recent log lines along the bottom when Notes is set.
type HUD struct {
	Visible bool
	Notes   func() []string
	// Font may be nil for raylib's default font.
	Font *graphics.Font

	frameCount uint32
	fpsText    string
	statusText string
	notes      []string
}

// NewHUD returns a visible HUD.
func NewHUD() *HUD {
	return &HUD{Visible: true}
}

// Draw renders the overlay. status is only picked up every updateInterval frames.
func (h *HUD) Draw(status string) {
	if !h.Visible {
		return
	}
	h.frameCount++
	if h.frameCount%updateInterval == 0 || h.fpsText == "" {
		h.fpsText = fmt.Sprintf("FPS: %d", rl.GetFPS())
		h.statusText = status
		if h.Notes != nil {
			h.notes = h.Notes()
		}
	}
	y := int32(hudPadding)
	h.Font.Draw(h.fpsText, hudPadding, y, hudFontSize, rl.Green)
	y += hudLineHeight
	h.Font.Draw(h.statusText, hudPadding, y, hudFontSize, rl.Green)

	y = int32(rl.GetScreenHeight()) - hudPadding - int32(len(h.notes))*hudLineHeight
	for _, line := range h.notes {
		h.Font.Draw(line, hudPadding, y, hudFontSize, rl.LightGray)
		y += hudLineHeight
	}
}
