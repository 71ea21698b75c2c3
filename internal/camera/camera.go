package camera

import (
	"github.com/jinzhu/copier"
	"golang.org/x/exp/constraints"
	"gonum.org/v1/gonum/spatial/r2"

	"galaxy/internal/config"
)

// Zoom limits keep repeated zooming from under/overflowing the transform.
const (
	MinZoom = 1e-6
	MaxZoom = 1e6
)

// Settings are the camera parameters read from the galaxy config.
type Settings struct {
	ZoomFactor     float64
	DefaultZoom    float64
	CameraSpeed    float64
	CameraPosition config.Vec2
}

// SettingsFrom copies the camera fields out of cfg.
func SettingsFrom(cfg config.Config) Settings {
	var s Settings
	_ = copier.Copy(&s, &cfg)
	return s
}

// Camera maps world coordinates to the screen. Position is the world point drawn at
// the screen center; Zoom is screen pixels (or cells) per world unit.
// Zoom 0.5 draws things half size, 2 twice as big.
type Camera struct {
	Position   r2.Vec
	Zoom       float64
	ZoomFactor float64
	// Speed is the pan distance per move, in world units.
	Speed float64
}

// New returns a camera from settings.
func New(s Settings) *Camera {
	return &Camera{
		Position:   r2.Vec{X: s.CameraPosition.X, Y: s.CameraPosition.Y},
		Zoom:       clamp(s.DefaultZoom, MinZoom, MaxZoom),
		ZoomFactor: s.ZoomFactor,
		Speed:      s.CameraSpeed,
	}
}

// Pan moves the camera by (dx, dy) steps of Speed.
func (c *Camera) Pan(dx, dy float64) {
	c.Position = r2.Add(c.Position, r2.Scale(c.Speed, r2.Vec{X: dx, Y: dy}))
}

// ZoomIn multiplies the zoom by ZoomFactor.
func (c *Camera) ZoomIn() {
	c.Zoom = clamp(c.Zoom*c.ZoomFactor, MinZoom, MaxZoom)
}

// ZoomOut divides the zoom by ZoomFactor.
func (c *Camera) ZoomOut() {
	c.Zoom = clamp(c.Zoom/c.ZoomFactor, MinZoom, MaxZoom)
}

// SetZoom sets the zoom directly, within MinZoom and MaxZoom.
func (c *Camera) SetZoom(z float64) {
	c.Zoom = clamp(z, MinZoom, MaxZoom)
}

// CenterOn moves the camera so p is drawn at the screen center.
func (c *Camera) CenterOn(p r2.Vec) {
	c.Position = p
}

// ToScreen maps a world point to screen coordinates for a viewport of width x height.
func (c *Camera) ToScreen(p r2.Vec, width, height int) r2.Vec {
	v := r2.Scale(c.Zoom, r2.Sub(p, c.Position))
	return r2.Vec{X: v.X + float64(width)/2, Y: v.Y + float64(height)/2}
}

// ToWorld is the inverse of ToScreen.
func (c *Camera) ToWorld(s r2.Vec, width, height int) r2.Vec {
	v := r2.Vec{X: s.X - float64(width)/2, Y: s.Y - float64(height)/2}
	return r2.Add(c.Position, r2.Scale(1/c.Zoom, v))
}

// Length scales a world distance (e.g. a radius) to screen units.
func (c *Camera) Length(d float64) float64 {
	return d * c.Zoom
}

func clamp[T constraints.Float](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Visible reports whether a circle of world radius r at p touches a width x height viewport.
func (c *Camera) Visible(p r2.Vec, r float64, width, height int) bool {
	s := c.ToScreen(p, width, height)
	l := c.Length(r)
	return s.X+l >= 0 && s.Y+l >= 0 && s.X-l <= float64(width) && s.Y-l <= float64(height)
}
