package snapshot

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"
	"path/filepath"

	"github.com/anthonynsimon/bild/transform"

	"galaxy/internal/camera"
	"galaxy/internal/config"
	"galaxy/internal/physics"
)

// supersample renders at this multiple of the output size, then scales down to smooth edges.
const supersample = 2

// Options are the output size and colors.
type Options struct {
	Width, Height int
	Background    color.RGBA
	Planet        color.RGBA
}

// OptionsFrom uses cfg's window size and colors.
func OptionsFrom(cfg config.Config) Options {
	return Options{
		Width:      cfg.WindowSize[0],
		Height:     cfg.WindowSize[1],
		Background: rgba(cfg.BackgroundColor),
		Planet:     rgba(cfg.PlanetColor),
	}
}

// Render draws bodies as seen through cam. Bodies smaller than a pixel are drawn as one pixel.
func Render(bodies physics.BodySet, cam *camera.Camera, opts Options) *image.RGBA {
	w, h := opts.Width*supersample, opts.Height*supersample
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: opts.Background}, image.Point{}, draw.Src)

	view := *cam
	view.Zoom *= supersample
	for i := range bodies {
		b := &bodies[i]
		if !view.Visible(b.Position, b.Radius, w, h) {
			continue
		}
		c := view.ToScreen(b.Position, w, h)
		r := math.Max(view.Length(b.Radius), supersample/2.0)
		fillDisc(img, c.X, c.Y, r, opts.Planet)
	}
	return transform.Resize(img, opts.Width, opts.Height, transform.Linear)
}

// Save writes img as a PNG, creating the directory if needed.
func Save(path string, img image.Image) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func fillDisc(img *image.RGBA, cx, cy, r float64, c color.RGBA) {
	b := img.Bounds()
	x0 := max(int(math.Floor(cx-r)), b.Min.X)
	x1 := min(int(math.Ceil(cx+r)), b.Max.X-1)
	y0 := max(int(math.Floor(cy-r)), b.Min.Y)
	y1 := min(int(math.Ceil(cy+r)), b.Max.Y-1)
	for y := y0; y <= y1; y++ {
		dy := float64(y) + 0.5 - cy
		for x := x0; x <= x1; x++ {
			dx := float64(x) + 0.5 - cx
			if dx*dx+dy*dy <= r*r {
				img.SetRGBA(x, y, c)
			}
		}
	}
}

// rgba converts to the alpha-premultiplied form color.RGBA expects.
func rgba(c config.Color) color.RGBA {
	r, g, b, a := c.RGBA8()
	mul := func(v uint8) uint8 { return uint8(uint16(v) * uint16(a) / 255) }
	return color.RGBA{R: mul(r), G: mul(g), B: mul(b), A: a}
}
