package galaxygen

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"gonum.org/v1/gonum/stat/distuv"

	"galaxy/internal/config"
)

// ErrTooDense is returned when a planet cannot be placed without overlapping the others.
var ErrTooDense = errors.New("galaxygen: spread too small for planet count")

// maxAttempts bounds how many positions are tried for each planet.
const maxAttempts = 200

// Options controls procedural galaxy generation.
// Planets are placed uniformly over a disc of radius Spread centered on Center,
// never overlapping one another. Radii are uniform in [MinRadius, MaxRadius].
// Spin > 0 gives every planet a tangential velocity of Spin * distance / Spread
// (a rigid counter-clockwise rotation); 0 leaves them at rest.
// Seed controls randomness; Seed == 0 uses a time-based seed.
type Options struct {
	Count     int
	Seed      uint64
	Center    config.Vec2
	Spread    float64
	MinRadius float64
	MaxRadius float64
	Spin      float64
}

// DefaultOptions returns a sane default configuration.
func DefaultOptions() Options {
	return Options{
		Count:     40,
		Spread:    150,
		MinRadius: 1,
		MaxRadius: 6,
	}
}

// Generate returns opts.Count planets. The same non-zero seed always gives the same galaxy.
func Generate(opts Options) ([]config.Planet, error) {
	if opts.Count <= 0 {
		return nil, nil
	}
	if opts.Spread <= 0 {
		opts.Spread = 150
	}
	if opts.MinRadius <= 0 {
		opts.MinRadius = 1
	}
	if opts.MaxRadius < opts.MinRadius {
		opts.MaxRadius = opts.MinRadius
	}
	seed := opts.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	src := rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)

	unit := distuv.Uniform{Min: 0, Max: 1, Src: src}
	angle := distuv.Uniform{Min: 0, Max: 2 * math.Pi, Src: src}
	radius := distuv.Uniform{Min: opts.MinRadius, Max: opts.MaxRadius, Src: src}

	planets := make([]config.Planet, 0, opts.Count)
	for i := 0; i < opts.Count; i++ {
		r := radius.Rand()
		placed := false
		for attempt := 0; attempt < maxAttempts; attempt++ {
			// sqrt keeps the density uniform over the disc area
			dist := opts.Spread * math.Sqrt(unit.Rand())
			theta := angle.Rand()
			p := config.Planet{
				X: opts.Center.X + dist*math.Cos(theta),
				Y: opts.Center.Y + dist*math.Sin(theta),
				R: r,
			}
			if overlapsAny(p, planets) {
				continue
			}
			if opts.Spin > 0 {
				speed := opts.Spin * dist / opts.Spread
				p.VX = -math.Sin(theta) * speed
				p.VY = math.Cos(theta) * speed
			}
			planets = append(planets, p)
			placed = true
			break
		}
		if !placed {
			return nil, fmt.Errorf("%w: placed %d of %d", ErrTooDense, len(planets), opts.Count)
		}
	}
	return planets, nil
}

// Apply replaces cfg's planets with a generated galaxy.
func Apply(cfg *config.Config, opts Options) error {
	planets, err := Generate(opts)
	if err != nil {
		return err
	}
	cfg.Planets = planets
	return nil
}

func overlapsAny(p config.Planet, others []config.Planet) bool {
	for _, o := range others {
		dx, dy := p.X-o.X, p.Y-o.Y
		sum := p.R + o.R
		if dx*dx+dy*dy <= sum*sum {
			return true
		}
	}
	return false
}
