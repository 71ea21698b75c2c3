package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/jinzhu/copier"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"galaxy/internal/physics"
)

// DefaultPath is where the binary looks for a galaxy file when none is given.
const DefaultPath = "res/config.json"

var (
	// ErrNotFound is returned by Load, together with Default(), when the file does not exist.
	ErrNotFound = errors.New("config: file not found")
	// ErrInvalid wraps every validation failure.
	ErrInvalid = errors.New("config: invalid")
)

// Format selects the encoding of a config file.
type Format string

const (
	// YAML also reads JSON files, which are valid YAML.
	YAML Format = "yaml"
	TOML Format = "toml"
)

// FormatOf picks the format from the file extension: .toml is TOML, anything else YAML.
func FormatOf(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return TOML
	}
	return YAML
}

// Vec2 is a point in world coordinates.
type Vec2 struct {
	X float64 `yaml:"x" toml:"x"`
	Y float64 `yaml:"y" toml:"y"`
}

// Color is a float RGBA color, each channel in [0, 1].
// e.g. {1, 0, 0, 0.8} is red with 0.8 opacity.
type Color struct {
	R float32 `yaml:"r" toml:"r"`
	G float32 `yaml:"g" toml:"g"`
	B float32 `yaml:"b" toml:"b"`
	A float32 `yaml:"a" toml:"a"`
}

// RGBA8 returns the color as 8-bit channels, clamping out-of-range values.
func (c Color) RGBA8() (r, g, b, a uint8) {
	return channel(c.R), channel(c.G), channel(c.B), channel(c.A)
}

func channel(v float32) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	}
	return uint8(v*255 + 0.5)
}

// Planet is one initial body: center, radius and optional initial velocity.
type Planet struct {
	X  float64 `yaml:"x" toml:"x"`
	Y  float64 `yaml:"y" toml:"y"`
	R  float64 `yaml:"r" toml:"r"`
	VX float64 `yaml:"vx,omitempty" toml:"vx,omitempty"`
	VY float64 `yaml:"vy,omitempty" toml:"vy,omitempty"`
}

// Config holds the physical constants, the initial planets and the viewer settings.
type Config struct {
	// Gravity is G: the higher the stronger gravity will be.
	Gravity float64 `yaml:"gravity" toml:"gravity"`
	// SofteningFactor is a small positive value to avoid dividing by 0, e.g. 0.01.
	SofteningFactor float64 `yaml:"softening_factor" toml:"softening_factor"`
	// RestitutionFactor >= 0 is the bounciness of bodies; 0 means no bounce.
	RestitutionFactor float64 `yaml:"restitution_factor" toml:"restitution_factor"`

	// ZoomFactor > 1: 2 means zoom in makes things twice bigger, zoom out twice smaller.
	ZoomFactor  float64 `yaml:"zoom_factor" toml:"zoom_factor"`
	DefaultZoom float64 `yaml:"default_zoom" toml:"default_zoom"`
	// CameraSpeed > 0 is the pan distance per key press, in world units.
	CameraSpeed    float64 `yaml:"camera_speed" toml:"camera_speed"`
	CameraPosition Vec2    `yaml:"camera_position" toml:"camera_position"`
	WindowSize     [2]int  `yaml:"window_size" toml:"window_size"`

	// FrameTimeStep > 0 is dt per frame: the higher, the faster the simulation.
	// Collisions may be missed if it is too high for the bodies' speeds.
	FrameTimeStep float64 `yaml:"frame_time_step" toml:"frame_time_step"`

	BackgroundColor Color `yaml:"background_color" toml:"background_color"`
	PlanetColor     Color `yaml:"planet_color" toml:"planet_color"`

	// Font is an optional TTF/OTF for window text: a file path or a family name under assets/fonts.
	Font string `yaml:"font,omitempty" toml:"font,omitempty"`
	// Workers > 1 runs each physics pass on that many goroutines; 0 lets the binary pick one per CPU.
	Workers int `yaml:"workers,omitempty" toml:"workers,omitempty"`

	Planets []Planet `yaml:"planets" toml:"planets"`
}

// Default returns the built-in galaxy: three planets stacked on the Y axis.
func Default() Config {
	return Config{
		Gravity:           0.05,
		SofteningFactor:   0.01,
		RestitutionFactor: 0.2,
		ZoomFactor:        2.0,
		DefaultZoom:       1.0,
		CameraSpeed:       4.0,
		CameraPosition:    Vec2{},
		WindowSize:        [2]int{512, 512},
		FrameTimeStep:     0.1,
		BackgroundColor:   Color{R: 0.2, G: 0.2, B: 0.2, A: 1.0},
		PlanetColor:       Color{R: 1.0, G: 0.6, B: 0.0, A: 1.0},
		Planets: []Planet{
			{X: 0, Y: 20, R: 5},
			{X: 0, Y: 40, R: 10},
			{X: 0, Y: 80, R: 20},
		},
	}
}

// Load reads the config at path over the defaults: keys missing from the file keep
// their default value. A missing file returns Default() and ErrNotFound so callers
// can report it and continue. Parse or validation failures return Default() and the error.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return Default(), fmt.Errorf("config: %w", err)
	}
	cfg, err := Decode(data, FormatOf(path))
	if err != nil {
		return Default(), fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Decode parses data over the defaults and validates the result.
func Decode(data []byte, format Format) (Config, error) {
	cfg := Default()
	// Decoders differ on whether array tables append to an existing slice;
	// start empty and restore the default planets only when the file has none.
	planets := cfg.Planets
	cfg.Planets = nil
	var err error
	switch format {
	case TOML:
		err = toml.Unmarshal(data, &cfg)
	default:
		err = yaml.Unmarshal(data, &cfg)
	}
	if err != nil {
		return Config{}, err
	}
	if cfg.Planets == nil {
		cfg.Planets = planets
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Encode serializes cfg in the given format.
func Encode(cfg Config, format Format) ([]byte, error) {
	if format == TOML {
		return toml.Marshal(cfg)
	}
	return yaml.Marshal(cfg)
}

// Save writes cfg to path in the format implied by its extension, creating the directory if needed.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := Encode(cfg, FormatOf(path))
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the constants, the viewer settings and every planet.
func (c Config) Validate() error {
	if err := c.Constants().Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	switch {
	case !(c.FrameTimeStep > 0):
		return fmt.Errorf("%w: frame_time_step %v must be > 0", ErrInvalid, c.FrameTimeStep)
	case !(c.ZoomFactor > 1):
		return fmt.Errorf("%w: zoom_factor %v must be > 1", ErrInvalid, c.ZoomFactor)
	case !(c.DefaultZoom > 0):
		return fmt.Errorf("%w: default_zoom %v must be > 0", ErrInvalid, c.DefaultZoom)
	case !(c.CameraSpeed > 0):
		return fmt.Errorf("%w: camera_speed %v must be > 0", ErrInvalid, c.CameraSpeed)
	case c.WindowSize[0] <= 0 || c.WindowSize[1] <= 0:
		return fmt.Errorf("%w: window_size %v", ErrInvalid, c.WindowSize)
	case c.Workers < 0:
		return fmt.Errorf("%w: workers %d must be >= 0", ErrInvalid, c.Workers)
	}
	if _, err := c.BodySet(); err != nil {
		return fmt.Errorf("%w: planets: %v", ErrInvalid, err)
	}
	return nil
}

// Constants copies the physical constants out of the config.
func (c Config) Constants() physics.Constants {
	var pc physics.Constants
	_ = copier.Copy(&pc, &c)
	return pc
}

// Specs converts the planets to body specs, keeping their order.
func (c Config) Specs() []physics.Spec {
	specs := make([]physics.Spec, len(c.Planets))
	for i, p := range c.Planets {
		specs[i] = physics.Spec{X: p.X, Y: p.Y, Radius: p.R, VX: p.VX, VY: p.VY}
	}
	return specs
}

// BodySet builds the initial bodies with sequential ids.
func (c Config) BodySet() (physics.BodySet, error) {
	return physics.NewBodySet(c.Specs())
}
