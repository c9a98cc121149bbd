package labelgrid

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/go-gl/mathgl/mgl32"
)

// WindowConfig describes the initial window.
type WindowConfig struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
}

// FontConfig selects the label font. An empty Path uses the embedded Go Regular font.
type FontConfig struct {
	Path      string  `toml:"path"`
	PixelSize float64 `toml:"pixel_size"`
}

// GridConfig sizes the coordinate box.
type GridConfig struct {
	FillPercent float32 `toml:"fill_percent"`
	Lines       int     `toml:"lines"`
}

// Config holds the scene parameters.
type Config struct {
	Window     WindowConfig `toml:"window"`
	Font       FontConfig   `toml:"font"`
	Grid       GridConfig   `toml:"grid"`
	Camera     CameraState  `toml:"camera"`
	ShaderDir  string       `toml:"shader_dir"`
	ClearColor mgl32.Vec4   `toml:"clear_color"`
	Labels     []Label      `toml:"labels"`
}

// DefaultConfig returns the configuration of the demo scene.
func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{Width: 800, Height: 600, Title: "labelgrid"},
		Font:   FontConfig{PixelSize: DefaultPixelSize},
		Grid:   GridConfig{FillPercent: 1.0, Lines: 10},
		Camera: DefaultCameraState(),

		ShaderDir:  ".",
		ClearColor: mgl32.Vec4{0, 0, 0, 1},
		Labels:     DefaultLabels(),
	}
}

// Option modifies a Config.
type Option func(*Config)

// WithFont sets the font file and pixel size.
func WithFont(path string, pixelSize float64) Option {
	return func(c *Config) {
		c.Font.Path = path
		if pixelSize > 0 {
			c.Font.PixelSize = pixelSize
		}
	}
}

// WithGrid sets the grid extent and subdivision count.
func WithGrid(fillPercent float32, lines int) Option {
	return func(c *Config) {
		c.Grid = GridConfig{FillPercent: fillPercent, Lines: lines}
	}
}

// WithShaderDir sets the directory holding shader.vert and shader.frag.
func WithShaderDir(dir string) Option {
	return func(c *Config) { c.ShaderDir = dir }
}

// WithCamera sets the initial camera pose.
func WithCamera(state CameraState) Option {
	return func(c *Config) { c.Camera = state }
}

// WithLabels replaces the label list.
func WithLabels(labels ...Label) Option {
	return func(c *Config) { c.Labels = labels }
}

// Apply applies opts in order.
func (c *Config) Apply(opts ...Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// LoadConfig reads a TOML file over DefaultConfig. Keys missing from the file
// keep their default values; a labels array replaces the default labels.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	cfg.Labels = nil
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if !md.IsDefined("labels") {
		cfg.Labels = DefaultLabels()
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		logger.Warn("unknown config keys", "path", path, "keys", fmt.Sprint(undecoded))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports configuration values the scene cannot render.
func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Font.PixelSize <= 0 {
		errs = append(errs, fmt.Errorf("font pixel size %v must be positive", c.Font.PixelSize))
	}
	if c.Grid.Lines < 1 {
		errs = append(errs, fmt.Errorf("grid lines %d must be at least 1", c.Grid.Lines))
	}
	if c.Grid.FillPercent <= 0 {
		errs = append(errs, fmt.Errorf("grid fill percent %v must be positive", c.Grid.FillPercent))
	}
	for i, l := range c.Labels {
		if l.Scale <= 0 {
			errs = append(errs, fmt.Errorf("label %d (%q): scale %v must be positive", i, l.Text, l.Scale))
		}
	}
	return errors.Join(errs...)
}
