// Package config loads boxer's TOML configuration.
//
// Every field has a default, so an empty file (or no file) is a valid
// configuration:
//
//	[window]
//	width = 900
//	height = 600
//
//	[root]
//	name = "root_container"
//	explicit = true
//	x = 50
//	y = 50
//	width = 615
//	height = 320
//
//	[handles]
//	margin = 20
//	ratio = 0.5
//
//	[views]
//	default = "graph"
//
//	[[startup]]
//	leaf = 0
//	action = "split horizontal"
//
//	[[startup]]
//	leaf = 1
//	view = "parameters"
//
//	[server]
//	addr = "127.0.0.1:8642"
//	render_cache = "redis://localhost:6379/0"
package config

import (
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/ioxu/boxer/pkg/container"
	"github.com/ioxu/boxer/pkg/errors"
	"github.com/ioxu/boxer/pkg/geom"
	"github.com/ioxu/boxer/pkg/input"
)

// Defaults.
const (
	DefaultWindowWidth  = 900
	DefaultWindowHeight = 600

	DefaultRootName   = "root_container"
	DefaultRootX      = 50
	DefaultRootY      = 50
	DefaultRootWidth  = 615
	DefaultRootHeight = 320

	DefaultServerAddr = "127.0.0.1:8642"

	DefaultCellWidth  = 8
	DefaultCellHeight = 16
)

// Config is the complete configuration.
type Config struct {
	Window  Window    `toml:"window"`
	Root    Root      `toml:"root"`
	Handles Handles   `toml:"handles"`
	Views   Views     `toml:"views"`
	Startup []Startup `toml:"startup"`
	Server  Server    `toml:"server"`
	Editor  Editor    `toml:"editor"`
}

// Window is the size of the drawing area when no real window reports one.
type Window struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

// Root configures the root container. With Explicit unset the root fills
// the window.
type Root struct {
	Name     string   `toml:"name"`
	Explicit *bool    `toml:"explicit"`
	X        *float64 `toml:"x"`
	Y        *float64 `toml:"y"`
	Width    float64  `toml:"width"`
	Height   float64  `toml:"height"`
}

// Handles configures split handles.
type Handles struct {
	Margin float64 `toml:"margin"`
	Ratio  float64 `toml:"ratio"`
}

// Views configures view selection.
type Views struct {
	// Default is shown in the root leaf at startup. Empty or "none" leaves
	// it blank.
	Default string `toml:"default"`
}

// Startup is one step run against the tree after it is built. Leaf indexes
// the leaves in pre-order as they are after the previous step. Exactly one
// of Action and View is set.
type Startup struct {
	Leaf   int    `toml:"leaf"`
	Action string `toml:"action"`
	View   string `toml:"view"`
}

// Server configures the debug HTTP server.
type Server struct {
	Addr string `toml:"addr"`

	// RenderCache is a redis:// URL for sharing rendered SVGs between
	// server instances. Empty keeps them in memory.
	RenderCache string `toml:"render_cache"`
}

// Editor configures the terminal editor. A terminal cell stands for
// CellWidth x CellHeight layout units.
type Editor struct {
	CellWidth  float64 `toml:"cell_width"`
	CellHeight float64 `toml:"cell_height"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads and validates the configuration at path. Unknown keys are
// rejected.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	return Parse(string(data))
}

// Parse decodes and validates a TOML document.
func Parse(data string) (*Config, error) {
	var c Config
	md, err := toml.Decode(data, &c)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) applyDefaults() {
	if c.Window.Width == 0 {
		c.Window.Width = DefaultWindowWidth
	}
	if c.Window.Height == 0 {
		c.Window.Height = DefaultWindowHeight
	}
	if c.Root.Name == "" {
		c.Root.Name = DefaultRootName
	}
	if c.Root.Explicit == nil {
		c.Root.Explicit = ptr(true)
	}
	if c.Root.X == nil {
		c.Root.X = ptr[float64](DefaultRootX)
	}
	if c.Root.Y == nil {
		c.Root.Y = ptr[float64](DefaultRootY)
	}
	if c.Root.Width == 0 {
		c.Root.Width = DefaultRootWidth
	}
	if c.Root.Height == 0 {
		c.Root.Height = DefaultRootHeight
	}
	if c.Handles.Margin == 0 {
		c.Handles.Margin = container.DefaultHandleMargin
	}
	if c.Handles.Ratio == 0 {
		c.Handles.Ratio = container.DefaultRatio
	}
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultServerAddr
	}
	if c.Editor.CellWidth == 0 {
		c.Editor.CellWidth = DefaultCellWidth
	}
	if c.Editor.CellHeight == 0 {
		c.Editor.CellHeight = DefaultCellHeight
	}
}

func ptr[T any](v T) *T { return &v }

// Validate checks value ranges and startup steps. Startup views are only
// checked for syntax here; whether a name is registered is known once a
// catalog exists.
func (c *Config) Validate() error {
	if err := errors.ValidateSize(c.Window.Width, c.Window.Height); err != nil {
		return invalid("window", err)
	}
	if err := errors.ValidateSize(c.Root.Width, c.Root.Height); err != nil {
		return invalid("root", err)
	}
	if c.Handles.Margin < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "handles.margin must not be negative, got %v", c.Handles.Margin)
	}
	if err := errors.ValidateRatio(c.Handles.Ratio); err != nil {
		return invalid("handles.ratio", err)
	}
	if c.Editor.CellWidth <= 0 || c.Editor.CellHeight <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "editor cell size must be positive")
	}
	if u := c.Server.RenderCache; u != "" && !strings.HasPrefix(u, "redis://") && !strings.HasPrefix(u, "rediss://") {
		return errors.New(errors.ErrCodeInvalidConfig, "server.render_cache must be a redis:// URL, got %q", u)
	}
	for i, s := range c.Startup {
		if s.Leaf < 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "startup[%d]: leaf must not be negative", i)
		}
		switch {
		case s.Action == "" && s.View == "":
			return errors.New(errors.ErrCodeInvalidConfig, "startup[%d]: one of action or view is required", i)
		case s.Action != "" && s.View != "":
			return errors.New(errors.ErrCodeInvalidConfig, "startup[%d]: action and view are exclusive", i)
		case s.Action != "":
			if _, err := container.ParseAction(s.Action); err != nil {
				return invalid("startup", err)
			}
		case s.View != errors.NoneViewName:
			if err := errors.ValidateViewName(s.View); err != nil {
				return invalid("startup", err)
			}
		}
	}
	return nil
}

func invalid(field string, err error) error {
	return errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid %s", field)
}

// SplitOptions returns the options for splits created at runtime.
func (c *Config) SplitOptions() container.SplitOptions {
	return container.SplitOptions{Ratio: c.Handles.Ratio, HandleMargin: c.Handles.Margin}
}

// NewRoot builds the root container on src.
func (c *Config) NewRoot(src input.Source) *container.Container {
	root := container.New(container.Options{
		Name:     c.Root.Name,
		Source:   src,
		Width:    c.Root.Width,
		Height:   c.Root.Height,
		Explicit: *c.Root.Explicit,
		Position: geom.V(*c.Root.X, *c.Root.Y),
	})
	root.SetSplitDefaults(c.SplitOptions())
	return root
}
