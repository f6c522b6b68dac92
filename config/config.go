package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/hherman1/raytracer/resources"
)

// Resize policies for the Resolution uniform.
const (
	// Follow the window: frames drawn after a resize see the new size.
	ResolutionWindow = "window"
	// Keep the size the window opened with for the whole run.
	ResolutionFixed = "fixed"
)

// What to do when the shader doesn't compile at startup.
const (
	OnErrorAbort    = "abort"
	OnErrorContinue = "continue"
)

type Config struct {
	Window Window `yaml:"window" toml:"window"`
	Shader Shader `yaml:"shader" toml:"shader"`

	// debug, info, warn or error
	LogLevel string `yaml:"log_level" toml:"log_level"`

	// Compile the shader, report, and exit without opening a window. Command line only.
	Check bool `yaml:"-" toml:"-"`
}

type Window struct {
	Width  int `yaml:"width" toml:"width"`
	Height int `yaml:"height" toml:"height"`
	// ResolutionWindow or ResolutionFixed
	Resolution string `yaml:"resolution" toml:"resolution"`
	// Ticks per second for the frame callback
	TPS int `yaml:"tps" toml:"tps"`
}

type Shader struct {
	Path string `yaml:"path" toml:"path"`
	// Recompile the shader when the file changes
	Watch bool `yaml:"watch" toml:"watch"`
	// OnErrorAbort or OnErrorContinue
	OnError string `yaml:"on_error" toml:"on_error"`
}

func Default() Config {
	return Config{
		Window: Window{
			Width:      800,
			Height:     600,
			Resolution: ResolutionWindow,
			TPS:        60,
		},
		Shader: Shader{
			Path:    resources.DefaultShaderPath,
			OnError: OnErrorAbort,
		},
		LogLevel: "info",
	}
}

// Load reads a YAML or TOML config file over the defaults. The format is picked from the file extension.
func Load(path string) (Config, error) {
	c := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("reading config file: %w", err)
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &c)
	case ".toml":
		err = toml.Unmarshal(data, &c)
	default:
		return c, fmt.Errorf("unrecognized config format %q", ext)
	}
	if err != nil {
		return c, fmt.Errorf("parsing config file: %w", err)
	}
	if err := c.Validate(); err != nil {
		return c, fmt.Errorf("config %s: %w", path, err)
	}
	return c, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Window.TPS <= 0 {
		errs = append(errs, fmt.Errorf("tps %d must be positive", c.Window.TPS))
	}
	switch c.Window.Resolution {
	case ResolutionWindow, ResolutionFixed:
	default:
		errs = append(errs, fmt.Errorf("resolution %q must be %q or %q", c.Window.Resolution, ResolutionWindow, ResolutionFixed))
	}
	switch c.Shader.OnError {
	case OnErrorAbort, OnErrorContinue:
	default:
		errs = append(errs, fmt.Errorf("on_error %q must be %q or %q", c.Shader.OnError, OnErrorAbort, OnErrorContinue))
	}
	if c.Shader.Path == "" {
		errs = append(errs, errors.New("shader path is empty"))
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return l, fmt.Errorf("log level: %w", err)
	}
	return l, nil
}

// Parse builds the config for a command line: defaults, then the -config file if given, then any flags that were
// set explicitly.
func Parse(name string, args []string, output io.Writer) (Config, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(output)

	d := Default()
	var (
		file       = fs.String("config", "", "YAML or TOML config file.")
		path       = fs.String("shader", d.Shader.Path, "Fragment shader (Kage) to run.")
		width      = fs.Int("width", d.Window.Width, "Window width in pixels.")
		height     = fs.Int("height", d.Window.Height, "Window height in pixels.")
		resolution = fs.String("resolution", d.Window.Resolution, "Resize policy: window or fixed.")
		tps        = fs.Int("tps", d.Window.TPS, "Frame callbacks per second.")
		watch      = fs.Bool("watch", d.Shader.Watch, "Recompile the shader when it changes on disk.")
		onError    = fs.String("on-error", d.Shader.OnError, "On startup compile failure: abort or continue.")
		level      = fs.String("log-level", d.LogLevel, "debug, info, warn or error.")
		check      = fs.Bool("check", false, "Compile the shader, report diagnostics and exit.")
	)
	if err := fs.Parse(args); err != nil {
		return d, err
	}

	c := d
	if *file != "" {
		var err error
		c, err = Load(*file)
		if err != nil {
			return c, err
		}
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "shader":
			c.Shader.Path = *path
		case "width":
			c.Window.Width = *width
		case "height":
			c.Window.Height = *height
		case "resolution":
			c.Window.Resolution = *resolution
		case "tps":
			c.Window.TPS = *tps
		case "watch":
			c.Shader.Watch = *watch
		case "on-error":
			c.Shader.OnError = *onError
		case "log-level":
			c.LogLevel = *level
		}
	})
	c.Check = *check
	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}
