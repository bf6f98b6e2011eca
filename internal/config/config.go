// Package config holds the settings of the live shader viewer.
//
// Settings are resolved in three layers: Default, then an optional TOML
// file, then command-line flags that were set explicitly.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/go-theft-auto/shader"
)

// Config is the viewer configuration.
type Config struct {
	Vertex   string   `toml:"vertex"`
	Fragment string   `toml:"fragment"`
	Width    int      `toml:"width"`
	Height   int      `toml:"height"`
	Title    string   `toml:"title"`
	Policy   string   `toml:"policy"`
	Watch    bool     `toml:"watch"`
	Debounce Duration `toml:"debounce"`
	Verbose  bool     `toml:"verbose"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Vertex:   "example/shaders/basic.vert",
		Fragment: "example/shaders/basic.frag",
		Width:    800,
		Height:   600,
		Title:    "shader viewer",
		Policy:   shader.FailFast.String(),
		Watch:    true,
		Debounce: Duration(100 * time.Millisecond),
	}
}

// LoadFile overlays the TOML file at path onto c. Keys missing from the
// file keep their current values; unknown keys are an error.
func (c *Config) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	dec := toml.NewDecoder(f).DisallowUnknownFields()
	if err := dec.Decode(c); err != nil {
		var sme *toml.StrictMissingError
		if errors.As(err, &sme) {
			return fmt.Errorf("config %s: %s", path, sme.String())
		}
		return fmt.Errorf("config %s: %w", path, err)
	}
	return nil
}

// Parse resolves the configuration from args (without the program name).
// A -config flag names a TOML file applied before the other flags.
func Parse(args []string) (Config, error) {
	c := Default()

	fs := flag.NewFlagSet("viewer", flag.ContinueOnError)
	configPath := fs.String("config", "", "TOML configuration file")
	vertex := fs.String("vertex", c.Vertex, "vertex shader source file")
	fragment := fs.String("fragment", c.Fragment, "fragment shader source file")
	width := fs.Int("width", c.Width, "window width")
	height := fs.Int("height", c.Height, "window height")
	title := fs.String("title", c.Title, "window title")
	policy := fs.String("policy", c.Policy, "reload failure policy: fail-fast or return-errors")
	watch := fs.Bool("watch", c.Watch, "reload when a source file changes")
	debounce := fs.Duration("debounce", time.Duration(c.Debounce), "wait for file changes to settle")
	verbose := fs.Bool("v", c.Verbose, "verbose logging")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *configPath != "" {
		if err := c.LoadFile(*configPath); err != nil {
			return Config{}, err
		}
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "vertex":
			c.Vertex = *vertex
		case "fragment":
			c.Fragment = *fragment
		case "width":
			c.Width = *width
		case "height":
			c.Height = *height
		case "title":
			c.Title = *title
		case "policy":
			c.Policy = *policy
		case "watch":
			c.Watch = *watch
		case "debounce":
			c.Debounce = Duration(*debounce)
		case "v":
			c.Verbose = *verbose
		}
	})

	if fs.NArg() == 2 {
		c.Vertex, c.Fragment = fs.Arg(0), fs.Arg(1)
	} else if fs.NArg() != 0 {
		return Config{}, fmt.Errorf("expected vertex and fragment paths, got %d arguments", fs.NArg())
	}

	return c, c.Validate()
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch {
	case c.Vertex == "":
		return errors.New("config: vertex path is empty")
	case c.Fragment == "":
		return errors.New("config: fragment path is empty")
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("config: invalid window size %dx%d", c.Width, c.Height)
	case c.Debounce < 0:
		return fmt.Errorf("config: negative debounce %s", time.Duration(c.Debounce))
	}
	if _, err := shader.ParsePolicy(c.Policy); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Duration is a time.Duration written as a string such as "250ms" in TOML.
type Duration time.Duration

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// FailurePolicy returns the parsed Policy. Call Validate first.
func (c Config) FailurePolicy() shader.FailurePolicy {
	p, _ := shader.ParsePolicy(c.Policy)
	return p
}
