// Package settings loads the studio settings file (TOML).
package settings

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// DefaultFile is looked up in the working directory when -config is not given.
const DefaultFile = "studio.toml"

// Settings holds everything the CLI can configure outside a composition file.
type Settings struct {
	// OutputDir receives exported PNGs.
	OutputDir string `toml:"output_dir"`
	// Theme is the persisted preference: "light", "dark" or empty for the system signal.
	Theme   string   `toml:"theme"`
	Product Products `toml:"product"`
	Log     Log      `toml:"log"`
	Preview Previews `toml:"preview"`
}

// Products are the first filename segment per composition kind.
type Products struct {
	Post   string `toml:"post"`
	Mockup string `toml:"mockup"`
}

type Log struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Previews describes the on-screen box each editor previews into.
type Previews struct {
	Post   Preview `toml:"post"`
	Mockup Preview `toml:"mockup"`
}

// Preview is a preview container. Zero Height means unbounded; Cap <= 0 means no cap.
type Preview struct {
	Width    float64 `toml:"width"`
	Height   float64 `toml:"height"`
	Padding  float64 `toml:"padding"`
	MaxWidth float64 `toml:"max_width"`
	Cap      float64 `toml:"cap"`
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		OutputDir: ".",
		Product:   Products{Post: "glid", Mockup: "mockup"},
		Log:       Log{Level: "info", Format: "text"},
		Preview: Previews{
			Post:   Preview{Width: 900, Padding: 40, MaxWidth: 500, Cap: 0.6},
			Mockup: Preview{Width: 500, Height: 500, Cap: 0.5},
		},
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (Settings, error) {
	s := Default()
	if path == "" {
		return s, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("read settings %s: %w", path, err)
	}
	if err := Decode(data, &s); err != nil {
		return Default(), fmt.Errorf("settings %s: %w", path, err)
	}
	return s, nil
}

// Decode unmarshals TOML into s, keeping fields the document leaves out.
func Decode(data []byte, s *Settings) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(s); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return fmt.Errorf("line %d column %d: %w", row, col, err)
		}
		return err
	}
	return s.Validate()
}

// Validate rejects values the studio cannot work with.
func (s Settings) Validate() error {
	switch s.Theme {
	case "", "light", "dark":
	default:
		return fmt.Errorf("theme must be light or dark, got %q", s.Theme)
	}
	if s.Product.Post == "" || s.Product.Mockup == "" {
		return errors.New("product names must not be empty")
	}
	for name, p := range map[string]Preview{"post": s.Preview.Post, "mockup": s.Preview.Mockup} {
		if p.Width <= 0 || p.Height < 0 || p.Padding < 0 || p.MaxWidth < 0 {
			return fmt.Errorf("preview.%s: sizes must be positive", name)
		}
	}
	return nil
}

// Bounds returns the usable preview box; unbounded sides are +Inf.
func (p Preview) Bounds() (w, h float64) {
	w, h = p.Width, p.Height
	if h <= 0 {
		h = math.Inf(1)
	}
	return w, h
}

// Save writes s as TOML, creating parent directories.
func Save(path string, s Settings) error {
	data, err := toml.Marshal(s)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}
