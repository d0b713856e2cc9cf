// Package config loads render options from TOML or YAML files.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/ericlevine/zxingraster"
)

// ErrFormat is returned for files that are neither TOML nor YAML.
var ErrFormat = errors.New("config: unsupported file format")

// Format is a configuration file syntax.
type Format int

const (
	TOML Format = iota
	YAML
)

// Render holds render options. Zero values and nil pointers leave the
// symbol defaults in place.
type Render struct {
	Scale           float64 `toml:"scale" yaml:"scale"`
	Height          float64 `toml:"height" yaml:"height"`
	Whitespace      int     `toml:"whitespace" yaml:"whitespace"`
	VWhitespace     int     `toml:"vwhitespace" yaml:"vwhitespace"`
	Border          string  `toml:"border" yaml:"border"`
	BorderWidth     *int    `toml:"border_width" yaml:"border_width"`
	SeparatorHeight int     `toml:"separator_height" yaml:"separator_height"`
	ShowText        *bool   `toml:"show_text" yaml:"show_text"`
	Font            string  `toml:"font" yaml:"font"`
	Dotty           bool    `toml:"dotty" yaml:"dotty"`
	DotSize         float64 `toml:"dot_size" yaml:"dot_size"`
	Intermediate    bool    `toml:"intermediate" yaml:"intermediate"`
	Foreground      string  `toml:"foreground" yaml:"foreground"`
	Background      string  `toml:"background" yaml:"background"`

	// Rotate is applied by the caller when it renders.
	Rotate int `toml:"rotate" yaml:"rotate"`
}

// FormatFor picks the format from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return TOML, nil
	case ".yaml", ".yml":
		return YAML, nil
	default:
		return 0, fmt.Errorf("%s: %w", path, ErrFormat)
	}
}

// Load reads the file at path.
func Load(path string) (*Render, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	r, err := Decode(bytes.NewReader(data), format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	slog.Debug("loaded render config", "path", path, "format", format)
	return r, nil
}

// Decode reads options from r. Unknown keys are rejected.
func Decode(r io.Reader, format Format) (*Render, error) {
	cfg := &Render{}
	switch format {
	case TOML:
		dec := toml.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(cfg); err != nil {
			return nil, err
		}
	case YAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
	default:
		return nil, ErrFormat
	}
	return cfg, nil
}

// String returns the lower case name of the format.
func (f Format) String() string {
	if f == YAML {
		return "yaml"
	}
	return "toml"
}

// Apply copies the options onto s.
func (r *Render) Apply(s *zxingraster.Symbol) error {
	if r.Scale != 0 {
		s.Scale = r.Scale
	}
	if r.Height != 0 {
		s.Height = r.Height
	}
	s.WhitespaceWidth = r.Whitespace
	s.VWhitespaceWidth = r.VWhitespace
	s.SeparatorHeight = r.SeparatorHeight
	if r.BorderWidth != nil {
		s.BorderWidth = *r.BorderWidth
	}
	if r.ShowText != nil {
		s.ShowHRT = *r.ShowText
	}

	if r.Border != "" {
		flag, err := borderFlag(r.Border)
		if err != nil {
			return err
		}
		s.Output = s.Output&^(zxingraster.Bind|zxingraster.Box|zxingraster.BindTop) | flag
	}
	switch strings.ToLower(r.Font) {
	case "":
	case "normal":
		s.Output &^= zxingraster.BoldText | zxingraster.SmallText
	case "bold":
		s.Output = s.Output&^zxingraster.SmallText | zxingraster.BoldText
	case "small":
		s.Output = s.Output&^zxingraster.BoldText | zxingraster.SmallText
	default:
		return fmt.Errorf("font %q: %w", r.Font, zxingraster.ErrConfiguration)
	}

	if r.Dotty {
		s.Output |= zxingraster.DottyMode
	}
	if r.DotSize != 0 {
		s.DotSize = r.DotSize
	}
	if r.Intermediate {
		s.Output |= zxingraster.BufferIntermediate
	}
	if r.Foreground != "" {
		s.FgColour = r.Foreground
	}
	if r.Background != "" {
		s.BgColour = r.Background
	}
	return nil
}

func borderFlag(name string) (zxingraster.OutputOptions, error) {
	switch strings.ToLower(name) {
	case "none":
		return 0, nil
	case "bind":
		return zxingraster.Bind, nil
	case "box":
		return zxingraster.Box, nil
	case "bind-top", "bind_top":
		return zxingraster.BindTop, nil
	default:
		return 0, fmt.Errorf("border %q: %w", name, zxingraster.ErrConfiguration)
	}
}
