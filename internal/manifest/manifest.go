// Package manifest loads gallery manifests: the item list plus optional
// engine settings, written as TOML or YAML.
//
//	title = "Holiday"
//
//	[options]
//	bend = 120
//	text_color = "#ffcc00"
//
//	[[items]]
//	image = "img/bridge.jpg"
//	caption = "Bridge"
package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/phanxgames/arcgallery"
)

var (
	// ErrNoItems is returned for manifests without any items.
	ErrNoItems = errors.New("manifest has no items")
	// ErrUnsupportedFormat is returned for unknown file extensions.
	ErrUnsupportedFormat = errors.New("unsupported manifest format")
)

// Format is a manifest encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// Manifest is a decoded gallery manifest.
type Manifest struct {
	Title   string            `toml:"title" yaml:"title"`
	Options Options           `toml:"options" yaml:"options"`
	Items   []arcgallery.Item `toml:"items" yaml:"items"`

	// Dir is the directory the manifest was loaded from. Relative image
	// paths resolve against it. Empty for Parse.
	Dir string `toml:"-" yaml:"-"`
}

// Options overrides engine settings. Nil fields keep the base config value.
type Options struct {
	Bend         *float64 `toml:"bend" yaml:"bend"`
	ScrollSpeed  *float64 `toml:"scroll_speed" yaml:"scroll_speed"`
	ScrollEase   *float64 `toml:"scroll_ease" yaml:"scroll_ease"`
	CornerRadius *float64 `toml:"corner_radius" yaml:"corner_radius"`
	// TextColor is "#rrggbb" or "#rrggbbaa".
	TextColor string `toml:"text_color" yaml:"text_color"`
}

// FormatOf picks the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Load reads, parses and validates the manifest at path.
func Load(path string) (*Manifest, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	m, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	m.Dir = filepath.Dir(path)
	return m, nil
}

// Parse decodes and validates manifest data. Unknown keys are errors.
func Parse(data []byte, format Format) (*Manifest, error) {
	var m Manifest
	switch format {
	case FormatTOML:
		md, err := toml.Decode(string(data), &m)
		if err != nil {
			return nil, fmt.Errorf("failed to parse manifest: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("failed to parse manifest: unknown key %q", undecoded[0].String())
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&m); err != nil {
			return nil, fmt.Errorf("failed to parse manifest: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks that the manifest has items, that every item names an
// image and that the text color parses.
func (m *Manifest) Validate() error {
	if len(m.Items) == 0 {
		return ErrNoItems
	}
	for i, it := range m.Items {
		if strings.TrimSpace(it.Image) == "" {
			return fmt.Errorf("item %d: missing image", i)
		}
	}
	if m.Options.TextColor != "" {
		if _, err := ParseColor(m.Options.TextColor); err != nil {
			return fmt.Errorf("options: %w", err)
		}
	}
	return nil
}

// Config applies the manifest options on top of base.
func (m *Manifest) Config(base arcgallery.Config) (arcgallery.Config, error) {
	o := m.Options
	if o.Bend != nil {
		base.Bend = *o.Bend
	}
	if o.ScrollSpeed != nil {
		base.ScrollSpeed = *o.ScrollSpeed
	}
	if o.ScrollEase != nil {
		base.ScrollEase = *o.ScrollEase
	}
	if o.CornerRadius != nil {
		base.CornerRadius = *o.CornerRadius
	}
	if o.TextColor != "" {
		c, err := ParseColor(o.TextColor)
		if err != nil {
			return base, fmt.Errorf("options: %w", err)
		}
		base.TextColor = c
	}
	return base, nil
}

// ParseColor parses "#rrggbb" or "#rrggbbaa".
func ParseColor(s string) (arcgallery.Color, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return arcgallery.Color{}, fmt.Errorf("invalid color %q", s)
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return arcgallery.Color{}, fmt.Errorf("invalid color %q", s)
	}
	return arcgallery.Color{
		R: float64(v>>24&0xff) / 255,
		G: float64(v>>16&0xff) / 255,
		B: float64(v>>8&0xff) / 255,
		A: float64(v&0xff) / 255,
	}, nil
}
