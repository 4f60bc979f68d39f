package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/hupe1980/datgo/hierarchy"
)

//go:embed default_profile.toml
var defaultProfile []byte

// DedupMode selects how duplicates are found.
type DedupMode string

const (
	// DedupNone skips deduplication.
	DedupNone DedupMode = "none"
	// DedupFull compares every item by hash across the whole DAT.
	DedupFull DedupMode = "full"
	// DedupGame compares items within each machine only.
	DedupGame DedupMode = "game"
)

// Format is a profile file format.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// Profile describes the processing applied to each DAT.
type Profile struct {
	Name              string              `toml:"name" yaml:"name"`
	MergeType         hierarchy.MergeType `toml:"merge_type" yaml:"merge_type"`
	Filters           []string            `toml:"filters" yaml:"filters"`
	Dedup             DedupMode           `toml:"dedup" yaml:"dedup"`
	DedupKey          string              `toml:"dedup_key" yaml:"dedup_key"`
	DescriptionAsName bool                `toml:"description_as_name" yaml:"description_as_name"`
	StripSceneDates   bool                `toml:"strip_scene_dates" yaml:"strip_scene_dates"`
	OneRomPerGame     bool                `toml:"one_rom_per_game" yaml:"one_rom_per_game"`
	OneGamePerRegion  bool                `toml:"one_game_per_region" yaml:"one_game_per_region"`
	Regions           []string            `toml:"regions" yaml:"regions"`
	LowercaseKeys     bool                `toml:"lowercase_keys" yaml:"lowercase_keys"`
	NoRename          bool                `toml:"no_rename" yaml:"no_rename"`
	Compression       string              `toml:"compression" yaml:"compression"`
}

// Default returns the embedded default profile.
func Default() Profile {
	var p Profile
	if err := toml.Unmarshal(defaultProfile, &p); err != nil {
		panic(fmt.Sprintf("config: embedded default profile: %v", err))
	}
	return p
}

// FormatFor picks the format from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("config: unsupported profile extension %q", filepath.Ext(path))
	}
}

// Load reads, normalizes and validates the profile at path.
func Load(path string) (*Profile, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}

	p, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Parse decodes a profile over the defaults. Unknown keys are rejected.
func Parse(data []byte, format Format) (*Profile, error) {
	p := Default()

	switch format {
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&p); err != nil {
			return nil, fmt.Errorf("parse profile: %w", err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parse profile: %w", err)
		}
	default:
		return nil, fmt.Errorf("config: unsupported format %q", format)
	}

	p.normalize()

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Encode writes the profile in the given format.
func (p *Profile) Encode(w io.Writer, format Format) error {
	switch format {
	case FormatTOML:
		return toml.NewEncoder(w).Encode(p)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(p); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("config: unsupported format %q", format)
	}
}
