package resources

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"stage/assets"
)

// SourceType selects how a source is decoded.
type SourceType string

// TextureSource is a PNG or JPEG image loaded as a texture.
const TextureSource SourceType = "texture"

// ErrUnknownSource is returned for manifest entries of an unsupported type.
var ErrUnknownSource = errors.New("resources: unknown source type")

// Source is one manifest entry.
type Source struct {
	Name string     `yaml:"name"`
	Type SourceType `yaml:"type"`
	Path string     `yaml:"path"`
}

// Sources is the static manifest shipped with the embedded assets.
var Sources = mustParse(assets.Manifest)

type manifest struct {
	Sources []Source `yaml:"sources"`
}

// ParseSources decodes and validates a YAML manifest.
func ParseSources(b []byte) ([]Source, error) {
	var m manifest
	if err := yaml.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("resources: parse manifest: %w", err)
	}
	seen := make(map[string]bool, len(m.Sources))
	for i, s := range m.Sources {
		switch {
		case s.Name == "":
			return nil, fmt.Errorf("resources: source %d has no name", i)
		case seen[s.Name]:
			return nil, fmt.Errorf("resources: duplicate source %q", s.Name)
		case s.Path == "":
			return nil, fmt.Errorf("resources: source %q has no path", s.Name)
		case s.Type != TextureSource:
			return nil, fmt.Errorf("%w %q for %q", ErrUnknownSource, s.Type, s.Name)
		}
		seen[s.Name] = true
	}
	return m.Sources, nil
}

func mustParse(b []byte) []Source {
	s, err := ParseSources(b)
	if err != nil {
		panic(err)
	}
	return s
}
