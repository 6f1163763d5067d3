package routecfg

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Source loads raw configuration bytes from somewhere.
type Source interface {
	// Fetch returns the raw configuration document.
	Fetch(ctx context.Context) ([]byte, error)

	// Describe identifies the source for logs and error messages.
	Describe() string
}

// FileSource loads configuration from a local file.
type FileSource struct {
	Path string
}

// Fetch reads the file.
func (s FileSource) Fetch(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("read route config: %w", err)
	}
	return data, nil
}

// Describe identifies the file path.
func (s FileSource) Describe() string {
	return "file:" + s.Path
}

// Parse decodes a YAML (or JSON, which YAML subsumes) configuration
// document. Parse does not validate; call Validate on the result.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse route config: %w", err)
	}
	return &cfg, nil
}

// Load reads and parses a configuration file from disk.
func Load(path string) (*Config, error) {
	return FromSource(context.Background(), FileSource{Path: path})
}

// FromSource fetches and parses a configuration from a Source.
func FromSource(ctx context.Context, src Source) (*Config, error) {
	data, err := src.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", src.Describe(), err)
	}
	return cfg, nil
}
