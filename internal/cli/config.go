package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the optional YAML configuration file. Flags beat config values;
// config values beat annotation-derived ones.
type Config struct {
	// Output is the pass parameter: the output filename override.
	Output string `yaml:"output"`
	// Store is the path of the run-ledger database. Empty disables the
	// ledger.
	Store string `yaml:"store"`
}

// LoadConfig reads a YAML config file. A missing path returns an empty
// config rather than an error, so commands can treat the flag as optional.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return &Config{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := &Config{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}
