package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/tsawler/librarian/annotate"
	"github.com/tsawler/librarian/fragments"
	"github.com/tsawler/librarian/transform"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// Config holds the settings read from librarian.yaml.
type Config struct {
	LogLevel         string            `yaml:"log_level"`
	LogFormat        string            `yaml:"log_format"`
	Stylesheets      map[string]string `yaml:"stylesheets,omitempty"`
	StylesheetDir    string            `yaml:"stylesheet_dir,omitempty"`
	Stylesheet       string            `yaml:"stylesheet,omitempty"`
	TOCTitle         string            `yaml:"toc_title"`
	AnchorExclusions []string          `yaml:"anchor_exclusions,omitempty"`
	ContainerID      string            `yaml:"container_id,omitempty"`
	Indent           int               `yaml:"indent"`
}

const ConfigFileName = "librarian.yaml"

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		LogLevel:         "warn",
		LogFormat:        "console",
		Stylesheets:      transform.DefaultStylesheets(),
		Stylesheet:       transform.Legacy,
		TOCTitle:         annotate.DefaultTOCTitle,
		AnchorExclusions: append([]string(nil), annotate.DefaultExclusions...),
		ContainerID:      fragments.DefaultContainerID,
		Indent:           2,
	}
}

// Load reads ConfigFileName from dir. Keys missing from the file keep their
// Default values.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads a config file at an explicit path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks enumerated values.
func (c *Config) Validate() error {
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("invalid log_format %q: must be console or json", c.LogFormat)
	}
	if _, ok := c.Stylesheets[c.Stylesheet]; !ok {
		return fmt.Errorf("stylesheet %q is not listed under stylesheets", c.Stylesheet)
	}
	return nil
}
