package xcor

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config carries file-based defaults for run options. Zero values mean
// "not set"; explicit command-line flags always win over the file.
type Config struct {
	LagWindowMS int    `yaml:"lag_window_ms"`
	Format      string `yaml:"format"`
}

// LoadConfig reads a YAML defaults file.
func LoadConfig(path string) (*Config, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "can't open config")
	}

	config := &Config{}
	if err := yaml.Unmarshal(contents, config); err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}

	return config, nil
}
