package reportplot

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the optional on-disk configuration for the reportplot CLI.
type Config struct {
	// GnuplotPath is the engine binary to launch.
	GnuplotPath string `yaml:"gnuplot_path"`
	// Terminal overrides the auto-detected standard terminal.
	Terminal string `yaml:"terminal"`
	// TempDir is the directory for staged data files.
	TempDir string `yaml:"temp_dir"`
}

// LoadConfig reads the YAML config at path. A missing file yields the
// zero config.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}
