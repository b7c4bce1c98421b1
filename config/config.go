package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrConfig marks configuration failures: missing files or missing keys.
var ErrConfig = errors.New("config error")

// RunList is the top-level batch description.
type RunList struct {
	// RunPath lists the subdirectory names to process, in order.
	RunPath []string `yaml:"run_path"`
}

// RunConfig holds the parameters of one batch configuration.
// It is loaded once per run directory and never mutated afterwards.
type RunConfig struct {
	Name string `yaml:"-"`

	NumNodes  int     `yaml:"num_nodes"`
	Pct       float64 `yaml:"pct"`
	Degree    int     `yaml:"degree"`
	Lambda    float64 `yaml:"lambda"`
	Homophily bool    `yaml:"homophily"`
	Allies    bool    `yaml:"allies"`
	Runs      int     `yaml:"runs"`
	MaxTicks  int     `yaml:"max_ticks"`

	SupportDist string `yaml:"support_dist"`
	NetworkType string `yaml:"network_type"`

	Growth          string  `yaml:"growth"`
	RandomInfluence string  `yaml:"random_influence"`
	Response        string  `yaml:"response"`
	InfluenceWeight float64 `yaml:"influence_weight"`

	SampleFrac float64 `yaml:"sample_frac"`
	Midpoint   float64 `yaml:"midpoint"`
	Band       float64 `yaml:"band"`

	ModelPath      string `yaml:"model_path"`
	ArchiveMetrics bool   `yaml:"archive_metrics"`
	KeepRawResults bool   `yaml:"keep_raw_results"`

	Seed int64 `yaml:"seed"`
}

// DefaultRunConfig returns a config prefilled with defaults; the per-run
// file is unmarshalled on top of it.
func DefaultRunConfig() *RunConfig {
	return &RunConfig{
		Growth:          "linear",
		RandomInfluence: "none",
		Response:        "proportional",
		InfluenceWeight: 0.5,
		SampleFrac:      0.01,
		Midpoint:        0.5,
		Band:            0.05,
		ArchiveMetrics:  true,
	}
}

// requiredKeys must all be present in a per-run config file.
var requiredKeys = []string{
	"num_nodes", "pct", "degree", "lambda",
	"homophily", "allies", "runs", "max_ticks",
	"support_dist", "network_type",
}

// LoadRunList reads <baseDir>/runs.yaml and returns the ordered run names.
func LoadRunList(baseDir string) ([]string, error) {
	path := filepath.Join(baseDir, "runs.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read run list %s: %v", ErrConfig, path, err)
	}

	var list RunList
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("%w: parse run list %s: %v", ErrConfig, path, err)
	}
	if len(list.RunPath) == 0 {
		return nil, fmt.Errorf("%w: %s: missing key %q", ErrConfig, path, "run_path")
	}

	return list.RunPath, nil
}

// LoadRunConfig reads <baseDir>/<name>/config.yaml into a RunConfig.
func LoadRunConfig(baseDir string, name string) (*RunConfig, error) {
	path := filepath.Join(baseDir, name, "config.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read config %s: %v", ErrConfig, path, err)
	}

	// check required keys before filling in defaults, so an absent key is
	// reported instead of silently defaulted
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: parse config %s: %v", ErrConfig, path, err)
	}
	for _, key := range requiredKeys {
		if _, ok := raw[key]; !ok {
			return nil, fmt.Errorf("%w: %s: missing key %q", ErrConfig, path, key)
		}
	}

	cfg := DefaultRunConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: parse config %s: %v", ErrConfig, path, err)
	}
	cfg.Name = name

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks numeric ranges. Selector strings (support_dist,
// network_type, behavior functions) are checked against their registries by
// the caller that resolves them.
func (c *RunConfig) Validate() error {
	switch {
	case c.NumNodes <= 0:
		return fmt.Errorf("%w: %s: num_nodes must be positive", ErrConfig, c.Name)
	case c.Pct < 0 || c.Pct > 100:
		return fmt.Errorf("%w: %s: pct must be within 0-100", ErrConfig, c.Name)
	case c.Degree <= 0:
		return fmt.Errorf("%w: %s: degree must be positive", ErrConfig, c.Name)
	case c.Runs <= 0:
		return fmt.Errorf("%w: %s: runs must be positive", ErrConfig, c.Name)
	case c.MaxTicks <= 0:
		return fmt.Errorf("%w: %s: max_ticks must be positive", ErrConfig, c.Name)
	case c.SampleFrac <= 0 || c.SampleFrac > 1:
		return fmt.Errorf("%w: %s: sample_frac must be within (0,1]", ErrConfig, c.Name)
	}
	return nil
}

// MinorityCount derives the number of minority-identity nodes.
func (c *RunConfig) MinorityCount() int {
	return int(math.Floor(c.Pct / 100 * float64(c.NumNodes)))
}

// AllyOnset derives the tick at which non-minority support becomes active.
// With allies disabled the onset lands past the end of the simulation.
func (c *RunConfig) AllyOnset() int {
	if c.Allies {
		return 0
	}
	return c.MaxTicks
}

// MinorityOnset is the tick at which minority support becomes active.
func (c *RunConfig) MinorityOnset() int {
	return 0
}

// Dir returns the run directory holding config, network files and artifacts.
func (c *RunConfig) Dir(baseDir string) string {
	return filepath.Join(baseDir, c.Name)
}
