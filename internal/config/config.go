// Package config loads the optional tool configuration: logging, priors,
// scorer parameters and calibration overrides. Everything has a default;
// zero-config runs are fully supported.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	yaml "gopkg.in/yaml.v3"

	"testmorph/internal/formats"
	"testmorph/internal/history"
	"testmorph/internal/scoring"
)

// Logging holds the slog setup.
type Logging struct {
	Level  string `yaml:"level" json:"level"`   // debug, info, warn, error
	Format string `yaml:"format" json:"format"` // text or json
}

// Config is the full tool configuration.
type Config struct {
	Logging   Logging            `yaml:"logging" json:"logging"`
	HistoryDB string             `yaml:"history_db" json:"history_db"`
	Priors    map[string]float64 `yaml:"priors" json:"priors"`
	// Weights overrides built-in rule weights: format name -> field path
	// -> weight. Overrides may retune existing rules, not add new ones.
	Weights map[string]map[string]float64 `yaml:"weights" json:"weights"`
	// Beta and Calibration override the scorer defaults when present.
	Beta        *scoring.BetaParams  `yaml:"beta" json:"beta"`
	Calibration *scoring.Calibration `yaml:"calibration" json:"calibration"`
}

// Default returns the zero-config defaults.
func Default() Config {
	return Config{
		Logging:   Logging{Level: "info", Format: "text"},
		HistoryDB: history.DefaultDBPath,
	}
}

// LoadFromPath reads a config file (YAML or JSON) and merges it over the
// defaults. Format is detected by extension or content.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Load(data, filepath.Ext(path))
}

// Load parses config from bytes. ext is the file extension (e.g. ".json",
// ".yaml") as a format hint; empty = detect from content.
func Load(data []byte, ext string) (*Config, error) {
	c := Default()
	ext = strings.ToLower(ext)
	if ext == ".yml" {
		ext = ".yaml"
	}
	useJSON := ext == ".json"
	if ext == "" {
		useJSON = strings.HasPrefix(strings.TrimSpace(string(data)), "{")
	}
	if useJSON {
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("parse config json: %w", err)
		}
		return &c, nil
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse config yaml: %w", err)
	}
	return &c, nil
}

// BuildRegistry constructs the format registry with any configured weight
// overrides applied. Overrides naming unknown formats or paths fail here,
// at setup time, never per-document.
func (c *Config) BuildRegistry() (*formats.Registry, error) {
	defs := formats.DefaultDefs()
	for name, paths := range c.Weights {
		f := formats.SupportedFormat(name)
		idx := -1
		for i, def := range defs {
			if def.Format == f {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, fmt.Errorf("weight override for unknown format %q", name)
		}
		for path, w := range paths {
			found := false
			for i := range defs[idx].Rules {
				if defs[idx].Rules[i].Path == path {
					defs[idx].Rules[i].Weight = w
					found = true
					break
				}
			}
			if !found {
				return nil, fmt.Errorf("weight override for unknown rule %s.%s", name, path)
			}
		}
	}
	return formats.NewRegistry(defs)
}

// BuildScorer constructs the scorer described by the config. Invalid
// parameters fail here, at setup time, never per-document.
func (c *Config) BuildScorer() (*scoring.Scorer, error) {
	params := scoring.DefaultBetaParams()
	if c.Beta != nil {
		params = *c.Beta
	}
	cal := scoring.DefaultCalibration()
	if c.Calibration != nil {
		cal = *c.Calibration
	}
	var priors map[formats.SupportedFormat]float64
	if len(c.Priors) > 0 {
		priors = make(map[formats.SupportedFormat]float64, len(c.Priors))
		for name, p := range c.Priors {
			priors[formats.SupportedFormat(name)] = p
		}
	}
	return scoring.NewScorer(params, cal, priors)
}
