// Package config loads the streamstats run configuration from a YAML file:
// the gauging stations to process, the common analysis window, and the
// output destinations.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

const dateLayout = "2006-01-02"

// Station identifies one gauging station and its raw daily-values file.
type Station struct {
	Name string `yaml:"name"`
	File string `yaml:"file"`
}

// Config is the complete run configuration.
type Config struct {
	Stations []Station `yaml:"stations"`
	Analysis struct {
		Start string `yaml:"start"`
		End   string `yaml:"end"`
	} `yaml:"analysis"`
	Output struct {
		Directory string `yaml:"directory"`
		Archive   string `yaml:"archive,omitempty"`
		Listen    string `yaml:"listen,omitempty"`
	} `yaml:"output"`

	// Parsed analysis window, populated by Load.
	StartDate time.Time `yaml:"-"`
	EndDate   time.Time `yaml:"-"`
}

// Load reads and validates a configuration file.
func Load(filename string) (*Config, error) {
	raw, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if len(cfg.Stations) == 0 {
		return nil, fmt.Errorf("no stations configured")
	}
	for i, station := range cfg.Stations {
		if station.Name == "" {
			return nil, fmt.Errorf("station %d has no name", i)
		}
		if station.File == "" {
			return nil, fmt.Errorf("station %q has no file", station.Name)
		}
	}

	cfg.StartDate, err = time.Parse(dateLayout, cfg.Analysis.Start)
	if err != nil {
		return nil, fmt.Errorf("bad analysis start date %q: %w", cfg.Analysis.Start, err)
	}
	cfg.EndDate, err = time.Parse(dateLayout, cfg.Analysis.End)
	if err != nil {
		return nil, fmt.Errorf("bad analysis end date %q: %w", cfg.Analysis.End, err)
	}
	if cfg.EndDate.Before(cfg.StartDate) {
		return nil, fmt.Errorf("analysis end date %s precedes start date %s",
			cfg.Analysis.End, cfg.Analysis.Start)
	}

	if cfg.Output.Directory == "" {
		cfg.Output.Directory = "."
	}

	return &cfg, nil
}
