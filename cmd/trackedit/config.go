package main

import (
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

const (
	EngineGrid      = "grid"
	EngineQuantizer = "quantizer"
)

type Config struct {
	Quantize    string         `yaml:"quantize"`
	Engine      string         `yaml:"engine"`
	LogLevel    string         `yaml:"log_level"`
	Merge       bool           `yaml:"merge"`
	Names       map[int]string `yaml:"names"`
	Instruments map[int]string `yaml:"instruments"`
}

func DefaultConfig() Config {
	return Config{
		Engine:      EngineGrid,
		LogLevel:    "info",
		Names:       map[int]string{},
		Instruments: map[int]string{},
	}
}

// LoadConfig reads filename over the defaults. An empty filename only
// returns the defaults.
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()
	if filename == "" {
		return config, nil
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return config, err
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("config %s: %w", filename, err)
	}
	if config.Names == nil {
		config.Names = map[int]string{}
	}
	if config.Instruments == nil {
		config.Instruments = map[int]string{}
	}
	return config, nil
}

func (c Config) Level() (charmlog.Level, error) {
	return charmlog.ParseLevel(c.LogLevel)
}
