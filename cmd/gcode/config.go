package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/PrintToPeer/gcode/analyze"
)

type Config struct {
	Addr    string `yaml:"addr"`
	DataDir string `yaml:"dataDir"`

	// Acceleration is the kinematic constant for duration estimates,
	// in mm/s².
	Acceleration float64 `yaml:"acceleration"`

	// FeedRate is assumed for moves before the stream sets one, in
	// mm/min.
	FeedRate float64 `yaml:"feedRate"`

	Serial struct {
		Port string `yaml:"port"`
		Baud int    `yaml:"baud"`
	} `yaml:"serial"`
}

func DefaultConfig() *Config {
	cfg := &Config{
		Addr:         ":9091",
		DataDir:      "./data",
		Acceleration: analyze.DefaultAcceleration,
		FeedRate:     analyze.DefaultFeedRate,
	}
	cfg.Serial.Port = "/dev/ttyUSB0"
	cfg.Serial.Baud = 115200
	return cfg
}

// LoadConfig reads the named YAML file over the defaults. An empty
// path returns the defaults unchanged.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		return nil, fmt.Errorf("parse config '%s': %w", path, err)
	}
	return cfg, nil
}
