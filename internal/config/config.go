package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"motion-world/world"
)

// Config is the root of the YAML configuration
type Config struct {
	Generator GeneratorConfig `yaml:"generator"`
	Query     QueryConfig     `yaml:"query"`
	Server    ServerConfig    `yaml:"server"`
}

type QueryConfig struct {
	CollisionResolution float64 `yaml:"collision_resolution"`
	Margin              float64 `yaml:"margin"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// GetAddr returns the listen address: config, then $WORLD_ADDR, then :8080
func (s *ServerConfig) GetAddr() string {
	if s.Addr != "" {
		return s.Addr
	}
	if env := os.Getenv("WORLD_ADDR"); env != "" {
		return env
	}
	return ":8080"
}

// Resolution returns the collision sampling resolution, falling back to the default
func (q *QueryConfig) Resolution() float64 {
	if q.CollisionResolution > 0 {
		return q.CollisionResolution
	}
	return world.CollisionResolution
}

// Default is the configuration used when no file is given
func Default() *Config {
	return &Config{
		Generator: DefaultGenerator(),
		Query:     QueryConfig{CollisionResolution: world.CollisionResolution},
	}
}

// Load reads a YAML configuration file on top of Default.
// An empty path falls back to $WORLD_CONFIG; with neither, Default is returned.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("WORLD_CONFIG")
		if path == "" {
			return Default(), nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
