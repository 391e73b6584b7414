package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ServerConfig holds the static configuration of the fake server.
// Speed is accepted for command-line compatibility with the real
// service but is not consumed by any endpoint.
type ServerConfig struct {
	Host      string `yaml:"host"`
	Port      int    `yaml:"port"`
	ModelName string `yaml:"model_name"`
	MaxTokens int    `yaml:"max_tokens"`
	Speed     int    `yaml:"speed"`
}

// Default returns the configuration used when no file or flags are given
func Default() *ServerConfig {
	return &ServerConfig{
		Host:      "0.0.0.0",
		Port:      9000,
		ModelName: "fake_model_name",
		MaxTokens: 256,
		Speed:     100,
	}
}

// LoadConfig loads configuration from a YAML file. Fields missing
// from the file keep their default values.
func LoadConfig(path string) (*ServerConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Addr returns the host:port the server binds to
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
