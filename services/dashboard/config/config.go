package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config maps to the config.toml file for the dashboard service
type Config struct {
	ListenAddress               string `toml:"ListenAddress"`
	StaticDir                   string `toml:"StaticDir"`
	SettingsFile                string `toml:"SettingsFile"`
	DataFile                    string `toml:"DataFile"`
	SensorMaxRetries            int    `toml:"SensorMaxRetries"`
	SensorRetryDelayInSeconds   uint32 `toml:"SensorRetryDelayInSeconds"`
	CurrentReadTimeoutInSeconds uint32 `toml:"CurrentReadTimeoutInSeconds"`
}

// LoadConfig parses a TOML file into the Config struct
func LoadConfig(filepath string) (*Config, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", filepath, err)
	}

	var cfg Config
	err = toml.Unmarshal(data, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}

	return &cfg, nil
}
