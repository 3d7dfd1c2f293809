package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config maps to the config.toml file for the monitor service
type Config struct {
	PollIntervalInSeconds     uint32 `toml:"PollIntervalInSeconds"`
	SensorMaxRetries          int    `toml:"SensorMaxRetries"`
	SensorRetryDelayInSeconds uint32 `toml:"SensorRetryDelayInSeconds"`
	AlertCooldownInSeconds    uint32 `toml:"AlertCooldownInSeconds"`
	NotifyTimeoutInSeconds    uint32 `toml:"NotifyTimeoutInSeconds"`
	SettingsFile              string `toml:"SettingsFile"`
	DataFile                  string `toml:"DataFile"`
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
