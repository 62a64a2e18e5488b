/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/

// Package config loads and saves the YAML configuration consumed by
// cmd/btreebench and cmd/ringbench.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the tunables shared by the bench CLIs.
type Config struct {
	BTree   BTreeConfig `yaml:"btree"`
	Ring    RingConfig  `yaml:"ring"`
	Logging Logging     `yaml:"logging"`
}

// BTreeConfig configures a pkg/btree.Tree built by the bench CLI.
type BTreeConfig struct {
	Min       int `yaml:"min"`
	MaxHeight int `yaml:"max_height"`
}

// RingConfig configures a pkg/ring.Ring built by the bench CLI.
type RingConfig struct {
	CapacityBytes uint32 `yaml:"capacity_bytes"`
	Mlock         bool   `yaml:"mlock"`
}

// Logging contains logging configuration.
type Logging struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the configuration used when no config file is
// supplied.
func DefaultConfig() *Config {
	return &Config{
		BTree: BTreeConfig{
			Min:       85,
			MaxHeight: 6,
		},
		Ring: RingConfig{
			CapacityBytes: 1 << 20,
			Mlock:         false,
		},
		Logging: Logging{
			Level: "info",
		},
	}
}

// LoadConfig loads configuration from the specified path.
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	if !filepath.IsAbs(configPath) {
		absPath, err := filepath.Abs(configPath)
		if err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		configPath = absPath
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveConfig saves the configuration to the specified path.
func SaveConfig(config *Config, configPath string) error {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GetDefaultConfigPath returns the default configuration path for the
// current platform.
func GetDefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./btreering.yaml"
	}

	configDir := filepath.Join(homeDir, ".config", "btreering")
	return filepath.Join(configDir, "config.yaml")
}

// ConfigExists checks if a configuration file exists.
func ConfigExists(configPath string) bool {
	_, err := os.Stat(configPath)
	return !os.IsNotExist(err)
}
