// Package config handles the two configuration surfaces: the YAML app
// config controlling runtime behavior (output directory, logging,
// timeouts) and the JSON user defaults document holding per-pipeline
// input defaults.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/harrison/advisor/internal/llm"
)

// AppConfig represents runtime configuration options.
type AppConfig struct {
	// OutputDir is where reports and archives are written
	OutputDir string `yaml:"output_dir"`

	// LogLevel sets the logging verbosity (debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// Timeout is the maximum wall time for one pipeline run
	Timeout time.Duration `yaml:"timeout"`

	// HistoryDB is the path to the run history database
	HistoryDB string `yaml:"history_db"`

	// ChatDeployment overrides the model deployment used for chat calls
	ChatDeployment string `yaml:"chat_deployment"`
}

// DefaultAppConfig returns an AppConfig with sensible default values.
func DefaultAppConfig() *AppConfig {
	return &AppConfig{
		OutputDir:      "outputs",
		LogLevel:       "info",
		Timeout:        15 * time.Minute,
		HistoryDB:      "outputs/history.db",
		ChatDeployment: llm.ChatDeployment,
	}
}

// LoadAppConfig loads configuration from the specified file path.
// A missing file returns the defaults without error; a malformed file
// is an error. Values present in the file override defaults
// field-by-field.
func LoadAppConfig(path string) (*AppConfig, error) {
	cfg := DefaultAppConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Temporary struct so the timeout can be written as "5m".
	type yamlConfig struct {
		OutputDir      string `yaml:"output_dir"`
		LogLevel       string `yaml:"log_level"`
		Timeout        string `yaml:"timeout"`
		HistoryDB      string `yaml:"history_db"`
		ChatDeployment string `yaml:"chat_deployment"`
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if yamlCfg.OutputDir != "" {
		cfg.OutputDir = yamlCfg.OutputDir
	}
	if yamlCfg.LogLevel != "" {
		cfg.LogLevel = yamlCfg.LogLevel
	}
	if yamlCfg.Timeout != "" {
		timeout, err := time.ParseDuration(yamlCfg.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid timeout format %q: %w", yamlCfg.Timeout, err)
		}
		cfg.Timeout = timeout
	}
	if yamlCfg.HistoryDB != "" {
		cfg.HistoryDB = yamlCfg.HistoryDB
	}
	if yamlCfg.ChatDeployment != "" {
		cfg.ChatDeployment = yamlCfg.ChatDeployment
	}

	return cfg, nil
}
