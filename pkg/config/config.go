// Copyright (c) 2025 Sudo-Ivan
// Licensed under the MIT License

// Package config loads CLI configuration from a YAML file, a .env file and
// environment variables, in that order of precedence (later wins).
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config carries the settings shared by the export and upload commands.
//
// The API endpoint is deliberately configuration-only: upload operations
// take it as input and never assume a default destination.
type Config struct {
	APIEndpoint    string `yaml:"api_endpoint"`
	OutputDir      string `yaml:"output_dir"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	Ogr2ogrPath    string `yaml:"ogr2ogr_path"`
}

// DefaultTimeoutSeconds is used when no timeout is configured.
const DefaultTimeoutSeconds = 30

// Load reads configuration from path (ignored when empty or missing), then
// applies environment overrides. A .env file in the working directory is
// loaded first so it can supply those variables.
func Load(path string) (Config, error) {
	// Missing .env is fine; explicit config errors are not.
	_ = godotenv.Load()

	cfg := Config{
		OutputDir:      ".",
		TimeoutSeconds: DefaultTimeoutSeconds,
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return cfg, fmt.Errorf("failed to read config file %s: %v", path, err)
			}
		} else if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config file %s: %v", path, err)
		}
	}

	envOverride(&cfg.APIEndpoint, "QLU_API_ENDPOINT")
	envOverride(&cfg.OutputDir, "QLU_OUTPUT_DIR")
	envOverride(&cfg.Ogr2ogrPath, "QLU_OGR2OGR_PATH")
	if err := envOverrideInt(&cfg.TimeoutSeconds, "QLU_TIMEOUT_SECONDS"); err != nil {
		return cfg, err
	}

	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = DefaultTimeoutSeconds
	}
	return cfg, nil
}

func envOverride(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func envOverrideInt(dst *int, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s value %q: %v", key, v, err)
	}
	*dst = n
	return nil
}
