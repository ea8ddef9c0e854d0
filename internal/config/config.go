// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config provides configuration management for sirseer-dash with
// support for multiple configuration sources and a well-defined precedence
// order.
//
// Configuration sources (in precedence order, highest to lowest):
//  1. Command-line flags
//  2. Environment variables (a .env file in the working directory is loaded
//     into the environment first)
//  3. Configuration file
//  4. Built-in defaults
//
// The bearer token follows the same order: --token, then the variable named
// by identity.token_env, then identity.token.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from multiple sources and applies them in
// the correct precedence order. If configPath is provided, it loads from
// that specific file. Otherwise, it searches standard locations:
//   - .sirseer-dash.yaml (current directory)
//   - .sirseer-dash.yml (current directory)
//   - ~/.sirseer/dash.yaml
//   - ~/.sirseer/dash.yml
//
// Returns an error if the specified config file cannot be loaded, but will
// succeed with defaults if no config file is found in standard locations.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if err := loadConfigFile(configPath, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	} else {
		defaultPaths := []string{
			".sirseer-dash.yaml",
			".sirseer-dash.yml",
			filepath.Join(os.Getenv("HOME"), ".sirseer", "dash.yaml"),
			filepath.Join(os.Getenv("HOME"), ".sirseer", "dash.yml"),
		}

		for _, path := range defaultPaths {
			if _, err := os.Stat(path); err == nil {
				if err := loadConfigFile(path, cfg); err != nil {
					return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
				}
				break
			}
		}
	}

	applyEnvOverrides(cfg)

	cfg.Log.File = expandPath(cfg.Log.File)

	return cfg, nil
}

// loadConfigFile reads and parses a YAML config file
func loadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(cfg *Config) {
	if u := os.Getenv("SIRSEER_DASH_URL"); u != "" {
		cfg.Server.URL = u
	}
	if timeout := os.Getenv("SIRSEER_DASH_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d >= 0 {
			cfg.Server.Timeout = d
		}
	}

	if style := os.Getenv("SIRSEER_DASH_STYLE"); style != "" {
		cfg.UI.Style = style
	}
	if wrap := os.Getenv("SIRSEER_DASH_WORD_WRAP"); wrap != "" {
		if n, err := parsePositiveInt(wrap); err == nil {
			cfg.UI.WordWrap = n
		}
	}

	if logFile := os.Getenv("SIRSEER_DASH_LOG_FILE"); logFile != "" {
		cfg.Log.File = logFile
	}
	if debug := os.Getenv("SIRSEER_DASH_DEBUG"); debug != "" {
		cfg.Log.Debug = parseBool(debug)
	}
}

// expandPath expands ~ and environment variables in paths
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home := os.Getenv("HOME")
		if home == "" {
			home = os.Getenv("USERPROFILE") // Windows
		}
		path = filepath.Join(home, path[2:])
	}
	return os.ExpandEnv(path)
}

// parsePositiveInt parses a string to a positive integer
func parsePositiveInt(s string) (int, error) {
	var i int
	_, err := fmt.Sscanf(s, "%d", &i)
	if err != nil {
		return 0, fmt.Errorf("failed to parse integer from '%s': %w", s, err)
	}
	if i <= 0 {
		return 0, fmt.Errorf("value must be positive, got: %d", i)
	}
	return i, nil
}

// parseBool parses various boolean representations
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "yes" || s == "1" || s == "on"
}

// ResolveToken returns the bearer token to use. flagToken wins, then the
// environment variable named by identity.token_env, then identity.token.
// An empty result means requests are sent unauthenticated.
func (c *Config) ResolveToken(flagToken string) string {
	if flagToken != "" {
		return flagToken
	}
	if c.Identity.TokenEnv != "" {
		if token := os.Getenv(c.Identity.TokenEnv); token != "" {
			return token
		}
	}
	return c.Identity.Token
}

// Validate checks if the configuration contains valid values. This should
// be called after loading configuration and applying flags to catch invalid
// settings early.
func (c *Config) Validate() error {
	if c.Server.URL == "" {
		return fmt.Errorf("server URL cannot be empty")
	}
	u, err := url.Parse(c.Server.URL)
	if err != nil {
		return fmt.Errorf("invalid server URL %q: %w", c.Server.URL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("server URL must use http or https, got: %q", c.Server.URL)
	}
	if u.Host == "" {
		return fmt.Errorf("server URL has no host: %q", c.Server.URL)
	}
	if c.Server.Timeout < 0 {
		return fmt.Errorf("server timeout cannot be negative, got: %s", c.Server.Timeout)
	}
	if c.UI.WordWrap <= 0 {
		return fmt.Errorf("word wrap must be positive, got: %d", c.UI.WordWrap)
	}
	if c.UI.Refresh < 0 {
		return fmt.Errorf("refresh interval cannot be negative, got: %s", c.UI.Refresh)
	}
	return nil
}
