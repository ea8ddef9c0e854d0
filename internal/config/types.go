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

// Package config types define the configuration structures used throughout
// sirseer-dash. These types represent settings that can be loaded from
// YAML configuration files, environment variables, or command-line flags.
package config

import "time"

// Config represents the complete configuration for sirseer-dash.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Identity IdentityConfig `yaml:"identity"`
	UI       UIConfig       `yaml:"ui"`
	Log      LogConfig      `yaml:"log"`
}

// ServerConfig locates the GraphQL backend.
type ServerConfig struct {
	// URL is the full GraphQL endpoint, e.g. http://localhost:8000/graphql.
	URL string `yaml:"url"`

	// Timeout bounds each exchange. Zero disables the timeout, in which case
	// a request that never completes stays pending until the history is cleared.
	Timeout time.Duration `yaml:"timeout"`
}

// IdentityConfig describes where the bearer token comes from. The token is
// optional; requests without one are sent unauthenticated.
type IdentityConfig struct {
	Token    string `yaml:"token"`
	TokenEnv string `yaml:"token_env"`
}

// UIConfig controls the terminal dashboard.
type UIConfig struct {
	// Style is the markdown style: auto, dark, light, notty or a JSON style path.
	Style    string `yaml:"style"`
	WordWrap int    `yaml:"word_wrap"`

	// Refresh reloads the issue and pull request lists periodically. Zero
	// disables periodic refresh.
	Refresh time.Duration `yaml:"refresh"`
}

// LogConfig controls logging. The TUI always logs to File.
type LogConfig struct {
	File  string `yaml:"file"`
	Debug bool   `yaml:"debug"`
}

// DefaultConfig returns a Config with sensible defaults for a backend
// running on the local machine.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			URL: "http://localhost:8000/graphql",
		},
		Identity: IdentityConfig{
			TokenEnv: "SIRSEER_DASH_TOKEN",
		},
		UI: UIConfig{
			Style:    "auto",
			WordWrap: 80,
		},
		Log: LogConfig{
			File: "~/.sirseer/dash.log",
		},
	}
}
