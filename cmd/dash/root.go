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

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sirseerhq/sirseer-dash/internal/config"
	"github.com/sirseerhq/sirseer-dash/internal/dispatch"
	"github.com/sirseerhq/sirseer-dash/internal/metadata"
	"github.com/sirseerhq/sirseer-dash/pkg/version"
)

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	configPath  string
	token       string
	url         string
	debug       bool
	metadataDir string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "sirseer-dash",
		Short: "Terminal dashboard for pull requests, issues and repository Q&A",
		Long: `SirSeer Dash shows the open pull requests and issues tracked by a
GraphQL backend and lets you ask questions about your repositories.

Run without a subcommand to open the interactive dashboard. The issues,
pulls and ask subcommands perform a single query for use in scripts.`,
		Version:       version.Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true, // Don't show usage on error
		SilenceErrors: true, // main prints the error and picks the exit code
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "Config file (default: .sirseer-dash.yaml or ~/.sirseer/dash.yaml)")
	flags.StringVar(&opts.token, "token", "", "Bearer token (overrides SIRSEER_DASH_TOKEN env var)")
	flags.StringVar(&opts.url, "url", "", "GraphQL endpoint URL (overrides server.url)")
	flags.BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	flags.StringVar(&opts.metadataDir, "metadata-dir", "", "Write run metadata JSON to this directory")

	rootCmd.AddCommand(
		newTUICommand(opts),
		newIssuesCommand(opts),
		newPullsCommand(opts),
		newAskCommand(opts),
	)
	return rootCmd
}

// loadConfig applies flags on top of the file and environment settings.
func (o *rootOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(o.configPath)
	if err != nil {
		return nil, err
	}

	if o.url != "" {
		cfg.Server.URL = o.url
	}
	if o.debug {
		cfg.Log.Debug = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// session is everything one command invocation dispatches through.
type session struct {
	cfg       *config.Config
	transport *dispatch.HTTPTransport
	client    *dispatch.Client
	tracker   *metadata.Tracker
	logger    *zap.Logger
}

func (o *rootOptions) newSession(cfg *config.Config, logger *zap.Logger) *session {
	transport := dispatch.NewHTTPTransport(cfg.Server.URL, dispatch.WithTimeout(cfg.Server.Timeout))
	tracker := metadata.New()
	client := dispatch.NewClient(transport,
		dispatch.WithCredential(cfg.ResolveToken(o.token)),
		dispatch.WithLogger(logger),
		dispatch.WithTracker(tracker),
	)

	logger.Debug("session configured",
		zap.String("endpoint", transport.Endpoint()),
		zap.Bool("authenticated", client.Authenticated()),
		zap.Duration("timeout", cfg.Server.Timeout))

	return &session{
		cfg:       cfg,
		transport: transport,
		client:    client,
		tracker:   tracker,
		logger:    logger,
	}
}

// saveMetadata writes the run record when --metadata-dir is set.
func (s *session) saveMetadata(command, dir string) error {
	if dir == "" {
		return nil
	}

	meta := s.tracker.GenerateMetadata(version.Version, command, s.transport.Endpoint())
	path, err := metadata.SaveMetadata(meta, dir)
	if err != nil {
		return fmt.Errorf("failed to save run metadata: %w", err)
	}
	s.logger.Debug("run metadata saved", zap.String("path", path))
	return nil
}
