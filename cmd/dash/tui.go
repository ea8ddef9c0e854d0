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
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sirseerhq/sirseer-dash/internal/logger"
	"github.com/sirseerhq/sirseer-dash/internal/render"
	"github.com/sirseerhq/sirseer-dash/internal/tui"
)

func newTUICommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive dashboard (default)",
		Long: `Open the interactive dashboard with tabs for pull requests, issues
and Q&A. Logs go to log.file (default ~/.sirseer/dash.log) because the
dashboard owns the terminal.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts)
		},
	}
}

func runTUI(cmd *cobra.Command, opts *rootOptions) (err error) {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}

	log, closeLog, err := logger.NewFileLogger(cfg.Log.Debug, cfg.Log.File)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, closeLog())
	}()

	renderer, err := render.NewMarkdown(cfg.UI.Style, cfg.UI.WordWrap)
	if err != nil {
		return fmt.Errorf("failed to create markdown renderer: %w", err)
	}

	s := opts.newSession(cfg, log)
	log.Info("dashboard started", zap.String("endpoint", s.transport.Endpoint()))

	if err := tui.Run(cmd.Context(), tui.Options{
		Client:   s.client,
		Renderer: renderer,
		Logger:   log,
		Tracker:  s.tracker,
		Refresh:  cfg.UI.Refresh,
	}); err != nil {
		return fmt.Errorf("dashboard failed: %w", err)
	}

	dispatches, failures := s.tracker.Totals()
	log.Info("dashboard closed", zap.Int("dispatches", dispatches), zap.Int("failures", failures))
	return s.saveMetadata("tui", opts.metadataDir)
}
