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
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sirseerhq/sirseer-dash/internal/conversation"
	dasherrors "github.com/sirseerhq/sirseer-dash/internal/errors"
	"github.com/sirseerhq/sirseer-dash/internal/github"
	"github.com/sirseerhq/sirseer-dash/internal/logger"
	"github.com/sirseerhq/sirseer-dash/internal/output"
	"github.com/sirseerhq/sirseer-dash/internal/render"
)

func newAskCommand(opts *rootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask one question about your repositories",
		Long: `Ask one question and print the answer rendered as markdown.

All arguments are joined into the question, so quoting is optional:
  sirseer-dash ask who reviews the web repo?

With --json the raw answer record is printed as a single NDJSON line.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAsk(cmd, opts, strings.Join(args, " "), asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the answer record as JSON")
	return cmd
}

// runAsk takes the question through the same store the dashboard uses, so a
// failed answer is formatted exactly as it would be on screen.
func runAsk(cmd *cobra.Command, opts *rootOptions, question string, asJSON bool) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}

	log := logger.NewLogger(cfg.Log.Debug, cmd.ErrOrStderr(), false)
	defer func() { _ = log.Sync() }()

	renderer := render.Plain
	if !asJSON {
		md, mdErr := render.NewMarkdown(cfg.UI.Style, cfg.UI.WordWrap)
		if mdErr != nil {
			return fmt.Errorf("failed to create markdown renderer: %w", mdErr)
		}
		renderer = md
	}

	store := conversation.NewStore(conversation.WithRenderer(renderer))
	id, ok := store.Submit(question)
	if !ok {
		return dasherrors.ErrEmptyQuestion
	}

	s := opts.newSession(cfg, log)
	answer, askErr := github.NewGraphQLClient(s.client).Ask(cmd.Context(), question)
	askErr = annotateAuth(askErr, s.client.Authenticated())

	outcome := conversation.Outcome{Err: askErr}
	if answer != nil {
		outcome.Answer = answer.Answer
	}
	store.Resolve(id, outcome)

	if askErr != nil {
		log.Debug("question failed", zap.Error(askErr))
		if turn, found := store.Turn(id); found && !asJSON {
			fmt.Fprintln(cmd.ErrOrStderr(), *turn.Answer)
		}
		return errors.Join(askErr, s.saveMetadata("ask", opts.metadataDir))
	}

	if asJSON {
		if err := output.NewWriter(cmd.OutOrStdout()).Write(answer); err != nil {
			return err
		}
	} else {
		turn, _ := store.Turn(id)
		fmt.Fprintln(cmd.OutOrStdout(), *turn.Answer)
	}

	return s.saveMetadata("ask", opts.metadataDir)
}
