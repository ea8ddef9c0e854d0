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
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sirseerhq/sirseer-dash/internal/github"
	"github.com/sirseerhq/sirseer-dash/internal/logger"
	"github.com/sirseerhq/sirseer-dash/internal/output"
)

// listKind describes one of the list subcommands.
type listKind[T any] struct {
	use   string
	short string
	noun  string
	fetch func(ctx context.Context, c github.Client) ([]T, error)
}

var (
	issuesKind = listKind[github.Issue]{
		use:   "issues",
		short: "Print the open issues as NDJSON",
		noun:  "issues",
		fetch: func(ctx context.Context, c github.Client) ([]github.Issue, error) {
			return c.FetchIssues(ctx)
		},
	}
	pullsKind = listKind[github.PullRequest]{
		use:   "pulls",
		short: "Print the open pull requests as NDJSON",
		noun:  "pull requests",
		fetch: func(ctx context.Context, c github.Client) ([]github.PullRequest, error) {
			return c.FetchPullRequests(ctx)
		},
	}
)

func newIssuesCommand(opts *rootOptions) *cobra.Command {
	return newListCommand(opts, issuesKind)
}

func newPullsCommand(opts *rootOptions) *cobra.Command {
	return newListCommand(opts, pullsKind)
}

func newListCommand[T any](opts *rootOptions, kind listKind[T]) *cobra.Command {
	var outputFile string

	cmd := &cobra.Command{
		Use:   kind.use,
		Short: kind.short,
		Long: fmt.Sprintf(`%s.

Each record is written on its own line to stdout, or to the file given
with --output. Progress and errors go to stderr.`, kind.short),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, opts, kind, outputFile)
		},
	}

	cmd.Flags().StringVar(&outputFile, "output", "", "Output file path (default: stdout)")
	return cmd
}

func runList[T any](cmd *cobra.Command, opts *rootOptions, kind listKind[T], outputFile string) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}

	log := logger.NewLogger(cfg.Log.Debug, cmd.ErrOrStderr(), false)
	defer func() { _ = log.Sync() }()

	var writer output.OutputWriter
	if outputFile == "" {
		writer = output.NewWriter(cmd.OutOrStdout())
	} else {
		fileWriter, fErr := output.NewFileWriter(outputFile)
		if fErr != nil {
			return fErr
		}
		writer = fileWriter
	}
	defer writer.Close()

	s := opts.newSession(cfg, log)
	client := github.NewGraphQLClient(s.client)

	items, err := kind.fetch(cmd.Context(), client)
	if err != nil {
		err = annotateAuth(err, s.client.Authenticated())
		return errors.Join(err, s.saveMetadata(kind.use, opts.metadataDir))
	}

	n, err := output.WriteAll(writer, items)
	if err != nil {
		return err
	}
	log.Info("fetched "+kind.noun, zap.Int("count", n))

	return s.saveMetadata(kind.use, opts.metadataDir)
}
