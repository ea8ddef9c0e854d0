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

package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/sirseerhq/sirseer-dash/internal/dispatch"
	"github.com/sirseerhq/sirseer-dash/internal/github"
)

// ---------------------------------------------------------------------------
// Bubble Tea messages
// ---------------------------------------------------------------------------

type issuesLoadedMsg struct {
	issues []github.Issue
}

type pullsLoadedMsg struct {
	pulls []github.PullRequest
}

// listFailedMsg reports a failed issues or pull requests dispatch. The list
// it was meant to replace is left as is.
type listFailedMsg struct {
	query string
	err   error
}

// answerMsg carries the outcome of a Q&A dispatch back to the turn that
// asked it.
type answerMsg struct {
	id     uuid.UUID
	answer github.Answer
	err    error
}

type refreshMsg struct{}

// ---------------------------------------------------------------------------
// Commands
// ---------------------------------------------------------------------------

// dispatchCmd performs the synchronous half of a dispatch immediately. When
// the request cannot be built the failure message is returned without
// scheduling any network work.
func dispatchCmd[V, P any](ctx context.Context, c *dispatch.Client, q dispatch.Query[V, P], vars V, h dispatch.Handler[P, tea.Msg]) tea.Cmd {
	call, err := dispatch.Prepare(c, q, vars, h)
	if err != nil {
		msg := h.Failure(err)
		return func() tea.Msg { return msg }
	}
	return func() tea.Msg {
		return call(ctx)
	}
}

func listFailure(query string) func(error) tea.Msg {
	return func(err error) tea.Msg {
		return listFailedMsg{query: query, err: err}
	}
}

func loadIssuesCmd(ctx context.Context, c *dispatch.Client) tea.Cmd {
	return dispatchCmd(ctx, c, github.IssuesQuery, github.NoVariables{}, dispatch.Handler[github.IssuesPayload, tea.Msg]{
		Success: func(p github.IssuesPayload) tea.Msg { return issuesLoadedMsg{issues: p.Items()} },
		Failure: listFailure(github.IssuesQuery.Name),
	})
}

func loadPullsCmd(ctx context.Context, c *dispatch.Client) tea.Cmd {
	return dispatchCmd(ctx, c, github.PullRequestsQuery, github.NoVariables{}, dispatch.Handler[github.PullRequestsPayload, tea.Msg]{
		Success: func(p github.PullRequestsPayload) tea.Msg { return pullsLoadedMsg{pulls: p.Items()} },
		Failure: listFailure(github.PullRequestsQuery.Name),
	})
}

// askCmd dispatches one question. Only the turn ID travels with the
// dispatch; the store is never touched outside Update.
func askCmd(ctx context.Context, c *dispatch.Client, id uuid.UUID, question string) tea.Cmd {
	return dispatchCmd(ctx, c, github.QAQuery, github.Ask(question), dispatch.Handler[github.QAPayload, tea.Msg]{
		Success: func(p github.QAPayload) tea.Msg { return answerMsg{id: id, answer: p.Answer()} },
		Failure: func(err error) tea.Msg { return answerMsg{id: id, err: err} },
	})
}

func refreshEvery(d time.Duration) tea.Cmd {
	if d <= 0 {
		return nil
	}
	return tea.Tick(d, func(time.Time) tea.Msg {
		return refreshMsg{}
	})
}
