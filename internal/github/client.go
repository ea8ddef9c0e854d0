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

package github

import "context"

// Client defines the interface for the dashboard's queries when a caller
// wants plain return values instead of messages. The CLI uses it; the TUI
// dispatches the query contracts directly.
type Client interface {
	// FetchIssues retrieves the open issues tracked by the backend.
	FetchIssues(ctx context.Context) ([]Issue, error)

	// FetchPullRequests retrieves the open pull requests tracked by the backend.
	FetchPullRequests(ctx context.Context) ([]PullRequest, error)

	// Ask sends one question to the Q&A endpoint.
	Ask(ctx context.Context, question string) (*Answer, error)
}
