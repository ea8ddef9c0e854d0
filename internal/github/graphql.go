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

import (
	"context"

	"github.com/sirseerhq/sirseer-dash/internal/dispatch"
)

// GraphQLClient implements Client on top of the generic dispatcher. Every
// method is one dispatch whose handler folds the outcome into a result.
type GraphQLClient struct {
	client *dispatch.Client
}

// NewGraphQLClient wraps a dispatch client.
func NewGraphQLClient(client *dispatch.Client) *GraphQLClient {
	return &GraphQLClient{client: client}
}

// result is the message type the client's handlers produce.
type result[T any] struct {
	value T
	err   error
}

func handler[P, T any](convert func(P) T) dispatch.Handler[P, result[T]] {
	return dispatch.Handler[P, result[T]]{
		Success: func(p P) result[T] { return result[T]{value: convert(p)} },
		Failure: func(err error) result[T] { return result[T]{err: err} },
	}
}

// FetchIssues implements Client.
func (c *GraphQLClient) FetchIssues(ctx context.Context) ([]Issue, error) {
	r := dispatch.Dispatch(ctx, c.client, IssuesQuery, NoVariables{}, handler(IssuesPayload.Items))
	return r.value, r.err
}

// FetchPullRequests implements Client.
func (c *GraphQLClient) FetchPullRequests(ctx context.Context) ([]PullRequest, error) {
	r := dispatch.Dispatch(ctx, c.client, PullRequestsQuery, NoVariables{}, handler(PullRequestsPayload.Items))
	return r.value, r.err
}

// Ask implements Client.
func (c *GraphQLClient) Ask(ctx context.Context, question string) (*Answer, error) {
	r := dispatch.Dispatch(ctx, c.client, QAQuery, Ask(question), handler(func(p QAPayload) *Answer {
		a := p.Answer()
		return &a
	}))
	return r.value, r.err
}
