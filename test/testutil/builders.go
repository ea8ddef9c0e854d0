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

package testutil

import (
	"fmt"
	"time"
)

// IssueBuilder provides a fluent API for creating test issue nodes
type IssueBuilder struct {
	owner  string
	repo   string
	number int
	title  string
	author string
}

// NewIssueBuilder creates an issue in acme/api with defaults
func NewIssueBuilder(number int) *IssueBuilder {
	return &IssueBuilder{
		owner:  "acme",
		repo:   "api",
		number: number,
		title:  fmt.Sprintf("Issue %d", number),
		author: fmt.Sprintf("user%d", number),
	}
}

// InRepo sets the owning repository
func (b *IssueBuilder) InRepo(owner, repo string) *IssueBuilder {
	b.owner = owner
	b.repo = repo
	return b
}

// WithTitle sets the issue title
func (b *IssueBuilder) WithTitle(title string) *IssueBuilder {
	b.title = title
	return b
}

// WithAuthor sets the issue author
func (b *IssueBuilder) WithAuthor(author string) *IssueBuilder {
	b.author = author
	return b
}

// Build returns the node as the backend serializes it
func (b *IssueBuilder) Build() map[string]interface{} {
	return map[string]interface{}{
		"owner":  b.owner,
		"repo":   b.repo,
		"number": b.number,
		"title":  b.title,
		"author": b.author,
	}
}

// PullRequestBuilder provides a fluent API for creating test pull request nodes
type PullRequestBuilder struct {
	owner     string
	repo      string
	number    int
	title     string
	assignees []string
	reviewers []string
}

// NewPullRequestBuilder creates a pull request in acme/web with defaults
func NewPullRequestBuilder(number int) *PullRequestBuilder {
	return &PullRequestBuilder{
		owner:     "acme",
		repo:      "web",
		number:    number,
		title:     fmt.Sprintf("PR %d", number),
		assignees: []string{},
		reviewers: []string{},
	}
}

// InRepo sets the owning repository
func (b *PullRequestBuilder) InRepo(owner, repo string) *PullRequestBuilder {
	b.owner = owner
	b.repo = repo
	return b
}

// WithTitle sets the PR title
func (b *PullRequestBuilder) WithTitle(title string) *PullRequestBuilder {
	b.title = title
	return b
}

// WithAssignees sets the PR assignees
func (b *PullRequestBuilder) WithAssignees(assignees ...string) *PullRequestBuilder {
	b.assignees = assignees
	return b
}

// WithReviewers sets the requested reviewers
func (b *PullRequestBuilder) WithReviewers(reviewers ...string) *PullRequestBuilder {
	b.reviewers = reviewers
	return b
}

// Build returns the node as the backend serializes it
func (b *PullRequestBuilder) Build() map[string]interface{} {
	return map[string]interface{}{
		"owner":     b.owner,
		"repo":      b.repo,
		"number":    b.number,
		"title":     b.title,
		"assignees": b.assignees,
		"reviewers": b.reviewers,
	}
}

// GraphQLResponseBuilder builds GraphQL response envelopes
type GraphQLResponseBuilder struct {
	data     map[string]interface{}
	nullData bool
	errors   []map[string]interface{}
}

// NewGraphQLResponseBuilder creates a new response builder
func NewGraphQLResponseBuilder() *GraphQLResponseBuilder {
	return &GraphQLResponseBuilder{
		data: map[string]interface{}{},
	}
}

func edges(nodes []map[string]interface{}) map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, map[string]interface{}{"node": n})
	}
	return map[string]interface{}{"edges": out}
}

// WithIssues sets the issues connection
func (b *GraphQLResponseBuilder) WithIssues(issues ...map[string]interface{}) *GraphQLResponseBuilder {
	b.data["issues"] = edges(issues)
	return b
}

// WithPullRequests sets the pull requests connection
func (b *GraphQLResponseBuilder) WithPullRequests(prs ...map[string]interface{}) *GraphQLResponseBuilder {
	b.data["pullRequests"] = edges(prs)
	return b
}

// WithAnswer sets the Q&A result
func (b *GraphQLResponseBuilder) WithAnswer(question, answer string, at time.Time) *GraphQLResponseBuilder {
	b.data["query"] = map[string]interface{}{
		"query":     question,
		"answer":    answer,
		"timestamp": at.UTC().Format(time.RFC3339),
	}
	return b
}

// WithNullData makes the response carry "data": null
func (b *GraphQLResponseBuilder) WithNullData() *GraphQLResponseBuilder {
	b.nullData = true
	return b
}

// WithError adds an error to the response
func (b *GraphQLResponseBuilder) WithError(message string) *GraphQLResponseBuilder {
	b.errors = append(b.errors, map[string]interface{}{
		"message": message,
	})
	return b
}

// Build creates the GraphQL response
func (b *GraphQLResponseBuilder) Build() map[string]interface{} {
	resp := map[string]interface{}{"data": b.data}
	if b.nullData {
		resp["data"] = nil
	}
	if len(b.errors) > 0 {
		resp["errors"] = b.errors
	}
	return resp
}
