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
	"time"

	"github.com/shurcooL/graphql"

	"github.com/sirseerhq/sirseer-dash/internal/dispatch"
)

// NoVariables is sent by queries that take no arguments. It serializes as {}.
type NoVariables struct{}

// IssuesQuery lists the open issues the backend tracks.
var IssuesQuery = dispatch.Query[NoVariables, IssuesPayload]{
	Name: "issues",
	Text: `query Issues {
  issues {
    edges {
      node { owner repo number title author }
    }
  }
}`,
}

// PullRequestsQuery lists the open pull requests the backend tracks.
var PullRequestsQuery = dispatch.Query[NoVariables, PullRequestsPayload]{
	Name: "pull-requests",
	Text: `query PullRequests {
  pullRequests {
    edges {
      node { owner repo number title assignees reviewers }
    }
  }
}`,
}

// QAQuery asks the retrieval-augmented Q&A endpoint one question.
var QAQuery = dispatch.Query[QAVariables, QAPayload]{
	Name: "qa-query",
	Text: `query Query($query: String!) {
  query(query: $query) { query answer timestamp }
}`,
}

// QAVariables carries the question text.
type QAVariables struct {
	Query graphql.String `json:"query"`
}

// IssueNode is one node of the issues connection.
type IssueNode struct {
	Owner  graphql.String `json:"owner"`
	Repo   graphql.String `json:"repo"`
	Number graphql.Int    `json:"number"`
	Title  graphql.String `json:"title"`
	Author graphql.String `json:"author"`
}

// IssuesPayload is the data field of an issues response. Issues is nil when
// the backend returned the field as null.
type IssuesPayload struct {
	Issues *struct {
		Edges []struct {
			Node IssueNode `json:"node"`
		} `json:"edges"`
	} `json:"issues"`
}

// Complete implements dispatch.Completer.
func (p IssuesPayload) Complete() bool { return p.Issues != nil }

// Items converts the connection into domain issues, preserving order.
func (p IssuesPayload) Items() []Issue {
	if p.Issues == nil {
		return nil
	}
	issues := make([]Issue, 0, len(p.Issues.Edges))
	for _, edge := range p.Issues.Edges {
		n := edge.Node
		issues = append(issues, Issue{
			Owner:  string(n.Owner),
			Repo:   string(n.Repo),
			Number: int(n.Number),
			Title:  string(n.Title),
			Author: string(n.Author),
		})
	}
	return issues
}

// PullRequestNode is one node of the pull requests connection.
type PullRequestNode struct {
	Owner     graphql.String   `json:"owner"`
	Repo      graphql.String   `json:"repo"`
	Number    graphql.Int      `json:"number"`
	Title     graphql.String   `json:"title"`
	Assignees []graphql.String `json:"assignees"`
	Reviewers []graphql.String `json:"reviewers"`
}

// PullRequestsPayload is the data field of a pull requests response.
type PullRequestsPayload struct {
	PullRequests *struct {
		Edges []struct {
			Node PullRequestNode `json:"node"`
		} `json:"edges"`
	} `json:"pullRequests"`
}

// Complete implements dispatch.Completer.
func (p PullRequestsPayload) Complete() bool { return p.PullRequests != nil }

// Items converts the connection into domain pull requests, preserving order.
func (p PullRequestsPayload) Items() []PullRequest {
	if p.PullRequests == nil {
		return nil
	}
	prs := make([]PullRequest, 0, len(p.PullRequests.Edges))
	for _, edge := range p.PullRequests.Edges {
		n := edge.Node
		prs = append(prs, PullRequest{
			Owner:     string(n.Owner),
			Repo:      string(n.Repo),
			Number:    int(n.Number),
			Title:     string(n.Title),
			Assignees: toStrings(n.Assignees),
			Reviewers: toStrings(n.Reviewers),
		})
	}
	return prs
}

// QAPayload is the data field of a Q&A response.
type QAPayload struct {
	Query *struct {
		Query     graphql.String `json:"query"`
		Answer    graphql.String `json:"answer"`
		Timestamp time.Time      `json:"timestamp"`
	} `json:"query"`
}

// Complete implements dispatch.Completer.
func (p QAPayload) Complete() bool { return p.Query != nil }

// Answer converts the payload into a domain answer.
func (p QAPayload) Answer() Answer {
	if p.Query == nil {
		return Answer{}
	}
	return Answer{
		Query:     string(p.Query.Query),
		Answer:    string(p.Query.Answer),
		Timestamp: p.Query.Timestamp,
	}
}

// Ask returns the variables for a question.
func Ask(question string) QAVariables {
	return QAVariables{Query: graphql.String(question)}
}

func toStrings(in []graphql.String) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, string(s))
	}
	return out
}
