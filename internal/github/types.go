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
	"fmt"
	"strings"
	"time"
)

// Issue is one open issue as reported by the dashboard backend.
// It is also the record written to NDJSON output.
type Issue struct {
	Owner  string `json:"owner"`
	Repo   string `json:"repo"`
	Number int    `json:"number"`
	Title  string `json:"title"`
	Author string `json:"author"`
}

// Ref returns the short owner/repo#number reference.
func (i Issue) Ref() string {
	return fmt.Sprintf("%s/%s#%d", i.Owner, i.Repo, i.Number)
}

// URL returns the issue's page on github.com.
func (i Issue) URL() string {
	return fmt.Sprintf("https://github.com/%s/%s/issues/%d", i.Owner, i.Repo, i.Number)
}

// PullRequest is one open pull request with the people attached to it.
type PullRequest struct {
	Owner     string   `json:"owner"`
	Repo      string   `json:"repo"`
	Number    int      `json:"number"`
	Title     string   `json:"title"`
	Assignees []string `json:"assignees"`
	Reviewers []string `json:"reviewers"`
}

// Ref returns the short owner/repo#number reference.
func (p PullRequest) Ref() string {
	return fmt.Sprintf("%s/%s#%d", p.Owner, p.Repo, p.Number)
}

// URL returns the pull request's page on github.com.
func (p PullRequest) URL() string {
	return fmt.Sprintf("https://github.com/%s/%s/pull/%d", p.Owner, p.Repo, p.Number)
}

// AssigneeList joins the assignees for display.
func (p PullRequest) AssigneeList() string {
	return strings.Join(p.Assignees, ", ")
}

// ReviewerList joins the requested reviewers for display.
func (p PullRequest) ReviewerList() string {
	return strings.Join(p.Reviewers, ", ")
}

// Answer is the backend's reply to a repository question.
type Answer struct {
	Query     string    `json:"query"`
	Answer    string    `json:"answer"`
	Timestamp time.Time `json:"timestamp"`
}
