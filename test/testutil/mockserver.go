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

// Package testutil provides common test helpers for sirseer-dash: a mock
// GraphQL dashboard backend, response builders and output assertions.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

// MockServer wraps an httptest server and counts the requests it served.
type MockServer struct {
	*httptest.Server
	requests atomic.Int32
}

// NewMockServer creates a server that passes every request to handler.
// It is closed when the test ends.
func NewMockServer(t *testing.T, handler http.HandlerFunc) *MockServer {
	t.Helper()
	m := &MockServer{}
	m.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.requests.Add(1)
		handler(w, r)
	}))
	t.Cleanup(m.Close)
	return m
}

// Endpoint returns the GraphQL endpoint URL of the server.
func (m *MockServer) Endpoint() string {
	return m.URL + "/graphql"
}

// Requests returns how many requests the server has received.
func (m *MockServer) Requests() int {
	return int(m.requests.Load())
}

// Backend is a fake dashboard backend. It routes on the operation name of
// the GraphQL document: Issues, PullRequests or Query.
type Backend struct {
	Issues       []map[string]interface{}
	PullRequests []map[string]interface{}

	// Answer produces the reply to a question. Defaults to echoing it.
	Answer func(question string) string

	// Token, when set, is required as a bearer credential. Requests without
	// it are answered with 401.
	Token string

	// Now stamps answers. Defaults to time.Now.
	Now func() time.Time
}

// GraphQLRequest is the decoded body of a request sent to the backend.
type GraphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

// NewBackendServer serves b over HTTP.
func NewBackendServer(t *testing.T, b *Backend) *MockServer {
	t.Helper()
	return NewMockServer(t, func(w http.ResponseWriter, r *http.Request) {
		AssertGraphQLRequest(t, r)

		if b.Token != "" && r.Header.Get("Authorization") != "Bearer "+b.Token {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"Bad credentials"}`))
			return
		}

		var req GraphQLRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		var resp map[string]interface{}
		switch {
		case strings.HasPrefix(req.Query, "query Issues"):
			resp = NewGraphQLResponseBuilder().WithIssues(b.Issues...).Build()
		case strings.HasPrefix(req.Query, "query PullRequests"):
			resp = NewGraphQLResponseBuilder().WithPullRequests(b.PullRequests...).Build()
		case strings.HasPrefix(req.Query, "query Query"):
			question, _ := req.Variables["query"].(string)
			answer := question
			if b.Answer != nil {
				answer = b.Answer(question)
			}
			now := time.Now
			if b.Now != nil {
				now = b.Now
			}
			resp = NewGraphQLResponseBuilder().WithAnswer(question, answer, now()).Build()
		default:
			resp = NewGraphQLResponseBuilder().WithNullData().WithError("unknown operation").Build()
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	})
}

// NewErrorServer creates a server that always answers with statusCode.
func NewErrorServer(t *testing.T, statusCode int) *MockServer {
	t.Helper()
	return NewMockServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(statusCode)
		_, _ = w.Write([]byte(http.StatusText(statusCode)))
	})
}

// NewNoDataServer creates a server that answers 200 with a null data field
// and the given GraphQL error messages.
func NewNoDataServer(t *testing.T, messages ...string) *MockServer {
	t.Helper()
	b := NewGraphQLResponseBuilder().WithNullData()
	for _, msg := range messages {
		b.WithError(msg)
	}
	resp := b.Build()
	return NewMockServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	})
}

// AssertGraphQLRequest validates a GraphQL request structure
func AssertGraphQLRequest(t *testing.T, r *http.Request) {
	t.Helper()
	if r.URL.Path != "/graphql" {
		t.Errorf("Unexpected path: %s", r.URL.Path)
	}
	if r.Method != http.MethodPost {
		t.Errorf("Expected POST method, got: %s", r.Method)
	}
	if ct := r.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected Content-Type: application/json, got: %s", ct)
	}
}
