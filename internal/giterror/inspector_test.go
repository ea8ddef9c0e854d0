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

package giterror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/sirseerhq/sirseer-dash/internal/dispatch"
)

func TestMessageInspector_IsAuthError(t *testing.T) {
	inspector := NewInspector()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"401 unauthorized", errors.New("401 Unauthorized"), true},
		{"403 forbidden", errors.New("403 Forbidden"), true},
		{"graphql not authenticated", errors.New("issues: no data: not authenticated"), true},
		{"wrapped auth error", fmt.Errorf("failed to query: %w", errors.New("Bad credentials")), true},
		{"not an auth error", errors.New("something went wrong"), false},
		{"nil error", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := inspector.IsAuthError(tt.err); got != tt.want {
				t.Errorf("IsAuthError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMessageInspector_Other(t *testing.T) {
	inspector := NewInspector()

	tests := []struct {
		name      string
		err       error
		notFound  bool
		rateLimit bool
		network   bool
	}{
		{"not found", errors.New("Could not resolve to a Repository"), true, false, false},
		{"rate limit", errors.New("API rate limit exceeded"), false, true, false},
		{"too many requests", errors.New("429 Too Many Requests"), false, true, false},
		{"connection refused", errors.New("dial tcp 127.0.0.1:8000: connect: connection refused"), false, false, true},
		{"timeout", errors.New("context deadline exceeded (Client.Timeout exceeded while awaiting headers)"), false, false, true},
		{"plain", errors.New("boom"), false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := inspector.IsNotFoundError(tt.err); got != tt.notFound {
				t.Errorf("IsNotFoundError() = %v, want %v", got, tt.notFound)
			}
			if got := inspector.IsRateLimitError(tt.err); got != tt.rateLimit {
				t.Errorf("IsRateLimitError() = %v, want %v", got, tt.rateLimit)
			}
			if got := inspector.IsNetworkError(tt.err); got != tt.network {
				t.Errorf("IsNetworkError() = %v, want %v", got, tt.network)
			}
		})
	}
}

func TestErrorChainInspector(t *testing.T) {
	inspector := NewErrorChainInspector(NewInspector())

	// The text says nothing about auth; the structured status does.
	statusErr := fmt.Errorf("loading issues: %w", &dispatch.Error{Kind: dispatch.KindHTTPStatus, StatusCode: http.StatusForbidden})
	if !inspector.IsAuthError(statusErr) {
		t.Error("IsAuthError() = false for wrapped 403 dispatch error")
	}

	transportErr := &dispatch.Error{Kind: dispatch.KindTransportFailed, Err: errors.New("weird failure")}
	if !inspector.IsNetworkError(transportErr) {
		t.Error("IsNetworkError() = false for transport failure")
	}

	// Fallback to text for unstructured errors.
	if !inspector.IsRateLimitError(errors.New("rate limit hit")) {
		t.Error("IsRateLimitError() = false for text match")
	}
	if inspector.IsNotFoundError(transportErr) {
		t.Error("IsNotFoundError() = true for transport failure")
	}
}

func TestErrorChainInspector_EndpointDigitsDoNotClassify(t *testing.T) {
	inspector := NewErrorChainInspector(NewInspector())

	refused := func(port string) error {
		return &dispatch.Error{
			Kind:  dispatch.KindTransportFailed,
			Query: "qa-query",
			Err:   fmt.Errorf(`Post "http://127.0.0.1:%s/graphql": dial tcp 127.0.0.1:%s: connect: connection refused`, port, port),
		}
	}

	for _, port := range []string{"4011", "4031", "4041", "4290"} {
		t.Run(port, func(t *testing.T) {
			err := fmt.Errorf("asking: %w", refused(port))
			if inspector.IsAuthError(err) {
				t.Error("IsAuthError() = true for connection refused")
			}
			if inspector.IsNotFoundError(err) {
				t.Error("IsNotFoundError() = true for connection refused")
			}
			if inspector.IsRateLimitError(err) {
				t.Error("IsRateLimitError() = true for connection refused")
			}
			if !inspector.IsNetworkError(err) {
				t.Error("IsNetworkError() = false for connection refused")
			}
			if got := Hint(err); !strings.Contains(got, "could not be reached") {
				t.Errorf("Hint() = %q, want the network hint", got)
			}
		})
	}
}

func TestErrorChainInspector_ServerMessages(t *testing.T) {
	inspector := NewErrorChainInspector(NewInspector())

	noData := &dispatch.Error{Kind: dispatch.KindNoData, Query: "issues", Messages: []string{"Not authenticated"}}
	if !inspector.IsAuthError(noData) {
		t.Error("IsAuthError() = false for an auth message reported with null data")
	}

	// The status text of a 500 mentions neither auth nor throttling.
	serverErr := &dispatch.Error{Kind: dispatch.KindHTTPStatus, Query: "issues", StatusCode: http.StatusInternalServerError}
	if inspector.IsAuthError(serverErr) || inspector.IsRateLimitError(serverErr) {
		t.Error("500 classified as auth or rate limit")
	}
}

func TestHint(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		contains string
	}{
		{"nil", nil, ""},
		{"auth", &dispatch.Error{Kind: dispatch.KindHTTPStatus, StatusCode: http.StatusUnauthorized}, "--token"},
		{"rate limit before auth", errors.New("403 rate limit exceeded"), "rate limiting"},
		{"not found", &dispatch.Error{Kind: dispatch.KindHTTPStatus, StatusCode: http.StatusNotFound}, "server.url"},
		{"network", &dispatch.Error{Kind: dispatch.KindTransportFailed, Err: errors.New("x")}, "could not be reached"},
		{"nothing to add", &dispatch.Error{Kind: dispatch.KindEnvelopeParseFailed, Err: errors.New("unexpected end of JSON input")}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Hint(tt.err)
			if tt.contains == "" {
				if got != "" {
					t.Errorf("Hint() = %q, want empty", got)
				}
				return
			}
			if !strings.Contains(got, tt.contains) {
				t.Errorf("Hint() = %q, want it to contain %q", got, tt.contains)
			}
		})
	}
}
