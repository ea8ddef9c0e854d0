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
	"strings"
)

// Inspector classifies errors returned by the dashboard backend so callers
// can attach actionable guidance.
type Inspector interface {
	// IsAuthError returns true if the backend rejected the credential.
	IsAuthError(err error) bool

	// IsNotFoundError returns true if the endpoint or resource does not exist.
	IsNotFoundError(err error) bool

	// IsRateLimitError returns true if the backend throttled the request.
	IsRateLimitError(err error) bool

	// IsNetworkError returns true if the endpoint could not be reached.
	IsNetworkError(err error) bool
}

// MessageInspector classifies errors by their text. GraphQL servers report
// most failures as free-form messages, so this is the fallback for errors
// that carry no structured classification.
type MessageInspector struct{}

// NewInspector creates a new MessageInspector.
func NewInspector() Inspector {
	return &MessageInspector{}
}

func containsAny(err error, needles ...string) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	for _, n := range needles {
		if strings.Contains(errStr, n) {
			return true
		}
	}
	return false
}

// IsAuthError checks if the error is an authentication or authorization error.
func (i *MessageInspector) IsAuthError(err error) bool {
	return containsAny(err, "401", "403", "unauthorized", "forbidden",
		"bad credentials", "authentication", "not authenticated", "invalid token")
}

// IsNotFoundError checks if the error is a not found error.
func (i *MessageInspector) IsNotFoundError(err error) bool {
	return containsAny(err, "404", "not found", "could not resolve")
}

// IsRateLimitError checks if the error is a rate limit error.
func (i *MessageInspector) IsRateLimitError(err error) bool {
	return containsAny(err, "rate limit", "429", "too many requests")
}

// IsNetworkError checks if the error is a network connectivity error.
func (i *MessageInspector) IsNetworkError(err error) bool {
	return containsAny(err, "connection refused", "no such host", "timeout",
		"temporary failure", "dial tcp", "tls handshake", "network is unreachable",
		"connection reset")
}

// ErrorChainInspector wraps a base inspector and adds support for checking errors
// in the error chain using errors.As.
//
// An error in the chain that classifies itself is authoritative. Its text may
// embed an endpoint such as 127.0.0.1:4011, so the base inspector only sees
// the server-reported messages it carries, if any.
type ErrorChainInspector struct {
	base Inspector
}

// serverMessages is implemented by structured errors that carry free-form
// messages reported by the backend.
type serverMessages interface {
	ServerMessages() []string
}

// NewErrorChainInspector creates a new ErrorChainInspector that checks both
// the error chain and falls back to string-based inspection.
func NewErrorChainInspector(base Inspector) Inspector {
	return &ErrorChainInspector{base: base}
}

func inspectChain[T any](err error, structured func(T) bool, fallback func(error) bool) bool {
	var classifier T
	if !errors.As(err, &classifier) {
		return fallback(err)
	}
	if structured(classifier) {
		return true
	}

	var sm serverMessages
	if errors.As(err, &sm) {
		if msgs := sm.ServerMessages(); len(msgs) > 0 {
			return fallback(errors.New(strings.Join(msgs, "; ")))
		}
	}
	return false
}

// IsAuthError checks the error chain first, then falls back to base inspector.
func (e *ErrorChainInspector) IsAuthError(err error) bool {
	return inspectChain(err, func(c interface{ IsAuthError() bool }) bool {
		return c.IsAuthError()
	}, e.base.IsAuthError)
}

// IsNotFoundError checks the error chain first, then falls back to base inspector.
func (e *ErrorChainInspector) IsNotFoundError(err error) bool {
	return inspectChain(err, func(c interface{ IsNotFoundError() bool }) bool {
		return c.IsNotFoundError()
	}, e.base.IsNotFoundError)
}

// IsRateLimitError checks the error chain first, then falls back to base inspector.
func (e *ErrorChainInspector) IsRateLimitError(err error) bool {
	return inspectChain(err, func(c interface{ IsRateLimitError() bool }) bool {
		return c.IsRateLimitError()
	}, e.base.IsRateLimitError)
}

// IsNetworkError checks the error chain first, then falls back to base inspector.
func (e *ErrorChainInspector) IsNetworkError(err error) bool {
	return inspectChain(err, func(c interface{ IsNetworkError() bool }) bool {
		return c.IsNetworkError()
	}, e.base.IsNetworkError)
}
