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

package dispatch

import (
	"context"
	"errors"
	"net/http"
	"sync"
)

// ErrNetworkUnreachable is the error MockTransport returns when configured
// to simulate a lost connection.
var ErrNetworkUnreachable = errors.New("dial tcp: network is unreachable")

// MockTransport is a Transport for tests. By default it answers every
// request with 200 and an empty data object, which any Completer payload
// classifies as KindNoData.
type MockTransport struct {
	mu sync.Mutex

	// Response to return
	StatusCode int
	Body       []byte

	// Error to return instead of a response
	Error error

	// Handler, when set, decides the response per request
	Handler func(*Request) (*Response, error)

	// Track calls for verification
	CallCount   int
	LastRequest *Request
}

// MockTransportOption allows configuring the mock transport
type MockTransportOption func(*MockTransport)

// WithResponse sets the status code and body to return
func WithResponse(status int, body string) MockTransportOption {
	return func(m *MockTransport) {
		m.StatusCode = status
		m.Body = []byte(body)
	}
}

// WithError makes the transport fail without a response
func WithError(err error) MockTransportOption {
	return func(m *MockTransport) {
		m.Error = err
	}
}

// WithNetworkFailure makes the transport simulate an unreachable endpoint
func WithNetworkFailure() MockTransportOption {
	return WithError(ErrNetworkUnreachable)
}

// WithHandler routes every request through fn
func WithHandler(fn func(*Request) (*Response, error)) MockTransportOption {
	return func(m *MockTransport) {
		m.Handler = fn
	}
}

// NewMockTransport creates a mock transport with options
func NewMockTransport(opts ...MockTransportOption) *MockTransport {
	m := &MockTransport{
		StatusCode: http.StatusOK,
		Body:       []byte(`{"data":{}}`),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Send implements Transport
func (m *MockTransport) Send(ctx context.Context, req *Request) (*Response, error) {
	m.mu.Lock()
	m.CallCount++
	m.LastRequest = req
	handler, status, body, err := m.Handler, m.StatusCode, m.Body, m.Error
	m.mu.Unlock()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if handler != nil {
		return handler(req)
	}
	if err != nil {
		return nil, err
	}
	return &Response{StatusCode: status, Body: body}, nil
}

// Calls returns the number of requests sent so far
func (m *MockTransport) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.CallCount
}
