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
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirseerhq/sirseer-dash/pkg/version"
)

const (
	// DefaultEndpoint is the GraphQL endpoint used when none is configured.
	DefaultEndpoint = "http://localhost:8000/graphql"

	// maxResponseSize caps how much of a response body is read (10MB).
	maxResponseSize = 10 * 1024 * 1024
)

// Response is what the transport hands back when the endpoint answered.
type Response struct {
	StatusCode int
	Body       []byte
}

// Transport sends a request and waits for the response. A non-nil error
// means no usable response was obtained; the dispatcher classifies it as
// KindTransportFailed.
type Transport interface {
	Send(ctx context.Context, req *Request) (*Response, error)
}

// HTTPTransport posts requests to a single GraphQL endpoint over HTTP.
type HTTPTransport struct {
	endpoint  string
	client    *http.Client
	userAgent string
}

// HTTPOption configures an HTTPTransport.
type HTTPOption func(*HTTPTransport)

// WithTimeout bounds every exchange. Zero means no timeout, so a call that
// never returns stays in flight.
func WithTimeout(d time.Duration) HTTPOption {
	return func(t *HTTPTransport) {
		t.client.Timeout = d
	}
}

// WithHTTPClient replaces the underlying client. Used by tests.
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(t *HTTPTransport) {
		t.client = c
	}
}

// NewHTTPTransport creates a transport for the given endpoint URL.
// The connection pool mirrors what a single dashboard needs: a handful of
// concurrent queries against one host.
func NewHTTPTransport(endpoint string, opts ...HTTPOption) *HTTPTransport {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	t := &HTTPTransport{
		endpoint: endpoint,
		client: &http.Client{
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
				ForceAttemptHTTP2:   true,
			},
		},
		userAgent: fmt.Sprintf("sirseer-dash/%s", version.Version),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Endpoint returns the URL requests are posted to.
func (t *HTTPTransport) Endpoint() string {
	return t.endpoint
}

// Send implements Transport. Failing to read the body counts as a transport
// failure because the exchange never produced a complete response.
func (t *HTTPTransport) Send(ctx context.Context, req *Request) (*Response, error) {
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, t.endpoint, bytes.NewReader(req.Body))
	if err != nil {
		return nil, err
	}
	httpReq.Header = req.Header.Clone()
	httpReq.Header.Set("User-Agent", t.userAgent)

	resp, err := t.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(&limitedReader{ReadCloser: resp.Body, limit: maxResponseSize})
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	return &Response{StatusCode: resp.StatusCode, Body: data}, nil
}

// limitedReader wraps a ReadCloser with a size limit to prevent excessive memory usage.
type limitedReader struct {
	io.ReadCloser
	limit int64
	read  int64
}

// Read implements io.Reader with size limit enforcement.
func (lr *limitedReader) Read(p []byte) (n int, err error) {
	if lr.read >= lr.limit {
		return 0, fmt.Errorf("response size exceeded limit of %d bytes", lr.limit)
	}

	remaining := lr.limit - lr.read
	if int64(len(p)) > remaining {
		p = p[:remaining]
	}

	n, err = lr.ReadCloser.Read(p)
	lr.read += int64(n)

	return n, err
}
