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
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/sirseerhq/sirseer-dash/internal/metadata"
)

// Handler turns the classified outcome of a dispatch into the caller's
// message type. Exactly one of the two functions is called per dispatch.
// Failure always receives an *Error.
type Handler[P, M any] struct {
	Success func(P) M
	Failure func(error) M
}

// Client holds what every dispatch against one endpoint shares: the
// transport, the optional credential and observers. It carries no per
// request state, so concurrent dispatches are independent.
type Client struct {
	transport  Transport
	credential string
	logger     *zap.Logger
	tracker    *metadata.Tracker
}

// Option configures a Client.
type Option func(*Client)

// WithCredential sets the bearer token sent with every request. An empty
// token means requests are sent unauthenticated.
func WithCredential(token string) Option {
	return func(c *Client) {
		c.credential = token
	}
}

// WithLogger sets the logger used for dispatch diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithTracker records every classified dispatch in the tracker.
func WithTracker(tracker *metadata.Tracker) Option {
	return func(c *Client) {
		c.tracker = tracker
	}
}

// NewClient creates a dispatch client over the given transport.
func NewClient(transport Transport, opts ...Option) *Client {
	c := &Client{
		transport: transport,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Authenticated reports whether requests carry a credential.
func (c *Client) Authenticated() bool {
	return c.credential != ""
}

// Dispatch builds, sends and classifies one query and returns the message
// produced by exactly one of the handler's functions.
func Dispatch[V, P, M any](ctx context.Context, c *Client, q Query[V, P], vars V, h Handler[P, M]) M {
	call, err := Prepare(c, q, vars, h)
	if err != nil {
		return h.Failure(err)
	}
	return call(ctx)
}

// Prepare performs the synchronous half of a dispatch. If the request cannot
// be built the KindBuildFailed error is returned and nothing is sent.
// Otherwise the returned call performs the exchange when invoked.
func Prepare[V, P, M any](c *Client, q Query[V, P], vars V, h Handler[P, M]) (func(context.Context) M, error) {
	req, err := q.Build(vars, c.credential)
	if err != nil {
		c.observe(q.Name, KindBuildFailed, 0, err)
		return nil, err
	}
	return func(ctx context.Context) M {
		return Exchange(ctx, c, q.Name, req, h)
	}, nil
}

// Completer is implemented by payloads whose root fields may come back null
// while data itself is present, as GraphQL servers do when a resolver fails.
// An incomplete payload is classified as KindNoData.
type Completer interface {
	Complete() bool
}

func complete[P any](p *P) bool {
	c, ok := any(p).(Completer)
	return !ok || c.Complete()
}

// envelope is the GraphQL response wrapper. A nil Data means the field was
// absent or null.
type envelope[P any] struct {
	Data   *P `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// Exchange sends a built request and classifies the result. The checks are
// ordered and the first match wins: transport failure, non-2xx status,
// unparsable envelope, missing or incomplete data, success.
func Exchange[P, M any](ctx context.Context, c *Client, name string, req *Request, h Handler[P, M]) M {
	start := time.Now()

	payload, derr := exchange[P](ctx, c.transport, name, req)
	if derr != nil {
		c.observe(name, derr.Kind, time.Since(start), derr)
		return h.Failure(derr)
	}

	c.observe(name, 0, time.Since(start), nil)
	return h.Success(*payload)
}

func exchange[P any](ctx context.Context, t Transport, name string, req *Request) (*P, *Error) {
	resp, err := t.Send(ctx, req)
	if err != nil {
		return nil, newError(KindTransportFailed, name, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		e := newError(KindHTTPStatus, name, nil)
		e.StatusCode = resp.StatusCode
		return nil, e
	}

	var env envelope[P]
	if err := json.Unmarshal(resp.Body, &env); err != nil {
		return nil, newError(KindEnvelopeParseFailed, name, err)
	}

	if env.Data == nil || !complete(env.Data) {
		e := newError(KindNoData, name, nil)
		for _, ge := range env.Errors {
			e.Messages = append(e.Messages, ge.Message)
		}
		return nil, e
	}

	return env.Data, nil
}

func (c *Client) observe(name string, kind Kind, elapsed time.Duration, err error) {
	outcome := metadata.OutcomeSuccess
	if kind != 0 {
		outcome = kind.String()
	}

	if c.tracker != nil {
		c.tracker.RecordDispatch(name, outcome, elapsed)
	}

	fields := []zap.Field{
		zap.String("query", name),
		zap.String("outcome", outcome),
		zap.Duration("elapsed", elapsed),
	}
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	c.logger.Debug("dispatch classified", fields...)
}
