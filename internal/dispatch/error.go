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
	"errors"
	"fmt"
	"net/http"
	"strings"

	dasherrors "github.com/sirseerhq/sirseer-dash/internal/errors"
)

// Kind classifies a failed dispatch. The zero value is never produced.
type Kind int

// Failure kinds in classification order.
const (
	KindBuildFailed Kind = iota + 1
	KindTransportFailed
	KindHTTPStatus
	KindEnvelopeParseFailed
	KindNoData
)

// String returns the human readable name of the kind.
func (k Kind) String() string {
	switch k {
	case KindBuildFailed:
		return "build failed"
	case KindTransportFailed:
		return "transport failed"
	case KindHTTPStatus:
		return "http status"
	case KindEnvelopeParseFailed:
		return "envelope parse failed"
	case KindNoData:
		return "no data"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// sentinel returns the package errors sentinel for the kind.
func (k Kind) sentinel() error {
	switch k {
	case KindBuildFailed:
		return dasherrors.ErrBuildFailed
	case KindTransportFailed:
		return dasherrors.ErrTransportFailed
	case KindHTTPStatus:
		return dasherrors.ErrHTTPStatus
	case KindEnvelopeParseFailed:
		return dasherrors.ErrEnvelopeParse
	case KindNoData:
		return dasherrors.ErrNoData
	default:
		return nil
	}
}

// Error is the failure outcome of a dispatch. It unwraps to the matching
// sentinel in internal/errors and, when present, to the underlying cause.
type Error struct {
	Kind Kind

	// Query is the name of the query kind that failed.
	Query string

	// StatusCode is set for KindHTTPStatus.
	StatusCode int

	// Messages holds GraphQL error messages reported alongside null data.
	Messages []string

	Err error
}

func newError(kind Kind, query string, cause error) *Error {
	return &Error{Kind: kind, Query: query, Err: cause}
}

// Error implements the error interface. The text always embeds the kind.
func (e *Error) Error() string {
	var b strings.Builder
	if e.Query != "" {
		b.WriteString(e.Query)
		b.WriteString(": ")
	}
	b.WriteString(e.Kind.String())

	switch {
	case e.Kind == KindHTTPStatus:
		fmt.Fprintf(&b, " %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	case len(e.Messages) > 0:
		b.WriteString(": ")
		b.WriteString(strings.Join(e.Messages, "; "))
	case e.Err != nil:
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap exposes both the sentinel and the cause to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	if s := e.Kind.sentinel(); s != nil {
		errs = append(errs, s)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// IsAuthError reports whether the backend rejected the credential.
func (e *Error) IsAuthError() bool {
	return e.Kind == KindHTTPStatus &&
		(e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden)
}

// IsNotFoundError reports whether the endpoint does not exist.
func (e *Error) IsNotFoundError() bool {
	return e.Kind == KindHTTPStatus && e.StatusCode == http.StatusNotFound
}

// IsRateLimitError reports whether the backend throttled the request.
func (e *Error) IsRateLimitError() bool {
	return e.Kind == KindHTTPStatus && e.StatusCode == http.StatusTooManyRequests
}

// IsNetworkError reports whether no response was obtained.
func (e *Error) IsNetworkError() bool {
	return e.Kind == KindTransportFailed
}

// ServerMessages returns the GraphQL error messages the backend reported.
func (e *Error) ServerMessages() []string {
	return e.Messages
}

// KindOf returns the dispatch kind carried by err, or 0 if err is not a
// dispatch failure.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return 0
}
