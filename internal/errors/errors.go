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

// Package errors defines sentinel errors for consistent error handling across the application.
// Every dispatch failure unwraps to exactly one of the outcome sentinels, and the
// CLI maps them to exit codes for scripting support.
package errors

import "errors"

// Dispatch outcome sentinels. One per failure classification.
var (
	// ErrBuildFailed indicates the request could not be serialized.
	// No network activity took place. Maps to exit code 1.
	ErrBuildFailed = errors.New("request build failed")

	// ErrTransportFailed indicates no response was obtained from the endpoint.
	// Maps to exit code 3.
	ErrTransportFailed = errors.New("transport failed")

	// ErrHTTPStatus indicates the endpoint answered with a non-success status code.
	// Maps to exit code 2 for 401 and 403, otherwise 1.
	ErrHTTPStatus = errors.New("unexpected http status")

	// ErrEnvelopeParse indicates the response body was not a valid GraphQL envelope.
	// Maps to exit code 1.
	ErrEnvelopeParse = errors.New("response envelope parse failed")

	// ErrNoData indicates the envelope parsed but carried no data.
	// Maps to exit code 1.
	ErrNoData = errors.New("response carried no data")
)

// Sentinels used by the CLI layer.
var (
	// ErrInvalidToken indicates the backend rejected the supplied credential.
	// Maps to exit code 2.
	ErrInvalidToken = errors.New("invalid token")

	// ErrEmptyQuestion indicates a question that is empty or whitespace only.
	ErrEmptyQuestion = errors.New("question is empty")
)
