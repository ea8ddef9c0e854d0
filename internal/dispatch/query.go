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
	"encoding/json"
	"net/http"
)

// Query describes one GraphQL query kind. V is the variables shape and P is
// the shape of the envelope's data field on success. Values are declared once
// per kind and never mutated.
type Query[V, P any] struct {
	// Name identifies the query kind in logs and errors, e.g. "issues".
	Name string

	// Text is the GraphQL document sent on the wire.
	Text string
}

// Request is a transport level request descriptor. It is built fresh for
// every dispatch and owned by that call alone.
type Request struct {
	Method string
	Header http.Header
	Body   []byte
}

// body is the wire shape of a GraphQL request.
type body[V any] struct {
	Query     string `json:"query"`
	Variables V      `json:"variables"`
}

// Build serializes the query and variables into a POST request. A non-empty
// credential adds exactly one bearer Authorization header; an empty one adds
// none. Serialization failures are returned as a KindBuildFailed *Error and
// happen before any network activity.
func (q Query[V, P]) Build(vars V, credential string) (*Request, error) {
	payload, err := json.Marshal(body[V]{Query: q.Text, Variables: vars})
	if err != nil {
		return nil, newError(KindBuildFailed, q.Name, err)
	}

	header := make(http.Header)
	header.Set("Content-Type", "application/json")
	header.Set("Accept", "application/json")
	if credential != "" {
		header.Set("Authorization", "Bearer "+credential)
	}

	return &Request{
		Method: http.MethodPost,
		Header: header,
		Body:   payload,
	}, nil
}
