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

// Package dispatch sends typed GraphQL queries to a single endpoint and
// classifies every outcome. One generic pipeline serves every query kind:
// callers declare a Query[V, P] with its variables and payload shapes and
// supply a Handler that turns the outcome into their own message type.
//
// Classification is ordered and exactly one outcome is produced per call:
//
//  1. the request could not be built (KindBuildFailed, nothing is sent)
//  2. no response was obtained (KindTransportFailed)
//  3. the status code is outside 2xx (KindHTTPStatus)
//  4. the body is not a GraphQL envelope (KindEnvelopeParseFailed)
//  5. the envelope's data is absent or null (KindNoData)
//  6. success, the decoded payload is handed to Handler.Success
//
// Basic usage:
//
//	client := dispatch.NewClient(dispatch.NewHTTPTransport(endpoint),
//	    dispatch.WithCredential(token))
//	msg := dispatch.Dispatch(ctx, client, github.IssuesQuery, github.NoVariables{},
//	    dispatch.Handler[github.IssuesPayload, string]{
//	        Success: func(p github.IssuesPayload) string { return "ok" },
//	        Failure: func(err error) string { return err.Error() },
//	    })
//
// No retries are performed. A failure is always delivered to the handler.
package dispatch
