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

var defaultInspector = NewErrorChainInspector(NewInspector())

// Hint returns a one-line suggestion for resolving err, or "" when there is
// nothing more useful to say than the error itself. Rate limiting is checked
// before authentication because some servers answer throttled requests with 403.
func Hint(err error) string {
	return HintWith(defaultInspector, err)
}

// HintWith is Hint with a caller supplied inspector.
func HintWith(inspector Inspector, err error) string {
	switch {
	case err == nil:
		return ""
	case inspector.IsRateLimitError(err):
		return "The backend is rate limiting requests. Wait a moment before retrying."
	case inspector.IsAuthError(err):
		return "The backend rejected the credential. Pass a valid token with --token or set SIRSEER_DASH_TOKEN."
	case inspector.IsNotFoundError(err):
		return "The GraphQL endpoint was not found. Check server.url in the config or the --url flag."
	case inspector.IsNetworkError(err):
		return "The backend could not be reached. Check that it is running and the URL is correct."
	default:
		return ""
	}
}
