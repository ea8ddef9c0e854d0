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

// Package main implements the sirseer-dash command-line interface.
// It opens a terminal dashboard over a GraphQL backend that tracks GitHub
// pull requests and issues, and answers questions about the repositories.
//
// The CLI supports:
//   - An interactive dashboard with pull request, issue and Q&A tabs (default)
//   - Printing the open issues or pull requests as NDJSON
//   - Asking a single question from scripts
//   - Bearer token authentication via flag, environment or config file
//
// Usage:
//
//	sirseer-dash [flags]
//	sirseer-dash issues [--output issues.ndjson]
//	sirseer-dash pulls [--output pulls.ndjson]
//	sirseer-dash ask <question> [--json]
//
// Example:
//
//	export SIRSEER_DASH_TOKEN=your_token
//	sirseer-dash --url https://dash.example.com/graphql pulls
//
// Exit codes:
//   - 0: Success
//   - 1: General error
//   - 2: Authentication/authorization error
//   - 3: Network error
package main
