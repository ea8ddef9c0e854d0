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

// Package output writes dashboard records as NDJSON (Newline Delimited JSON):
// one issue, pull request or answer per line, so the CLI's output can be
// piped into jq or loaded line by line.
//
// Example usage:
//
//	w := output.NewWriter(os.Stdout)
//	defer w.Close()
//
//	n, err := output.WriteAll(w, issues)
//	if err != nil {
//	    return err
//	}
//	logger.Info("wrote issues", zap.Int("count", n))
package output
