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

// Package metadata types define the structures used for tracking and
// persisting information about a dashboard session's dispatches.
package metadata

import (
	"time"
)

// RunMetadata is the record written at the end of a session. It captures
// which endpoint was queried and how every query kind fared.
type RunMetadata struct {
	DashVersion string                `json:"dash_version"`
	RunID       string                `json:"run_id"`
	Command     string                `json:"command"`
	Endpoint    string                `json:"endpoint"`
	Queries     map[string]QueryStats `json:"queries"`
	Results     RunResults            `json:"results"`
}

// QueryStats aggregates the outcomes of one query kind. Outcomes is keyed by
// "success" or the failure kind name.
type QueryStats struct {
	Calls       int            `json:"calls"`
	Outcomes    map[string]int `json:"outcomes"`
	TotalTime   time.Duration  `json:"total_time_ns"`
	LastOutcome string         `json:"last_outcome"`
}

// RunResults holds the totals across all query kinds.
type RunResults struct {
	Dispatches  int       `json:"dispatches"`
	Failures    int       `json:"failures"`
	Duration    string    `json:"session_duration"`
	StartedAt   time.Time `json:"started_at"`
	CompletedAt time.Time `json:"completed_at"`
}
