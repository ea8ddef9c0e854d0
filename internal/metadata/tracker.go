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

// Package metadata provides functionality for tracking and persisting
// statistics about the dispatches a session performs: how many calls each
// query kind made, how they were classified and how long they took.
//
// Metadata is saved as JSON files in a directory of the user's choosing,
// allowing external tools to analyze endpoint health over time.
package metadata

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// OutcomeSuccess is the outcome name recorded for a successful dispatch.
const OutcomeSuccess = "success"

// Tracker collects dispatch statistics. Dispatches complete on background
// goroutines, so every method is safe for concurrent use.
type Tracker struct {
	mu        sync.Mutex
	startTime time.Time
	queries   map[string]*QueryStats
	total     int
	failures  int
}

// New creates a new tracker and initializes it with the current time.
func New() *Tracker {
	return &Tracker{
		startTime: time.Now(),
		queries:   make(map[string]*QueryStats),
	}
}

// RecordDispatch records one classified dispatch of the named query kind.
func (t *Tracker) RecordDispatch(query, outcome string, elapsed time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	stats, ok := t.queries[query]
	if !ok {
		stats = &QueryStats{Outcomes: make(map[string]int)}
		t.queries[query] = stats
	}
	stats.Calls++
	stats.Outcomes[outcome]++
	stats.TotalTime += elapsed
	stats.LastOutcome = outcome

	t.total++
	if outcome != OutcomeSuccess {
		t.failures++
	}
}

// Totals returns the number of dispatches and failures recorded so far.
func (t *Tracker) Totals() (dispatches, failures int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.total, t.failures
}

// Query returns a copy of the statistics for one query kind.
func (t *Tracker) Query(name string) (QueryStats, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	stats, ok := t.queries[name]
	if !ok {
		return QueryStats{}, false
	}
	return copyStats(stats), true
}

// GenerateMetadata creates a RunMetadata snapshot of everything recorded.
func (t *Tracker) GenerateMetadata(dashVersion, command, endpoint string) *RunMetadata {
	t.mu.Lock()
	defer t.mu.Unlock()

	completedAt := time.Now()
	queries := make(map[string]QueryStats, len(t.queries))
	for name, stats := range t.queries {
		queries[name] = copyStats(stats)
	}

	return &RunMetadata{
		DashVersion: dashVersion,
		RunID:       fmt.Sprintf("%s-%d", command, t.startTime.Unix()),
		Command:     command,
		Endpoint:    endpoint,
		Queries:     queries,
		Results: RunResults{
			Dispatches:  t.total,
			Failures:    t.failures,
			Duration:    completedAt.Sub(t.startTime).String(),
			StartedAt:   t.startTime,
			CompletedAt: completedAt,
		},
	}
}

func copyStats(s *QueryStats) QueryStats {
	out := *s
	out.Outcomes = make(map[string]int, len(s.Outcomes))
	for k, v := range s.Outcomes {
		out.Outcomes[k] = v
	}
	return out
}

// SaveMetadata persists a RunMetadata record to a JSON file in dir. The file
// is written to a temporary path and renamed so readers never see a partial
// record. The file is named run-metadata-{unix start time}.json.
func SaveMetadata(metadata *RunMetadata, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create metadata directory: %w", err)
	}

	filename := fmt.Sprintf("run-metadata-%d.json", metadata.Results.StartedAt.Unix())
	path := filepath.Join(dir, filename)

	tmpFile := path + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return "", fmt.Errorf("failed to create metadata file: %w", err)
	}

	if err := WriteMetadataToWriter(metadata, file); err != nil {
		_ = file.Close()
		_ = os.Remove(tmpFile)
		return "", fmt.Errorf("failed to write metadata: %w", err)
	}

	if err := file.Close(); err != nil {
		_ = os.Remove(tmpFile)
		return "", fmt.Errorf("failed to close metadata file: %w", err)
	}

	if err := os.Rename(tmpFile, path); err != nil {
		return "", fmt.Errorf("failed to save metadata file: %w", err)
	}

	return path, nil
}

// WriteMetadataToWriter serializes metadata as indented JSON.
func WriteMetadataToWriter(metadata *RunMetadata, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(metadata)
}
