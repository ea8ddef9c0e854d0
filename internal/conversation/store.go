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

// Package conversation keeps the Q&A history and correlates asynchronous
// answers with the question that produced them.
//
// A Store is not safe for concurrent use. It is meant to be owned by a single
// event loop (the TUI's Update function): dispatches run elsewhere and carry
// only the turn ID, which they hand back through Resolve on the loop.
package conversation

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sirseerhq/sirseer-dash/internal/giterror"
	"github.com/sirseerhq/sirseer-dash/internal/render"
)

// Turn is one question and, once resolved, its answer.
type Turn struct {
	ID       uuid.UUID
	Question string

	// Answer is nil while the turn is pending.
	Answer *string

	// Failed is set when Answer holds a formatted error.
	Failed bool

	CreatedAt time.Time
}

// Pending reports whether the turn is still waiting for its answer.
func (t Turn) Pending() bool {
	return t.Answer == nil
}

// Outcome is the result of the dispatch a turn is waiting on.
type Outcome struct {
	Answer string
	Err    error
}

// Store holds turns newest first.
type Store struct {
	turns    []Turn
	loading  bool
	renderer render.Renderer
	now      func() time.Time
	newID    func() uuid.UUID
}

// Option configures a Store.
type Option func(*Store)

// WithRenderer sets how answers are turned into markup.
func WithRenderer(r render.Renderer) Option {
	return func(s *Store) {
		s.renderer = r
	}
}

// WithClock overrides the submission timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore creates an empty store. Without a renderer answers are stored
// as plain text.
func NewStore(opts ...Option) *Store {
	s := &Store{
		renderer: render.Plain,
		now:      time.Now,
		newID:    uuid.New,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit records a pending turn at the head of the history and marks the
// store loading. It refuses, returning false, when the question is blank or
// another submission is still in flight.
func (s *Store) Submit(question string) (uuid.UUID, bool) {
	if strings.TrimSpace(question) == "" || s.loading {
		return uuid.Nil, false
	}

	id := s.newID()
	turn := Turn{ID: id, Question: question, CreatedAt: s.now()}
	s.turns = append([]Turn{turn}, s.turns...)
	s.loading = true
	return id, true
}

// Resolve sets the answer of the turn with the given ID. Unknown IDs, such as
// those of turns removed by Clear, are ignored. The loading flag is cleared
// in every case so a cleared history never leaves the store stuck.
func (s *Store) Resolve(id uuid.UUID, outcome Outcome) {
	s.loading = false

	for i := range s.turns {
		if s.turns[i].ID != id {
			continue
		}
		if s.turns[i].Answer != nil {
			return
		}

		var answer string
		if outcome.Err != nil {
			answer = s.renderer.Render(FormatError(outcome.Err))
			s.turns[i].Failed = true
		} else {
			answer = s.renderer.Render(outcome.Answer)
		}
		s.turns[i].Answer = &answer
		return
	}
}

// Clear drops every turn. In-flight dispatches are not cancelled; their
// answers are ignored when they arrive.
func (s *Store) Clear() {
	s.turns = nil
}

// Turns returns a copy of the history, newest first.
func (s *Store) Turns() []Turn {
	out := make([]Turn, len(s.turns))
	copy(out, s.turns)
	return out
}

// Turn returns the turn with the given ID.
func (s *Store) Turn(id uuid.UUID) (Turn, bool) {
	for _, t := range s.turns {
		if t.ID == id {
			return t, true
		}
	}
	return Turn{}, false
}

// Len returns the number of turns.
func (s *Store) Len() int {
	return len(s.turns)
}

// Loading reports whether a submission is waiting for its answer.
func (s *Store) Loading() bool {
	return s.loading
}

// FormatError renders a failure as a markdown answer. The error text is
// fenced so backend messages are shown verbatim.
func FormatError(err error) string {
	var b strings.Builder
	b.WriteString("**An error occurred:**\n\n```\n")
	b.WriteString(err.Error())
	b.WriteString("\n```")
	if hint := giterror.Hint(err); hint != "" {
		b.WriteString("\n\n")
		b.WriteString(hint)
	}
	return b.String()
}
