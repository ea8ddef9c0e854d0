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

package conversation

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/sirseerhq/sirseer-dash/internal/dispatch"
	"github.com/sirseerhq/sirseer-dash/internal/render"
)

// bracket is a recognizable stand-in for markdown rendering.
var bracket = render.Func(func(s string) string { return "[" + s + "]" })

func TestStore_SubmitRejectsBlank(t *testing.T) {
	tests := []struct {
		name     string
		question string
	}{
		{"empty", ""},
		{"spaces", "   "},
		{"tabs and newlines", "\t\n "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore()

			id, ok := s.Submit(tt.question)
			if ok {
				t.Fatal("Submit accepted a blank question")
			}
			if id != uuid.Nil {
				t.Errorf("id = %v, want uuid.Nil", id)
			}
			if s.Len() != 0 {
				t.Errorf("Len() = %d, want 0", s.Len())
			}
			if s.Loading() {
				t.Error("Loading() = true after rejected submit")
			}
		})
	}
}

func TestStore_SubmitCreatesPendingTurn(t *testing.T) {
	at := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	s := NewStore(WithClock(func() time.Time { return at }))

	id, ok := s.Submit("What is X?")
	if !ok {
		t.Fatal("Submit refused a valid question")
	}

	turn, found := s.Turn(id)
	if !found {
		t.Fatal("submitted turn not found")
	}
	if !turn.Pending() || turn.Answer != nil {
		t.Errorf("turn should be pending, got answer %v", turn.Answer)
	}
	if turn.Question != "What is X?" {
		t.Errorf("Question = %q", turn.Question)
	}
	if !turn.CreatedAt.Equal(at) {
		t.Errorf("CreatedAt = %v, want %v", turn.CreatedAt, at)
	}
	if !s.Loading() {
		t.Error("Loading() = false after submit")
	}
}

func TestStore_OneSubmissionInFlight(t *testing.T) {
	s := NewStore()

	if _, ok := s.Submit("a"); !ok {
		t.Fatal("first submit refused")
	}
	if _, ok := s.Submit("b"); ok {
		t.Fatal("second submit accepted while loading")
	}

	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
	if got := s.Turns()[0].Question; got != "a" {
		t.Errorf("head question = %q, want a", got)
	}
}

func TestStore_ResolveSuccessRendersAnswer(t *testing.T) {
	s := NewStore(WithRenderer(bracket))
	id, _ := s.Submit("What is X?")

	s.Resolve(id, Outcome{Answer: "X is Y"})

	turn, _ := s.Turn(id)
	if turn.Pending() {
		t.Fatal("turn still pending after resolve")
	}
	if *turn.Answer != "[X is Y]" {
		t.Errorf("Answer = %q, want [X is Y]", *turn.Answer)
	}
	if turn.Failed {
		t.Error("Failed = true for successful answer")
	}
	if s.Loading() {
		t.Error("Loading() = true after resolve")
	}
}

func TestStore_ResolveFailureFormatsError(t *testing.T) {
	s := NewStore(WithRenderer(bracket))
	id, _ := s.Submit("q")

	err := &dispatch.Error{Kind: dispatch.KindTransportFailed, Query: "qa-query", Err: errors.New("connection refused")}
	s.Resolve(id, Outcome{Err: err})

	turn, _ := s.Turn(id)
	if !turn.Failed {
		t.Error("Failed = false for error outcome")
	}
	want := "[" + FormatError(err) + "]"
	if *turn.Answer != want {
		t.Errorf("Answer = %q, want %q", *turn.Answer, want)
	}
	if !strings.Contains(*turn.Answer, "transport failed") {
		t.Errorf("answer does not embed the error kind: %q", *turn.Answer)
	}

	if _, ok := s.Submit("next"); !ok {
		t.Error("submit refused after failure resolved")
	}
}

func TestStore_ResolveAfterClearIsNoop(t *testing.T) {
	s := NewStore()
	id, _ := s.Submit("q")

	s.Clear()
	s.Resolve(id, Outcome{Answer: "late"})

	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
	if _, found := s.Turn(id); found {
		t.Error("cleared turn resurrected")
	}
	if s.Loading() {
		t.Error("Loading() = true after stale resolve")
	}
}

func TestStore_ClearKeepsLoadingUntilResolve(t *testing.T) {
	s := NewStore()
	s.Submit("q")
	s.Clear()

	if !s.Loading() {
		t.Error("Clear() released loading before the dispatch completed")
	}
	if _, ok := s.Submit("again"); ok {
		t.Error("submit accepted while the cleared dispatch is in flight")
	}
}

func TestStore_ResolveUnknownID(t *testing.T) {
	s := NewStore()
	id, _ := s.Submit("q")

	s.Resolve(uuid.New(), Outcome{Answer: "stray"})

	turn, _ := s.Turn(id)
	if !turn.Pending() {
		t.Error("unrelated turn was resolved")
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}

func TestStore_ResolveOnlyOnce(t *testing.T) {
	s := NewStore()
	id, _ := s.Submit("q")

	s.Resolve(id, Outcome{Answer: "first"})
	s.Resolve(id, Outcome{Answer: "second"})

	turn, _ := s.Turn(id)
	if *turn.Answer != "first" {
		t.Errorf("Answer = %q, want first", *turn.Answer)
	}
}

func TestStore_OrderIsSubmissionOrder(t *testing.T) {
	s := NewStore()

	var ids []uuid.UUID
	for i := 0; i < 3; i++ {
		id, ok := s.Submit(fmt.Sprintf("q%d", i))
		if !ok {
			t.Fatalf("submit %d refused", i)
		}
		ids = append(ids, id)
		s.Resolve(id, Outcome{Answer: "a"})
	}

	// Resolve again in reverse order; nothing should move.
	for i := len(ids) - 1; i >= 0; i-- {
		s.Resolve(ids[i], Outcome{Answer: "b"})
	}

	turns := s.Turns()
	for i, want := range []string{"q2", "q1", "q0"} {
		if turns[i].Question != want {
			t.Errorf("turns[%d] = %q, want %q", i, turns[i].Question, want)
		}
	}
}

func TestStore_RejectedSubmitKeepsOrder(t *testing.T) {
	s := NewStore()
	a, _ := s.Submit("A")
	if _, ok := s.Submit("B"); ok {
		t.Fatal("B accepted while A pending")
	}

	s.Resolve(a, Outcome{Answer: "done"})

	turns := s.Turns()
	if len(turns) != 1 || turns[0].ID != a {
		t.Fatalf("turns = %+v, want only A", turns)
	}
}

func TestStore_IDsNeverReused(t *testing.T) {
	s := NewStore()
	seen := make(map[uuid.UUID]bool)

	for i := 0; i < 20; i++ {
		id, _ := s.Submit("q")
		if seen[id] {
			t.Fatalf("id %v reused", id)
		}
		seen[id] = true
		s.Resolve(id, Outcome{Answer: "a"})
		if i%5 == 0 {
			s.Clear()
		}
	}
}

func TestStore_TurnsReturnsCopy(t *testing.T) {
	s := NewStore()
	s.Submit("q")

	turns := s.Turns()
	turns[0].Question = "mutated"

	if s.Turns()[0].Question != "q" {
		t.Error("store mutated through Turns() copy")
	}
}

func TestFormatError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		want     string
		wantHint bool
	}{
		{
			name: "plain error",
			err:  errors.New("boom"),
			want: "**An error occurred:**\n\n```\nboom\n```",
		},
		{
			name:     "status error carries hint",
			err:      &dispatch.Error{Kind: dispatch.KindHTTPStatus, Query: "qa-query", StatusCode: 401},
			want:     "**An error occurred:**\n\n```\nqa-query: http status 401 Unauthorized\n```",
			wantHint: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatError(tt.err)
			if !strings.HasPrefix(got, tt.want) {
				t.Errorf("FormatError() = %q, want prefix %q", got, tt.want)
			}
			if hasHint := len(got) > len(tt.want); hasHint != tt.wantHint {
				t.Errorf("hint present = %v, want %v (%q)", hasHint, tt.wantHint, got)
			}
		})
	}
}

func TestFormatError_EndpointPortDoesNotPickHint(t *testing.T) {
	err := &dispatch.Error{
		Kind:  dispatch.KindTransportFailed,
		Query: "qa-query",
		Err:   errors.New(`Post "http://127.0.0.1:4011/graphql": dial tcp 127.0.0.1:4011: connect: connection refused`),
	}

	got := FormatError(err)
	if strings.Contains(got, "credential") {
		t.Errorf("FormatError() suggests a credential problem: %q", got)
	}
	if !strings.Contains(got, "could not be reached") {
		t.Errorf("FormatError() = %q, want the network hint", got)
	}
}
