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

package render

import (
	"strings"
	"testing"
)

func TestMarkdown_Render(t *testing.T) {
	md, err := NewMarkdown("notty", 80)
	if err != nil {
		t.Fatalf("NewMarkdown failed: %v", err)
	}

	tests := []struct {
		name     string
		input    string
		contains []string
	}{
		{"plain text", "X is Y", []string{"X is Y"}},
		{"code fence", "```\nboom\n```", []string{"boom"}},
		{"list", "- one\n- two", []string{"one", "two"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := md.Render(tt.input)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("Render(%q) = %q, want it to contain %q", tt.input, got, want)
				}
			}
			if strings.HasPrefix(got, "\n") || strings.HasSuffix(got, "\n") {
				t.Errorf("Render(%q) has surrounding newlines: %q", tt.input, got)
			}
		})
	}
}

func TestMarkdown_Deterministic(t *testing.T) {
	md, err := NewMarkdown("notty", 60)
	if err != nil {
		t.Fatalf("NewMarkdown failed: %v", err)
	}

	in := "# Title\n\nSome *emphasis* and a [link](https://example.com)."
	if md.Render(in) != md.Render(in) {
		t.Error("Render is not deterministic")
	}
}

func TestNewMarkdown_UnknownStyle(t *testing.T) {
	if _, err := NewMarkdown("/nonexistent/style.json", 80); err == nil {
		t.Error("expected error for missing style file")
	}
}

func TestPlainAndFunc(t *testing.T) {
	if got := Plain.Render("**raw**"); got != "**raw**" {
		t.Errorf("Plain.Render = %q", got)
	}

	upper := Func(strings.ToUpper)
	if got := upper.Render("abc"); got != "ABC" {
		t.Errorf("Func.Render = %q", got)
	}
}
