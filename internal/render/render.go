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

// Package render turns answer text into terminal markup.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
)

// Renderer converts markdown text to displayable markup. Implementations
// must be pure: the same input always yields the same output.
type Renderer interface {
	Render(text string) string
}

// Func adapts a plain function to Renderer.
type Func func(string) string

// Render implements Renderer.
func (f Func) Render(text string) string {
	return f(text)
}

// Plain returns text unchanged.
var Plain Renderer = Func(func(s string) string { return s })

// Markdown renders with glamour.
type Markdown struct {
	term *glamour.TermRenderer
}

// NewMarkdown builds a glamour renderer. style is "auto" to follow the
// terminal background, a standard style name such as "dark", "light" or
// "notty", or a path to a JSON style file.
func NewMarkdown(style string, wordWrap int) (*Markdown, error) {
	styleOpt := glamour.WithAutoStyle()
	if style != "" && style != "auto" {
		styleOpt = glamour.WithStylePath(style)
	}

	term, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(wordWrap))
	if err != nil {
		return nil, fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	return &Markdown{term: term}, nil
}

// Render implements Renderer. Text glamour cannot render is returned as is,
// so an answer is never lost to a rendering problem.
func (m *Markdown) Render(text string) string {
	out, err := m.term.Render(text)
	if err != nil {
		return text
	}
	return strings.Trim(out, "\n")
}
