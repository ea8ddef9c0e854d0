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

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/sirseerhq/sirseer-dash/internal/github"
)

const (
	defaultWidth    = 100
	timestampLayout = "2006-01-02 15:04"
	emptyHistory    = "No questions yet. Ask something about your repositories below."
)

func newTable(columns []table.Column, st styles) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithHeight(10),
	)
	t.SetStyles(st.table)
	return t
}

// titleWidth gives the title column whatever the fixed columns leave over.
func titleWidth(width, fixed int) int {
	if width <= 0 {
		width = defaultWidth
	}
	if w := width - fixed; w > 20 {
		return w
	}
	return 20
}

func pullColumns(width int) []table.Column {
	return []table.Column{
		{Title: "Pull Request", Width: 24},
		{Title: "Title", Width: titleWidth(width, 24+20+20+8)},
		{Title: "Assignees", Width: 20},
		{Title: "Reviewers", Width: 20},
	}
}

func issueColumns(width int) []table.Column {
	return []table.Column{
		{Title: "Issue", Width: 24},
		{Title: "Title", Width: titleWidth(width, 24+16+6)},
		{Title: "Author", Width: 16},
	}
}

func pullRows(pulls []github.PullRequest) []table.Row {
	rows := make([]table.Row, 0, len(pulls))
	for _, p := range pulls {
		rows = append(rows, table.Row{p.Ref(), p.Title, p.AssigneeList(), p.ReviewerList()})
	}
	return rows
}

func issueRows(issues []github.Issue) []table.Row {
	rows := make([]table.Row, 0, len(issues))
	for _, i := range issues {
		rows = append(rows, table.Row{i.Ref(), i.Title, i.Author})
	}
	return rows
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	switch m.activeTab {
	case tabPulls:
		b.WriteString(m.renderPulls())
	case tabIssues:
		b.WriteString(m.renderIssues())
	case tabQA:
		b.WriteString(m.conversation.View())
		b.WriteString("\n")
		b.WriteString(m.input.View())
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	if m.activeTab == tabQA {
		b.WriteString(m.help.View(qaKeyMap{m.keys}))
	} else {
		b.WriteString(m.help.View(m.keys))
	}
	return b.String()
}

func (m Model) renderHeader() string {
	parts := []string{m.styles.title.Render("sirseer dash")}
	for i, name := range tabNames {
		if i == m.activeTab {
			parts = append(parts, m.styles.activeTab.Render(name))
		} else {
			parts = append(parts, m.styles.tab.Render(name))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m Model) renderPulls() string {
	if !m.pullsLoaded {
		return m.styles.empty.Render("Loading pull requests...")
	}
	if len(m.pulls) == 0 {
		return m.styles.empty.Render("No open pull requests.")
	}
	view := m.pullTable.View()
	if c := m.pullTable.Cursor(); c >= 0 && c < len(m.pulls) {
		view += "\n" + m.styles.link.Render(m.pulls[c].URL())
	}
	return view
}

func (m Model) renderIssues() string {
	if !m.issuesLoaded {
		return m.styles.empty.Render("Loading issues...")
	}
	if len(m.issues) == 0 {
		return m.styles.empty.Render("No open issues.")
	}
	view := m.issueTable.View()
	if c := m.issueTable.Cursor(); c >= 0 && c < len(m.issues) {
		view += "\n" + m.styles.link.Render(m.issues[c].URL())
	}
	return view
}

// renderConversation lays out the history newest first.
func (m Model) renderConversation() string {
	turns := m.store.Turns()
	if len(turns) == 0 {
		return m.styles.empty.Render(emptyHistory)
	}

	blocks := make([]string, 0, len(turns))
	for _, t := range turns {
		header := m.styles.question.Render("Q: "+t.Question) + "  " +
			m.styles.timestamp.Render(t.CreatedAt.Format(timestampLayout))

		var body string
		switch {
		case t.Pending():
			body = m.spinner.View() + " " + m.styles.pending.Render("Thinking...")
		case t.Failed:
			body = m.styles.failed.Render("✗ failed") + "\n" + *t.Answer
		default:
			body = *t.Answer
		}
		blocks = append(blocks, m.styles.turn.Render(header+"\n"+body))
	}
	return strings.Join(blocks, "\n")
}

func (m Model) renderStatus() string {
	status := m.styles.status.Render(m.status)
	if m.statusIsErr {
		status = m.styles.warning.Render(m.status)
	}
	if m.tracker != nil {
		dispatches, failures := m.tracker.Totals()
		status += m.styles.status.Render(fmt.Sprintf(" · %d dispatches, %d failed", dispatches, failures))
	}
	return status
}
