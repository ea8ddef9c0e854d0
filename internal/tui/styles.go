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
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	title     lipgloss.Style
	tab       lipgloss.Style
	activeTab lipgloss.Style
	question  lipgloss.Style
	timestamp lipgloss.Style
	pending   lipgloss.Style
	failed    lipgloss.Style
	empty     lipgloss.Style
	status    lipgloss.Style
	warning   lipgloss.Style
	link      lipgloss.Style
	turn      lipgloss.Style
	table     table.Styles
}

func newStyles() styles {
	tableStyles := table.DefaultStyles()
	tableStyles.Header = tableStyles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	tableStyles.Selected = tableStyles.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)

	return styles{
		title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).MarginRight(2),
		tab:       lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("245")),
		activeTab: lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")),
		question:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252")),
		timestamp: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		pending:   lipgloss.NewStyle().Foreground(lipgloss.Color("159")),
		failed:    lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		empty:     lipgloss.NewStyle().Faint(true),
		status:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		warning:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		link:      lipgloss.NewStyle().Underline(true).Foreground(lipgloss.Color("39")),
		turn:      lipgloss.NewStyle().MarginBottom(1),
		table:     tableStyles,
	}
}
