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

// Package tui is the interactive dashboard: open pull requests, open issues
// and a Q&A conversation, all served by one GraphQL endpoint.
//
// The Model owns every piece of mutable state, including the conversation
// store. Dispatches run as tea.Cmd functions and report back through
// messages, so state is only ever changed inside Update.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/sirseerhq/sirseer-dash/internal/conversation"
	"github.com/sirseerhq/sirseer-dash/internal/dispatch"
	"github.com/sirseerhq/sirseer-dash/internal/github"
	"github.com/sirseerhq/sirseer-dash/internal/metadata"
	"github.com/sirseerhq/sirseer-dash/internal/render"
)

const (
	tabPulls = iota
	tabIssues
	tabQA
	tabCount
)

var tabNames = [tabCount]string{"Pull Requests", "Issues", "Q&A"}

// Options wires the dashboard to its collaborators. Only Client is required.
type Options struct {
	Client   *dispatch.Client
	Renderer render.Renderer
	Logger   *zap.Logger
	Tracker  *metadata.Tracker

	// Refresh reloads both lists periodically. Zero disables it.
	Refresh time.Duration

	// Now stamps submitted questions. Defaults to time.Now.
	Now func() time.Time
}

// Model is the bubbletea model of the dashboard.
type Model struct {
	ctx     context.Context
	client  *dispatch.Client
	store   *conversation.Store
	logger  *zap.Logger
	tracker *metadata.Tracker
	refresh time.Duration

	keys   keyMap
	styles styles
	help   help.Model

	activeTab int
	width     int
	height    int

	issues       []github.Issue
	issuesLoaded bool
	issueTable   table.Model

	pulls       []github.PullRequest
	pullsLoaded bool
	pullTable   table.Model

	input        textinput.Model
	conversation viewport.Model
	spinner      spinner.Model

	status      string
	statusIsErr bool
}

// New creates the dashboard model. ctx bounds every dispatch it starts.
func New(ctx context.Context, opts Options) Model {
	renderer := opts.Renderer
	if renderer == nil {
		renderer = render.Plain
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	storeOpts := []conversation.Option{conversation.WithRenderer(renderer)}
	if opts.Now != nil {
		storeOpts = append(storeOpts, conversation.WithClock(opts.Now))
	}

	st := newStyles()

	input := textinput.New()
	input.Prompt = "❯ "
	input.Placeholder = "Ask a question about your repositories"
	input.CharLimit = 2000

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = st.pending

	m := Model{
		ctx:          ctx,
		client:       opts.Client,
		store:        conversation.NewStore(storeOpts...),
		logger:       logger,
		tracker:      opts.Tracker,
		refresh:      opts.Refresh,
		keys:         newKeyMap(),
		styles:       st,
		help:         help.New(),
		activeTab:    tabPulls,
		issueTable:   newTable(issueColumns(defaultWidth), st),
		pullTable:    newTable(pullColumns(defaultWidth), st),
		input:        input,
		conversation: viewport.New(defaultWidth, 10),
		spinner:      sp,
		status:       "loading...",
	}
	m.pullTable.Focus()
	m.syncConversation()
	return m
}

// Run starts the dashboard on the terminal's alternate screen and blocks
// until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(New(ctx, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.reload(),
		refreshEvery(m.refresh),
	)
}

// reload dispatches both list queries. They are independent and may
// complete in any order.
func (m Model) reload() tea.Cmd {
	return tea.Batch(
		loadPullsCmd(m.ctx, m.client),
		loadIssuesCmd(m.ctx, m.client),
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case issuesLoadedMsg:
		m.issues = msg.issues
		m.issuesLoaded = true
		m.issueTable.SetRows(issueRows(m.issues))
		m.setStatus(fmt.Sprintf("loaded %d issues", len(m.issues)), false)
	case pullsLoadedMsg:
		m.pulls = msg.pulls
		m.pullsLoaded = true
		m.pullTable.SetRows(pullRows(m.pulls))
		m.setStatus(fmt.Sprintf("loaded %d pull requests", len(m.pulls)), false)
	case listFailedMsg:
		m.logger.Warn("list query failed",
			zap.String("query", msg.query),
			zap.Stringer("kind", dispatch.KindOf(msg.err)),
			zap.Error(msg.err))
		m.setStatus(msg.err.Error(), true)
	case answerMsg:
		if msg.err != nil {
			m.logger.Warn("question failed", zap.String("turn", msg.id.String()), zap.Error(msg.err))
		}
		m.store.Resolve(msg.id, conversation.Outcome{Answer: msg.answer.Answer, Err: msg.err})
		m.syncConversation()
	case refreshMsg:
		cmds = append(cmds, m.reload(), refreshEvery(m.refresh))
	case spinner.TickMsg:
		// Ticking stops once nothing is pending; submit restarts it.
		if m.store.Loading() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			m.syncConversation()
			cmds = append(cmds, cmd)
		}
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.NextTab):
		return m.switchTab(1)
	case key.Matches(msg, m.keys.PrevTab):
		return m.switchTab(-1)
	case key.Matches(msg, m.keys.Refresh):
		m.setStatus("refreshing...", false)
		return m, m.reload()
	}

	var cmd tea.Cmd
	switch m.activeTab {
	case tabPulls:
		m.pullTable, cmd = m.pullTable.Update(msg)
	case tabIssues:
		m.issueTable, cmd = m.issueTable.Update(msg)
	case tabQA:
		switch {
		case key.Matches(msg, m.keys.Submit):
			return m.submit()
		case key.Matches(msg, m.keys.Clear):
			m.store.Clear()
			m.syncConversation()
			return m, nil
		case key.Matches(msg, m.keys.UpDown):
			m.conversation, cmd = m.conversation.Update(msg)
		default:
			m.input, cmd = m.input.Update(msg)
		}
	}
	return m, cmd
}

// submit adds the typed question to the history and dispatches it. Blank
// questions and questions typed while an answer is pending are refused.
func (m Model) submit() (tea.Model, tea.Cmd) {
	question := m.input.Value()
	id, ok := m.store.Submit(question)
	if !ok {
		if m.store.Loading() {
			m.setStatus("waiting for the previous answer", false)
		}
		return m, nil
	}

	m.input.Reset()
	m.syncConversation()
	m.conversation.GotoTop()
	return m, tea.Batch(
		askCmd(m.ctx, m.client, id, question),
		m.spinner.Tick,
	)
}

func (m Model) switchTab(step int) (tea.Model, tea.Cmd) {
	m.activeTab = (m.activeTab + step + tabCount) % tabCount

	m.pullTable.Blur()
	m.issueTable.Blur()
	m.input.Blur()

	switch m.activeTab {
	case tabPulls:
		m.pullTable.Focus()
	case tabIssues:
		m.issueTable.Focus()
	case tabQA:
		return m, m.input.Focus()
	}
	return m, nil
}

func (m *Model) setStatus(status string, isErr bool) {
	m.status = status
	m.statusIsErr = isErr
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width

	// header, blank line, status line and help line
	body := height - 4
	if body < 3 {
		body = 3
	}

	m.pullTable.SetColumns(pullColumns(width))
	m.pullTable.SetHeight(body - 2)
	m.issueTable.SetColumns(issueColumns(width))
	m.issueTable.SetHeight(body - 2)

	m.input.Width = width - 4
	m.conversation.Width = width
	m.conversation.Height = body - 2
	m.syncConversation()
}

func (m *Model) syncConversation() {
	m.conversation.SetContent(m.renderConversation())
}
