// Package tui renders an interactive calculator session with bubbletea.
// The Model translates key events into session input units and draws the
// session snapshot; bubbletea's program loop owns the terminal raw mode
// and restores it on every exit path.
package tui

import (
	"basejump/internal/config"
	"basejump/internal/log"
	"basejump/internal/session"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

type Model struct {
	session  *session.Session
	viewport viewport.Model

	showWelcome bool
	quitting    bool
}

// New creates a model around a fresh session.
func New(cfg *config.Config) *Model {
	return &Model{
		session:     session.New(cfg),
		viewport:    viewport.New(80, 20),
		showWelcome: true,
	}
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.viewport.Width = msg.Width
		if msg.Height > 1 {
			m.viewport.Height = msg.Height - 1
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}
	return m, nil
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// While the history screen is up, scrolling keys go to the viewport;
	// any other key falls through and redraws the prompt.
	if m.session.View() == session.HistoryView {
		switch msg.Type {
		case tea.KeyUp, tea.KeyDown, tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}

	switch msg.Type {
	case tea.KeyCtrlD, tea.KeyCtrlC:
		log.Debugf("terminate signal received")
		m.quitting = true
		return m, tea.Quit
	case tea.KeyEnter:
		m.feed(session.KeyEnter)
	case tea.KeyBackspace:
		m.feed(session.KeyBackspace)
	case tea.KeyEsc:
		m.feed(session.KeyEscape)
	case tea.KeySpace:
		m.feed(' ')
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			if r > 0 && r < 128 {
				m.feed(byte(r))
			}
		}
	}
	return m, nil
}

// feed hands one input unit to the session and refreshes the history
// viewport when the session switches to the history screen.
func (m *Model) feed(ch byte) {
	m.showWelcome = false
	m.session.HandleKey(ch)
	if m.session.View() == session.HistoryView {
		m.viewport.SetContent(renderHistory(m.session.Snapshot()))
		m.viewport.GotoTop()
	}
}

// View implements tea.Model
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	snap := m.session.Snapshot()
	if snap.View == session.HistoryView {
		return m.viewport.View()
	}

	var out string
	if m.showWelcome {
		out += renderWelcome(snap)
	}
	switch snap.View {
	case session.ResultView:
		out += renderResult(snap)
	case session.ErrorView:
		out += ErrorStyle.Render(snap.ErrorLine()) + "\n"
	default:
		out += renderPrompt(snap)
	}
	if snap.Mode == session.CommandMode {
		out += CommandStyle.Render(":"+snap.Command) + "\n"
	}
	return out
}

// Session exposes the underlying session for tests.
func (m *Model) Session() *session.Session {
	return m.session
}
