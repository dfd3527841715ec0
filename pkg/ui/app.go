package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	gtalkerr "github.com/theapemachine/gtalk/pkg/errors"
)

const gap = "\n\n"

// Asker resolves one query into terminal-ready output.
type Asker interface {
	Ask(ctx context.Context, query string) (string, error)
}

// Message types for internal events
type answerMsg struct{ text string }
type answerErrMsg struct{ err error }

type model struct {
	viewport viewport.Model
	textarea textarea.Model
	messages []string
	asker    Asker
	waiting  bool
}

func New(asker Asker) tea.Model {
	ta := textarea.New()
	ta.Placeholder = "Ask Google AI Mode anything..."
	ta.Focus()

	ta.Prompt = "┃ "
	ta.CharLimit = 500

	ta.SetWidth(80)
	ta.SetHeight(3)

	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.ShowLineNumbers = false
	ta.KeyMap.InsertNewline.SetEnabled(false)

	vp := viewport.New(80, 20)
	vp.SetContent(`Welcome to gtalk!
Type a query and press Enter to ask Google AI Mode.
Press Ctrl+C or Esc to quit.`)

	return model{
		textarea: ta,
		messages: []string{},
		viewport: vp,
		asker:    asker,
	}
}

func (m model) Init() tea.Cmd {
	return textarea.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
	)

	m.textarea, tiCmd = m.textarea.Update(msg)
	m.viewport, vpCmd = m.viewport.Update(msg)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.viewport.Width = msg.Width
		m.textarea.SetWidth(msg.Width)
		m.viewport.Height = msg.Height - m.textarea.Height() - lipgloss.Height(gap) - 2
		m.refresh()

	case answerMsg:
		m.waiting = false
		m.messages = append(m.messages, answerStyle.Render("AI: ")+msg.text)
		m.refresh()

	case answerErrMsg:
		m.waiting = false
		m.messages = append(m.messages, errorStyle.Render("Error: ")+describe(msg.err))
		m.refresh()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			query := strings.TrimSpace(m.textarea.Value())
			if query == "" || m.waiting {
				break
			}

			m.messages = append(
				m.messages,
				senderStyle.Render("You: ")+query,
				statusStyle.Render("Searching..."),
			)
			m.waiting = true
			m.textarea.Reset()
			m.refresh()

			return m, tea.Batch(tiCmd, vpCmd, m.ask(query))
		}
	}

	return m, tea.Batch(tiCmd, vpCmd)
}

func (m model) View() string {
	return fmt.Sprintf(
		"%s%s%s",
		m.viewport.View(),
		gap,
		m.textarea.View(),
	)
}

// refresh re-renders the conversation into the viewport and scrolls down.
func (m *model) refresh() {
	if len(m.messages) > 0 {
		m.viewport.SetContent(
			lipgloss.NewStyle().Width(m.viewport.Width).Render(strings.Join(m.messages, "\n")),
		)
	}
	m.viewport.GotoBottom()
}

// ask runs the query off the update loop so the UI stays responsive while
// the browser resolves it.
func (m model) ask(query string) tea.Cmd {
	asker := m.asker
	return func() tea.Msg {
		out, err := asker.Ask(context.Background(), query)
		if err != nil {
			return answerErrMsg{err: err}
		}
		return answerMsg{text: out}
	}
}

func describe(err error) string {
	switch {
	case errors.Is(err, gtalkerr.ErrBotDetected):
		return "Google has detected automated access. Wait a few minutes or change networks."
	case errors.Is(err, gtalkerr.ErrNoAnswer):
		return "No AI summary found. Try rephrasing the query."
	default:
		return err.Error()
	}
}
