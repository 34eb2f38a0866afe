package tui

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/f3rmion/flesch/internal/clipboard"
	"github.com/f3rmion/flesch/internal/form"
	"github.com/f3rmion/flesch/internal/logging"
	"github.com/mattn/go-runewidth"
)

// focusTarget is the element receiving key input.
type focusTarget int

const (
	focusInput focusTarget = iota
	focusButton
)

// scoredMsg carries a finished request back to the event loop.
type scoredMsg struct {
	done form.Completion
}

type clearCopiedMsg struct{}

func clearCopiedAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearCopiedMsg{}
	})
}

// Options configures the app.
type Options struct {
	Endpoint string
	Logger   *slog.Logger
}

// AppModel is the scoring form.
type AppModel struct {
	ctx  context.Context
	ctrl *form.Controller
	page *page

	endpoint string
	logger   *slog.Logger

	focus    focusTarget
	spinner  spinner.Model
	spinning bool
	help     help.Model
	keys     keyMap

	lastText string
	copied   bool

	width  int
	height int
}

// NewApp creates the form and binds the controller's handlers to it.
func NewApp(ctx context.Context, scorer form.Scorer, opts Options) AppModel {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	p := newPage()
	ctrl := form.NewController(p.input, p.grade, p.score, scorer, form.WithLogger(logger))
	ctrl.Bind(p)

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = LoadingStyle

	return AppModel{
		ctx:      ctx,
		ctrl:     ctrl,
		page:     p,
		endpoint: opts.Endpoint,
		logger:   logger,
		focus:    focusInput,
		spinner:  s,
		help:     help.New(),
		keys:     defaultKeyMap(),
	}
}

// Init initializes the model
func (m AppModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Score):
			cmd := m.click()
			return m, cmd
		case key.Matches(msg, m.keys.Copy):
			cmd := m.copyResult()
			return m, cmd
		case key.Matches(msg, m.keys.Next), key.Matches(msg, m.keys.Prev):
			cmd := m.toggleFocus()
			return m, cmd
		}

		if m.focus == focusButton {
			switch {
			case key.Matches(msg, m.keys.Submit), key.Matches(msg, m.keys.Press):
				cmd := m.click()
				return m, cmd
			case key.Matches(msg, m.keys.Help):
				m.help.ShowAll = !m.help.ShowAll
				return m, nil
			}
			return m, nil
		}

		if key.Matches(msg, m.keys.Submit) {
			if m.page.fireSubmit() {
				m.page.reset()
			}
			return m, nil
		}

	case scoredMsg:
		if !msg.done.Apply() && msg.done.Err != nil {
			m.logger.Debug("score dropped",
				"request_id", msg.done.RequestID,
				"seq", msg.done.Seq,
				"error", msg.done.Err,
			)
		}
		return m, nil

	case spinner.TickMsg:
		if !m.ctrl.Awaiting() {
			m.spinning = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case clearCopiedMsg:
		m.copied = false
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if w := msg.Width - 12; w > 20 {
			m.page.input.model.Width = w
		}
		return m, nil
	}

	var cmd tea.Cmd
	if m.focus == focusInput {
		m.page.input.model, cmd = m.page.input.model.Update(msg)
	}
	return m, cmd
}

// click presses the Score button. Each qualifying press starts its own
// request; their results are applied in arrival order.
func (m *AppModel) click() tea.Cmd {
	task, ok := m.page.fireClick(m.ctx)
	if !ok {
		return nil
	}
	m.lastText = m.page.input.Value()

	cmds := []tea.Cmd{func() tea.Msg {
		return scoredMsg{done: task()}
	}}
	if !m.spinning {
		m.spinning = true
		cmds = append(cmds, m.spinner.Tick)
	}
	return tea.Batch(cmds...)
}

func (m *AppModel) toggleFocus() tea.Cmd {
	if m.focus == focusInput {
		m.focus = focusButton
		m.page.input.model.Blur()
		return nil
	}
	m.focus = focusInput
	return m.page.input.model.Focus()
}

func (m *AppModel) copyResult() tea.Cmd {
	if !m.page.grade.set && !m.page.score.set {
		return nil
	}
	text := clipboard.FormatResult(m.page.grade.Text(), m.page.score.Text())
	if err := clipboard.Write(text); err != nil {
		m.logger.Debug("clipboard write failed", "error", err)
		return nil
	}
	m.copied = true
	return clearCopiedAfter(2 * time.Second)
}

// Grade returns the text of the grade display.
func (m AppModel) Grade() string {
	return m.page.grade.Text()
}

// Score returns the text of the score display.
func (m AppModel) Score() string {
	return m.page.score.Text()
}

// Awaiting reports whether a request is in flight.
func (m AppModel) Awaiting() bool {
	return m.ctrl.Awaiting()
}

// View renders the form
func (m AppModel) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("Flesch-Kincaid Readability"))
	b.WriteString("\n")
	if m.endpoint != "" {
		b.WriteString(SubtitleStyle.Render(m.endpoint))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	inputStyle := InputBoxStyle
	buttonStyle := ButtonStyle
	if m.focus == focusInput {
		inputStyle = InputBoxFocusedStyle
	} else {
		buttonStyle = ButtonFocusedStyle
	}
	b.WriteString(inputStyle.Render(m.page.input.model.View()))
	b.WriteString("\n")

	button := buttonStyle.Render("Score")
	if m.ctrl.Awaiting() {
		button = lipgloss.JoinHorizontal(lipgloss.Bottom, button, "  ",
			m.spinner.View()+LoadingStyle.Render(" scoring..."))
	}
	b.WriteString(button)
	b.WriteString("\n\n")

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		m.page.grade.render(), "  ", m.page.score.render()))
	b.WriteString("\n")

	if m.lastText != "" {
		width := 60
		if m.width > 10 {
			width = m.width - 10
		}
		b.WriteString(EchoStyle.Render(runewidth.Truncate(oneLine(m.lastText), width, "…")))
		b.WriteString("\n")
	}

	if m.copied {
		b.WriteString(CopiedStyle.Render("Copied!"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return ContentStyle.Render(b.String())
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
