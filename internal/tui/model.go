// Package tui provides the Bubble Tea interface over the window machine.
package tui

import (
	"log"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/trace/internal/window"
)

const liveRefresh = time.Second

type tickMsg time.Time

// Model implements the Bubble Tea UI. Every key press is dispatched to the
// machine; the view is rendered from its snapshot.
type Model struct {
	machine *window.Machine

	width  int
	height int

	help     help.Model
	progress progress.Model
	input    textinput.Model

	lastKind window.Kind
}

var (
	correctStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A"))
	incorrectStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pendingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	currentWordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	cursorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Background(lipgloss.Color("#4A4A4A"))
	footerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	titleStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")).Bold(true)
	accentStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#5FD7FF"))
	valueStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#FADB14"))
	activatorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FADB14")).Bold(true).Underline(true)
	errorStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	buttonStyle      = lipgloss.NewStyle().
				Padding(0, 2).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	boxStyle = lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	cardStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
)

// NewModel wraps a machine for Bubble Tea.
func NewModel(machine *window.Machine) *Model {
	input := textinput.New()
	input.Prompt = "> "
	input.Placeholder = "your name"
	input.CharLimit = 0
	input.Cursor.SetMode(cursor.CursorStatic)
	input.Focus()

	return &Model{
		machine:  machine,
		help:     help.New(),
		progress: progress.New(progress.WithSolidFill("#5FD7FF"), progress.WithoutPercentage()),
		input:    input,
		lastKind: machine.Current().Kind,
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(liveRefresh, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tickMsg:
		// Re-rendering refreshes the live WPM on the practice screen.
		return m, tick()
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		for _, k := range dispatchKeys(msg) {
			if !m.machine.Dispatch(k) {
				log.Printf("exit from %s", m.lastKind)
				return m, tea.Quit
			}
			if kind := m.machine.Current().Kind; kind != m.lastKind {
				log.Printf("window %s -> %s", m.lastKind, kind)
				m.lastKind = kind
			}
		}
		return m, nil
	default:
		return m, nil
	}
}

// dispatchKeys translates a key event into machine key names. Pasted runes
// are split so each one is typed separately.
func dispatchKeys(msg tea.KeyMsg) []string {
	switch msg.Type {
	case tea.KeyRunes:
		if msg.Alt {
			return nil
		}
		keys := make([]string, len(msg.Runes))
		for i, r := range msg.Runes {
			keys[i] = string(r)
		}
		return keys
	case tea.KeySpace:
		return []string{" "}
	case tea.KeyBackspace, tea.KeyDelete:
		return []string{"backspace"}
	default:
		return []string{msg.String()}
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	snap := m.machine.Snapshot()
	if m.width == 0 || m.height == 0 {
		return m.renderBody(snap, 80)
	}
	body := m.renderBody(snap, m.width)
	footer := m.renderFooter(snap)
	if footer == "" || m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
	}
	bodyHeight := m.height - 1
	placed := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, body)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return placed + "\n" + footerLine
}

func (m *Model) renderBody(snap window.Snapshot, width int) string {
	switch snap.Kind {
	case window.KindMainMenu:
		return renderMenu(snap)
	case window.KindPractice:
		return m.renderPractice(snap, width)
	case window.KindResults:
		return renderResults(snap)
	case window.KindStatistics:
		return m.renderStatistics(snap, width)
	case window.KindUsername:
		return m.renderUsername(snap, width)
	case window.KindError:
		return renderError(snap, width)
	default:
		return ""
	}
}

func (m *Model) renderFooter(snap window.Snapshot) string {
	if len(snap.Bindings) == 0 {
		return ""
	}
	return footerStyle.Render(m.help.ShortHelpView(snap.Bindings))
}
