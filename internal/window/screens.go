package window

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"

	"github.com/verte-zerg/trace/internal/model"
	"github.com/verte-zerg/trace/internal/session"
	"github.com/verte-zerg/trace/internal/userstore"
)

var (
	keyPractice    = key.NewBinding(key.WithKeys("p", "P"), key.WithHelp("p", "practice"))
	keyStatistics  = key.NewBinding(key.WithKeys("s", "S"), key.WithHelp("s", "statistics"))
	keyUsername    = key.NewBinding(key.WithKeys("u", "U"), key.WithHelp("u", "username"))
	keyExit        = key.NewBinding(key.WithKeys("e", "E", "esc"), key.WithHelp("e/esc", "exit"))
	keyBack        = key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back"))
	keyBackspace   = key.NewBinding(key.WithKeys("backspace"), key.WithHelp("backspace", "correct"))
	keyRetry       = key.NewBinding(key.WithKeys("r", "R"), key.WithHelp("r", "reset"))
	keyMenu        = key.NewBinding(key.WithKeys("m", "M"), key.WithHelp("m", "menu"))
	keyToggle      = key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "line/bar"))
	keySubmit      = key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save"))
	keyErase       = key.NewBinding(key.WithKeys("backspace"), key.WithHelp("backspace", "erase"))
	keyAcknowledge = key.NewBinding(key.WithKeys("esc", "enter"), key.WithHelp("esc", "back"))
)

func exit(*Machine) *Window { return nil }

// OpenMainMenu shows the main menu, routing to username entry when no
// username is known yet.
func OpenMainMenu(m *Machine) *Window {
	if m.username == "" {
		name, err := m.users.Read()
		switch {
		case errors.Is(err, userstore.ErrNotFound):
			return OpenUsername(m)
		case err != nil:
			return OpenError(fmt.Sprintf("Sorry, the username could not be read.\n%v", err), OpenUsername)
		}
		m.username = name
	}
	w := newWindow(KindMainMenu)
	w.bind(keyPractice, StartPractice)
	w.bind(keyStatistics, OpenStatistics)
	w.bind(keyUsername, OpenUsername)
	w.bind(keyExit, exit)
	return w
}

// StartPractice resets the session with a fresh paragraph.
func StartPractice(m *Machine) *Window {
	paragraph, err := m.corpus.ChooseRandom()
	if err != nil {
		return OpenError(fmt.Sprintf("Sorry, an error occurred while loading the practice text.\n%v", err), OpenMainMenu)
	}
	m.session = session.New(paragraph, m.now)
	return practiceWindow()
}

func practiceWindow() *Window {
	w := newWindow(KindPractice)
	w.bindRunes(model.Alphabet(), "a-z…", "type", pressChar)
	w.bind(keyBackspace, pressBackspace)
	w.bind(keyBack, OpenMainMenu)
	return w
}

func pressChar(r rune) Transition {
	return func(m *Machine) *Window {
		if m.session == nil {
			return OpenMainMenu(m)
		}
		if m.session.PressChar(r) == session.OutcomeComplete {
			return finishPractice(m)
		}
		return practiceWindow()
	}
}

func pressBackspace(m *Machine) *Window {
	if m.session != nil {
		m.session.PressBackspace()
	}
	return practiceWindow()
}

func finishPractice(m *Machine) *Window {
	m.lastRun = m.session.Run()
	if err := m.history.Append(m.ctx, m.lastRun); err != nil {
		return OpenError(fmt.Sprintf("Sorry, the run could not be saved.\n%v", err), openResults)
	}
	return openResults(m)
}

func openResults(*Machine) *Window {
	w := newWindow(KindResults)
	w.bind(keyRetry, StartPractice)
	w.bind(keyMenu, OpenMainMenu)
	w.bind(keyStatistics, OpenStatistics)
	w.bind(keyBack, OpenMainMenu)
	return w
}

// OpenStatistics loads the run history and shows its charts.
func OpenStatistics(m *Machine) *Window {
	runs, err := m.history.LoadAll(m.ctx)
	if err != nil {
		return OpenError(fmt.Sprintf("Sorry, the run history could not be read.\n%v", err), OpenMainMenu)
	}
	m.runs = runs
	return statisticsWindow()
}

func statisticsWindow() *Window {
	w := newWindow(KindStatistics)
	w.bind(keyToggle, toggleCharts)
	w.bind(keyBack, OpenMainMenu)
	return w
}

func toggleCharts(m *Machine) *Window {
	m.showBars = !m.showBars
	return statisticsWindow()
}

// OpenUsername starts editing the username from its current value.
func OpenUsername(m *Machine) *Window {
	m.draft = m.username
	return usernameWindow(m)
}

func usernameWindow(m *Machine) *Window {
	w := newWindow(KindUsername)
	w.bindRunes(model.Alphabet(), "a-z…", "type", appendDraft)
	w.bind(keyErase, eraseDraft)
	w.bind(keySubmit, submitUsername)
	if m.username != "" {
		w.bind(keyBack, OpenMainMenu)
	}
	return w
}

func appendDraft(r rune) Transition {
	return func(m *Machine) *Window {
		m.draft += string(r)
		return usernameWindow(m)
	}
}

func eraseDraft(m *Machine) *Window {
	if m.draft != "" {
		_, size := utf8.DecodeLastRuneInString(m.draft)
		m.draft = m.draft[:len(m.draft)-size]
	}
	return usernameWindow(m)
}

func submitUsername(m *Machine) *Window {
	name := strings.TrimSpace(m.draft)
	if name == "" {
		return usernameWindow(m)
	}
	if err := m.users.Write(name); err != nil {
		return OpenError(fmt.Sprintf("Sorry, the username could not be saved.\n%v", err), usernameWindow)
	}
	m.username = name
	m.draft = ""
	return OpenMainMenu(m)
}

// OpenError shows message until acknowledged, then runs back.
func OpenError(message string, back Transition) *Window {
	w := newWindow(KindError)
	w.Message = message
	w.bind(keyAcknowledge, back)
	return w
}
