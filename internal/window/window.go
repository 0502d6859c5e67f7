// Package window drives screen navigation from discrete key input.
//
// Every screen is a Window holding its own command table. A key is looked up
// in the active window's table and the bound Transition receives the Machine
// exclusively, returning the next Window or nil to end the program.
package window

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"

	"github.com/verte-zerg/trace/internal/corpus"
	"github.com/verte-zerg/trace/internal/history"
	"github.com/verte-zerg/trace/internal/model"
	"github.com/verte-zerg/trace/internal/session"
)

// Kind identifies a screen variant.
type Kind int

const (
	KindMainMenu Kind = iota
	KindPractice
	KindResults
	KindStatistics
	KindUsername
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindMainMenu:
		return "main-menu"
	case KindPractice:
		return "practice"
	case KindResults:
		return "results"
	case KindStatistics:
		return "statistics"
	case KindUsername:
		return "username"
	case KindError:
		return "error"
	default:
		return "unknown"
	}
}

// Transition mutates the machine state and returns the next window.
// A nil window ends the program.
type Transition func(m *Machine) *Window

// Command binds keys to a transition.
type Command struct {
	Binding key.Binding
	Run     Transition
}

// Window is one screen with its command table.
type Window struct {
	Kind    Kind
	Message string

	commands map[string]Command
	help     []key.Binding
}

func newWindow(kind Kind) *Window {
	return &Window{Kind: kind, commands: map[string]Command{}}
}

func (w *Window) bind(b key.Binding, run Transition) {
	for _, k := range b.Keys() {
		w.commands[k] = Command{Binding: b, Run: run}
	}
	if b.Help().Key != "" {
		w.help = append(w.help, b)
	}
}

func (w *Window) bindRunes(runes []rune, helpKey, helpDesc string, run func(r rune) Transition) {
	keys := make([]string, len(runes))
	for i, r := range runes {
		keys[i] = string(r)
	}
	b := key.NewBinding(key.WithKeys(keys...), key.WithHelp(helpKey, helpDesc))
	for _, r := range runes {
		w.commands[string(r)] = Command{Binding: b, Run: run(r)}
	}
	w.help = append(w.help, b)
}

// Lookup returns the command bound to k.
func (w *Window) Lookup(k string) (Command, bool) {
	cmd, ok := w.commands[k]
	return cmd, ok
}

// Bindings lists the window's bindings for help display.
func (w *Window) Bindings() []key.Binding {
	out := make([]key.Binding, len(w.help))
	copy(out, w.help)
	return out
}

// UserStore reads and writes the stored username.
type UserStore interface {
	Read() (string, error)
	Write(name string) error
}

// Deps are the external collaborators a Machine performs I/O through.
type Deps struct {
	Corpus  corpus.Source
	History history.Log
	Users   UserStore
	Now     func() time.Time
	Context context.Context
}

// Machine owns the session state and the active window.
type Machine struct {
	corpus  corpus.Source
	history history.Log
	users   UserStore
	now     func() time.Time
	ctx     context.Context

	window *Window
	done   bool

	username string
	draft    string
	session  *session.Session
	lastRun  model.RunRecord
	runs     []model.RunRecord
	showBars bool
}

// New builds a Machine and resolves its initial window: the main menu when
// a username is stored, username entry otherwise.
func New(deps Deps) *Machine {
	m := &Machine{
		corpus:  deps.Corpus,
		history: deps.History,
		users:   deps.Users,
		now:     deps.Now,
		ctx:     deps.Context,
	}
	if m.now == nil {
		m.now = time.Now
	}
	if m.ctx == nil {
		m.ctx = context.Background()
	}
	m.window = OpenMainMenu(m)
	return m
}

// Dispatch feeds one key to the active window. Unbound keys are ignored.
// It returns false once the program should exit.
func (m *Machine) Dispatch(k string) bool {
	if m.done {
		return false
	}
	cmd, ok := m.window.Lookup(k)
	if !ok {
		return true
	}
	next := cmd.Run(m)
	if next == nil {
		m.done = true
		return false
	}
	m.window = next
	return true
}

// Current returns the active window.
func (m *Machine) Current() *Window {
	return m.window
}

// Done reports whether an exit command was dispatched.
func (m *Machine) Done() bool {
	return m.done
}

// Session returns the active typing session, if any.
func (m *Machine) Session() *session.Session {
	return m.session
}

// Username returns the committed username.
func (m *Machine) Username() string {
	return m.username
}

// Snapshot is a read-only view of the machine for rendering.
type Snapshot struct {
	Kind       Kind
	Message    string
	Bindings   []key.Binding
	Username   string
	Draft      string
	HasSession bool
	Session    session.View
	LastRun    model.RunRecord
	Runs       []model.RunRecord
	ShowBars   bool
}

// Snapshot copies everything a renderer needs.
func (m *Machine) Snapshot() Snapshot {
	snap := Snapshot{
		Kind:     m.window.Kind,
		Message:  m.window.Message,
		Bindings: m.window.Bindings(),
		Username: m.username,
		Draft:    m.draft,
		LastRun:  m.lastRun,
		Runs:     append([]model.RunRecord(nil), m.runs...),
		ShowBars: m.showBars,
	}
	if m.session != nil {
		snap.HasSession = true
		snap.Session = m.session.Snapshot()
	}
	return snap
}
