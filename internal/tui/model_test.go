package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/trace/internal/model"
	"github.com/verte-zerg/trace/internal/window"
)

type stubCorpus struct{}

func (stubCorpus) ChooseRandom() (model.Paragraph, error) {
	return model.Paragraph{Content: "hi", Title: "Greeting", Author: "Anon", Date: "1900"}, nil
}

type stubLog struct {
	runs []model.RunRecord
}

func (l *stubLog) Append(_ context.Context, run model.RunRecord) error {
	l.runs = append(l.runs, run)
	return nil
}

func (l *stubLog) LoadAll(context.Context) ([]model.RunRecord, error) {
	return l.runs, nil
}

type stubUsers struct{ name string }

func (u *stubUsers) Read() (string, error) { return u.name, nil }
func (u *stubUsers) Write(name string) error {
	u.name = name
	return nil
}

func newTestModel(t *testing.T) (*Model, *stubLog) {
	t.Helper()
	log := &stubLog{}
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	machine := window.New(window.Deps{
		Corpus:  stubCorpus{},
		History: log,
		Users:   &stubUsers{name: "ana"},
		Now:     func() time.Time { return clock },
	})
	m := NewModel(machine)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m, log
}

func press(m *Model, msg tea.KeyMsg) tea.Cmd {
	_, cmd := m.Update(msg)
	return cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestDispatchKeys(t *testing.T) {
	cases := []struct {
		msg  tea.KeyMsg
		want []string
	}{
		{runes("ab"), []string{"a", "b"}},
		{tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, []string{" "}},
		{tea.KeyMsg{Type: tea.KeyBackspace}, []string{"backspace"}},
		{tea.KeyMsg{Type: tea.KeyEsc}, []string{"esc"}},
		{tea.KeyMsg{Type: tea.KeyTab}, []string{"tab"}},
		{tea.KeyMsg{Type: tea.KeyEnter}, []string{"enter"}},
	}
	for _, tc := range cases {
		got := dispatchKeys(tc.msg)
		if strings.Join(got, "|") != strings.Join(tc.want, "|") {
			t.Fatalf("keys for %v: expected %q, got %q", tc.msg, tc.want, got)
		}
	}
	if got := dispatchKeys(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("p"), Alt: true}); len(got) != 0 {
		t.Fatalf("expected alt combos to be ignored, got %q", got)
	}
}

func TestPastedRunesCompletePractice(t *testing.T) {
	m, log := newTestModel(t)
	press(m, runes("p"))
	press(m, runes("hi"))
	if len(log.runs) != 1 {
		t.Fatalf("expected one run, got %d", len(log.runs))
	}
	view := m.View()
	for _, want := range []string{"Thank you for playing!", "Greeting", "Anon, 1900"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in results view", want)
		}
	}
}

func TestExitQuits(t *testing.T) {
	m, _ := newTestModel(t)
	cmd := press(m, runes("e"))
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}

func TestCtrlCQuits(t *testing.T) {
	m, _ := newTestModel(t)
	press(m, runes("p"))
	cmd := press(m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
}

func TestMenuView(t *testing.T) {
	m, _ := newTestModel(t)
	view := m.View()
	for _, want := range []string{"Welcome", "ana", "ractice", "tatistics"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in menu view", want)
		}
	}
}

func TestPracticeView(t *testing.T) {
	m, _ := newTestModel(t)
	press(m, runes("p"))
	view := m.View()
	for _, want := range []string{"WPM:", "Accuracy:", "ana"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in practice view", want)
		}
	}
}

func TestStatisticsViews(t *testing.T) {
	m, _ := newTestModel(t)
	press(m, runes("p"))
	press(m, runes("hi"))
	press(m, runes("s"))
	if !strings.Contains(m.View(), "Statistics") {
		t.Fatalf("expected line chart title")
	}
	press(m, tea.KeyMsg{Type: tea.KeyTab})
	view := m.View()
	for _, want := range []string{"Points", "WPM", "Accuracy"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q bar chart", want)
		}
	}
}

func TestStatisticsEmpty(t *testing.T) {
	m, _ := newTestModel(t)
	press(m, runes("s"))
	if !strings.Contains(m.View(), "No runs yet.") {
		t.Fatalf("expected empty statistics message")
	}
}
