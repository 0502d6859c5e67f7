package session

import (
	"math"
	"testing"
	"time"

	"github.com/verte-zerg/trace/internal/model"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestSession(content string) (*Session, *fakeClock) {
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	return New(model.Paragraph{Content: content}, clock.now), clock
}

func TestNewMarksFirstCellCurrent(t *testing.T) {
	s, _ := newTestSession("ab")
	cells := s.Cells()
	if cells[0].Status != model.StatusCurrent {
		t.Fatalf("expected first cell current, got %v", cells[0].Status)
	}
	if cells[1].Status != model.StatusDefault {
		t.Fatalf("expected second cell default, got %v", cells[1].Status)
	}
	if s.WordCount() != 1 {
		t.Fatalf("expected word count 1, got %d", s.WordCount())
	}
}

func TestPressCorrectAdvances(t *testing.T) {
	s, _ := newTestSession("abc")
	if out := s.PressChar('a'); out != OutcomeContinue {
		t.Fatalf("expected continue, got %v", out)
	}
	if s.Cursor() != 1 {
		t.Fatalf("expected cursor 1, got %d", s.Cursor())
	}
	if s.TotalErrors() != 0 || s.CurrentErrors() != 0 {
		t.Fatalf("expected no errors, got %d/%d", s.CurrentErrors(), s.TotalErrors())
	}
	cells := s.Cells()
	if cells[0].Status != model.StatusCorrect || cells[1].Status != model.StatusCurrent {
		t.Fatalf("unexpected statuses: %v %v", cells[0].Status, cells[1].Status)
	}
}

func TestPressWrongIncrementsBothCounters(t *testing.T) {
	s, _ := newTestSession("abc")
	s.PressChar('x')
	if s.Cursor() != 1 {
		t.Fatalf("expected cursor 1, got %d", s.Cursor())
	}
	if s.CurrentErrors() != 1 || s.TotalErrors() != 1 {
		t.Fatalf("expected 1/1 errors, got %d/%d", s.CurrentErrors(), s.TotalErrors())
	}
	if s.Cells()[0].Status != model.StatusWrong {
		t.Fatalf("expected wrong status")
	}
}

func TestBackspaceRestoresCurrentErrors(t *testing.T) {
	s, _ := newTestSession("abc")
	s.PressChar('a')
	s.PressChar('x')
	s.PressBackspace()
	if s.Cursor() != 1 {
		t.Fatalf("expected cursor 1, got %d", s.Cursor())
	}
	cells := s.Cells()
	if cells[1].Status != model.StatusCurrent {
		t.Fatalf("expected reopened cell current, got %v", cells[1].Status)
	}
	if cells[2].Status != model.StatusDefault {
		t.Fatalf("expected next cell reset to default, got %v", cells[2].Status)
	}
	s.PressChar('b')
	if s.CurrentErrors() != 0 {
		t.Fatalf("expected current errors 0, got %d", s.CurrentErrors())
	}
	if s.TotalErrors() != 1 {
		t.Fatalf("expected total errors 1, got %d", s.TotalErrors())
	}
}

func TestBackspaceAtStartIsNoop(t *testing.T) {
	s, _ := newTestSession("ab")
	s.PressBackspace()
	if s.Cursor() != 0 {
		t.Fatalf("expected cursor 0, got %d", s.Cursor())
	}
	if s.Cells()[0].Status != model.StatusCurrent {
		t.Fatalf("expected first cell still current")
	}
}

func TestBackspaceOverCorrectKeepsErrors(t *testing.T) {
	s, _ := newTestSession("ab")
	s.PressChar('a')
	s.PressBackspace()
	if s.CurrentErrors() != 0 {
		t.Fatalf("expected no errors, got %d", s.CurrentErrors())
	}
	if s.Cells()[0].Status != model.StatusCurrent {
		t.Fatalf("expected correct cell reopened as current")
	}
}

func TestCompletionScenario(t *testing.T) {
	s, clock := newTestSession("ab")
	s.PressChar('a')
	clock.advance(time.Second)
	if out := s.PressChar('b'); out != OutcomeComplete {
		t.Fatalf("expected completion, got %v", out)
	}
	run := s.Run()
	if math.Abs(run.WPM-60) > 1e-9 {
		t.Fatalf("expected wpm 60, got %f", run.WPM)
	}
	if run.Accuracy != 1 {
		t.Fatalf("expected accuracy 1, got %f", run.Accuracy)
	}
	if math.Abs(run.TotalPoints-60) > 1e-9 {
		t.Fatalf("expected points 60, got %f", run.TotalPoints)
	}
	if math.Abs(run.Seconds-1) > 1e-9 {
		t.Fatalf("expected 1 second, got %f", run.Seconds)
	}
}

func TestCorrectionScenario(t *testing.T) {
	s, clock := newTestSession("ab")
	s.PressChar('x')
	s.PressBackspace()
	s.PressChar('a')
	clock.advance(2 * time.Second)
	if out := s.PressChar('b'); out != OutcomeComplete {
		t.Fatalf("expected completion, got %v", out)
	}
	if s.TotalErrors() != 1 || s.CurrentErrors() != 0 {
		t.Fatalf("expected errors 0/1, got %d/%d", s.CurrentErrors(), s.TotalErrors())
	}
	if got := s.Run().Accuracy; got != 0.5 {
		t.Fatalf("expected accuracy 0.5, got %f", got)
	}
}

func TestNoCompletionWithOutstandingErrors(t *testing.T) {
	s, _ := newTestSession("ab")
	s.PressChar('a')
	if out := s.PressChar('x'); out != OutcomeContinue {
		t.Fatalf("expected continue, got %v", out)
	}
	if !s.Exhausted() || s.Complete() {
		t.Fatalf("expected exhausted but incomplete session")
	}
	if out := s.PressChar('b'); out != OutcomeIgnored {
		t.Fatalf("expected press on exhausted cursor to be ignored, got %v", out)
	}
	if s.Cursor() != s.Len() {
		t.Fatalf("expected cursor to stay at %d, got %d", s.Len(), s.Cursor())
	}
	s.PressBackspace()
	if out := s.PressChar('b'); out != OutcomeComplete {
		t.Fatalf("expected completion after correction, got %v", out)
	}
	if !s.EndedAt().Equal(s.StartedAt()) {
		t.Fatalf("expected ended at from fake clock")
	}
}

func TestAccuracyCanGoNegative(t *testing.T) {
	s, _ := newTestSession("a")
	for i := 0; i < 3; i++ {
		s.PressChar('x')
		s.PressBackspace()
	}
	s.PressChar('a')
	if got := s.Accuracy(); got != -2 {
		t.Fatalf("expected accuracy -2, got %f", got)
	}
}

func TestCursorStaysInBounds(t *testing.T) {
	s, _ := newTestSession("hi there")
	keys := []rune("hx\b\b\bi tzz\b\bhere!!!\b\b\b\b\b\b\b\b\b\b\b")
	for _, k := range keys {
		if k == '\b' {
			s.PressBackspace()
		} else {
			s.PressChar(k)
		}
		if s.Cursor() < 0 || s.Cursor() > s.Len() {
			t.Fatalf("cursor out of bounds: %d", s.Cursor())
		}
		current := 0
		for _, c := range s.Cells() {
			if c.Status == model.StatusCurrent {
				current++
			}
		}
		if current > 1 {
			t.Fatalf("expected at most one current cell, got %d", current)
		}
	}
}

func TestLiveWPMUsesClock(t *testing.T) {
	s, clock := newTestSession("one two three")
	clock.advance(30 * time.Second)
	if got := s.LiveWPM(); math.Abs(got-6) > 1e-9 {
		t.Fatalf("expected live wpm 6, got %f", got)
	}
	view := s.Snapshot()
	if view.LiveWPM != s.LiveWPM() {
		t.Fatalf("expected snapshot to carry live wpm")
	}
}

func TestSnapshotIsIndependent(t *testing.T) {
	s, _ := newTestSession("ab")
	view := s.Snapshot()
	s.PressChar('a')
	if view.Cells[0].Status != model.StatusCurrent {
		t.Fatalf("expected snapshot cells to be unaffected by later presses")
	}
}

func TestZeroElapsedYieldsZeroWPM(t *testing.T) {
	if got := WPM(10, 0); got != 0 {
		t.Fatalf("expected 0 wpm, got %f", got)
	}
	if got := Accuracy(0, 0); got != 0 {
		t.Fatalf("expected 0 accuracy for empty paragraph, got %f", got)
	}
}
