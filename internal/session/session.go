// Package session tracks keystroke-level correctness for one practice attempt.
package session

import (
	"time"

	"github.com/verte-zerg/trace/internal/model"
)

// Outcome reports the effect of a key press.
type Outcome int

const (
	// OutcomeIgnored means the press had no effect.
	OutcomeIgnored Outcome = iota
	// OutcomeContinue means the session is still in progress.
	OutcomeContinue
	// OutcomeComplete means the paragraph was finished without outstanding errors.
	OutcomeComplete
)

// Session holds the active paragraph and typing progress.
type Session struct {
	paragraph model.Paragraph
	cells     []model.Cell
	cursor    int

	currentErrors int
	totalErrors   int
	wordCount     int

	startedAt time.Time
	endedAt   time.Time
	complete  bool

	now func() time.Time
}

// New starts a session for the paragraph. A nil clock defaults to time.Now.
func New(p model.Paragraph, now func() time.Time) *Session {
	if now == nil {
		now = time.Now
	}
	s := &Session{
		paragraph: p,
		cells:     p.Cells(),
		wordCount: p.WordCount(),
		now:       now,
	}
	s.startedAt = now()
	if len(s.cells) > 0 {
		s.cells[0].Status = model.StatusCurrent
	}
	return s
}

// PressChar processes a typed character at the cursor.
// Presses are ignored once the cursor is exhausted; outstanding errors must
// then be cleared with backspace.
func (s *Session) PressChar(c rune) Outcome {
	if s.complete || s.Exhausted() {
		return OutcomeIgnored
	}
	cell := &s.cells[s.cursor]
	if cell.Char == c {
		cell.Status = model.StatusCorrect
	} else {
		cell.Status = model.StatusWrong
		s.currentErrors++
		s.totalErrors++
	}
	s.cursor++

	if !s.Exhausted() {
		s.cells[s.cursor].Status = model.StatusCurrent
		return OutcomeContinue
	}
	if s.currentErrors == 0 {
		s.endedAt = s.now()
		s.complete = true
		return OutcomeComplete
	}
	return OutcomeContinue
}

// PressBackspace re-opens the previous cell for entry.
func (s *Session) PressBackspace() {
	if s.complete || len(s.cells) == 0 || s.cursor == 0 {
		return
	}
	if s.cursor < len(s.cells) {
		s.cells[s.cursor].Status = model.StatusDefault
	}
	s.cursor--
	cell := &s.cells[s.cursor]
	if cell.Status == model.StatusWrong && s.currentErrors > 0 {
		s.currentErrors--
	}
	cell.Status = model.StatusCurrent
}

// Paragraph returns the paragraph being typed.
func (s *Session) Paragraph() model.Paragraph { return s.paragraph }

// Cursor returns the index of the next cell to type.
func (s *Session) Cursor() int { return s.cursor }

// Len returns the number of cells.
func (s *Session) Len() int { return len(s.cells) }

// Exhausted reports whether every cell has been typed.
func (s *Session) Exhausted() bool { return s.cursor >= len(s.cells) }

// Complete reports whether the session finished successfully.
func (s *Session) Complete() bool { return s.complete }

// CurrentErrors returns the outstanding error count.
func (s *Session) CurrentErrors() int { return s.currentErrors }

// TotalErrors returns every wrong keystroke made in the session.
func (s *Session) TotalErrors() int { return s.totalErrors }

// WordCount returns the number of words in the paragraph.
func (s *Session) WordCount() int { return s.wordCount }

// StartedAt returns the session start time.
func (s *Session) StartedAt() time.Time { return s.startedAt }

// EndedAt returns the completion time, zero until complete.
func (s *Session) EndedAt() time.Time { return s.endedAt }

// Cells returns a copy of the cells.
func (s *Session) Cells() []model.Cell {
	out := make([]model.Cell, len(s.cells))
	copy(out, s.cells)
	return out
}

// Progress returns the typed fraction in [0,1].
func (s *Session) Progress() float64 {
	if len(s.cells) == 0 {
		return 0
	}
	return float64(s.cursor) / float64(len(s.cells))
}
