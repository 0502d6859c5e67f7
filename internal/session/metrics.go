package session

import (
	"time"

	"github.com/verte-zerg/trace/internal/model"
)

// Accuracy is the share of cells not offset by a wrong keystroke.
// It is not clamped and goes negative when retries outnumber cells.
func Accuracy(cells, totalErrors int) float64 {
	if cells <= 0 {
		return 0
	}
	return float64(cells-totalErrors) / float64(cells)
}

// WPM computes words per minute over the elapsed time.
func WPM(words int, elapsed time.Duration) float64 {
	seconds := elapsed.Seconds()
	if seconds <= 0 {
		return 0
	}
	return float64(words) / (seconds / 60)
}

// TotalPoints blends speed and accuracy into a single score.
func TotalPoints(wpm, accuracy float64) float64 {
	return (wpm + accuracy*wpm) / 2
}

// Accuracy returns the session accuracy.
func (s *Session) Accuracy() float64 {
	return Accuracy(len(s.cells), s.totalErrors)
}

// Elapsed returns the time spent; in-progress sessions use the clock.
func (s *Session) Elapsed() time.Duration {
	if s.complete {
		return s.endedAt.Sub(s.startedAt)
	}
	return s.now().Sub(s.startedAt)
}

// WPM returns final WPM for a completed session, live WPM otherwise.
func (s *Session) WPM() float64 {
	return WPM(s.wordCount, s.Elapsed())
}

// LiveWPM returns WPM measured up to now.
func (s *Session) LiveWPM() float64 {
	return WPM(s.wordCount, s.now().Sub(s.startedAt))
}

// TotalPoints returns the session score.
func (s *Session) TotalPoints() float64 {
	return TotalPoints(s.WPM(), s.Accuracy())
}

// Run freezes the session metrics into a record.
func (s *Session) Run() model.RunRecord {
	elapsed := s.Elapsed()
	wpm := WPM(s.wordCount, elapsed)
	acc := s.Accuracy()
	return model.RunRecord{
		WPM:         wpm,
		Accuracy:    acc,
		TotalPoints: TotalPoints(wpm, acc),
		Seconds:     elapsed.Seconds(),
	}
}

// View is an immutable copy of the session for rendering.
type View struct {
	Paragraph     model.Paragraph
	Cells         []model.Cell
	Cursor        int
	CurrentErrors int
	TotalErrors   int
	Progress      float64
	LiveWPM       float64
	Accuracy      float64
}

// Snapshot copies the session state for a renderer.
func (s *Session) Snapshot() View {
	return View{
		Paragraph:     s.paragraph,
		Cells:         s.Cells(),
		Cursor:        s.cursor,
		CurrentErrors: s.currentErrors,
		TotalErrors:   s.totalErrors,
		Progress:      s.Progress(),
		LiveWPM:       s.LiveWPM(),
		Accuracy:      s.Accuracy(),
	}
}
