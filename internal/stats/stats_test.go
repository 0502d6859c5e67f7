package stats

import (
	"bytes"
	"strings"
	"testing"

	"github.com/verte-zerg/trace/internal/model"
)

var sampleRuns = []model.RunRecord{
	{WPM: 40, Accuracy: 0.9, TotalPoints: 38, Seconds: 30},
	{WPM: 60, Accuracy: 1, TotalPoints: 60, Seconds: 45},
	{WPM: 50, Accuracy: 0.8, TotalPoints: 45, Seconds: 15},
}

func TestSummarize(t *testing.T) {
	s := Summarize(sampleRuns)
	if s.Runs != 3 || s.AvgWPM != 50 || s.BestWPM != 60 || s.BestPoints != 60 || s.TotalSeconds != 90 {
		t.Fatalf("unexpected summary %+v", s)
	}
	if diff := s.AvgAccuracy - 0.9; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("unexpected avg accuracy %v", s.AvgAccuracy)
	}
	if (Summarize(nil) != Summary{}) {
		t.Fatalf("expected zero summary for no runs")
	}
}

func TestMovingAverage(t *testing.T) {
	got := MovingAverage([]float64{2, 4, 6, 8}, 2)
	want := []float64{2, 3, 5, 7}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline([]float64{0, 9}); got != " @" {
		t.Fatalf("unexpected sparkline %q", got)
	}
	if got := Sparkline([]float64{3, 3}); got != "++" {
		t.Fatalf("unexpected flat sparkline %q", got)
	}
}

func TestRenderSummary(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderSummary(&buf, sampleRuns); err != nil {
		t.Fatalf("RenderSummary failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Runs: 3", "Avg WPM: 50.00", "Avg Accuracy: 90.00%", "Time Typing: 1m30.0s"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestRenderSummaryEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderSummary(&buf, nil); err != nil {
		t.Fatalf("RenderSummary failed: %v", err)
	}
	if !strings.Contains(buf.String(), "No runs found.") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestRenderRunsLast(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderRuns(&buf, sampleRuns, 2); err != nil {
		t.Fatalf("RenderRuns failed: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and two rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(strings.TrimSpace(lines[1]), "1") {
		t.Fatalf("expected rows to keep run indices, got %q", lines[1])
	}
}

func TestRenderCurves(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderCurves(&buf, sampleRuns, 1, 40, 6, false); err != nil {
		t.Fatalf("RenderCurves failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "150 │ ") {
		t.Fatalf("expected shared floor axis label:\n%s", out)
	}
	for _, name := range []string{"Points", "WPM", "Accuracy"} {
		if !strings.Contains(out, name) {
			t.Fatalf("expected %s in legend", name)
		}
	}
}

func TestFormatSeconds(t *testing.T) {
	if got := FormatSeconds(12.34); got != "12.3s" {
		t.Fatalf("unexpected %q", got)
	}
	if got := FormatSeconds(65); got != "1m05.0s" {
		t.Fatalf("unexpected %q", got)
	}
}
