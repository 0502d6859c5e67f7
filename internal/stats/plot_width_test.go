package stats

import (
	"testing"
	"unicode/utf8"
)

func TestPlotWidthFor(t *testing.T) {
	axisWidth := utf8.RuneCountInString(axisLabelTop) + utf8.RuneCountInString(axisSeparator)
	total := 80
	expected := total - axisWidth
	if expected < minPlotWidth {
		expected = minPlotWidth
	}
	if got := PlotWidthFor(total); got != expected {
		t.Fatalf("expected width %d, got %d", expected, got)
	}
	if got := PlotWidthFor(0); got != minPlotWidth {
		t.Fatalf("expected min width %d, got %d", minPlotWidth, got)
	}
}

func TestAutoPlotWidthLeavesRoomForSharedLabels(t *testing.T) {
	base := PlotWidthFor(terminalWidth())
	if got := autoPlotWidth(nil); got != base {
		t.Fatalf("expected width %d without shared bounds, got %d", base, got)
	}
	wide := &Bounds{Min: 0, Max: 12345}
	if got := autoPlotWidth(wide); got != base-1 {
		t.Fatalf("expected width %d for five-digit labels, got %d", base-1, got)
	}
	narrow := &Bounds{Min: 0, Max: 150}
	if got := autoPlotWidth(narrow); got != base+1 {
		t.Fatalf("expected width %d for three-digit labels, got %d", base+1, got)
	}
}
