package stats

import (
	"bytes"
	"strings"
	"testing"

	"github.com/verte-zerg/trace/internal/history"
)

func TestRenderBars(t *testing.T) {
	var buf bytes.Buffer
	bars := []history.Bar{{Label: "0", Height: 4}, {Label: "1", Height: 8}}
	if err := RenderBars(&buf, "WPM", bars, BarOptions{Height: 2}); err != nil {
		t.Fatalf("RenderBars failed: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	want := []string{
		"WPM",
		"4   8",
		"    ███",
		"███ ███",
		"0   1",
	}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d: %q", len(want), len(lines), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("line %d: expected %q, got %q", i, want[i], lines[i])
		}
	}
}

func TestRenderBarsKeepsRecent(t *testing.T) {
	var buf bytes.Buffer
	bars := []history.Bar{{Label: "0", Height: 1}, {Label: "1", Height: 1}, {Label: "2", Height: 1}}
	if err := RenderBars(&buf, "", bars, BarOptions{Width: 7, Height: 1}); err != nil {
		t.Fatalf("RenderBars failed: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if lines[len(lines)-1] != "1   2" {
		t.Fatalf("expected the last two bars, got %q", lines[len(lines)-1])
	}
}

func TestRenderBarsEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderBars(&buf, "", nil, BarOptions{}); err != nil {
		t.Fatalf("RenderBars failed: %v", err)
	}
	if !strings.Contains(buf.String(), "No runs yet.") {
		t.Fatalf("expected empty message, got %q", buf.String())
	}
}

func TestRenderBarsWidensForLongLabels(t *testing.T) {
	var buf bytes.Buffer
	bars := []history.Bar{{Label: "998", Height: 7}, {Label: "999", Height: 1234}, {Label: "1000", Height: 5}}
	if err := RenderBars(&buf, "", bars, BarOptions{Width: 9, Height: 1}); err != nil {
		t.Fatalf("RenderBars failed: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	want := []string{
		"1234 5",
		"████",
		"999  1000",
	}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d: %q", len(want), len(lines), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("line %d: expected %q, got %q", i, want[i], lines[i])
		}
	}
}
