package stats

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/samber/lo"

	"github.com/verte-zerg/trace/internal/history"
	"github.com/verte-zerg/trace/internal/model"
)

const sparkChars = " .:-=+*#%@"

// ChartFloor is the minimum top of the shared y range for history charts.
const ChartFloor = 150

// Summary aggregates a run history.
type Summary struct {
	Runs         int
	AvgWPM       float64
	BestWPM      float64
	AvgAccuracy  float64
	BestPoints   float64
	TotalSeconds float64
}

// Summarize computes the history summary.
func Summarize(runs []model.RunRecord) Summary {
	if len(runs) == 0 {
		return Summary{}
	}
	count := float64(len(runs))
	return Summary{
		Runs:         len(runs),
		AvgWPM:       lo.SumBy(runs, func(r model.RunRecord) float64 { return r.WPM }) / count,
		BestWPM:      lo.MaxBy(runs, func(a, b model.RunRecord) bool { return a.WPM > b.WPM }).WPM,
		AvgAccuracy:  lo.SumBy(runs, func(r model.RunRecord) float64 { return r.Accuracy }) / count,
		BestPoints:   lo.MaxBy(runs, func(a, b model.RunRecord) bool { return a.TotalPoints > b.TotalPoints }).TotalPoints,
		TotalSeconds: lo.SumBy(runs, func(r model.RunRecord) float64 { return r.Seconds }),
	}
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := lo.Min(values)
	maxVal := lo.Max(values)
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// RenderSummary prints a summary of the run history.
func RenderSummary(w io.Writer, runs []model.RunRecord) error {
	if len(runs) == 0 {
		_, err := fmt.Fprintln(w, "No runs found.")
		return err
	}
	s := Summarize(runs)
	lines := []string{
		"Summary",
		fmt.Sprintf("Runs: %d", s.Runs),
		fmt.Sprintf("Avg WPM: %.2f", s.AvgWPM),
		fmt.Sprintf("Best WPM: %.2f", s.BestWPM),
		fmt.Sprintf("Avg Accuracy: %.2f%%", s.AvgAccuracy*100),
		fmt.Sprintf("Best Points: %.2f", s.BestPoints),
		fmt.Sprintf("Time Typing: %s", FormatSeconds(s.TotalSeconds)),
		fmt.Sprintf("Points: %s", Sparkline(history.Values(history.Series(runs, history.FieldPoints)))),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// CurveSeries builds the smoothed points, WPM and accuracy series.
func CurveSeries(runs []model.RunRecord, window int) []Series {
	return lo.Map(history.Fields, func(f history.Field, _ int) Series {
		return Series{
			Name:   f.String(),
			Values: MovingAverage(history.Values(history.Series(runs, f)), window),
		}
	})
}

// RenderCurves plots the history on a shared y range.
func RenderCurves(w io.Writer, runs []model.RunRecord, window, totalWidth, height int, useColor bool) error {
	if len(runs) == 0 {
		return nil
	}
	series := CurveSeries(runs, window)
	bounds := SharedBounds(series, ChartFloor)
	width := 0
	if totalWidth > 0 {
		width = PlotWidthFor(totalWidth)
	}
	return PlotSeries(w, "History", series, PlotOptions{
		Width:      width,
		Height:     height,
		Color:      useColor,
		Shared:     &bounds,
		XLabelStep: history.LabelStep(len(runs)),
	})
}

// RenderRuns prints the last runs as a table; last <= 0 prints every run.
func RenderRuns(w io.Writer, runs []model.RunRecord, last int) error {
	if len(runs) == 0 {
		_, err := fmt.Fprintln(w, "No runs found.")
		return err
	}
	offset := 0
	if last > 0 && len(runs) > last {
		offset = len(runs) - last
	}
	headers, rows := RunRows(runs[offset:], offset)
	rightAlign := map[int]bool{0: true, 1: true, 2: true, 3: true, 4: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RunRows formats runs as table cells; offset is the index of the first run.
func RunRows(runs []model.RunRecord, offset int) ([]string, [][]string) {
	headers := []string{"#", "WPM", "Accuracy", "Points", "Time"}
	rows := lo.Map(runs, func(r model.RunRecord, i int) []string {
		return []string{
			fmt.Sprintf("%d", offset+i),
			fmt.Sprintf("%.2f", r.WPM),
			fmt.Sprintf("%.2f%%", r.Accuracy*100),
			fmt.Sprintf("%.2f", r.TotalPoints),
			FormatSeconds(r.Seconds),
		}
	})
	return headers, rows
}

// FormatSeconds renders seconds as "12.3s" or "1m05.0s".
func FormatSeconds(seconds float64) string {
	if seconds < 60 {
		return fmt.Sprintf("%.1fs", seconds)
	}
	minutes := int(seconds / 60)
	return fmt.Sprintf("%dm%04.1fs", minutes, seconds-float64(minutes*60))
}
