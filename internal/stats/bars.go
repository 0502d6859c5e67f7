package stats

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/verte-zerg/trace/internal/history"
)

const (
	barWidth = 3
	barGap   = 1
)

var barEighths = []rune(" ▁▂▃▄▅▆▇█")

// BarOptions controls the bar chart layout.
type BarOptions struct {
	Width  int
	Height int
	Color  bool
	// ColorIndex picks the palette entry used for the bars.
	ColorIndex int
}

// RenderBars draws one vertical bar per sample with its value above and
// its label below. Columns widen to the longest label or value. When the
// bars do not fit, the most recent ones are kept.
func RenderBars(w io.Writer, title string, bars []history.Bar, opts BarOptions) error {
	if title != "" {
		if _, err := fmt.Fprintln(w, title); err != nil {
			return err
		}
	}
	if len(bars) == 0 {
		_, err := fmt.Fprintln(w, "No runs yet.")
		return err
	}
	height := opts.Height
	if height <= 0 {
		height = defaultPlotHeight
	}
	column := columnWidth(bars)
	if opts.Width > 0 {
		fit := (opts.Width + barGap) / (column + barGap)
		if fit < 1 {
			fit = 1
		}
		if len(bars) > fit {
			bars = bars[len(bars)-fit:]
		}
	}

	var maxHeight uint64
	for _, b := range bars {
		if b.Height > maxHeight {
			maxHeight = b.Height
		}
	}
	if maxHeight == 0 {
		maxHeight = 1
	}

	useColor := shouldUseColor(w, opts.Color)
	color := colorPalette[opts.ColorIndex%len(colorPalette)].code
	levels := uint64(height * 8)
	lines := make([]string, 0, height+2)
	lines = append(lines, barRow(bars, column, barValue))
	for y := height - 1; y >= 0; y-- {
		var row strings.Builder
		for i, b := range bars {
			if i > 0 {
				row.WriteString(strings.Repeat(" ", barGap))
			}
			filled := b.Height * levels / maxHeight
			cell := barEighths[0]
			switch base := uint64(y * 8); {
			case filled >= base+8:
				cell = barEighths[8]
			case filled > base:
				cell = barEighths[filled-base]
			}
			segment := strings.Repeat(string(cell), column)
			if useColor && cell != barEighths[0] {
				segment = color + segment + colorReset
			}
			row.WriteString(segment)
		}
		lines = append(lines, row.String())
	}
	lines = append(lines, barRow(bars, column, barLabel))
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
			return err
		}
	}
	return nil
}

func barValue(b history.Bar) string { return strconv.FormatUint(b.Height, 10) }

func barLabel(b history.Bar) string { return b.Label }

func columnWidth(bars []history.Bar) int {
	width := barWidth
	for _, b := range bars {
		width = max(width, displayWidth(barValue(b)), displayWidth(barLabel(b)))
	}
	return width
}

func barRow(bars []history.Bar, column int, text func(history.Bar) string) string {
	var row strings.Builder
	for i, b := range bars {
		if i > 0 {
			row.WriteString(strings.Repeat(" ", barGap))
		}
		row.WriteString(padCell(text(b), column, false))
	}
	return row.String()
}
