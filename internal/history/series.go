package history

import (
	"strconv"

	"github.com/samber/lo"

	"github.com/verte-zerg/trace/internal/model"
)

// Field selects the run metric to chart.
type Field int

const (
	FieldPoints Field = iota
	FieldWPM
	FieldAccuracy
)

// Fields lists every chartable metric in display order.
var Fields = []Field{FieldPoints, FieldWPM, FieldAccuracy}

func (f Field) String() string {
	switch f {
	case FieldWPM:
		return "WPM"
	case FieldAccuracy:
		return "Accuracy"
	default:
		return "Points"
	}
}

// Value extracts the field from a run. Accuracy is expressed in percent.
func (f Field) Value(run model.RunRecord) float64 {
	switch f {
	case FieldWPM:
		return run.WPM
	case FieldAccuracy:
		return run.Accuracy * 100
	default:
		return run.TotalPoints
	}
}

// Point is one sample of a series; X is the zero-based run index.
type Point struct {
	X float64
	Y float64
}

// Series builds the time series of one field in run order.
func Series(runs []model.RunRecord, field Field) []Point {
	return lo.Map(runs, func(run model.RunRecord, i int) Point {
		return Point{X: float64(i), Y: field.Value(run)}
	})
}

// Values returns the Y values of a series.
func Values(points []Point) []float64 {
	return lo.Map(points, func(p Point, _ int) float64 { return p.Y })
}

// LabelStep returns the run-index spacing between x-axis labels.
func LabelStep(count int) int {
	step := int(0.1 * float64(count))
	if step < 1 {
		return 1
	}
	return step
}

// Bar is one discretized series sample.
type Bar struct {
	Label  string
	Height uint64
}

// Bars discretizes a series to integer bar heights. Negative values become 0.
func Bars(points []Point) []Bar {
	return lo.Map(points, func(p Point, _ int) Bar {
		h := uint64(0)
		if p.Y > 0 {
			h = uint64(p.Y)
		}
		return Bar{Label: strconv.Itoa(int(p.X)), Height: h}
	})
}
