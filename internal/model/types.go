// Package model defines shared data structures.
package model

import "strings"

// Config defines resolved runtime settings.
type Config struct {
	DataDir    string
	CorpusPath string
	History    string
}

// History backends.
const (
	HistoryCSV    = "csv"
	HistorySQLite = "sqlite"
)

// Paragraph is one practice text from the corpus.
type Paragraph struct {
	Content string `json:"content" yaml:"content"`
	Title   string `json:"title" yaml:"title"`
	Author  string `json:"author" yaml:"author"`
	Date    string `json:"date" yaml:"date"`
}

// WordCount returns the number of whitespace-delimited tokens in the content.
func (p Paragraph) WordCount() int {
	return len(strings.Fields(p.Content))
}

// Cells builds one default cell per rune of the content.
func (p Paragraph) Cells() []Cell {
	runes := []rune(p.Content)
	cells := make([]Cell, len(runes))
	for i, r := range runes {
		cells[i] = Cell{Char: r, Status: StatusDefault}
	}
	return cells
}

// CharStatus marks how a cell has been typed.
type CharStatus int

const (
	StatusDefault CharStatus = iota
	StatusCurrent
	StatusCorrect
	StatusWrong
)

func (s CharStatus) String() string {
	switch s {
	case StatusCurrent:
		return "current"
	case StatusCorrect:
		return "correct"
	case StatusWrong:
		return "wrong"
	default:
		return "default"
	}
}

// Cell is one character position of the target paragraph.
type Cell struct {
	Char   rune
	Status CharStatus
}

// RunRecord captures a completed typing session.
type RunRecord struct {
	WPM         float64
	Accuracy    float64
	TotalPoints float64
	Seconds     float64
}
