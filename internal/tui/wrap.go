package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/trace/internal/model"
)

const wrongSpaceMarker = '•'

type styledRune struct {
	s       string
	width   int
	isSpace bool
}

func buildStyledRunes(cells []model.Cell) []styledRune {
	words := findWords(cells)
	currentWord := wordForCursor(words, currentIndex(cells))

	out := make([]styledRune, 0, len(cells))
	for i, cell := range cells {
		displayed := cell.Char
		style := pendingStyle
		switch cell.Status {
		case model.StatusCorrect:
			style = correctStyle
		case model.StatusWrong:
			style = incorrectStyle
			if cell.Char == ' ' {
				displayed = wrongSpaceMarker
			}
		case model.StatusCurrent:
			style = cursorStyle
		default:
			if currentWord != nil && i >= currentWord.start && i < currentWord.end && cell.Char != ' ' {
				style = currentWordStyle
			}
		}
		out = append(out, styledRune{
			s:       style.Render(string(displayed)),
			width:   runewidth.RuneWidth(displayed),
			isSpace: cell.Char == ' ',
		})
	}
	return out
}

func currentIndex(cells []model.Cell) int {
	for i, cell := range cells {
		if cell.Status == model.StatusCurrent {
			return i
		}
	}
	return -1
}

type wordRange struct {
	start int
	end   int
}

func findWords(cells []model.Cell) []wordRange {
	words := []wordRange{}
	start := -1
	for i, cell := range cells {
		if cell.Char == ' ' {
			if start != -1 {
				words = append(words, wordRange{start: start, end: i})
				start = -1
			}
			continue
		}
		if start == -1 {
			start = i
		}
	}
	if start != -1 {
		words = append(words, wordRange{start: start, end: len(cells)})
	}
	return words
}

// wordForCursor returns the word under the cursor, or the next word when the
// cursor sits on a space. No word is highlighted without a cursor.
func wordForCursor(words []wordRange, cursorIndex int) *wordRange {
	if cursorIndex < 0 {
		return nil
	}
	for i, w := range words {
		if cursorIndex < w.end {
			return &words[i]
		}
	}
	return nil
}

func renderStyledRunes(runes []styledRune) string {
	var b strings.Builder
	for _, item := range runes {
		b.WriteString(item.s)
	}
	return b.String()
}

func wrapStyledRunes(runes []styledRune, width int) string {
	if width <= 0 {
		return renderStyledRunes(runes)
	}
	var out strings.Builder
	line := make([]styledRune, 0, len(runes))
	lineWidth := 0
	lastSpaceIdx := -1

	for i := 0; i < len(runes); {
		item := runes[i]
		if lineWidth+item.width > width && len(line) > 0 {
			if lastSpaceIdx >= 0 {
				// The breaking space stays at the end of the line so a
				// wrong-space marker remains visible.
				out.WriteString(renderStyledRunes(line[:lastSpaceIdx+1]))
				out.WriteRune('\n')
				line = append([]styledRune{}, line[lastSpaceIdx+1:]...)
				lineWidth = lineWidthOf(line)
				lastSpaceIdx = lastSpaceIndex(line)
			} else {
				out.WriteString(renderStyledRunes(line))
				out.WriteRune('\n')
				line = line[:0]
				lineWidth = 0
				lastSpaceIdx = -1
			}
			continue
		}
		line = append(line, item)
		lineWidth += item.width
		if item.isSpace {
			lastSpaceIdx = len(line) - 1
		}
		i++
	}
	out.WriteString(renderStyledRunes(line))
	return out.String()
}

func lineWidthOf(line []styledRune) int {
	total := 0
	for _, item := range line {
		total += item.width
	}
	return total
}

func lastSpaceIndex(line []styledRune) int {
	for i := len(line) - 1; i >= 0; i-- {
		if line[i].isSpace {
			return i
		}
	}
	return -1
}
