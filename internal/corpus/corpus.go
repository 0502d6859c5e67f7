// Package corpus loads practice paragraphs from files.
package corpus

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/verte-zerg/trace/internal/model"
)

// ErrEmpty is returned when a corpus has no usable paragraphs.
var ErrEmpty = errors.New("corpus is empty")

var typographic = strings.NewReplacer(
	"\u2018", "'", "\u2019", "'",
	"\u201c", "\"", "\u201d", "\"",
	"\u2013", "-", "\u2014", "-",
	"\u2026", "...",
)

// Load reads paragraphs from path. The format follows the file extension:
// .csv, .json, .yaml/.yml, or one paragraph per line for anything else.
// Whitespace runs collapse to one space and typographic punctuation is
// replaced by its plain form. Paragraphs that still hold a character with
// no key in model.Alphabet are skipped.
func Load(path string) ([]model.Paragraph, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only corpus.
			_ = cerr
		}
	}()

	var paragraphs []model.Paragraph
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		paragraphs, err = readCSV(file)
	case ".json":
		err = json.NewDecoder(file).Decode(&paragraphs)
	case ".yaml", ".yml":
		err = yaml.NewDecoder(file).Decode(&paragraphs)
		if errors.Is(err, io.EOF) {
			err = nil
		}
	default:
		paragraphs, err = readLines(file)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}

	paragraphs = typeableOnly(paragraphs)
	if len(paragraphs) == 0 {
		return nil, ErrEmpty
	}
	return paragraphs, nil
}

func readCSV(r io.Reader) ([]model.Paragraph, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}
	columns := map[string]int{}
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	contentIdx, ok := columns["content"]
	if !ok {
		return nil, fmt.Errorf("missing content column")
	}

	var paragraphs []model.Paragraph
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		paragraphs = append(paragraphs, model.Paragraph{
			Content: column(record, contentIdx),
			Title:   lookup(record, columns, "title"),
			Author:  lookup(record, columns, "author"),
			Date:    lookup(record, columns, "date"),
		})
	}
	return paragraphs, nil
}

func lookup(record []string, columns map[string]int, name string) string {
	idx, ok := columns[name]
	if !ok {
		return ""
	}
	return column(record, idx)
}

func column(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return record[idx]
}

func readLines(r io.Reader) ([]model.Paragraph, error) {
	var paragraphs []model.Paragraph
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		paragraphs = append(paragraphs, model.Paragraph{Content: line})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return paragraphs, nil
}

func typeableOnly(paragraphs []model.Paragraph) []model.Paragraph {
	out := paragraphs[:0]
	for _, p := range paragraphs {
		p.Content = normalize(p.Content)
		if p.Content == "" || !model.Typeable(p.Content) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func normalize(content string) string {
	return strings.Join(strings.Fields(typographic.Replace(content)), " ")
}
