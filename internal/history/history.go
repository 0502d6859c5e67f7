// Package history persists completed runs and builds chart series from them.
package history

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/verte-zerg/trace/internal/model"
)

// Header is the first row of a run log.
const Header = "wpm,accuracy,total_points,seconds"

// Log is an append-only run history.
type Log interface {
	Append(ctx context.Context, run model.RunRecord) error
	LoadAll(ctx context.Context) ([]model.RunRecord, error)
}

// CSVLog stores runs as comma-separated decimal text, one run per line.
type CSVLog struct {
	path string
}

// NewCSVLog returns a log backed by the file at path.
func NewCSVLog(path string) *CSVLog {
	return &CSVLog{path: path}
}

// Path returns the log file path.
func (l *CSVLog) Path() string {
	return l.path
}

// Append adds one run, creating the file with a header row when needed.
func (l *CSVLog) Append(_ context.Context, run model.RunRecord) error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("failed to create history dir: %w", err)
	}
	file, err := os.OpenFile(l.path, os.O_RDWR|os.O_APPEND|os.O_CREATE, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close; the write below already reported its error.
			_ = cerr
		}
	}()

	prefix, err := appendPrefix(file)
	if err != nil {
		return err
	}
	if _, err := file.WriteString(prefix + FormatRecord(run) + "\n"); err != nil {
		return fmt.Errorf("failed to write history: %w", err)
	}
	return nil
}

// appendPrefix returns what must precede a new row: the header for an empty
// file, a newline for a file that does not end with one.
func appendPrefix(file *os.File) (string, error) {
	info, err := file.Stat()
	if err != nil {
		return "", fmt.Errorf("failed to stat history: %w", err)
	}
	if info.Size() == 0 {
		return Header + "\n", nil
	}
	last := make([]byte, 1)
	if _, err := file.ReadAt(last, info.Size()-1); err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read history: %w", err)
	}
	if last[0] != '\n' {
		return "\n", nil
	}
	return "", nil
}

// LoadAll reads every parseable run in file order. A missing file is an
// empty history and malformed rows are skipped.
func (l *CSVLog) LoadAll(_ context.Context) ([]model.RunRecord, error) {
	file, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open history: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only history.
			_ = cerr
		}
	}()
	return ReadRecords(file)
}

// ReadRecords parses runs from r, skipping rows that do not parse.
func ReadRecords(r io.Reader) ([]model.RunRecord, error) {
	var records []model.RunRecord
	reader := bufio.NewReader(r)
	for {
		line, err := reader.ReadString('\n')
		if run, ok := ParseRecord(line); ok {
			records = append(records, run)
		}
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read history: %w", err)
		}
	}
}

// ParseRecord parses one log row of four finite decimal fields.
func ParseRecord(line string) (model.RunRecord, bool) {
	fields := strings.Split(strings.TrimSpace(line), ",")
	if len(fields) != 4 {
		return model.RunRecord{}, false
	}
	values := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return model.RunRecord{}, false
		}
		values[i] = v
	}
	return model.RunRecord{
		WPM:         values[0],
		Accuracy:    values[1],
		TotalPoints: values[2],
		Seconds:     values[3],
	}, true
}

// FormatRecord renders a run as one log row without the trailing newline.
func FormatRecord(run model.RunRecord) string {
	return strings.Join([]string{
		formatFloat(run.WPM),
		formatFloat(run.Accuracy),
		formatFloat(run.TotalPoints),
		formatFloat(run.Seconds),
	}, ",")
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
