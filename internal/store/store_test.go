package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/verte-zerg/trace/internal/history"
	"github.com/verte-zerg/trace/internal/model"
)

var _ history.Log = (*Store)(nil)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "trace.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func TestAppendAndLoadAll(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	for i := 1; i <= 3; i++ {
		run := model.RunRecord{WPM: float64(10 * i), Accuracy: 0.9, TotalPoints: float64(9 * i), Seconds: 30}
		if err := st.Append(ctx, run); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	runs, err := st.LoadAll(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(runs))
	}
	if runs[0].WPM != 10 || runs[2].WPM != 30 {
		t.Fatalf("unexpected order: %+v", runs)
	}
}

func TestImport(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	n, err := st.Import(ctx, []model.RunRecord{{WPM: 1}, {WPM: 2}})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 imported, got %d", n)
	}
	runs, err := st.LoadAll(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(runs) != 2 || runs[1].WPM != 2 {
		t.Fatalf("unexpected runs: %+v", runs)
	}
}

func TestImportRefusesNonEmpty(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	if _, err := st.Import(ctx, []model.RunRecord{{WPM: 1}}); err != nil {
		t.Fatalf("import: %v", err)
	}
	if _, err := st.Import(ctx, []model.RunRecord{{WPM: 1}}); !errors.Is(err, ErrNotEmpty) {
		t.Fatalf("expected ErrNotEmpty, got %v", err)
	}
	n, err := st.AppendAll(ctx, []model.RunRecord{{WPM: 2}})
	if err != nil {
		t.Fatalf("append all: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 appended, got %d", n)
	}
	runs, err := st.LoadAll(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(runs) != 2 || runs[1].WPM != 2 {
		t.Fatalf("unexpected runs: %+v", runs)
	}
}
