package userstore

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestReadMissing(t *testing.T) {
	f := NewFile(filepath.Join(t.TempDir(), "user"))
	if _, err := f.Read(); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestWriteThenRead(t *testing.T) {
	f := NewFile(filepath.Join(t.TempDir(), "data", "user"))
	if err := f.Write("Ñandú"); err != nil {
		t.Fatalf("write: %v", err)
	}
	name, err := f.Read()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if name != "Ñandú" {
		t.Fatalf("unexpected name %q", name)
	}
}

func TestReadInvalidUTF8(t *testing.T) {
	path := filepath.Join(t.TempDir(), "user")
	if err := os.WriteFile(path, []byte{0xff, 0xfe}, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := NewFile(path).Read(); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
