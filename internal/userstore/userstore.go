// Package userstore persists the player's username.
package userstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// ErrNotFound means no usable username is stored.
var ErrNotFound = errors.New("username not found")

// File stores the username as a single text blob.
type File struct {
	path string
}

// NewFile returns a username store at path.
func NewFile(path string) *File {
	return &File{path: path}
}

// Read returns the stored username.
func (f *File) Read() (string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to read username: %w", err)
	}
	if !utf8.Valid(data) {
		return "", ErrNotFound
	}
	name := strings.TrimRight(string(data), "\r\n")
	if name == "" {
		return "", ErrNotFound
	}
	return name, nil
}

// Write replaces the stored username.
func (f *File) Write(name string) error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create username dir: %w", err)
	}
	tmpFile, err := os.CreateTemp(dir, "user-*")
	if err != nil {
		return fmt.Errorf("failed to create temp username file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.WriteString(name); err != nil {
		return fmt.Errorf("failed to write username: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close username file: %w", err)
	}
	if err := os.Rename(tmpPath, f.path); err != nil {
		return fmt.Errorf("failed to write username: %w", err)
	}
	return nil
}
