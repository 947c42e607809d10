// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store implements the document store: a flat directory of named
// files addressed only by name. The directory is the single source of truth;
// nothing is cached between calls.
package store

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/doc-assistant/pkg/types"
)

// tempPattern names the temporary files used for overwrite-by-rename.
const tempPattern = ".write-*.tmp"

// Store reads and writes named entries under a single directory.
type Store struct {
	dir    string
	logger *slog.Logger
}

// New opens the store rooted at cfg.Dir, creating the directory if needed.
func New(cfg types.StoreConfig, logger *slog.Logger) (*Store, error) {
	if cfg.Dir == "" {
		return nil, fmt.Errorf("store directory not configured: %w", types.ErrIO)
	}
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating store directory %s: %w: %w", cfg.Dir, types.ErrIO, err)
	}
	return &Store{dir: cfg.Dir, logger: logger}, nil
}

// Dir returns the backing directory.
func (s *Store) Dir() string { return s.dir }

// Path resolves name to its file path. Names are flat: no separators, no
// "." or "..".
func (s *Store) Path(name string) (string, error) {
	if err := validateName(name); err != nil {
		return "", err
	}
	return filepath.Join(s.dir, name), nil
}

func validateName(name string) error {
	switch {
	case name == "", name == ".", name == "..":
		return fmt.Errorf("%q: %w", name, types.ErrInvalidName)
	case strings.ContainsAny(name, `/\`), strings.ContainsRune(name, filepath.Separator):
		return fmt.Errorf("%q contains a path separator: %w", name, types.ErrInvalidName)
	case strings.ContainsRune(name, 0):
		return fmt.Errorf("%q contains a NUL byte: %w", name, types.ErrInvalidName)
	}
	return nil
}

// Exists reports whether name is present in the store.
func (s *Store) Exists(name string) bool {
	path, err := s.Path(name)
	if err != nil {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// Write overwrites (or creates) name with content. The content is written
// to a temporary file and renamed into place, so readers see either the old
// or the new content.
func (s *Store) Write(name, content string) error {
	return s.Import(name, strings.NewReader(content))
}

// Import overwrites (or creates) name with everything read from r.
func (s *Store) Import(name string, r io.Reader) error {
	path, err := s.Path(name)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, tempPattern)
	if err != nil {
		return fmt.Errorf("writing %s: %w: %w", name, types.ErrIO, err)
	}
	tmpPath := tmp.Name()

	n, copyErr := io.Copy(tmp, r)
	closeErr := tmp.Close()
	if copyErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing %s: %w: %w", name, types.ErrIO, copyErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing %s: %w: %w", name, types.ErrIO, closeErr)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing %s: %w: %w", name, types.ErrIO, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing %s: %w: %w", name, types.ErrIO, err)
	}

	s.logger.Debug("store.write", "name", name, "bytes", n)
	return nil
}

// Remove deletes name. Removing an absent name is not an error.
func (s *Store) Remove(name string) error {
	path, err := s.Path(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing %s: %w: %w", name, types.ErrIO, err)
	}
	s.logger.Debug("store.remove", "name", name)
	return nil
}

// ReadAll returns the full content of name.
func (s *Store) ReadAll(name string) (string, error) {
	path, err := s.Path(name)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%s: %w", name, types.ErrNotFound)
		}
		return "", fmt.Errorf("reading %s: %w: %w", name, types.ErrIO, err)
	}
	return string(data), nil
}

// Read returns lines [r.Start, r.End) of name joined by "\n". Lines are the
// newline-separated segments of the content, so reading AllLines returns the
// stored content byte for byte. A start past the last line yields "".
// Negative bounds are rejected.
func (s *Store) Read(name string, r types.LineRange) (string, error) {
	if r.Start < 0 {
		return "", fmt.Errorf("start %d: %w", r.Start, types.ErrInvalidRange)
	}
	if r.End != nil && *r.End < 0 {
		return "", fmt.Errorf("end %d: %w", *r.End, types.ErrInvalidRange)
	}

	content, err := s.ReadAll(name)
	if err != nil {
		return "", err
	}
	return sliceLines(content, r), nil
}

func sliceLines(content string, r types.LineRange) string {
	lines := strings.Split(content, "\n")
	start := min(r.Start, len(lines))
	end := len(lines)
	if r.End != nil {
		end = min(*r.End, len(lines))
	}
	if start >= end {
		return ""
	}
	return strings.Join(lines[start:end], "\n")
}

// Stat describes name.
func (s *Store) Stat(name string) (types.StoredDocument, error) {
	path, err := s.Path(name)
	if err != nil {
		return types.StoredDocument{}, err
	}
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return types.StoredDocument{}, fmt.Errorf("%s: %w", name, types.ErrNotFound)
		}
		return types.StoredDocument{}, fmt.Errorf("stat %s: %w: %w", name, types.ErrIO, err)
	}

	doc := types.StoredDocument{
		Name:    name,
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}
	if IsText(name) {
		content, err := s.ReadAll(name)
		if err != nil {
			return types.StoredDocument{}, err
		}
		doc.Lines = len(types.SplitLines(content))
	}
	return doc, nil
}

// List returns the names accepted by every filter, in directory iteration
// order. Hidden entries and subdirectories are never listed.
func (s *Store) List(filters ...Filter) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w: %w", s.dir, types.ErrIO, err)
	}

	var names []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		if !All(filters...)(name) {
			continue
		}
		names = append(names, name)
	}
	return names, nil
}
