package jsonstore

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/todomenu/internal/model"
)

// JSON-backed storage. Single file, human-readable, portable.
// No locking; the last save wins.

// DefaultPath is resolved against the current working directory.
const DefaultPath = "todos.json"

// Store loads and saves a todo list at a fixed path. Its methods never fail
// outwardly; problems go to the logger only.
type Store struct {
	path   string
	logger *log.Logger
}

// New returns a Store for path. A nil logger discards diagnostics.
func New(path string, logger *log.Logger) *Store {
	if path == "" {
		path = DefaultPath
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Store{path: path, logger: logger.With("file", path)}
}

// Path returns the file the store reads and writes.
func (s *Store) Path() string { return s.path }

// Load returns the persisted list, or an empty list when the file is
// missing, unreadable or not a valid todo document.
func (s *Store) Load() model.List {
	items, err := Read(s.path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		s.logger.Debug("no todo file yet")
		return model.List{}
	case err != nil:
		s.logger.Warn("ignoring todo file", "err", err)
		return model.List{}
	}
	s.logger.Debug("loaded todos", "count", len(items))
	return items
}

// Save replaces the file with list. Failures are logged and dropped; the
// next successful save supersedes them.
func (s *Store) Save(list model.List) {
	if err := Write(s.path, list); err != nil {
		s.logger.Error("save failed", "err", err)
		return
	}
	s.logger.Debug("saved todos", "count", len(list))
}

// Read parses the todo document at path. The returned error wraps
// os.ErrNotExist when there is no file.
func Read(path string) (model.List, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	if !utf8.Valid(b) {
		return nil, errors.New("read file: invalid utf-8")
	}
	return decode(b)
}

// Write stores list at path as two-space indented JSON, replacing any prior
// content.
func Write(path string, list model.List) error {
	b, err := Marshal(list)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

// Marshal renders list in the on-disk layout: two-space indentation, no
// HTML escaping, no trailing newline. A nil list renders as [].
func Marshal(list model.List) ([]byte, error) {
	if list == nil {
		list = model.List{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(list); err != nil {
		return nil, fmt.Errorf("json marshal: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
