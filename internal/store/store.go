// Package store keeps a todo collection in <dir>/<name>.json and moves it
// to and from CSV.
//
// Single file, human-readable, portable. Writes are atomic but there is no
// locking: two processes saving the same list race, last writer wins.
package store

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/natefinch/atomic"

	"github.com/idilsaglam/todolist/internal/logging"
	"github.com/idilsaglam/todolist/internal/todolist"
)

// DefaultName is the base name used when none is configured.
const DefaultName = "todo_list"

const filePerms = 0o644

// ErrStorageUnavailable is matched when a file cannot be read or written.
var ErrStorageUnavailable = errors.New("storage unavailable")

// Store is a file-backed todo list.
type Store struct {
	Dir  string
	Name string

	logger *log.Logger
}

// New returns a store for <dir>/<name>.json.
func New(dir, name string, logger *log.Logger) *Store {
	if dir == "" {
		dir = "."
	}
	if name == "" {
		name = DefaultName
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Store{Dir: dir, Name: name, logger: logger}
}

// JSONPath is the primary storage file.
func (s *Store) JSONPath() string {
	return filepath.Join(s.Dir, s.Name+".json")
}

// CSVPath is the default export/import file.
func (s *Store) CSVPath() string {
	return filepath.Join(s.Dir, s.Name+".csv")
}

// Load reads the collection. A missing file yields an empty collection;
// a file that exists but does not parse, including an empty one, is an
// error matching todolist.ErrMalformedStorage.
func (s *Store) Load() (*todolist.Collection, error) {
	p := s.JSONPath()
	b, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.logger.Debug("no todo file yet, starting empty", "path", p)
			return todolist.New(), nil
		}
		return nil, fmt.Errorf("%w: read file: %w", ErrStorageUnavailable, err)
	}
	c, err := todolist.ParseJSON(b)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", p, err)
	}
	s.logger.Debug("loaded", "path", p, "items", c.Len(), "next_id", c.NextID())
	return c, nil
}

// Save writes the collection as indented JSON.
func (s *Store) Save(c *todolist.Collection) error {
	b, err := c.JSONPretty()
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	b = append(b, '\n')
	if err := s.write(s.JSONPath(), b); err != nil {
		return err
	}
	s.logger.Debug("saved", "path", s.JSONPath(), "items", c.Len(), "next_id", c.NextID())
	return nil
}

// ExportCSV writes the collection as CSV to path, or to CSVPath when
// path is empty. It returns the path written.
func (s *Store) ExportCSV(c *todolist.Collection, path string) (string, error) {
	if path == "" {
		path = s.CSVPath()
	}
	if err := s.write(path, c.CSV()); err != nil {
		return "", err
	}
	s.logger.Debug("exported", "path", path, "items", c.Len())
	return path, nil
}

// ImportCSV reads a collection from a CSV file, or from CSVPath when path
// is empty. Unlike Load, a missing file is an error.
func (s *Store) ImportCSV(path string) (*todolist.Collection, error) {
	if path == "" {
		path = s.CSVPath()
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read file: %w", ErrStorageUnavailable, err)
	}
	c, err := todolist.ParseCSV(b)
	if err != nil {
		return nil, fmt.Errorf("import %s: %w", path, err)
	}
	s.logger.Debug("imported", "path", path, "items", c.Len(), "next_id", c.NextID())
	return c, nil
}

func (s *Store) write(path string, b []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("%w: mkdir: %w", ErrStorageUnavailable, err)
	}
	if err := atomic.WriteFile(path, bytes.NewReader(b)); err != nil {
		return fmt.Errorf("%w: write file: %w", ErrStorageUnavailable, err)
	}
	// atomic.WriteFile leaves new files at 0600
	if err := os.Chmod(path, filePerms); err != nil {
		return fmt.Errorf("%w: chmod: %w", ErrStorageUnavailable, err)
	}
	return nil
}
