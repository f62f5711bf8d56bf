// Package stats contains statistics persistence and reporting.
package stats

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/verte-zerg/guessnum/internal/model"
)

// DefaultFileName is the statistics file created in the working directory.
const DefaultFileName = "guess_stats.json"

// ErrCorrupt is wrapped by Load when the file does not hold valid statistics.
var ErrCorrupt = errors.New("statistics file is corrupt")

// ReadError reports an I/O failure while loading statistics.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read statistics %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// WriteError reports a failed save.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write statistics %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// FileStore keeps statistics in a JSON file.
type FileStore struct {
	path string
}

// NewFileStore returns a store backed by path.
func NewFileStore(path string) *FileStore {
	if path == "" {
		path = DefaultFileName
	}
	return &FileStore{path: path}
}

// Path returns the statistics file path.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads statistics. The returned value is always usable: on any failure
// it is the empty Statistics, and the error only classifies what went wrong.
// A missing file is not an error.
func (s *FileStore) Load() (model.Statistics, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return model.Statistics{}, nil
		}
		return model.Statistics{}, &ReadError{Path: s.path, Err: err}
	}

	var st model.Statistics
	if err := json.Unmarshal(bytes.TrimSpace(data), &st); err != nil {
		return model.Statistics{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if !st.Valid() {
		return model.Statistics{}, fmt.Errorf("%w: inconsistent counters", ErrCorrupt)
	}
	return st, nil
}

// Save overwrites the file with st. Writes go to a temp file that is renamed
// into place so a failed save leaves the previous copy intact.
func (s *FileStore) Save(st model.Statistics) error {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return &WriteError{Path: s.path, Err: err}
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	tmpFile, err := os.CreateTemp(dir, ".guess_stats-*.json")
	if err != nil {
		return &WriteError{Path: s.path, Err: err}
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return &WriteError{Path: s.path, Err: err}
	}
	if err := tmpFile.Close(); err != nil {
		return &WriteError{Path: s.path, Err: err}
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return &WriteError{Path: s.path, Err: err}
	}
	return nil
}
