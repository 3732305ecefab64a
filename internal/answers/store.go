package answers

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// PersistenceError is returned when the answer file can't be read or
// written. The in-memory state is left unchanged so the caller can retry.
type PersistenceError struct {
	Op   string
	Path string
	Err  error
}

// Error implements the error interface.
func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying cause.
func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// AsPersistenceError checks if err is a PersistenceError and extracts it.
func AsPersistenceError(err error, target **PersistenceError) bool {
	return errors.As(err, target)
}

// Store reads and writes the answer file. Every save is a whole-file
// rewrite through a temp file and rename; there is no batching and no
// cross-process locking (last writer wins).
type Store struct {
	path string
}

// NewStore creates a store backed by the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (st *Store) Path() string {
	return st.path
}

// Load reads the answer file. An absent file is not an error: it returns
// an empty default state so a fresh workspace starts clean.
func (st *Store) Load() (*State, error) {
	data, err := os.ReadFile(st.path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewState("", 0), nil
		}
		return nil, &PersistenceError{Op: "reading", Path: st.path, Err: err}
	}

	var state State
	if err := yaml.Unmarshal(data, &state); err != nil {
		return nil, &PersistenceError{Op: "parsing", Path: st.path, Err: err}
	}
	if state.Answers == nil {
		state.Answers = make(map[string]Value)
	}
	return &state, nil
}

// Save rewrites the answer file in full. On failure the file either keeps
// its previous content or holds the complete new content, never a torn
// write, because the bytes land in a temp file first.
func (st *Store) Save(state *State) error {
	data, err := yaml.Marshal(state)
	if err != nil {
		return &PersistenceError{Op: "encoding", Path: st.path, Err: err}
	}

	dir := filepath.Dir(st.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &PersistenceError{Op: "preparing", Path: st.path, Err: err}
	}

	tmp, err := os.CreateTemp(dir, ".answers-*.yaml")
	if err != nil {
		return &PersistenceError{Op: "staging", Path: st.path, Err: err}
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()           //nolint:errcheck,gosec // already failing
		os.Remove(tmpName)    //nolint:errcheck,gosec // best effort cleanup
		return &PersistenceError{Op: "writing", Path: st.path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName) //nolint:errcheck,gosec // best effort cleanup
		return &PersistenceError{Op: "writing", Path: st.path, Err: err}
	}

	if err := os.Rename(tmpName, st.path); err != nil {
		os.Remove(tmpName) //nolint:errcheck,gosec // best effort cleanup
		return &PersistenceError{Op: "replacing", Path: st.path, Err: err}
	}
	return nil
}
