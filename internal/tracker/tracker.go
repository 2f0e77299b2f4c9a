package tracker

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Writer persists run bookkeeping files into a tracking directory.
type Writer struct {
	Dir          string
	RunStatePath string
	LockPath     string
}

// NewWriter creates a writer rooted at dir.
func NewWriter(dir string) *Writer {
	return &Writer{
		Dir:          dir,
		RunStatePath: filepath.Join(dir, "run_state.json"),
		LockPath:     filepath.Join(dir, ".skyrun_lock"),
	}
}

// WriteRunState persists the in-flight run state.
func (w *Writer) WriteRunState(s RunState) error {
	return writeJSONAtomic(w.RunStatePath, s)
}

// LoadRunState reads the last persisted run state. A missing file returns
// (nil, nil).
func (w *Writer) LoadRunState() (*RunState, error) {
	data, err := os.ReadFile(w.RunStatePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var rs RunState
	if err := json.Unmarshal(data, &rs); err != nil {
		return nil, fmt.Errorf("failed to parse run state: %w", err)
	}
	return &rs, nil
}

func writeJSONAtomic(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return err
	}

	tmp := fmt.Sprintf("%s.tmp.%d", path, time.Now().UnixNano())
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}
