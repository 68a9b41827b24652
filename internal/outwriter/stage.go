package outwriter

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

type staged struct {
	tmp   string
	final string
	msg   string
}

// Stage collects outputs in temporary files next to their destinations.
// Nothing is visible at a destination until Commit.
type Stage struct {
	entries []staged
}

// NewStage returns an empty stage.
func NewStage() *Stage {
	return &Stage{}
}

// Len returns the number of staged outputs.
func (s *Stage) Len() int { return len(s.entries) }

// Add encodes one output into a temporary file beside path.
func (s *Stage) Add(path string, writer func(io.Writer) error, successMsg string) error {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	file, err := os.CreateTemp(dir, "."+base+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to stage %s: %w", path, err)
	}
	tmp := file.Name()

	if err := writer(file); err != nil {
		_ = file.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := file.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	s.entries = append(s.entries, staged{tmp: tmp, final: path, msg: successMsg})
	return nil
}

// Commit renames every staged output into place.
func (s *Stage) Commit() error {
	defer s.Discard()
	for len(s.entries) > 0 {
		e := s.entries[0]
		if err := os.Rename(e.tmp, e.final); err != nil {
			return fmt.Errorf("failed to commit %s: %w", e.final, err)
		}
		s.entries = s.entries[1:]
		_, _ = fmt.Fprintf(os.Stderr, "💾 %s to %s\n", e.msg, e.final)
	}
	return nil
}

// Discard removes every staged output.
func (s *Stage) Discard() {
	for _, e := range s.entries {
		_ = os.Remove(e.tmp)
	}
	s.entries = nil
}
