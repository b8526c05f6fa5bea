package textstore

import (
	"encoding/csv"
	"fmt"
	"os"
)

// Staged is a prepared full rewrite of a resource that has not been made
// visible yet. It lets a caller order a rewrite with another write (the
// sale flow stages the stock rewrite, appends the sale row, then commits)
// so an append failure leaves the resource untouched.
type Staged struct {
	path    string
	tmpPath string
	done    bool
}

// StageSave writes the header and encoded records to a temp file next to
// the resource and returns a handle to commit or abort the rewrite.
func StageSave[T any](r Resource, records []T, encode func(T) []string) (*Staged, error) {
	tmpPath := r.Path + ".tmp"

	f, err := os.Create(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stage %s: %w", r.Path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(r.Header); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return nil, fmt.Errorf("failed to stage header for %s: %w", r.Path, err)
	}
	for _, rec := range records {
		if err := w.Write(encode(rec)); err != nil {
			f.Close()
			os.Remove(tmpPath)
			return nil, fmt.Errorf("failed to stage row for %s: %w", r.Path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return nil, fmt.Errorf("failed to flush staged %s: %w", r.Path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return nil, fmt.Errorf("failed to close staged %s: %w", r.Path, err)
	}

	return &Staged{path: r.Path, tmpPath: tmpPath}, nil
}

// Commit renames the staged file over the resource, making the rewrite
// visible atomically.
func (s *Staged) Commit() error {
	if s.done {
		return nil
	}
	s.done = true
	if err := os.Rename(s.tmpPath, s.path); err != nil {
		return fmt.Errorf("failed to commit staged %s: %w", s.path, err)
	}
	return nil
}

// Abort discards the staged rewrite; the resource is left as it was.
func (s *Staged) Abort() {
	if s.done {
		return
	}
	s.done = true
	os.Remove(s.tmpPath)
}
