// Package textstore maps named flat-text resources to sequences of typed
// records. Each resource is a comma-delimited UTF-8 file whose first row is
// a fixed header; one record type per resource.
package textstore

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
)

// Resource identifies one persisted collection and its header contract.
type Resource struct {
	Path   string
	Header []string
}

// Ensure creates the resource with only the header row if it does not
// exist yet. Calling it again is a no-op.
func (r Resource) Ensure() error {
	if _, err := os.Stat(r.Path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat %s: %w", r.Path, err)
	}

	f, err := os.Create(r.Path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", r.Path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(r.Header); err != nil {
		return fmt.Errorf("failed to write header to %s: %w", r.Path, err)
	}
	w.Flush()
	return w.Error()
}

// LoadAll reads every data row of the resource and decodes it with decode.
// A missing file yields an empty slice. Rows whose field count differs from
// the header, rows that are not valid CSV, and rows decode rejects, are
// skipped; the second return value reports how many were dropped so callers
// can surface it.
func LoadAll[T any](r Resource, decode func([]string) (T, error)) ([]T, int, error) {
	f, err := os.Open(r.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, 0, nil
		}
		return nil, 0, fmt.Errorf("failed to open %s: %w", r.Path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	records := make([]T, 0)
	skipped := 0
	for line := 0; ; line++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if line == 0 {
			continue // header
		}
		if err != nil {
			skipped++
			continue
		}
		if len(row) != len(r.Header) {
			skipped++
			continue
		}
		rec, err := decode(row)
		if err != nil {
			skipped++
			continue
		}
		records = append(records, rec)
	}
	return records, skipped, nil
}

// SaveAll rewrites the resource with the header followed by one encoded row
// per record, in order. The rewrite is staged to a temp file and renamed
// into place so readers never observe a half-written file.
func SaveAll[T any](r Resource, records []T, encode func(T) []string) error {
	staged, err := StageSave(r, records, encode)
	if err != nil {
		return err
	}
	return staged.Commit()
}

// Append opens the resource for appending and writes one encoded row. The
// header is created first if the file is missing.
func Append[T any](r Resource, record T, encode func(T) []string) error {
	if err := r.Ensure(); err != nil {
		return err
	}

	f, err := os.OpenFile(r.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open %s for append: %w", r.Path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(encode(record)); err != nil {
		return fmt.Errorf("failed to append to %s: %w", r.Path, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", r.Path, err)
	}
	return nil
}
