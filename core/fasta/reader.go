// core/fasta/reader.go
package fasta

import (
	"context"
	"fmt"
	"io"
)

// Record represents a parsed FASTA sequence.
type Record struct {
	ID          string
	Description string
	Seq         []byte
}

// ReadAllCtx collects every record of r in input order. An input without
// records is reported as ErrNoRecords.
func ReadAllCtx(ctx context.Context, r io.Reader) ([]Record, error) {
	var recs []Record
	err := StreamCtx(ctx, r, func(rec Record) error {
		recs = append(recs, rec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, ErrNoRecords
	}
	return recs, nil
}

// ReadAllPathCtx opens path ("-" for stdin, gzip detected) and reads it whole.
// Errors are prefixed with the path.
func ReadAllPathCtx(ctx context.Context, path string) ([]Record, error) {
	rc, err := openReader(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()

	recs, err := ReadAllCtx(ctx, rc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return recs, nil
}

// IDs returns the ID of every record.
func IDs(recs []Record) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.ID
	}
	return out
}
