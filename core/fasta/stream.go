// core/fasta/stream.go
package fasta

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
)

var (
	// ErrNoHeader means sequence data appeared before the first '>' line.
	ErrNoHeader = errors.New("fasta: sequence data before first header")
	// ErrNoRecords means the input held no records at all.
	ErrNoRecords = errors.New("fasta: no records")
)

// StreamCtx parses FASTA from r and emits one Record per header. Sequence
// lines are concatenated with surrounding whitespace removed; blank lines are
// skipped. A header with no sequence lines yields an empty Seq.
//
// It is cancelable: returning promptly when ctx is Done, even mid-record.
func StreamCtx(ctx context.Context, r io.Reader, emit func(Record) error) error {
	sc := bufio.NewScanner(r)
	const maxLine = 64 * 1024 * 1024 // allow very long single-line sequences (64 MiB)
	buf := make([]byte, 64*1024)
	sc.Buffer(buf, maxLine)

	var (
		id, desc string
		inRecord bool
		seq      = make([]byte, 0, 1<<16)
		ln       int
	)

	flush := func() error {
		if !inRecord {
			return nil
		}
		return emit(Record{ID: id, Description: desc, Seq: append([]byte(nil), seq...)})
	}

	for sc.Scan() {
		ln++
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		if line[0] == '>' {
			if err := flush(); err != nil {
				return err
			}
			seq = seq[:0]
			id, desc = parseHeader(line[1:])
			inRecord = true
			continue
		}
		if !inRecord {
			return fmt.Errorf("line %d: %w", ln, ErrNoHeader)
		}
		seq = append(seq, line...)
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("fasta scan: %w", err)
	}
	return flush()
}

// parseHeader splits a header into its ID (first word) and the remainder.
func parseHeader(hdr []byte) (id, desc string) {
	hdr = bytes.TrimSpace(hdr)
	if i := bytes.IndexAny(hdr, " \t"); i >= 0 {
		return string(hdr[:i]), string(bytes.TrimSpace(hdr[i+1:]))
	}
	return string(hdr), ""
}
