// internal/output/text.go
package output

import (
	"fmt"
	"io"
)

// WriteText prints one "offset<TAB>motif" line per site, in input order.
func WriteText(w io.Writer, r Report) error {
	for _, s := range r.Sites {
		if _, err := fmt.Fprintf(w, "%d\t%s\n", s.Offset, s.Motif); err != nil {
			return err
		}
	}
	return nil
}

// WriteTSV prints the header (when asked) and one row per site.
func WriteTSV(w io.Writer, r Report, header bool) error {
	if header {
		if _, err := fmt.Fprintln(w, TSVHeader); err != nil {
			return err
		}
	}
	for _, s := range r.Sites {
		if _, err := fmt.Fprintf(w, "%s\t%d\t%s\n", s.SequenceID, s.Offset, s.Motif); err != nil {
			return err
		}
	}
	return nil
}
