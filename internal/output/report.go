// internal/output/report.go
package output

import (
	"gibbsmotif-core/fasta"
	"gibbsmotif-core/gibbs"
)

// Site is the discovered motif occurrence in one input record.
type Site struct {
	SequenceID string
	Index      int
	Offset     int
	Motif      string
	Seq        string // whole record, kept for pretty rendering
}

// Report is everything a writer needs about one finished run.
type Report struct {
	SourceFile  string
	MotifLength int
	Weighting   string
	State       string
	Iterations  int
	Threshold   int
	Restart     int
	Restarts    int
	Seed        uint64
	Score       float64
	Sites       []Site
}

// RunInfo carries the run metadata that is not part of gibbs.Result.
type RunInfo struct {
	SourceFile string
	Weighting  string
	Restart    int
	Restarts   int
	Seed       uint64
}

// NewReport pairs the final assignment with the raw records, in input order.
func NewReport(recs []fasta.Record, w int, res gibbs.Result, info RunInfo) Report {
	r := Report{
		SourceFile:  info.SourceFile,
		MotifLength: w,
		Weighting:   info.Weighting,
		State:       res.State.String(),
		Iterations:  res.Iterations,
		Threshold:   res.Threshold,
		Restart:     info.Restart,
		Restarts:    info.Restarts,
		Seed:        info.Seed,
		Score:       res.Score,
		Sites:       make([]Site, len(recs)),
	}
	for i, rec := range recs {
		off := res.Starts[i]
		r.Sites[i] = Site{
			SequenceID: rec.ID,
			Index:      i,
			Offset:     off,
			Motif:      string(rec.Seq[off : off+w]),
			Seq:        string(rec.Seq),
		}
	}
	return r
}

// Consensus is the most frequent (case-folded) symbol per motif column;
// ties go to the smaller byte.
func (r Report) Consensus() string {
	if len(r.Sites) == 0 || r.MotifLength == 0 {
		return ""
	}
	out := make([]byte, r.MotifLength)
	for k := 0; k < r.MotifLength; k++ {
		var counts [256]int
		for _, s := range r.Sites {
			counts[upper(s.Motif[k])]++
		}
		best := 0
		for c := 1; c < len(counts); c++ {
			if counts[c] > counts[best] {
				best = c
			}
		}
		out[k] = byte(best)
	}
	return string(out)
}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}
