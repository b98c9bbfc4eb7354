// pkg/api/motif_v1.go
package api

// SiteV1 is the stable JSON/JSONL schema for one sequence's motif site.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type SiteV1 struct {
	SequenceID string `json:"sequence_id"`
	Index      int    `json:"index"`
	Offset     int    `json:"offset"`
	Motif      string `json:"motif"`
	SourceFile string `json:"source_file,omitempty"`
}

// RunV1 is the stable schema for a whole run (JSON output).
type RunV1 struct {
	Version     string   `json:"version"`
	MotifLength int      `json:"motif_length"`
	Weighting   string   `json:"weighting"`
	State       string   `json:"state"` // "converged" | "exhausted"
	Iterations  int      `json:"iterations"`
	Threshold   int      `json:"threshold"`
	Restart     int      `json:"restart"`
	Restarts    int      `json:"restarts"`
	Seed        uint64   `json:"seed"`
	Score       float64  `json:"score_bits"`
	Consensus   string   `json:"consensus,omitempty"`
	Sites       []SiteV1 `json:"sites"`
}
