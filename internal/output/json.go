// internal/output/json.go
package output

import (
	"io"

	"gibbsmotif/internal/jsonutil"
	"gibbsmotif/internal/version"
	"gibbsmotif/pkg/api"
)

// ToAPISite converts a Site to the stable wire schema (v1).
func ToAPISite(s Site, source string) api.SiteV1 {
	return api.SiteV1{
		SequenceID: s.SequenceID,
		Index:      s.Index,
		Offset:     s.Offset,
		Motif:      s.Motif,
		SourceFile: source,
	}
}

// ToAPIRun converts a Report to the stable wire schema (v1).
func ToAPIRun(r Report) api.RunV1 {
	v := api.RunV1{
		Version:     version.Version,
		MotifLength: r.MotifLength,
		Weighting:   r.Weighting,
		State:       r.State,
		Iterations:  r.Iterations,
		Threshold:   r.Threshold,
		Restart:     r.Restart,
		Restarts:    r.Restarts,
		Seed:        r.Seed,
		Score:       r.Score,
		Consensus:   r.Consensus(),
		Sites:       make([]api.SiteV1, 0, len(r.Sites)),
	}
	for _, s := range r.Sites {
		v.Sites = append(v.Sites, ToAPISite(s, r.SourceFile))
	}
	return v
}

// WriteJSON writes the run as a single pretty-indented JSON document.
func WriteJSON(w io.Writer, r Report) error {
	return jsonutil.EncodePretty(w, ToAPIRun(r))
}
