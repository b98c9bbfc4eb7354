package output

import "testing"

func TestFormats_Stable(t *testing.T) {
	if FormatText != "text" || FormatTSV != "tsv" || FormatJSON != "json" || FormatJSONL != "jsonl" {
		t.Fatalf("output format constants changed")
	}
}

func TestTSVHeader_Stable(t *testing.T) {
	const want = "sequence_id\toffset\tmotif"
	if TSVHeader != want {
		t.Fatalf("TSVHeader changed:\n got:  %q\n want: %q", TSVHeader, want)
	}
}
