package pretty

import (
	"fmt"
	"strings"

	"gibbsmotif/internal/output"
)

// Options control the ASCII alignment block.
type Options struct {
	// Flank is how many context symbols to show on each side of a site.
	// Negative means none; zero uses the default (5).
	Flank int

	// Glyphs for the conservation row under the consensus.
	ExactGlyph   string // default "|", every site agrees with the consensus
	PartialGlyph string // default "¦", a strict majority agrees
	PadGlyph     string // default " ", shown where a flank runs off the sequence
}

// DefaultOptions is the stock look.
var DefaultOptions = Options{
	Flank:        5,
	ExactGlyph:   "|",
	PartialGlyph: "¦",
	PadGlyph:     " ",
}

const (
	linePrefix = "# "
	gap        = " "
)

func (o Options) flank() int {
	switch {
	case o.Flank < 0:
		return 0
	case o.Flank == 0:
		return DefaultOptions.Flank
	}
	return o.Flank
}

func (o Options) ExactGlyphOrDefault() string {
	if o.ExactGlyph == "" {
		return DefaultOptions.ExactGlyph
	}
	return o.ExactGlyph
}

func (o Options) PartialGlyphOrDefault() string {
	if o.PartialGlyph == "" {
		return DefaultOptions.PartialGlyph
	}
	return o.PartialGlyph
}

func (o Options) padGlyph() string {
	if o.PadGlyph == "" {
		return DefaultOptions.PadGlyph
	}
	return o.PadGlyph
}

// RenderWithOptions prints every site aligned on its motif column, flanks in
// lower case, followed by the consensus and a conservation row.
func RenderWithOptions(r output.Report, opt Options) string {
	var b strings.Builder
	if len(r.Sites) == 0 || r.MotifLength <= 0 {
		fmt.Fprintf(&b, "%s(pretty not available: no sites)\n", linePrefix)
		return b.String()
	}

	fl := opt.flank()
	pad := opt.padGlyph()

	idW := len("consensus")
	for _, s := range r.Sites {
		if len(s.SequenceID) > idW {
			idW = len(s.SequenceID)
		}
	}

	for _, s := range r.Sites {
		left, right := flanks(s, r.MotifLength, fl)
		fmt.Fprintf(&b, "%s%-*s%s%s%s%s%s%s%s%s %d\n",
			linePrefix, idW, s.SequenceID, gap,
			strings.Repeat(pad, fl-len(left)), strings.ToLower(left), gap,
			strings.ToUpper(s.Motif), gap,
			strings.ToLower(right), strings.Repeat(pad, fl-len(right)),
			s.Offset,
		)
	}

	lead := strings.Repeat(" ", fl) + gap
	fmt.Fprintf(&b, "%s%-*s%s%s%s\n", linePrefix, idW, "consensus", gap, lead, r.Consensus())
	fmt.Fprintf(&b, "%s%-*s%s%s%s\n", linePrefix, idW, "", gap, lead, conservation(r, opt))
	b.WriteString("#\n")
	return b.String()
}

// Render uses DefaultOptions.
func Render(r output.Report) string {
	return RenderWithOptions(r, DefaultOptions)
}

func flanks(s output.Site, w, fl int) (string, string) {
	end := s.Offset + w
	if s.Offset < 0 || end > len(s.Seq) {
		return "", ""
	}
	lo := max(s.Offset-fl, 0)
	hi := min(end+fl, len(s.Seq))
	return s.Seq[lo:s.Offset], s.Seq[end:hi]
}

func conservation(r output.Report, opt Options) string {
	cons := r.Consensus()
	var b strings.Builder
	n := len(r.Sites)
	for k := 0; k < r.MotifLength; k++ {
		agree := 0
		for _, s := range r.Sites {
			if strings.EqualFold(s.Motif[k:k+1], cons[k:k+1]) {
				agree++
			}
		}
		switch {
		case agree == n:
			b.WriteString(opt.ExactGlyphOrDefault())
		case 2*agree > n:
			b.WriteString(opt.PartialGlyphOrDefault())
		default:
			b.WriteByte(' ')
		}
	}
	return strings.TrimRight(b.String(), " ")
}
