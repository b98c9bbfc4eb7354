// internal/writers/report.go
package writers

import (
	"encoding/json"
	"io"

	"gibbsmotif/internal/jsonlutil"
	"gibbsmotif/internal/output"
	"gibbsmotif/internal/pretty"
)

func init() {
	Register(output.FormatText, writeText)
	Register(output.FormatTSV, func(w io.Writer, r output.Report, opt Options) error {
		return output.WriteTSV(w, r, opt.Header)
	})
	Register(output.FormatJSON, func(w io.Writer, r output.Report, _ Options) error {
		return output.WriteJSON(w, r)
	})
	Register(output.FormatJSONL, func(w io.Writer, r output.Report, _ Options) error {
		return WriteSitesJSONL(w, r)
	})
}

func writeText(w io.Writer, r output.Report, opt Options) error {
	if err := output.WriteText(w, r); err != nil {
		return err
	}
	if !opt.Pretty {
		return nil
	}
	_, err := io.WriteString(w, pretty.RenderWithOptions(r, opt.Render))
	return err
}

// WriteSitesJSONL streams each site as one JSON line (v1).
func WriteSitesJSONL(out io.Writer, r output.Report) error {
	return jsonlutil.WriteAll(out, r.Sites,
		func(enc *json.Encoder, s output.Site) error {
			return enc.Encode(output.ToAPISite(s, r.SourceFile))
		},
		IsBrokenPipe,
	)
}
