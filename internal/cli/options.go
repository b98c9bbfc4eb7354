// internal/cli/options.go
package cli

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"gibbsmotif/internal/output"
	"gibbsmotif/internal/version"
)

// Unknown-symbol policies accepted by --unknown.
const (
	UnknownReject = "reject"
	UnknownExtend = "extend"
)

// Defaults for flags whose zero value is not the default.
const (
	DefaultMaxIterations = 1_000_000
	DefaultRestarts      = 1
	DefaultAlphabet      = "letters"
)

// Options holds all CLI flags and arguments.
type Options struct {
	// Input
	SeqFile     string
	MotifLength int
	Alphabet    string
	Unknown     string
	PriorsFile  string

	// Sampling
	MaxIterations int
	Stability     int     // 0 = number of sequences
	Pseudocount   float64 // 0 = 1/N per sequence
	Background    bool
	Restarts      int
	Seed          uint64 // 0 = entropy

	// Output
	Output   string
	ToStderr bool
	Pretty   bool
	Header   bool // true unless --no-header

	// Diagnostics
	Quiet   bool
	Verbose bool

	Version bool
}

// NewFlagSet returns a clean FlagSet with ContinueOnError; callers print
// usage themselves.
func NewFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	fs.SortFlags = false
	return fs
}

// Usage writes the help text for fs to w.
func Usage(w io.Writer, fs *pflag.FlagSet) {
	name := fs.Name()
	fmt.Fprintf(w, `%s: Gibbs-sampling motif finder

Version: %s

Usage:
  %s [flags] <sequences.fa> <motif-length>
  %s [flags] -w <motif-length> <sequences.fa>

Flags:
`, name, version.Version, name, name)
	fmt.Fprint(w, fs.FlagUsages())
}

// ParseArgs registers and parses all flags, returns an Options struct.
// It returns pflag.ErrHelp when -h/--help was given.
func ParseArgs(fs *pflag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help, noHeader bool

	// Input
	fs.IntVarP(&opt.MotifLength, "motif-length", "w", 0, "motif length (alternative to the second positional)")
	fs.StringVar(&opt.Alphabet, "alphabet", DefaultAlphabet, "alphabet: letters | dna | protein | custom symbol string")
	fs.StringVar(&opt.Unknown, "unknown", UnknownReject, "symbols outside the alphabet: reject | extend")
	fs.StringVar(&opt.PriorsFile, "priors", "", "position priors TSV (record_id, offset, weight)")

	// Sampling
	fs.IntVar(&opt.MaxIterations, "max-iterations", DefaultMaxIterations, "iteration budget per chain")
	fs.IntVar(&opt.Stability, "stability", 0, "unchanged iterations needed to converge (0 = number of sequences)")
	fs.Float64Var(&opt.Pseudocount, "pseudocount", 0, "constant pseudocount (0 = 1/N per sequence)")
	fs.BoolVar(&opt.Background, "background", false, "weigh offsets against a background model")
	fs.IntVar(&opt.Restarts, "restarts", DefaultRestarts, "independent chains; the most informative is kept")
	fs.Uint64Var(&opt.Seed, "seed", 0, "RNG seed (0 = random, reported with --verbose)")

	// Output
	fs.StringVarP(&opt.Output, "output", "o", output.FormatText, "output format: text | tsv | json | jsonl")
	fs.BoolVar(&opt.ToStderr, "stderr", false, "write results to stderr instead of stdout")
	fs.BoolVar(&opt.Pretty, "pretty", false, "append an ASCII alignment block (text)")
	fs.BoolVar(&noHeader, "no-header", false, "suppress header line in TSV")

	// Diagnostics
	fs.BoolVarP(&opt.Quiet, "quiet", "q", false, "suppress warnings")
	fs.BoolVar(&opt.Verbose, "verbose", false, "report seed, restarts and progress on stderr")
	fs.BoolVarP(&opt.Version, "version", "v", false, "print version and exit")
	fs.BoolVarP(&help, "help", "h", false, "show this help message")

	if err := fs.Parse(argv); err != nil {
		return opt, err
	}
	if help {
		return opt, pflag.ErrHelp
	}
	if opt.Version {
		return opt, nil
	}
	opt.Header = !noHeader

	if err := opt.positionals(fs.Args(), fs.Changed("motif-length")); err != nil {
		return opt, err
	}
	return opt, Validate(opt)
}

func (o *Options) positionals(args []string, flagW bool) error {
	switch len(args) {
	case 0:
		return errors.New("a FASTA file is required")
	case 1:
		if !flagW {
			return errors.New("motif length is required (second positional or --motif-length)")
		}
	case 2:
		w, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("motif length %q is not an integer", args[1])
		}
		if flagW && w != o.MotifLength {
			return fmt.Errorf("motif length given twice (%d and %d)", o.MotifLength, w)
		}
		o.MotifLength = w
	default:
		return fmt.Errorf("unexpected arguments: %s", strings.Join(args[2:], " "))
	}
	o.SeqFile = args[0]
	return nil
}

// Validate checks flag values that do not depend on the input file.
func Validate(o Options) error {
	if o.MotifLength <= 0 {
		return fmt.Errorf("motif length must be ≥ 1 (got %d)", o.MotifLength)
	}
	if o.MaxIterations <= 0 {
		return errors.New("--max-iterations must be ≥ 1")
	}
	if o.Stability < 0 {
		return errors.New("--stability must be ≥ 0")
	}
	if o.Pseudocount < 0 || math.IsNaN(o.Pseudocount) || math.IsInf(o.Pseudocount, 0) {
		return errors.New("--pseudocount must be a finite value ≥ 0")
	}
	if o.Restarts < 1 {
		return errors.New("--restarts must be ≥ 1")
	}
	if o.Unknown != UnknownReject && o.Unknown != UnknownExtend {
		return fmt.Errorf("invalid --unknown %q", o.Unknown)
	}
	if o.Alphabet == "" {
		return errors.New("--alphabet must not be empty")
	}
	switch o.Output {
	case output.FormatText, output.FormatTSV, output.FormatJSON, output.FormatJSONL:
	default:
		return fmt.Errorf("invalid --output %q", o.Output)
	}
	if o.Quiet && o.Verbose {
		return errors.New("--quiet conflicts with --verbose")
	}
	return nil
}
