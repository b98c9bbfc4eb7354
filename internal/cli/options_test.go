// internal/cli/options_test.go
package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, args ...string) Options {
	t.Helper()
	opts, err := ParseArgs(NewFlagSet("test"), args)
	require.NoError(t, err)
	return opts
}

func TestPositionalsOK(t *testing.T) {
	o := mustParse(t, "seqs.fa", "8")
	assert.Equal(t, "seqs.fa", o.SeqFile)
	assert.Equal(t, 8, o.MotifLength)
	assert.Equal(t, DefaultMaxIterations, o.MaxIterations)
	assert.Equal(t, DefaultAlphabet, o.Alphabet)
	assert.Equal(t, UnknownReject, o.Unknown)
	assert.Equal(t, "text", o.Output)
	assert.True(t, o.Header)
	assert.Zero(t, o.Seed)
}

func TestMotifLengthFlag(t *testing.T) {
	o := mustParse(t, "-w", "6", "seqs.fa")
	assert.Equal(t, 6, o.MotifLength)

	o = mustParse(t, "--motif-length=6", "seqs.fa", "6")
	assert.Equal(t, 6, o.MotifLength)
}

func TestFlagsAfterPositionals(t *testing.T) {
	o := mustParse(t, "seqs.fa", "4", "--seed", "7", "-o", "json", "--background", "--restarts", "3", "--pseudocount", "0.25")
	assert.Equal(t, uint64(7), o.Seed)
	assert.Equal(t, "json", o.Output)
	assert.True(t, o.Background)
	assert.Equal(t, 3, o.Restarts)
	assert.InDelta(t, 0.25, o.Pseudocount, 0)
}

func TestHelpAndVersion(t *testing.T) {
	_, err := ParseArgs(NewFlagSet("test"), []string{"-h"})
	assert.True(t, errors.Is(err, pflag.ErrHelp))

	o, err := ParseArgs(NewFlagSet("test"), []string{"--version"})
	require.NoError(t, err)
	assert.True(t, o.Version)
}

func TestUsageListsFlags(t *testing.T) {
	fs := NewFlagSet("gibbsmotif")
	_, _ = ParseArgs(fs, []string{"-h"})
	var b bytes.Buffer
	Usage(&b, fs)
	assert.Contains(t, b.String(), "Usage:")
	assert.Contains(t, b.String(), "--max-iterations")
	assert.Contains(t, b.String(), "-w, --motif-length")
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		args []string
	}{
		{"no file", nil},
		{"no motif length", []string{"seqs.fa"}},
		{"bad motif length", []string{"seqs.fa", "x"}},
		{"zero motif length", []string{"seqs.fa", "0"}},
		{"conflicting lengths", []string{"-w", "5", "seqs.fa", "6"}},
		{"extra args", []string{"seqs.fa", "4", "more"}},
		{"bad output", []string{"seqs.fa", "4", "-o", "xml"}},
		{"bad unknown", []string{"seqs.fa", "4", "--unknown", "skip"}},
		{"zero restarts", []string{"seqs.fa", "4", "--restarts", "0"}},
		{"negative stability", []string{"seqs.fa", "4", "--stability", "-1"}},
		{"negative pseudocount", []string{"seqs.fa", "4", "--pseudocount", "-0.5"}},
		{"zero budget", []string{"seqs.fa", "4", "--max-iterations", "0"}},
		{"quiet verbose", []string{"seqs.fa", "4", "-q", "--verbose"}},
		{"unknown flag", []string{"seqs.fa", "4", "--nope"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseArgs(NewFlagSet("test"), tc.args)
			assert.Error(t, err)
		})
	}
}
