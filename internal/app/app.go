// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"gibbsmotif-core/alphabet"
	"gibbsmotif-core/fasta"
	"gibbsmotif-core/gibbs"
	"gibbsmotif-core/profile"
	"gibbsmotif-core/sampler"
	"gibbsmotif-core/weight"
	"gibbsmotif/internal/cli"
	"gibbsmotif/internal/cmdutil"
	"gibbsmotif/internal/output"
	"gibbsmotif/internal/version"
	"gibbsmotif/internal/writers"
)

// Exit codes.
const (
	ExitOK          = 0
	ExitRuntime     = 1
	ExitUsage       = 2
	ExitOutput      = 3
	ExitInterrupted = 130
)

// progressEvery is how often --verbose reports a running chain.
const progressEvery = 10_000

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := cli.NewFlagSet("gibbsmotif")

	if len(argv) == 0 {
		_, _ = cli.ParseArgs(fs, []string{"-h"})
		cli.Usage(outw, fs)
		return flush(outw, stderr, ExitOK)
	}

	opts, err := cli.ParseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			cli.Usage(outw, fs)
			return flush(outw, stderr, ExitOK)
		}
		cmdutil.Errorf(stderr, "%v", err)
		cli.Usage(stderr, fs)
		return ExitUsage
	}

	if opts.Version {
		_, _ = fmt.Fprintf(outw, "gibbsmotif version %s\n", version.Version)
		return flush(outw, stderr, ExitOK)
	}

	resw := outw
	if opts.ToStderr {
		resw = bufio.NewWriter(stderr)
	}
	return run(parent, opts, resw, stderr)
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

func run(ctx context.Context, opts cli.Options, resw *bufio.Writer, stderr io.Writer) int {
	recs, err := fasta.ReadAllPathCtx(ctx, opts.SeqFile)
	if err != nil {
		return fail(ctx, stderr, err, ExitUsage)
	}

	unknown := alphabet.Reject
	if opts.Unknown == cli.UnknownExtend {
		unknown = alphabet.Extend
	}
	alpha, err := alphabet.Named(opts.Alphabet, unknown)
	if err != nil {
		return fail(ctx, stderr, err, ExitUsage)
	}

	w := opts.MotifLength
	seqs := make([][]int, len(recs))
	lengths := make([]int, len(recs))
	for i, rec := range recs {
		if len(rec.Seq) < w {
			cmdutil.Errorf(stderr, "record %q (len %d) is shorter than motif length %d", rec.ID, len(rec.Seq), w)
			return ExitUsage
		}
		enc, err := alpha.Encode(rec.Seq)
		if err != nil {
			cmdutil.Errorf(stderr, "record %q: %v", rec.ID, err)
			return ExitUsage
		}
		seqs[i], lengths[i] = enc, len(enc)
	}

	cfg := gibbs.DefaultConfig(w, alpha.Size())
	cfg.MaxIterations = opts.MaxIterations
	cfg.Stability = opts.Stability
	if opts.Pseudocount > 0 {
		cfg.Pseudocount = profile.Constant(opts.Pseudocount)
	}
	if err := gibbs.ValidateInput(seqs, cfg); err != nil {
		return fail(ctx, stderr, err, ExitUsage)
	}

	var policy weight.Policy = weight.ProfileOnly{}
	if opts.Background {
		policy = weight.ProfileOverNull{}
	}
	if opts.PriorsFile != "" {
		priors, err := weight.LoadPriorsTSV(opts.PriorsFile, fasta.IDs(recs), lengths, w)
		if err != nil {
			return fail(ctx, stderr, err, ExitUsage)
		}
		policy = weight.WithPrior(policy, priors)
	}
	cfg.Policy = policy

	smp, seed, err := newSampler(opts.Seed)
	if err != nil {
		return fail(ctx, stderr, err, ExitRuntime)
	}
	cmdutil.Infof(stderr, opts.Verbose, "%d sequences, motif length %d, alphabet %q (%d columns), weighting %s",
		len(seqs), w, alpha.Symbols(), alpha.Size(), policy.Name())
	cmdutil.Infof(stderr, opts.Verbose, "seed %d", seed)

	if opts.Verbose {
		cfg.Observer = func(it gibbs.Iteration) {
			if it.N%progressEvery == 0 {
				cmdutil.Infof(stderr, true, "iteration %d: stability %d", it.N, it.Stability)
			}
		}
	}

	best, restart, err := gibbs.Search(ctx, seqs, cfg, smp, opts.Restarts)
	if err != nil {
		return fail(ctx, stderr, err, ExitRuntime)
	}
	cmdutil.Infof(stderr, opts.Verbose, "kept restart %d of %d: %s after %d iterations, %.3f bits",
		restart+1, opts.Restarts, best.State, best.Iterations, best.Score)
	if best.State == gibbs.Exhausted {
		cmdutil.Warnf(stderr, opts.Quiet, "no convergence within %d iterations (stability %d/%d); reporting the last assignment",
			best.Iterations, best.Stability, best.Threshold)
	}

	rep := output.NewReport(recs, w, best, output.RunInfo{
		SourceFile: opts.SeqFile,
		Weighting:  policy.Name(),
		Restart:    restart,
		Restarts:   opts.Restarts,
		Seed:       seed,
	})
	wopt := writers.Options{Header: opts.Header, Pretty: opts.Pretty}
	if err := writers.Write(opts.Output, resw, rep, wopt); err != nil {
		if writers.IsBrokenPipe(err) {
			return ExitOK
		}
		cmdutil.Errorf(stderr, "%v", err)
		return ExitOutput
	}
	return flush(resw, stderr, ExitOK)
}

func newSampler(seed uint64) (*sampler.Sampler, uint64, error) {
	if seed != 0 {
		return sampler.NewSeeded(seed), seed, nil
	}
	return sampler.NewFromEntropy()
}

// fail reports err and picks the exit code; cancellation always wins.
func fail(ctx context.Context, stderr io.Writer, err error, code int) int {
	if ctx.Err() != nil || errors.Is(err, context.Canceled) {
		cmdutil.Errorf(stderr, "interrupted")
		return ExitInterrupted
	}
	cmdutil.Errorf(stderr, "%v", err)
	return code
}

func flush(w *bufio.Writer, stderr io.Writer, code int) int {
	if err := w.Flush(); writers.IsBrokenPipe(err) {
		return code
	} else if err != nil {
		cmdutil.Errorf(stderr, "%v", err)
		return ExitOutput
	}
	return code
}
