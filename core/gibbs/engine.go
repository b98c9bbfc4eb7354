// core/gibbs/engine.go
package gibbs

import (
	"context"
	"errors"
	"fmt"

	"gibbsmotif-core/profile"
	"gibbsmotif-core/sampler"
	"gibbsmotif-core/weight"
)

// DefaultMaxIterations is the iteration budget when Config leaves it zero.
const DefaultMaxIterations = 1_000_000

// Run polls its context once per this many iterations.
const ctxCheckEvery = 1024

var (
	ErrMotifLength      = errors.New("gibbs: motif length must be positive")
	ErrAlphabetSize     = errors.New("gibbs: alphabet size must be positive")
	ErrNoSequences      = errors.New("gibbs: no sequences")
	ErrSequenceTooShort = errors.New("gibbs: sequence shorter than motif")
	ErrSymbolOutOfRange = errors.New("gibbs: symbol index outside alphabet")
	ErrNeedSampler      = errors.New("gibbs: sampler is required")
	ErrBadLimit         = errors.New("gibbs: negative iteration limit")
	ErrFinished         = errors.New("gibbs: run already finished")
)

// State is the engine's lifecycle position.
type State int

const (
	Initializing State = iota
	Sampling
	Converged
	Exhausted
)

func (s State) String() string {
	switch s {
	case Initializing:
		return "initializing"
	case Sampling:
		return "sampling"
	case Converged:
		return "converged"
	case Exhausted:
		return "exhausted"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Config holds the sampling parameters.
type Config struct {
	MotifLength  int
	AlphabetSize int

	MaxIterations int // 0 = DefaultMaxIterations
	Stability     int // consecutive unchanged iterations to converge; 0 = number of sequences

	Pseudocount profile.Pseudocount
	Policy      weight.Policy // nil = weight.ProfileOnly

	// Observer, when set, sees every completed iteration.
	Observer func(Iteration)
}

// DefaultConfig returns the reference parameters for motif width w.
func DefaultConfig(w, alphabetSize int) Config {
	return Config{
		MotifLength:   w,
		AlphabetSize:  alphabetSize,
		MaxIterations: DefaultMaxIterations,
		Pseudocount:   profile.PerSequence,
		Policy:        weight.ProfileOnly{},
	}
}

// Validate checks the parameters that do not depend on the input sequences.
func (c Config) Validate() error {
	if c.MotifLength <= 0 {
		return fmt.Errorf("%w (got %d)", ErrMotifLength, c.MotifLength)
	}
	if c.AlphabetSize <= 0 {
		return fmt.Errorf("%w (got %d)", ErrAlphabetSize, c.AlphabetSize)
	}
	if c.MaxIterations < 0 || c.Stability < 0 {
		return ErrBadLimit
	}
	return nil
}

// Iteration describes one resampling step.
type Iteration struct {
	N         int // 1-based iteration count
	Held      int
	Old, New  int
	Stability int
}

// Changed reports whether the held-out sequence moved.
func (it Iteration) Changed() bool { return it.Old != it.New }

// Result is the assignment at the end of a run.
type Result struct {
	Starts     []int
	State      State
	Iterations int
	Stability  int
	Threshold  int
	// Score is the information content of the profile built from all sequences.
	Score float64
}

// Engine owns the start assignment of one Markov chain.
type Engine struct {
	seqs      [][]int
	cfg       Config
	builder   profile.Builder
	policy    weight.Policy
	smp       *sampler.Sampler
	starts    []int
	state     State
	iter      int
	stable    int
	threshold int
}

// ValidateInput checks cfg and seqs without building an engine: motif fits
// every sequence and every symbol is inside the alphabet.
func ValidateInput(seqs [][]int, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if len(seqs) == 0 {
		return ErrNoSequences
	}
	for i, s := range seqs {
		if len(s) < cfg.MotifLength {
			return fmt.Errorf("sequence %d (len %d) shorter than motif length %d: %w",
				i, len(s), cfg.MotifLength, ErrSequenceTooShort)
		}
		for j, c := range s {
			if c < 0 || c >= cfg.AlphabetSize {
				return fmt.Errorf("sequence %d position %d symbol %d: %w", i, j, c, ErrSymbolOutOfRange)
			}
		}
	}
	return nil
}

// New validates cfg against seqs; all configuration errors surface here.
func New(seqs [][]int, cfg Config, smp *sampler.Sampler) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if smp == nil {
		return nil, ErrNeedSampler
	}
	if err := ValidateInput(seqs, cfg); err != nil {
		return nil, err
	}
	lengths := make([]int, len(seqs))
	for i, s := range seqs {
		lengths[i] = len(s)
	}

	if cfg.MaxIterations == 0 {
		cfg.MaxIterations = DefaultMaxIterations
	}
	policy := cfg.Policy
	if policy == nil {
		policy = weight.ProfileOnly{}
	}
	if err := policy.Validate(lengths, cfg.MotifLength); err != nil {
		return nil, err
	}
	threshold := cfg.Stability
	if threshold == 0 {
		threshold = len(seqs)
	}

	return &Engine{
		seqs: seqs,
		cfg:  cfg,
		builder: profile.Builder{
			MotifLength:  cfg.MotifLength,
			AlphabetSize: cfg.AlphabetSize,
			Pseudocount:  cfg.Pseudocount,
			Background:   policy.NeedsBackground(),
		},
		policy:    policy,
		smp:       smp,
		starts:    make([]int, len(seqs)),
		threshold: threshold,
	}, nil
}

// Threshold is the effective stability threshold.
func (e *Engine) Threshold() int { return e.threshold }

// State reports the lifecycle position.
func (e *Engine) State() State { return e.state }

// Starts returns a copy of the current assignment.
func (e *Engine) Starts() []int { return append([]int(nil), e.starts...) }

// Init draws a uniform offset for every sequence and resets the counters.
func (e *Engine) Init() {
	for i, s := range e.seqs {
		e.starts[i] = e.smp.IntN(len(s) - e.cfg.MotifLength + 1)
	}
	e.iter, e.stable = 0, 0
	e.state = Sampling
}

// Step performs one resampling iteration.
func (e *Engine) Step() (Iteration, error) {
	switch e.state {
	case Initializing:
		e.Init()
	case Converged, Exhausted:
		return Iteration{}, ErrFinished
	}

	held := e.smp.IntN(len(e.seqs))
	m := e.builder.Build(e.seqs, e.starts, held)
	w := weight.Compute(e.policy, m, e.seqs[held], held)
	next, err := e.smp.Sample(w)
	if err != nil {
		return Iteration{}, fmt.Errorf("sequence %d: %w", held, err)
	}

	old := e.starts[held]
	if next == old {
		e.stable++
	} else {
		e.stable = 0
	}
	e.starts[held] = next
	e.iter++

	if e.stable >= e.threshold {
		e.state = Converged
	} else if e.iter >= e.cfg.MaxIterations {
		e.state = Exhausted
	}

	it := Iteration{N: e.iter, Held: held, Old: old, New: next, Stability: e.stable}
	if e.cfg.Observer != nil {
		e.cfg.Observer(it)
	}
	return it, nil
}

// Run samples until the chain converges or the budget is spent. On
// cancellation it returns the current assignment together with ctx.Err().
func (e *Engine) Run(ctx context.Context) (Result, error) {
	if e.state == Initializing {
		e.Init()
	}
	for e.state == Sampling {
		if e.iter%ctxCheckEvery == 0 {
			select {
			case <-ctx.Done():
				return e.Result(), ctx.Err()
			default:
			}
		}
		if _, err := e.Step(); err != nil {
			return e.Result(), err
		}
	}
	return e.Result(), nil
}

// Result snapshots the current assignment and scores it.
func (e *Engine) Result() Result {
	m := e.builder.Build(e.seqs, e.starts, profile.NoHoldOut)
	return Result{
		Starts:     e.Starts(),
		State:      e.state,
		Iterations: e.iter,
		Stability:  e.stable,
		Threshold:  e.threshold,
		Score:      m.InformationContent(),
	}
}
