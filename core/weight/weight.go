// core/weight/weight.go
package weight

import (
	"errors"
	"fmt"
	"math"

	"gibbsmotif-core/profile"

	"gonum.org/v1/gonum/floats"
)

var ErrPriorShape = errors.New("weight: prior shape mismatch")

// Policy turns a model and the held-out sequence into per-offset weights.
type Policy interface {
	Name() string
	// NeedsBackground reports whether the model must carry a null row.
	NeedsBackground() bool
	// Validate checks the policy against sequence lengths and motif width
	// before sampling starts.
	Validate(lengths []int, w int) error
	// Weigh fills out[j] for every offset j of seq; len(out) == len(seq)-W+1.
	// idx is the position of seq in the input set.
	Weigh(m *profile.Model, seq []int, idx int, out []float64)
}

// Compute allocates the weight vector for seq and fills it with p.
func Compute(p Policy, m *profile.Model, seq []int, idx int) []float64 {
	out := make([]float64, len(seq)-m.Width()+1)
	p.Weigh(m, seq, idx, out)
	return out
}

// ProfileOnly weighs offsets by the motif likelihood under the profile.
type ProfileOnly struct{}

func (ProfileOnly) Name() string { return "profile" }
func (ProfileOnly) NeedsBackground() bool { return false }
func (ProfileOnly) Validate(_ []int, _ int) error { return nil }

func (p ProfileOnly) Weigh(m *profile.Model, seq []int, idx int, out []float64) {
	p.logWeigh(m, seq, idx, out)
	expScaled(out)
}

func (ProfileOnly) logWeigh(m *profile.Model, seq []int, _ int, out []float64) {
	logLikelihoods(m, seq, false, out)
}

// ProfileOverNull weighs offsets by the likelihood ratio of profile to background.
type ProfileOverNull struct{}

func (ProfileOverNull) Name() string { return "background" }
func (ProfileOverNull) NeedsBackground() bool { return true }
func (ProfileOverNull) Validate(_ []int, _ int) error { return nil }

func (p ProfileOverNull) Weigh(m *profile.Model, seq []int, idx int, out []float64) {
	p.logWeigh(m, seq, idx, out)
	expScaled(out)
}

func (ProfileOverNull) logWeigh(m *profile.Model, seq []int, _ int, out []float64) {
	logLikelihoods(m, seq, m.Null != nil, out)
}

// logWeigher fills unscaled log weights; decorators combine in log space and
// rescale once.
type logWeigher interface {
	logWeigh(m *profile.Model, seq []int, idx int, out []float64)
}

// logWeights asks p for log weights, falling back to the log of its scaled
// weights for policies without a log form.
func logWeights(p Policy, m *profile.Model, seq []int, idx int, out []float64) {
	if lw, ok := p.(logWeigher); ok {
		lw.logWeigh(m, seq, idx, out)
		return
	}
	p.Weigh(m, seq, idx, out)
	for j, v := range out {
		out[j] = math.Log(v)
	}
}

// prior multiplies a base policy's weights by fixed per-sequence position weights.
type prior struct {
	base   Policy
	priors Priors
	logs   [][]float64 // log priors; a zero prior is -Inf
}

// WithPrior wraps base so each weight is scaled by priors[idx][j].
func WithPrior(base Policy, priors Priors) Policy {
	logs := make([][]float64, len(priors))
	for i, row := range priors {
		logs[i] = make([]float64, len(row))
		for j, v := range row {
			logs[i][j] = math.Log(v)
		}
	}
	return prior{base: base, priors: priors, logs: logs}
}

func (p prior) Name() string { return p.base.Name() + "+prior" }
func (p prior) NeedsBackground() bool { return p.base.NeedsBackground() }

func (p prior) Validate(lengths []int, w int) error {
	if err := p.base.Validate(lengths, w); err != nil {
		return err
	}
	if len(p.priors) != len(lengths) {
		return fmt.Errorf("%w: %d prior rows for %d sequences", ErrPriorShape, len(p.priors), len(lengths))
	}
	for i, row := range p.priors {
		if want := lengths[i] - w + 1; len(row) != want {
			return fmt.Errorf("%w: sequence %d has %d prior weights, want %d", ErrPriorShape, i, len(row), want)
		}
		if err := checkRow(row); err != nil {
			return fmt.Errorf("sequence %d: %w", i, err)
		}
	}
	return nil
}

func (p prior) Weigh(m *profile.Model, seq []int, idx int, out []float64) {
	p.logWeigh(m, seq, idx, out)
	expScaled(out)
}

// logWeigh adds log priors before any rescaling, so a pinned offset keeps
// its weight even when its likelihood is far below the best window's.
func (p prior) logWeigh(m *profile.Model, seq []int, idx int, out []float64) {
	logWeights(p.base, m, seq, idx, out)
	floats.Add(out, p.logs[idx])
}

// logLikelihoods writes Σ_k log profile[k][s] (minus log null[s] when ratio) per offset.
func logLikelihoods(m *profile.Model, seq []int, ratio bool, out []float64) {
	w := m.Width()
	for j := range out {
		var ll float64
		for k := 0; k < w; k++ {
			c := seq[j+k]
			ll += math.Log(m.Profile[k][c])
			if ratio {
				ll -= math.Log(m.Null[c])
			}
		}
		out[j] = ll
	}
}

// expScaled exponentiates log weights relative to their maximum, so the best
// offset weighs 1 and ratios between offsets equal the products' ratios.
func expScaled(out []float64) {
	mx := floats.Max(out)
	if math.IsInf(mx, -1) {
		for j := range out {
			out[j] = 0
		}
		return
	}
	floats.AddConst(-mx, out)
	for j, v := range out {
		out[j] = math.Exp(v)
	}
}
