// core/profile/profile.go
package profile

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// NoHoldOut builds a model from every sequence; used for scoring final assignments.
const NoHoldOut = -1

// Pseudocount selects the regularization policy.
// PerSequence (zero) adds 1/N to every cell and counts each symbol as 1/N;
// a positive value c adds c to every cell and counts each symbol as 1.
type Pseudocount float64

// PerSequence is the 1/N pseudocount policy.
const PerSequence Pseudocount = 0

// Constant returns a fixed pseudocount policy.
func Constant(c float64) Pseudocount { return Pseudocount(c) }

func (p Pseudocount) amounts(n int) (pseudo, inc float64) {
	if p > 0 {
		return float64(p), 1
	}
	if n < 1 {
		n = 1
	}
	return 1 / float64(n), 1 / float64(n)
}

// Model is a freshly built profile, plus the background row when requested.
type Model struct {
	// Profile has one row per motif position and one column per symbol.
	Profile [][]float64
	// Null is nil unless the builder was asked for a background model.
	Null []float64
}

// Builder produces leave-one-out models from the current start assignment.
type Builder struct {
	MotifLength  int
	AlphabetSize int
	Pseudocount  Pseudocount
	Background   bool
}

// Build counts the assigned windows of every sequence except held and
// normalizes each row to a probability distribution. Inputs are not modified
// and the returned Model is never shared with a previous call.
//
// Callers guarantee starts[i]+MotifLength <= len(seqs[i]) and symbols in
// [0, AlphabetSize).
func (b Builder) Build(seqs [][]int, starts []int, held int) *Model {
	pseudo, inc := b.Pseudocount.amounts(len(seqs))

	prof := make([][]float64, b.MotifLength)
	for k := range prof {
		row := make([]float64, b.AlphabetSize)
		for a := range row {
			row[a] = pseudo
		}
		prof[k] = row
	}

	var null []float64
	if b.Background {
		null = make([]float64, b.AlphabetSize)
		for _, s := range seqs {
			for _, c := range s {
				null[c] += inc
			}
		}
	}

	for i, s := range seqs {
		if i == held {
			continue
		}
		win := s[starts[i] : starts[i]+b.MotifLength]
		for k, c := range win {
			prof[k][c] += inc
			if null != nil {
				null[c] -= inc
			}
		}
	}

	for _, row := range prof {
		normalize(row)
	}
	if null != nil {
		for a := range null {
			// Guard against rounding below zero before adding the pseudocount.
			null[a] = math.Max(null[a], 0) + pseudo
		}
		normalize(null)
	}
	return &Model{Profile: prof, Null: null}
}

// normalize scales row to sum to 1; a zero row becomes uniform.
func normalize(row []float64) {
	sum := floats.Sum(row)
	if sum <= 0 || math.IsNaN(sum) || math.IsInf(sum, 0) {
		u := 1 / float64(len(row))
		for i := range row {
			row[i] = u
		}
		return
	}
	floats.Scale(1/sum, row)
}

// Width is the motif length the model was built for.
func (m *Model) Width() int { return len(m.Profile) }

// Background returns the null row, or a uniform row when the model has none.
func (m *Model) Background() []float64 {
	if m.Null != nil {
		return m.Null
	}
	if len(m.Profile) == 0 {
		return nil
	}
	n := len(m.Profile[0])
	u := make([]float64, n)
	for i := range u {
		u[i] = 1 / float64(n)
	}
	return u
}

// InformationContent is the relative entropy, in bits, of every profile row
// against the background, summed over motif positions.
func (m *Model) InformationContent() float64 {
	bg := m.Background()
	var ic float64
	for _, row := range m.Profile {
		for a, p := range row {
			if p > 0 && bg[a] > 0 {
				ic += p * math.Log2(p/bg[a])
			}
		}
	}
	return ic
}
