// core/sampler/sampler.go
package sampler

import (
	crand "crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/sampleuv"
)

var (
	ErrEmptyWeights      = errors.New("sampler: empty weight vector")
	ErrInvalidWeight     = errors.New("sampler: weight must be finite and non-negative")
	ErrDegenerateWeights = errors.New("sampler: all weights are zero")
)

// Sampler draws indices from an owned random source. It is not safe for
// concurrent use.
type Sampler struct {
	src rand.Source
	rnd *rand.Rand
}

// New wraps src; every draw advances it.
func New(src rand.Source) *Sampler {
	return &Sampler{src: src, rnd: rand.New(src)}
}

// NewSeeded returns a reproducible sampler.
func NewSeeded(seed uint64) *Sampler {
	return New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewFromEntropy seeds once from the operating system and reports the seed
// so the run can be repeated with NewSeeded.
func NewFromEntropy() (*Sampler, uint64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return nil, 0, fmt.Errorf("sampler: read entropy: %w", err)
	}
	seed := binary.LittleEndian.Uint64(b[:])
	return NewSeeded(seed), seed, nil
}

// Sample draws i with probability w[i]/Σw. Weights need not be normalized.
func (s *Sampler) Sample(w []float64) (int, error) {
	if len(w) == 0 {
		return 0, ErrEmptyWeights
	}
	var total float64
	for i, v := range w {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("%w: w[%d]=%v", ErrInvalidWeight, i, v)
		}
		total += v
	}
	if total == 0 {
		return 0, ErrDegenerateWeights
	}
	idx, ok := sampleuv.NewWeighted(w, s.src).Take()
	if !ok {
		return 0, ErrDegenerateWeights
	}
	return idx, nil
}

// IntN draws uniformly from [0, n). It panics if n <= 0.
func (s *Sampler) IntN(n int) int { return s.rnd.IntN(n) }
