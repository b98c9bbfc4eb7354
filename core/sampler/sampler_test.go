package sampler

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

func TestSampleMatchesWeights(t *testing.T) {
	weights := []float64{1, 2, 3, 4, 0, 10}
	const draws = 200000

	s := NewSeeded(20240611)
	obs := make([]float64, len(weights))
	for i := 0; i < draws; i++ {
		idx, err := s.Sample(weights)
		require.NoError(t, err)
		obs[idx]++
	}
	require.Zero(t, obs[4], "zero-weight index must never be drawn")

	// Chi-squared over the positive-weight cells only.
	var o, e []float64
	total := 0.0
	for _, w := range weights {
		total += w
	}
	for i, w := range weights {
		if w == 0 {
			continue
		}
		o = append(o, obs[i])
		e = append(e, draws*w/total)
	}
	chi := stat.ChiSquare(o, e)
	crit := distuv.ChiSquared{K: float64(len(o) - 1)}.Quantile(0.999)
	assert.Less(t, chi, crit, "chi2=%v exceeds critical value %v", chi, crit)
}

func TestSampleSingleEntry(t *testing.T) {
	s := NewSeeded(1)
	for i := 0; i < 100; i++ {
		idx, err := s.Sample([]float64{1e-300})
		require.NoError(t, err)
		require.Equal(t, 0, idx)
	}
}

func TestSampleErrors(t *testing.T) {
	s := NewSeeded(1)

	_, err := s.Sample(nil)
	assert.True(t, errors.Is(err, ErrEmptyWeights))

	_, err = s.Sample([]float64{0, 0, 0})
	assert.True(t, errors.Is(err, ErrDegenerateWeights))

	for _, bad := range []float64{-1, math.NaN(), math.Inf(1)} {
		_, err = s.Sample([]float64{1, bad})
		assert.True(t, errors.Is(err, ErrInvalidWeight), "weight %v", bad)
	}
}

func TestSeededIsReproducible(t *testing.T) {
	a, b := NewSeeded(99), NewSeeded(99)
	w := []float64{1, 1, 1, 1, 1, 1, 1, 1}
	for i := 0; i < 50; i++ {
		x, err := a.Sample(w)
		require.NoError(t, err)
		y, err := b.Sample(w)
		require.NoError(t, err)
		require.Equal(t, x, y)
		require.Equal(t, a.IntN(1000), b.IntN(1000))
	}
}

func TestNewFromEntropyReportsSeed(t *testing.T) {
	s, seed, err := NewFromEntropy()
	require.NoError(t, err)
	replay := NewSeeded(seed)
	for i := 0; i < 20; i++ {
		require.Equal(t, replay.IntN(1<<20), s.IntN(1<<20))
	}
}
