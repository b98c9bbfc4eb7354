package weight

import (
	"errors"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	"gibbsmotif-core/profile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedModel() *profile.Model {
	return &profile.Model{
		Profile: [][]float64{
			{0.7, 0.1, 0.1, 0.1},
			{0.1, 0.1, 0.7, 0.1},
		},
		Null: []float64{0.4, 0.1, 0.1, 0.4},
	}
}

// rawProduct is the unscaled likelihood (or ratio) of the window at j.
func rawProduct(m *profile.Model, seq []int, j int, ratio bool) float64 {
	p := 1.0
	for k := range m.Profile {
		p *= m.Profile[k][seq[j+k]]
		if ratio {
			p /= m.Null[seq[j+k]]
		}
	}
	return p
}

func assertProportional(t *testing.T, want, got []float64) {
	t.Helper()
	require.Len(t, got, len(want))
	// Compare every ratio against offset 0.
	for j := range want {
		assert.InDelta(t, want[j]/want[0], got[j]/got[0], 1e-9, "offset %d", j)
	}
}

func TestProfileOnlyIsProportionalToProduct(t *testing.T) {
	m := fixedModel()
	seq := []int{0, 2, 3, 0, 1}
	got := Compute(ProfileOnly{}, m, seq, 0)

	want := make([]float64, len(seq)-1)
	for j := range want {
		want[j] = rawProduct(m, seq, j, false)
	}
	assertProportional(t, want, got)
	assert.InDelta(t, 1.0, got[0], 1e-12, "best offset is scaled to 1")
}

func TestProfileOverNullUsesLikelihoodRatio(t *testing.T) {
	m := fixedModel()
	seq := []int{3, 3, 0, 2, 1, 1}
	got := Compute(ProfileOverNull{}, m, seq, 0)

	want := make([]float64, len(seq)-1)
	for j := range want {
		want[j] = rawProduct(m, seq, j, true)
	}
	assertProportional(t, want, got)
	assert.True(t, ProfileOverNull{}.NeedsBackground())
	assert.False(t, ProfileOnly{}.NeedsBackground())
}

func TestWeightsAreNonNegative(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 4))
	for trial := 0; trial < 100; trial++ {
		w := 1 + r.IntN(12)
		n := 4 + r.IntN(10)
		seqs := make([][]int, n)
		starts := make([]int, n)
		for i := range seqs {
			s := make([]int, w+r.IntN(40))
			for j := range s {
				s[j] = r.IntN(20)
			}
			seqs[i] = s
			starts[i] = r.IntN(len(s) - w + 1)
		}
		held := r.IntN(n)
		m := profile.Builder{MotifLength: w, AlphabetSize: 20, Background: true}.Build(seqs, starts, held)
		for _, p := range []Policy{ProfileOnly{}, ProfileOverNull{}} {
			got := Compute(p, m, seqs[held], held)
			require.Len(t, got, len(seqs[held])-w+1)
			for _, v := range got {
				assert.GreaterOrEqual(t, v, 0.0)
				assert.False(t, math.IsNaN(v))
			}
		}
	}
}

func TestLongMotifDoesNotUnderflow(t *testing.T) {
	const w = 400
	seqs := [][]int{make([]int, w+5), make([]int, w+5)}
	for i := range seqs[1] {
		seqs[1][i] = i % 26
	}
	m := profile.Builder{MotifLength: w, AlphabetSize: 26}.Build(seqs, []int{0, 0}, 1)
	got := Compute(ProfileOnly{}, m, seqs[1], 1)
	assert.Greater(t, maxOf(got), 0.0)
}

func maxOf(v []float64) float64 {
	mx := v[0]
	for _, x := range v[1:] {
		mx = math.Max(mx, x)
	}
	return mx
}

func TestWithPriorScalesWeights(t *testing.T) {
	m := fixedModel()
	seqs := [][]int{{0, 2, 0, 2}, {1, 1, 1}}
	priors := Priors{{1, 0, 0.5}, {1, 1}}
	p := WithPrior(ProfileOnly{}, priors)
	require.NoError(t, p.Validate([]int{4, 3}, 2))
	assert.Equal(t, "profile+prior", p.Name())

	base := Compute(ProfileOnly{}, m, seqs[0], 0)
	got := Compute(p, m, seqs[0], 0)
	assert.InDelta(t, base[0], got[0], 1e-12)
	assert.Equal(t, 0.0, got[1])
	assert.InDelta(t, base[2]*0.5, got[2], 1e-12)
}

func TestWithPriorPinsOffsetBelowUnderflow(t *testing.T) {
	// Offset 0 is about e^-1380 as likely as the best window; only it has a
	// non-zero prior.
	const w = 200
	m := &profile.Model{Profile: make([][]float64, w)}
	for k := range m.Profile {
		m.Profile[k] = []float64{0.997, 0.001, 0.001, 0.001}
	}
	seq := make([]int, 2*w)
	for j := 0; j < w; j++ {
		seq[j] = 1
	}
	row := make([]float64, w+1)
	row[0] = 1
	p := WithPrior(ProfileOnly{}, Priors{row})
	require.NoError(t, p.Validate([]int{len(seq)}, w))

	base := Compute(ProfileOnly{}, m, seq, 0)
	require.Zero(t, base[0], "base weight underflows")

	got := Compute(p, m, seq, 0)
	assert.Equal(t, 1.0, got[0])
	for j := 1; j < len(got); j++ {
		require.Zero(t, got[j], "offset %d", j)
	}
}

func TestWithPriorValidatesShape(t *testing.T) {
	p := WithPrior(ProfileOnly{}, Priors{{1, 1}})
	err := p.Validate([]int{4, 3}, 2)
	assert.True(t, errors.Is(err, ErrPriorShape))

	p = WithPrior(ProfileOnly{}, Priors{{1, 1}, {1}})
	err = p.Validate([]int{4, 3}, 2)
	assert.True(t, errors.Is(err, ErrPriorShape))

	p = WithPrior(ProfileOnly{}, Priors{{0, 0, 0}, {1, 1}})
	err = p.Validate([]int{4, 3}, 2)
	assert.True(t, errors.Is(err, ErrInvalidPrior))
}

func TestLoadPriorsTSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "priors.tsv")
	require.NoError(t, os.WriteFile(path, []byte("# id offset weight\nseq2 1 0.25\n\nseq1 0 3\n"), 0o644))

	p, err := LoadPriorsTSV(path, []string{"seq1", "seq2"}, []int{5, 4}, 3)
	require.NoError(t, err)
	assert.Equal(t, Priors{{3, 1, 1}, {1, 0.25}}, p)
}

func TestLoadPriorsTSVErrors(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"fields":  "seq1 0\n",
		"unknown": "nope 0 1\n",
		"range":   "seq1 9 1\n",
		"offset":  "seq1 x 1\n",
		"weight":  "seq1 0 -1\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name+".tsv")
			require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
			_, err := LoadPriorsTSV(path, []string{"seq1"}, []int{5}, 3)
			require.Error(t, err)
		})
	}

	_, err := LoadPriorsTSV(filepath.Join(dir, "missing.tsv"), nil, nil, 1)
	require.Error(t, err)
}

func TestUniformPriorsShortSequence(t *testing.T) {
	p := UniformPriors([]int{5, 2}, 3)
	assert.Equal(t, []float64{1, 1, 1}, p[0])
	assert.Empty(t, p[1])
}
