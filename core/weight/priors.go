package weight

import (
	"bufio"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"
)

var ErrInvalidPrior = errors.New("weight: invalid prior weight")

// Priors holds one position-weight vector per sequence, indexed by offset.
type Priors [][]float64

// UniformPriors returns all-ones vectors sized for motif width w.
func UniformPriors(lengths []int, w int) Priors {
	p := make(Priors, len(lengths))
	for i, n := range lengths {
		row := make([]float64, max(n-w+1, 0))
		for j := range row {
			row[j] = 1
		}
		p[i] = row
	}
	return p
}

// LoadPriorsTSV reads "record_id offset weight" lines. Offsets not listed keep
// weight 1. ids and lengths describe the loaded sequences in input order.
func LoadPriorsTSV(path string, ids []string, lengths []int, w int) (Priors, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = fh.Close() }()

	byID := make(map[string]int, len(ids))
	for i, id := range ids {
		if _, dup := byID[id]; !dup {
			byID[id] = i
		}
	}
	priors := UniformPriors(lengths, w)

	sc := bufio.NewScanner(fh)
	ln := 0
	for sc.Scan() {
		ln++
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		f := strings.Fields(line)
		if len(f) != 3 {
			return nil, fmt.Errorf("%s:%d bad field count", path, ln)
		}
		i, ok := byID[f[0]]
		if !ok {
			return nil, fmt.Errorf("%s:%d unknown record %q", path, ln, f[0])
		}
		var off int
		if _, err := fmt.Sscan(f[1], &off); err != nil {
			return nil, fmt.Errorf("%s:%d bad offset: %v", path, ln, err)
		}
		if off < 0 || off >= len(priors[i]) {
			return nil, fmt.Errorf("%s:%d offset %d out of range [0,%d)", path, ln, off, len(priors[i]))
		}
		var v float64
		if _, err := fmt.Sscan(f[2], &v); err != nil {
			return nil, fmt.Errorf("%s:%d bad weight: %v", path, ln, err)
		}
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%s:%d %w %v", path, ln, ErrInvalidPrior, v)
		}
		priors[i][off] = v
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return priors, nil
}

func checkRow(row []float64) error {
	positive := false
	for j, v := range row {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w %v at offset %d", ErrInvalidPrior, v, j)
		}
		if v > 0 {
			positive = true
		}
	}
	if !positive {
		return fmt.Errorf("%w: every offset has zero weight", ErrInvalidPrior)
	}
	return nil
}
