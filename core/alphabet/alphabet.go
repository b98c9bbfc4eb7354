// core/alphabet/alphabet.go
package alphabet

import (
	"errors"
	"fmt"
)

// UnknownPolicy decides what Encode does with a symbol outside the alphabet.
type UnknownPolicy int

const (
	// Reject makes Encode fail with ErrUnknownSymbol.
	Reject UnknownPolicy = iota
	// Extend maps every unrecognized symbol to one extra trailing column.
	Extend
)

// Built-in symbol sets.
const (
	LettersSymbols = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	DNASymbols     = "ACGT"
	ProteinSymbols = "ACDEFGHIKLMNPQRSTVWY"
)

var (
	ErrEmptyAlphabet   = errors.New("alphabet: no symbols")
	ErrDuplicateSymbol = errors.New("alphabet: duplicate symbol")
	ErrUnknownSymbol   = errors.New("alphabet: unknown symbol")
)

const notFound = -1

// Alphabet is a fixed, ordered symbol set. Lookups are case-insensitive.
// It is never mutated after New.
type Alphabet struct {
	symbols string
	policy  UnknownPolicy
	index   [256]int
}

// New builds an alphabet from symbols (folded to upper case).
func New(symbols string, policy UnknownPolicy) (*Alphabet, error) {
	if symbols == "" {
		return nil, ErrEmptyAlphabet
	}
	a := &Alphabet{policy: policy}
	for i := range a.index {
		a.index[i] = notFound
	}
	buf := make([]byte, 0, len(symbols))
	for i := 0; i < len(symbols); i++ {
		c := upper(symbols[i])
		if a.index[c] != notFound {
			return nil, fmt.Errorf("%w %q", ErrDuplicateSymbol, c)
		}
		a.index[c] = len(buf)
		buf = append(buf, c)
	}
	a.symbols = string(buf)
	return a, nil
}

// MustNew is New for package-level built-ins; it panics on error.
func MustNew(symbols string, policy UnknownPolicy) *Alphabet {
	a, err := New(symbols, policy)
	if err != nil {
		panic(err)
	}
	return a
}

// Named returns a built-in alphabet: "letters", "dna" or "protein".
// Any other name is treated as a literal symbol string.
func Named(name string, policy UnknownPolicy) (*Alphabet, error) {
	switch name {
	case "letters":
		return New(LettersSymbols, policy)
	case "dna":
		return New(DNASymbols, policy)
	case "protein":
		return New(ProteinSymbols, policy)
	}
	return New(name, policy)
}

// Len is the number of recognized symbols.
func (a *Alphabet) Len() int { return len(a.symbols) }

// Size is the number of profile columns, including the unknown column under Extend.
func (a *Alphabet) Size() int {
	if a.policy == Extend {
		return len(a.symbols) + 1
	}
	return len(a.symbols)
}

// Symbols returns the recognized symbols in index order.
func (a *Alphabet) Symbols() string { return a.symbols }

// IndexOf returns the column of b and whether b is a recognized symbol.
func (a *Alphabet) IndexOf(b byte) (int, bool) {
	i := a.index[upper(b)]
	return i, i != notFound
}

// Encode maps seq onto column indices.
func (a *Alphabet) Encode(seq []byte) ([]int, error) {
	out := make([]int, len(seq))
	for i, c := range seq {
		idx, ok := a.IndexOf(c)
		if !ok {
			if a.policy != Extend {
				return nil, fmt.Errorf("%w %q at position %d", ErrUnknownSymbol, c, i)
			}
			idx = len(a.symbols)
		}
		out[i] = idx
	}
	return out, nil
}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}
