// Package motif provides the position weight matrix value types shared by
// the scanning and comparison engines.
//
// A PWM is a 4 x w matrix of probabilities over the DNA alphabet, one row
// per base in A, C, G, T order, one column per motif position. Columns are
// expected to sum to (approximately) 1. A LogPWM is the same matrix in
// log-likelihood-ratio space against the uniform 0.25 background.
package motif

import (
	"math"

	"github.com/motiflow/motiflow-go/internal/alphabet"
)

// Background is the uniform per-base background probability the engines
// assume regardless of any frequencies declared in motif files.
const Background = 0.25

// DefaultEpsilon is the additive pseudocount applied when converting a
// PWM to log space, preventing -Inf cells for zero probabilities.
const DefaultEpsilon = 1e-4

// PWM is a position weight matrix: alphabet.Size rows, Width columns.
// A PWM is immutable once constructed.
type PWM [][]float64

// New validates a probability matrix and returns it as a PWM. The matrix
// must have exactly one row per alphabet base, all rows of equal nonzero
// width, and only finite nonnegative cells.
func New(rows [][]float64) (PWM, error) {
	if len(rows) != alphabet.Size {
		return nil, &InvalidMatrixError{Reason: "matrix must have one row per alphabet base"}
	}
	w := len(rows[0])
	if w == 0 {
		return nil, &InvalidMatrixError{Reason: "matrix must have at least one column"}
	}
	for _, row := range rows {
		if len(row) != w {
			return nil, &InvalidMatrixError{Reason: "matrix rows must have equal width"}
		}
		for _, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
				return nil, &InvalidMatrixError{Reason: "matrix cells must be finite and nonnegative"}
			}
		}
	}
	return PWM(rows), nil
}

// Width returns the number of motif positions.
func (p PWM) Width() int {
	if len(p) == 0 {
		return 0
	}
	return len(p[0])
}

// ReverseComplement returns the PWM of the reverse-complement motif:
// columns reversed, rows swapped by the complement permutation.
func (p PWM) ReverseComplement() PWM {
	w := p.Width()
	rc := make(PWM, alphabet.Size)
	for a := 0; a < alphabet.Size; a++ {
		rc[a] = make([]float64, w)
	}
	for a := 0; a < alphabet.Size; a++ {
		ca := alphabet.Complement[a]
		for j := 0; j < w; j++ {
			rc[ca][w-1-j] = p[a][j]
		}
	}
	return rc
}

// Log converts the PWM to log-likelihood-ratio space:
//
//	log2((p + eps) / Background)
//
// per cell. eps <= 0 falls back to DefaultEpsilon.
func (p PWM) Log(eps float64) LogPWM {
	if eps <= 0 {
		eps = DefaultEpsilon
	}
	w := p.Width()
	lp := make(LogPWM, alphabet.Size)
	for a := 0; a < alphabet.Size; a++ {
		lp[a] = make([]float64, w)
		for j := 0; j < w; j++ {
			lp[a][j] = math.Log2((p[a][j] + eps) / Background)
		}
	}
	return lp
}

// LogPWM is a PWM transformed into log2 likelihood-ratio space.
type LogPWM [][]float64

// Width returns the number of motif positions.
func (lp LogPWM) Width() int {
	if len(lp) == 0 {
		return 0
	}
	return len(lp[0])
}

// Motif pairs a PWM with its name.
type Motif struct {
	Name string
	PWM  PWM
}

// Consensus returns the consensus string of a PWM: per column, the base
// with the highest probability. A column whose maximum is shared by more
// than one base returns an AmbiguousColumnError unless force is set, in
// which case the first base in alphabet order wins.
func Consensus(p PWM, force bool) (string, error) {
	w := p.Width()
	out := make([]byte, w)
	for j := 0; j < w; j++ {
		best := 0
		ties := 0
		for a := 1; a < alphabet.Size; a++ {
			if p[a][j] > p[best][j] {
				best = a
				ties = 0
			} else if p[a][j] == p[best][j] {
				ties++
			}
		}
		if ties > 0 && !force {
			return "", &AmbiguousColumnError{Column: j}
		}
		out[j] = alphabet.Letters[best]
	}
	return string(out), nil
}
