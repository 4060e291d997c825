// Package alphabet provides the fixed DNA alphabet and one-hot sequence
// encoding used by the scanning and comparison engines.
//
// The alphabet is A, C, G, T in that order. The extension symbol N encodes
// an ignored base: it produces an all-zero one-hot column and contributes
// nothing to window scores.
package alphabet

import "strings"

// Size is the number of symbols in the DNA alphabet.
const Size = 4

// Extension is the ignored-base symbol.
const Extension = 'N'

// Letters holds the alphabet symbols in index order.
var Letters = [Size]byte{'A', 'C', 'G', 'T'}

// Complement maps a symbol index to the index of its Watson-Crick
// complement (A<->T, C<->G).
var Complement = [Size]int{3, 2, 1, 0}

// Index returns the alphabet index of a base, or -1 if the base is not
// part of the alphabet. The extension symbol is not part of the alphabet.
func Index(b byte) int {
	switch b {
	case 'A':
		return 0
	case 'C':
		return 1
	case 'G':
		return 2
	case 'T':
		return 3
	default:
		return -1
	}
}

// OneHot is the Size x L binary matrix encoding of a length-L sequence.
// Each column has at most one 1; a column of all zeros is an ignored base.
type OneHot [][]float64

// Encode one-hot encodes a DNA sequence. Input is normalized to upper
// case. The extension symbol N yields an all-zero column; any other
// symbol outside the alphabet returns an InvalidBaseError.
func Encode(seq string) (OneHot, error) {
	normalized := strings.ToUpper(seq)

	h := make(OneHot, Size)
	for a := 0; a < Size; a++ {
		h[a] = make([]float64, len(normalized))
	}

	for j := 0; j < len(normalized); j++ {
		b := normalized[j]
		if b == Extension {
			continue
		}
		a := Index(b)
		if a < 0 {
			return nil, &InvalidBaseError{Position: j, Found: rune(b)}
		}
		h[a][j] = 1
	}
	return h, nil
}

// Len returns the number of encoded positions.
func (h OneHot) Len() int {
	if len(h) == 0 {
		return 0
	}
	return len(h[0])
}

// ReverseComplement returns the one-hot encoding of the reverse
// complement: columns reversed, rows swapped by the complement
// permutation. Ignored columns stay ignored.
func (h OneHot) ReverseComplement() OneHot {
	n := h.Len()
	rc := make(OneHot, Size)
	for a := 0; a < Size; a++ {
		rc[a] = make([]float64, n)
	}
	for a := 0; a < Size; a++ {
		ca := Complement[a]
		for j := 0; j < n; j++ {
			rc[ca][n-1-j] = h[a][j]
		}
	}
	return rc
}

// SymbolIndexes flattens the one-hot matrix into a per-position symbol
// index array: 0..3 for alphabet bases, -1 for ignored columns. Scanners
// index log-PWMs with this directly instead of walking all four rows.
func (h OneHot) SymbolIndexes() []int8 {
	n := h.Len()
	idx := make([]int8, n)
	for j := 0; j < n; j++ {
		idx[j] = -1
	}
	for a := 0; a < Size; a++ {
		for j := 0; j < n; j++ {
			if h[a][j] != 0 {
				idx[j] = int8(a)
			}
		}
	}
	return idx
}
