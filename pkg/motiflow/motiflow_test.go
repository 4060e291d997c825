package motiflow

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOneHotRoundTrip(t *testing.T) {
	// a pure alphabet sequence survives encode plus consensus
	for _, seq := range []string{"ACGT", "A", "TTGACA", "CCCCGGGG"} {
		h, err := OneHotEncode(seq)
		require.NoError(t, err)

		got, err := Characters(PWM(h), false)
		require.NoError(t, err)
		assert.Equal(t, seq, got)
	}
}

func TestReverseComplementInvolution(t *testing.T) {
	h, err := OneHotEncode("ACGTTGCAAC")
	require.NoError(t, err)

	assert.Equal(t, h, ReverseComplement(ReverseComplement(h)))
}

func TestParseFASTA(t *testing.T) {
	input := `>seq1 first sequence
ACGT
ACGT
>seq2
TTTTAAAA
`
	records, err := ParseFASTA(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "seq1", records[0].ID)
	assert.Equal(t, "first sequence", records[0].Description)
	assert.Equal(t, "ACGTACGT", records[0].Bases)

	assert.Equal(t, "seq2", records[1].ID)
	assert.Equal(t, "", records[1].Description)
	assert.Equal(t, "TTTTAAAA", records[1].Bases)
}

func TestEndToEndScan(t *testing.T) {
	text := `MEME version 4

MOTIF simple
letter-probability matrix: alength= 4 w= 2
0.8 0.1 0.05 0.05
0.1 0.8 0.05 0.05
`
	doc, err := ReadMEME(text, 0)
	require.NoError(t, err)
	require.Equal(t, 1, doc.Len())

	opts := DefaultScanOptions()
	opts.Threshold = 0.5

	results, err := Fimo(doc.Motifs(), []string{"ACGTACGT"}, opts)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "simple", results[0].Motif)

	var forwardStarts []int
	for _, h := range results[0].Hits {
		if h.Strand == '+' {
			forwardStarts = append(forwardStarts, h.Start)
		}
	}
	assert.Equal(t, []int{0, 4}, forwardStarts)
}

func TestEndToEndCompare(t *testing.T) {
	q, err := NewPWM([][]float64{
		{0.8, 0.1},
		{0.1, 0.8},
		{0.05, 0.05},
		{0.05, 0.05},
	})
	require.NoError(t, err)

	motifs := []Motif{{Name: "q", PWM: q}}
	m, err := Tomtom(motifs, motifs, DefaultCompareOptions())
	require.NoError(t, err)

	assert.Equal(t, 0, m.Offsets[0][0])
	assert.Equal(t, 2, m.Overlaps[0][0])
	assert.Equal(t, 0, m.Strands[0][0])
}

func TestMemeRoundTripThroughFacade(t *testing.T) {
	p, err := NewPWM([][]float64{
		{0.8, 0.1},
		{0.1, 0.8},
		{0.05, 0.05},
		{0.05, 0.05},
	})
	require.NoError(t, err)

	doc := NewDocument()
	doc.Add("m1", p)

	back, err := ReadMEME(WriteMEME(doc), 0)
	require.NoError(t, err)
	require.Equal(t, []string{"m1"}, back.Names())

	got, ok := back.Get("m1")
	require.True(t, ok)
	for a := range p {
		for j := range p[a] {
			assert.InDelta(t, p[a][j], got[a][j], 1e-6)
		}
	}
}

func TestInfo(t *testing.T) {
	assert.Contains(t, Info(), Version)
}
