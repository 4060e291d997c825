package tomtom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/motiflow/motiflow-go/internal/motif"
)

func mustMotif(t *testing.T, name string, rows [][]float64) motif.Motif {
	t.Helper()
	p, err := motif.New(rows)
	require.NoError(t, err)
	return motif.Motif{Name: name, PWM: p}
}

func simple(t *testing.T) motif.Motif {
	return mustMotif(t, "simple", [][]float64{
		{0.8, 0.1},
		{0.1, 0.8},
		{0.05, 0.05},
		{0.05, 0.05},
	})
}

func uniform(t *testing.T) motif.Motif {
	return mustMotif(t, "uniform", [][]float64{
		{0.25, 0.25},
		{0.25, 0.25},
		{0.25, 0.25},
		{0.25, 0.25},
	})
}

func TestCompareSelfMatch(t *testing.T) {
	q := simple(t)

	m, err := Compare([]motif.Motif{q}, []motif.Motif{q, uniform(t)}, DefaultOptions())
	require.NoError(t, err)

	// a motif aligned against itself matches at offset 0 with full
	// overlap on the forward strand
	assert.Equal(t, 0, m.Offsets[0][0])
	assert.Equal(t, 2, m.Overlaps[0][0])
	assert.Equal(t, 0, m.Strands[0][0])

	// the self match outscores a mismatched target of equal width
	assert.Greater(t, m.Scores[0][0], m.Scores[0][1])
	assert.LessOrEqual(t, m.PValues[0][0], m.PValues[0][1])
}

func TestCompareMatrixShape(t *testing.T) {
	queries := []motif.Motif{simple(t), uniform(t)}
	targets := []motif.Motif{simple(t), uniform(t), simple(t)}

	m, err := Compare(queries, targets, DefaultOptions())
	require.NoError(t, err)

	require.Len(t, m.PValues, 2)
	require.Len(t, m.Scores, 2)
	require.Len(t, m.Offsets, 2)
	require.Len(t, m.Overlaps, 2)
	require.Len(t, m.Strands, 2)
	for i := 0; i < 2; i++ {
		assert.Len(t, m.PValues[i], 3)
		assert.Len(t, m.Strands[i], 3)
	}
}

func TestCompareEmptyInputs(t *testing.T) {
	m, err := Compare(nil, []motif.Motif{simple(t)}, DefaultOptions())
	require.NoError(t, err)
	assert.Empty(t, m.PValues)

	m, err = Compare([]motif.Motif{simple(t)}, nil, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, m.PValues, 1)
	assert.Empty(t, m.PValues[0])
}

func TestCompareReverseComplementTarget(t *testing.T) {
	q := simple(t)
	rc := motif.Motif{Name: "rc", PWM: q.PWM.ReverseComplement()}

	m, err := Compare([]motif.Motif{q}, []motif.Motif{rc}, DefaultOptions())
	require.NoError(t, err)

	// the reverse-complement orientation recovers the self match
	assert.Equal(t, 1, m.Strands[0][0])
	assert.Equal(t, 0, m.Offsets[0][0])
	assert.Equal(t, 2, m.Overlaps[0][0])
}

func TestCompareForwardOnly(t *testing.T) {
	q := simple(t)
	rc := motif.Motif{Name: "rc", PWM: q.PWM.ReverseComplement()}

	opts := DefaultOptions()
	opts.ReverseComplement = false

	m, err := Compare([]motif.Motif{q}, []motif.Motif{rc}, opts)
	require.NoError(t, err)

	assert.Equal(t, 0, m.Strands[0][0])
	// without the reverse orientation the match is much weaker
	withRC, err := Compare([]motif.Motif{q}, []motif.Motif{rc}, DefaultOptions())
	require.NoError(t, err)
	assert.Less(t, m.Scores[0][0], withRC.Scores[0][0])
}

func TestCompareTieBreaksToSmallestOffset(t *testing.T) {
	// identical uniform motifs: every offset scores the same after
	// median centering, so the smallest offset must win
	q := uniform(t)

	m, err := Compare([]motif.Motif{q}, []motif.Motif{q}, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, -(q.PWM.Width() - 1), m.Offsets[0][0])
	assert.Equal(t, 1, m.Overlaps[0][0])
}

func TestComparePlaceholderPValue(t *testing.T) {
	q := simple(t)

	m, err := Compare([]motif.Motif{q}, []motif.Motif{q}, DefaultOptions())
	require.NoError(t, err)

	want := math.Max(1e-15, math.Exp(-math.Abs(m.Scores[0][0])/100))
	assert.InDelta(t, want, m.PValues[0][0], 1e-12)
}

func TestCompareConvolutionPValue(t *testing.T) {
	opts := DefaultOptions()
	opts.PValueMode = PValueConvolution

	t.Run("self match", func(t *testing.T) {
		q := simple(t)
		m, err := Compare([]motif.Motif{q}, []motif.Motif{q}, opts)
		require.NoError(t, err)

		// both overlap columns must draw their own best target column:
		// (1/2)^2 of the centered two-value distributions
		assert.InDelta(t, 0.25, m.PValues[0][0], 1e-9)
	})

	t.Run("degenerate distances", func(t *testing.T) {
		// identical uniform motifs have all-equal similarities; the
		// observed score is the only attainable one
		q := uniform(t)
		m, err := Compare([]motif.Motif{q}, []motif.Motif{q}, opts)
		require.NoError(t, err)

		assert.InDelta(t, 1, m.PValues[0][0], 1e-9)
	})

	t.Run("p-values are probabilities", func(t *testing.T) {
		queries := []motif.Motif{
			simple(t),
			mustMotif(t, "wide", [][]float64{
				{0.7, 0.1, 0.1, 0.25},
				{0.1, 0.7, 0.1, 0.25},
				{0.1, 0.1, 0.7, 0.25},
				{0.1, 0.1, 0.1, 0.25},
			}),
		}
		m, err := Compare(queries, queries, opts)
		require.NoError(t, err)

		for i := range m.PValues {
			for j := range m.PValues[i] {
				assert.Greater(t, m.PValues[i][j], 0.0)
				assert.LessOrEqual(t, m.PValues[i][j], 1.0)
			}
		}
	})
}

func TestCompareDifferentWidths(t *testing.T) {
	narrow := mustMotif(t, "narrow", [][]float64{{0.8}, {0.1}, {0.05}, {0.05}})
	wide := mustMotif(t, "wide", [][]float64{
		{0.8, 0.1, 0.1},
		{0.1, 0.8, 0.1},
		{0.05, 0.05, 0.7},
		{0.05, 0.05, 0.1},
	})

	m, err := Compare([]motif.Motif{narrow}, []motif.Motif{wide}, DefaultOptions())
	require.NoError(t, err)

	// a width-1 query against a width-3 target overlaps one column at
	// whichever target position matches best
	assert.Equal(t, 1, m.Overlaps[0][0])
	assert.GreaterOrEqual(t, m.Offsets[0][0], 0)
	assert.LessOrEqual(t, m.Offsets[0][0], 2)
}

func TestCompareValidation(t *testing.T) {
	q := simple(t)

	opts := DefaultOptions()
	opts.NScoreBins = 0
	_, err := Compare([]motif.Motif{q}, []motif.Motif{q}, opts)
	require.Error(t, err)
	assert.IsType(t, &motif.InvalidOptionError{}, err)

	opts = DefaultOptions()
	opts.NMedianBins = -1
	_, err = Compare([]motif.Motif{q}, []motif.Motif{q}, opts)
	require.Error(t, err)
}

func TestCompareThreadedMatchesSerial(t *testing.T) {
	motifs := []motif.Motif{
		simple(t),
		uniform(t),
		mustMotif(t, "third", [][]float64{
			{0.6, 0.2, 0.1},
			{0.2, 0.6, 0.1},
			{0.1, 0.1, 0.7},
			{0.1, 0.1, 0.1},
		}),
	}

	serial := DefaultOptions()
	threaded := serial
	threaded.Threads = 4

	want, err := Compare(motifs, motifs, serial)
	require.NoError(t, err)

	got, err := Compare(motifs, motifs, threaded)
	require.NoError(t, err)

	assert.Equal(t, want, got)
}
