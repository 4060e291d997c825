package scoredist

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/motiflow/motiflow-go/internal/motif"
)

func mustPWM(t *testing.T, rows [][]float64) motif.PWM {
	t.Helper()
	p, err := motif.New(rows)
	require.NoError(t, err)
	return p
}

func assertNonIncreasing(t *testing.T, logPdf []float64) {
	t.Helper()
	for i := 1; i < len(logPdf); i++ {
		assert.LessOrEqual(t, logPdf[i], logPdf[i-1])
	}
}

func TestMappingUniformLogPwm(t *testing.T) {
	lp := motif.LogPWM{
		{-1, -1, -1},
		{-1, -1, -1},
		{-1, -1, -1},
		{-1, -1, -1},
	}

	d, err := Mapping(lp, 0.1)
	require.NoError(t, err)

	// all 64 words land on the single attainable score
	assert.Equal(t, -30, d.Smallest)
	assert.GreaterOrEqual(t, d.Size(), 4)
	assert.InDelta(t, 0, d.LogPdf[0], 1e-9)
	assertNonIncreasing(t, d.LogPdf)
	assert.InDelta(t, 1, d.Survival(-3), 1e-9)
}

func TestMappingSurvivalIsNonIncreasing(t *testing.T) {
	p := mustPWM(t, [][]float64{
		{0.8, 0.1, 0.3},
		{0.1, 0.7, 0.3},
		{0.05, 0.1, 0.2},
		{0.05, 0.1, 0.2},
	})

	d, err := Mapping(p.Log(1e-4), 0.1)
	require.NoError(t, err)

	assert.InDelta(t, 0, d.LogPdf[0], 1e-9)
	assertNonIncreasing(t, d.LogPdf)
}

func TestMappingMaxWordProbability(t *testing.T) {
	// a one-hot motif has a unique maximum-score word, so the survival
	// probability at the top score is exactly 4^-w
	p := mustPWM(t, [][]float64{
		{1, 0},
		{0, 1},
		{0, 0},
		{0, 0},
	})
	lp := p.Log(1e-4)

	d, err := Mapping(lp, 0.1)
	require.NoError(t, err)

	maxScore := lp[0][0] + lp[1][1]
	assert.InDelta(t, 1.0/16, d.Survival(maxScore), 1e-9)

	// the top of the table never reports less than the best word
	assert.InDelta(t, math.Log2(1.0/16), d.LogPdf[d.Size()-1], 1e-9)
}

func TestMappingSingleColumn(t *testing.T) {
	p := mustPWM(t, [][]float64{{0.7}, {0.1}, {0.1}, {0.1}})
	lp := p.Log(1e-4)

	d, err := Mapping(lp, 0.1)
	require.NoError(t, err)

	assert.InDelta(t, 0, d.LogPdf[0], 1e-9)
	// exactly one of four symbols reaches the top score
	assert.InDelta(t, 0.25, d.Survival(lp[0][0]), 1e-9)
	// all symbols reach the bottom score
	assert.InDelta(t, 1, d.Survival(lp[1][0]), 1e-9)
}

func TestMappingExactTailProbabilities(t *testing.T) {
	p := mustPWM(t, [][]float64{
		{0.8, 0.1},
		{0.1, 0.8},
		{0.05, 0.05},
		{0.05, 0.05},
	})
	lp := p.Log(1e-4)

	d, err := Mapping(lp, 0.1)
	require.NoError(t, err)

	best := lp[0][0] + lp[1][1]
	second := lp[0][0] + lp[0][1]

	assert.InDelta(t, 1.0/16, d.Survival(best), 1e-9)
	// AA and CC tie just below the best word AC
	assert.InDelta(t, 3.0/16, d.Survival(second), 1e-9)
	assert.InDelta(t, 1, d.Survival(2*lp[2][0]), 1e-9)
}

func TestScoreThreshold(t *testing.T) {
	p := mustPWM(t, [][]float64{
		{0.8, 0.1},
		{0.1, 0.8},
		{0.05, 0.05},
		{0.05, 0.05},
	})
	lp := p.Log(1e-4)

	d, err := Mapping(lp, 0.1)
	require.NoError(t, err)

	t.Run("attainable threshold", func(t *testing.T) {
		thr := d.ScoreThreshold(0.5)
		// scores above the threshold all have p-values at most 0.5
		assert.Less(t, thr, lp[0][0]+lp[0][1])
		assert.LessOrEqual(t, d.Survival(thr+d.BinSize), 0.5)
	})

	t.Run("unattainable threshold", func(t *testing.T) {
		// no word of width 2 reaches p < 4^-2
		assert.True(t, math.IsInf(d.ScoreThreshold(1e-4), 1))
	})
}

func TestMappingRejectsBadBinSize(t *testing.T) {
	lp := motif.LogPWM{{1}, {0}, {0}, {0}}

	for _, bin := range []float64{0, -0.5} {
		_, err := Mapping(lp, bin)
		require.Error(t, err)
		assert.IsType(t, &motif.InvalidOptionError{}, err)
	}
}

func TestFromColumnsUnequalChoiceCounts(t *testing.T) {
	// each column contributes 0 or 1 with probability one half,
	// regardless of how many choices encode it
	cols := [][]float64{
		{0, 1},
		{0, 0, 1, 1},
	}

	d, err := FromColumns(cols, 1)
	require.NoError(t, err)

	assert.InDelta(t, 1, d.Survival(0), 1e-9)
	assert.InDelta(t, 0.75, d.Survival(1), 1e-9)
	assert.InDelta(t, 0.25, d.Survival(2), 1e-9)
}

func TestLogSurvivalClamps(t *testing.T) {
	lp := motif.LogPWM{{1}, {-1}, {-1}, {-1}}

	d, err := Mapping(lp, 0.1)
	require.NoError(t, err)

	// far below the range: certain
	assert.InDelta(t, 1, d.Survival(-1000), 1e-9)
	// far above the range: clamped to the top bin, never zero
	assert.Greater(t, d.Survival(1000), 0.0)
}
