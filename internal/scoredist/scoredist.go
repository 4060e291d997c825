// Package scoredist turns a log-PWM into a discretized score distribution
// under the uniform background.
//
// Scores are discretized into integer bins of a fixed width. The exact
// probability density over all length-w background words is computed by a
// per-column convolution in log2 space, then converted in place into a
// log2 survival function: LogPdf[k] = log2 Pr(S >= (k + Smallest) * BinSize).
package scoredist

import (
	"math"

	"github.com/motiflow/motiflow-go/internal/motif"
	"github.com/motiflow/motiflow-go/internal/numeric"
)

// DefaultBinSize is the score discretization step.
const DefaultBinSize = 0.1

// Distribution is a discretized score distribution in log2 survival form.
// LogPdf[k] holds log2 Pr(S >= (k + Smallest) * BinSize); it is
// non-increasing in k and LogPdf[0] is always 0. Bins above the highest
// attainable score hold that score's tail value instead of -Inf.
type Distribution struct {
	Smallest int
	BinSize  float64
	LogPdf   []float64
}

// Mapping computes the score distribution of a log-PWM with the given bin
// size. Each background word draws its bases independently and uniformly.
// binSize <= 0 is a validation error.
func Mapping(lp motif.LogPWM, binSize float64) (*Distribution, error) {
	w := lp.Width()
	cols := make([][]float64, w)
	for j := 0; j < w; j++ {
		col := make([]float64, len(lp))
		for a := range lp {
			col[a] = lp[a][j]
		}
		cols[j] = col
	}
	return FromColumns(cols, binSize)
}

// FromColumns computes the distribution of the sum of one value drawn
// uniformly from each column. This is the general form of Mapping: a
// log-PWM contributes one 4-entry column per position, while the motif
// comparison engine feeds per-position similarity columns instead.
func FromColumns(cols [][]float64, binSize float64) (*Distribution, error) {
	if binSize <= 0 {
		return nil, &motif.InvalidOptionError{Option: "binSize", Reason: "must be positive"}
	}
	if len(cols) == 0 {
		return nil, &motif.InvalidMatrixError{Reason: "no columns"}
	}

	w := len(cols)

	// Discretize and bound the attainable range. Running prefix extrema,
	// not just the final sums: intermediate convolution states must fit
	// in the same buffer.
	intCols := make([][]int, w)
	smallest, largest := 0, 0
	minCsum, maxCsum := 0, 0
	for j, col := range cols {
		if len(col) == 0 {
			return nil, &motif.InvalidMatrixError{Reason: "empty column"}
		}
		ic := make([]int, len(col))
		cmin, cmax := math.MaxInt32, math.MinInt32
		for k, v := range col {
			ic[k] = int(math.Round(v / binSize))
			if ic[k] < cmin {
				cmin = ic[k]
			}
			if ic[k] > cmax {
				cmax = ic[k]
			}
		}
		intCols[j] = ic
		minCsum += cmin
		maxCsum += cmax
		if j == 0 || minCsum < smallest {
			smallest = minCsum
		}
		if j == 0 || maxCsum > largest {
			largest = maxCsum
		}
	}
	// Slack above the top bin absorbs lookups of continuous scores whose
	// floor lands past the rounded per-column sum.
	largest += w
	size := largest - smallest + 1

	old := newNegInf(size)
	buf := newNegInf(size)

	for _, k := range intCols[0] {
		idx := k - smallest
		old[idx] = numeric.LogSumExp2(old[idx], logChoice(len(intCols[0])))
	}
	for j := 1; j < w; j++ {
		lb := logChoice(len(intCols[j]))
		for i := range buf {
			buf[i] = math.Inf(-1)
		}
		for k, lp := range old {
			if math.IsInf(lp, -1) {
				continue
			}
			for _, d := range intCols[j] {
				idx := k + d
				buf[idx] = numeric.LogSumExp2(buf[idx], lb+lp)
			}
		}
		old, buf = buf, old
	}

	// In-place suffix accumulation: log-PDF becomes log survival.
	for i := size - 2; i >= 0; i-- {
		old[i] = numeric.LogSumExp2(old[i], old[i+1])
	}

	// Slack bins above the highest attainable score inherit its tail, so
	// clamped lookups never report zero probability for a maximal word.
	top := math.Inf(-1)
	for i := size - 1; i >= 0; i-- {
		if !math.IsInf(old[i], -1) {
			top = old[i]
			break
		}
	}
	for i := size - 1; i >= 0 && math.IsInf(old[i], -1); i-- {
		old[i] = top
	}

	return &Distribution{Smallest: smallest, BinSize: binSize, LogPdf: old}, nil
}

// Size returns the number of score bins.
func (d *Distribution) Size() int {
	return len(d.LogPdf)
}

// ScoreThreshold returns the smallest bin boundary whose survival
// probability drops below maxPValue. Scores strictly above the returned
// value have p-values at most maxPValue. Returns +Inf when no bin
// qualifies, meaning no word can pass.
func (d *Distribution) ScoreThreshold(maxPValue float64) float64 {
	logT := math.Log2(maxPValue)
	for k, v := range d.LogPdf {
		if v < logT {
			return float64(k+d.Smallest) * d.BinSize
		}
	}
	return math.Inf(1)
}

// LogSurvival looks up log2 Pr(S >= score), clamping the bin index to the
// table. The floor-based index may land one bin above the bin a threshold
// was derived from, which makes reported p-values slightly conservative.
func (d *Distribution) LogSurvival(score float64) float64 {
	k := int(math.Floor(score/d.BinSize)) - d.Smallest
	if k < 0 {
		k = 0
	}
	if k >= len(d.LogPdf) {
		k = len(d.LogPdf) - 1
	}
	return d.LogPdf[k]
}

// Survival returns Pr(S >= score).
func (d *Distribution) Survival(score float64) float64 {
	return math.Exp2(d.LogSurvival(score))
}

func logChoice(n int) float64 {
	return -math.Log2(float64(n))
}

func newNegInf(n int) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = math.Inf(-1)
	}
	return s
}
