// Package tomtom compares query motifs against target motifs by scoring
// every ungapped alignment offset between their columns.
//
// For each query/target pair the engine computes a negative Euclidean
// distance between every query column and every target column, subtracts
// a per-query-column background median so that an average target column
// scores near zero, and sums the centered similarities along each
// possible offset. The best-scoring offset wins; ties go to the smallest
// offset. With reverse-complement matching enabled the reverse-complement
// target competes against the forward orientation and wins only on a
// strictly larger score.
package tomtom

import (
	"math"

	"github.com/pbenner/threadpool"

	"github.com/motiflow/motiflow-go/internal/alphabet"
	"github.com/motiflow/motiflow-go/internal/motif"
	"github.com/motiflow/motiflow-go/internal/numeric"
	"github.com/motiflow/motiflow-go/internal/scoredist"
)

// PValueMode selects how alignment scores convert to p-values.
type PValueMode int

const (
	// PValuePlaceholder uses max(1e-15, exp(-|score|/100)). It decays
	// with score magnitude but has no probabilistic calibration; it is
	// kept as the default for compatibility with existing outputs.
	PValuePlaceholder PValueMode = iota
	// PValueConvolution computes the survival probability of the
	// observed score under the exact convolution of per-column
	// similarity scores over the chosen overlap, treating target columns
	// as drawn uniformly from the target's own columns.
	PValueConvolution
)

// Options control a comparison run.
type Options struct {
	// NScoreBins is the score-range resolution of the convolution
	// p-value mode.
	NScoreBins int
	// NMedianBins is the histogram resolution of the per-column median.
	NMedianBins int
	// ReverseComplement enables matching against reverse-complement
	// targets.
	ReverseComplement bool
	// PValueMode selects the score-to-p-value conversion.
	PValueMode PValueMode
	// Threads > 1 distributes the per-query loop over a worker pool.
	Threads int
}

// DefaultOptions returns the standard comparison configuration.
func DefaultOptions() Options {
	return Options{
		NScoreBins:        100,
		NMedianBins:       numeric.DefaultMedianBins,
		ReverseComplement: true,
		PValueMode:        PValuePlaceholder,
		Threads:           1,
	}
}

// Matrices hold the per-pair comparison results, indexed [query][target].
// Offsets give the target position under the query's first column,
// Overlaps the number of coinciding columns, and Strands 0 for forward
// and 1 for reverse-complement matches.
type Matrices struct {
	PValues  [][]float64 `json:"p_values"`
	Scores   [][]float64 `json:"scores"`
	Offsets  [][]int     `json:"offsets"`
	Overlaps [][]int     `json:"overlaps"`
	Strands  [][]int     `json:"strands"`
}

// Compare scores every query against every target. Empty query or target
// lists yield empty matrices.
func Compare(queries, targets []motif.Motif, opts Options) (*Matrices, error) {
	if opts.NScoreBins <= 0 {
		return nil, &motif.InvalidOptionError{Option: "NScoreBins", Reason: "must be positive"}
	}
	if opts.NMedianBins <= 0 {
		return nil, &motif.InvalidOptionError{Option: "NMedianBins", Reason: "must be positive"}
	}

	q, t := len(queries), len(targets)
	m := &Matrices{
		PValues:  newFloatMatrix(q, t),
		Scores:   newFloatMatrix(q, t),
		Offsets:  newIntMatrix(q, t),
		Overlaps: newIntMatrix(q, t),
		Strands:  newIntMatrix(q, t),
	}

	compareRow := func(i int) error {
		for j := 0; j < t; j++ {
			r, err := comparePair(queries[i].PWM, targets[j].PWM, opts)
			if err != nil {
				return err
			}
			m.PValues[i][j] = r.pValue
			m.Scores[i][j] = r.score
			m.Offsets[i][j] = r.offset
			m.Overlaps[i][j] = r.overlap
			m.Strands[i][j] = r.strand
		}
		return nil
	}

	if opts.Threads > 1 && q > 1 {
		pool := threadpool.NewThreadPool(opts.Threads, 100*opts.Threads)
		g := pool.NewJobGroup()
		if err := pool.AddRangeJob(0, q, g, func(i int, pool threadpool.ThreadPool, erf func() error) error {
			return compareRow(i)
		}); err != nil {
			return nil, err
		}
		if err := pool.Wait(g); err != nil {
			return nil, err
		}
	} else {
		for i := 0; i < q; i++ {
			if err := compareRow(i); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

type pairResult struct {
	score   float64
	offset  int
	overlap int
	strand  int
	pValue  float64
}

// alignment is one scored ungapped offset between a query and a target.
type alignment struct {
	offset  int
	overlap int
	score   float64
}

func comparePair(query, target motif.PWM, opts Options) (pairResult, error) {
	fwdD := centeredDistances(query, target, opts.NMedianBins)
	best := bestAlignment(fwdD, query.Width(), target.Width())

	chosenD := fwdD
	strand := 0
	if opts.ReverseComplement {
		rcD := centeredDistances(query, target.ReverseComplement(), opts.NMedianBins)
		rcBest := bestAlignment(rcD, query.Width(), target.Width())
		if rcBest.score > best.score {
			best = rcBest
			chosenD = rcD
			strand = 1
		}
	}

	p, err := pValue(best, chosenD, opts)
	if err != nil {
		return pairResult{}, err
	}
	return pairResult{
		score:   best.score,
		offset:  best.offset,
		overlap: best.overlap,
		strand:  strand,
		pValue:  p,
	}, nil
}

// centeredDistances builds the wt x wq similarity matrix
//
//	D[tp][qp] = -sqrt(sum_a (q[a][qp] - t[a][tp])^2)
//
// then subtracts from every query column its binned median over all
// target columns, so the expected similarity against a random target
// column is near zero.
func centeredDistances(query, target motif.PWM, nMedianBins int) [][]float64 {
	wq, wt := query.Width(), target.Width()

	d := make([][]float64, wt)
	for tp := 0; tp < wt; tp++ {
		d[tp] = make([]float64, wq)
		for qp := 0; qp < wq; qp++ {
			ss := 0.0
			for a := 0; a < alphabet.Size; a++ {
				diff := query[a][qp] - target[a][tp]
				ss += diff * diff
			}
			d[tp][qp] = -math.Sqrt(ss)
		}
	}

	column := make([]float64, wt)
	counts := make([]float64, wt)
	for i := range counts {
		counts[i] = 1
	}
	for qp := 0; qp < wq; qp++ {
		vmin, vmax := d[0][qp], d[0][qp]
		for tp := 0; tp < wt; tp++ {
			column[tp] = d[tp][qp]
			if column[tp] < vmin {
				vmin = column[tp]
			}
			if column[tp] > vmax {
				vmax = column[tp]
			}
		}
		med := numeric.BinnedMedian(column, counts, vmin, vmax, nMedianBins)
		for tp := 0; tp < wt; tp++ {
			d[tp][qp] -= med
		}
	}
	return d
}

// bestAlignment scores every offset in [-(wq-1), wt-1]. Offsets are
// walked in ascending order and replaced only on a strictly larger
// score, so ties resolve to the smallest offset deterministically.
func bestAlignment(d [][]float64, wq, wt int) alignment {
	best := alignment{score: math.Inf(-1)}
	for offset := -(wq - 1); offset <= wt-1; offset++ {
		score := 0.0
		overlap := 0
		for qp := 0; qp < wq; qp++ {
			tp := qp + offset
			if tp < 0 || tp >= wt {
				continue
			}
			score += d[tp][qp]
			overlap++
		}
		if overlap > 0 && score > best.score {
			best = alignment{offset: offset, overlap: overlap, score: score}
		}
	}
	return best
}

func pValue(best alignment, d [][]float64, opts Options) (float64, error) {
	switch opts.PValueMode {
	case PValueConvolution:
		return convolutionPValue(best, d, opts.NScoreBins)
	default:
		return math.Max(1e-15, math.Exp(-math.Abs(best.score)/100)), nil
	}
}

// convolutionPValue computes Pr(S >= observed) where S sums, for each
// query column in the overlap, a centered similarity drawn uniformly from
// that column's values against all target columns. The score range is
// discretized into nScoreBins bins.
func convolutionPValue(best alignment, d [][]float64, nScoreBins int) (float64, error) {
	wt := len(d)
	if wt == 0 || best.overlap == 0 {
		return 1, nil
	}
	wq := len(d[0])

	var cols [][]float64
	vmin, vmax := math.Inf(1), math.Inf(-1)
	for qp := 0; qp < wq; qp++ {
		tp := qp + best.offset
		if tp < 0 || tp >= wt {
			continue
		}
		col := make([]float64, wt)
		for k := 0; k < wt; k++ {
			col[k] = d[k][qp]
			if col[k] < vmin {
				vmin = col[k]
			}
			if col[k] > vmax {
				vmax = col[k]
			}
		}
		cols = append(cols, col)
	}

	binSize := (vmax - vmin) / float64(nScoreBins)
	if binSize <= 0 {
		// all similarities identical: the observed score is the only
		// attainable one
		return 1, nil
	}

	dist, err := scoredist.FromColumns(cols, binSize)
	if err != nil {
		return 0, err
	}
	return dist.Survival(best.score), nil
}

func newFloatMatrix(rows, cols int) [][]float64 {
	m := make([][]float64, rows)
	for i := range m {
		m[i] = make([]float64, cols)
	}
	return m
}

func newIntMatrix(rows, cols int) [][]int {
	m := make([][]int, rows)
	for i := range m {
		m[i] = make([]int, cols)
	}
	return m
}
