// Package fimo scans one-hot encoded DNA sequences against a set of
// motifs and reports positions whose window score clears a p-value
// derived threshold.
//
// Per motif, the scanner derives a log-PWM and its discretized score
// distribution once, converts the caller's p-value threshold into a raw
// score threshold, then slides the motif over every sequence on the
// forward strand and, optionally, the reverse complement.
//
// Reverse-strand hits are reported in the reverse-complement coordinate
// frame: Start is the 0-based offset from the 5' end of the
// reverse-complemented sequence, not a position translated back onto the
// forward strand. Consumers correlating strands must translate
// coordinates themselves.
package fimo

import (
	"math"

	"github.com/pbenner/threadpool"

	"github.com/motiflow/motiflow-go/internal/alphabet"
	"github.com/motiflow/motiflow-go/internal/motif"
	"github.com/motiflow/motiflow-go/internal/scoredist"
)

// Strand labels for reported hits.
const (
	StrandForward = '+'
	StrandReverse = '-'
)

// Options control a scan. The zero value is not valid; use
// DefaultOptions.
type Options struct {
	// Threshold is the maximum allowed p-value for a reported hit.
	Threshold float64
	// BinSize is the score discretization step.
	BinSize float64
	// Epsilon is the pseudocount used when building log-PWMs.
	Epsilon float64
	// ReverseComplement enables scanning the reverse strand.
	ReverseComplement bool
	// Threads > 1 distributes the per-motif loop over a worker pool.
	// Results are identical to a single-threaded scan.
	Threads int
}

// DefaultOptions returns the standard scan configuration.
func DefaultOptions() Options {
	return Options{
		Threshold:         1e-4,
		BinSize:           scoredist.DefaultBinSize,
		Epsilon:           motif.DefaultEpsilon,
		ReverseComplement: true,
		Threads:           1,
	}
}

// Hit is one motif occurrence. Start is 0-based and End exclusive; for
// reverse-strand hits both index the reverse-complement frame.
type Hit struct {
	SequenceIndex int     `json:"sequence_idx"`
	Start         int     `json:"start"`
	End           int     `json:"end"`
	Strand        byte    `json:"-"`
	Score         float64 `json:"score"`
	PValue        float64 `json:"p_value"`
}

// StrandString returns the strand label as "+" or "-".
func (h Hit) StrandString() string {
	return string(h.Strand)
}

// MotifResult collects the hits of one motif over all sequences, ordered
// by sequence index, then strand (forward first), then start.
type MotifResult struct {
	Motif string `json:"motif_name"`
	Hits  []Hit  `json:"hits"`
}

// Scan runs every motif over every sequence. Sequences are one-hot
// encoded up front; an invalid base anywhere aborts the whole call with
// no partial results. Empty motif or sequence lists yield empty results.
func Scan(motifs []motif.Motif, sequences []string, opts Options) ([]MotifResult, error) {
	if opts.BinSize <= 0 {
		return nil, &motif.InvalidOptionError{Option: "BinSize", Reason: "must be positive"}
	}
	if opts.Threshold <= 0 {
		return nil, &motif.InvalidOptionError{Option: "Threshold", Reason: "must be positive"}
	}

	enc := make([]encodedSequence, len(sequences))
	for i, s := range sequences {
		h, err := alphabet.Encode(s)
		if err != nil {
			return nil, err
		}
		enc[i].forward = h.SymbolIndexes()
		if opts.ReverseComplement {
			enc[i].reverse = h.ReverseComplement().SymbolIndexes()
		}
	}

	results := make([]MotifResult, len(motifs))
	scanOne := func(i int) error {
		r, err := scanMotif(motifs[i], enc, opts)
		if err != nil {
			return err
		}
		results[i] = r
		return nil
	}

	if opts.Threads > 1 && len(motifs) > 1 {
		pool := threadpool.NewThreadPool(opts.Threads, 100*opts.Threads)
		g := pool.NewJobGroup()
		if err := pool.AddRangeJob(0, len(motifs), g, func(i int, pool threadpool.ThreadPool, erf func() error) error {
			return scanOne(i)
		}); err != nil {
			return nil, err
		}
		if err := pool.Wait(g); err != nil {
			return nil, err
		}
	} else {
		for i := range motifs {
			if err := scanOne(i); err != nil {
				return nil, err
			}
		}
	}
	return results, nil
}

type encodedSequence struct {
	forward []int8
	reverse []int8
}

func scanMotif(m motif.Motif, sequences []encodedSequence, opts Options) (MotifResult, error) {
	lp := m.PWM.Log(opts.Epsilon)
	dist, err := scoredist.Mapping(lp, opts.BinSize)
	if err != nil {
		return MotifResult{}, err
	}
	threshold := dist.ScoreThreshold(opts.Threshold)

	result := MotifResult{Motif: m.Name, Hits: []Hit{}}
	for s := range sequences {
		result.Hits = appendHits(result.Hits, s, StrandForward, sequences[s].forward, lp, dist, threshold)
		if opts.ReverseComplement {
			result.Hits = appendHits(result.Hits, s, StrandReverse, sequences[s].reverse, lp, dist, threshold)
		}
	}
	return result, nil
}

// appendHits slides the log-PWM over one strand of one sequence. Ignored
// bases contribute nothing to the window score. Hits come out in
// ascending start order.
func appendHits(hits []Hit, seqIdx int, strand byte, symbols []int8, lp motif.LogPWM, dist *scoredist.Distribution, threshold float64) []Hit {
	w := lp.Width()
	if len(symbols) < w {
		return hits
	}
	for p := 0; p+w <= len(symbols); p++ {
		score := 0.0
		for j := 0; j < w; j++ {
			if a := symbols[p+j]; a >= 0 {
				score += lp[a][j]
			}
		}
		if score > threshold {
			hits = append(hits, Hit{
				SequenceIndex: seqIdx,
				Start:         p,
				End:           p + w,
				Strand:        strand,
				Score:         score,
				PValue:        math.Exp2(dist.LogSurvival(score)),
			})
		}
	}
	return hits
}
