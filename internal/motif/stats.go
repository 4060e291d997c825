package motif

import (
	"fmt"
	"math"

	"github.com/motiflow/motiflow-go/internal/alphabet"
)

// Stats summarizes a single motif: its width, the per-column information
// content in bits against the uniform background, and the motif-wide GC
// probability.
type Stats struct {
	Width       int
	InfoContent []float64
	TotalInfo   float64
	MeanInfo    float64
	GCContent   float64
}

// ComputeStats calculates summary statistics for a PWM. Information
// content per column is 2 + sum(p * log2 p) with 0*log(0) taken as 0.
func ComputeStats(p PWM) Stats {
	w := p.Width()
	ic := make([]float64, w)
	total := 0.0
	gc := 0.0

	for j := 0; j < w; j++ {
		h := 0.0
		for a := 0; a < alphabet.Size; a++ {
			if v := p[a][j]; v > 0 {
				h += v * math.Log2(v)
			}
		}
		ic[j] = 2 + h
		total += ic[j]
		gc += p[1][j] + p[2][j]
	}

	return Stats{
		Width:       w,
		InfoContent: ic,
		TotalInfo:   total,
		MeanInfo:    total / float64(w),
		GCContent:   gc / float64(w),
	}
}

func (s Stats) String() string {
	return fmt.Sprintf(`MotifStats {
  width: %d
  total information: %.2f bits
  mean information: %.2f bits/column
  GC content: %.1f%%
}`, s.Width, s.TotalInfo, s.MeanInfo, s.GCContent*100)
}
