package numeric

// DefaultMedianBins is the histogram resolution used when callers have no
// reason to pick another one.
const DefaultMedianBins = 1000

// BinnedMedian approximates the weighted median of values over the range
// [vmin, vmax] using a fixed-bin histogram: O(N) time, constant memory.
// The returned value is the count-weighted mean of the first bucket whose
// cumulative count reaches half the total weight. Values and counts must
// have equal length.
//
// The comparison engine calls this once per query column while centering
// distance distributions, so it must stay cheap; callers needing an exact
// median should sort instead.
func BinnedMedian(values, counts []float64, vmin, vmax float64, nBins int) float64 {
	if vmax == vmin {
		return vmin
	}
	if nBins <= 0 {
		nBins = DefaultMedianBins
	}

	binCount := make([]float64, nBins)
	binSum := make([]float64, nBins)
	total := 0.0
	scale := float64(nBins-1) / (vmax - vmin)

	for i, v := range values {
		idx := int((v - vmin) * scale)
		if idx < 0 {
			idx = 0
		}
		if idx > nBins-1 {
			idx = nBins - 1
		}
		c := counts[i]
		binCount[idx] += c
		binSum[idx] += v * c
		total += c
	}

	half := total / 2
	cum := 0.0
	for b := 0; b < nBins; b++ {
		cum += binCount[b]
		if cum >= half {
			if binCount[b] == 0 {
				return vmin
			}
			return binSum[b] / binCount[b]
		}
	}
	return vmax
}
