package freq

import (
	"math"
	"math/cmplx"
	"sort"
)

// Analysis tags the analysis a default frequency grid is requested for; the
// grid bounds differ between them.
type Analysis int

const (
	AnalysisBode Analysis = iota
	AnalysisNyquist
	AnalysisSigma
)

// DefaultVector chooses a logarithmically spaced frequency vector covering
// the significant dynamics of all given systems. Bounds are derived per
// system from the pole and zero magnitudes and merged by min/max across
// systems; the point count is max(200, 60 per decade of span).
func DefaultVector(systems []System, kind Analysis) []float64 {
	if len(systems) == 0 {
		return Logspace(0, 2, 200)
	}
	lo := math.Inf(1)
	hi := math.Inf(-1)
	for _, sys := range systems {
		l, h := featureBounds(sys, kind)
		lo = math.Min(lo, l)
		hi = math.Max(hi, h)
	}
	n := int(math.Round(math.Max(200, 60*(hi-lo))))
	return Logspace(lo, hi, n)
}

// featureBounds derives the log10 frequency bounds for one system from its
// pole/zero feature set.
func featureBounds(sys System, kind Analysis) (float64, float64) {
	feats := append(sys.Zeros(), sys.Poles()...)
	if kind != AnalysisSigma {
		// Keep only the conjugate-positive half of each pair.
		kept := feats[:0]
		for _, f := range feats {
			if imag(f) >= 0 {
				kept = append(kept, f)
			}
		}
		feats = kept
	}
	var logs []float64
	for _, f := range feats {
		// Features at or near the origin carry no displayable dynamics.
		if lm := math.Log10(cmplx.Abs(f)); lm > -4 {
			logs = append(logs, lm)
		}
	}
	// A system without significant features still gets a displayable
	// default range of 1 to 100 rad/s.
	lo, hi := 0., 2.
	if len(logs) > 0 {
		sort.Float64s(logs)
		lo = math.Floor(logs[0] - 0.2)
		hi = math.Ceil(logs[len(logs)-1] + 0.2)
		if kind == AnalysisNyquist {
			// Nyquist curves need margin around the origin to show
			// encirclements.
			lo--
			hi++
		}
	}
	if ts := sys.SampleTime(); ts != 0 {
		if ts < 0 {
			ts = 1
		}
		// Nothing useful to display above the folding frequency.
		hi = math.Min(hi, math.Log10(math.Pi/ts))
	}
	return lo, hi
}

// Logspace returns n logarithmically spaced points between 10^lo and 10^hi.
func Logspace(lo, hi float64, n int) []float64 {
	res := make([]float64, n)
	if n == 1 {
		res[0] = math.Pow(10, lo)
		return res
	}
	step := (hi - lo) / float64(n-1)
	for i := range res {
		res[i] = math.Pow(10, lo+float64(i)*step)
	}
	return res
}
