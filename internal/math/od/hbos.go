package od

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

const defaultBins = 10

// HBOS builds a histogram per feature and scores a sample by the inverse
// density of the bins it falls into.
type HBOS struct {
	base
	bins      int
	dividers  [][]float64
	densities [][]float64
}

func NewHBOS(bins int, contamination float64) *HBOS {
	if bins <= 0 {
		bins = defaultBins
	}
	return &HBOS{
		base: newBase(contamination),
		bins: bins,
	}
}

func (h *HBOS) Fit(x [][]float64, y []int) error {
	d, err := check(x)
	if err != nil {
		return err
	}
	h.dividers = make([][]float64, d)
	h.densities = make([][]float64, d)
	for j := 0; j < d; j++ {
		col := make([]float64, len(x))
		for i, v := range x {
			col[i] = v[j]
		}
		sort.Float64s(col)
		min := col[0]
		max := col[len(col)-1]
		if max == min {
			// degenerate feature, a single bin catches everything
			max = min + 1
		}
		dividers := make([]float64, h.bins+1)
		floats.Span(dividers, min, max)
		// the top divider must sit strictly above max for stat.Histogram
		dividers[len(dividers)-1] = math.Nextafter(max, math.Inf(1))
		counts := stat.Histogram(nil, dividers, col, nil)
		densities := make([]float64, len(counts))
		n := float64(len(col))
		for b, count := range counts {
			width := dividers[b+1] - dividers[b]
			densities[b] = count / (n * width)
		}
		h.dividers[j] = dividers
		h.densities[j] = densities
	}
	scores := make([]float64, len(x))
	for i, v := range x {
		scores[i] = h.score(v)
	}
	h.calibrate(scores)
	return nil
}

func (h *HBOS) score(v []float64) float64 {
	const eps = 1e-9
	var score float64
	for j, dividers := range h.dividers {
		// largest b with dividers[b] <= v, matching the [low, high) bins
		// that stat.Histogram counts into
		b := sort.Search(len(dividers), func(i int) bool { return dividers[i] > v[j] }) - 1
		if b < 0 {
			b = 0
		} else if b >= len(h.densities[j]) {
			b = len(h.densities[j]) - 1
		}
		score += -math.Log(h.densities[j][b] + eps)
	}
	return score
}

func (h *HBOS) Scores(x [][]float64) ([]float64, error) {
	return h.base.scores(h, x)
}

func (h *HBOS) Predict(x [][]float64) ([]int, error) {
	return h.base.predict(h, x)
}

func (h *HBOS) PredictProba(x [][]float64) ([][]float64, error) {
	return h.base.proba(h, x)
}

func (h *HBOS) Properties() Properties {
	return Properties{
		Shortname:     "HBOS",
		Name:          "histogram based outlier score",
		Deterministic: true,
	}
}
