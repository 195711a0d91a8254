package od

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// consistency constant for a normal distribution
const madScale = 1.4826

// MAD scores univariate samples by their median absolute deviation,
// a robust alternative to the z-score.
type MAD struct {
	base
	median float64
	mad    float64
}

func NewMAD(contamination float64) *MAD {
	return &MAD{base: newBase(contamination)}
}

func (m *MAD) Fit(x [][]float64, y []int) error {
	d, err := check(x)
	if err != nil {
		return err
	}
	if d != 1 {
		return fmt.Errorf("mad handles univariate data only, got %d features: %w", d, ErrBadDimension)
	}
	col := make([]float64, len(x))
	for i, v := range x {
		col[i] = v[0]
	}
	sort.Float64s(col)
	m.median = stat.Quantile(0.5, stat.Empirical, col, nil)
	deviations := make([]float64, len(col))
	for i, v := range col {
		deviations[i] = math.Abs(v - m.median)
	}
	sort.Float64s(deviations)
	m.mad = stat.Quantile(0.5, stat.Empirical, deviations, nil)
	scores := make([]float64, len(x))
	for i, v := range x {
		scores[i] = m.score(v)
	}
	m.calibrate(scores)
	return nil
}

func (m *MAD) score(v []float64) float64 {
	const eps = 1e-9
	return math.Abs(v[0]-m.median) / (madScale*m.mad + eps)
}

func (m *MAD) Scores(x [][]float64) ([]float64, error) {
	return m.base.scores(m, x)
}

func (m *MAD) Predict(x [][]float64) ([]int, error) {
	return m.base.predict(m, x)
}

func (m *MAD) PredictProba(x [][]float64) ([][]float64, error) {
	return m.base.proba(m, x)
}

func (m *MAD) Properties() Properties {
	return Properties{
		Shortname:     "MAD",
		Name:          "median absolute deviation",
		Deterministic: true,
	}
}
