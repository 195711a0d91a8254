package od

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// ECOD scores a sample by the empirical tail probabilities of its features.
// Each feature contributes the negative log of its left and right tail
// probability under the training distribution, and the final score is the
// larger of the two aggregated tails.
type ECOD struct {
	base
	columns [][]float64
}

func NewECOD(contamination float64) *ECOD {
	return &ECOD{base: newBase(contamination)}
}

func (e *ECOD) Fit(x [][]float64, y []int) error {
	d, err := check(x)
	if err != nil {
		return err
	}
	e.columns = make([][]float64, d)
	for j := 0; j < d; j++ {
		col := make([]float64, len(x))
		for i, v := range x {
			col[i] = v[j]
		}
		sort.Float64s(col)
		e.columns[j] = col
	}
	scores := make([]float64, len(x))
	for i, v := range x {
		scores[i] = e.score(v)
	}
	e.calibrate(scores)
	return nil
}

func (e *ECOD) score(v []float64) float64 {
	n := float64(len(e.columns[0]))
	floor := 1 / (n + 1)
	var left, right float64
	for j, col := range e.columns {
		p := stat.CDF(v[j], stat.Empirical, col, nil)
		pl := math.Max(p, floor)
		pr := math.Max(1-p, floor)
		left += -math.Log(pl)
		right += -math.Log(pr)
	}
	return math.Max(left, right)
}

func (e *ECOD) Scores(x [][]float64) ([]float64, error) {
	return e.base.scores(e, x)
}

func (e *ECOD) Predict(x [][]float64) ([]int, error) {
	return e.base.predict(e, x)
}

func (e *ECOD) PredictProba(x [][]float64) ([][]float64, error) {
	return e.base.proba(e, x)
}

func (e *ECOD) Properties() Properties {
	return Properties{
		Shortname:     "ECOD",
		Name:          "empirical cumulative distribution outlier detection",
		Deterministic: true,
	}
}
