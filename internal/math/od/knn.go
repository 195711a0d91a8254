package od

import (
	"sort"

	"gonum.org/v1/gonum/floats"
)

const defaultNeighbours = 5

// KNN scores a sample by its euclidean distance to the k-th nearest training point.
type KNN struct {
	base
	k    int
	data [][]float64
}

func NewKNN(k int, contamination float64) *KNN {
	if k <= 0 {
		k = defaultNeighbours
	}
	return &KNN{
		base: newBase(contamination),
		k:    k,
	}
}

func (n *KNN) Fit(x [][]float64, y []int) error {
	if _, err := check(x); err != nil {
		return err
	}
	n.data = x
	if n.k >= len(x) {
		n.k = len(x) - 1
	}
	if n.k < 1 {
		n.k = 1
	}
	scores := make([]float64, len(x))
	for i, v := range x {
		// skip the zero distance to the point itself
		scores[i] = kthDistance(n.data, v, n.k+1)
	}
	n.calibrate(scores)
	return nil
}

func (n *KNN) score(v []float64) float64 {
	return kthDistance(n.data, v, n.k)
}

// kthDistance returns the distance to the k-th closest of the given points.
func kthDistance(data [][]float64, v []float64, k int) float64 {
	dd := distances(data, v)
	if k > len(dd) {
		k = len(dd)
	}
	return dd[k-1]
}

func distances(data [][]float64, v []float64) []float64 {
	diff := make([]float64, len(v))
	dd := make([]float64, len(data))
	for i, u := range data {
		copy(diff, v)
		floats.Sub(diff, u)
		dd[i] = floats.Norm(diff, 2)
	}
	sort.Float64s(dd)
	return dd
}

func (n *KNN) Scores(x [][]float64) ([]float64, error) {
	return n.base.scores(n, x)
}

func (n *KNN) Predict(x [][]float64) ([]int, error) {
	return n.base.predict(n, x)
}

func (n *KNN) PredictProba(x [][]float64) ([][]float64, error) {
	return n.base.proba(n, x)
}

func (n *KNN) Properties() Properties {
	return Properties{
		Shortname:     "KNN",
		Name:          "k-nearest neighbour distance",
		Deterministic: true,
	}
}
