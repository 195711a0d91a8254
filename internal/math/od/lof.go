package od

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// LOF computes the local outlier factor, the ratio of the local density of a
// sample's neighbourhood to the sample's own local density.
type LOF struct {
	base
	k     int
	data  [][]float64
	kDist []float64
	lrd   []float64
}

func NewLOF(k int, contamination float64) *LOF {
	if k <= 0 {
		k = defaultNeighbours
	}
	return &LOF{
		base: newBase(contamination),
		k:    k,
	}
}

type neighbour struct {
	index    int
	distance float64
}

func nearest(data [][]float64, v []float64, k int, skip int) []neighbour {
	diff := make([]float64, len(v))
	nn := make([]neighbour, 0, len(data))
	for i, u := range data {
		if i == skip {
			continue
		}
		copy(diff, v)
		floats.Sub(diff, u)
		nn = append(nn, neighbour{index: i, distance: floats.Norm(diff, 2)})
	}
	sort.Slice(nn, func(i, j int) bool { return nn[i].distance < nn[j].distance })
	if k > len(nn) {
		k = len(nn)
	}
	return nn[:k]
}

func (l *LOF) Fit(x [][]float64, y []int) error {
	if _, err := check(x); err != nil {
		return err
	}
	l.data = x
	if l.k >= len(x) {
		l.k = len(x) - 1
	}
	if l.k < 1 {
		l.k = 1
	}

	knn := make([][]neighbour, len(x))
	l.kDist = make([]float64, len(x))
	for i, v := range x {
		knn[i] = nearest(x, v, l.k, i)
		l.kDist[i] = knn[i][len(knn[i])-1].distance
	}

	l.lrd = make([]float64, len(x))
	for i := range x {
		l.lrd[i] = localReachability(knn[i], l.kDist)
	}

	scores := make([]float64, len(x))
	for i := range x {
		var sum float64
		for _, n := range knn[i] {
			sum += l.lrd[n.index]
		}
		scores[i] = sum / (float64(len(knn[i])) * l.lrd[i])
	}
	l.calibrate(scores)
	return nil
}

// localReachability is the inverse of the mean reachability distance to the neighbours.
func localReachability(nn []neighbour, kDist []float64) float64 {
	const eps = 1e-9
	var sum float64
	for _, n := range nn {
		sum += math.Max(kDist[n.index], n.distance)
	}
	return float64(len(nn)) / (sum + eps)
}

func (l *LOF) score(v []float64) float64 {
	nn := nearest(l.data, v, l.k, -1)
	lrd := localReachability(nn, l.kDist)
	var sum float64
	for _, n := range nn {
		sum += l.lrd[n.index]
	}
	return sum / (float64(len(nn)) * lrd)
}

func (l *LOF) Scores(x [][]float64) ([]float64, error) {
	return l.base.scores(l, x)
}

func (l *LOF) Predict(x [][]float64) ([]int, error) {
	return l.base.predict(l, x)
}

func (l *LOF) PredictProba(x [][]float64) ([][]float64, error) {
	return l.base.proba(l, x)
}

func (l *LOF) Properties() Properties {
	return Properties{
		Shortname:     "LOF",
		Name:          "local outlier factor",
		Deterministic: true,
	}
}
