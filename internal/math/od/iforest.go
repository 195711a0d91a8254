package od

import (
	"math"
	"math/rand"
)

const (
	defaultTrees     = 100
	defaultSubsample = 256
)

// IForest isolates samples with random axis-parallel splits.
// Outliers need fewer splits to end up alone, so shorter average path
// lengths over the ensemble mean higher outlier scores.
type IForest struct {
	base
	trees     int
	subsample int
	seed      int64
	roots     []*isoNode
}

func NewIForest(trees int, seed int64, contamination float64) *IForest {
	if trees <= 0 {
		trees = defaultTrees
	}
	return &IForest{
		base:      newBase(contamination),
		trees:     trees,
		subsample: defaultSubsample,
		seed:      seed,
	}
}

type isoNode struct {
	feature int
	value   float64
	size    int
	left    *isoNode
	right   *isoNode
}

func (f *IForest) Fit(x [][]float64, y []int) error {
	d, err := check(x)
	if err != nil {
		return err
	}
	rnd := rand.New(rand.NewSource(f.seed))
	sample := f.subsample
	if sample > len(x) {
		sample = len(x)
	}
	maxDepth := int(math.Ceil(math.Log2(float64(sample)))) + 1
	f.roots = make([]*isoNode, f.trees)
	for t := 0; t < f.trees; t++ {
		sub := make([][]float64, sample)
		for i, p := range rnd.Perm(len(x))[:sample] {
			sub[i] = x[p]
		}
		f.roots[t] = grow(sub, d, 0, maxDepth, rnd)
	}
	scores := make([]float64, len(x))
	for i, v := range x {
		scores[i] = f.score(v)
	}
	f.calibrate(scores)
	return nil
}

func grow(x [][]float64, d, depth, maxDepth int, rnd *rand.Rand) *isoNode {
	if len(x) <= 1 || depth >= maxDepth {
		return &isoNode{size: len(x)}
	}
	feature := rnd.Intn(d)
	min, max := x[0][feature], x[0][feature]
	for _, v := range x {
		if v[feature] < min {
			min = v[feature]
		}
		if v[feature] > max {
			max = v[feature]
		}
	}
	if max == min {
		return &isoNode{size: len(x)}
	}
	value := min + rnd.Float64()*(max-min)
	var left, right [][]float64
	for _, v := range x {
		if v[feature] < value {
			left = append(left, v)
		} else {
			right = append(right, v)
		}
	}
	return &isoNode{
		feature: feature,
		value:   value,
		size:    len(x),
		left:    grow(left, d, depth+1, maxDepth, rnd),
		right:   grow(right, d, depth+1, maxDepth, rnd),
	}
}

// pathLength walks the sample down the tree, with the usual adjustment for
// unresolved leaf nodes.
func pathLength(node *isoNode, v []float64, depth float64) float64 {
	if node.left == nil && node.right == nil {
		return depth + averagePath(node.size)
	}
	if v[node.feature] < node.value {
		return pathLength(node.left, v, depth+1)
	}
	return pathLength(node.right, v, depth+1)
}

// averagePath is the expected path length of an unsuccessful binary search in n nodes.
func averagePath(n int) float64 {
	if n <= 1 {
		return 0
	}
	h := math.Log(float64(n-1)) + 0.5772156649
	return 2*h - 2*float64(n-1)/float64(n)
}

func (f *IForest) score(v []float64) float64 {
	var sum float64
	for _, root := range f.roots {
		sum += pathLength(root, v, 0)
	}
	mean := sum / float64(len(f.roots))
	sample := f.subsample
	if len(f.roots) > 0 && f.roots[0].size < sample {
		sample = f.roots[0].size
	}
	return math.Pow(2, -mean/averagePath(sample))
}

func (f *IForest) Scores(x [][]float64) ([]float64, error) {
	return f.base.scores(f, x)
}

func (f *IForest) Predict(x [][]float64) ([]int, error) {
	return f.base.predict(f, x)
}

func (f *IForest) PredictProba(x [][]float64) ([][]float64, error) {
	return f.base.proba(f, x)
}

func (f *IForest) Properties() Properties {
	return Properties{
		Shortname: "IForest",
		Name:      "isolation forest",
	}
}
