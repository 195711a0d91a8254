package od

import (
	randomforest "github.com/malaschitz/randomForest"
)

// Forest is the supervised baseline: a random forest trained on the binary
// labels, scoring samples by the vote share of the outlier class.
// It only makes sense when the training partition carries at least one
// outlier, which the balanced split guarantees whenever the data has any.
type Forest struct {
	base
	trees      int
	forest     *randomforest.Forest
	importance []float64
}

func NewForest(trees int, contamination float64) *Forest {
	if trees <= 0 {
		trees = defaultTrees
	}
	return &Forest{
		base:  newBase(contamination),
		trees: trees,
	}
}

func (f *Forest) Fit(x [][]float64, y []int) error {
	if _, err := check(x); err != nil {
		return err
	}
	forest := &randomforest.Forest{}
	forest.Data = randomforest.ForestData{X: x, Class: y}
	forest.Train(f.trees)
	f.forest = forest
	f.importance = forest.FeatureImportance
	scores := make([]float64, len(x))
	for i, v := range x {
		scores[i] = f.score(v)
	}
	f.calibrate(scores)
	return nil
}

func (f *Forest) score(v []float64) float64 {
	votes := f.forest.Vote(v)
	if len(votes) < 2 {
		// single class seen in training, nothing votes for outliers
		return 0
	}
	return votes[1]
}

// FeatureImportance exposes the per-feature importance of the fitted forest.
func (f *Forest) FeatureImportance() []float64 {
	return f.importance
}

func (f *Forest) Scores(x [][]float64) ([]float64, error) {
	return f.base.scores(f, x)
}

func (f *Forest) Predict(x [][]float64) ([]int, error) {
	return f.base.predict(f, x)
}

// PredictProba passes the vote shares through, they are already probabilities.
func (f *Forest) PredictProba(x [][]float64) ([][]float64, error) {
	scores, err := f.base.scores(f, x)
	if err != nil {
		return nil, err
	}
	pp := make([][]float64, len(scores))
	for i, s := range scores {
		pp[i] = []float64{1 - s, s}
	}
	return pp, nil
}

func (f *Forest) Properties() Properties {
	return Properties{
		Shortname: "Forest",
		Name:      "supervised random forest baseline",
	}
}
