package od

import (
	"errors"
	"fmt"
	"sort"
)

var (
	ErrNotFitted    = errors.New("detector is not fitted")
	ErrNoData       = errors.New("no data")
	ErrBadDimension = errors.New("bad dimension")
)

// Properties describes a detector implementation.
type Properties struct {
	Shortname     string `json:"shortname"`
	Name          string `json:"name"`
	Deterministic bool   `json:"deterministic"`
}

// Detector is the uniform contract for all outlier detectors.
// Scores returns a raw outlier score per sample, higher meaning more outlying.
// Predict quantizes the scores into binary labels (0 = normal, 1 = outlier)
// based on the contamination threshold picked during Fit.
type Detector interface {
	Fit(x [][]float64, y []int) error
	Scores(x [][]float64) ([]float64, error)
	Predict(x [][]float64) ([]int, error)
	PredictProba(x [][]float64) ([][]float64, error)
	Properties() Properties
}

// DefaultContamination is the assumed outlier fraction when none is configured.
const DefaultContamination = 0.1

// scorer is the internal per-sample scoring contract the shared base builds on.
type scorer interface {
	score(v []float64) float64
}

// base carries the fitted state shared by the score-based detectors.
type base struct {
	contamination float64
	threshold     float64
	min           float64
	max           float64
	fitted        bool
}

func newBase(contamination float64) base {
	if contamination <= 0 || contamination >= 0.5 {
		contamination = DefaultContamination
	}
	return base{contamination: contamination}
}

// calibrate derives the decision threshold and score bounds from the training scores.
func (b *base) calibrate(scores []float64) {
	if len(scores) == 0 {
		b.fitted = true
		return
	}
	ss := make([]float64, len(scores))
	copy(ss, scores)
	sort.Float64s(ss)
	b.min = ss[0]
	b.max = ss[len(ss)-1]
	i := int(float64(len(ss)) * (1 - b.contamination))
	if i >= len(ss) {
		i = len(ss) - 1
	}
	b.threshold = ss[i]
	b.fitted = true
}

func (b *base) scores(s scorer, x [][]float64) ([]float64, error) {
	if !b.fitted {
		return nil, ErrNotFitted
	}
	scores := make([]float64, len(x))
	for i, v := range x {
		scores[i] = s.score(v)
	}
	return scores, nil
}

func (b *base) predict(s scorer, x [][]float64) ([]int, error) {
	scores, err := b.scores(s, x)
	if err != nil {
		return nil, err
	}
	yy := make([]int, len(scores))
	for i, score := range scores {
		if score >= b.threshold {
			yy[i] = 1
		}
	}
	return yy, nil
}

func (b *base) proba(s scorer, x [][]float64) ([][]float64, error) {
	scores, err := b.scores(s, x)
	if err != nil {
		return nil, err
	}
	pp := make([][]float64, len(scores))
	spread := b.max - b.min
	for i, score := range scores {
		p := 0.5
		if spread > 0 {
			p = (score - b.min) / spread
		}
		if p < 0 {
			p = 0
		} else if p > 1 {
			p = 1
		}
		pp[i] = []float64{1 - p, p}
	}
	return pp, nil
}

// check validates the training matrix shape once, so the detectors dont have to.
func check(x [][]float64) (int, error) {
	if len(x) == 0 {
		return 0, ErrNoData
	}
	d := len(x[0])
	if d == 0 {
		return 0, fmt.Errorf("empty feature vector: %w", ErrBadDimension)
	}
	for i, v := range x {
		if len(v) != d {
			return 0, fmt.Errorf("row %d has %d features instead of %d: %w", i, len(v), d, ErrBadDimension)
		}
	}
	return d, nil
}
