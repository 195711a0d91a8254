package search

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/drakos74/odsearch/internal/math/od"
	"github.com/drakos74/odsearch/internal/split"
	"github.com/stretchr/testify/assert"
)

func testRegistry() *Registry {
	r := NewRegistry()
	contamination := Param{Name: "contamination", Min: 0.01, Max: 0.3}
	_ = r.Register(Entry{
		Name:  "ecod",
		Space: Space{Params: []Param{contamination}},
		Construct: func(cfg Config) od.Detector {
			return od.NewECOD(cfg["contamination"])
		},
	})
	_ = r.Register(Entry{
		Name: "hbos",
		Space: Space{Params: []Param{
			contamination,
			{Name: "bins", Min: 5, Max: 20, Integer: true},
		}},
		Construct: func(cfg Config) od.Detector {
			return od.NewHBOS(cfg.Int("bins"), cfg["contamination"])
		},
	})
	_ = r.Register(Entry{
		Name: "knn",
		Space: Space{Params: []Param{
			contamination,
			{Name: "k", Min: 1, Max: 10, Integer: true},
		}},
		Construct: func(cfg Config) od.Detector {
			return od.NewKNN(cfg.Int("k"), cfg["contamination"])
		},
	})
	return r
}

// data builds a gaussian cloud with a few clear outliers sprinkled in.
func data(n, outliers, d int) ([][]float64, []int) {
	rnd := rand.New(rand.NewSource(7))
	x := make([][]float64, 0, n+outliers)
	y := make([]int, 0, n+outliers)
	for i := 0; i < n+outliers; i++ {
		v := make([]float64, d)
		outlier := 0
		if i%(n/outliers+1) == n/outliers {
			outlier = 1
		}
		for j := range v {
			v[j] = rnd.NormFloat64()
			if outlier == 1 {
				v[j] += 15
			}
		}
		x = append(x, v)
		y = append(y, outlier)
	}
	return x, y
}

func TestSearch_Run(t *testing.T) {

	x, y := data(100, 5, 3)

	s := New(testRegistry(), Settings{Iterations: 3, Seed: 42})
	result, best, err := s.Run(context.Background(), x, y)
	assert.NoError(t, err)
	assert.NotNil(t, best)

	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, 3*3, result.Evaluated)
	assert.Equal(t, 0, result.Failed)
	assert.Equal(t, 9, len(result.Candidates))

	// candidates come out ranked
	for i, c := range result.Candidates {
		assert.Equal(t, i+1, c.Rank)
		if i > 0 {
			assert.True(t, result.Candidates[i-1].Score >= c.Score)
		}
		assert.NotEmpty(t, c.ID)
		assert.NotEmpty(t, c.Config)
	}

	// the outliers are far away, any of the detectors should separate them
	top, ok := result.Best()
	assert.True(t, ok)
	assert.True(t, top.Score > 0.9, "expected a clean separation, got %f", top.Score)

	// the balanced split keeps exactly one outlier for training
	assert.Equal(t, 1, result.Counters.OutlierTrain)
	assert.Equal(t, len(y), result.Counters.Samples)

	// the refit detector scores the dataset
	scores, err := best.Scores(x)
	assert.NoError(t, err)
	assert.Equal(t, len(x), len(scores))

}

func TestSearch_SkipsFailedFits(t *testing.T) {

	x, y := data(60, 3, 2)

	r := NewRegistry()
	contamination := Param{Name: "contamination", Min: 0.01, Max: 0.3}
	_ = r.Register(Entry{
		Name:  "mad",
		Space: Space{Params: []Param{contamination}},
		Construct: func(cfg Config) od.Detector {
			return od.NewMAD(cfg["contamination"])
		},
	})
	_ = r.Register(Entry{
		Name:  "ecod",
		Space: Space{Params: []Param{contamination}},
		Construct: func(cfg Config) od.Detector {
			return od.NewECOD(cfg["contamination"])
		},
	})

	s := New(r, Settings{Iterations: 2, Seed: 42})
	result, best, err := s.Run(context.Background(), x, y)
	assert.NoError(t, err)
	assert.NotNil(t, best)

	// mad cannot fit the two feature data, the search moves on
	assert.Equal(t, 2, result.Failed)
	assert.Equal(t, 2, result.Evaluated)
	for _, c := range result.Candidates {
		assert.Equal(t, "ecod", c.Detector)
	}

}

func TestSearch_Cancelled(t *testing.T) {

	x, y := data(50, 3, 2)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := New(testRegistry(), Settings{Iterations: 5, Seed: 42})
	result, best, err := s.Run(ctx, x, y)
	assert.True(t, errors.Is(err, ErrNoCandidate))
	assert.Nil(t, best)
	assert.Equal(t, 0, result.Evaluated)

}

func TestSearch_Errors(t *testing.T) {

	s := New(testRegistry(), Settings{})

	_, _, err := s.Run(context.Background(), [][]float64{{1}}, []int{0, 1})
	assert.True(t, errors.Is(err, ErrMismatch))

	_, _, err = s.Run(context.Background(), [][]float64{{1}, {2}}, []int{0, 7})
	assert.True(t, errors.Is(err, split.ErrInvalidLabel))

}

func TestSpace_Sample(t *testing.T) {

	space := Space{Params: []Param{
		{Name: "contamination", Min: 0.01, Max: 0.3},
		{Name: "k", Min: 1, Max: 50, Integer: true},
	}}

	rnd := rand.New(rand.NewSource(1))
	for i := 0; i < 100; i++ {
		cfg := space.Sample(rnd)
		assert.True(t, cfg["contamination"] >= 0.01 && cfg["contamination"] <= 0.3)
		k := cfg.Int("k")
		assert.True(t, k >= 1 && k <= 50)
		assert.Equal(t, float64(k), cfg["k"])
	}

}

func TestSpace_Perturb(t *testing.T) {

	space := Space{Params: []Param{
		{Name: "contamination", Min: 0.01, Max: 0.3},
		{Name: "k", Min: 1, Max: 50, Integer: true},
	}}

	rnd := rand.New(rand.NewSource(1))
	cfg := space.Sample(rnd)
	for i := 0; i < 100; i++ {
		before := cfg.copy()
		next := space.Perturb(cfg, rnd)
		assert.True(t, next["contamination"] >= 0.01 && next["contamination"] <= 0.3)
		k := next.Int("k")
		assert.True(t, k >= 1 && k <= 50)
		// the original config is not touched
		assert.Equal(t, before, cfg)
		cfg = next
	}

}

func TestRegistry(t *testing.T) {

	r := NewRegistry()
	entry := Entry{Name: "ecod", Construct: func(cfg Config) od.Detector { return od.NewECOD(0) }}

	assert.NoError(t, r.Register(entry))
	err := r.Register(entry)
	assert.True(t, errors.Is(err, ErrDuplicate))
	assert.Equal(t, 1, r.Len())

}

func TestRegistry_Default(t *testing.T) {

	r := Default(42)

	names := make([]string, 0)
	for _, e := range r.Entries() {
		names = append(names, e.Name)
		assert.NotNil(t, e.Construct)
		detector := e.Construct(e.Space.Sample(rand.New(rand.NewSource(1))))
		assert.NotNil(t, detector)
		assert.NotEmpty(t, detector.Properties().Shortname)
	}
	assert.Equal(t, []string{"ecod", "hbos", "mad", "knn", "lof", "iforest", "forest", "glknn"}, names)

}
