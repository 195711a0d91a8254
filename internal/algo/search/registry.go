package search

import (
	"errors"
	"fmt"

	"github.com/drakos74/odsearch/internal/math/od"
)

var ErrDuplicate = errors.New("duplicate detector")

// Constructor builds a detector from a sampled configuration.
type Constructor func(cfg Config) od.Detector

// Entry binds a detector constructor to its declared search space.
type Entry struct {
	Name      string
	Space     Space
	Construct Constructor
}

// Registry keeps the named detector entries available to the search,
// in registration order.
type Registry struct {
	entries map[string]Entry
	order   []string
}

func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]Entry),
	}
}

func (r *Registry) Register(e Entry) error {
	if _, ok := r.entries[e.Name]; ok {
		return fmt.Errorf("%s: %w", e.Name, ErrDuplicate)
	}
	r.entries[e.Name] = e
	r.order = append(r.order, e.Name)
	return nil
}

func (r *Registry) Entries() []Entry {
	ee := make([]Entry, len(r.order))
	for i, name := range r.order {
		ee[i] = r.entries[name]
	}
	return ee
}

func (r *Registry) Len() int {
	return len(r.order)
}

// Default registers the full detector suite.
func Default(seed int64) *Registry {
	r := NewRegistry()
	contamination := Param{Name: "contamination", Min: 0.01, Max: 0.3}
	for _, e := range []Entry{
		{
			Name:  "ecod",
			Space: Space{Params: []Param{contamination}},
			Construct: func(cfg Config) od.Detector {
				return od.NewECOD(cfg["contamination"])
			},
		},
		{
			Name: "hbos",
			Space: Space{Params: []Param{
				contamination,
				{Name: "bins", Min: 5, Max: 50, Integer: true},
			}},
			Construct: func(cfg Config) od.Detector {
				return od.NewHBOS(cfg.Int("bins"), cfg["contamination"])
			},
		},
		{
			// univariate only, fit fails on wider data and the search moves on
			Name:  "mad",
			Space: Space{Params: []Param{contamination}},
			Construct: func(cfg Config) od.Detector {
				return od.NewMAD(cfg["contamination"])
			},
		},
		{
			Name: "knn",
			Space: Space{Params: []Param{
				contamination,
				{Name: "k", Min: 1, Max: 50, Integer: true},
			}},
			Construct: func(cfg Config) od.Detector {
				return od.NewKNN(cfg.Int("k"), cfg["contamination"])
			},
		},
		{
			Name: "lof",
			Space: Space{Params: []Param{
				contamination,
				{Name: "k", Min: 2, Max: 50, Integer: true},
			}},
			Construct: func(cfg Config) od.Detector {
				return od.NewLOF(cfg.Int("k"), cfg["contamination"])
			},
		},
		{
			Name: "iforest",
			Space: Space{Params: []Param{
				contamination,
				{Name: "trees", Min: 20, Max: 200, Integer: true},
			}},
			Construct: func(cfg Config) od.Detector {
				return od.NewIForest(cfg.Int("trees"), seed, cfg["contamination"])
			},
		},
		{
			Name: "forest",
			Space: Space{Params: []Param{
				contamination,
				{Name: "trees", Min: 100, Max: 1000, Integer: true},
			}},
			Construct: func(cfg Config) od.Detector {
				return od.NewForest(cfg.Int("trees"), cfg["contamination"])
			},
		},
		{
			Name: "glknn",
			Space: Space{Params: []Param{
				{Name: "k", Min: 1, Max: 20, Integer: true},
			}},
			Construct: func(cfg Config) od.Detector {
				return od.NewGoLearnKNN(cfg.Int("k"), "euclidean")
			},
		},
	} {
		// names are static, a clash here is a programming error
		if err := r.Register(e); err != nil {
			panic(err.Error())
		}
	}
	return r
}
