package search

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strings"
)

// Config holds the sampled hyperparameter values for one candidate.
type Config map[string]float64

func (c Config) Format() string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s:%.3f", k, c[k])
	}
	return "[" + strings.Join(parts, "|") + "]"
}

func (c Config) copy() Config {
	cc := make(Config, len(c))
	for k, v := range c {
		cc[k] = v
	}
	return cc
}

// Int reads an integer valued hyperparameter.
func (c Config) Int(name string) int {
	return int(math.Round(c[name]))
}

// Param defines the range of one hyperparameter.
type Param struct {
	Name    string  `json:"name"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Integer bool    `json:"integer"`
}

// Space is the hyperparameter search space a detector declares.
type Space struct {
	Params []Param `json:"params"`
}

// Sample draws a uniform random configuration from the space.
func (s Space) Sample(rnd *rand.Rand) Config {
	cfg := make(Config, len(s.Params))
	for _, p := range s.Params {
		v := p.Min + rnd.Float64()*(p.Max-p.Min)
		if p.Integer {
			v = math.Round(v)
		}
		cfg[p.Name] = v
	}
	return cfg
}

const evolvePerc = 0.05

// Perturb evolves a configuration by a small random step per parameter,
// clamped to the declared ranges.
func (s Space) Perturb(cfg Config, rnd *rand.Rand) Config {
	next := cfg.copy()
	for _, p := range s.Params {
		v := evolve(next[p.Name], rnd.Float64(), p)
		next[p.Name] = v
	}
	return next
}

func evolve(f float64, r float64, p Param) float64 {
	step := math.Max(math.Abs(f)*evolvePerc, (p.Max-p.Min)*evolvePerc)
	if r > 0.5 {
		f += step
	} else {
		f -= step
	}
	if p.Integer {
		f = math.Round(f)
	} else {
		f = math.Round(1000*f) / 1000
	}
	if f > p.Max {
		return p.Max
	}
	if f < p.Min {
		return p.Min
	}
	return f
}
