package search

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/drakos74/odsearch/internal/buffer"
	"github.com/drakos74/odsearch/internal/eval"
	odmath "github.com/drakos74/odsearch/internal/math"
	"github.com/drakos74/odsearch/internal/math/od"
	"github.com/drakos74/odsearch/internal/metrics"
	"github.com/drakos74/odsearch/internal/split"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var (
	ErrNoCandidate = errors.New("no candidate completed")
	ErrMismatch    = errors.New("length mismatch")
)

// Settings defines the run config options for a search.
type Settings struct {
	// Iterations defines how many configurations are evaluated per detector
	Iterations int `json:"iterations"`
	// History defines the size of the per detector score history buffer
	History int `json:"history"`
	// Seed makes the sampling reproducible
	Seed int64 `json:"seed"`
	// Debug enables the diagnostic output of the splitter and the search
	Debug bool `json:"debug"`
}

func (s Settings) withDefaults() Settings {
	if s.Iterations <= 0 {
		s.Iterations = 10
	}
	if s.History <= 0 {
		s.History = 5
	}
	return s
}

// Candidate is one evaluated detector configuration.
type Candidate struct {
	ID       string        `json:"id"`
	Detector string        `json:"detector"`
	Config   Config        `json:"config"`
	Score    float64       `json:"score"`
	Matrix   eval.Matrix   `json:"matrix"`
	FitTime  time.Duration `json:"fit_time"`
	Rank     int           `json:"rank"`
}

// Result gathers the outcome of one search run.
type Result struct {
	RunID      string             `json:"run_id"`
	Counters   split.Counters     `json:"counters"`
	Candidates []Candidate        `json:"candidates"`
	Trends     map[string]float64 `json:"trends"`
	Evaluated  int                `json:"evaluated"`
	Failed     int                `json:"failed"`
	Elapsed    time.Duration      `json:"elapsed"`
}

// Best returns the top ranked candidate.
func (r *Result) Best() (Candidate, bool) {
	if len(r.Candidates) == 0 {
		return Candidate{}, false
	}
	return r.Candidates[0], true
}

// Search evaluates detector configurations over a balanced split of the data.
type Search struct {
	registry *Registry
	settings Settings
	metrics  metrics.Prometheus
	rnd      *rand.Rand
	history  map[string]*buffer.Buffer
	best     map[string]Candidate
}

func New(registry *Registry, settings Settings) *Search {
	settings = settings.withDefaults()
	s := &Search{
		registry: registry,
		settings: settings,
		metrics:  metrics.NewPrometheusMetrics(),
		rnd:      rand.New(rand.NewSource(settings.Seed)),
		history:  make(map[string]*buffer.Buffer),
		best:     make(map[string]Candidate),
	}
	for _, e := range registry.Entries() {
		s.history[e.Name] = buffer.NewBuffer(settings.History)
	}
	return s
}

// Register exposes the search counters to the default prometheus registry.
func (s *Search) Register() error {
	return s.metrics.Register()
}

// Run searches over the registered detectors and returns the ranked results
// together with the best detector refitted on the full dataset.
// The labels are partitioned once with the balanced split, all candidates fit
// on the train partition and score on the validation partition.
// Cancelling the context stops the search early with the results so far.
func (s *Search) Run(ctx context.Context, x [][]float64, y []int) (*Result, od.Detector, error) {
	if len(x) != len(y) {
		return nil, nil, fmt.Errorf("%d samples vs %d labels: %w", len(x), len(y), ErrMismatch)
	}

	assignments, counters, err := split.Balanced(y, s.settings.Debug)
	if err != nil {
		return nil, nil, fmt.Errorf("could not split dataset: %w", err)
	}
	trainX, trainY, valX, valY := split.Apply(x, y, assignments)

	result := &Result{
		RunID:    uuid.New().String(),
		Counters: counters,
		Trends:   make(map[string]float64),
	}
	start := time.Now()

	log.Info().
		Str("run-id", result.RunID).
		Int("train", len(trainY)).
		Int("validation", len(valY)).
		Int("detectors", s.registry.Len()).
		Int("iterations", s.settings.Iterations).
		Msg("starting search")

search:
	for i := 0; i < s.settings.Iterations; i++ {
		for _, entry := range s.registry.Entries() {
			select {
			case <-ctx.Done():
				log.Warn().Str("run-id", result.RunID).Int("iteration", i).Msg("search cancelled")
				break search
			default:
			}

			cfg := s.next(entry)
			candidate, err := s.evaluate(entry, cfg, trainX, trainY, valX, valY)
			s.metrics.Evaluations.WithLabelValues(entry.Name).Inc()
			if err != nil {
				s.metrics.Failures.WithLabelValues(entry.Name).Inc()
				result.Failed++
				log.Warn().Err(err).
					Str("detector", entry.Name).
					Str("config", cfg.Format()).
					Msg("candidate failed")
				continue
			}
			result.Evaluated++
			result.Candidates = append(result.Candidates, candidate)
			s.history[entry.Name].Push(candidate.Score)
			if best, ok := s.best[entry.Name]; !ok || candidate.Score > best.Score {
				s.best[entry.Name] = candidate
			}
			if s.settings.Debug {
				log.Info().
					Str("detector", entry.Name).
					Str("config", cfg.Format()).
					Float64("score", candidate.Score).
					Str("confusion", candidate.Matrix.Format()).
					Msg("evaluated candidate")
			}
		}
	}

	result.Elapsed = time.Since(start)
	rank(result.Candidates)
	s.trends(result)

	best, ok := result.Best()
	if !ok {
		return result, nil, ErrNoCandidate
	}

	log.Info().
		Str("run-id", result.RunID).
		Str("detector", best.Detector).
		Str("config", best.Config.Format()).
		Float64("score", best.Score).
		Int("evaluated", result.Evaluated).
		Int("failed", result.Failed).
		Str("elapsed", fmt.Sprintf("%+v", result.Elapsed)).
		Msg("search finished")

	// refit the winner on the full dataset
	detector, err := s.refit(best, x, y)
	if err != nil {
		return result, nil, fmt.Errorf("could not refit best candidate: %w", err)
	}
	return result, detector, nil
}

// next samples a fresh configuration, or evolves the best one seen so far.
func (s *Search) next(entry Entry) Config {
	if best, ok := s.best[entry.Name]; ok {
		return entry.Space.Perturb(best.Config, s.rnd)
	}
	return entry.Space.Sample(s.rnd)
}

func (s *Search) evaluate(entry Entry, cfg Config, trainX [][]float64, trainY []int, valX [][]float64, valY []int) (Candidate, error) {
	detector := entry.Construct(cfg)

	start := time.Now()
	if err := detector.Fit(trainX, trainY); err != nil {
		return Candidate{}, fmt.Errorf("fit: %w", err)
	}
	fitTime := time.Since(start)

	scores, err := detector.Scores(valX)
	if err != nil {
		return Candidate{}, fmt.Errorf("scores: %w", err)
	}
	predictions, err := detector.Predict(valX)
	if err != nil {
		return Candidate{}, fmt.Errorf("predict: %w", err)
	}
	matrix, err := eval.Confusion(valY, predictions)
	if err != nil {
		return Candidate{}, fmt.Errorf("confusion: %w", err)
	}

	score, err := eval.ROCAUC(valY, scores)
	if err != nil {
		if !errors.Is(err, eval.ErrOneClass) {
			return Candidate{}, fmt.Errorf("roc auc: %w", err)
		}
		// a single class validation set cannot rank, fall back to accuracy
		score = matrix.Accuracy()
	}

	return Candidate{
		ID:       uuid.New().String(),
		Detector: entry.Name,
		Config:   cfg,
		Score:    score,
		Matrix:   matrix,
		FitTime:  fitTime,
	}, nil
}

func (s *Search) refit(best Candidate, x [][]float64, y []int) (od.Detector, error) {
	for _, entry := range s.registry.Entries() {
		if entry.Name == best.Detector {
			detector := entry.Construct(best.Config)
			if err := detector.Fit(x, y); err != nil {
				return nil, err
			}
			return detector, nil
		}
	}
	return nil, fmt.Errorf("detector %s is not registered: %w", best.Detector, ErrNoCandidate)
}

// trends fits the per detector score history to a line,
// to expose whether the evolution moves each detector in the right direction.
func (s *Search) trends(result *Result) {
	for name, history := range s.history {
		if history.Len() < 2 {
			continue
		}
		slope, err := odmath.Trend(history.Get())
		if err != nil {
			log.Warn().Err(err).Str("detector", name).Msg("could not fit score trend")
			continue
		}
		result.Trends[name] = slope
		log.Debug().
			Str("detector", name).
			Float64("slope", slope).
			Float64("mean", history.Mean()).
			Msg("score trend")
	}
}

type byScore []Candidate

func (cc byScore) Len() int           { return len(cc) }
func (cc byScore) Less(i, j int) bool { return cc[i].Score < cc[j].Score }
func (cc byScore) Swap(i, j int)      { cc[i], cc[j] = cc[j], cc[i] }

func rank(candidates []Candidate) {
	sort.Stable(sort.Reverse(byScore(candidates)))
	for i := range candidates {
		candidates[i].Rank = i + 1
	}
}
