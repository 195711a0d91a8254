package search

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/drakos74/odsearch/internal/eval"
	"github.com/stretchr/testify/assert"
)

func TestResult_Leaderboard(t *testing.T) {

	result := &Result{
		RunID: "run-1",
		Candidates: []Candidate{
			{Rank: 1, Detector: "ecod", Config: Config{"contamination": 0.1}, Score: 0.97,
				Matrix: eval.Matrix{TP: 4, TN: 4}, FitTime: time.Millisecond},
			{Rank: 2, Detector: "knn", Config: Config{"k": 5}, Score: 0.8,
				Matrix: eval.Matrix{TP: 3, TN: 4, FN: 1}, FitTime: time.Millisecond},
		},
		Evaluated: 2,
		Elapsed:   time.Second,
	}

	var out bytes.Buffer
	result.Leaderboard(&out, 10)

	rendered := out.String()
	assert.True(t, strings.Contains(rendered, "ecod"))
	assert.True(t, strings.Contains(rendered, "knn"))
	assert.True(t, strings.Contains(rendered, "0.9700"))

	summary := result.Summary()
	assert.True(t, strings.Contains(summary, "run-1"))
	assert.True(t, strings.Contains(summary, "ecod"))

}

func TestResult_Summary_Empty(t *testing.T) {
	result := &Result{RunID: "run-2", Failed: 3}
	assert.True(t, strings.Contains(result.Summary(), "no candidate"))
}
