package eval

import (
	"errors"
	"fmt"
	"sort"
)

var (
	ErrMismatch = errors.New("length mismatch")
	ErrOneClass = errors.New("single class")
)

// Matrix holds the binary confusion counts with outliers as the positive class.
type Matrix struct {
	TP int `json:"tp"`
	FP int `json:"fp"`
	TN int `json:"tn"`
	FN int `json:"fn"`
}

// Confusion builds the confusion matrix for the given labels and predictions.
func Confusion(yTrue, yPred []int) (Matrix, error) {
	if len(yTrue) != len(yPred) {
		return Matrix{}, fmt.Errorf("%d labels vs %d predictions: %w", len(yTrue), len(yPred), ErrMismatch)
	}
	var m Matrix
	for i, y := range yTrue {
		switch {
		case y == 1 && yPred[i] == 1:
			m.TP++
		case y == 1 && yPred[i] == 0:
			m.FN++
		case y == 0 && yPred[i] == 1:
			m.FP++
		default:
			m.TN++
		}
	}
	return m, nil
}

func (m Matrix) Accuracy() float64 {
	total := m.TP + m.FP + m.TN + m.FN
	if total == 0 {
		return 0
	}
	return float64(m.TP+m.TN) / float64(total)
}

func (m Matrix) Precision() float64 {
	if m.TP+m.FP == 0 {
		return 0
	}
	return float64(m.TP) / float64(m.TP+m.FP)
}

func (m Matrix) Recall() float64 {
	if m.TP+m.FN == 0 {
		return 0
	}
	return float64(m.TP) / float64(m.TP+m.FN)
}

func (m Matrix) F1() float64 {
	p := m.Precision()
	r := m.Recall()
	if p+r == 0 {
		return 0
	}
	return 2 * p * r / (p + r)
}

func (m Matrix) Format() string {
	return fmt.Sprintf("[tp:%d|fp:%d|tn:%d|fn:%d]", m.TP, m.FP, m.TN, m.FN)
}

// ROCAUC computes the area under the roc curve from raw outlier scores,
// using the rank statistic formulation with averaged ranks for ties.
func ROCAUC(yTrue []int, scores []float64) (float64, error) {
	if len(yTrue) != len(scores) {
		return 0, fmt.Errorf("%d labels vs %d scores: %w", len(yTrue), len(scores), ErrMismatch)
	}
	var pos, neg int
	for _, y := range yTrue {
		if y == 1 {
			pos++
		} else {
			neg++
		}
	}
	if pos == 0 || neg == 0 {
		return 0, fmt.Errorf("%d outliers in %d samples: %w", pos, len(yTrue), ErrOneClass)
	}

	index := make([]int, len(scores))
	for i := range index {
		index[i] = i
	}
	sort.Slice(index, func(i, j int) bool { return scores[index[i]] < scores[index[j]] })

	ranks := make([]float64, len(scores))
	for i := 0; i < len(index); {
		j := i
		for j < len(index) && scores[index[j]] == scores[index[i]] {
			j++
		}
		// 1-based rank, averaged over the tie group
		rank := float64(i+j+1) / 2
		for k := i; k < j; k++ {
			ranks[index[k]] = rank
		}
		i = j
	}

	var sum float64
	for i, y := range yTrue {
		if y == 1 {
			sum += ranks[i]
		}
	}
	return (sum - float64(pos)*float64(pos+1)/2) / (float64(pos) * float64(neg)), nil
}
