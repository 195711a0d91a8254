package split

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

// Assignment marks the partition an index is routed to.
type Assignment int

const (
	Train Assignment = iota
	Validation
)

func (a Assignment) String() string {
	if a == Train {
		return "train"
	}
	return "validation"
}

var ErrInvalidLabel = errors.New("invalid label")

// Counters tracks the per-class routing counts of a single split pass.
type Counters struct {
	Samples           int `json:"samples"`
	OutlierTrain      int `json:"outlier_train"`
	OutlierValidation int `json:"outlier_validation"`
	NormalTrain       int `json:"normal_train"`
	NormalValidation  int `json:"normal_validation"`
}

// Balanced partitions the given binary labels (0 = normal, 1 = outlier) into
// train and validation assignments in a single forward pass.
// The first outlier always goes to train, so the model has at least one outlier
// example to fit on. Every outlier after that goes to validation.
// Normal samples go to validation only while the validation outliers outnumber
// the validation normals, so the validation set keeps both classes in
// comparable proportion without any shuffling.
// The routing is a pure function of the label sequence and its order.
func Balanced(labels []int, debug bool) ([]Assignment, Counters, error) {
	assignments := make([]Assignment, len(labels))
	var c Counters
	for i, v := range labels {
		switch v {
		case 1:
			if c.OutlierTrain > 0 {
				assignments[i] = Validation
				c.OutlierValidation++
			} else {
				assignments[i] = Train
				c.OutlierTrain++
			}
		case 0:
			if c.OutlierValidation > c.NormalValidation {
				assignments[i] = Validation
				c.NormalValidation++
			} else {
				assignments[i] = Train
				c.NormalTrain++
			}
		default:
			return nil, Counters{}, fmt.Errorf("label at index %d is %d: %w", i, v, ErrInvalidLabel)
		}
		c.Samples++
	}
	if debug {
		log.Info().
			Int("samples", c.Samples).
			Int("outlier-train", c.OutlierTrain).
			Int("outlier-validation", c.OutlierValidation).
			Int("normal-train", c.NormalTrain).
			Int("normal-validation", c.NormalValidation).
			Msg("balanced split")
	}
	return assignments, c, nil
}

// Apply splits the feature matrix and labels according to the given assignments.
func Apply(x [][]float64, y []int, assignments []Assignment) (trainX [][]float64, trainY []int, valX [][]float64, valY []int) {
	for i, a := range assignments {
		if a == Train {
			trainX = append(trainX, x[i])
			trainY = append(trainY, y[i])
		} else {
			valX = append(valX, x[i])
			valY = append(valY, y[i])
		}
	}
	return trainX, trainY, valX, valY
}
