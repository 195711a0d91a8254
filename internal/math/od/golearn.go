package od

import (
	"fmt"
	"strconv"

	"github.com/rs/zerolog/log"
	glbase "github.com/sjwhitworth/golearn/base"
	"github.com/sjwhitworth/golearn/evaluation"
	"github.com/sjwhitworth/golearn/knn"
)

// GoLearnKNN adapts the golearn knn classifier to the detector contract.
// Unlike the score based detectors it predicts hard labels, so the scores it
// reports are the labels themselves.
type GoLearnKNN struct {
	k        int
	distance string
	cls      *knn.KNNClassifier
	class    *glbase.CategoricalAttribute
	fitted   bool
}

func NewGoLearnKNN(k int, distance string) *GoLearnKNN {
	if k <= 0 {
		k = defaultNeighbours
	}
	if distance == "" {
		distance = "euclidean"
	}
	return &GoLearnKNN{
		k:        k,
		distance: distance,
	}
}

// instances packs the matrix and labels into a golearn grid.
func (g *GoLearnKNN) instances(x [][]float64, y []int) (*glbase.DenseInstances, error) {
	d, err := check(x)
	if err != nil {
		return nil, err
	}
	data := glbase.NewDenseInstances()
	specs := make([]glbase.AttributeSpec, d)
	for j := 0; j < d; j++ {
		specs[j] = data.AddAttribute(glbase.NewFloatAttribute(fmt.Sprintf("f%d", j)))
	}
	classSpec := data.AddAttribute(g.class)
	if err := data.AddClassAttribute(g.class); err != nil {
		return nil, fmt.Errorf("could not add class attribute: %w", err)
	}
	if err := data.Extend(len(x)); err != nil {
		return nil, fmt.Errorf("could not extend instances: %w", err)
	}
	for i, row := range x {
		for j, v := range row {
			data.Set(specs[j], i, glbase.PackFloatToBytes(v))
		}
		data.Set(classSpec, i, g.class.GetSysValFromString(strconv.Itoa(y[i])))
	}
	return data, nil
}

func (g *GoLearnKNN) Fit(x [][]float64, y []int) error {
	g.class = new(glbase.CategoricalAttribute)
	g.class.SetName("outlier")
	// fix the value order so the encoding is stable across fit and predict
	g.class.GetSysValFromString("0")
	g.class.GetSysValFromString("1")
	data, err := g.instances(x, y)
	if err != nil {
		return err
	}
	g.cls = knn.NewKnnClassifier(g.distance, "linear", g.k)
	if err := g.cls.Fit(data); err != nil {
		log.Error().Err(err).Msg("could not train knn classifier")
		return err
	}
	g.fitted = true
	if e := log.Debug(); e.Enabled() {
		// print precision/recall on the training grid
		predictions, err := g.cls.Predict(data)
		if err != nil {
			return nil
		}
		confusion, err := evaluation.GetConfusionMatrix(data, predictions)
		if err != nil {
			log.Error().Err(err).Msg("could not get confusion matrix")
			return nil
		}
		e.Str("detector", "GLKNN").Msg(evaluation.GetSummary(confusion))
	}
	return nil
}

func (g *GoLearnKNN) Predict(x [][]float64) ([]int, error) {
	if !g.fitted {
		return nil, ErrNotFitted
	}
	dummy := make([]int, len(x))
	data, err := g.instances(x, dummy)
	if err != nil {
		return nil, err
	}
	predictions, err := g.cls.Predict(data)
	if err != nil {
		log.Error().Err(err).Msg("could not predict on knn classifier")
		return nil, err
	}
	yy := make([]int, len(x))
	for i := range x {
		label, err := strconv.Atoi(glbase.GetClass(predictions, i))
		if err != nil {
			return nil, fmt.Errorf("unexpected class label: %w", err)
		}
		yy[i] = label
	}
	return yy, nil
}

func (g *GoLearnKNN) Scores(x [][]float64) ([]float64, error) {
	yy, err := g.Predict(x)
	if err != nil {
		return nil, err
	}
	scores := make([]float64, len(yy))
	for i, label := range yy {
		scores[i] = float64(label)
	}
	return scores, nil
}

func (g *GoLearnKNN) PredictProba(x [][]float64) ([][]float64, error) {
	yy, err := g.Predict(x)
	if err != nil {
		return nil, err
	}
	pp := make([][]float64, len(yy))
	for i, label := range yy {
		pp[i] = []float64{float64(1 - label), float64(label)}
	}
	return pp, nil
}

func (g *GoLearnKNN) Properties() Properties {
	return Properties{
		Shortname:     "GLKNN",
		Name:          "golearn k-nearest neighbour classifier",
		Deterministic: true,
	}
}
