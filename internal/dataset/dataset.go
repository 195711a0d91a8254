package dataset

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/sjwhitworth/golearn/base"
)

const (
	labelAttribute = "outlier"
	idAttribute    = "id"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrBadLabel  = errors.New("bad label")
	ErrBadFormat = errors.New("bad format")
)

// Set is a labeled dataset ready for fitting,
// with the binary outlier labels separated from the feature matrix.
type Set struct {
	Attributes []string
	X          [][]float64
	Y          []int
}

// Outliers returns the number of outlier labels in the set.
func (s *Set) Outliers() int {
	var n int
	for _, y := range s.Y {
		n += y
	}
	return n
}

// ImportARFF loads a KDDCup99 style arff file,
// mapping the outlier attribute (yes/no) to binary labels and dropping the id column.
func ImportARFF(path string) (*Set, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("filepath %s does not exist: %w", path, ErrNotFound)
	}
	data, err := base.ParseDenseARFFToInstances(path)
	if err != nil {
		return nil, fmt.Errorf("could not parse arff file %s: %w", path, err)
	}
	return convert(data)
}

// ImportCSV loads a csv file with a header row, using the last column as the label.
func ImportCSV(path string) (*Set, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("filepath %s does not exist: %w", path, ErrNotFound)
	}
	data, err := base.ParseCSVToInstances(path, true)
	if err != nil {
		return nil, fmt.Errorf("could not parse csv file %s: %w", path, err)
	}
	return convert(data)
}

func convert(data base.FixedDataGrid) (*Set, error) {
	_, rows := data.Size()

	var classAttr base.Attribute
	for _, a := range data.AllAttributes() {
		if a.GetName() == labelAttribute {
			classAttr = a
		}
	}
	if classAttr == nil {
		if cc := data.AllClassAttributes(); len(cc) > 0 {
			classAttr = cc[0]
		} else {
			return nil, fmt.Errorf("no label attribute found: %w", ErrBadFormat)
		}
	}
	classSpec, err := data.GetAttribute(classAttr)
	if err != nil {
		return nil, fmt.Errorf("could not resolve label attribute: %w", err)
	}

	set := &Set{}
	specs := make([]base.AttributeSpec, 0)
	for _, a := range data.AllAttributes() {
		if a.GetName() == classAttr.GetName() || a.GetName() == idAttribute {
			continue
		}
		spec, err := data.GetAttribute(a)
		if err != nil {
			return nil, fmt.Errorf("could not resolve attribute %s: %w", a.GetName(), err)
		}
		specs = append(specs, spec)
		set.Attributes = append(set.Attributes, a.GetName())
	}

	set.X = make([][]float64, rows)
	set.Y = make([]int, rows)
	for i := 0; i < rows; i++ {
		row := make([]float64, len(specs))
		for j, spec := range specs {
			v, err := value(spec, data.Get(spec, i))
			if err != nil {
				return nil, fmt.Errorf("row %d attribute %s: %w", i, spec.GetAttribute().GetName(), err)
			}
			row[j] = v
		}
		set.X[i] = row
		label, err := parseLabel(classAttr.GetStringFromSysVal(data.Get(classSpec, i)))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		set.Y[i] = label
	}

	log.Info().
		Int("rows", rows).
		Int("features", len(specs)).
		Int("outliers", set.Outliers()).
		Msg("imported dataset")

	return set, nil
}

func value(spec base.AttributeSpec, raw []byte) (float64, error) {
	if _, ok := spec.GetAttribute().(*base.FloatAttribute); ok {
		return base.UnpackBytesToFloat(raw), nil
	}
	s := spec.GetAttribute().GetStringFromSysVal(raw)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("non numeric value %s: %w", s, ErrBadFormat)
	}
	return v, nil
}

func parseLabel(s string) (int, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes":
		return 1, nil
	case "no":
		return 0, nil
	}
	// numeric labels come back formatted, e.g. "1.00"
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("label value %s: %w", s, ErrBadLabel)
	}
	switch v {
	case 0:
		return 0, nil
	case 1:
		return 1, nil
	}
	return 0, fmt.Errorf("label value %s: %w", s, ErrBadLabel)
}
