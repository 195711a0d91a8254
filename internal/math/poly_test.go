package math

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFit(t *testing.T) {

	type test struct {
		x      []float64
		y      []float64
		degree int
		cc     []float64
	}

	tests := map[string]test{
		"line": {
			x:      []float64{0, 1, 2, 3},
			y:      []float64{1, 3, 5, 7},
			degree: 1,
			cc:     []float64{1, 2},
		},
		"parabola": {
			x:      []float64{-2, -1, 0, 1, 2},
			y:      []float64{4, 1, 0, 1, 4},
			degree: 2,
			cc:     []float64{0, 0, 1},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			cc, err := Fit(tt.x, tt.y, tt.degree)
			assert.NoError(t, err)
			assert.Equal(t, len(tt.cc), len(cc))
			for i, c := range tt.cc {
				assert.InDelta(t, c, cc[i], 1e-9)
			}
		})
	}

}

func TestTrend(t *testing.T) {

	slope, err := Trend([]float64{0.5, 0.6, 0.7, 0.8})
	assert.NoError(t, err)
	assert.InDelta(t, 0.1, slope, 1e-9)

	slope, err = Trend([]float64{0.9})
	assert.NoError(t, err)
	assert.Equal(t, 0.0, slope)

}
