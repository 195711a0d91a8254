package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuffer(t *testing.T) {

	type test struct {
		size   int
		push   []float64
		values []float64
		mean   float64
	}

	tests := map[string]test{
		"empty": {
			size:   3,
			push:   []float64{},
			values: []float64{},
		},
		"under-capacity": {
			size:   3,
			push:   []float64{1, 2},
			values: []float64{1, 2},
			mean:   1.5,
		},
		"over-capacity": {
			size:   3,
			push:   []float64{1, 2, 3, 4, 5},
			values: []float64{3, 4, 5},
			mean:   4,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			b := NewBuffer(tt.size)
			for _, v := range tt.push {
				b.Push(v)
			}
			assert.Equal(t, tt.values, b.Get())
			assert.Equal(t, len(tt.values), b.Len())
			assert.InDelta(t, tt.mean, b.Mean(), 1e-9)
			if len(tt.values) > 0 {
				last, ok := b.Last()
				assert.True(t, ok)
				assert.Equal(t, tt.values[len(tt.values)-1], last)
			} else {
				_, ok := b.Last()
				assert.False(t, ok)
			}
		})
	}

}

func TestBuffer_Eviction(t *testing.T) {
	b := NewBuffer(2)
	_, evicted := b.Push(1)
	assert.False(t, evicted)
	_, evicted = b.Push(2)
	assert.False(t, evicted)
	v, evicted := b.Push(3)
	assert.True(t, evicted)
	assert.Equal(t, 1.0, v)
}
