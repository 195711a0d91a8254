package buffer

// Buffer is a constant size float queue, keeping the most recent values.
type Buffer struct {
	size   int
	values []float64
}

// NewBuffer creates a new buffer.
func NewBuffer(size int) *Buffer {
	return &Buffer{
		size:   size,
		values: make([]float64, 0),
	}
}

// Push adds a value to the buffer,
// returning the evicted value when the buffer is already full.
func (b *Buffer) Push(x float64) (float64, bool) {
	b.values = append(b.values, x)
	if len(b.values) > b.size {
		value := b.values[0]
		b.values = b.values[1:]
		return value, true
	}
	return 0, false
}

// Get returns the buffered values in the order they were added.
func (b *Buffer) Get() []float64 {
	vv := make([]float64, len(b.values))
	copy(vv, b.values)
	return vv
}

// Len returns the current length of the buffer.
func (b *Buffer) Len() int {
	return len(b.values)
}

// Last returns the most recent value.
func (b *Buffer) Last() (float64, bool) {
	if len(b.values) == 0 {
		return 0, false
	}
	return b.values[len(b.values)-1], true
}

// Mean returns the average of the buffered values.
func (b *Buffer) Mean() float64 {
	if len(b.values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range b.values {
		sum += v
	}
	return sum / float64(len(b.values))
}
