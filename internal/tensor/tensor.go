// Package tensor implements the dense float32 tensors the network runs on.
//
// Data lives in a flat row-major slice. Reshape returns a view sharing the
// backing slice; Transpose and the arithmetic operations materialize new
// tensors. Exported operations validate shapes and return errors; element
// accessors panic on out-of-range indices.
package tensor

import (
	"fmt"
	"math/rand"
	"strings"
)

// Tensor is a dense row-major float32 tensor.
type Tensor struct {
	data    []float32
	shape   Shape
	strides []int
}

// New allocates a zero-filled tensor with the given dimensions.
func New(dims ...int) (*Tensor, error) {
	shape := Shape(dims).Clone()
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("tensor: %w", err)
	}
	return &Tensor{
		data:    make([]float32, shape.NumElements()),
		shape:   shape,
		strides: shape.ComputeStrides(),
	}, nil
}

// FromSlice builds a tensor with the given dimensions from a copy of data.
func FromSlice(data []float32, dims ...int) (*Tensor, error) {
	t, err := New(dims...)
	if err != nil {
		return nil, err
	}
	if len(data) != len(t.data) {
		return nil, fmt.Errorf("tensor: data length %d does not match shape %v (%d elements)",
			len(data), t.shape, t.shape.NumElements())
	}
	copy(t.data, data)
	return t, nil
}

// Full returns a tensor with every element set to v.
func Full(v float32, dims ...int) (*Tensor, error) {
	t, err := New(dims...)
	if err != nil {
		return nil, err
	}
	for i := range t.data {
		t.data[i] = v
	}
	return t, nil
}

// Rand returns a tensor filled with uniform values in [0, 1) drawn from rng.
func Rand(rng *rand.Rand, dims ...int) (*Tensor, error) {
	t, err := New(dims...)
	if err != nil {
		return nil, err
	}
	for i := range t.data {
		t.data[i] = rng.Float32()
	}
	return t, nil
}

// Shape returns a copy of the tensor's dimensions.
func (t *Tensor) Shape() Shape {
	return t.shape.Clone()
}

// Dims returns the tensor's rank.
func (t *Tensor) Dims() int {
	return len(t.shape)
}

// Dim returns the size of dimension i.
func (t *Tensor) Dim(i int) int {
	return t.shape[i]
}

// NumElements returns the total element count.
func (t *Tensor) NumElements() int {
	return len(t.data)
}

// Data returns the backing slice. Mutations are visible to every view of the
// tensor.
func (t *Tensor) Data() []float32 {
	return t.data
}

func (t *Tensor) flatIndex(idx []int) int {
	if len(idx) != len(t.shape) {
		panic(fmt.Sprintf("tensor: got %d indices for rank-%d tensor", len(idx), len(t.shape)))
	}
	flat := 0
	for i, ix := range idx {
		if ix < 0 || ix >= t.shape[i] {
			panic(fmt.Sprintf("tensor: index %d out of range for dimension %d of %v", ix, i, t.shape))
		}
		flat += ix * t.strides[i]
	}
	return flat
}

// At returns the element at the given indices.
func (t *Tensor) At(idx ...int) float32 {
	return t.data[t.flatIndex(idx)]
}

// Set stores v at the given indices.
func (t *Tensor) Set(v float32, idx ...int) {
	t.data[t.flatIndex(idx)] = v
}

// RowAt returns the trailing-dimension vector addressed by the leading
// indices, as a live view into the tensor's data.
func (t *Tensor) RowAt(idx ...int) []float32 {
	if len(idx) != len(t.shape)-1 {
		panic(fmt.Sprintf("tensor: RowAt needs %d indices for rank-%d tensor, got %d",
			len(t.shape)-1, len(t.shape), len(idx)))
	}
	flat := 0
	for i, ix := range idx {
		if ix < 0 || ix >= t.shape[i] {
			panic(fmt.Sprintf("tensor: index %d out of range for dimension %d of %v", ix, i, t.shape))
		}
		flat += ix * t.strides[i]
	}
	n := t.shape[len(t.shape)-1]
	return t.data[flat : flat+n]
}

// Reshape returns a view of the same data under new dimensions. The element
// count must be unchanged.
func (t *Tensor) Reshape(dims ...int) (*Tensor, error) {
	shape := Shape(dims).Clone()
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("reshape: %w", err)
	}
	if shape.NumElements() != len(t.data) {
		return nil, fmt.Errorf("reshape: cannot view %v (%d elements) as %v (%d elements)",
			t.shape, len(t.data), shape, shape.NumElements())
	}
	return &Tensor{data: t.data, shape: shape, strides: shape.ComputeStrides()}, nil
}

// Clone returns a deep copy.
func (t *Tensor) Clone() *Tensor {
	data := make([]float32, len(t.data))
	copy(data, t.data)
	return &Tensor{data: data, shape: t.shape.Clone(), strides: t.shape.ComputeStrides()}
}

// AllClose reports whether both tensors have equal shapes and every pair of
// elements differs by at most tol. NaN never compares close.
func (t *Tensor) AllClose(other *Tensor, tol float32) bool {
	if !t.shape.Equal(other.shape) {
		return false
	}
	for i, v := range t.data {
		d := v - other.data[i]
		if d != d {
			return false
		}
		if d < 0 {
			d = -d
		}
		if d > tol {
			return false
		}
	}
	return true
}

// String renders the tensor with nested brackets, four decimals per element.
func (t *Tensor) String() string {
	if len(t.shape) == 0 {
		return fmt.Sprintf("%.4f", t.data[0])
	}
	var b strings.Builder
	t.format(&b, 0, 0, "")
	return b.String()
}

func (t *Tensor) format(b *strings.Builder, dim, offset int, indent string) {
	b.WriteString("[")
	if dim == len(t.shape)-1 {
		for i := 0; i < t.shape[dim]; i++ {
			if i > 0 {
				b.WriteString(" ")
			}
			fmt.Fprintf(b, "%.4f", t.data[offset+i])
		}
		b.WriteString("]")
		return
	}
	for i := 0; i < t.shape[dim]; i++ {
		if i > 0 {
			b.WriteString("\n" + indent + " ")
		}
		t.format(b, dim+1, offset+i*t.strides[dim], indent+" ")
	}
	b.WriteString("]")
}
