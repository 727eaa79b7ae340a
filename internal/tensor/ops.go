package tensor

import (
	"fmt"
	"math"

	"github.com/ember-ml/ember/internal/parallel"
)

// MatMul multiplies the trailing two dimensions of a and b. Both operands
// must be 2D, or must share identical leading dimensions with compatible
// inner sizes: [..., m, k] x [..., k, n] -> [..., m, n]. Batched products
// are distributed across goroutines.
func MatMul(a, b *Tensor) (*Tensor, error) {
	if len(a.shape) < 2 || len(b.shape) < 2 {
		return nil, fmt.Errorf("matmul: operands must have rank >= 2, got %v and %v", a.shape, b.shape)
	}
	if len(a.shape) != len(b.shape) {
		return nil, fmt.Errorf("matmul: rank mismatch: %v vs %v", a.shape, b.shape)
	}
	r := len(a.shape)
	m, ka := a.shape[r-2], a.shape[r-1]
	kb, n := b.shape[r-2], b.shape[r-1]
	if ka != kb {
		return nil, fmt.Errorf("matmul: inner dimensions do not match: %v vs %v", a.shape, b.shape)
	}
	batch := 1
	for i := 0; i < r-2; i++ {
		if a.shape[i] != b.shape[i] {
			return nil, fmt.Errorf("matmul: batch dimensions do not match: %v vs %v", a.shape, b.shape)
		}
		batch *= a.shape[i]
	}

	outShape := a.shape.Clone()
	outShape[r-1] = n
	out := &Tensor{
		data:    make([]float32, outShape.NumElements()),
		shape:   outShape,
		strides: outShape.ComputeStrides(),
	}

	aStep, bStep, oStep := m*ka, ka*n, m*n
	parallel.For(batch, func(bi int) {
		matmul2D(
			a.data[bi*aStep:(bi+1)*aStep],
			b.data[bi*bStep:(bi+1)*bStep],
			out.data[bi*oStep:(bi+1)*oStep],
			m, ka, n,
		)
	}, parallel.DefaultConfig())
	return out, nil
}

func matmul2D(a, b, out []float32, m, k, n int) {
	for i := 0; i < m; i++ {
		ai := i * k
		oi := i * n
		for p := 0; p < k; p++ {
			av := a[ai+p]
			bp := p * n
			for j := 0; j < n; j++ {
				out[oi+j] += av * b[bp+j]
			}
		}
	}
}

// Transpose returns a new tensor with dimensions permuted by axes. The two
// permutations attention relies on are (0, 2, 1, 3) for the head split and
// merge, and (0, 1, 3, 2) for the key transpose.
func (t *Tensor) Transpose(axes ...int) (*Tensor, error) {
	if len(axes) != len(t.shape) {
		return nil, fmt.Errorf("transpose: got %d axes for rank-%d tensor", len(axes), len(t.shape))
	}
	seen := make([]bool, len(axes))
	outShape := make(Shape, len(axes))
	for i, ax := range axes {
		if ax < 0 || ax >= len(axes) || seen[ax] {
			return nil, fmt.Errorf("transpose: invalid axis permutation %v for shape %v", axes, t.shape)
		}
		seen[ax] = true
		outShape[i] = t.shape[ax]
	}

	out := &Tensor{
		data:    make([]float32, len(t.data)),
		shape:   outShape,
		strides: outShape.ComputeStrides(),
	}

	idx := make([]int, len(t.shape))
	for flat := 0; flat < len(t.data); flat++ {
		dst := 0
		for i, ax := range axes {
			dst += idx[ax] * out.strides[i]
		}
		out.data[dst] = t.data[flat]
		for d := len(idx) - 1; d >= 0; d-- {
			idx[d]++
			if idx[d] < t.shape[d] {
				break
			}
			idx[d] = 0
		}
	}
	return out, nil
}

// Add returns a + b. Shapes must match exactly, or b's shape must equal a
// trailing suffix of a's, in which case b repeats over the leading
// dimensions (positional embeddings, bias rows).
func Add(a, b *Tensor) (*Tensor, error) {
	if a.shape.Equal(b.shape) {
		out := a.Clone()
		for i, v := range b.data {
			out.data[i] += v
		}
		return out, nil
	}
	if isSuffix(b.shape, a.shape) {
		out := a.Clone()
		bn := len(b.data)
		for i := range out.data {
			out.data[i] += b.data[i%bn]
		}
		return out, nil
	}
	return nil, fmt.Errorf("add: shapes %v and %v are not compatible", a.shape, b.shape)
}

func isSuffix(suffix, full Shape) bool {
	if len(suffix) == 0 || len(suffix) > len(full) {
		return false
	}
	off := len(full) - len(suffix)
	for i, d := range suffix {
		if full[off+i] != d {
			return false
		}
	}
	return true
}

// MulScalar returns t scaled by s. Infinities keep their sign for s > 0, so
// masked attention scores survive scaling.
func (t *Tensor) MulScalar(s float32) *Tensor {
	out := t.Clone()
	for i := range out.data {
		out.data[i] *= s
	}
	return out
}

// Softmax normalizes the trailing dimension to a probability distribution.
// The row maximum is subtracted before exponentiation, so large scores stay
// finite and -Inf entries come out as exact zeros. Rows consisting only of
// -Inf are not supported.
func Softmax(t *Tensor) (*Tensor, error) {
	if len(t.shape) == 0 {
		return nil, fmt.Errorf("softmax: scalar tensor has no trailing dimension")
	}
	n := t.shape[len(t.shape)-1]
	out := t.Clone()
	rows := len(out.data) / n
	for r := 0; r < rows; r++ {
		row := out.data[r*n : (r+1)*n]
		maxV := row[0]
		for _, v := range row[1:] {
			if v > maxV {
				maxV = v
			}
		}
		var sum float64
		for i, v := range row {
			e := math.Exp(float64(v - maxV))
			row[i] = float32(e)
			sum += e
		}
		inv := float32(1 / sum)
		for i := range row {
			row[i] *= inv
		}
	}
	return out, nil
}
