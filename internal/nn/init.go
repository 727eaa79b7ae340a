package nn

import (
	"math"
	"math/rand"

	"github.com/ember-ml/ember/internal/tensor"
)

// xavierUniform returns a tensor drawn from U(-a, a) with
// a = sqrt(6 / (fanIn + fanOut)), the Glorot bound that keeps activation
// variance stable across layers.
//
// Callers validate dims before reaching this point.
func xavierUniform(rng *rand.Rand, fanIn, fanOut int, dims ...int) *tensor.Tensor {
	bound := math.Sqrt(6.0 / float64(fanIn+fanOut))
	t, err := tensor.New(dims...)
	if err != nil {
		panic(err)
	}
	data := t.Data()
	for i := range data {
		data[i] = float32((rng.Float64()*2.0 - 1.0) * bound)
	}
	return t
}

// randNormal returns a tensor drawn from N(0, 1), the init used for
// embedding tables.
func randNormal(rng *rand.Rand, dims ...int) *tensor.Tensor {
	t, err := tensor.New(dims...)
	if err != nil {
		panic(err)
	}
	data := t.Data()
	for i := range data {
		data[i] = float32(rng.NormFloat64())
	}
	return t
}

// zeros returns a zero-filled tensor, the usual bias and shift init.
func zeros(dims ...int) *tensor.Tensor {
	t, err := tensor.New(dims...)
	if err != nil {
		panic(err)
	}
	return t
}

// ones returns a one-filled tensor, the usual norm-scale init.
func ones(dims ...int) *tensor.Tensor {
	t, err := tensor.Full(1, dims...)
	if err != nil {
		panic(err)
	}
	return t
}
