package nn

import (
	"fmt"
	"math"

	"github.com/ember-ml/ember/internal/tensor"
)

// layerNormEps keeps the variance strictly positive before the square root.
const layerNormEps = 1e-5

// LayerNorm normalizes the trailing dimension of its input to zero mean and
// unit variance, then applies a learned elementwise scale and shift.
//
// The variance is the biased (population) estimate, divided by dim rather
// than dim-1, and the epsilon sits inside the square root:
//
//	y = (x - mean) / sqrt(var + eps) * scale + shift
type LayerNorm struct {
	dim   int
	scale *Parameter // init ones
	shift *Parameter // init zeros
}

// NewLayerNorm creates a normalization layer over trailing dimension dim.
func NewLayerNorm(dim int) (*LayerNorm, error) {
	if dim < 1 {
		return nil, fmt.Errorf("nn: layernorm dimension must be positive, got %d", dim)
	}
	return &LayerNorm{
		dim:   dim,
		scale: NewParameter("scale", ones(dim)),
		shift: NewParameter("shift", zeros(dim)),
	}, nil
}

// Forward normalizes every trailing-dimension row of x independently.
func (ln *LayerNorm) Forward(x *tensor.Tensor, _ bool) (*tensor.Tensor, error) {
	r := x.Dims()
	if r < 1 || x.Dim(r-1) != ln.dim {
		return nil, fmt.Errorf("nn: layernorm expects trailing dimension %d, got shape %v",
			ln.dim, x.Shape())
	}

	out := x.Clone()
	data := out.Data()
	g := ln.scale.Tensor().Data()
	b := ln.shift.Tensor().Data()
	n := float64(ln.dim)

	for off := 0; off < len(data); off += ln.dim {
		row := data[off : off+ln.dim]

		var mean float64
		for _, v := range row {
			mean += float64(v)
		}
		mean /= n

		var variance float64
		for _, v := range row {
			d := float64(v) - mean
			variance += d * d
		}
		variance /= n

		inv := 1.0 / math.Sqrt(variance+layerNormEps)
		for i, v := range row {
			row[i] = float32((float64(v)-mean)*inv)*g[i] + b[i]
		}
	}
	return out, nil
}

// Parameters returns the scale and shift vectors.
func (ln *LayerNorm) Parameters() []*Parameter {
	return []*Parameter{ln.scale, ln.shift}
}
