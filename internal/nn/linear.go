package nn

import (
	"fmt"
	"math/rand"

	"github.com/ember-ml/ember/internal/tensor"
)

// Linear is a fully connected layer computing y = x*W + b.
//
// The weight is stored as [inFeatures, outFeatures] so the forward pass is a
// single matrix product without transposition. Inputs may have any rank >= 2;
// leading dimensions are flattened through the product and restored on the
// way out, so [batch, seq, in] maps to [batch, seq, out].
type Linear struct {
	inFeatures  int
	outFeatures int
	weight      *Parameter
	bias        *Parameter // nil when the layer has no bias
}

// NewLinear creates a fully connected layer.
//
// Parameters:
//   - inFeatures: required size of the input's trailing dimension
//   - outFeatures: size of the output's trailing dimension
//   - withBias: whether the layer adds a learned bias row
//   - rng: source for the Xavier-uniform weight init
//
// Returns an error when either feature count is not positive.
func NewLinear(inFeatures, outFeatures int, withBias bool, rng *rand.Rand) (*Linear, error) {
	if inFeatures < 1 || outFeatures < 1 {
		return nil, fmt.Errorf("nn: linear feature counts must be positive, got in=%d out=%d",
			inFeatures, outFeatures)
	}
	l := &Linear{
		inFeatures:  inFeatures,
		outFeatures: outFeatures,
		weight:      NewParameter("weight", xavierUniform(rng, inFeatures, outFeatures, inFeatures, outFeatures)),
	}
	if withBias {
		l.bias = NewParameter("bias", zeros(outFeatures))
	}
	return l, nil
}

// InFeatures returns the expected trailing input dimension.
func (l *Linear) InFeatures() int {
	return l.inFeatures
}

// OutFeatures returns the trailing output dimension.
func (l *Linear) OutFeatures() int {
	return l.outFeatures
}

// Forward applies the affine transform to the trailing dimension of x.
func (l *Linear) Forward(x *tensor.Tensor, _ bool) (*tensor.Tensor, error) {
	r := x.Dims()
	if r < 2 {
		return nil, fmt.Errorf("nn: linear expects rank >= 2, got shape %v", x.Shape())
	}
	if x.Dim(r-1) != l.inFeatures {
		return nil, fmt.Errorf("nn: linear expects trailing dimension %d, got shape %v",
			l.inFeatures, x.Shape())
	}

	shape := x.Shape()
	leading := 1
	for i := 0; i < r-1; i++ {
		leading *= shape[i]
	}
	flat, err := x.Reshape(leading, l.inFeatures)
	if err != nil {
		return nil, err
	}

	y, err := tensor.MatMul(flat, l.weight.Tensor())
	if err != nil {
		return nil, err
	}
	if l.bias != nil {
		y, err = tensor.Add(y, l.bias.Tensor())
		if err != nil {
			return nil, err
		}
	}

	outShape := shape
	outShape[r-1] = l.outFeatures
	return y.Reshape(outShape...)
}

// Parameters returns the weight and, when present, the bias.
func (l *Linear) Parameters() []*Parameter {
	if l.bias == nil {
		return []*Parameter{l.weight}
	}
	return []*Parameter{l.weight, l.bias}
}
