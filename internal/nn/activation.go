package nn

import (
	"math"

	"github.com/ember-ml/ember/internal/tensor"
)

// Tanh-approximation constants for GELU.
const (
	geluSqrt2OverPi = 0.7978845608028654 // sqrt(2 / pi)
	geluCubicCoeff  = 0.044715
)

// GELU applies the Gaussian error linear unit in its tanh approximation:
//
//	0.5 * x * (1 + tanh(sqrt(2/pi) * (x + 0.044715 * x^3)))
//
// Unlike ReLU it is smooth everywhere and keeps a small gradient for
// negative inputs.
type GELU struct{}

// NewGELU returns the activation module.
func NewGELU() *GELU {
	return &GELU{}
}

// Forward applies the activation elementwise; any shape is accepted.
func (g *GELU) Forward(x *tensor.Tensor, _ bool) (*tensor.Tensor, error) {
	out := x.Clone()
	data := out.Data()
	for i, v := range data {
		xf := float64(v)
		inner := geluSqrt2OverPi * (xf + geluCubicCoeff*xf*xf*xf)
		data[i] = float32(0.5 * xf * (1.0 + math.Tanh(inner)))
	}
	return out, nil
}

// Parameters returns nil; GELU is stateless.
func (g *GELU) Parameters() []*Parameter {
	return nil
}

// ReLU zeroes negative elements.
type ReLU struct{}

// NewReLU returns the activation module.
func NewReLU() *ReLU {
	return &ReLU{}
}

// Forward applies max(0, x) elementwise.
func (r *ReLU) Forward(x *tensor.Tensor, _ bool) (*tensor.Tensor, error) {
	out := x.Clone()
	data := out.Data()
	for i, v := range data {
		if v < 0 {
			data[i] = 0
		}
	}
	return out, nil
}

// Parameters returns nil; ReLU is stateless.
func (r *ReLU) Parameters() []*Parameter {
	return nil
}
