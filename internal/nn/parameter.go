package nn

import (
	"github.com/ember-ml/ember/internal/tensor"
)

// Parameter is a named weight tensor owned by exactly one module.
//
// Parameters carry the learned state read during the forward pass. They are
// only ever written from outside this package (weight loading or training
// tooling); no Forward implementation mutates its own parameters.
type Parameter struct {
	name string
	data *tensor.Tensor
}

// NewParameter wraps an initialized tensor as a named parameter.
func NewParameter(name string, data *tensor.Tensor) *Parameter {
	return &Parameter{name: name, data: data}
}

// Name returns the parameter name, e.g. "weight" or "att.w_query.weight".
func (p *Parameter) Name() string {
	return p.name
}

// Tensor returns the parameter's tensor.
func (p *Parameter) Tensor() *tensor.Tensor {
	return p.data
}
