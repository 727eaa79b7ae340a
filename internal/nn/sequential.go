package nn

import (
	"fmt"

	"github.com/ember-ml/ember/internal/tensor"
)

// Sequential chains modules so that each output feeds the next input.
//
// Example:
//
//	ffn := nn.NewSequential(
//	    linear1, // [*, d] -> [*, 4d]
//	    gelu,
//	    linear2, // [*, 4d] -> [*, d]
//	)
type Sequential struct {
	modules []Module
}

// NewSequential creates a container over the given modules.
func NewSequential(modules ...Module) *Sequential {
	return &Sequential{modules: modules}
}

// Add appends a module to the end of the chain.
func (s *Sequential) Add(m Module) {
	s.modules = append(s.modules, m)
}

// Len returns the number of chained modules.
func (s *Sequential) Len() int {
	return len(s.modules)
}

// Forward threads x and the training flag through every module in order.
func (s *Sequential) Forward(x *tensor.Tensor, training bool) (*tensor.Tensor, error) {
	out := x
	var err error
	for i, m := range s.modules {
		out, err = m.Forward(out, training)
		if err != nil {
			return nil, fmt.Errorf("sequential: module %d: %w", i, err)
		}
	}
	return out, nil
}

// Parameters collects the parameters of every chained module.
func (s *Sequential) Parameters() []*Parameter {
	var params []*Parameter
	for _, m := range s.modules {
		params = append(params, m.Parameters()...)
	}
	return params
}
