// Package nn implements the building blocks of a GPT-style decoder stack.
//
// The modules cover the layers of a decoder-only transformer:
//   - Module interface: forward pass with an explicit training-mode flag
//   - Parameter: named weight tensors owned by their module
//   - Linear, LayerNorm, Embedding: learned transformations
//   - GELU, ReLU, Dropout: elementwise and stochastic operations
//   - CausalAttention, MultiHeadAttention: masked self-attention
//   - FeedForward, TransformerBlock: the per-layer wiring
//   - Sequential: container for stacking modules
//
// Everything here computes forward passes only. Parameters are plain tensors
// mutated by external tooling; no gradient machinery lives in this package.
package nn

import (
	"github.com/ember-ml/ember/internal/tensor"
)

// Module is the interface shared by all network components.
//
// Forward computes the module's output for x. The training flag switches
// stochastic modules (Dropout, and everything containing one) between active
// and identity behavior; deterministic modules ignore it. Implementations
// return an error when the input shape does not match their configuration.
type Module interface {
	Forward(x *tensor.Tensor, training bool) (*tensor.Tensor, error)

	// Parameters returns the module's learnable tensors, including those of
	// nested modules. Stateless modules return nil.
	Parameters() []*Parameter
}
