package nn

import (
	"fmt"
	"math/rand"

	"github.com/ember-ml/ember/internal/tensor"
)

// ffnExpansion widens the hidden layer relative to the embedding width.
const ffnExpansion = 4

// FeedForward is the position-wise MLP of a transformer block: expand the
// embedding width fourfold, apply GELU, project back down. Every position is
// transformed independently, so the input shape is preserved.
type FeedForward struct {
	seq *Sequential
}

// NewFeedForward creates the two-layer MLP for embedding width embDim.
func NewFeedForward(embDim int, rng *rand.Rand) (*FeedForward, error) {
	if embDim < 1 {
		return nil, fmt.Errorf("nn: feed-forward embedding width must be positive, got %d", embDim)
	}
	up, err := NewLinear(embDim, ffnExpansion*embDim, true, rng)
	if err != nil {
		return nil, err
	}
	down, err := NewLinear(ffnExpansion*embDim, embDim, true, rng)
	if err != nil {
		return nil, err
	}
	return &FeedForward{seq: NewSequential(up, NewGELU(), down)}, nil
}

// Forward applies the MLP to the trailing dimension of x.
func (f *FeedForward) Forward(x *tensor.Tensor, training bool) (*tensor.Tensor, error) {
	return f.seq.Forward(x, training)
}

// Parameters returns both projection layers' weights and biases.
func (f *FeedForward) Parameters() []*Parameter {
	return f.seq.Parameters()
}
