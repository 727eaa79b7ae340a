package nn

import (
	"fmt"
	"math/rand"

	"github.com/ember-ml/ember/internal/tensor"
)

// BlockConfig carries the dimensions of one transformer block.
type BlockConfig struct {
	EmbedDim      int     // Width of the residual stream.
	ContextLength int     // Longest supported sequence.
	NumHeads      int     // Attention head count; must divide EmbedDim.
	DropRate      float32 // Dropout probability in [0, 1).
	QKVBias       bool    // Bias rows on the query/key/value projections.
}

// TransformerBlock is one pre-norm decoder layer: attention and feed-forward
// sublayers, each wrapped as
//
//	x = x + dropout(sublayer(norm(x)))
//
// Normalizing before the sublayer keeps the residual stream untouched, so
// signals and gradients pass through the + unchanged.
type TransformerBlock struct {
	norm1 *LayerNorm
	att   *MultiHeadAttention
	norm2 *LayerNorm
	ff    *FeedForward
	drop  *Dropout
}

// NewTransformerBlock creates a decoder layer from cfg, drawing its weights
// from rng.
func NewTransformerBlock(cfg BlockConfig, rng *rand.Rand) (*TransformerBlock, error) {
	norm1, err := NewLayerNorm(cfg.EmbedDim)
	if err != nil {
		return nil, err
	}
	att, err := NewMultiHeadAttention(cfg.EmbedDim, cfg.EmbedDim, cfg.ContextLength,
		cfg.NumHeads, cfg.DropRate, cfg.QKVBias, rng)
	if err != nil {
		return nil, err
	}
	norm2, err := NewLayerNorm(cfg.EmbedDim)
	if err != nil {
		return nil, err
	}
	ff, err := NewFeedForward(cfg.EmbedDim, rng)
	if err != nil {
		return nil, err
	}
	drop, err := NewDropout(cfg.DropRate, rng)
	if err != nil {
		return nil, err
	}
	return &TransformerBlock{norm1: norm1, att: att, norm2: norm2, ff: ff, drop: drop}, nil
}

// Forward carries [batch, seq, embDim] through both sublayers, preserving
// the shape.
func (b *TransformerBlock) Forward(x *tensor.Tensor, training bool) (*tensor.Tensor, error) {
	shortcut := x
	h, err := b.norm1.Forward(x, training)
	if err != nil {
		return nil, fmt.Errorf("nn: block attention norm: %w", err)
	}
	h, err = b.att.Forward(h, training)
	if err != nil {
		return nil, err
	}
	h, err = b.drop.Forward(h, training)
	if err != nil {
		return nil, err
	}
	x, err = tensor.Add(h, shortcut)
	if err != nil {
		return nil, fmt.Errorf("nn: block attention residual: %w", err)
	}

	shortcut = x
	h, err = b.norm2.Forward(x, training)
	if err != nil {
		return nil, fmt.Errorf("nn: block feed-forward norm: %w", err)
	}
	h, err = b.ff.Forward(h, training)
	if err != nil {
		return nil, err
	}
	h, err = b.drop.Forward(h, training)
	if err != nil {
		return nil, err
	}
	out, err := tensor.Add(h, shortcut)
	if err != nil {
		return nil, fmt.Errorf("nn: block feed-forward residual: %w", err)
	}
	return out, nil
}

// Parameters returns the parameters of both norms, the attention module and
// the feed-forward network.
func (b *TransformerBlock) Parameters() []*Parameter {
	var params []*Parameter
	params = append(params, b.norm1.Parameters()...)
	params = append(params, b.att.Parameters()...)
	params = append(params, b.norm2.Parameters()...)
	params = append(params, b.ff.Parameters()...)
	return params
}
