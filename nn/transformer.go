// Copyright 2025 Ember ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"math/rand"

	"github.com/ember-ml/ember/internal/nn"
)

// CausalMask marks the future positions of attention score matrices.
type CausalMask = nn.CausalMask

// NewCausalMask builds the mask table for sequences up to contextLength.
func NewCausalMask(contextLength int) (*CausalMask, error) {
	return nn.NewCausalMask(contextLength)
}

// CausalAttention is single-head masked self-attention.
type CausalAttention = nn.CausalAttention

// NewCausalAttention creates a single-head causal attention module.
func NewCausalAttention(dIn, dOut, contextLength int, dropRate float32, qkvBias bool,
	rng *rand.Rand) (*CausalAttention, error) {
	return nn.NewCausalAttention(dIn, dOut, contextLength, dropRate, qkvBias, rng)
}

// MultiHeadAttention runs several causal attention heads in parallel
// subspaces of the projection width.
type MultiHeadAttention = nn.MultiHeadAttention

// NewMultiHeadAttention creates a causal multi-head attention module.
//
// Example:
//
//	mha, err := nn.NewMultiHeadAttention(768, 768, 1024, 12, 0.1, false, rng)
func NewMultiHeadAttention(dIn, dOut, contextLength, numHeads int, dropRate float32,
	qkvBias bool, rng *rand.Rand) (*MultiHeadAttention, error) {
	return nn.NewMultiHeadAttention(dIn, dOut, contextLength, numHeads, dropRate, qkvBias, rng)
}

// FeedForward is the position-wise MLP of a transformer block.
type FeedForward = nn.FeedForward

// NewFeedForward creates the two-layer MLP for embedding width embDim.
func NewFeedForward(embDim int, rng *rand.Rand) (*FeedForward, error) {
	return nn.NewFeedForward(embDim, rng)
}

// BlockConfig carries the dimensions of one transformer block.
type BlockConfig = nn.BlockConfig

// TransformerBlock is one pre-norm decoder layer.
type TransformerBlock = nn.TransformerBlock

// NewTransformerBlock creates a decoder layer from cfg, drawing its weights
// from rng.
func NewTransformerBlock(cfg BlockConfig, rng *rand.Rand) (*TransformerBlock, error) {
	return nn.NewTransformerBlock(cfg, rng)
}
