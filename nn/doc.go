// Copyright 2025 Ember ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the neural network layers of the GPT decoder stack.
//
// # Overview
//
// This package contains:
//   - Layers: Linear, LayerNorm, Embedding
//   - Activations: GELU, ReLU
//   - Regularization: Dropout
//   - Attention: CausalAttention, MultiHeadAttention
//   - Composition: FeedForward, TransformerBlock, Sequential
//
// Modules share one interface: Forward(x, training) with explicit error
// returns, and Parameters() exposing the learnable tensors. Construction
// takes a *rand.Rand so weight initialization and dropout are reproducible
// from a single seed.
//
// Example:
//
//	rng := rand.New(rand.NewSource(42))
//	block, err := nn.NewTransformerBlock(nn.BlockConfig{
//	    EmbedDim:      768,
//	    ContextLength: 1024,
//	    NumHeads:      12,
//	    DropRate:      0.1,
//	}, rng)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	out, err := block.Forward(x, false) // [batch, seq, 768]
package nn
