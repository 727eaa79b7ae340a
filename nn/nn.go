// Copyright 2025 Ember ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"math/rand"

	"github.com/ember-ml/ember/internal/nn"
	"github.com/ember-ml/ember/tensor"
)

// Module is the interface shared by all network components.
type Module = nn.Module

// Parameter is a named weight tensor owned by exactly one module.
type Parameter = nn.Parameter

// NewParameter wraps an initialized tensor as a named parameter.
func NewParameter(name string, data *tensor.Tensor) *Parameter {
	return nn.NewParameter(name, data)
}

// Layers

// Linear is a fully connected layer computing y = x W + b.
type Linear = nn.Linear

// NewLinear creates a linear layer with Xavier-uniform weights.
//
// Example:
//
//	layer, err := nn.NewLinear(768, 3072, true, rng)
func NewLinear(inFeatures, outFeatures int, withBias bool, rng *rand.Rand) (*Linear, error) {
	return nn.NewLinear(inFeatures, outFeatures, withBias, rng)
}

// LayerNorm normalizes the trailing dimension to zero mean and unit
// variance, then applies a learned scale and shift.
type LayerNorm = nn.LayerNorm

// NewLayerNorm creates a layer norm over trailing dimension dim.
func NewLayerNorm(dim int) (*LayerNorm, error) {
	return nn.NewLayerNorm(dim)
}

// Embedding is a lookup table mapping discrete ids to dense vectors.
type Embedding = nn.Embedding

// NewEmbedding creates a lookup table for numEmbeddings ids of size embedDim.
func NewEmbedding(numEmbeddings, embedDim int, rng *rand.Rand) (*Embedding, error) {
	return nn.NewEmbedding(numEmbeddings, embedDim, rng)
}

// Activations

// GELU is the Gaussian Error Linear Unit in its tanh approximation.
type GELU = nn.GELU

// NewGELU creates a GELU activation.
func NewGELU() *GELU {
	return nn.NewGELU()
}

// ReLU clips negative inputs to zero.
type ReLU = nn.ReLU

// NewReLU creates a ReLU activation.
func NewReLU() *ReLU {
	return nn.NewReLU()
}

// Regularization

// Dropout zeroes elements with probability p during training and rescales
// the survivors by 1/(1-p).
type Dropout = nn.Dropout

// NewDropout creates a dropout module with rate p in [0, 1).
func NewDropout(p float32, rng *rand.Rand) (*Dropout, error) {
	return nn.NewDropout(p, rng)
}

// Composition

// Sequential chains modules so that each output feeds the next input.
type Sequential = nn.Sequential

// NewSequential creates a container over the given modules.
func NewSequential(modules ...Module) *Sequential {
	return nn.NewSequential(modules...)
}
