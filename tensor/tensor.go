// Copyright 2025 Ember ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public API for the dense float32 tensors the
// model computes on.
//
// Tensors are row-major and shaped by a plain []int. The free functions
// cover construction and the linear-algebra kernels the forward pass needs;
// everything positional (At, Set, Reshape, Transpose) lives on the Tensor
// itself.
//
// Example:
//
//	a, _ := tensor.FromSlice([]float32{1, 2, 3, 4, 5, 6}, 2, 3)
//	b, _ := tensor.Full(1, 3, 2)
//	c, _ := tensor.MatMul(a, b) // [2, 2]
package tensor

import (
	"math/rand"

	"github.com/ember-ml/ember/internal/tensor"
)

// Shape lists a tensor's dimensions, outermost first.
type Shape = tensor.Shape

// Tensor is a dense float32 array of arbitrary rank.
type Tensor = tensor.Tensor

// New creates a zero-filled tensor of the given dimensions.
func New(dims ...int) (*Tensor, error) {
	return tensor.New(dims...)
}

// FromSlice copies data into a tensor of the given dimensions. The element
// count must match the shape.
func FromSlice(data []float32, dims ...int) (*Tensor, error) {
	return tensor.FromSlice(data, dims...)
}

// Full creates a tensor with every element set to value.
func Full(value float32, dims ...int) (*Tensor, error) {
	return tensor.Full(value, dims...)
}

// Rand creates a tensor of uniform [0, 1) draws from rng.
func Rand(rng *rand.Rand, dims ...int) (*Tensor, error) {
	return tensor.Rand(rng, dims...)
}

// MatMul multiplies the trailing matrices of two tensors with equal leading
// dimensions.
func MatMul(a, b *Tensor) (*Tensor, error) {
	return tensor.MatMul(a, b)
}

// Add returns a + b, broadcasting b when its shape is a trailing suffix of
// a's.
func Add(a, b *Tensor) (*Tensor, error) {
	return tensor.Add(a, b)
}

// Softmax normalizes the last dimension into probabilities; -Inf entries
// become exact zeros.
func Softmax(t *Tensor) (*Tensor, error) {
	return tensor.Softmax(t)
}
