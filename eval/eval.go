// Package eval provides the public API for scoring model predictions.
//
// Example usage:
//
//	logits, _ := gpt.Forward(inputs, false)
//	loss, _ := eval.CrossEntropy(logits, targets)
//	pp, _ := eval.Perplexity(logits, targets)
package eval

import (
	"github.com/ember-ml/ember/internal/eval"
	"github.com/ember-ml/ember/tensor"
)

// CrossEntropy averages the negative log-likelihood of targets under logits.
func CrossEntropy(logits *tensor.Tensor, targets [][]int) (float64, error) {
	return eval.CrossEntropy(logits, targets)
}

// Perplexity is exp(CrossEntropy): the effective branching factor of the
// model's next-token distribution.
func Perplexity(logits *tensor.Tensor, targets [][]int) (float64, error) {
	return eval.Perplexity(logits, targets)
}
