// Package eval measures language-model prediction quality.
//
// Both metrics compare next-token logits against the ids that actually
// follow: cross entropy is the mean negative log-probability of the correct
// token, and perplexity is its exponential. Scores are computed in float64
// so long sequences do not lose precision to accumulation.
package eval

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/ember-ml/ember/internal/tensor"
)

// CrossEntropy averages the negative log-likelihood of targets under logits.
//
// logits must have shape [batch, seq, vocab] and targets must be a matching
// [batch][seq] grid of ids in [0, vocab). Rows are normalized internally via
// log-sum-exp, so logits of any magnitude are safe.
func CrossEntropy(logits *tensor.Tensor, targets [][]int) (float64, error) {
	if logits.Dims() != 3 {
		return 0, fmt.Errorf("eval: logits must be [batch, seq, vocab], got shape %v", logits.Shape())
	}
	b, s, v := logits.Dim(0), logits.Dim(1), logits.Dim(2)
	if len(targets) != b {
		return 0, fmt.Errorf("eval: target batch %d does not match logits batch %d", len(targets), b)
	}

	row := make([]float64, v)
	var nll float64
	for bi, tRow := range targets {
		if len(tRow) != s {
			return 0, fmt.Errorf("eval: target row %d has %d ids, logits carry %d positions",
				bi, len(tRow), s)
		}
		for si, target := range tRow {
			if target < 0 || target >= v {
				return 0, fmt.Errorf("eval: target id %d out of range [0, %d)", target, v)
			}
			src := logits.RowAt(bi, si)
			for i, x := range src {
				row[i] = float64(x)
			}
			nll += floats.LogSumExp(row) - row[target]
		}
	}
	return nll / float64(b*s), nil
}

// Perplexity is exp(CrossEntropy): the effective branching factor of the
// model's next-token distribution.
func Perplexity(logits *tensor.Tensor, targets [][]int) (float64, error) {
	ce, err := CrossEntropy(logits, targets)
	if err != nil {
		return 0, err
	}
	return math.Exp(ce), nil
}
