package nn

import (
	"fmt"
	"math/rand"

	"github.com/ember-ml/ember/internal/tensor"
)

// Dropout zeroes each element independently with probability p during
// training and scales survivors by 1/(1-p), so the expected activation sum
// is unchanged and inference needs no rescaling. Outside training, or at
// p == 0, the input tensor is returned as is.
//
// The random source is injected at construction; two modules built with
// identically seeded sources drop identical masks.
type Dropout struct {
	p   float32
	rng *rand.Rand
}

// NewDropout creates a dropout module with rate p in [0, 1).
func NewDropout(p float32, rng *rand.Rand) (*Dropout, error) {
	if p < 0 || p >= 1 {
		return nil, fmt.Errorf("nn: dropout rate must be in [0, 1), got %v", p)
	}
	return &Dropout{p: p, rng: rng}, nil
}

// Rate returns the configured drop probability.
func (d *Dropout) Rate() float32 {
	return d.p
}

// Forward applies the dropout mask when training is true.
func (d *Dropout) Forward(x *tensor.Tensor, training bool) (*tensor.Tensor, error) {
	if !training || d.p == 0 {
		return x, nil
	}
	out := x.Clone()
	data := out.Data()
	scale := 1 / (1 - d.p)
	for i := range data {
		if d.rng.Float32() < d.p {
			data[i] = 0
		} else {
			data[i] *= scale
		}
	}
	return out, nil
}

// Parameters returns nil; dropout has no learned state.
func (d *Dropout) Parameters() []*Parameter {
	return nil
}
