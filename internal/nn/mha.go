package nn

import (
	"fmt"
	"math/rand"

	"github.com/ember-ml/ember/internal/parallel"
	"github.com/ember-ml/ember/internal/tensor"
)

// MultiHeadAttention runs numHeads causal attention heads in parallel
// subspaces of the projection width.
//
// One projection per role produces [batch, seq, dOut]; the head split
// reshapes that to [batch, seq, numHeads, headDim] and transposes to
// [batch, numHeads, seq, headDim], so each head attends over its own
// headDim = dOut/numHeads columns. After attention the merge mirrors the
// split exactly, and a final linear layer mixes the concatenated heads.
type MultiHeadAttention struct {
	dOut     int
	numHeads int
	headDim  int
	wq       *Linear
	wk       *Linear
	wv       *Linear
	outProj  *Linear
	mask     *CausalMask
	drop     *Dropout
	par      parallel.Config
}

// NewMultiHeadAttention creates a causal multi-head attention module.
//
// Parameters:
//   - dIn: input embedding width
//   - dOut: total projection width, split evenly across heads
//   - contextLength: longest supported sequence
//   - numHeads: head count; must divide dOut
//   - dropRate: attention-weight dropout probability in [0, 1)
//   - qkvBias: whether the query/key/value projections carry bias rows
//   - rng: source for weight init and dropout masks
//
// Returns an error when numHeads is not positive or does not divide dOut.
func NewMultiHeadAttention(dIn, dOut, contextLength, numHeads int, dropRate float32,
	qkvBias bool, rng *rand.Rand) (*MultiHeadAttention, error) {

	if numHeads < 1 {
		return nil, fmt.Errorf("nn: num_heads must be positive, got %d", numHeads)
	}
	if dOut%numHeads != 0 {
		return nil, fmt.Errorf("nn: d_out %d must be divisible by num_heads %d", dOut, numHeads)
	}

	wq, err := NewLinear(dIn, dOut, qkvBias, rng)
	if err != nil {
		return nil, err
	}
	wk, err := NewLinear(dIn, dOut, qkvBias, rng)
	if err != nil {
		return nil, err
	}
	wv, err := NewLinear(dIn, dOut, qkvBias, rng)
	if err != nil {
		return nil, err
	}
	outProj, err := NewLinear(dOut, dOut, true, rng)
	if err != nil {
		return nil, err
	}
	mask, err := NewCausalMask(contextLength)
	if err != nil {
		return nil, err
	}
	drop, err := NewDropout(dropRate, rng)
	if err != nil {
		return nil, err
	}

	return &MultiHeadAttention{
		dOut:     dOut,
		numHeads: numHeads,
		headDim:  dOut / numHeads,
		wq:       wq,
		wk:       wk,
		wv:       wv,
		outProj:  outProj,
		mask:     mask,
		drop:     drop,
		par:      parallel.DefaultConfig(),
	}, nil
}

// NumHeads returns the head count.
func (mha *MultiHeadAttention) NumHeads() int {
	return mha.numHeads
}

// HeadDim returns the per-head subspace width.
func (mha *MultiHeadAttention) HeadDim() int {
	return mha.headDim
}

// ContextLength returns the longest sequence the module accepts.
func (mha *MultiHeadAttention) ContextLength() int {
	return mha.mask.Size()
}

// Forward maps [batch, seq, dIn] to attended vectors [batch, seq, dOut].
func (mha *MultiHeadAttention) Forward(x *tensor.Tensor, training bool) (*tensor.Tensor, error) {
	if x.Dims() != 3 {
		return nil, fmt.Errorf("nn: multi-head attention expects [batch, seq, dIn], got shape %v", x.Shape())
	}

	q, err := mha.wq.Forward(x, training)
	if err != nil {
		return nil, fmt.Errorf("nn: multi-head attention queries: %w", err)
	}
	k, err := mha.wk.Forward(x, training)
	if err != nil {
		return nil, fmt.Errorf("nn: multi-head attention keys: %w", err)
	}
	v, err := mha.wv.Forward(x, training)
	if err != nil {
		return nil, fmt.Errorf("nn: multi-head attention values: %w", err)
	}

	qh, err := splitHeads(q, mha.numHeads, mha.headDim)
	if err != nil {
		return nil, err
	}
	kh, err := splitHeads(k, mha.numHeads, mha.headDim)
	if err != nil {
		return nil, err
	}
	vh, err := splitHeads(v, mha.numHeads, mha.headDim)
	if err != nil {
		return nil, err
	}

	context, _, err := scaledDotProductAttention(qh, kh, vh, mha.mask, mha.drop, training, mha.par)
	if err != nil {
		return nil, err
	}

	merged, err := mergeHeads(context)
	if err != nil {
		return nil, err
	}
	return mha.outProj.Forward(merged, training)
}

// splitHeads reorders a projection [batch, seq, numHeads*headDim] into
// per-head layout [batch, numHeads, seq, headDim].
func splitHeads(t *tensor.Tensor, numHeads, headDim int) (*tensor.Tensor, error) {
	b, s := t.Dim(0), t.Dim(1)
	byHead, err := t.Reshape(b, s, numHeads, headDim)
	if err != nil {
		return nil, err
	}
	return byHead.Transpose(0, 2, 1, 3)
}

// mergeHeads mirrors splitHeads: [batch, numHeads, seq, headDim] back to
// [batch, seq, numHeads*headDim], so column h*headDim+d of the result is
// dimension d of head h.
func mergeHeads(t *tensor.Tensor) (*tensor.Tensor, error) {
	b, h, s, hd := t.Dim(0), t.Dim(1), t.Dim(2), t.Dim(3)
	bySeq, err := t.Transpose(0, 2, 1, 3)
	if err != nil {
		return nil, err
	}
	return bySeq.Reshape(b, s, h*hd)
}

// Parameters returns the projection and output weights.
func (mha *MultiHeadAttention) Parameters() []*Parameter {
	var params []*Parameter
	params = append(params, mha.wq.Parameters()...)
	params = append(params, mha.wk.Parameters()...)
	params = append(params, mha.wv.Parameters()...)
	params = append(params, mha.outProj.Parameters()...)
	return params
}
