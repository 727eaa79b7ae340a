package nn

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/ember-ml/ember/internal/parallel"
	"github.com/ember-ml/ember/internal/tensor"
)

// CausalMask marks the future positions of attention score matrices. The
// strictly-upper-triangular table is built once for the full context length
// and consulted by index arithmetic per call, so growing sequences never
// rebuild it. Sequences longer than the context are a shape error.
type CausalMask struct {
	masked []bool
	size   int
}

// NewCausalMask builds the mask table for sequences up to contextLength.
func NewCausalMask(contextLength int) (*CausalMask, error) {
	if contextLength < 1 {
		return nil, fmt.Errorf("nn: context length must be positive, got %d", contextLength)
	}
	m := &CausalMask{
		masked: make([]bool, contextLength*contextLength),
		size:   contextLength,
	}
	for i := 0; i < contextLength; i++ {
		for j := i + 1; j < contextLength; j++ {
			m.masked[i*contextLength+j] = true
		}
	}
	return m, nil
}

// Size returns the context length the mask was built for.
func (m *CausalMask) Size() int {
	return m.size
}

// Masked reports whether key position j is hidden from query position i.
func (m *CausalMask) Masked(i, j int) bool {
	return m.masked[i*m.size+j]
}

// Apply forces the masked entries of scores to -Inf in place. scores must
// have shape [..., s, s] with s at most the mask's context length.
func (m *CausalMask) Apply(scores *tensor.Tensor) error {
	r := scores.Dims()
	if r < 2 {
		return fmt.Errorf("nn: mask expects rank >= 2 scores, got shape %v", scores.Shape())
	}
	s := scores.Dim(r - 1)
	if scores.Dim(r-2) != s {
		return fmt.Errorf("nn: mask expects square score matrices, got shape %v", scores.Shape())
	}
	if s > m.size {
		return fmt.Errorf("nn: sequence length %d exceeds context length %d", s, m.size)
	}

	negInf := float32(math.Inf(-1))
	data := scores.Data()
	for base := 0; base < len(data); base += s * s {
		for i := 0; i < s; i++ {
			row := data[base+i*s : base+(i+1)*s]
			tab := m.masked[i*m.size : i*m.size+s]
			for j, hidden := range tab {
				if hidden {
					row[j] = negInf
				}
			}
		}
	}
	return nil
}

// scaledDotProductAttention runs masked softmax attention over per-head
// tensors shaped [batch, heads, seq, headDim].
//
// Per head: scores = q k^T with future entries at -Inf, scaled by
// 1/sqrt(headDim), softmaxed per row, optionally thinned by dropout during
// training, then applied to v. The per-head score and context loops are
// distributed across goroutines; dropout runs serially so the mask depends
// only on the module's random stream.
//
// Returns the context tensor [batch, heads, seq, headDim] and the attention
// weights [batch, heads, seq, seq].
func scaledDotProductAttention(q, k, v *tensor.Tensor, mask *CausalMask, drop *Dropout,
	training bool, par parallel.Config) (*tensor.Tensor, *tensor.Tensor, error) {

	if q.Dims() != 4 {
		return nil, nil, fmt.Errorf("nn: attention expects [batch, heads, seq, headDim], got shape %v", q.Shape())
	}
	if !q.Shape().Equal(k.Shape()) || !q.Shape().Equal(v.Shape()) {
		return nil, nil, fmt.Errorf("nn: attention operands must share a shape, got q=%v k=%v v=%v",
			q.Shape(), k.Shape(), v.Shape())
	}
	b, h, s, hd := q.Dim(0), q.Dim(1), q.Dim(2), q.Dim(3)
	if s > mask.Size() {
		return nil, nil, fmt.Errorf("nn: sequence length %d exceeds context length %d", s, mask.Size())
	}

	scores, err := tensor.New(b, h, s, s)
	if err != nil {
		return nil, nil, err
	}
	negInf := float32(math.Inf(-1))
	scale := float32(1.0 / math.Sqrt(float64(hd)))

	parallel.ForBatchHeads(b, h, func(bi, hi int) {
		for i := 0; i < s; i++ {
			qRow := q.RowAt(bi, hi, i)
			sRow := scores.RowAt(bi, hi, i)
			for j := 0; j < s; j++ {
				if mask.Masked(i, j) {
					sRow[j] = negInf
					continue
				}
				kRow := k.RowAt(bi, hi, j)
				var dot float32
				for d := 0; d < hd; d++ {
					dot += qRow[d] * kRow[d]
				}
				sRow[j] = dot * scale
			}
		}
	}, par)

	weights, err := tensor.Softmax(scores)
	if err != nil {
		return nil, nil, err
	}
	if drop != nil {
		weights, err = drop.Forward(weights, training)
		if err != nil {
			return nil, nil, err
		}
	}

	context, err := tensor.New(b, h, s, hd)
	if err != nil {
		return nil, nil, err
	}
	parallel.ForBatchHeads(b, h, func(bi, hi int) {
		for i := 0; i < s; i++ {
			wRow := weights.RowAt(bi, hi, i)
			cRow := context.RowAt(bi, hi, i)
			for j, w := range wRow {
				if w == 0 {
					continue
				}
				vRow := v.RowAt(bi, hi, j)
				for d := 0; d < hd; d++ {
					cRow[d] += w * vRow[d]
				}
			}
		}
	}, par)

	return context, weights, nil
}

// CausalAttention is the single-head form of masked self-attention, kept
// alongside MultiHeadAttention as the simplest complete statement of the
// mechanism.
//
// Queries, keys and values are separate projections of the same input; the
// score matrix is masked to the lower triangle, scaled by 1/sqrt(dOut) and
// softmaxed, and the resulting weights mix the values.
type CausalAttention struct {
	dOut int
	wq   *Linear
	wk   *Linear
	wv   *Linear
	mask *CausalMask
	drop *Dropout
}

// NewCausalAttention creates a single-head causal attention module.
//
// Parameters:
//   - dIn: input embedding width
//   - dOut: projection width for queries, keys and values
//   - contextLength: longest supported sequence
//   - dropRate: attention-weight dropout probability in [0, 1)
//   - qkvBias: whether the three projections carry bias rows
//   - rng: source for weight init and dropout masks
func NewCausalAttention(dIn, dOut, contextLength int, dropRate float32, qkvBias bool,
	rng *rand.Rand) (*CausalAttention, error) {

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
	mask, err := NewCausalMask(contextLength)
	if err != nil {
		return nil, err
	}
	drop, err := NewDropout(dropRate, rng)
	if err != nil {
		return nil, err
	}
	return &CausalAttention{dOut: dOut, wq: wq, wk: wk, wv: wv, mask: mask, drop: drop}, nil
}

// ContextLength returns the longest sequence the module accepts.
func (ca *CausalAttention) ContextLength() int {
	return ca.mask.Size()
}

// Forward maps [batch, seq, dIn] to context vectors [batch, seq, dOut].
func (ca *CausalAttention) Forward(x *tensor.Tensor, training bool) (*tensor.Tensor, error) {
	if x.Dims() != 3 {
		return nil, fmt.Errorf("nn: causal attention expects [batch, seq, dIn], got shape %v", x.Shape())
	}

	q, err := ca.wq.Forward(x, training)
	if err != nil {
		return nil, fmt.Errorf("nn: causal attention queries: %w", err)
	}
	k, err := ca.wk.Forward(x, training)
	if err != nil {
		return nil, fmt.Errorf("nn: causal attention keys: %w", err)
	}
	v, err := ca.wv.Forward(x, training)
	if err != nil {
		return nil, fmt.Errorf("nn: causal attention values: %w", err)
	}

	kt, err := k.Transpose(0, 2, 1)
	if err != nil {
		return nil, err
	}
	scores, err := tensor.MatMul(q, kt)
	if err != nil {
		return nil, err
	}
	if err := ca.mask.Apply(scores); err != nil {
		return nil, err
	}

	scale := float32(1.0 / math.Sqrt(float64(ca.dOut)))
	weights, err := tensor.Softmax(scores.MulScalar(scale))
	if err != nil {
		return nil, err
	}
	weights, err = ca.drop.Forward(weights, training)
	if err != nil {
		return nil, err
	}
	return tensor.MatMul(weights, v)
}

// Parameters returns the three projection weights (and biases when present).
func (ca *CausalAttention) Parameters() []*Parameter {
	var params []*Parameter
	params = append(params, ca.wq.Parameters()...)
	params = append(params, ca.wk.Parameters()...)
	params = append(params, ca.wv.Parameters()...)
	return params
}
