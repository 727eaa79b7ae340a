package nn

import (
	"fmt"
	"math/rand"

	"github.com/ember-ml/ember/internal/tensor"
)

// Embedding is a lookup table mapping discrete ids to dense vectors.
//
// The table is a [numEmbeddings, embedDim] parameter initialized from
// N(0, 1). Embedding does not implement Module: its input is integer ids,
// not a float tensor.
type Embedding struct {
	weight   *Parameter
	numEmbed int
	embedDim int
}

// NewEmbedding creates a lookup table for numEmbeddings ids of size embedDim.
func NewEmbedding(numEmbeddings, embedDim int, rng *rand.Rand) (*Embedding, error) {
	if numEmbeddings < 1 || embedDim < 1 {
		return nil, fmt.Errorf("nn: embedding sizes must be positive, got count=%d dim=%d",
			numEmbeddings, embedDim)
	}
	return &Embedding{
		weight:   NewParameter("weight", randNormal(rng, numEmbeddings, embedDim)),
		numEmbed: numEmbeddings,
		embedDim: embedDim,
	}, nil
}

// NumEmbeddings returns the table size.
func (e *Embedding) NumEmbeddings() int {
	return e.numEmbed
}

// Dim returns the embedding vector size.
func (e *Embedding) Dim() int {
	return e.embedDim
}

// Forward gathers the vectors for a rectangular batch of id rows,
// producing [batch, seq, dim].
func (e *Embedding) Forward(ids [][]int) (*tensor.Tensor, error) {
	if len(ids) == 0 || len(ids[0]) == 0 {
		return nil, fmt.Errorf("nn: embedding input must be non-empty")
	}
	seq := len(ids[0])
	out, err := tensor.New(len(ids), seq, e.embedDim)
	if err != nil {
		return nil, err
	}

	table := e.weight.Tensor().Data()
	data := out.Data()
	for b, row := range ids {
		if len(row) != seq {
			return nil, fmt.Errorf("nn: embedding rows must have equal length, row 0 has %d, row %d has %d",
				seq, b, len(row))
		}
		for s, id := range row {
			if id < 0 || id >= e.numEmbed {
				return nil, fmt.Errorf("nn: embedding id %d out of range [0, %d)", id, e.numEmbed)
			}
			src := table[id*e.embedDim : (id+1)*e.embedDim]
			dst := data[(b*seq+s)*e.embedDim : (b*seq+s+1)*e.embedDim]
			copy(dst, src)
		}
	}
	return out, nil
}

// Rows returns the first n table rows as an [n, dim] tensor, the positional
// lookup for a length-n sequence.
func (e *Embedding) Rows(n int) (*tensor.Tensor, error) {
	if n < 1 || n > e.numEmbed {
		return nil, fmt.Errorf("nn: embedding row count %d out of range [1, %d]", n, e.numEmbed)
	}
	return tensor.FromSlice(e.weight.Tensor().Data()[:n*e.embedDim], n, e.embedDim)
}

// Parameters returns the embedding table.
func (e *Embedding) Parameters() []*Parameter {
	return []*Parameter{e.weight}
}
