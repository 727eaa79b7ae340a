// Package model assembles the GPT decoder stack from the nn building blocks.
//
// A GPT maps batches of token ids to next-token logits:
//
//	ids [batch, seq] -> embeddings [batch, seq, emb] -> blocks -> logits [batch, seq, vocab]
//
// Weights are randomly initialized from the configured seed; the forward
// pass is deterministic given the seed and the training flag.
package model

import (
	"fmt"
	"math/rand"

	"github.com/ember-ml/ember/internal/nn"
	"github.com/ember-ml/ember/internal/tensor"
)

// GPT is a decoder-only transformer language model.
//
// Token and positional embeddings are summed and dropped out, carried
// through NumLayers pre-norm blocks, normalized once more, and projected
// onto the vocabulary by a bias-free output head.
type GPT struct {
	cfg Config

	tokEmb    *nn.Embedding
	posEmb    *nn.Embedding
	dropEmb   *nn.Dropout
	blocks    *nn.Sequential
	finalNorm *nn.LayerNorm
	outHead   *nn.Linear
}

// New constructs a GPT with random weights drawn from cfg.Seed.
func New(cfg Config) (*GPT, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(cfg.Seed))

	tokEmb, err := nn.NewEmbedding(cfg.VocabSize, cfg.EmbedDim, rng)
	if err != nil {
		return nil, fmt.Errorf("model: token embedding: %w", err)
	}
	posEmb, err := nn.NewEmbedding(cfg.ContextLength, cfg.EmbedDim, rng)
	if err != nil {
		return nil, fmt.Errorf("model: positional embedding: %w", err)
	}
	dropEmb, err := nn.NewDropout(cfg.DropRate, rng)
	if err != nil {
		return nil, fmt.Errorf("model: embedding dropout: %w", err)
	}

	blocks := nn.NewSequential()
	for i := 0; i < cfg.NumLayers; i++ {
		block, err := nn.NewTransformerBlock(nn.BlockConfig{
			EmbedDim:      cfg.EmbedDim,
			ContextLength: cfg.ContextLength,
			NumHeads:      cfg.NumHeads,
			DropRate:      cfg.DropRate,
			QKVBias:       cfg.QKVBias,
		}, rng)
		if err != nil {
			return nil, fmt.Errorf("model: block %d: %w", i, err)
		}
		blocks.Add(block)
	}

	finalNorm, err := nn.NewLayerNorm(cfg.EmbedDim)
	if err != nil {
		return nil, fmt.Errorf("model: final norm: %w", err)
	}
	outHead, err := nn.NewLinear(cfg.EmbedDim, cfg.VocabSize, false, rng)
	if err != nil {
		return nil, fmt.Errorf("model: output head: %w", err)
	}

	return &GPT{
		cfg:       cfg,
		tokEmb:    tokEmb,
		posEmb:    posEmb,
		dropEmb:   dropEmb,
		blocks:    blocks,
		finalNorm: finalNorm,
		outHead:   outHead,
	}, nil
}

// Config returns the architecture the model was built with.
func (g *GPT) Config() Config {
	return g.cfg
}

// ContextLength returns the longest sequence the model accepts.
func (g *GPT) ContextLength() int {
	return g.cfg.ContextLength
}

// Forward maps token ids [batch, seq] to logits [batch, seq, vocab].
//
// ids must be rectangular and non-empty, every id must lie in
// [0, VocabSize), and seq may not exceed the context length.
func (g *GPT) Forward(ids [][]int, training bool) (*tensor.Tensor, error) {
	if len(ids) == 0 || len(ids[0]) == 0 {
		return nil, fmt.Errorf("model: token ids must be non-empty")
	}
	seq := len(ids[0])
	if seq > g.cfg.ContextLength {
		return nil, fmt.Errorf("model: sequence length %d exceeds context length %d",
			seq, g.cfg.ContextLength)
	}

	tok, err := g.tokEmb.Forward(ids)
	if err != nil {
		return nil, fmt.Errorf("model: token embedding: %w", err)
	}
	pos, err := g.posEmb.Rows(seq)
	if err != nil {
		return nil, fmt.Errorf("model: positional embedding: %w", err)
	}
	x, err := tensor.Add(tok, pos)
	if err != nil {
		return nil, fmt.Errorf("model: embedding sum: %w", err)
	}

	x, err = g.dropEmb.Forward(x, training)
	if err != nil {
		return nil, err
	}
	x, err = g.blocks.Forward(x, training)
	if err != nil {
		return nil, fmt.Errorf("model: %w", err)
	}
	x, err = g.finalNorm.Forward(x, training)
	if err != nil {
		return nil, fmt.Errorf("model: final norm: %w", err)
	}
	logits, err := g.outHead.Forward(x, training)
	if err != nil {
		return nil, fmt.Errorf("model: output head: %w", err)
	}
	return logits, nil
}

// Parameters returns every learnable tensor in the model.
func (g *GPT) Parameters() []*nn.Parameter {
	var params []*nn.Parameter
	params = append(params, g.tokEmb.Parameters()...)
	params = append(params, g.posEmb.Parameters()...)
	params = append(params, g.blocks.Parameters()...)
	params = append(params, g.finalNorm.Parameters()...)
	params = append(params, g.outHead.Parameters()...)
	return params
}

// NumParams returns the total number of scalar weights.
func (g *GPT) NumParams() int {
	total := 0
	for _, p := range g.Parameters() {
		total += p.Tensor().NumElements()
	}
	return total
}
