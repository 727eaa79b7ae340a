package generate

import (
	"fmt"

	"github.com/ember-ml/ember/internal/tensor"
	"github.com/ember-ml/ember/internal/tokenizer"
)

// LanguageModel is the model surface the generation loop drives.
type LanguageModel interface {
	// Forward maps token ids [batch, seq] to logits [batch, seq, vocab].
	Forward(ids [][]int, training bool) (*tensor.Tensor, error)

	// ContextLength returns the longest sequence Forward accepts.
	ContextLength() int
}

// Generator runs autoregressive decoding against a LanguageModel.
//
// When the prompt grows past the model's context length only the trailing
// window is fed forward, so generation can continue indefinitely.
type Generator struct {
	model     LanguageModel
	tokenizer tokenizer.Tokenizer
	sampler   *Sampler
	stopToken int
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithStopToken ends generation when the model emits id; the id itself is
// not kept. GPT-2's document separator is tokenizer.EndOfTextID.
func WithStopToken(id int) GeneratorOption {
	return func(g *Generator) {
		g.stopToken = id
	}
}

// NewGenerator creates a generator. tok is only needed by Generate; id-level
// callers may pass nil.
func NewGenerator(model LanguageModel, tok tokenizer.Tokenizer, sampler *Sampler,
	opts ...GeneratorOption) *Generator {

	g := &Generator{
		model:     model,
		tokenizer: tok,
		sampler:   sampler,
		stopToken: -1,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// GenerateTokens extends ids by up to maxNew sampled tokens and returns the
// full sequence, prompt included. The input slice is not modified.
func (g *Generator) GenerateTokens(ids []int, maxNew int) ([]int, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("generate: prompt must not be empty")
	}

	out := append([]int(nil), ids...)
	ctx := g.model.ContextLength()

	for i := 0; i < maxNew; i++ {
		window := out
		if len(window) > ctx {
			window = window[len(window)-ctx:]
		}

		logits, err := g.model.Forward([][]int{window}, false)
		if err != nil {
			return nil, fmt.Errorf("generate: %w", err)
		}
		if logits.Dims() != 3 || logits.Dim(0) != 1 || logits.Dim(1) != len(window) {
			return nil, fmt.Errorf("generate: model returned logits shaped %v for a [1, %d] prompt",
				logits.Shape(), len(window))
		}

		next := g.sampler.Sample(logits.RowAt(0, len(window)-1))
		if next == g.stopToken {
			break
		}
		out = append(out, next)
	}
	return out, nil
}

// Generate encodes prompt, extends it by up to maxNew tokens, and decodes
// the whole sequence back to text.
func (g *Generator) Generate(prompt string, maxNew int) (string, error) {
	ids, err := g.tokenizer.Encode(prompt)
	if err != nil {
		return "", fmt.Errorf("generate: encoding prompt: %w", err)
	}
	if len(ids) == 0 {
		return "", fmt.Errorf("generate: prompt %q encodes to no tokens", prompt)
	}

	out, err := g.GenerateTokens(ids, maxNew)
	if err != nil {
		return "", err
	}

	text, err := g.tokenizer.Decode(out)
	if err != nil {
		return "", fmt.Errorf("generate: decoding output: %w", err)
	}
	return text, nil
}
