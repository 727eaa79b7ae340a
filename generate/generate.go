// Package generate provides the public API for autoregressive decoding.
//
// Components:
//   - Sampler: greedy or tempered sampling over next-token logits
//   - Generator: the prompt → tokens → text loop with context cropping
//
// Example usage:
//
//	sampler := generate.NewSampler(generate.SamplingConfig{
//	    Temperature: 0.8,
//	    TopK:        40,
//	    Seed:        42,
//	})
//	gen := generate.NewGenerator(gpt, tok, sampler,
//	    generate.WithStopToken(tokenizer.EndOfTextID))
//	text, err := gen.Generate("every effort moves you", 25)
package generate

import (
	"github.com/ember-ml/ember/internal/generate"
	"github.com/ember-ml/ember/internal/tokenizer"
)

// SamplingConfig controls how the next token id is chosen from a logit row.
type SamplingConfig = generate.SamplingConfig

// DefaultSamplingConfig returns a greedy configuration.
func DefaultSamplingConfig() SamplingConfig {
	return generate.DefaultSamplingConfig()
}

// Sampler picks token ids from vocabulary-sized logit rows.
type Sampler = generate.Sampler

// NewSampler creates a sampler for the given configuration.
func NewSampler(config SamplingConfig) *Sampler {
	return generate.NewSampler(config)
}

// LanguageModel is the model surface the generation loop drives.
type LanguageModel = generate.LanguageModel

// Generator runs autoregressive decoding against a LanguageModel.
type Generator = generate.Generator

// GeneratorOption configures a Generator.
type GeneratorOption = generate.GeneratorOption

// WithStopToken ends generation when the model emits id.
func WithStopToken(id int) GeneratorOption {
	return generate.WithStopToken(id)
}

// NewGenerator creates a generator. tok is only needed by Generate; id-level
// callers may pass nil.
func NewGenerator(model LanguageModel, tok tokenizer.Tokenizer, sampler *Sampler,
	opts ...GeneratorOption) *Generator {
	return generate.NewGenerator(model, tok, sampler, opts...)
}
