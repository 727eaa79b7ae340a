// Package main provides the ember CLI: it assembles a GPT from the
// command-line architecture flags and runs the generation loop against it.
//
// Weights are randomly initialized from -seed, so the continuation is
// fluent-looking noise; the tool exists to exercise the full pipeline
// (tokenize, forward, sample, decode) end to end.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/ember-ml/ember/generate"
	"github.com/ember-ml/ember/model"
	"github.com/ember-ml/ember/tokenizer"
)

func main() {
	prompt := flag.String("prompt", "Hello, I am", "input prompt")
	maxTokens := flag.Int("max-tokens", 25, "maximum tokens to generate")
	temp := flag.Float64("temperature", 0, "sampling temperature (0 = greedy)")
	topK := flag.Int("top-k", 0, "restrict sampling to the K best tokens (0 = disabled)")
	seed := flag.Int64("seed", 42, "weight and sampling seed")
	contextLen := flag.Int("context", 1024, "context length")
	embedDim := flag.Int("embed", 768, "embedding width")
	heads := flag.Int("heads", 12, "attention heads")
	layers := flag.Int("layers", 12, "transformer layers")
	drop := flag.Float64("drop", 0.1, "dropout rate")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).
		With().Timestamp().Logger()

	cfg := model.ConfigGPT124M()
	cfg.ContextLength = *contextLen
	cfg.EmbedDim = *embedDim
	cfg.NumHeads = *heads
	cfg.NumLayers = *layers
	cfg.DropRate = float32(*drop)
	cfg.Seed = *seed

	log.Debug().
		Int("vocab", cfg.VocabSize).
		Int("context", cfg.ContextLength).
		Int("embed", cfg.EmbedDim).
		Int("heads", cfg.NumHeads).
		Int("layers", cfg.NumLayers).
		Msg("building model")

	start := time.Now()
	gpt, err := model.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("building model")
	}
	log.Info().
		Int("parameters", gpt.NumParams()).
		Dur("took", time.Since(start)).
		Msg("model ready")
	log.Warn().Msg("weights are random; the continuation will be noise")

	tok, err := tokenizer.NewGPT2()
	if err != nil {
		log.Fatal().Err(err).Msg("loading tokenizer")
	}

	sampler := generate.NewSampler(generate.SamplingConfig{
		Temperature: float32(*temp),
		TopK:        *topK,
		Seed:        *seed,
	})
	gen := generate.NewGenerator(gpt, tok, sampler,
		generate.WithStopToken(tokenizer.EndOfTextID))

	ids, err := tok.Encode(*prompt)
	if err != nil {
		log.Fatal().Err(err).Msg("encoding prompt")
	}
	if len(ids) == 0 {
		log.Fatal().Str("prompt", *prompt).Msg("prompt encodes to no tokens")
	}
	log.Debug().Ints("prompt_ids", ids).Msg("encoded prompt")

	start = time.Now()
	out, err := gen.GenerateTokens(ids, *maxTokens)
	if err != nil {
		log.Fatal().Err(err).Msg("generating")
	}
	elapsed := time.Since(start)

	text, err := tok.Decode(out)
	if err != nil {
		log.Fatal().Err(err).Msg("decoding output")
	}

	newTokens := len(out) - len(ids)
	log.Info().
		Int("prompt_tokens", len(ids)).
		Int("new_tokens", newTokens).
		Dur("took", elapsed).
		Float64("tokens_per_sec", float64(newTokens)/elapsed.Seconds()).
		Msg("generation complete")

	fmt.Println(text)
}
