// Package generate turns a language model's next-token logits into token
// sequences and text.
//
// The loop is autoregressive: feed the visible window of ids forward, pick
// the next id from the last position's logits, append, repeat. Selection is
// greedy at temperature zero and samples the tempered softmax distribution
// otherwise.
package generate

import (
	"math"
	"math/rand"
	"sort"
)

// SamplingConfig controls how the next token id is chosen from a logit row.
type SamplingConfig struct {
	// Temperature rescales logits before sampling: above 1 flattens the
	// distribution, below 1 sharpens it. At or below zero decoding is
	// greedy and the rng is never consulted.
	Temperature float32

	// TopK, when positive, restricts sampling to the K highest logits.
	TopK int

	// Seed makes sampling reproducible. Negative seeds draw one at random.
	Seed int64
}

// DefaultSamplingConfig returns a greedy configuration.
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{Temperature: 0, TopK: 0, Seed: -1}
}

// Sampler picks token ids from vocabulary-sized logit rows.
type Sampler struct {
	config SamplingConfig
	rng    *rand.Rand
}

// NewSampler creates a sampler for the given configuration.
func NewSampler(config SamplingConfig) *Sampler {
	var rng *rand.Rand
	if config.Seed >= 0 {
		rng = rand.New(rand.NewSource(config.Seed))
	} else {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return &Sampler{config: config, rng: rng}
}

// Sample returns the chosen id for one non-empty logit row. The row is not
// modified.
func (s *Sampler) Sample(logits []float32) int {
	if s.config.Temperature <= 0 {
		return argmax(logits)
	}

	scaled := make([]float64, len(logits))
	for i, x := range logits {
		scaled[i] = float64(x) / float64(s.config.Temperature)
	}
	if k := s.config.TopK; k > 0 && k < len(scaled) {
		topKFilter(scaled, k)
	}
	softmaxInPlace(scaled)
	return s.multinomial(scaled)
}

// argmax returns the index of the largest logit; ties go to the lowest id.
func argmax(logits []float32) int {
	best := 0
	for i, v := range logits[1:] {
		if v > logits[best] {
			best = i + 1
		}
	}
	return best
}

// topKFilter pushes everything below the k-th largest value to -Inf.
// Values tied with the threshold all survive.
func topKFilter(scaled []float64, k int) {
	sorted := append([]float64(nil), scaled...)
	sort.Sort(sort.Reverse(sort.Float64Slice(sorted)))
	threshold := sorted[k-1]
	for i, v := range scaled {
		if v < threshold {
			scaled[i] = math.Inf(-1)
		}
	}
}

// softmaxInPlace normalizes scaled logits into probabilities. Filtered -Inf
// entries come out as exact zeros.
func softmaxInPlace(scaled []float64) {
	max := math.Inf(-1)
	for _, v := range scaled {
		if v > max {
			max = v
		}
	}
	var sum float64
	for i, v := range scaled {
		scaled[i] = math.Exp(v - max)
		sum += scaled[i]
	}
	for i := range scaled {
		scaled[i] /= sum
	}
}

// multinomial draws one index from a probability vector.
func (s *Sampler) multinomial(probs []float64) int {
	r := s.rng.Float64()
	var cum float64
	last := 0
	for i, p := range probs {
		if p == 0 {
			continue
		}
		last = i
		cum += p
		if r < cum {
			return i
		}
	}
	// Rounding can leave cum marginally below 1; the last candidate absorbs
	// the remainder.
	return last
}
