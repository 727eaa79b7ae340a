package generate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSamplerGreedyPicksArgmax(t *testing.T) {
	s := NewSampler(DefaultSamplingConfig())

	assert.Equal(t, 1, s.Sample([]float32{1, 3, 2}))
	assert.Equal(t, 3, s.Sample([]float32{-5, -2, -9, 0}))
	assert.Equal(t, 0, s.Sample([]float32{7}))
}

func TestSamplerGreedyTiesGoToLowestID(t *testing.T) {
	s := NewSampler(SamplingConfig{Temperature: 0})

	assert.Equal(t, 0, s.Sample([]float32{5, 5, 1}))
	assert.Equal(t, 1, s.Sample([]float32{1, 4, 4, 4}))
}

func TestSamplerGreedyIgnoresSeed(t *testing.T) {
	a := NewSampler(SamplingConfig{Temperature: 0, Seed: 1})
	b := NewSampler(SamplingConfig{Temperature: 0, Seed: 2})
	logits := []float32{0.3, 0.9, 0.1}

	for i := 0; i < 5; i++ {
		assert.Equal(t, a.Sample(logits), b.Sample(logits))
	}
}

func TestSamplerDeterministicPerSeed(t *testing.T) {
	a := NewSampler(SamplingConfig{Temperature: 1, Seed: 11})
	b := NewSampler(SamplingConfig{Temperature: 1, Seed: 11})
	logits := []float32{0.5, 1.5, 0.2, 2.0, 1.0}

	for i := 0; i < 20; i++ {
		assert.Equal(t, a.Sample(logits), b.Sample(logits))
	}
}

func TestSamplerFollowsPeakedDistribution(t *testing.T) {
	s := NewSampler(SamplingConfig{Temperature: 1, Seed: 3})
	logits := []float32{0, 0, 20}

	for i := 0; i < 50; i++ {
		assert.Equal(t, 2, s.Sample(logits))
	}
}

func TestSamplerHighTemperatureSpreads(t *testing.T) {
	s := NewSampler(SamplingConfig{Temperature: 100, Seed: 4})
	logits := []float32{0, 0, 20}

	seen := map[int]bool{}
	for i := 0; i < 200; i++ {
		seen[s.Sample(logits)] = true
	}
	assert.Greater(t, len(seen), 1, "temperature 100 should not collapse to one id")
}

func TestSamplerDoesNotModifyLogits(t *testing.T) {
	s := NewSampler(SamplingConfig{Temperature: 2, TopK: 2, Seed: 5})
	logits := []float32{1, 2, 3, 4}

	s.Sample(logits)
	assert.Equal(t, []float32{1, 2, 3, 4}, logits)
}

func TestSamplerTopKRestrictsCandidates(t *testing.T) {
	s := NewSampler(SamplingConfig{Temperature: 5, TopK: 2, Seed: 6})
	logits := []float32{10, 9, 8, 1, 0}

	for i := 0; i < 100; i++ {
		id := s.Sample(logits)
		assert.Contains(t, []int{0, 1}, id)
	}
}

func TestSamplerTopKBeyondVocabIsNoOp(t *testing.T) {
	restricted := NewSampler(SamplingConfig{Temperature: 1, TopK: 50, Seed: 7})
	free := NewSampler(SamplingConfig{Temperature: 1, TopK: 0, Seed: 7})
	logits := []float32{1, 2, 3}

	for i := 0; i < 20; i++ {
		assert.Equal(t, free.Sample(logits), restricted.Sample(logits))
	}
}
