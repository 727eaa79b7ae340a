package model

import "fmt"

// Config holds the architecture hyperparameters of a GPT model.
type Config struct {
	VocabSize     int     // Token id range, [0, VocabSize).
	ContextLength int     // Longest sequence the model accepts.
	EmbedDim      int     // Width of the residual stream.
	NumHeads      int     // Attention heads per block; must divide EmbedDim.
	NumLayers     int     // Transformer block count.
	DropRate      float32 // Dropout probability in [0, 1).
	QKVBias       bool    // Bias rows on the query/key/value projections.
	Seed          int64   // Source for weight init and dropout masks.
}

// ConfigGPT124M returns the 124M-parameter GPT-2 architecture.
func ConfigGPT124M() Config {
	return Config{
		VocabSize:     50257,
		ContextLength: 1024,
		EmbedDim:      768,
		NumHeads:      12,
		NumLayers:     12,
		DropRate:      0.1,
		QKVBias:       false,
	}
}

// Validate reports the first configuration field that would make
// construction impossible.
func (c Config) Validate() error {
	if c.VocabSize < 1 {
		return fmt.Errorf("model: vocab size must be positive, got %d", c.VocabSize)
	}
	if c.ContextLength < 1 {
		return fmt.Errorf("model: context length must be positive, got %d", c.ContextLength)
	}
	if c.EmbedDim < 1 {
		return fmt.Errorf("model: embedding width must be positive, got %d", c.EmbedDim)
	}
	if c.NumHeads < 1 {
		return fmt.Errorf("model: head count must be positive, got %d", c.NumHeads)
	}
	if c.EmbedDim%c.NumHeads != 0 {
		return fmt.Errorf("model: embedding width %d must be divisible by head count %d",
			c.EmbedDim, c.NumHeads)
	}
	if c.NumLayers < 1 {
		return fmt.Errorf("model: layer count must be positive, got %d", c.NumLayers)
	}
	if c.DropRate < 0 || c.DropRate >= 1 {
		return fmt.Errorf("model: dropout rate must be in [0, 1), got %v", c.DropRate)
	}
	return nil
}
