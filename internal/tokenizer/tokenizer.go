// Package tokenizer converts between text and the token ids the model
// consumes.
//
// GPT-2 uses the byte-pair encoding published as r50k_base: 50257 tokens,
// with <|endoftext|> (id 50256) doubling as the end-of-sequence marker.
// Encoding and decoding are delegated to pkoukk/tiktoken-go, which carries
// the published merge tables.
package tokenizer

// Tokenizer converts between text and token ids.
//
// Encode and Decode are inverses over text the vocabulary can represent.
// Ids returned by Encode always lie in [0, VocabSize).
type Tokenizer interface {
	// Encode converts text to token ids.
	Encode(text string) ([]int, error)

	// Decode converts token ids back to text.
	Decode(ids []int) (string, error)

	// VocabSize returns the number of distinct token ids.
	VocabSize() int

	// EOSToken returns the id that marks the end of a document, or -1
	// when the encoding has none.
	EOSToken() int

	// Name returns the encoding name, e.g. "r50k_base".
	Name() string
}
