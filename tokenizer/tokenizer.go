// Package tokenizer provides the public API for converting between text and
// token ids.
//
// The model pairs with GPT-2's published byte-pair encoding, r50k_base.
//
// Example usage:
//
//	tok, err := tokenizer.NewGPT2()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	ids, _ := tok.Encode("every effort moves you") // [16833 3626 6100 345]
//	text, _ := tok.Decode(ids)
package tokenizer

import (
	"github.com/ember-ml/ember/internal/tokenizer"
)

// EndOfTextID is the id of <|endoftext|> under the 50k encodings; GPT-2 uses
// it as the document separator and end-of-sequence marker.
const EndOfTextID = tokenizer.EndOfTextID

// Tokenizer converts between text and token ids.
type Tokenizer = tokenizer.Tokenizer

// Encoding wraps one tiktoken encoding behind the Tokenizer interface.
type Encoding = tokenizer.Encoding

// NewEncoding loads the named tiktoken encoding, e.g. "r50k_base".
func NewEncoding(name string) (*Encoding, error) {
	return tokenizer.NewEncoding(name)
}

// NewGPT2 loads the r50k_base encoding GPT-2 was trained with.
func NewGPT2() (*Encoding, error) {
	return tokenizer.NewGPT2()
}
