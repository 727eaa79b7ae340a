package tokenizer

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

const (
	// encodingR50kBase is the GPT-2 encoding.
	encodingR50kBase = "r50k_base"
	// encodingP50kBase is the GPT-3/Codex encoding.
	encodingP50kBase = "p50k_base"
	// encodingCL100kBase is the GPT-4 and GPT-3.5-turbo encoding.
	encodingCL100kBase = "cl100k_base"

	// endOfText is the literal form of the GPT-2 document separator.
	endOfText = "<|endoftext|>"
	// EndOfTextID is its token id under the 50k encodings.
	EndOfTextID = 50256
)

// Encoding wraps one pkoukk/tiktoken-go encoding behind the Tokenizer
// interface.
type Encoding struct {
	enc  *tiktoken.Tiktoken
	name string
}

var _ Tokenizer = (*Encoding)(nil)

// NewEncoding loads the named tiktoken encoding.
//
// The merge tables are fetched on first use and cached; set
// TIKTOKEN_CACHE_DIR to point at a pre-populated cache for offline runs.
func NewEncoding(name string) (*Encoding, error) {
	enc, err := tiktoken.GetEncoding(name)
	if err != nil {
		return nil, fmt.Errorf("tokenizer: loading encoding %q: %w", name, err)
	}
	return &Encoding{enc: enc, name: name}, nil
}

// NewGPT2 loads the r50k_base encoding GPT-2 was trained with.
func NewGPT2() (*Encoding, error) {
	return NewEncoding(encodingR50kBase)
}

// Encode converts text to token ids. The literal <|endoftext|> is encoded
// as its special id rather than split into pieces.
func (e *Encoding) Encode(text string) ([]int, error) {
	return e.enc.Encode(text, []string{endOfText}, nil), nil
}

// Decode converts token ids back to text. Ids outside the vocabulary are
// rejected; the underlying decoder would otherwise drop them silently.
func (e *Encoding) Decode(ids []int) (string, error) {
	limit := e.VocabSize()
	for _, id := range ids {
		if id < 0 || (limit > 0 && id >= limit) {
			return "", fmt.Errorf("tokenizer: id %d outside the %s vocabulary [0, %d)", id, e.name, limit)
		}
	}
	return e.enc.Decode(ids), nil
}

// VocabSize returns the number of distinct token ids, special ids included.
func (e *Encoding) VocabSize() int {
	switch e.name {
	case encodingR50kBase:
		return 50257
	case encodingP50kBase:
		return 50281
	case encodingCL100kBase:
		return 100277
	default:
		return 0
	}
}

// EOSToken returns the <|endoftext|> id, or -1 for encodings without one.
func (e *Encoding) EOSToken() int {
	switch e.name {
	case encodingR50kBase, encodingP50kBase:
		return EndOfTextID
	case encodingCL100kBase:
		return 100257
	default:
		return -1
	}
}

// Name returns the encoding name.
func (e *Encoding) Name() string {
	return e.name
}
