package tokenizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newGPT2ForTest loads r50k_base, skipping when the merge tables cannot be
// fetched or found in TIKTOKEN_CACHE_DIR.
func newGPT2ForTest(t *testing.T) *Encoding {
	t.Helper()
	tok, err := NewGPT2()
	if err != nil {
		t.Skipf("r50k_base data unavailable: %v", err)
	}
	return tok
}

func TestGPT2KnownIDs(t *testing.T) {
	tok := newGPT2ForTest(t)

	ids, err := tok.Encode("every effort moves you")
	require.NoError(t, err)
	assert.Equal(t, []int{16833, 3626, 6100, 345}, ids)
}

func TestGPT2RoundTrip(t *testing.T) {
	tok := newGPT2ForTest(t)

	texts := []string{
		"Hello, world!",
		"every effort moves you",
		"  spaces,  tabs\tand\nnewlines",
		"héllo wörld — ümlauts",
	}
	for _, text := range texts {
		ids, err := tok.Encode(text)
		require.NoError(t, err)
		got, err := tok.Decode(ids)
		require.NoError(t, err)
		assert.Equal(t, text, got)
	}
}

func TestGPT2IDsWithinVocab(t *testing.T) {
	tok := newGPT2ForTest(t)

	ids, err := tok.Encode("The quick brown fox jumps over the lazy dog.")
	require.NoError(t, err)
	require.NotEmpty(t, ids)
	for _, id := range ids {
		assert.GreaterOrEqual(t, id, 0)
		assert.Less(t, id, tok.VocabSize())
	}
}

func TestGPT2EndOfText(t *testing.T) {
	tok := newGPT2ForTest(t)

	ids, err := tok.Encode("<|endoftext|>")
	require.NoError(t, err)
	assert.Equal(t, []int{EndOfTextID}, ids)

	text, err := tok.Decode([]int{EndOfTextID})
	require.NoError(t, err)
	assert.Equal(t, "<|endoftext|>", text)
}

func TestGPT2DecodeRejectsOutOfRangeIDs(t *testing.T) {
	tok := newGPT2ForTest(t)

	for _, ids := range [][]int{{-1}, {50257}, {16833, 999999}} {
		_, err := tok.Decode(ids)
		assert.Error(t, err, "Decode(%v)", ids)
	}

	// The top of the id range is the document separator, still decodable.
	text, err := tok.Decode([]int{EndOfTextID})
	require.NoError(t, err)
	assert.Equal(t, "<|endoftext|>", text)
}

func TestGPT2EncodeEmpty(t *testing.T) {
	tok := newGPT2ForTest(t)

	ids, err := tok.Encode("")
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestGPT2Metadata(t *testing.T) {
	tok := newGPT2ForTest(t)

	assert.Equal(t, 50257, tok.VocabSize())
	assert.Equal(t, 50256, tok.EOSToken())
	assert.Equal(t, "r50k_base", tok.Name())
}

func TestNewEncodingUnknownName(t *testing.T) {
	_, err := NewEncoding("no_such_encoding")
	assert.Error(t, err)
}

func TestDecodeChecksIDsBeforeDecoding(t *testing.T) {
	// The range check runs before the merge tables are consulted, so a bad
	// id is reported even when the tables were never loaded.
	e := &Encoding{name: encodingR50kBase}

	_, err := e.Decode([]int{50257})
	assert.ErrorContains(t, err, "50257")
	_, err = e.Decode([]int{-1})
	assert.Error(t, err)
}
