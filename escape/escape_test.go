package escape_test

import (
	"testing"

	"github.com/basecode-lang/basecode-sub005/escape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeStructuralEscapes(t *testing.T) {
	cases := map[string]byte{
		"n": '\n', "t": '\t', "r": '\r', "\\": '\\', "a": '\a', "b": '\b', "v": '\v',
	}
	for in, want := range cases {
		b, n, err := escape.Decode(in)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
		assert.Equal(t, []byte{want}, b)
	}
}

func TestDecodeHexEscape(t *testing.T) {
	b, n, err := escape.Decode("x41")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, []byte("A"), b)
}

func TestDecodeUnicodeEscape(t *testing.T) {
	b, n, err := escape.Decode("u00e9") // é
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, "é", string(b))
}

func TestDecodeLongUnicodeEscape(t *testing.T) {
	b, n, err := escape.Decode("U0001F600")
	require.NoError(t, err)
	assert.Equal(t, 9, n)
	assert.Equal(t, "😀", string(b))
}

func TestDecodeDecimalEscape(t *testing.T) {
	b, n, err := escape.Decode("065")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, []byte("A"), b)
}

func TestDecodeInvalidCodePoint(t *testing.T) {
	_, _, err := escape.Decode("uD800")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid unicode codepoint")
}

func TestDecodeUnknownEscapeFails(t *testing.T) {
	_, _, err := escape.Decode("q")
	require.Error(t, err)
}
