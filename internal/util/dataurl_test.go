package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeDataURL(t *testing.T) {
	data, mime, err := DecodeDataURL("data:image/png;base64,aGVsbG8=", "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "image/png", mime)
	assert.Equal(t, []byte("hello"), data)

	data, mime, err = DecodeDataURL("aGVsbG8=", "audio/wav")
	require.NoError(t, err)
	assert.Equal(t, "audio/wav", mime)
	assert.Equal(t, []byte("hello"), data)

	data, _, err = DecodeDataURL("  ", "image/jpeg")
	require.NoError(t, err)
	assert.Nil(t, data)

	_, _, err = DecodeDataURL("data:image/png,plain", "")
	assert.ErrorIs(t, err, ErrInvalidDataURL)

	_, _, err = DecodeDataURL("***", "")
	assert.ErrorIs(t, err, ErrInvalidDataURL)
}

func TestEncodeDataURL(t *testing.T) {
	assert.Equal(t, "data:image/png;base64,aGVsbG8=", EncodeDataURL("image/png", []byte("hello")))
	assert.Empty(t, EncodeDataURL("image/png", nil))
}
