package vocab

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreRoundTrip(t *testing.T) {
	cfg := testConfig(t)
	store := NewStore(cfg)
	require.NoError(t, store.Write([]rune{'a', 'b', '？', ' '}))

	tokenIndices, err := store.TokenIndices()
	require.NoError(t, err)
	indicesToken, err := store.IndicesToken()
	require.NoError(t, err)

	require.Len(t, tokenIndices, 4)
	require.Len(t, indicesToken, 4)
	for tok, idx := range tokenIndices {
		assert.Equal(t, tok, indicesToken[idx])
	}
	assert.Equal(t, 0, tokenIndices["a"])
	assert.Equal(t, 3, tokenIndices[" "])
}

func TestStoreLoadBeforeBuild(t *testing.T) {
	store := NewStore(testConfig(t))

	_, err := store.TokenIndices()
	assert.True(t, errors.Is(err, ErrNotBuilt))

	_, err = store.Chars()
	assert.True(t, errors.Is(err, ErrNotBuilt))
}

func TestStoreCharsCanonicalOrder(t *testing.T) {
	cfg := testConfig(t)
	store := NewStore(cfg)
	require.NoError(t, store.Write([]rune{' ', 'a', 'b', '？'}))

	chars, err := store.Chars()
	require.NoError(t, err)
	assert.Equal(t, []rune{' ', 'a', 'b', '？'}, chars)
}

func TestStoreVocabSize(t *testing.T) {
	cfg := testConfig(t)
	store := NewStore(cfg)
	require.NoError(t, store.Write([]rune{'a', '？', ' '}))

	size, err := store.VocabSize()
	require.NoError(t, err)
	assert.Equal(t, 3, size)
}
