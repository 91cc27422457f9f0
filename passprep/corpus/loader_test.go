package corpus

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const toyCorpus = "id\tabc\txyz\nid\tab\txy\nid\ta\tx\n"

func TestStatistics(t *testing.T) {
	loader, err := NewLazyLoader(writeCorpus(t, toyCorpus), "\t")
	require.NoError(t, err)
	defer loader.Close()

	stats, err := loader.Statistics()
	require.NoError(t, err)
	assert.Equal(t, 3, stats.MaxLenX)
	assert.Equal(t, 3, stats.MaxLenY)
	assert.Equal(t, 3, stats.NumLines)
}

func TestStatisticsNoDiscardFiltering(t *testing.T) {
	// Oversized and space-containing records still count at this stage.
	loader, err := NewLazyLoader(writeCorpus(t, "id\tabcdefghijklmnop\tw w\n"), "\t")
	require.NoError(t, err)
	defer loader.Close()

	stats, err := loader.Statistics()
	require.NoError(t, err)
	assert.Equal(t, 16, stats.MaxLenX)
	assert.Equal(t, 3, stats.MaxLenY)
	assert.Equal(t, 1, stats.NumLines)
}

func TestNextRestartsAtEndOfPass(t *testing.T) {
	loader, err := NewLazyLoader(writeCorpus(t, toyCorpus), "\t")
	require.NoError(t, err)
	defer loader.Close()

	first, err := loader.Next()
	require.NoError(t, err)

	// Drive past the boundary twice over: never errors, and the 4th call
	// wraps around to the same pair as the 1st.
	var fourth Pair
	for i := 1; i < 6; i++ {
		pair, err := loader.Next()
		require.NoError(t, err, "call %d", i+1)
		if i == 3 {
			fourth = pair
		}
	}
	assert.Equal(t, first, fourth)
}

func TestStateTransitions(t *testing.T) {
	loader, err := NewLazyLoader(writeCorpus(t, toyCorpus), "\t")
	require.NoError(t, err)
	defer loader.Close()

	assert.Equal(t, Streaming, loader.State())

	_, err = loader.Statistics()
	require.NoError(t, err)
	assert.Equal(t, Exhausted, loader.State())

	_, err = loader.Next()
	require.NoError(t, err)
	assert.Equal(t, Streaming, loader.State())
}

func TestNextAfterStatistics(t *testing.T) {
	// Statistics drains the stream; Next must transparently start a fresh pass.
	loader, err := NewLazyLoader(writeCorpus(t, toyCorpus), "\t")
	require.NoError(t, err)
	defer loader.Close()

	_, err = loader.Statistics()
	require.NoError(t, err)

	pair, err := loader.Next()
	require.NoError(t, err)
	assert.Equal(t, Pair{X: "abc", Y: "xyz"}, pair)
}

func TestNextEmptyCorpus(t *testing.T) {
	loader, err := NewLazyLoader(writeCorpus(t, ""), "\t")
	require.NoError(t, err)
	defer loader.Close()

	_, err = loader.Next()
	assert.True(t, errors.Is(err, ErrEmptyCorpus))
}

func TestNextPropagatesParseErrors(t *testing.T) {
	loader, err := NewLazyLoader(writeCorpus(t, "bad line\n"), "\t")
	require.NoError(t, err)
	defer loader.Close()

	_, err = loader.Next()
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrEmptyCorpus)
}
