package corpus

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCorpus(t *testing.T, lines string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "corpus.txt")
	require.NoError(t, os.WriteFile(path, []byte(lines), 0o644))
	return path
}

func TestStreamYieldsPairsInOrder(t *testing.T) {
	path := writeCorpus(t, "id1\tabc\txyz\nid2\tab\txy\n")

	stream, err := Open(path, "\t")
	require.NoError(t, err)
	defer stream.Close()

	pair, err := stream.Next()
	require.NoError(t, err)
	assert.Equal(t, Pair{X: "abc", Y: "xyz"}, pair)

	pair, err = stream.Next()
	require.NoError(t, err)
	assert.Equal(t, Pair{X: "ab", Y: "xy"}, pair)

	_, err = stream.Next()
	assert.True(t, errors.Is(err, io.EOF))
}

func TestStreamMalformedLineAbortsPass(t *testing.T) {
	path := writeCorpus(t, "id1\tabc\txyz\nid2\tonly-two-fields\n")

	stream, err := Open(path, "\t")
	require.NoError(t, err)
	defer stream.Close()

	_, err = stream.Next()
	require.NoError(t, err)

	_, err = stream.Next()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
	assert.Contains(t, err.Error(), "expected 3 fields")
}

func TestStreamCustomSeparator(t *testing.T) {
	path := writeCorpus(t, "id1,abc,xyz\n")

	stream, err := Open(path, ",")
	require.NoError(t, err)
	defer stream.Close()

	pair, err := stream.Next()
	require.NoError(t, err)
	assert.Equal(t, Pair{X: "abc", Y: "xyz"}, pair)
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.txt"), "\t")
	assert.Error(t, err)
}
