package internal

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

var (
	// DefaultAppName names the tool and its artifact directory.
	DefaultAppName     = "passprep"
	DefaultArtifactDir = filepath.Join(os.TempDir(), DefaultAppName)

	// Corpus field separator: id SEP password SEP transformed-password.
	DefaultSeparator = "\t"

	// Passwords longer than this are discarded during encoding.
	DefaultMaxPasswordLength = 12

	// The most frequent characters kept in the vocabulary; everything else
	// is binned into the OOV slot.
	DefaultMaxVocabSize = 80

	// Artifact filenames, relative to the artifact directory.
	TokenIndicesFilename = "token_indices.json"
	IndicesTokenFilename = "indices_token.json"
	DatasetFilename      = "x_y.ppds.gz"
)

const (
	// OOVChar is the reserved out-of-vocabulary sentinel.
	OOVChar rune = '？'
	// PadChar right-pads strings shorter than the encoding width.
	PadChar rune = ' '
)

// GetLogger returns a properly configured zerolog logger instance
func GetLogger() zerolog.Logger {
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}
