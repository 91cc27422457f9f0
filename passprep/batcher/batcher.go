// Package batcher drives the full preparation pipeline: vocabulary build,
// corpus vectorization into a compressed archive, and model-facing encoding
// through the character table.
package batcher

import (
	"fmt"

	internal "github.com/opabravo/tensorflow-1.4-billion-password-analysis/passprep"
	"github.com/opabravo/tensorflow-1.4-billion-password-analysis/passprep/config"
	"github.com/opabravo/tensorflow-1.4-billion-password-analysis/passprep/corpus"
	"github.com/opabravo/tensorflow-1.4-billion-password-analysis/passprep/encoding"
	"github.com/opabravo/tensorflow-1.4-billion-password-analysis/passprep/vocab"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v2"
	"gonum.org/v1/gonum/mat"
)

// Batcher is the model-facing facade: it loads the persisted vocabulary
// mappings, rebuilds the character table from the mapping's values, and
// encodes or decodes fixed-width tensors.
type Batcher struct {
	cfg   *config.Config
	store *vocab.Store
	chars []rune
	table *encoding.CharacterTable
}

// New loads the vocabulary artifacts and constructs the character table.
// It returns vocab.ErrNotBuilt when the artifacts are missing.
func New(cfg *config.Config) (*Batcher, error) {
	store := vocab.NewStore(cfg)
	chars, err := store.Chars()
	if err != nil {
		return nil, err
	}
	table, err := encoding.NewCharacterTable(chars, cfg.OOVRune(), cfg.PadRune())
	if err != nil {
		return nil, err
	}
	return &Batcher{cfg: cfg, store: store, chars: chars, table: table}, nil
}

// Encode one-hot encodes s at the configured fixed width.
func (b *Batcher) Encode(s string) *mat.Dense {
	return b.table.Encode(s, b.cfg.Encoding.MaxPasswordLength)
}

// Decode argmax-decodes a tensor back to a string.
func (b *Batcher) Decode(x mat.Matrix) string {
	return b.table.Decode(x)
}

// Table exposes the underlying character table.
func (b *Batcher) Table() *encoding.CharacterTable {
	return b.table
}

// CharsLen returns the size of the character table.
func (b *Batcher) CharsLen() int {
	return b.table.Len()
}

// VocabSize returns the persisted vocabulary size, sentinels included.
func (b *Batcher) VocabSize() (int, error) {
	return b.store.VocabSize()
}

// Build runs the whole preparation: vocabulary build over the corpus, one
// statistics pass, then exactly record-count Next calls collecting raw pairs
// into the compressed dataset archive. Either the full archive is written or
// the build fails with no archive.
func Build(cfg *config.Config, corpusPath string) error {
	log := internal.GetLogger()

	if err := vocab.NewBuilder(cfg).Build(corpusPath); err != nil {
		return err
	}

	log.Info().Str("corpus", corpusPath).Msg("vectorization")
	loader, err := corpus.NewLazyLoader(corpusPath, cfg.Corpus.Separator)
	if err != nil {
		return err
	}
	defer loader.Close()

	stats, err := loader.Statistics()
	if err != nil {
		return err
	}
	log.Info().
		Int("maxLenX", stats.MaxLenX).
		Int("maxLenY", stats.MaxLenY).
		Int("records", stats.NumLines).
		Msg("generating inputs and targets")

	inputs := make([]string, 0, stats.NumLines)
	targets := make([]string, 0, stats.NumLines)
	bar := progressbar.New(stats.NumLines)
	for i := 0; i < stats.NumLines; i++ {
		pair, err := loader.Next()
		if err != nil {
			return fmt.Errorf("vectorization failed at record %d: %w", i, err)
		}
		inputs = append(inputs, pair.X)
		targets = append(targets, pair.Y)
		_ = bar.Add(1)
	}

	buildID := uuid.New()
	if err := writeArchive(cfg.DatasetPath(), buildID, inputs, targets); err != nil {
		return err
	}
	log.Info().
		Str("buildID", buildID.String()).
		Str("path", cfg.DatasetPath()).
		Msg("dataset archive written")
	return nil
}

// Load reads the dataset archive back, reporting both array shapes. It
// returns ErrNoDataset when Build has not produced an archive yet.
func Load(cfg *config.Config) (inputs, targets []string, err error) {
	log := internal.GetLogger()
	buildID, inputs, targets, err := readArchive(cfg.DatasetPath())
	if err != nil {
		return nil, nil, err
	}
	log.Info().
		Str("buildID", buildID.String()).
		Int("inputs", len(inputs)).
		Int("targets", len(targets)).
		Msg("dataset loaded from prefetch")
	return inputs, targets, nil
}
