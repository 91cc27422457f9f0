package vocab

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/opabravo/tensorflow-1.4-billion-password-analysis/passprep/config"
	"github.com/opabravo/tensorflow-1.4-billion-password-analysis/passprep/encoding"

	"github.com/ZanzyTHEbar/assert-lib"
)

// ErrNotBuilt signals that the mapping artifacts are missing.
var ErrNotBuilt = errors.New("vocabulary artifacts not found: run the vocabulary build first")

// Store persists and loads the two inverse Token↔Index mappings. The mappings
// are written once by the vocabulary build and treated as immutable afterward.
type Store struct {
	cfg           *config.Config
	assertHandler *assert.AssertHandler
}

// NewStore returns a Store over cfg's artifact directory.
func NewStore(cfg *config.Config) *Store {
	return &Store{cfg: cfg, assertHandler: assert.NewAssertHandler()}
}

// Write assigns zero-based indices to chars in order and persists both inverse
// mappings as JSON artifacts.
func (s *Store) Write(chars []rune) error {
	tokenIndices := make(map[string]int, len(chars))
	indicesToken := make(map[int]string, len(chars))
	for i, r := range chars {
		tokenIndices[string(r)] = i
		indicesToken[i] = string(r)
	}
	s.assertHandler.Assert(context.Background(), len(tokenIndices) == len(indicesToken),
		"token and index mappings must be exact inverses")

	if err := os.MkdirAll(s.cfg.Artifacts.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create artifact directory %s: %w", s.cfg.Artifacts.Dir, err)
	}
	if err := writeJSON(s.cfg.TokenIndicesPath(), tokenIndices); err != nil {
		return err
	}
	return writeJSON(s.cfg.IndicesTokenPath(), indicesToken)
}

// TokenIndices loads the char→index mapping.
func (s *Store) TokenIndices() (map[string]int, error) {
	var m map[string]int
	if err := readJSON(s.cfg.TokenIndicesPath(), &m); err != nil {
		return nil, err
	}
	return m, nil
}

// IndicesToken loads the index→char mapping.
func (s *Store) IndicesToken() (map[int]string, error) {
	var m map[int]string
	if err := readJSON(s.cfg.IndicesTokenPath(), &m); err != nil {
		return nil, err
	}
	return m, nil
}

// Chars reconstructs the character set from the persisted mapping's values in
// canonical order. Rebuilding from the values keeps the character table's
// index assignment identical to the persisted one.
func (s *Store) Chars() ([]rune, error) {
	indicesToken, err := s.IndicesToken()
	if err != nil {
		return nil, err
	}
	chars := make([]rune, 0, len(indicesToken))
	for _, tok := range indicesToken {
		for _, r := range tok {
			chars = append(chars, r)
		}
	}
	return encoding.SortedUnique(chars), nil
}

// VocabSize reports the number of persisted vocabulary entries, sentinels
// included.
func (s *Store) VocabSize() (int, error) {
	tokenIndices, err := s.TokenIndices()
	if err != nil {
		return 0, err
	}
	return len(tokenIndices), nil
}

func writeJSON(path string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w (missing %s)", ErrNotBuilt, path)
		}
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return nil
}
