package vocab

import (
	"errors"
	"io"
	"log/slog"
	"sort"

	"github.com/opabravo/tensorflow-1.4-billion-password-analysis/passprep/config"
	"github.com/opabravo/tensorflow-1.4-billion-password-analysis/passprep/corpus"
	"github.com/opabravo/tensorflow-1.4-billion-password-analysis/passprep/encoding"
)

// Builder derives the bounded character vocabulary from a corpus and persists
// the resulting index mappings through its Store.
type Builder struct {
	cfg   *config.Config
	store *Store
}

// NewBuilder returns a Builder writing artifacts to cfg's artifact directory.
func NewBuilder(cfg *config.Config) *Builder {
	return &Builder{cfg: cfg, store: NewStore(cfg)}
}

// Build streams the corpus once, counts character frequencies over surviving
// pairs, selects the top-K characters, sorts them into the canonical order,
// appends the OOV and pad sentinels, and persists the two inverse mappings.
func (b *Builder) Build(corpusPath string) error {
	slog.Info("building vocabulary", "corpus", corpusPath)

	stream, err := corpus.Open(corpusPath, b.cfg.Corpus.Separator)
	if err != nil {
		return err
	}
	defer stream.Close()

	maxLen := b.cfg.Encoding.MaxPasswordLength
	counts := make(map[rune]int)
	var lines, kept int
	for {
		pair, err := stream.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		lines++
		if DiscardPassword(pair.Y, maxLen) || DiscardPassword(pair.X, maxLen) {
			continue
		}
		kept++
		for _, r := range pair.Y + pair.X {
			counts[r]++
		}
	}

	selected := selectTopK(counts, b.cfg.Encoding.MaxVocabSize, b.cfg.OOVRune(), b.cfg.PadRune())
	chars := encoding.SortedUnique(selected)
	chars = append(chars, b.cfg.OOVRune(), b.cfg.PadRune())

	slog.Info("vocabulary selected",
		"lines", lines,
		"pairsKept", kept,
		"distinctChars", len(counts),
		"vocabSize", len(chars),
		"oov", string(b.cfg.OOVRune()),
		"pad", string(b.cfg.PadRune()))

	return b.store.Write(chars)
}

// selectTopK keeps the k most frequent runes. Ties break on ascending code
// point so rebuilds over the same counts always agree. The sentinel runes are
// never selected; they get their own slots after the sort.
func selectTopK(counts map[rune]int, k int, sentinels ...rune) []rune {
	reserved := make(map[rune]bool, len(sentinels))
	for _, s := range sentinels {
		reserved[s] = true
	}
	candidates := make([]rune, 0, len(counts))
	for r := range counts {
		if !reserved[r] {
			candidates = append(candidates, r)
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		if counts[candidates[i]] != counts[candidates[j]] {
			return counts[candidates[i]] > counts[candidates[j]]
		}
		return candidates[i] < candidates[j]
	})
	if len(candidates) > k {
		candidates = candidates[:k]
	}
	return candidates
}
