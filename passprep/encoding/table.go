// Package encoding converts strings to fixed-width one-hot tensors and back
// using the vocabulary-assigned character indices.
package encoding

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// SortedUnique is the canonical ordering function shared by the vocabulary
// build and character table construction: deduplicate, then sort ascending by
// code point. Both sides must use it so their index assignments agree.
func SortedUnique(chars []rune) []rune {
	seen := make(map[rune]bool, len(chars))
	out := make([]rune, 0, len(chars))
	for _, r := range chars {
		if !seen[r] {
			seen[r] = true
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// CharacterTable maps characters to one-hot rows and back. It is immutable
// after construction.
type CharacterTable struct {
	chars       []rune
	charIndices map[rune]int
	indicesChar map[int]rune
	oovIndex    int
	padIndex    int
}

// NewCharacterTable builds a table over the given characters, assigning
// zero-based indices in canonical sorted order. The OOV and pad sentinels
// must be part of the character set.
func NewCharacterTable(chars []rune, oov, pad rune) (*CharacterTable, error) {
	sorted := SortedUnique(chars)
	t := &CharacterTable{
		chars:       sorted,
		charIndices: make(map[rune]int, len(sorted)),
		indicesChar: make(map[int]rune, len(sorted)),
	}
	for i, r := range sorted {
		t.charIndices[r] = i
		t.indicesChar[i] = r
	}
	var ok bool
	if t.oovIndex, ok = t.charIndices[oov]; !ok {
		return nil, fmt.Errorf("OOV sentinel %q is not in the character set", oov)
	}
	if t.padIndex, ok = t.charIndices[pad]; !ok {
		return nil, fmt.Errorf("pad sentinel %q is not in the character set", pad)
	}
	return t, nil
}

// Len returns the number of distinct characters in the table.
func (t *CharacterTable) Len() int {
	return len(t.chars)
}

// Chars returns the table's characters in index order.
func (t *CharacterTable) Chars() []rune {
	out := make([]rune, len(t.chars))
	copy(out, t.chars)
	return out
}

// Index returns the index assigned to r and whether r is in the table.
func (t *CharacterTable) Index(r rune) (int, bool) {
	i, ok := t.charIndices[r]
	return i, ok
}

// Encode one-hot encodes text into a numRows × Len() matrix. Row i carries
// text's i-th character, the OOV index when that character is unknown, or the
// pad index when text is shorter than numRows. Text longer than numRows is
// truncated.
func (t *CharacterTable) Encode(text string, numRows int) *mat.Dense {
	runes := []rune(text)
	x := mat.NewDense(numRows, len(t.chars), nil)
	for i := 0; i < numRows; i++ {
		switch {
		case i >= len(runes):
			x.Set(i, t.padIndex, 1)
		default:
			idx, ok := t.charIndices[runes[i]]
			if !ok {
				idx = t.oovIndex
			}
			x.Set(i, idx, 1)
		}
	}
	return x
}

// Decode collapses each row of a one-hot or probability matrix to the index
// of its maximum value and maps the indices back to characters.
func (t *CharacterTable) Decode(x mat.Matrix) string {
	rows, cols := x.Dims()
	runes := make([]rune, rows)
	row := make([]float64, cols)
	for i := 0; i < rows; i++ {
		mat.Row(row, i, x)
		runes[i] = t.indicesChar[floats.MaxIdx(row)]
	}
	return string(runes)
}

// DecodeIndices maps an index sequence directly to characters. An index with
// no corresponding character is a caller contract violation and fails.
func (t *CharacterTable) DecodeIndices(indices []int) (string, error) {
	runes := make([]rune, len(indices))
	for i, idx := range indices {
		r, ok := t.indicesChar[idx]
		if !ok {
			return "", fmt.Errorf("index %d has no character in a table of size %d", idx, len(t.chars))
		}
		runes[i] = r
	}
	return string(runes), nil
}
