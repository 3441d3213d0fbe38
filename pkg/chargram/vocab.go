package chargram

import "fmt"

// StartIndex is the reserved vocabulary index for the start sentinel token.
// The end sentinel always occupies the last index, Size()-1.
const StartIndex = 0

// Vocabulary is an immutable bijection between runes and dense indices in
// [0, Size). The start sentinel maps to index 0, the alphabet runes occupy
// indices 1..len(alphabet) in their given order, and the end sentinel maps
// to the final index.
type Vocabulary struct {
	index map[rune]int
	runes []rune
	start rune
	end   rune
}

// NewVocabulary builds the vocabulary for the given alphabet and sentinel
// tokens. It returns an error if the two sentinels are equal, if the
// alphabet contains a duplicate rune, or if a sentinel also appears in the
// alphabet: any of these would make two symbols collide on one index and
// silently corrupt every count addressed through the mapping.
func NewVocabulary(alphabet string, startToken, endToken rune) (*Vocabulary, error) {
	if startToken == endToken {
		return nil, fmt.Errorf("vocabulary: start and end token are both %q", startToken)
	}

	runes := make([]rune, 0, len(alphabet)+2)
	runes = append(runes, startToken)
	runes = append(runes, []rune(alphabet)...)
	runes = append(runes, endToken)

	index := make(map[rune]int, len(runes))
	for i, r := range runes {
		if prev, ok := index[r]; ok {
			return nil, fmt.Errorf("vocabulary: rune %q would occupy both index %d and index %d", r, prev, i)
		}
		index[r] = i
	}

	return &Vocabulary{
		index: index,
		runes: runes,
		start: startToken,
		end:   endToken,
	}, nil
}

// Index returns the dense index for a rune and whether the rune is part of
// the vocabulary.
func (v *Vocabulary) Index(r rune) (int, bool) {
	i, ok := v.index[r]
	return i, ok
}

// Rune returns the rune at a dense index and whether the index is in range.
func (v *Vocabulary) Rune(i int) (rune, bool) {
	if i < 0 || i >= len(v.runes) {
		return 0, false
	}
	return v.runes[i], true
}

// Size returns the number of symbols in the vocabulary, including both
// sentinels.
func (v *Vocabulary) Size() int {
	return len(v.runes)
}

// Runes returns a copy of the ordered symbol set.
func (v *Vocabulary) Runes() []rune {
	out := make([]rune, len(v.runes))
	copy(out, v.runes)
	return out
}

// Start returns the start sentinel token.
func (v *Vocabulary) Start() rune {
	return v.start
}

// End returns the end sentinel token.
func (v *Vocabulary) End() rune {
	return v.end
}

// Label returns the two-rune display label for the bigram addressed by a
// pair of vocabulary indices. Out-of-range indices yield an empty string.
func (v *Vocabulary) Label(i, j int) string {
	a, okA := v.Rune(i)
	b, okB := v.Rune(j)
	if !okA || !okB {
		return ""
	}
	return string([]rune{a, b})
}
