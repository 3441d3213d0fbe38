package chargram

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// Bigram is an ordered pair of adjacent runes drawn from a padded word.
type Bigram struct {
	First  rune
	Second rune
}

// Source is a stateful reader of corpus words, yielding one word per call.
// It returns io.EOF as the error when the corpus is fully consumed; any
// other error indicates a problem reading the underlying corpus.
type Source interface {
	Next() (string, error)
}

// LineSource reads words from a plain-text word list, one record per line.
// Each line is whitespace-split and the first field is taken as the word;
// the remaining fields (conventionally two numeric annotations) are
// discarded. Blank lines are skipped.
type LineSource struct {
	scanner *bufio.Scanner
}

// NewLineSource returns a LineSource over r.
func NewLineSource(r io.Reader) *LineSource {
	return &LineSource{scanner: bufio.NewScanner(r)}
}

// Next returns the next word from the list. It returns io.EOF when the
// list is exhausted.
func (s *LineSource) Next() (string, error) {
	for s.scanner.Scan() {
		fields := strings.Fields(s.scanner.Text())
		if len(fields) == 0 {
			continue
		}
		return fields[0], nil
	}
	if err := s.scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

// WordSource yields words from an in-memory slice. It is mainly useful for
// tests and for callers that already hold their corpus in memory.
type WordSource struct {
	words []string
	pos   int
}

// NewWordSource returns a WordSource over the given words.
func NewWordSource(words ...string) *WordSource {
	return &WordSource{words: words}
}

// Next returns the next word, or io.EOF once the slice is exhausted.
func (s *WordSource) Next() (string, error) {
	if s.pos >= len(s.words) {
		return "", io.EOF
	}
	w := s.words[s.pos]
	s.pos++
	return w, nil
}

// Extractor streams bigrams out of a Source. Each word is lowercased,
// wrapped with the start and end sentinels, and emitted as len(padded)-1
// ordered pairs before the next word is pulled from the source.
type Extractor struct {
	src    Source
	start  rune
	end    rune
	padded []rune
	pos    int
}

// NewExtractor returns an Extractor over src using the given sentinels.
func NewExtractor(src Source, startToken, endToken rune) *Extractor {
	return &Extractor{src: src, start: startToken, end: endToken}
}

// Next returns the next bigram. It returns io.EOF once the source is
// exhausted; any other error is passed through from the source.
func (e *Extractor) Next() (Bigram, error) {
	for e.pos+1 >= len(e.padded) {
		word, err := e.src.Next()
		if err != nil {
			return Bigram{}, err
		}
		e.padded = padWord(word, e.start, e.end)
		e.pos = 0
	}

	b := Bigram{First: e.padded[e.pos], Second: e.padded[e.pos+1]}
	e.pos++
	return b, nil
}

// padWord lowercases a word and wraps it with the sentinel tokens. The
// result always has at least two runes, so every word yields at least the
// (start, end) bigram.
func padWord(word string, start, end rune) []rune {
	lower := []rune(strings.ToLower(word))
	padded := make([]rune, 0, len(lower)+2)
	padded = append(padded, start)
	padded = append(padded, lower...)
	padded = append(padded, end)
	return padded
}

// ExtractAll materializes the full bigram sequence of a source, in input
// order.
func ExtractAll(src Source, startToken, endToken rune) ([]Bigram, error) {
	ex := NewExtractor(src, startToken, endToken)
	var bigrams []Bigram
	for {
		b, err := ex.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return bigrams, nil
			}
			return nil, err
		}
		bigrams = append(bigrams, b)
	}
}
