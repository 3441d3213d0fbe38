package chargram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// ErrUnknownRune is returned (wrapped) when a bigram contains a rune that
// is not part of the vocabulary and the counter was configured with
// UnknownError.
var ErrUnknownRune = errors.New("rune not in vocabulary")

// UnknownPolicy decides what the counter does with a bigram whose runes are
// not all part of the vocabulary.
type UnknownPolicy int

const (
	// UnknownSkip drops out-of-vocabulary bigrams without recording a
	// count. This is the default.
	UnknownSkip UnknownPolicy = iota
	// UnknownError stops counting at the first out-of-vocabulary rune.
	UnknownError
)

// FreqTable is a square table of bigram occurrence counts addressed by
// vocabulary indices. Cell (i, j) counts the bigram whose first rune has
// index i and whose second rune has index j. Counts only ever increase.
type FreqTable struct {
	vocab *Vocabulary
	cells []int64
	total int64
}

// NewFreqTable returns a zero-filled table over the given vocabulary.
func NewFreqTable(vocab *Vocabulary) *FreqTable {
	n := vocab.Size()
	return &FreqTable{
		vocab: vocab,
		cells: make([]int64, n*n),
	}
}

// At returns the count in cell (i, j). Out-of-range indices return 0.
func (t *FreqTable) At(i, j int) int64 {
	n := t.vocab.Size()
	if i < 0 || i >= n || j < 0 || j >= n {
		return 0
	}
	return t.cells[i*n+j]
}

// Size returns the table's side length, the vocabulary size.
func (t *FreqTable) Size() int {
	return t.vocab.Size()
}

// Total returns the sum of all cells: the number of bigrams counted.
func (t *FreqTable) Total() int64 {
	return t.total
}

// Vocab returns the vocabulary the table is addressed by.
func (t *FreqTable) Vocab() *Vocabulary {
	return t.vocab
}

func (t *FreqTable) inc(i, j int) {
	t.cells[i*t.vocab.Size()+j]++
	t.total++
}

// Counter tallies bigram sequences into frequency tables over a fixed
// vocabulary.
type Counter struct {
	vocab  *Vocabulary
	policy UnknownPolicy
	logger *slog.Logger
}

// CounterOption Is a function that configures a Counter.
type CounterOption func(*Counter)

// WithUnknownPolicy Sets the handling of out-of-vocabulary runes.
// Default: UnknownSkip
func WithUnknownPolicy(p UnknownPolicy) CounterOption {
	return func(c *Counter) {
		c.policy = p
	}
}

// WithLogger Sets the logger for the counter. By default, all logs are
// discarded.
func WithLogger(logger *slog.Logger) CounterOption {
	return func(c *Counter) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewCounter creates a counter over the given vocabulary, which can be
// customized by providing one or more CounterOption functions.
func NewCounter(vocab *Vocabulary, opts ...CounterOption) *Counter {
	c := &Counter{
		vocab:  vocab,
		policy: UnknownSkip,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// tally records one bigram. It reports whether the bigram was counted; an
// error is only possible under UnknownError.
func (c *Counter) tally(table *FreqTable, b Bigram) (bool, error) {
	i, okFirst := c.vocab.Index(b.First)
	j, okSecond := c.vocab.Index(b.Second)
	if !okFirst || !okSecond {
		if c.policy == UnknownError {
			r := b.First
			if okFirst {
				r = b.Second
			}
			return false, fmt.Errorf("count bigrams: %w: %q", ErrUnknownRune, r)
		}
		return false, nil
	}
	table.inc(i, j)
	return true, nil
}

// CountBigrams tallies a materialized bigram sequence into a fresh table.
// The table total equals the number of bigrams whose runes were all in the
// vocabulary.
func (c *Counter) CountBigrams(bigrams []Bigram) (*FreqTable, error) {
	table := NewFreqTable(c.vocab)
	for _, b := range bigrams {
		if _, err := c.tally(table, b); err != nil {
			return nil, err
		}
	}
	return table, nil
}

// Count runs the full pipeline over a word source: extraction with the
// vocabulary's sentinels followed by aggregation. The same source and
// configuration always produce the same table.
func (c *Counter) Count(ctx context.Context, src Source) (*FreqTable, error) {
	table := NewFreqTable(c.vocab)
	ex := NewExtractor(src, c.vocab.Start(), c.vocab.End())

	var counted, dropped int64
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		b, err := ex.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("corpus read error: %w", err)
		}

		ok, err := c.tally(table, b)
		if err != nil {
			return nil, err
		}
		if ok {
			counted++
		} else {
			dropped++
		}
	}

	c.logger.InfoContext(ctx, "Counting completed",
		slog.Int("vocab_size", c.vocab.Size()),
		slog.Int64("bigrams_counted", counted),
		slog.Int64("bigrams_dropped", dropped),
	)

	return table, nil
}
