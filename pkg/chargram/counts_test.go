package chargram

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
)

// mustIndex resolves a rune index or fails the test.
func mustIndex(t *testing.T, vocab *Vocabulary, r rune) int {
	t.Helper()
	i, ok := vocab.Index(r)
	if !ok {
		t.Fatalf("rune %q unexpectedly out of vocabulary", r)
	}
	return i
}

func TestCountAnnaScenario(t *testing.T) {
	vocab := testVocab(t)
	counter := NewCounter(vocab)

	src := NewLineSource(strings.NewReader("Anna 5 3\n"))
	table, err := counter.Count(context.Background(), src)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}

	if table.Total() != 5 {
		t.Errorf("expected table total 5, got %d", table.Total())
	}

	start := mustIndex(t, vocab, '-')
	a := mustIndex(t, vocab, 'a')
	n := mustIndex(t, vocab, 'n')
	end := mustIndex(t, vocab, '.')

	ones := [][2]int{{start, a}, {a, n}, {n, n}, {n, a}, {a, end}}
	for _, cell := range ones {
		if got := table.At(cell[0], cell[1]); got != 1 {
			t.Errorf("expected count 1 at (%d, %d), got %d", cell[0], cell[1], got)
		}
	}

	// Every other cell stays zero.
	var sum int64
	for i := 0; i < table.Size(); i++ {
		for j := 0; j < table.Size(); j++ {
			sum += table.At(i, j)
		}
	}
	if sum != 5 {
		t.Errorf("expected cell sum 5, got %d", sum)
	}
}

func TestCountEmptySource(t *testing.T) {
	vocab := testVocab(t)
	counter := NewCounter(vocab)

	table, err := counter.Count(context.Background(), NewLineSource(strings.NewReader("")))
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if table.Total() != 0 {
		t.Errorf("expected an all-zero table for an empty source, total = %d", table.Total())
	}
	if table.Size() != vocab.Size() {
		t.Errorf("expected table size %d, got %d", vocab.Size(), table.Size())
	}
}

func TestCountSkipsUnknownRunes(t *testing.T) {
	vocab := testVocab(t)
	counter := NewCounter(vocab)

	// Padded "-año." produces 4 bigrams; the two touching 'ñ' are dropped.
	table, err := counter.Count(context.Background(), NewWordSource("año"))
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if table.Total() != 2 {
		t.Errorf("expected 2 in-vocabulary bigrams, got %d", table.Total())
	}
}

func TestCountUnknownErrorPolicy(t *testing.T) {
	vocab := testVocab(t)
	counter := NewCounter(vocab, WithUnknownPolicy(UnknownError))

	_, err := counter.Count(context.Background(), NewWordSource("año"))
	if !errors.Is(err, ErrUnknownRune) {
		t.Errorf("expected ErrUnknownRune, got %v", err)
	}
}

func TestCountBigramsTotal(t *testing.T) {
	vocab := testVocab(t)
	counter := NewCounter(vocab)

	bigrams := []Bigram{
		{'-', 'a'},
		{'a', '.'},
		{'a', 'ñ'}, // out of vocabulary, dropped
		{'ñ', 'a'}, // out of vocabulary, dropped
	}
	table, err := counter.CountBigrams(bigrams)
	if err != nil {
		t.Fatalf("CountBigrams() error = %v", err)
	}
	if table.Total() != 2 {
		t.Errorf("expected total 2, got %d", table.Total())
	}
}

func TestCountDeterminism(t *testing.T) {
	vocab := testVocab(t)
	counter := NewCounter(vocab)
	input := "Anna 5 3\nBen 2 1\nCara 4 4\n"

	first, err := counter.Count(context.Background(), NewLineSource(strings.NewReader(input)))
	if err != nil {
		t.Fatalf("first Count() error = %v", err)
	}
	second, err := counter.Count(context.Background(), NewLineSource(strings.NewReader(input)))
	if err != nil {
		t.Fatalf("second Count() error = %v", err)
	}

	if !reflect.DeepEqual(first.cells, second.cells) {
		t.Error("expected identical tables from identical inputs")
	}
}

func TestCountHonorsContext(t *testing.T) {
	vocab := testVocab(t)
	counter := NewCounter(vocab)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := counter.Count(ctx, NewWordSource("anna")); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
