package chargram

import "sort"

// TableStats holds aggregated statistics for a frequency table.
type TableStats struct {
	Total    int64  // The sum of all cells; the number of counted bigrams.
	Distinct int    // The number of non-zero cells; distinct bigrams seen.
	MaxCount int64  // The largest single cell value.
	MaxLabel string // The two-rune label of the largest cell.
}

// BigramCount pairs a bigram with its count, for ranked reporting.
type BigramCount struct {
	First  rune
	Second rune
	Label  string
	Count  int64
}

// Stats returns a snapshot of summary statistics for a table.
func Stats(t *FreqTable) TableStats {
	stats := TableStats{Total: t.Total()}
	n := t.Size()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			count := t.At(i, j)
			if count == 0 {
				continue
			}
			stats.Distinct++
			if count > stats.MaxCount {
				stats.MaxCount = count
				stats.MaxLabel = t.Vocab().Label(i, j)
			}
		}
	}
	return stats
}

// TopBigrams returns the n most frequent bigrams in descending order of
// count. Ties are broken by row-major cell order, so the result is
// deterministic for a given table.
func TopBigrams(t *FreqTable, n int) []BigramCount {
	size := t.Size()
	vocab := t.Vocab()

	var counts []BigramCount
	for i := 0; i < size; i++ {
		for j := 0; j < size; j++ {
			if c := t.At(i, j); c > 0 {
				first, _ := vocab.Rune(i)
				second, _ := vocab.Rune(j)
				counts = append(counts, BigramCount{
					First:  first,
					Second: second,
					Label:  vocab.Label(i, j),
					Count:  c,
				})
			}
		}
	}

	sort.SliceStable(counts, func(a, b int) bool {
		return counts[a].Count > counts[b].Count
	})

	if n >= 0 && len(counts) > n {
		counts = counts[:n]
	}
	return counts
}
