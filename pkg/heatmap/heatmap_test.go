package heatmap

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"gonum.org/v1/plot/vg"

	"github.com/ICAI-IMAT-NLP1/chargram/pkg/chargram"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func testTable(t *testing.T) *chargram.FreqTable {
	t.Helper()
	vocab, err := chargram.NewVocabulary("ab", '-', '.')
	if err != nil {
		t.Fatalf("NewVocabulary() error = %v", err)
	}
	table, err := chargram.NewCounter(vocab).Count(context.Background(), chargram.NewWordSource("ab", "ba", "abba"))
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	return table
}

func TestGridOrientation(t *testing.T) {
	table := testTable(t)
	g := grid{t: table}

	cols, rows := g.Dims()
	if cols != table.Size() || rows != table.Size() {
		t.Fatalf("expected %dx%d grid, got %dx%d", table.Size(), table.Size(), cols, rows)
	}

	// Row 0 of the table sits at the top of the plot, which is the
	// grid's highest y index.
	n := table.Size()
	for j := 0; j < n; j++ {
		if got, want := g.Z(j, n-1), float64(table.At(0, j)); got != want {
			t.Errorf("top plot row, col %d: expected %v, got %v", j, want, got)
		}
		if got, want := g.Z(j, 0), float64(table.At(n-1, j)); got != want {
			t.Errorf("bottom plot row, col %d: expected %v, got %v", j, want, got)
		}
	}
}

func TestRenderWritesPNG(t *testing.T) {
	p, err := Render(testTable(t), nil)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	var buf bytes.Buffer
	if err := WritePNG(p, &buf, 4*vg.Inch); err != nil {
		t.Fatalf("WritePNG() error = %v", err)
	}
	if buf.Len() == 0 {
		t.Fatal("expected PNG output, got an empty buffer")
	}
	if !bytes.HasPrefix(buf.Bytes(), pngMagic) {
		t.Error("output does not start with the PNG signature")
	}
}

func TestRenderRejectsBadShadeCount(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Shades = 0
	if _, err := Render(testTable(t), cfg); err == nil {
		t.Error("expected an error for a zero shade count")
	}
}

func TestSavePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bigrams.png")
	if err := SavePNG(testTable(t), nil, path); err != nil {
		t.Fatalf("SavePNG() error = %v", err)
	}
}
