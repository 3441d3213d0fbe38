package heatmap

import (
	"fmt"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/ICAI-IMAT-NLP1/chargram/pkg/chargram"
)

// Config holds the rendering settings for a heatmap.
type Config struct {
	CellSize  vg.Length `json:"cell_size"`  // Drawn width and height of one vocabulary cell.
	Shades    int       `json:"shades"`     // Number of palette shades between zero and the max count.
	Annotate  bool      `json:"annotate"`   // Whether to draw the bigram label and count in each cell.
	LabelSize vg.Length `json:"label_size"` // Font size for cell annotations.
	Title     string    `json:"title"`
}

// DefaultConfig creates a rendering configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		CellSize:  vg.Points(28),
		Shades:    12,
		Annotate:  true,
		LabelSize: vg.Points(6),
	}
}

// grid adapts a frequency table to the plotter.GridXYZ interface. Plot
// coordinates grow upward, so table row i is placed at y = n-1-i to keep
// row 0 at the top of the image.
type grid struct {
	t *chargram.FreqTable
}

func (g grid) Dims() (c, r int) {
	n := g.t.Size()
	return n, n
}

func (g grid) Z(c, r int) float64 {
	return float64(g.t.At(g.t.Size()-1-r, c))
}

func (g grid) X(c int) float64 {
	return float64(c)
}

func (g grid) Y(r int) float64 {
	return float64(r)
}

// Render builds the heatmap plot for a frequency table. A nil config uses
// the defaults.
func Render(t *chargram.FreqTable, cfg *Config) (*plot.Plot, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.Shades < 1 {
		return nil, fmt.Errorf("heatmap: shade count %d out of range", cfg.Shades)
	}

	p := plot.New()
	p.Title.Text = cfg.Title
	p.HideAxes()

	p.Add(plotter.NewHeatMap(grid{t: t}, palette.Heat(cfg.Shades, 1)))

	if cfg.Annotate {
		labels, err := cellLabels(t, cfg.LabelSize)
		if err != nil {
			return nil, fmt.Errorf("heatmap: could not build cell labels: %w", err)
		}
		p.Add(labels)
	}

	return p, nil
}

// cellLabels builds one centered annotation per cell with the bigram label
// on top of the count.
func cellLabels(t *chargram.FreqTable, size vg.Length) (*plotter.Labels, error) {
	n := t.Size()
	vocab := t.Vocab()

	xys := make(plotter.XYs, 0, n*n)
	texts := make([]string, 0, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			xys = append(xys, plotter.XY{X: float64(j), Y: float64(n - 1 - i)})
			texts = append(texts, fmt.Sprintf("%s\n%d", vocab.Label(i, j), t.At(i, j)))
		}
	}

	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: texts})
	if err != nil {
		return nil, err
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].Font.Size = size
		labels.TextStyle[i].XAlign = draw.XCenter
		labels.TextStyle[i].YAlign = draw.YCenter
	}
	return labels, nil
}

// WritePNG renders a plot to w as a PNG of the given square edge length.
func WritePNG(p *plot.Plot, w io.Writer, edge vg.Length) error {
	wt, err := p.WriterTo(edge, edge, "png")
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}

// SavePNG renders a frequency table and writes it to path. The image edge
// grows with the vocabulary so cells keep the configured size.
func SavePNG(t *chargram.FreqTable, cfg *Config, path string) error {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	p, err := Render(t, cfg)
	if err != nil {
		return err
	}
	edge := cfg.CellSize * vg.Length(t.Size())
	return p.Save(edge, edge, path)
}
