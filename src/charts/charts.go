package charts

import (
	"bytes"
	"fmt"
	"image/color"
	"time"

	"stock-dashboard/src/helpers"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// Figure size matches a 10x5 inch canvas.
const (
	figureWidth  = 10 * vg.Inch
	figureHeight = 5 * vg.Inch
)

// BenchmarkColor is the fixed colour of the benchmark line.
var BenchmarkColor = color.RGBA{R: 255, G: 165, B: 0, A: 255}

// Line is one labelled time series.
type Line struct {
	Label  string
	Dates  []time.Time
	Values []float64
	Color  color.Color // nil selects the default palette colour
}

// Spec describes a chart to render.
type Spec struct {
	Title  string
	XLabel string
	YLabel string
	Lines  []Line
}

// -----------------------------------------------------------------------------

// PriceChart is the single-line closing price chart of symbol.
func PriceChart(symbol string, dates []time.Time, closes []float64) Spec {
	return Spec{
		Title:  fmt.Sprintf("%s Stock Prices", symbol),
		XLabel: "Date",
		YLabel: "Price (USD)",
		Lines:  []Line{{Label: fmt.Sprintf("%s Close", symbol), Dates: dates, Values: closes}},
	}
}

// -----------------------------------------------------------------------------

// ComparisonChart plots the normalized target against the benchmark.
func ComparisonChart(symbol, benchmarkName string, target, benchmark Line) Spec {
	target.Label = symbol
	if benchmark.Color == nil {
		benchmark.Color = BenchmarkColor
	}
	return Spec{
		Title:  fmt.Sprintf("Performance Comparison: %s vs. %s", symbol, benchmarkName),
		XLabel: "Date",
		YLabel: "Normalized Price (Start=1)",
		Lines:  []Line{target, benchmark},
	}
}

// -----------------------------------------------------------------------------

// RenderPNG draws spec with a grid and legend and encodes it as PNG.
func RenderPNG(spec Spec) ([]byte, error) {
	if len(spec.Lines) == 0 {
		return nil, helpers.NewRenderError("nothing to plot", nil)
	}

	p := plot.New()
	p.Title.Text = spec.Title
	p.X.Label.Text = spec.XLabel
	p.Y.Label.Text = spec.YLabel
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01"}
	p.Legend.Top = true
	p.Legend.Left = true
	p.Add(plotter.NewGrid())

	for i, l := range spec.Lines {
		if len(l.Dates) != len(l.Values) {
			return nil, helpers.NewRenderError(fmt.Sprintf("line %q has %d dates and %d values", l.Label, len(l.Dates), len(l.Values)), nil)
		}
		pts := make(plotter.XYs, len(l.Values))
		for j := range l.Values {
			pts[j].X = float64(l.Dates[j].Unix())
			pts[j].Y = l.Values[j]
		}

		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, helpers.NewRenderError(fmt.Sprintf("build line %q", l.Label), err)
		}
		line.Color = plotutil.Color(i)
		if l.Color != nil {
			line.Color = l.Color
		}
		line.Width = vg.Points(1.5)

		p.Add(line)
		p.Legend.Add(l.Label, line)
	}

	w, err := p.WriterTo(figureWidth, figureHeight, "png")
	if err != nil {
		return nil, helpers.NewRenderError("create png writer", err)
	}
	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return nil, helpers.NewRenderError("encode png", err)
	}
	return buf.Bytes(), nil
}
