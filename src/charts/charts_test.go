package charts

import (
	"bytes"
	"image/png"
	"testing"
	"time"
)

func sampleDates(n int) []time.Time {
	out := make([]time.Time, n)
	start := time.Date(2023, 1, 3, 0, 0, 0, 0, time.UTC)
	for i := range out {
		out[i] = start.AddDate(0, 0, i)
	}
	return out
}

func TestPriceChartLabels(t *testing.T) {
	spec := PriceChart("AAPL", sampleDates(2), []float64{1, 2})
	if spec.Title != "AAPL Stock Prices" {
		t.Errorf("title = %q", spec.Title)
	}
	if spec.XLabel != "Date" || spec.YLabel != "Price (USD)" {
		t.Errorf("axes = %q / %q", spec.XLabel, spec.YLabel)
	}
	if spec.Lines[0].Label != "AAPL Close" {
		t.Errorf("legend = %q", spec.Lines[0].Label)
	}
}

func TestComparisonChartLabels(t *testing.T) {
	spec := ComparisonChart("MSFT", "S&P 500",
		Line{Dates: sampleDates(2), Values: []float64{1, 1.1}},
		Line{Label: "SPY (S&P 500)", Dates: sampleDates(2), Values: []float64{1, 0.9}})

	if spec.Title != "Performance Comparison: MSFT vs. S&P 500" {
		t.Errorf("title = %q", spec.Title)
	}
	if spec.YLabel != "Normalized Price (Start=1)" {
		t.Errorf("y label = %q", spec.YLabel)
	}
	if spec.Lines[0].Label != "MSFT" || spec.Lines[0].Color != nil {
		t.Errorf("target line = %+v", spec.Lines[0])
	}
	if spec.Lines[1].Label != "SPY (S&P 500)" || spec.Lines[1].Color != BenchmarkColor {
		t.Errorf("benchmark line = %+v", spec.Lines[1])
	}
}

func TestRenderPNG(t *testing.T) {
	data, err := RenderPNG(PriceChart("AAPL", sampleDates(5), []float64{125, 126, 124, 127, 130}))
	if err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("empty png")
	}
	if _, err := png.Decode(bytes.NewReader(data)); err != nil {
		t.Errorf("output is not a png: %v", err)
	}
}

func TestRenderPNGRejectsMismatchedLine(t *testing.T) {
	spec := PriceChart("AAPL", sampleDates(3), []float64{1, 2})
	if _, err := RenderPNG(spec); err == nil {
		t.Fatal("expected error for mismatched dates/values")
	}
	if _, err := RenderPNG(Spec{}); err == nil {
		t.Fatal("expected error for empty spec")
	}
}
