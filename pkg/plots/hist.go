package plots

import (
	"fmt"
	"image/color"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// RenderHist draws one or more sample sets as overlaid histograms and
// saves the figure to filename. Each set is binned over its own data
// range unless explicit edges are given.
func RenderHist(params HistParams, filename string) error {
	params.applyDefaults()
	if len(params.Sets) == 0 {
		return fmt.Errorf("hist: no sample sets to draw")
	}
	for i, s := range params.Sets {
		if err := s.Data.validate(histSetName(s, i)); err != nil {
			return fmt.Errorf("hist: %w", err)
		}
	}

	p := plot.New()
	p.Title.Text = params.Title
	p.Title.TextStyle.Font.Size = vg.Points(params.TitleFontSize)

	strokeWidth := 2 * params.AxesLineWidth / 3
	styleAxis(&p.X, params.X, strokeWidth, params.MajorTickLen, params.AxisFontSize, params.TickFontSize)
	styleAxis(&p.Y, params.Y, strokeWidth, params.MajorTickLen, params.AxisFontSize, params.TickFontSize)

	xmin, xmax := math.Inf(1), math.Inf(-1)
	ymaxSeen := math.Inf(-1)
	yminPos := math.Inf(1)

	var edgeBins [][]plotter.HistogramBin

	showLegend := false
	for i, s := range params.Sets {
		edges, err := binEdges(s.Data.X, params.Bins, params.Edges, params.X.Log)
		if err != nil {
			return fmt.Errorf("hist: set %q: %w", histSetName(s, i), err)
		}
		weights := binWeights(edges, s.Data.X, params.Cumulative, params.Reverse, params.Density)

		xmin, xmax = rangeOf(xmin, xmax, edges[0], edges[len(edges)-1])
		for _, w := range weights {
			ymaxSeen = math.Max(ymaxSeen, w)
			if w > 0 {
				yminPos = math.Min(yminPos, w)
			}
		}

		col, err := seriesColor(s.Color, i)
		if err != nil {
			return fmt.Errorf("hist: set %q: %w", histSetName(s, i), err)
		}

		bins := make([]plotter.HistogramBin, len(weights))
		for j, w := range weights {
			bins[j] = plotter.HistogramBin{Min: edges[j], Max: edges[j+1], Weight: w}
		}

		if params.Cumulative {
			// Step outline only, as a filled cumulative histogram hides
			// everything behind it.
			h := &plotter.Histogram{Bins: bins}
			h.LineStyle = draw.LineStyle{Color: col, Width: vg.Points(params.BarEdgeWidth)}
			h.LogY = params.Y.Log
			p.Add(h)
		} else {
			h := &plotter.Histogram{Bins: bins, FillColor: withAlpha(col, s.Alpha)}
			h.LogY = params.Y.Log
			p.Add(h)
			edgeBins = append(edgeBins, bins)
		}

		if s.Name != "" {
			showLegend = true
			thumb, err := plotter.NewLine(plotter.XYs{{X: 0, Y: 0}, {X: 1, Y: 0}})
			if err != nil {
				return fmt.Errorf("hist: set %q: %w", histSetName(s, i), err)
			}
			thumb.LineStyle = draw.LineStyle{Color: col, Width: vg.Points(6)}
			p.Legend.Add(s.Name, thumb)
		}
	}

	// Re-stroke bar edges opaquely; translucent fills would otherwise
	// wash out the outlines (same double-draw the bar style needs in
	// any renderer with alpha compositing).
	for _, bins := range edgeBins {
		edge := &plotter.Histogram{Bins: bins}
		edge.LineStyle = draw.LineStyle{Color: color.Black, Width: vg.Points(params.BarEdgeWidth)}
		edge.LogY = params.Y.Log
		p.Add(edge)
	}

	if showLegend {
		placeLegend(p, params.LegendLoc, params.LegendFontSize)
	}

	xlo, xhi, err := resolveRange(params.X, xmin, xmax)
	if err != nil {
		return fmt.Errorf("hist: x axis: %w", err)
	}

	ylo, yhi := 0.0, ymaxSeen*1.05
	if params.Y.Log {
		if math.IsInf(yminPos, 1) {
			return fmt.Errorf("hist: log y axis with no positive bin weights")
		}
		ylo = yminPos * 0.8
		yhi = ymaxSeen * 1.2
	}
	if params.Y.Min != nil {
		ylo = *params.Y.Min
	}
	if params.Y.Max != nil {
		yhi = *params.Y.Max
	}
	if yhi <= ylo {
		return fmt.Errorf("hist: empty y axis range [%v, %v]", ylo, yhi)
	}

	p.X.Min, p.X.Max = xlo, xhi
	p.Y.Min, p.Y.Max = ylo, yhi

	return writeFigure(filename, params.Figure, func(dc draw.Canvas) error {
		p.Draw(dc)
		da := p.DataCanvas(dc)
		strokeFrame(da, draw.LineStyle{Color: color.Black, Width: vg.Points(strokeWidth)})
		mirrorTicks(p, da, params.MajorTickLen, params.MinorTickLen, strokeWidth, true)
		drawCornerLabel(p, da, params.Label, params.LabelCoords, params.LabelFontSize)
		return nil
	})
}

func histSetName(s HistSet, i int) string {
	if s.Name != "" {
		return s.Name
	}
	return fmt.Sprintf("#%d", i)
}

// binEdges computes the bin boundaries for one sample set: explicit
// edges win, otherwise equal-width bins over the data range, switched
// to log-spaced widths under a log x axis.
func binEdges(x []float64, bins int, explicit []float64, logScale bool) ([]float64, error) {
	var edges []float64
	if len(explicit) > 0 {
		if len(explicit) < 2 {
			return nil, fmt.Errorf("need at least 2 bin edges, got %d", len(explicit))
		}
		edges = make([]float64, len(explicit))
		copy(edges, explicit)
		sort.Float64s(edges)
	} else {
		if bins < 1 {
			return nil, fmt.Errorf("bin count must be positive, got %d", bins)
		}
		lo, hi := floats.Min(x), floats.Max(x)
		if lo == hi {
			lo, hi = lo-0.5, hi+0.5
		}
		edges = floats.Span(make([]float64, bins+1), lo, hi)
	}
	if logScale {
		lo, hi := edges[0], edges[len(edges)-1]
		if lo <= 0 {
			return nil, fmt.Errorf("log-spaced bins require positive data, got minimum %v", lo)
		}
		exps := floats.Span(make([]float64, len(edges)), math.Log10(lo), math.Log10(hi))
		for i, e := range exps {
			edges[i] = math.Pow(10, e)
		}
	}
	for i := 1; i < len(edges); i++ {
		if edges[i] <= edges[i-1] {
			return nil, fmt.Errorf("bin edges must be strictly increasing")
		}
	}
	return edges, nil
}

// binWeights counts samples into the bins defined by edges and applies
// density normalization and accumulation. Samples equal to the last
// edge land in the last bin; samples outside the edges are dropped.
func binWeights(edges, x []float64, cumulative, reverse, density bool) []float64 {
	xs := make([]float64, 0, len(x))
	last := edges[len(edges)-1]
	onLast := 0
	for _, v := range x {
		switch {
		case v >= edges[0] && v < last:
			xs = append(xs, v)
		case v == last:
			onLast++
		}
	}
	sort.Float64s(xs)

	counts := stat.Histogram(make([]float64, len(edges)-1), edges, xs, nil)
	counts[len(counts)-1] += float64(onLast)

	total := floats.Sum(counts)
	if total == 0 {
		return counts
	}

	switch {
	case cumulative && density:
		// Accumulated fraction of samples; the last bin reaches 1.
		acc := 0.0
		out := make([]float64, len(counts))
		idxs := forwardOrReverse(len(counts), reverse)
		for _, i := range idxs {
			acc += counts[i] / total
			out[i] = acc
		}
		return out
	case cumulative:
		acc := 0.0
		out := make([]float64, len(counts))
		for _, i := range forwardOrReverse(len(counts), reverse) {
			acc += counts[i]
			out[i] = acc
		}
		return out
	case density:
		out := make([]float64, len(counts))
		for i, c := range counts {
			out[i] = c / (total * (edges[i+1] - edges[i]))
		}
		return out
	default:
		return counts
	}
}

func forwardOrReverse(n int, reverse bool) []int {
	idxs := make([]int, n)
	for i := range idxs {
		if reverse {
			idxs[i] = n - 1 - i
		} else {
			idxs[i] = i
		}
	}
	return idxs
}
