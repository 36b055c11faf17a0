package plots

import (
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Post-draw canvas decoration. gonum draws a single left/bottom axis
// pair; the house style wants a full frame with inward ticks on the
// top and right edges, an optional corner label, and on twin-scale
// figures a right-hand axis. These run after Plot.Draw using the
// plot's data-space transforms.

// strokeFrame outlines the data area.
func strokeFrame(da draw.Canvas, sty draw.LineStyle) {
	da.StrokeLine2(sty, da.Min.X, da.Min.Y, da.Max.X, da.Min.Y)
	da.StrokeLine2(sty, da.Min.X, da.Max.Y, da.Max.X, da.Max.Y)
	da.StrokeLine2(sty, da.Min.X, da.Min.Y, da.Min.X, da.Max.Y)
	da.StrokeLine2(sty, da.Max.X, da.Min.Y, da.Max.X, da.Max.Y)
}

// mirrorTicks repeats the x ticks on the top edge and, when mirrorY is
// set, the y ticks on the right edge, drawn inward. mirrorY is off for
// twin-scale figures where the right edge carries its own axis.
func mirrorTicks(p *plot.Plot, da draw.Canvas, majorLen, minorLen, width float64, mirrorY bool) {
	sty := draw.LineStyle{Color: color.Black, Width: vg.Points(width)}
	trX, trY := p.Transforms(&da)

	for _, t := range p.X.Tick.Marker.Ticks(p.X.Min, p.X.Max) {
		x := trX(t.Value)
		if x < da.Min.X || x > da.Max.X {
			continue
		}
		l := vg.Points(minorLen)
		if t.Label != "" {
			l = vg.Points(majorLen)
		}
		da.StrokeLine2(sty, x, da.Max.Y, x, da.Max.Y-l)
	}
	if !mirrorY {
		return
	}
	for _, t := range p.Y.Tick.Marker.Ticks(p.Y.Min, p.Y.Max) {
		y := trY(t.Value)
		if y < da.Min.Y || y > da.Max.Y {
			continue
		}
		l := vg.Points(minorLen)
		if t.Label != "" {
			l = vg.Points(majorLen)
		}
		da.StrokeLine2(sty, da.Max.X, y, da.Max.X-l, y)
	}
}

// drawCornerLabel places the figure label at fractional coordinates of
// the data area. The text style is borrowed from the plot so the font
// handler is already wired.
func drawCornerLabel(p *plot.Plot, da draw.Canvas, label string, coords [2]float64, fontSize float64) {
	if label == "" {
		return
	}
	sty := p.X.Tick.Label
	sty.Font.Size = vg.Points(fontSize)
	sty.XAlign = text.XCenter
	sty.YAlign = text.YCenter
	pt := vg.Point{
		X: da.Min.X + vg.Length(coords[0])*(da.Max.X-da.Min.X),
		Y: da.Min.Y + vg.Length(coords[1])*(da.Max.Y-da.Min.Y),
	}
	da.FillText(sty, pt, label)
}

// rightAxis describes the manually drawn right-hand y axis of a
// twin-scale plot. toLeft maps a right-scale value into the left data
// space that the plot was actually ranged with.
type rightAxis struct {
	Label    string
	Min, Max float64
	Ticker   plot.Ticker
	toLeft   func(float64) float64
}

// drawRightAxis renders tick marks, tick labels, and a rotated axis
// label in the margin to the right of the data area.
func drawRightAxis(p *plot.Plot, da draw.Canvas, ra rightAxis, majorLen, minorLen, width, tickFont, axisFont float64) {
	sty := draw.LineStyle{Color: color.Black, Width: vg.Points(width)}
	_, trY := p.Transforms(&da)

	labelSty := p.Y.Tick.Label
	labelSty.Font.Size = vg.Points(tickFont)
	labelSty.XAlign = text.XLeft
	labelSty.YAlign = text.YCenter

	maxLabel := vg.Length(0)
	for _, t := range ra.Ticker.Ticks(ra.Min, ra.Max) {
		y := trY(ra.toLeft(t.Value))
		if y < da.Min.Y || y > da.Max.Y {
			continue
		}
		l := vg.Points(minorLen)
		if t.Label != "" {
			l = vg.Points(majorLen)
		}
		da.StrokeLine2(sty, da.Max.X, y, da.Max.X-l, y)
		if t.Label == "" {
			continue
		}
		pt := vg.Point{X: da.Max.X + vg.Points(4), Y: y}
		da.FillText(labelSty, pt, t.Label)
		if w := labelSty.Width(t.Label); w > maxLabel {
			maxLabel = w
		}
	}

	if ra.Label != "" {
		axSty := p.Y.Label.TextStyle
		axSty.Font.Size = vg.Points(axisFont)
		axSty.Rotation = -math.Pi / 2
		axSty.XAlign = text.XCenter
		axSty.YAlign = text.YTop
		pt := vg.Point{
			X: da.Max.X + vg.Points(8) + maxLabel,
			Y: (da.Min.Y + da.Max.Y) / 2,
		}
		da.FillText(axSty, pt, ra.Label)
	}
}
