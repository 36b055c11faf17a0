package plots

// Figure holds the styling shared by every renderer: title, corner
// label, fonts, and the overall canvas geometry.
type Figure struct {
	// Title is centered above the data area.
	Title         string
	TitleFontSize float64

	// Label is a short annotation (panel letters like "(a)") placed at
	// LabelCoords, expressed as fractions of the data area.
	Label         string
	LabelCoords   [2]float64
	LabelFontSize float64

	AxisFontSize   float64 // axis label font size
	TickFontSize   float64 // tick label font size
	LegendFontSize float64
	LegendLoc      string // "best", "upper left", "upper right", "lower left", "lower right"

	// Aspect is the height/width ratio of the figure; zero selects 3:4.
	// Scale multiplies the base figure size uniformly.
	Aspect float64
	Scale  float64

	// DPI applies to raster output formats only.
	DPI float64
}

func (f *Figure) applyDefaults() {
	if f.TitleFontSize == 0 {
		f.TitleFontSize = 20
	}
	if f.LabelFontSize == 0 {
		f.LabelFontSize = 20
	}
	if f.LabelCoords == [2]float64{} {
		f.LabelCoords = [2]float64{0.05, 0.93}
	}
	if f.AxisFontSize == 0 {
		f.AxisFontSize = 20
	}
	if f.TickFontSize == 0 {
		f.TickFontSize = 18
	}
	if f.LegendFontSize == 0 {
		f.LegendFontSize = 18
	}
	if f.LegendLoc == "" {
		f.LegendLoc = "best"
	}
	if f.Aspect == 0 {
		f.Aspect = 0.75
	}
	if f.Scale == 0 {
		f.Scale = 1
	}
	if f.DPI == 0 {
		f.DPI = 96
	}
}

// Axis configures one axis of a figure. Min and Max pin the range when
// non-nil; otherwise the range is derived from the data with a small
// pad. Tick spacings of zero let the renderer choose.
type Axis struct {
	Label            string
	Min, Max         *float64
	Log              bool
	MajorTickSpacing float64
	MinorTickSpacing float64
}

// Series is one xy data set on a plot figure together with its style.
// A zero Color, Marker, or Line falls back to the house cycle.
type Series struct {
	Name    string
	Data    XYData
	Color   string
	Marker  Marker
	Line    LineKind
	Scatter bool // markers only, no connecting line
	Right   bool // bind to the right y-scale
}

// RuleLine is a vertical or horizontal reference line spanning the
// data area at a fixed coordinate.
type RuleLine struct {
	At    float64
	Color string
	Width float64
	Line  LineKind
}

// PlotParams configures RenderPlot. Series bound to the right y-scale
// (Series.Right) share the x axis but range independently on YRight.
type PlotParams struct {
	Figure

	Series []Series

	X      Axis
	YLeft  Axis
	YRight Axis

	LineWidth     float64 // data curves; axes and ticks derive from it
	MarkerSize    float64
	GridLineWidth float64 // zero disables the grid

	MajorTickLen float64
	MinorTickLen float64

	VLines []RuleLine
	HLines []RuleLine
}

// NewPlotParams returns PlotParams with the house defaults applied.
func NewPlotParams(series ...Series) PlotParams {
	p := PlotParams{Series: series}
	p.applyDefaults()
	return p
}

func (p *PlotParams) applyDefaults() {
	p.Figure.applyDefaults()
	if p.LineWidth == 0 {
		p.LineWidth = 3
	}
	if p.MarkerSize == 0 {
		p.MarkerSize = 11
	}
	if p.MajorTickLen == 0 {
		p.MajorTickLen = 8
	}
	if p.MinorTickLen == 0 {
		p.MinorTickLen = 5
	}
}

// Tick is an explicit tick position with an optional label.
type Tick struct {
	Value float64
	Label string
}

// ColorBarParams configures the colorbar strip beside a heat map.
type ColorBarParams struct {
	WidthFrac float64 // fraction of the figure width, default 0.05
	PadFrac   float64 // gap between map and bar, default 0.015
	Ticks     []Tick
	TickLen   float64
}

// HeatMapParams configures RenderHeatMap. Z is row-major with row 0
// rendered at the top of the figure.
type HeatMapParams struct {
	Figure

	Z [][]float64

	// Palette names the colormap: "blue-red" (default), "kindlmann",
	// "extended-kindlmann", or "black-body".
	Palette  string
	Min, Max *float64

	ColorBar ColorBarParams

	XLabel, YLabel string
	XTicks, YTicks []Tick

	FrameWidth float64
	TickLen    float64
	TickWidth  float64

	VLines []RuleLine
	HLines []RuleLine
}

// NewHeatMapParams returns HeatMapParams for z with defaults applied.
func NewHeatMapParams(z [][]float64) HeatMapParams {
	p := HeatMapParams{Z: z}
	p.applyDefaults()
	return p
}

func (p *HeatMapParams) applyDefaults() {
	p.Figure.applyDefaults()
	if p.Palette == "" {
		p.Palette = "blue-red"
	}
	if p.ColorBar.WidthFrac == 0 {
		p.ColorBar.WidthFrac = 0.05
	}
	if p.ColorBar.PadFrac == 0 {
		p.ColorBar.PadFrac = 0.015
	}
	if p.ColorBar.TickLen == 0 {
		p.ColorBar.TickLen = 8
	}
	if p.FrameWidth == 0 {
		p.FrameWidth = 2
	}
	if p.TickLen == 0 {
		p.TickLen = 8
	}
	if p.TickWidth == 0 {
		p.TickWidth = 2
	}
}

// HistSet is one sample set on a histogram figure.
type HistSet struct {
	Name  string
	Data  XData
	Color string
	Alpha float64 // fill opacity, default 0.8
}

// HistParams configures RenderHist. Either Bins (equal-width bins over
// the data range, log-spaced under a log x axis) or explicit Edges may
// be given; Edges wins when both are set.
type HistParams struct {
	Figure

	Sets []HistSet

	Bins  int
	Edges []float64

	Cumulative bool
	Reverse    bool // accumulate from the high end
	Density    bool

	X, Y Axis

	AxesLineWidth float64
	BarEdgeWidth  float64

	MajorTickLen float64
	MinorTickLen float64
}

// NewHistParams returns HistParams with the house defaults applied.
func NewHistParams(sets ...HistSet) HistParams {
	p := HistParams{Sets: sets}
	p.applyDefaults()
	return p
}

func (p *HistParams) applyDefaults() {
	p.Figure.applyDefaults()
	if p.Bins == 0 {
		p.Bins = 10
	}
	if p.AxesLineWidth == 0 {
		p.AxesLineWidth = 3
	}
	if p.BarEdgeWidth == 0 {
		p.BarEdgeWidth = 2
	}
	if p.MajorTickLen == 0 {
		p.MajorTickLen = 8
	}
	if p.MinorTickLen == 0 {
		p.MinorTickLen = 5
	}
	// Defaulting Alpha writes through the slice, so work on a copy to
	// keep the caller's sets untouched.
	p.Sets = append([]HistSet(nil), p.Sets...)
	for i := range p.Sets {
		if p.Sets[i].Alpha == 0 {
			p.Sets[i].Alpha = 0.8
		}
	}
}
