// Package recipe loads YAML figure recipes and turns them into render
// parameters. A recipe is a self-contained description of one figure:
// the kind (plot, heatmap, hist), the data, and the styling knobs that
// differ from the defaults.
package recipe

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"prettyplots/pkg/plots"
)

// Kinds of figure a recipe can describe.
const (
	KindPlot    = "plot"
	KindHeatMap = "heatmap"
	KindHist    = "hist"
)

// Recipe is the top-level YAML document.
type Recipe struct {
	Kind   string `yaml:"kind"`
	Output string `yaml:"output"` // optional; the CLI supplies one if empty

	Figure FigureSpec `yaml:"figure"`

	Plot    *PlotSpec    `yaml:"plot,omitempty"`
	HeatMap *HeatMapSpec `yaml:"heatmap,omitempty"`
	Hist    *HistSpec    `yaml:"hist,omitempty"`
}

// FigureSpec mirrors the shared figure styling.
type FigureSpec struct {
	Title          string    `yaml:"title"`
	TitleFontSize  float64   `yaml:"title_font_size"`
	Label          string    `yaml:"label"`
	LabelCoords    []float64 `yaml:"label_coords"`
	LabelFontSize  float64   `yaml:"label_font_size"`
	AxisFontSize   float64   `yaml:"axis_font_size"`
	TickFontSize   float64   `yaml:"tick_font_size"`
	LegendFontSize float64   `yaml:"legend_font_size"`
	LegendLoc      string    `yaml:"legend_loc"`
	Aspect         float64   `yaml:"aspect"`
	Scale          float64   `yaml:"scale"`
	DPI            float64   `yaml:"dpi"`
}

// AxisSpec mirrors plots.Axis.
type AxisSpec struct {
	Label            string   `yaml:"label"`
	Min              *float64 `yaml:"min"`
	Max              *float64 `yaml:"max"`
	Log              bool     `yaml:"log"`
	MajorTickSpacing float64  `yaml:"major_tick_spacing"`
	MinorTickSpacing float64  `yaml:"minor_tick_spacing"`
}

// SeriesSpec is one xy series of a plot recipe.
type SeriesSpec struct {
	Name    string    `yaml:"name"`
	Color   string    `yaml:"color"`
	Marker  string    `yaml:"marker"`
	Line    string    `yaml:"line"`
	Scatter bool      `yaml:"scatter"`
	Right   bool      `yaml:"right"`
	X       []float64 `yaml:"x"`
	Y       []float64 `yaml:"y"`
	XErr    []float64 `yaml:"x_err"`
	YErr    []float64 `yaml:"y_err"`
}

// RuleLineSpec is a vertical or horizontal reference line.
type RuleLineSpec struct {
	At    float64 `yaml:"at"`
	Color string  `yaml:"color"`
	Width float64 `yaml:"width"`
	Line  string  `yaml:"line"`
}

// PlotSpec is the body of a kind: plot recipe.
type PlotSpec struct {
	Series []SeriesSpec `yaml:"series"`

	X      AxisSpec `yaml:"x"`
	Y      AxisSpec `yaml:"y"`
	YRight AxisSpec `yaml:"y_right"`

	LineWidth     float64 `yaml:"line_width"`
	MarkerSize    float64 `yaml:"marker_size"`
	GridLineWidth float64 `yaml:"grid_line_width"`

	MajorTickLen float64 `yaml:"major_tick_len"`
	MinorTickLen float64 `yaml:"minor_tick_len"`

	VLines []RuleLineSpec `yaml:"vlines"`
	HLines []RuleLineSpec `yaml:"hlines"`
}

// TickSpec is an explicit tick position with a label.
type TickSpec struct {
	Value float64 `yaml:"value"`
	Label string  `yaml:"label"`
}

// HeatMapSpec is the body of a kind: heatmap recipe.
type HeatMapSpec struct {
	Z [][]float64 `yaml:"z"`

	Palette string   `yaml:"palette"`
	Min     *float64 `yaml:"min"`
	Max     *float64 `yaml:"max"`

	XLabel string     `yaml:"x_label"`
	YLabel string     `yaml:"y_label"`
	XTicks []TickSpec `yaml:"x_ticks"`
	YTicks []TickSpec `yaml:"y_ticks"`

	ColorBarTicks []TickSpec `yaml:"colorbar_ticks"`

	FrameWidth float64 `yaml:"frame_width"`
	TickLen    float64 `yaml:"tick_len"`
	TickWidth  float64 `yaml:"tick_width"`

	VLines []RuleLineSpec `yaml:"vlines"`
	HLines []RuleLineSpec `yaml:"hlines"`
}

// HistSetSpec is one sample set of a hist recipe.
type HistSetSpec struct {
	Name  string    `yaml:"name"`
	Color string    `yaml:"color"`
	Alpha float64   `yaml:"alpha"`
	X     []float64 `yaml:"x"`
}

// HistSpec is the body of a kind: hist recipe.
type HistSpec struct {
	Sets []HistSetSpec `yaml:"sets"`

	Bins  int       `yaml:"bins"`
	Edges []float64 `yaml:"edges"`

	Cumulative bool `yaml:"cumulative"`
	Reverse    bool `yaml:"reverse"`
	Density    bool `yaml:"density"`

	X AxisSpec `yaml:"x"`
	Y AxisSpec `yaml:"y"`

	AxesLineWidth float64 `yaml:"axes_line_width"`
	BarEdgeWidth  float64 `yaml:"bar_edge_width"`

	MajorTickLen float64 `yaml:"major_tick_len"`
	MinorTickLen float64 `yaml:"minor_tick_len"`
}

// Load reads and validates the recipe at path.
func Load(path string) (*Recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read recipe: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a recipe document.
func Parse(data []byte) (*Recipe, error) {
	var r Recipe
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to parse recipe: %w", err)
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

// Validate checks the recipe shape; data-level problems (length
// mismatches, bad colors) surface from the renderers.
func (r *Recipe) Validate() error {
	switch r.Kind {
	case KindPlot:
		if r.Plot == nil {
			return fmt.Errorf("recipe kind %q needs a plot section", r.Kind)
		}
		if len(r.Plot.Series) == 0 {
			return fmt.Errorf("plot recipe has no series")
		}
	case KindHeatMap:
		if r.HeatMap == nil {
			return fmt.Errorf("recipe kind %q needs a heatmap section", r.Kind)
		}
		if len(r.HeatMap.Z) == 0 {
			return fmt.Errorf("heatmap recipe has no matrix")
		}
	case KindHist:
		if r.Hist == nil {
			return fmt.Errorf("recipe kind %q needs a hist section", r.Kind)
		}
		if len(r.Hist.Sets) == 0 {
			return fmt.Errorf("hist recipe has no sample sets")
		}
	case "":
		return fmt.Errorf("recipe has no kind (want %s, %s, or %s)", KindPlot, KindHeatMap, KindHist)
	default:
		return fmt.Errorf("unknown recipe kind %q", r.Kind)
	}
	if c := r.Figure.LabelCoords; len(c) != 0 && len(c) != 2 {
		return fmt.Errorf("label_coords needs exactly 2 values, got %d", len(c))
	}
	return nil
}

// Render draws the recipe to the given output file.
func (r *Recipe) Render(output string) error {
	switch r.Kind {
	case KindPlot:
		p, err := r.PlotParams()
		if err != nil {
			return err
		}
		return plots.RenderPlot(p, output)
	case KindHeatMap:
		p, err := r.HeatMapParams()
		if err != nil {
			return err
		}
		return plots.RenderHeatMap(p, output)
	case KindHist:
		p, err := r.HistParams()
		if err != nil {
			return err
		}
		return plots.RenderHist(p, output)
	default:
		return fmt.Errorf("unknown recipe kind %q", r.Kind)
	}
}

func (f FigureSpec) figure() plots.Figure {
	fig := plots.Figure{
		Title:          f.Title,
		TitleFontSize:  f.TitleFontSize,
		Label:          f.Label,
		LabelFontSize:  f.LabelFontSize,
		AxisFontSize:   f.AxisFontSize,
		TickFontSize:   f.TickFontSize,
		LegendFontSize: f.LegendFontSize,
		LegendLoc:      f.LegendLoc,
		Aspect:         f.Aspect,
		Scale:          f.Scale,
		DPI:            f.DPI,
	}
	if len(f.LabelCoords) == 2 {
		fig.LabelCoords = [2]float64{f.LabelCoords[0], f.LabelCoords[1]}
	}
	return fig
}

func (a AxisSpec) axis() plots.Axis {
	return plots.Axis{
		Label:            a.Label,
		Min:              a.Min,
		Max:              a.Max,
		Log:              a.Log,
		MajorTickSpacing: a.MajorTickSpacing,
		MinorTickSpacing: a.MinorTickSpacing,
	}
}

func ruleLines(specs []RuleLineSpec) []plots.RuleLine {
	if len(specs) == 0 {
		return nil
	}
	out := make([]plots.RuleLine, len(specs))
	for i, s := range specs {
		out[i] = plots.RuleLine{At: s.At, Color: s.Color, Width: s.Width, Line: plots.LineKind(s.Line)}
	}
	return out
}

func ticks(specs []TickSpec) []plots.Tick {
	if len(specs) == 0 {
		return nil
	}
	out := make([]plots.Tick, len(specs))
	for i, s := range specs {
		out[i] = plots.Tick{Value: s.Value, Label: s.Label}
	}
	return out
}

// PlotParams converts a kind: plot recipe to render parameters.
func (r *Recipe) PlotParams() (plots.PlotParams, error) {
	if r.Plot == nil {
		return plots.PlotParams{}, fmt.Errorf("recipe has no plot section")
	}
	s := r.Plot

	series := make([]plots.Series, len(s.Series))
	for i, sp := range s.Series {
		series[i] = plots.Series{
			Name:    sp.Name,
			Color:   sp.Color,
			Marker:  plots.Marker(sp.Marker),
			Line:    plots.LineKind(sp.Line),
			Scatter: sp.Scatter,
			Right:   sp.Right,
			Data: plots.XYData{
				X:    sp.X,
				Y:    sp.Y,
				XErr: sp.XErr,
				YErr: sp.YErr,
			},
		}
	}

	p := plots.PlotParams{
		Figure:        r.Figure.figure(),
		Series:        series,
		X:             s.X.axis(),
		YLeft:         s.Y.axis(),
		YRight:        s.YRight.axis(),
		LineWidth:     s.LineWidth,
		MarkerSize:    s.MarkerSize,
		GridLineWidth: s.GridLineWidth,
		MajorTickLen:  s.MajorTickLen,
		MinorTickLen:  s.MinorTickLen,
		VLines:        ruleLines(s.VLines),
		HLines:        ruleLines(s.HLines),
	}
	return p, nil
}

// HeatMapParams converts a kind: heatmap recipe to render parameters.
func (r *Recipe) HeatMapParams() (plots.HeatMapParams, error) {
	if r.HeatMap == nil {
		return plots.HeatMapParams{}, fmt.Errorf("recipe has no heatmap section")
	}
	s := r.HeatMap

	p := plots.HeatMapParams{
		Figure:     r.Figure.figure(),
		Z:          s.Z,
		Palette:    s.Palette,
		Min:        s.Min,
		Max:        s.Max,
		XLabel:     s.XLabel,
		YLabel:     s.YLabel,
		XTicks:     ticks(s.XTicks),
		YTicks:     ticks(s.YTicks),
		FrameWidth: s.FrameWidth,
		TickLen:    s.TickLen,
		TickWidth:  s.TickWidth,
		VLines:     ruleLines(s.VLines),
		HLines:     ruleLines(s.HLines),
	}
	p.ColorBar.Ticks = ticks(s.ColorBarTicks)
	return p, nil
}

// HistParams converts a kind: hist recipe to render parameters.
func (r *Recipe) HistParams() (plots.HistParams, error) {
	if r.Hist == nil {
		return plots.HistParams{}, fmt.Errorf("recipe has no hist section")
	}
	s := r.Hist

	sets := make([]plots.HistSet, len(s.Sets))
	for i, set := range s.Sets {
		sets[i] = plots.HistSet{
			Name:  set.Name,
			Color: set.Color,
			Alpha: set.Alpha,
			Data:  plots.XData{X: set.X},
		}
	}

	p := plots.HistParams{
		Figure:        r.Figure.figure(),
		Sets:          sets,
		Bins:          s.Bins,
		Edges:         s.Edges,
		Cumulative:    s.Cumulative,
		Reverse:       s.Reverse,
		Density:       s.Density,
		X:             s.X.axis(),
		Y:             s.Y.axis(),
		AxesLineWidth: s.AxesLineWidth,
		BarEdgeWidth:  s.BarEdgeWidth,
		MajorTickLen:  s.MajorTickLen,
		MinorTickLen:  s.MinorTickLen,
	}
	return p, nil
}
