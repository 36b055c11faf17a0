package recipe

import "fmt"

// Starter returns a complete recipe skeleton for the given kind with
// every knob listed at its default, ready to edit and render.
func Starter(kind string) (string, error) {
	switch kind {
	case KindPlot:
		return plotStarter, nil
	case KindHeatMap:
		return heatMapStarter, nil
	case KindHist:
		return histStarter, nil
	default:
		return "", fmt.Errorf("unknown recipe kind %q (want %s, %s, or %s)", kind, KindPlot, KindHeatMap, KindHist)
	}
}

const plotStarter = `kind: plot
output: figure.pdf

figure:
  title: ""
  label: ""                  # panel annotation, e.g. "(a)"
  label_coords: [0.05, 0.93] # fractions of the data area
  legend_loc: best           # best, upper left, upper right, lower left, lower right
  aspect: 0.75               # height/width
  scale: 1

plot:
  x:
    label: ""
    min: null
    max: null
    log: false
    major_tick_spacing: 0    # 0 picks ticks automatically
    minor_tick_spacing: 0
  y:
    label: ""
    min: null
    max: null
    log: false
  y_right:                   # used by series with right: true
    label: ""

  line_width: 3
  marker_size: 11
  grid_line_width: 0         # 0 disables the grid

  series:
    - name: ""
      color: ""              # named or "#rrggbb"; empty cycles
      marker: ""             # o s ^ d x + . ring box
      line: "-"              # - -- : -. none
      scatter: false         # markers only
      right: false           # bind to the right y-scale
      x: []
      y: []
      x_err: []              # optional, same length as x
      y_err: []

  vlines: []                 # - {at: 0, color: gray, line: "--"}
  hlines: []
`

const heatMapStarter = `kind: heatmap
output: figure.pdf

figure:
  title: ""
  label: ""
  label_coords: [0.05, 0.93]
  aspect: 0.75
  scale: 1

heatmap:
  z:                         # row 0 renders at the top
    - []
  palette: blue-red          # blue-red, kindlmann, extended-kindlmann, black-body
  min: null                  # color range override
  max: null

  x_label: ""
  y_label: ""
  x_ticks: []                # - {value: 0, label: "a"}
  y_ticks: []
  colorbar_ticks: []

  frame_width: 2
  tick_len: 8
  tick_width: 2

  vlines: []                 # cell coordinates, e.g. {at: 1.5}
  hlines: []
`

const histStarter = `kind: hist
output: figure.pdf

figure:
  title: ""
  label: ""
  label_coords: [0.05, 0.93]
  legend_loc: best
  aspect: 0.75
  scale: 1

hist:
  sets:
    - name: ""
      color: ""
      alpha: 0.8
      x: []

  bins: 10
  edges: []                  # explicit bin edges; wins over bins
  cumulative: false
  reverse: false             # accumulate from the high end
  density: false

  x:
    label: ""
    min: null
    max: null
    log: false               # log-spaced bins
  y:
    label: ""
    log: false

  axes_line_width: 3
  bar_edge_width: 2
`
