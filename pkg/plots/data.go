// Package plots renders publication-quality line plots, heat maps, and
// histograms to files. It wraps gonum/plot with an opinionated set of
// defaults (inward ticks on all frame edges, twin y-scales, colorbars)
// so a figure needs only its data and the knobs that differ from the
// house style.
package plots

import "fmt"

// XData holds a one-dimensional sample set, used by histograms.
type XData struct {
	X []float64
}

// XYData holds a paired series. XErr and YErr are optional symmetric
// error bars; when set they must match the length of X and Y.
type XYData struct {
	X, Y       []float64
	XErr, YErr []float64
}

// Len returns the number of points in the series.
func (d XYData) Len() int { return len(d.X) }

func (d XYData) validate(name string) error {
	if len(d.X) == 0 {
		return fmt.Errorf("series %q: no data points", name)
	}
	if len(d.X) != len(d.Y) {
		return fmt.Errorf("series %q: x and y length mismatch (%d != %d)", name, len(d.X), len(d.Y))
	}
	if d.XErr != nil && len(d.XErr) != len(d.X) {
		return fmt.Errorf("series %q: x error bar length mismatch (%d != %d)", name, len(d.XErr), len(d.X))
	}
	if d.YErr != nil && len(d.YErr) != len(d.Y) {
		return fmt.Errorf("series %q: y error bar length mismatch (%d != %d)", name, len(d.YErr), len(d.Y))
	}
	return nil
}

func (d XData) validate(name string) error {
	if len(d.X) == 0 {
		return fmt.Errorf("sample set %q: no data points", name)
	}
	return nil
}
