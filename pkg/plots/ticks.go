package plots

import (
	"fmt"
	"math"

	"gonum.org/v1/plot"
)

// spacingTicks places labeled major ticks every Major units and
// unlabeled minor ticks every Minor units, anchored at zero.
type spacingTicks struct {
	Major float64
	Minor float64
}

func (t spacingTicks) Ticks(min, max float64) []plot.Tick {
	if t.Major <= 0 || max <= min {
		return plot.DefaultTicks{}.Ticks(min, max)
	}
	var ticks []plot.Tick
	eps := (max - min) * 1e-9
	for v := math.Ceil((min-eps)/t.Major) * t.Major; v <= max+eps; v += t.Major {
		ticks = append(ticks, plot.Tick{Value: v, Label: tickLabel(v, t.Major)})
	}
	if t.Minor > 0 && t.Minor < t.Major {
		for v := math.Ceil((min-eps)/t.Minor) * t.Minor; v <= max+eps; v += t.Minor {
			if mod := math.Abs(math.Mod(v, t.Major)); mod > eps && t.Major-mod > eps {
				ticks = append(ticks, plot.Tick{Value: v})
			}
		}
	}
	return ticks
}

// tickLabel formats v with just enough precision for the given step,
// avoiding float noise like 0.30000000000000004.
func tickLabel(v, step float64) string {
	prec := 0
	for s := step; s < 1 && prec < 10; s *= 10 {
		prec++
	}
	v = math.Round(v/step) * step
	if v == 0 {
		v = 0 // normalize -0
	}
	return fmt.Sprintf("%.*f", prec, v)
}

// axisTicker picks the tick marker for an axis: log ticks on log axes,
// fixed spacing when requested, default ticks otherwise.
func axisTicker(a Axis) plot.Ticker {
	if a.Log {
		return plot.LogTicks{Prec: -1}
	}
	if a.MajorTickSpacing > 0 {
		return spacingTicks{Major: a.MajorTickSpacing, Minor: a.MinorTickSpacing}
	}
	return plot.DefaultTicks{}
}

// autoRange pads the observed data range so points do not sit on the
// frame. Constant data still yields a non-empty range.
func autoRange(min, max float64, log bool) (float64, float64, error) {
	if math.IsNaN(min) || math.IsNaN(max) {
		return 0, 0, fmt.Errorf("data range is undefined")
	}
	if log {
		if min <= 0 {
			return 0, 0, fmt.Errorf("log scale requires positive data, got minimum %v", min)
		}
		if min == max {
			return min / 2, max * 2, nil
		}
		return min / 1.2, max * 1.2, nil
	}
	if min == max {
		return min - 0.5, max + 0.5, nil
	}
	pad := 0.05 * (max - min)
	return min - pad, max + pad, nil
}

// rangeOf folds vs into the running (min, max) accumulator.
func rangeOf(min, max float64, vs ...float64) (float64, float64) {
	for _, v := range vs {
		if math.IsNaN(v) {
			continue
		}
		min = math.Min(min, v)
		max = math.Max(max, v)
	}
	return min, max
}

// resolveRange combines the axis pin (Min/Max) with the observed data
// range. Pinned bounds are used verbatim.
func resolveRange(a Axis, dataMin, dataMax float64) (float64, float64, error) {
	var lo, hi float64
	if a.Min != nil && a.Max != nil {
		lo, hi = *a.Min, *a.Max
	} else {
		var err error
		lo, hi, err = autoRange(dataMin, dataMax, a.Log)
		if err != nil {
			return 0, 0, err
		}
		if a.Min != nil {
			lo = *a.Min
		}
		if a.Max != nil {
			hi = *a.Max
		}
	}
	if hi <= lo {
		return 0, 0, fmt.Errorf("empty axis range [%v, %v]", lo, hi)
	}
	return lo, hi, nil
}
