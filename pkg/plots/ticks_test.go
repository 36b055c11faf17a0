package plots

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot"
)

func TestSpacingTicks(t *testing.T) {
	got := spacingTicks{Major: 1}.Ticks(0, 4)

	want := []plot.Tick{
		{Value: 0, Label: "0"},
		{Value: 1, Label: "1"},
		{Value: 2, Label: "2"},
		{Value: 3, Label: "3"},
		{Value: 4, Label: "4"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ticks mismatch (-want +got):\n%s", diff)
	}
}

func TestSpacingTicks_Minors(t *testing.T) {
	ticks := spacingTicks{Major: 1, Minor: 0.5}.Ticks(0, 2)

	var minors []float64
	for _, tk := range ticks {
		if tk.Label == "" {
			minors = append(minors, tk.Value)
		}
	}
	assert.Equal(t, []float64{0.5, 1.5}, minors, "minors must skip major positions")
}

func TestSpacingTicks_OffsetRange(t *testing.T) {
	ticks := spacingTicks{Major: 2}.Ticks(1, 7)
	var majors []float64
	for _, tk := range ticks {
		if tk.Label != "" {
			majors = append(majors, tk.Value)
		}
	}
	assert.Equal(t, []float64{2, 4, 6}, majors, "majors stay anchored at zero")
}

func TestTickLabel(t *testing.T) {
	assert.Equal(t, "2", tickLabel(2, 1))
	assert.Equal(t, "0.5", tickLabel(0.5, 0.5))
	assert.Equal(t, "0.3", tickLabel(0.30000000000000004, 0.1))
	assert.Equal(t, "0.00", tickLabel(-0.0, 0.05))
}

func TestAutoRange(t *testing.T) {
	t.Run("pads linear", func(t *testing.T) {
		lo, hi, err := autoRange(1, 3, false)
		require.NoError(t, err)
		assert.InDelta(t, 0.9, lo, 1e-12)
		assert.InDelta(t, 3.1, hi, 1e-12)
	})

	t.Run("constant data", func(t *testing.T) {
		lo, hi, err := autoRange(5, 5, false)
		require.NoError(t, err)
		assert.Equal(t, 4.5, lo)
		assert.Equal(t, 5.5, hi)
	})

	t.Run("log pads multiplicatively", func(t *testing.T) {
		lo, hi, err := autoRange(1, 100, true)
		require.NoError(t, err)
		assert.InDelta(t, 1/1.2, lo, 1e-12)
		assert.InDelta(t, 120, hi, 1e-12)
	})

	t.Run("log rejects nonpositive", func(t *testing.T) {
		_, _, err := autoRange(-1, 2, true)
		assert.Error(t, err)
	})
}

func TestResolveRange(t *testing.T) {
	f := func(v float64) *float64 { return &v }

	t.Run("both pinned verbatim", func(t *testing.T) {
		lo, hi, err := resolveRange(Axis{Min: f(2), Max: f(8)}, 0, 100)
		require.NoError(t, err)
		assert.Equal(t, 2.0, lo)
		assert.Equal(t, 8.0, hi)
	})

	t.Run("min pinned max from data", func(t *testing.T) {
		lo, hi, err := resolveRange(Axis{Min: f(0)}, 1, 3)
		require.NoError(t, err)
		assert.Equal(t, 0.0, lo)
		assert.InDelta(t, 3.1, hi, 1e-12)
	})

	t.Run("empty range rejected", func(t *testing.T) {
		_, _, err := resolveRange(Axis{Min: f(5), Max: f(5)}, 0, 10)
		assert.Error(t, err)
	})
}

func TestAxisTicker(t *testing.T) {
	assert.IsType(t, spacingTicks{}, axisTicker(Axis{MajorTickSpacing: 2}))

	// Log wins over explicit spacing.
	ticks := axisTicker(Axis{Log: true, MajorTickSpacing: 2}).Ticks(1, 1000)
	assert.NotEmpty(t, ticks)
}
