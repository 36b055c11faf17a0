package plots

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgeps"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"
	"gonum.org/v1/plot/vg/vgsvg"
)

// baseWidth is the unscaled figure width in inches.
const baseWidth = 6.4

// Formats lists the supported output file extensions.
var Formats = []string{".pdf", ".png", ".svg", ".eps", ".jpg", ".jpeg", ".tif", ".tiff"}

func figureSize(f Figure) (w, h vg.Length) {
	w = vg.Length(baseWidth*f.Scale) * vg.Inch
	h = w * vg.Length(f.Aspect)
	return w, h
}

// writeFigure renders onto a backend chosen by the filename extension
// and writes the result. render receives the full figure canvas.
func writeFigure(filename string, f Figure, render func(dc draw.Canvas) error) error {
	w, h := figureSize(f)
	ext := strings.ToLower(filepath.Ext(filename))

	var out io.WriterTo
	switch ext {
	case ".png", ".jpg", ".jpeg", ".tif", ".tiff":
		c := vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(int(f.DPI)))
		if err := render(draw.New(c)); err != nil {
			return err
		}
		switch ext {
		case ".png":
			out = vgimg.PngCanvas{Canvas: c}
		case ".jpg", ".jpeg":
			out = vgimg.JpegCanvas{Canvas: c}
		default:
			out = vgimg.TiffCanvas{Canvas: c}
		}
	case ".pdf":
		c := vgpdf.New(w, h)
		if err := render(draw.New(c)); err != nil {
			return err
		}
		out = c
	case ".svg":
		c := vgsvg.New(w, h)
		if err := render(draw.New(c)); err != nil {
			return err
		}
		out = c
	case ".eps":
		c := vgeps.New(w, h)
		if err := render(draw.New(c)); err != nil {
			return err
		}
		out = c
	case "":
		return fmt.Errorf("output %q has no extension to infer a format from", filename)
	default:
		return fmt.Errorf("unsupported output format %q (supported: %s)", ext, strings.Join(Formats, " "))
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if _, err := out.WriteTo(file); err != nil {
		file.Close()
		return fmt.Errorf("write figure: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}
	return nil
}

// styleAxis applies the shared axis look: fonts, stroke widths, tick
// length, ticker, and log scale.
func styleAxis(ax *plot.Axis, a Axis, strokeWidth, tickLen, axisFont, tickFont float64) {
	ax.Label.Text = a.Label
	ax.Label.TextStyle.Font.Size = vg.Points(axisFont)
	ax.Tick.Label.Font.Size = vg.Points(tickFont)
	ax.LineStyle.Width = vg.Points(strokeWidth)
	ax.Tick.LineStyle.Width = vg.Points(strokeWidth)
	ax.Tick.Length = vg.Points(tickLen)
	ax.Tick.Marker = axisTicker(a)
	if a.Log {
		ax.Scale = plot.LogScale{}
	}
}

// placeLegend maps a location keyword onto gonum legend placement.
// "best" falls back to the upper right corner.
func placeLegend(p *plot.Plot, loc string, fontSize float64) {
	p.Legend.TextStyle.Font.Size = vg.Points(fontSize)
	switch loc {
	case "upper left":
		p.Legend.Top, p.Legend.Left = true, true
	case "lower left":
		p.Legend.Top, p.Legend.Left = false, true
	case "lower right":
		p.Legend.Top, p.Legend.Left = false, false
	default: // "best", "upper right"
		p.Legend.Top, p.Legend.Left = true, false
	}
	pad := vg.Points(6)
	if p.Legend.Left {
		p.Legend.XOffs = pad
	} else {
		p.Legend.XOffs = -pad
	}
	if p.Legend.Top {
		p.Legend.YOffs = -pad
	} else {
		p.Legend.YOffs = pad
	}
}
