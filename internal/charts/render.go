package charts

import (
	"image/color"
	"math"
	"os"

	"golang.org/x/image/colornames"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	lpberrors "lpbcli/internal/errors"
)

// Palette
var (
	barColor       color.Color = colornames.Steelblue
	passColor      color.Color = colornames.Steelblue
	failColor      color.Color = colornames.Darkorange
	referenceColor color.Color = colornames.Red
)

// referenceStyle is the dashed style of the zero-margin line
func referenceStyle() draw.LineStyle {
	return draw.LineStyle{
		Color:  referenceColor,
		Width:  vg.Points(1),
		Dashes: []vg.Length{vg.Points(4), vg.Points(2)},
	}
}

// newPlot creates a plot with title and axis labels set
func newPlot(title, xLabel, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	return p
}

// referenceLine returns a dashed segment from (x0, y0) to (x1, y1)
func referenceLine(x0, y0, x1, y1 float64) (*plotter.Line, error) {
	line, err := plotter.NewLine(plotter.XYs{{X: x0, Y: y0}, {X: x1, Y: y1}})
	if err != nil {
		return nil, err
	}
	line.LineStyle = referenceStyle()
	return line, nil
}

// finite drops NaN and infinite values
func finite(values []float64) plotter.Values {
	out := make(plotter.Values, 0, len(values))
	for _, v := range values {
		if isFinite(v) {
			out = append(out, v)
		}
	}
	return out
}

// save renders p as a PNG of the given size at dpi and writes it to path
func save(op string, p *plot.Plot, widthIn, heightIn float64, dpi int, path string) error {
	c := vgimg.NewWith(
		vgimg.UseWH(vg.Length(widthIn)*vg.Inch, vg.Length(heightIn)*vg.Inch),
		vgimg.UseDPI(dpi),
	)
	p.Draw(draw.New(c))

	f, err := os.Create(path)
	if err != nil {
		return lpberrors.NewRenderError(op, "failed to create image file", err).
			WithContext(lpberrors.ContextPath, path)
	}
	defer f.Close()

	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(f); err != nil {
		return lpberrors.NewRenderError(op, "failed to encode PNG", err).
			WithContext(lpberrors.ContextPath, path)
	}
	if err := f.Close(); err != nil {
		return lpberrors.NewRenderError(op, "failed to close image file", err).
			WithContext(lpberrors.ContextPath, path)
	}
	return nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
