package graphics

import (
	"image/color"
	"time"

	"github.com/notargets/avs/chart2d"
	utils2 "github.com/notargets/avs/utils"
)

type ColorName uint8

const (
	White ColorName = iota
	Blue
	Red
	Green
	Black
)

func GetColor(name ColorName) (c color.RGBA) {
	switch name {
	case White:
		c = utils2.WHITE
	case Blue:
		c = utils2.BLUE
	case Red:
		c = utils2.RED
	case Green:
		c = utils2.GREEN
	case Black:
		c = utils2.BLACK
	}
	return
}

// LineSegments packs the polyline through (x[i], f[i]) as segment pairs
// X1,Y1,X2,Y2 for chart2d.AddLine.
func LineSegments(x, f []float64) (XY []float32) {
	n := len(x)
	if len(f) < n {
		n = len(f)
	}
	if n < 2 {
		return
	}
	XY = make([]float32, 0, 4*(n-1))
	for i := 0; i < n-1; i++ {
		XY = utils2.AddSegmentToLine(XY, float32(x[i]), float32(f[i]),
			float32(x[i+1]), float32(f[i+1]))
	}
	return
}

// LineChart draws one field component against x in a live window. It
// satisfies galerkin.Sink, each call replaces the line.
type LineChart struct {
	Chart     *chart2d.Chart2D
	Name      string
	LineColor color.RGBA
	Delay     time.Duration
	line      utils2.Key
	drawn     bool
}

func NewLineChart(width, height int, xmin, xmax, fmin, fmax float64, name string) (lc *LineChart) {
	lc = &LineChart{
		Chart: chart2d.NewChart2D(float32(xmin), float32(xmax), float32(fmin), float32(fmax),
			width, height, utils2.WHITE, utils2.BLACK),
		Name:      name,
		LineColor: GetColor(Red),
	}
	return
}

func (lc *LineChart) Plot(_ int, _ float64, x, f []float64) {
	XY := LineSegments(x, f)
	if len(XY) == 0 {
		return
	}
	if !lc.drawn {
		lc.line = lc.Chart.AddLine(XY, lc.LineColor)
		lc.drawn = true
	} else {
		lc.Chart.UpdateLine(lc.Chart.GetCurrentWindow(), lc.line, XY, nil)
	}
	if lc.Delay > 0 {
		time.Sleep(lc.Delay)
	}
}
