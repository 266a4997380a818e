package graphics

import (
	"time"

	"github.com/notargets/avs/chart2d"
	"github.com/notargets/avs/geometry"
	utils2 "github.com/notargets/avs/utils"

	"github.com/notargets/gondg/geometry2D"
)

// NodeMarkers packs a small cross at every (x[i], y[i]) as line segments,
// size is the half width of each arm.
func NodeMarkers(x, y []float64, size float64) (XY []float32) {
	n := len(x)
	if len(y) < n {
		n = len(y)
	}
	XY = make([]float32, 0, 8*n)
	for i := 0; i < n; i++ {
		xx, yy := float32(x[i]), float32(y[i])
		d := float32(size)
		XY = utils2.AddSegmentToLine(XY, xx-d, yy, xx+d, yy)
		XY = utils2.AddSegmentToLine(XY, xx, yy-d, xx, yy+d)
	}
	return
}

// PlotMesh draws the triangles of m and, when plotPoints is set, the element
// nodes (x, y).
func PlotMesh(m *geometry2D.Mesh, x, y []float64, plotPoints bool) (chart *chart2d.Chart2D) {
	var (
		trimesh                = m.ToGraphMesh()
		xmin, xmax, ymin, ymax = m.Bounds()
		margin                 = 0.25 * max(xmax-xmin, ymax-ymin)
	)
	chart = chart2d.NewChart2D(float32(xmin-margin), float32(xmax+margin),
		float32(ymin-margin), float32(ymax+margin), 1024, 1024, utils2.WHITE, utils2.BLACK)
	chart.AddTriMesh(trimesh)
	if plotPoints && len(x) != 0 {
		chart.AddLine(NodeMarkers(x, y, 0.005*max(xmax-xmin, ymax-ymin)), GetColor(Red))
	}
	return
}

// SurfacePlot shades a field given at the mesh vertices.
type SurfacePlot struct {
	Chart        *chart2d.Chart2D
	GraphicsMesh *geometry.TriMesh
	FMin, FMax   float32
	Delay        time.Duration
	surface      utils2.Key
	drawn        bool
}

func NewSurfacePlot(width, height int, m *geometry2D.Mesh, fmin, fmax float64) (sp *SurfacePlot) {
	var (
		gm                     = m.ToGraphMesh()
		xmin, xmax, ymin, ymax = m.Bounds()
	)
	sp = &SurfacePlot{
		Chart: chart2d.NewChart2D(float32(xmin), float32(xmax), float32(ymin), float32(ymax),
			width, height, utils2.WHITE, utils2.BLACK),
		GraphicsMesh: &gm,
		FMin:         float32(fmin),
		FMax:         float32(fmax),
	}
	return
}

// Plot replaces the surface with field, one value per mesh vertex.
func (sp *SurfacePlot) Plot(field []float64) {
	vs := &geometry.VertexScalar{
		TMesh:       sp.GraphicsMesh,
		FieldValues: make([]float32, len(field)),
	}
	for i, v := range field {
		vs.FieldValues[i] = float32(v)
	}
	if !sp.drawn {
		sp.surface = sp.Chart.AddShadedVertexScalar(vs, sp.FMin, sp.FMax)
		sp.Chart.AddTriMesh(*sp.GraphicsMesh)
		sp.drawn = true
	} else {
		sp.Chart.UpdateShadedVertexScalar(sp.Chart.GetCurrentWindow(), sp.surface, vs)
	}
	if sp.Delay > 0 {
		time.Sleep(sp.Delay)
	}
}
