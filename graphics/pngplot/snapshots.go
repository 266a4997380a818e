package pngplot

import (
	"fmt"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Snapshots writes one PNG scatter plot of the field per call. It satisfies
// galerkin.Sink. The first write error is kept in Err and stops further
// output.
type Snapshots struct {
	Dir, Prefix   string
	Title, Label  string
	YMin, YMax    float64 // fixed vertical range when YMax > YMin
	Width, Height vg.Length
	Files         []string
	Err           error
}

func NewSnapshots(dir, prefix, title string) *Snapshots {
	return &Snapshots{
		Dir:    dir,
		Prefix: prefix,
		Title:  title,
		Label:  "U",
		Width:  6 * vg.Inch,
		Height: 4 * vg.Inch,
	}
}

func (s *Snapshots) Plot(step int, t float64, x, f []float64) {
	if s.Err != nil {
		return
	}
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s, t = %8.4f", s.Title, t)
	p.X.Label.Text = "x"
	p.Y.Label.Text = s.Label
	pts := make(plotter.XYs, len(x))
	for i := range x {
		pts[i].X, pts[i].Y = x[i], f[i]
	}
	sc, err := plotter.NewScatter(pts)
	if err != nil {
		s.Err = err
		return
	}
	sc.GlyphStyle.Radius = vg.Points(1.5)
	p.Add(sc, plotter.NewGrid())
	if s.YMax > s.YMin {
		p.Y.Min, p.Y.Max = s.YMin, s.YMax
	}
	file := filepath.Join(s.Dir, fmt.Sprintf("%s_%06d.png", s.Prefix, step))
	if s.Err = p.Save(s.Width, s.Height, file); s.Err != nil {
		return
	}
	s.Files = append(s.Files, file)
}
