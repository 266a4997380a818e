package geometry2D

import (
	"fmt"
	"math"

	"github.com/notargets/gondg/utils"
)

type Point struct {
	X [2]float64
}

// Mesh is an unstructured triangle mesh, vertex indices are 0-based and
// every triangle is counter-clockwise.
type Mesh struct {
	Points    []Point
	Triangles [][3]int
}

// NewMesh validates the connectivity and re-orients clockwise triangles.
// Degenerate triangles and out of range vertex indices are returned as errors.
func NewMesh(points []Point, tris [][3]int) (m *Mesh, err error) {
	m = &Mesh{
		Points:    points,
		Triangles: tris,
	}
	for k, tri := range tris {
		for _, v := range tri {
			if v < 0 || v >= len(points) {
				err = fmt.Errorf("triangle %d references vertex %d, have %d vertices", k, v, len(points))
				return
			}
		}
		if tri[0] == tri[1] || tri[1] == tri[2] || tri[2] == tri[0] {
			err = fmt.Errorf("triangle %d has a repeated vertex: %v", k, tri)
			return
		}
	}
	m.Orient()
	for k := range m.Triangles {
		if area := m.SignedArea(k); area < math.SmallestNonzeroFloat64 {
			err = fmt.Errorf("triangle %d is degenerate, area = %v", k, area)
			return
		}
	}
	return
}

// Orient swaps the last two vertices of every clockwise triangle, returns the
// number of triangles changed.
func (m *Mesh) Orient() (flipped int) {
	for k, tri := range m.Triangles {
		if m.SignedArea(k) < 0 {
			m.Triangles[k] = [3]int{tri[0], tri[2], tri[1]}
			flipped++
		}
	}
	return
}

// SignedArea is positive for a counter-clockwise triangle.
func (m *Mesh) SignedArea(k int) float64 {
	var (
		tri      = m.Triangles[k]
		a, b, c  = m.Points[tri[0]].X, m.Points[tri[1]].X, m.Points[tri[2]].X
		abx, aby = b[0] - a[0], b[1] - a[1]
		acx, acy = c[0] - a[0], c[1] - a[1]
	)
	return 0.5 * (abx*acy - acx*aby)
}

func (m *Mesh) K() int { return len(m.Triangles) }

func (m *Mesh) VXVY() (VX, VY utils.Vector) {
	VX, VY = utils.NewVector(len(m.Points)), utils.NewVector(len(m.Points))
	for i, pt := range m.Points {
		VX.DataP[i], VY.DataP[i] = pt.X[0], pt.X[1]
	}
	return
}

func (m *Mesh) Bounds() (xmin, xmax, ymin, ymax float64) {
	xmin, ymin = math.MaxFloat64, math.MaxFloat64
	xmax, ymax = -math.MaxFloat64, -math.MaxFloat64
	for _, pt := range m.Points {
		xmin, xmax = math.Min(xmin, pt.X[0]), math.Max(xmax, pt.X[0])
		ymin, ymax = math.Min(ymin, pt.X[1]), math.Max(ymax, pt.X[1])
	}
	return
}

// NewRectangleMesh splits each cell of an nx by ny lattice over the box into
// two triangles along the cell diagonal, for 2*nx*ny triangles.
func NewRectangleMesh(xmin, xmax, ymin, ymax float64, nx, ny int) (m *Mesh) {
	if nx < 1 || ny < 1 {
		panic(fmt.Errorf("rectangle mesh needs at least one cell, have %d x %d", nx, ny))
	}
	m = &Mesh{
		Points:    LatticePoints(xmin, xmax, ymin, ymax, nx, ny),
		Triangles: make([][3]int, 0, 2*nx*ny),
	}
	node := func(i, j int) int { return j*(nx+1) + i }
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			v00, v10, v11, v01 := node(i, j), node(i+1, j), node(i+1, j+1), node(i, j+1)
			m.Triangles = append(m.Triangles,
				[3]int{v00, v10, v11},
				[3]int{v00, v11, v01})
		}
	}
	return
}

// LatticePoints returns the (nx+1)*(ny+1) lattice points over the box, x
// varies fastest.
func LatticePoints(xmin, xmax, ymin, ymax float64, nx, ny int) (pts []Point) {
	var (
		xs = utils.Linspace(xmin, xmax, nx+1).DataP
		ys = utils.Linspace(ymin, ymax, ny+1).DataP
	)
	pts = make([]Point, 0, len(xs)*len(ys))
	for _, y := range ys {
		for _, x := range xs {
			pts = append(pts, Point{X: [2]float64{x, y}})
		}
	}
	return
}
