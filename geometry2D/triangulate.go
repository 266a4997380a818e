package geometry2D

import (
	"fmt"
	"math"

	"github.com/notargets/avs/geometry"
	"github.com/pradeep-pyro/triangle"
)

// NewDelaunayMesh triangulates the point set with Shewchuk's Triangle.
func NewDelaunayMesh(points []Point) (m *Mesh, err error) {
	if len(points) < 3 {
		err = fmt.Errorf("need at least three points to triangulate, have %d", len(points))
		return
	}
	pts := make([][2]float64, len(points))
	for i, pt := range points {
		pts[i] = pt.X
	}
	tris32 := triangle.Delaunay(pts)
	tris := make([][3]int, len(tris32))
	for k, tri := range tris32 {
		tris[k] = [3]int{int(tri[0]), int(tri[1]), int(tri[2])}
	}
	return NewMesh(points, tris)
}

/*
IsIllegalEdge reports whether pr lies strictly inside the circle through
pi, pj, pk. When pi-pj is shared between pi-pj-pk and pi-pj-pr this means the
edge pi-pj should be swapped with pr-pk.
*/
func IsIllegalEdge(prX, prY, piX, piY, pjX, pjY, pkX, pkY float64) bool {
	inCircle := func(ax, ay, bx, by, cx, cy, dx, dy float64) (inside bool) {
		// Handedness, counter-clockwise is positive
		signBit := math.Signbit((bx-ax)*(cy-ay) - (cx-ax)*(by-ay))
		ax_, ay_ := ax-dx, ay-dy
		bx_, by_ := bx-dx, by-dy
		cx_, cy_ := cx-dx, cy-dy
		det := (ax_*ax_+ay_*ay_)*(bx_*cy_-cx_*by_) -
			(bx_*bx_+by_*by_)*(ax_*cy_-cx_*ay_) +
			(cx_*cx_+cy_*cy_)*(ax_*by_-bx_*ay_)
		// Cocircular points are legal either way
		tol := 1.e-12 * (ax_*ax_ + ay_*ay_ + bx_*bx_ + by_*by_ + cx_*cx_ + cy_*cy_)
		if signBit {
			return det < -tol
		}
		return det > tol
	}
	return inCircle(piX, piY, pjX, pjY, pkX, pkY, prX, prY)
}

// IllegalEdges counts the interior edges that fail the empty circle test.
func (m *Mesh) IllegalEdges() (count int) {
	type owner struct{ k, opposite int }
	edges := make(map[[2]int][]owner)
	for k, tri := range m.Triangles {
		for f := 0; f < 3; f++ {
			v0, v1 := tri[f], tri[(f+1)%3]
			if v0 > v1 {
				v0, v1 = v1, v0
			}
			key := [2]int{v0, v1}
			edges[key] = append(edges[key], owner{k, tri[(f+2)%3]})
		}
	}
	for key, owners := range edges {
		if len(owners) != 2 {
			continue
		}
		var (
			pi, pj = m.Points[key[0]].X, m.Points[key[1]].X
			pk     = m.Points[owners[0].opposite].X
			pr     = m.Points[owners[1].opposite].X
		)
		if IsIllegalEdge(pr[0], pr[1], pi[0], pi[1], pj[0], pj[1], pk[0], pk[1]) {
			count++
		}
	}
	return
}

// ToGraphMesh converts to the avs geometry used for plotting, vertex
// coordinates packed as X1,Y1,X2,Y2...
func (m *Mesh) ToGraphMesh() geometry.TriMesh {
	XY := make([]float32, 2*len(m.Points))
	for i, pt := range m.Points {
		XY[2*i] = float32(pt.X[0])
		XY[2*i+1] = float32(pt.X[1])
	}
	verts := make([][3]int64, len(m.Triangles))
	for k, tri := range m.Triangles {
		verts[k] = [3]int64{int64(tri[0]), int64(tri[1]), int64(tri[2])}
	}
	return geometry.NewTriMesh(XY, verts)
}
