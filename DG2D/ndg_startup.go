package DG2D

import (
	"fmt"
	"math"

	"github.com/notargets/gondg/utils"
)

// NDG2D is a nodal DG discretization of a triangle mesh. Volume data is
// stored [Np, K], face data [NFaces*Nfp, K] in face order.
type NDG2D struct {
	Element                *LagrangeElement2D
	K                      int
	VX, VY                 utils.Vector
	EToV                   [][3]int
	EToE, EToF             [][3]int // -1 marks a boundary face
	X, Y                   utils.Matrix
	Rx, Ry, Sx, Sy, J      utils.Matrix
	NX, NY, SJ, FScale     utils.Matrix
	Tris                   *Triangulation
	FaceNodeX, FaceNodeY   utils.Matrix
	InscribedRadiusMinimum float64
}

func NewNDG2D(N int, VX, VY utils.Vector, EToV [][3]int) (dg *NDG2D) {
	return NewNDG2DWithElement(NewLagrangeElement2D(N), VX, VY, EToV)
}

// NewNDG2DWithElement shares an already built reference element.
func NewNDG2DWithElement(el *LagrangeElement2D, VX, VY utils.Vector, EToV [][3]int) (dg *NDG2D) {
	dg = &NDG2D{
		Element: el,
		K:       len(EToV),
		VX:      VX,
		VY:      VY,
		EToV:    EToV,
	}
	dg.Startup2D()
	return
}

func (dg *NDG2D) Startup2D() {
	var (
		el = dg.Element
	)
	dg.Tris = NewTriangulation(dg.EToV)
	dg.EToE, dg.EToF = dg.Tris.Connect2D(dg.K)

	// Map the reference nodes onto each triangle
	// x = 0.5*(-(r+s)*VX(va) + (1+r)*VX(vb) + (1+s)*VX(vc))
	dg.X, dg.Y = utils.NewMatrix(el.Np, dg.K), utils.NewMatrix(el.Np, dg.K)
	for k, tri := range dg.EToV {
		var (
			xa, xb, xc = dg.VX.AtVec(tri[0]), dg.VX.AtVec(tri[1]), dg.VX.AtVec(tri[2])
			ya, yb, yc = dg.VY.AtVec(tri[0]), dg.VY.AtVec(tri[1]), dg.VY.AtVec(tri[2])
		)
		for i := 0; i < el.Np; i++ {
			r, s := el.R.AtVec(i), el.S.AtVec(i)
			dg.X.Set(i, k, 0.5*(-(r+s)*xa+(1+r)*xb+(1+s)*xc))
			dg.Y.Set(i, k, 0.5*(-(r+s)*ya+(1+r)*yb+(1+s)*yc))
		}
	}
	dg.GeometricFactors2D()
	if jMin := dg.J.Min(); jMin <= 0 {
		_, cols := dg.J.Find(utils.LessOrEqual, 0)
		panic(fmt.Errorf("singular or inverted element Jacobian, min J = %v in element %d", jMin, cols[0]))
	}
	dg.Normals2D()
	fm := el.FMaskAll()
	dg.FaceNodeX, dg.FaceNodeY = dg.X.SliceRows(fm), dg.Y.SliceRows(fm)
	dg.InscribedRadiusMinimum = dg.minInscribedRadius()
}

func (dg *NDG2D) GeometricFactors2D() {
	var (
		el = dg.Element
	)
	xr, xs := el.Grad2D(dg.X)
	yr, ys := el.Grad2D(dg.Y)
	dg.J = xr.Copy().ElMul(ys).Subtract(xs.Copy().ElMul(yr))
	dg.Rx = ys.Copy().ElDiv(dg.J)
	dg.Sx = yr.Copy().Scale(-1).ElDiv(dg.J)
	dg.Ry = xs.Copy().Scale(-1).ElDiv(dg.J)
	dg.Sy = xr.Copy().ElDiv(dg.J)
}

// Normals2D computes the outward unit normals, surface Jacobian and face
// scale FScale = sJ/J on every face node.
func (dg *NDG2D) Normals2D() {
	var (
		el  = dg.Element
		fm  = el.FMaskAll()
		Nf  = el.NFaces * el.Nfp
		Nfp = el.Nfp
	)
	xr, xs := el.Grad2D(dg.X)
	yr, ys := el.Grad2D(dg.Y)
	fxr, fxs := xr.SliceRows(fm), xs.SliceRows(fm)
	fyr, fys := yr.SliceRows(fm), ys.SliceRows(fm)
	dg.NX, dg.NY = utils.NewMatrix(Nf, dg.K), utils.NewMatrix(Nf, dg.K)
	dg.SJ, dg.FScale = utils.NewMatrix(Nf, dg.K), utils.NewMatrix(Nf, dg.K)
	for k := 0; k < dg.K; k++ {
		for i := 0; i < Nf; i++ {
			var nx, ny float64
			switch i / Nfp {
			case 0:
				nx, ny = fyr.At(i, k), -fxr.At(i, k)
			case 1:
				nx, ny = fys.At(i, k)-fyr.At(i, k), -fxs.At(i, k)+fxr.At(i, k)
			case 2:
				nx, ny = -fys.At(i, k), fxs.At(i, k)
			}
			sJ := math.Sqrt(nx*nx + ny*ny)
			dg.NX.Set(i, k, nx/sJ)
			dg.NY.Set(i, k, ny/sJ)
			dg.SJ.Set(i, k, sJ)
			dg.FScale.Set(i, k, sJ/dg.J.At(fm[i], k))
		}
	}
}

// MatchFaceNodes pairs the nodes of face f on element k with the nodes of the
// same edge seen from the neighbor, by physical coordinates. The returned
// slice holds neighbor face-local node indices.
func (dg *NDG2D) MatchFaceNodes(k, f, kn, fn int) (match []int) {
	var (
		Nfp = dg.Element.Nfp
	)
	match = make([]int, Nfp)
	for i := 0; i < Nfp; i++ {
		var (
			row   = f*Nfp + i
			x, y  = dg.FaceNodeX.At(row, k), dg.FaceNodeY.At(row, k)
			best  = -1
			dBest = math.MaxFloat64
		)
		for j := 0; j < Nfp; j++ {
			rowN := fn*Nfp + j
			dx, dy := dg.FaceNodeX.At(rowN, kn)-x, dg.FaceNodeY.At(rowN, kn)-y
			if d := dx*dx + dy*dy; d < dBest {
				best, dBest = j, d
			}
		}
		if scale := dg.edgeLength(k, f); math.Sqrt(dBest) > NODETOL*math.Max(scale, 1) {
			panic(fmt.Errorf("face nodes of element %d face %d do not coincide with element %d face %d",
				k, f, kn, fn))
		}
		match[i] = best
	}
	return
}

func (dg *NDG2D) edgeLength(k, f int) float64 {
	var (
		tri    = dg.EToV[k]
		v0, v1 = tri[f], tri[(f+1)%3]
	)
	dx, dy := dg.VX.AtVec(v1)-dg.VX.AtVec(v0), dg.VY.AtVec(v1)-dg.VY.AtVec(v0)
	return math.Sqrt(dx*dx + dy*dy)
}

// InscribedRadius returns the radius of the circle inscribed in triangle k.
func (dg *NDG2D) InscribedRadius(k int) (r float64) {
	var (
		a, b, c = dg.edgeLength(k, 0), dg.edgeLength(k, 1), dg.edgeLength(k, 2)
		s       = 0.5 * (a + b + c)
	)
	r = math.Sqrt((s - a) * (s - b) * (s - c) / s)
	return
}

func (dg *NDG2D) minInscribedRadius() (rMin float64) {
	rMin = math.MaxFloat64
	for k := 0; k < dg.K; k++ {
		rMin = math.Min(rMin, dg.InscribedRadius(k))
	}
	return
}

// Curl2D returns the z component of the curl of (Ux, Uy) and the in-plane
// curl components of a scalar Uz.
func (dg *NDG2D) Curl2D(Ux, Uy, Uz utils.Matrix) (Vx, Vy, Vz utils.Matrix) {
	var (
		el = dg.Element
	)
	if !Uz.IsEmpty() {
		uzr, uzs := el.Grad2D(Uz)
		Vx = uzr.Copy().ElMul(dg.Ry).Add(uzs.Copy().ElMul(dg.Sy))
		Vy = uzr.ElMul(dg.Rx).Add(uzs.ElMul(dg.Sx)).Scale(-1)
	}
	if !Ux.IsEmpty() && !Uy.IsEmpty() {
		uxr, uxs := el.Grad2D(Ux)
		uyr, uys := el.Grad2D(Uy)
		Vz = uyr.ElMul(dg.Rx).Add(uys.ElMul(dg.Sx)).
			Subtract(uxr.ElMul(dg.Ry).Add(uxs.ElMul(dg.Sy)))
	}
	return
}

// Grad2D returns the physical gradient of U.
func (dg *NDG2D) Grad2D(U utils.Matrix) (Ux, Uy utils.Matrix) {
	ur, us := dg.Element.Grad2D(U)
	Ux = ur.Copy().ElMul(dg.Rx).Add(us.Copy().ElMul(dg.Sx))
	Uy = ur.ElMul(dg.Ry).Add(us.ElMul(dg.Sy))
	return
}
