package galerkin

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gondg/DG1D"
	"github.com/notargets/gondg/geometry2D"
	"github.com/notargets/gondg/utils"
)

func newGrid1D(N, K int, left, right BoundaryCondition) *Grid {
	VX, EToV := DG1D.SimpleMesh1D(0, 2, K)
	ref := Legendre1D(N)
	return AssembleGrid1D(ref, AssembleOperators(ref), VX, EToV, left, right)
}

func newGrid2D(N, nx int) *Grid {
	ref := Legendre2D(N)
	mesh := geometry2D.NewRectangleMesh(-1, 1, -1, 1, nx, nx)
	return AssembleGrid2D(ref, AssembleOperators(ref), mesh, UniformBoundary(PEC()))
}

func TestOperators(t *testing.T) {
	{
		ref := Legendre1D(4)
		ops := AssembleOperators(ref)
		assert.Equal(t, 5, ref.Np)
		assert.Equal(t, -1., ref.R.AtVec(0))
		assert.Equal(t, 1., ref.R.AtVec(4))
		I := ops.V.Mul(ops.Vinv)
		for i := 0; i < 5; i++ {
			for j := 0; j < 5; j++ {
				assert.InDelta(t, b2f(i == j), I.At(i, j), 1.e-10)
			}
		}
		for _, v := range ops.Dr.MulVec([]float64{1, 1, 1, 1, 1}) {
			assert.InDelta(t, 0, v, 1.e-12)
		}
		// Reference mass sums to the interval length
		var sum float64
		Mones := ops.MassMatrix.MulVec([]float64{1, 1, 1, 1, 1})
		for _, v := range Mones {
			sum += v
		}
		assert.InDelta(t, 2, sum, 1.e-12)
		assert.Panics(t, func() { ops.Dr.Set(0, 0, 1) })
		assert.Panics(t, func() { Legendre1D(0) })
	}
	{ // Coincident nodes make the Vandermonde matrix singular
		ref := Legendre1D(3)
		ref.R = utils.NewVector(4, []float64{-1, 0, 0, 1})
		assert.PanicsWithError(t,
			"non-invertible Vandermonde matrix: unable to invert, matrix is singular",
			func() { AssembleOperators(ref) })
	}
	{
		ref := Legendre2D(3)
		ops := AssembleOperators(ref)
		assert.Equal(t, 10, ref.Np)
		assert.Equal(t, 4, ref.Nfp)
		r, c := ops.LIFT.Dims()
		assert.Equal(t, 10, r)
		assert.Equal(t, 12, c)
	}
}

func b2f(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func TestGrid1D(t *testing.T) {
	g := newGrid1D(3, 4, Outflow(), PEC())
	require.Equal(t, 4, g.K())
	assert.Equal(t, 1, g.Dim())
	{ // Boundary faces and keys
		f0 := g.Elements[0].Faces[0]
		assert.Equal(t, BoundaryFace, f0.Kind)
		assert.Equal(t, FluxLeft, f0.FluxKey)
		assert.Equal(t, "Boundary(Outflow)", f0.String())
		fR := g.Elements[3].Faces[1]
		assert.Equal(t, FluxRight, fR.FluxKey)
		assert.Equal(t, "Boundary(PEC)", fR.String())
		assert.Equal(t, -1, fR.Neighbor)
	}
	{ // Interior faces point at each other with opposite normals
		for k := 0; k < 3; k++ {
			right := g.Elements[k].Faces[1]
			assert.Equal(t, InteriorFace, right.Kind)
			assert.Equal(t, FluxInterior, right.FluxKey)
			assert.Equal(t, k+1, right.Neighbor)
			assert.Equal(t, 0, right.NeighborFace)
			left := g.Elements[k+1].Faces[right.NeighborFace]
			assert.Equal(t, k, left.Neighbor)
			assert.Equal(t, -left.NX[0], right.NX[0])
			assert.Equal(t, left.X, right.X)
		}
	}
	{ // Affine map, h = 0.5
		el := g.Elements[1]
		assert.InDelta(t, 0.5, el.X[0], 1.e-14)
		assert.InDelta(t, 1.0, el.X[3], 1.e-14)
		for i := range el.J {
			assert.InDelta(t, 0.25, el.J[i], 1.e-12)
			assert.InDelta(t, 4, el.Rx[i], 1.e-12)
		}
		assert.InDelta(t, 4, el.Faces[0].FScale[0], 1.e-12)
		// Smallest Gauss-Lobatto gap for N=3, (1 - 1/sqrt(5))/2 * 0.5
		assert.InDelta(t, 0.25*(1-1/math.Sqrt(5)), g.MinSpacing, 1.e-12)
	}
	{ // Derivative of x is 1
		el := &g.Elements[2]
		for _, v := range g.Ops.Dx(el, el.X) {
			assert.InDelta(t, 1, v, 1.e-12)
		}
	}
	{ // Materials, the boundary exterior defaults to the interior material
		g := newGrid1D(2, 4, PEC(), PEC().WithMaterial(Material{Epsilon: 3, Mu: 1}))
		g.SetMaterial(func(x, _ []float64) Material {
			if x[0] >= 1 {
				return Material{Epsilon: 2, Mu: 1}
			}
			return DefaultMaterial
		})
		assert.Equal(t, 1., g.Elements[0].Faces[0].ExtMaterial.Epsilon)
		assert.Equal(t, 2., g.Elements[1].Faces[1].ExtMaterial.Epsilon)
		assert.Equal(t, 1., g.Elements[2].Faces[0].ExtMaterial.Epsilon)
		assert.Equal(t, 3., g.Elements[3].Faces[1].ExtMaterial.Epsilon)
		g.SetMaterial(nil)
		assert.Equal(t, DefaultMaterial, g.Elements[3].Material)
		mats := []Material{DefaultMaterial, {Epsilon: 4, Mu: 1}, DefaultMaterial, DefaultMaterial}
		require.NoError(t, g.SetElementMaterials(mats))
		assert.Equal(t, 4., g.Elements[0].Faces[1].ExtMaterial.Epsilon)
		assert.Equal(t, 4., g.Elements[2].Faces[0].ExtMaterial.Epsilon)
		assert.Equal(t, 3., g.Elements[3].Faces[1].ExtMaterial.Epsilon)
		assert.Error(t, g.SetElementMaterials(mats[:3]))
	}
	{
		assert.Panics(t, func() {
			VX, EToV := DG1D.SimpleMesh1D(0, 2, 2)
			ref := Legendre2D(1)
			AssembleGrid1D(ref, AssembleOperators(ref), VX, EToV, PEC(), PEC())
		})
	}
}

func TestGrid2D(t *testing.T) {
	g := newGrid2D(3, 2)
	require.Equal(t, 8, g.K())
	assert.Equal(t, 2, g.Dim())
	Nfp := g.Ref.Nfp
	for k := range g.Elements {
		el := &g.Elements[k]
		for f := range el.Faces {
			face := &el.Faces[f]
			assert.Equal(t, TriangleFace, face.Role)
			if face.Kind == BoundaryFace {
				assert.Equal(t, FluxBoundary, face.FluxKey)
				// Boundary faces lie on the square
				for i := 0; i < Nfp; i++ {
					onEdge := math.Abs(math.Abs(face.X[i])-1) < 1.e-12 || math.Abs(math.Abs(face.Y[i])-1) < 1.e-12
					assert.True(t, onEdge)
				}
				continue
			}
			// Matched neighbor nodes coincide, normals are antiparallel
			var (
				nb     = &g.Elements[face.Neighbor]
				nbFace = &nb.Faces[face.NeighborFace]
			)
			assert.Equal(t, k, nbFace.Neighbor)
			assert.Equal(t, f, nbFace.NeighborFace)
			for i := 0; i < Nfp; i++ {
				n := face.NeighborNodes[i]
				assert.InDelta(t, face.X[i], nb.X[n], 1.e-12)
				assert.InDelta(t, face.Y[i], nb.Y[n], 1.e-12)
				assert.InDelta(t, -face.NX[i], nbFace.NX[0], 1.e-12)
				assert.InDelta(t, -face.NY[i], nbFace.NY[0], 1.e-12)
			}
		}
	}
	{ // Gradient and curl of linear fields are exact
		el := &g.Elements[3]
		u := make([]float64, len(el.X))
		for i := range u {
			u[i] = 2*el.X[i] - 3*el.Y[i]
		}
		ux, uy := g.Ops.Grad2D(el, u)
		for i := range u {
			assert.InDelta(t, 2, ux[i], 1.e-10)
			assert.InDelta(t, -3, uy[i], 1.e-10)
		}
		mY := make([]float64, len(el.X))
		for i := range mY {
			mY[i] = -el.Y[i]
		}
		for _, v := range g.Ops.Curl2D(el, mY, el.X) {
			assert.InDelta(t, 2, v, 1.e-10)
		}
	}
	{ // Inscribed radius of the right triangle with legs 1, times the N=3 Gauss-Lobatto gap
		r := (2 - math.Sqrt2) / 2
		assert.InDelta(t, r*(1-1/math.Sqrt(5)), g.MinSpacing, 1.e-12)
	}
	{
		x, y := g.Coordinates()
		assert.Len(t, x, 8*10)
		assert.Len(t, y, 8*10)
	}
}

func TestCommunicate(t *testing.T) {
	var (
		g  = newGrid1D(2, 3, Outflow(), PEC())
		st = InitializeStorage(g, ScalarField, func(x, _ []float64) Field {
			u := make([]float64, len(x))
			for i := range x {
				u[i] = x[i] * x[i]
			}
			return NewScalarField(u)
		})
	)
	Communicate(g, st, 0)
	{ // Interior traces come from the neighbor
		assert.Equal(t, st[1].U.C[CompU][0], st[0].Plus[1].C[CompU][0])
		assert.Equal(t, st[0].U.C[CompU][2], st[0].Minus[1].C[CompU][0])
		assert.Equal(t, st[0].U.C[CompU][2], st[1].Plus[0].C[CompU][0])
		// Outflow copies, PEC mirrors a scalar
		assert.Equal(t, st[0].Minus[0].C, st[0].Plus[0].C)
		assert.Equal(t, -st[2].Minus[1].C[CompU][0], st[2].Plus[1].C[CompU][0])
	}
	{ // Repeating communicate without an update changes nothing
		before := make([][]Field, len(st))
		for k := range st {
			for f := range st[k].Plus {
				before[k] = append(before[k], st[k].Plus[f].Copy(), st[k].Minus[f].Copy())
			}
		}
		Communicate(g, st, 0)
		for k := range st {
			for f := range st[k].Plus {
				assert.Equal(t, before[k][2*f].C, st[k].Plus[f].C)
				assert.Equal(t, before[k][2*f+1].C, st[k].Minus[f].C)
			}
		}
	}
	{
		assert.PanicsWithError(t, "initial condition on element 0 is EH1D[3], need Scalar[3]", func() {
			InitializeStorage(g, ScalarField, func(x, _ []float64) Field {
				return NewField(EHField1D, len(x))
			})
		})
		assert.Panics(t, func() {
			InitializeStorage(g, ScalarField, func(x, _ []float64) Field {
				return NewField(ScalarField, len(x)+1)
			})
		})
	}
}
