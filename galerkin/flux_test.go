package galerkin

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLaxFriedrichs(t *testing.T) {
	{ // Consistency: equal states give the physical flux and no correction
		lf := LaxFriedrichs{Ax: 2, Alpha: 0}
		for _, an := range []float64{-2, 0.5, 2} {
			assert.InDelta(t, an*0.7, lf.NumericalFlux(0.7, 0.7, an), 1.e-15)
		}
		out := NewField(ScalarField, 2)
		lf.Flux(FaceState{
			Minus: NewScalarField([]float64{0.3, -1}),
			Plus:  NewScalarField([]float64{0.3, -1}),
			NX:    []float64{-1, 1},
		}, out)
		assert.Equal(t, []float64{0, 0}, out.C[CompU])
	}
	{ // Full upwinding takes the state behind the wave
		lf := LaxFriedrichs{Ax: 1}
		assert.Equal(t, 3., lf.NumericalFlux(3, 5, 1))
		assert.Equal(t, -5., lf.NumericalFlux(3, 5, -1))
		// Outflow face, a.n > 0: no contribution
		out := NewField(ScalarField, 1)
		fs := FaceState{
			Minus: NewScalarField([]float64{3}),
			Plus:  NewScalarField([]float64{5}),
			NX:    []float64{1},
		}
		lf.Flux(fs, out)
		assert.Equal(t, 0., out.C[CompU][0])
		// Inflow face, a.n < 0: a.n (u- - u+)
		fs.NX[0] = -1
		lf.Flux(fs, out)
		assert.Equal(t, 2., out.C[CompU][0])
	}
	{ // Central flux: a.n (u- - u+)/2, 2D normal speed
		lf := LaxFriedrichs{Ax: 1, Ay: 1, Alpha: 1}
		out := NewField(ScalarField, 1)
		lf.Flux(FaceState{
			Minus: NewScalarField([]float64{3}),
			Plus:  NewScalarField([]float64{5}),
			NX:    []float64{1 / math.Sqrt2},
			NY:    []float64{1 / math.Sqrt2},
		}, out)
		assert.InDelta(t, -math.Sqrt2, out.C[CompU][0], 1.e-14)
	}
}

func TestMaxwellFlux(t *testing.T) {
	vac := Material{Epsilon: 1, Mu: 1}
	{ // Equal states give no jump correction
		out := NewField(EHField1D, 1)
		MaxwellUpwind1D{}.Flux(FaceState{
			Minus:    NewEHField1D([]float64{0.4}, []float64{-0.2}),
			Plus:     NewEHField1D([]float64{0.4}, []float64{-0.2}),
			NX:       []float64{1},
			MatMinus: vac,
			MatPlus:  Material{Epsilon: 2, Mu: 1},
		}, out)
		assert.Equal(t, [][]float64{{0}, {0}}, out.C)
		out2 := NewField(EHField2D, 1)
		MaxwellUpwind2D{Alpha: 1}.Flux(FaceState{
			Minus: NewEHField2D([]float64{1}, []float64{2}, []float64{3}),
			Plus:  NewEHField2D([]float64{1}, []float64{2}, []float64{3}),
			NX:    []float64{0.6},
			NY:    []float64{0.8},
		}, out2)
		assert.Equal(t, [][]float64{{0}, {0}, {0}}, out2.C)
	}
	{ // Impedance weighting across a dielectric jump
		out := NewField(EHField1D, 1)
		eps2 := Material{Epsilon: 4, Mu: 1} // Z = 1/2, Y = 2
		MaxwellUpwind1D{}.Flux(FaceState{
			Minus:    NewEHField1D([]float64{1}, []float64{0}),
			Plus:     NewEHField1D([]float64{0}, []float64{1}),
			NX:       []float64{1},
			MatMinus: vac,
			MatPlus:  eps2,
		}, out)
		// dE = 1, dH = -1
		assert.InDelta(t, (0.5*-1-1)/1.5, out.C[CompE][0], 1.e-15)
		assert.InDelta(t, (2*1+1)/3., out.C[CompH][0], 1.e-15)
	}
	{ // Conductor wall, dEz = 2Ez, dH = 0
		out := NewField(EHField2D, 1)
		minus := NewEHField2D([]float64{0.3}, []float64{0.1}, []float64{0.5})
		plus := NewField(EHField2D, 1)
		minus.MirrorInto(plus)
		MaxwellUpwind2D{Alpha: 1}.Flux(FaceState{
			Minus: minus, Plus: plus,
			NX: []float64{1}, NY: []float64{0},
		}, out)
		assert.InDelta(t, 0, out.C[CompHx][0], 1.e-15)
		assert.InDelta(t, -0.5, out.C[CompHy][0], 1.e-15)
		assert.InDelta(t, -0.5, out.C[CompEz][0], 1.e-15)
	}
}

func TestFluxKeys(t *testing.T) {
	assert.Equal(t, "Boundary", FluxBoundary.String())
	assert.Equal(t, "FluxKey(9)", FluxKey(9).String())
	{ // Every role rejects the keys of the other roles
		bad := map[FaceRole][]FluxKey{
			LeftFace:  {FluxRight, FluxBoundary},
			RightFace: {FluxLeft, FluxBoundary},
		}
		for role, keys := range bad {
			for _, key := range keys {
				face := &Face{Number: int(role), Role: role, FluxKey: key}
				assert.Panics(t, func() { checkFluxKey(3, face) }, "%s on %s", key, role)
			}
		}
		assert.NotPanics(t, func() { checkFluxKey(0, &Face{Role: LeftFace, FluxKey: FluxLeft}) })
		assert.NotPanics(t, func() { checkFluxKey(0, &Face{Role: LeftFace, FluxKey: FluxInterior}) })
		assert.PanicsWithError(t, "Boundary flux found on Triangle face 2 of element 7", func() {
			checkFluxKey(7, &Face{Number: 2, Role: TriangleFace, Kind: InteriorFace, FluxKey: FluxBoundary})
		})
		assert.PanicsWithError(t, "Interior flux found on Triangle face 0 of element 1", func() {
			checkFluxKey(1, &Face{Number: 0, Role: TriangleFace, Kind: BoundaryFace, FluxKey: FluxInterior})
		})
		assert.PanicsWithError(t, "Left flux found on Triangle face 1 of element 0", func() {
			checkFluxKey(0, &Face{Number: 1, Role: TriangleFace, FluxKey: FluxLeft})
		})
	}
}
