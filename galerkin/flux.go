package galerkin

import (
	"fmt"
	"math"
)

// FluxKey selects the numerical flux rule of a face. FluxLeft and FluxRight
// are only valid on 1D boundary faces of the matching side, FluxBoundary only
// on 2D boundary faces, FluxInterior on any face.
type FluxKey uint8

const (
	FluxInterior FluxKey = iota
	FluxLeft
	FluxRight
	FluxBoundary
)

func (fk FluxKey) String() string {
	switch fk {
	case FluxInterior:
		return "Interior"
	case FluxLeft:
		return "Left"
	case FluxRight:
		return "Right"
	case FluxBoundary:
		return "Boundary"
	}
	return fmt.Sprintf("FluxKey(%d)", uint8(fk))
}

// FaceState is everything a numerical flux sees on one face.
type FaceState struct {
	Minus, Plus       Field
	NX, NY            []float64 // NY is nil in 1D
	MatMinus, MatPlus Material
}

func (fs FaceState) ny(i int) float64 {
	if fs.NY == nil {
		return 0
	}
	return fs.NY[i]
}

// NumericalFlux writes the face contribution lifted into the residual, one
// value per face node and component, into out.
type NumericalFlux interface {
	Flux(fs FaceState, out Field)
}

// LaxFriedrichs is the scalar advection flux for speed (Ax, Ay).
// f* = {{a.n u}} + C/2 (u- - u+), C = (1-Alpha)|a.n|, contribution a.n u- - f*.
// Alpha = 0 is full upwinding, Alpha = 1 the central flux.
type LaxFriedrichs struct {
	Ax, Ay, Alpha float64
}

// NumericalFlux returns f* for one node with normal speed an = a.n.
func (lf LaxFriedrichs) NumericalFlux(uMinus, uPlus, an float64) float64 {
	var (
		fMinus, fPlus = an * uMinus, an * uPlus
		C             = (1 - lf.Alpha) * math.Abs(an)
	)
	return 0.5*(fMinus+fPlus) + 0.5*C*(uMinus-uPlus)
}

func (lf LaxFriedrichs) Flux(fs FaceState, out Field) {
	var (
		um, up = fs.Minus.C[CompU], fs.Plus.C[CompU]
		du     = out.C[CompU]
	)
	for i := range du {
		an := lf.Ax*fs.NX[i] + lf.Ay*fs.ny(i)
		du[i] = an*um[i] - lf.NumericalFlux(um[i], up[i], an)
	}
}

// Freeflow contributes no jump correction, a non-reflecting outflow.
type Freeflow struct{}

func (Freeflow) Flux(_ FaceState, out Field) { out.Zero() }

// MaxwellUpwind1D is the impedance weighted upwind flux for (E, H).
type MaxwellUpwind1D struct{}

func (MaxwellUpwind1D) Flux(fs FaceState, out Field) {
	var (
		Zm, Zp = fs.MatMinus.Impedance(), fs.MatPlus.Impedance()
		Ym, Yp = 1 / Zm, 1 / Zp
		Em, Ep = fs.Minus.C[CompE], fs.Plus.C[CompE]
		Hm, Hp = fs.Minus.C[CompH], fs.Plus.C[CompH]
	)
	for i := range Em {
		dE, dH := Em[i]-Ep[i], Hm[i]-Hp[i]
		nx := fs.NX[i]
		out.C[CompE][i] = (nx*Zp*dH - dE) / (Zm + Zp)
		out.C[CompH][i] = (nx*Yp*dE - dH) / (Ym + Yp)
	}
}

// MaxwellUpwind2D is the transverse magnetic flux with penalty Alpha,
// Alpha = 1 is full upwinding, 0 the central flux. The factor 1/2 of the
// face term is included.
type MaxwellUpwind2D struct {
	Alpha float64
}

func (mf MaxwellUpwind2D) Flux(fs FaceState, out Field) {
	var (
		m, p  = fs.Minus.C, fs.Plus.C
		alpha = mf.Alpha
	)
	for i := range m[CompEz] {
		var (
			dHx, dHy = m[CompHx][i] - p[CompHx][i], m[CompHy][i] - p[CompHy][i]
			dEz      = m[CompEz][i] - p[CompEz][i]
			nx, ny   = fs.NX[i], fs.ny(i)
			ndotdH   = nx*dHx + ny*dHy
		)
		out.C[CompHx][i] = 0.5 * (ny*dEz + alpha*(ndotdH*nx-dHx))
		out.C[CompHy][i] = 0.5 * (-nx*dEz + alpha*(ndotdH*ny-dHy))
		out.C[CompEz][i] = 0.5 * (-nx*dHy + ny*dHx - alpha*dEz)
	}
}

// FluxScheme binds numerical flux rules to flux keys.
type FluxScheme struct {
	rules map[FluxKey]NumericalFlux
}

func NewFluxScheme() *FluxScheme {
	return &FluxScheme{rules: make(map[FluxKey]NumericalFlux)}
}

func (fs *FluxScheme) Bind(key FluxKey, nf NumericalFlux) *FluxScheme {
	fs.rules[key] = nf
	return fs
}

// ComputeFlux evaluates the rule bound to the key of face f of el from the
// cached traces, the result goes to st.Flux[f]. A key that does not fit the
// face, or has no rule, is a configuration error and panics.
func (fs *FluxScheme) ComputeFlux(el *Element, f int, st *ElementStorage) {
	var (
		face = &el.Faces[f]
	)
	checkFluxKey(el.Index, face)
	nf, ok := fs.rules[face.FluxKey]
	if !ok {
		panic(fmt.Errorf("no numerical flux bound to key %s", face.FluxKey))
	}
	nf.Flux(FaceState{
		Minus:    st.Minus[f],
		Plus:     st.Plus[f],
		NX:       face.NX,
		NY:       face.NY,
		MatMinus: el.Material,
		MatPlus:  face.ExtMaterial,
	}, st.Flux[f])
}

func checkFluxKey(k int, face *Face) {
	var (
		key = face.FluxKey
		bad bool
	)
	switch face.Role {
	case LeftFace:
		bad = key == FluxRight || key == FluxBoundary
	case RightFace:
		bad = key == FluxLeft || key == FluxBoundary
	case TriangleFace:
		bad = key == FluxLeft || key == FluxRight ||
			(key == FluxBoundary && face.Kind != BoundaryFace) ||
			(key == FluxInterior && face.Kind != InteriorFace)
	}
	if bad {
		panic(fmt.Errorf("%s flux found on %s face %d of element %d", key, face.Role, face.Number, k))
	}
}
