package galerkin

import (
	"fmt"
)

// ElementStorage is the mutable state of one element. It is allocated once
// and updated in place, per face traces are refreshed by Communicate.
type ElementStorage struct {
	U, Resid, RHS Field
	Minus, Plus   []Field // per face interior and exterior traces
	Flux          []Field // per face numerical flux contribution
}

// InitialCondition returns the field on one element from its node
// coordinates, y is nil in 1D.
type InitialCondition func(x, y []float64) Field

func InitializeStorage(g *Grid, kind FieldKind, ic InitialCondition) (st []ElementStorage) {
	var (
		Np, Nfp = g.Ref.Np, g.Ref.Nfp
	)
	st = make([]ElementStorage, g.K())
	for k := range st {
		el := &g.Elements[k]
		U := ic(el.X, el.Y)
		if U.Kind != kind || U.Len() != Np {
			panic(fmt.Errorf("initial condition on element %d is %s[%d], need %s[%d]",
				k, U.Kind, U.Len(), kind, Np))
		}
		s := &st[k]
		s.U = U.Copy()
		s.Resid, s.RHS = NewField(kind, Np), NewField(kind, Np)
		nf := len(el.Faces)
		s.Minus, s.Plus, s.Flux = make([]Field, nf), make([]Field, nf), make([]Field, nf)
		for f := 0; f < nf; f++ {
			s.Minus[f], s.Plus[f], s.Flux[f] = NewField(kind, Nfp), NewField(kind, Nfp), NewField(kind, Nfp)
		}
	}
	return
}

// Communicate refreshes the minus and plus traces of every face at time t
// from the current U of all elements. It only writes the trace caches.
func Communicate(g *Grid, st []ElementStorage, t float64) {
	CommunicateRange(g, st, t, 0, g.K())
}

// CommunicateRange refreshes elements [kMin, kMax). Every element of the grid
// must be communicated before any U is updated.
func CommunicateRange(g *Grid, st []ElementStorage, t float64, kMin, kMax int) {
	for k := kMin; k < kMax; k++ {
		var (
			el = &g.Elements[k]
			s  = &st[k]
		)
		for f := range el.Faces {
			face := &el.Faces[f]
			s.U.RestrictInto(face.Nodes, s.Minus[f])
			switch face.Kind {
			case InteriorFace:
				st[face.Neighbor].U.RestrictInto(face.NeighborNodes, s.Plus[f])
			case BoundaryFace:
				face.BC.Exterior(t, s.Minus[f], face.X, face.Y, s.Plus[f])
			}
		}
	}
}
