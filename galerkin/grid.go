package galerkin

import (
	"fmt"
	"math"

	"github.com/notargets/gondg/DG1D"
	"github.com/notargets/gondg/DG2D"
	"github.com/notargets/gondg/geometry2D"
	"github.com/notargets/gondg/utils"
)

type FaceKind uint8

const (
	InteriorFace FaceKind = iota
	BoundaryFace
)

func (fk FaceKind) String() string {
	if fk == InteriorFace {
		return "Interior"
	}
	return "Boundary"
}

// FaceRole is the position of a face within its element, it fixes which flux
// keys the face may carry.
type FaceRole uint8

const (
	LeftFace FaceRole = iota
	RightFace
	TriangleFace
)

func (fr FaceRole) String() string {
	return [3]string{"Left", "Right", "Triangle"}[fr]
}

// Face is either Interior(Neighbor, NeighborFace) or Boundary(BC). Per node
// quantities are ordered like Nodes.
type Face struct {
	Number        int
	Role          FaceRole
	Kind          FaceKind
	Neighbor      int
	NeighborFace  int
	NeighborNodes utils.Index // neighbor element-local nodes matched to Nodes
	BC            BoundaryCondition
	FluxKey       FluxKey
	Nodes         utils.Index // element-local nodes on this face
	X, Y          []float64
	NX, NY        []float64
	SJ, FScale    []float64
	ExtMaterial   Material
}

func (f *Face) String() string {
	if f.Kind == InteriorFace {
		return fmt.Sprintf("Interior(%d, %d)", f.Neighbor, f.NeighborFace)
	}
	return fmt.Sprintf("Boundary(%s)", f.BC)
}

type Element struct {
	Index             int
	X, Y              []float64
	Rx, Sx, Ry, Sy, J []float64
	Material          Material
	Faces             []Face
}

// Grid owns every element, all of it is read only once assembled.
type Grid struct {
	Ref        *ReferenceElement
	Ops        *Operators
	Elements   []Element
	MinSpacing float64 // smallest physical node spacing, sets the CFL time step
}

func (g *Grid) K() int   { return len(g.Elements) }
func (g *Grid) Dim() int { return g.Ref.Dim }

// AssembleGrid1D maps the reference nodes onto the intervals of the mesh. The
// left-most face carries the left condition, the right-most face the right.
func AssembleGrid1D(ref *ReferenceElement, ops *Operators, VX utils.Vector, EToV utils.Matrix,
	left, right BoundaryCondition) (g *Grid) {
	if ref.Dim != 1 {
		panic(fmt.Errorf("1D grid needs a 1D reference element, have dimension %d", ref.Dim))
	}
	var (
		m  = DG1D.NewElements1DWithOperators(ref.R, ops.Dr, ops.LIFT, VX, EToV)
		K  = m.K
		Np = ref.Np
	)
	g = &Grid{
		Ref:        ref,
		Ops:        ops,
		Elements:   make([]Element, K),
		MinSpacing: math.MaxFloat64,
	}
	for k := range g.Elements {
		el := &g.Elements[k]
		el.Index = k
		el.X, el.Rx, el.J = m.X.Col(k).DataP, m.Rx.Col(k).DataP, m.J.Col(k).DataP
		el.Material = DefaultMaterial
		el.Faces = make([]Face, ref.NFaces)
		for f := range el.Faces {
			node := ref.FaceNodes[f][0]
			face := &el.Faces[f]
			face.Number = f
			face.Role = FaceRole(f)
			face.Nodes = ref.FaceNodes[f]
			face.X = []float64{el.X[node]}
			face.NX = []float64{m.NX.At(f, k)}
			face.SJ = []float64{1}
			face.FScale = []float64{m.FScale.At(f, k)}
			kn, fn := m.EToE[k][f], m.EToF[k][f]
			if kn == k && fn == f {
				face.Kind = BoundaryFace
				face.Neighbor, face.NeighborFace = -1, -1
				if f == 0 {
					face.BC, face.FluxKey = left, FluxLeft
				} else {
					face.BC, face.FluxKey = right, FluxRight
				}
				continue
			}
			face.Kind = InteriorFace
			face.FluxKey = FluxInterior
			face.Neighbor, face.NeighborFace = kn, fn
			face.NeighborNodes = ref.FaceNodes[fn]
		}
		for i := 1; i < Np; i++ {
			g.MinSpacing = math.Min(g.MinSpacing, math.Abs(el.X[i]-el.X[i-1]))
		}
	}
	g.SetMaterial(nil)
	return
}

// AssembleGrid2D maps the reference nodes onto every triangle of the mesh.
// Boundary faces take their condition from bcs evaluated at the face
// midpoint.
func AssembleGrid2D(ref *ReferenceElement, ops *Operators, mesh *geometry2D.Mesh, bcs BoundaryMap) (g *Grid) {
	if ref.Dim != 2 {
		panic(fmt.Errorf("2D grid needs a 2D reference element, have dimension %d", ref.Dim))
	}
	VX, VY := mesh.VXVY()
	dg := DG2D.NewNDG2DWithElement(ref.tri, VX, VY, mesh.Triangles)
	g = &Grid{
		Ref:      ref,
		Ops:      ops,
		Elements: make([]Element, dg.K),
	}
	// Inscribed radius times the smallest Gauss-Lobatto spacing on [-1,1]
	lgl := DG1D.GaussLobattoPoints(ref.N)
	g.MinSpacing = dg.InscribedRadiusMinimum * (lgl.AtVec(1) - lgl.AtVec(0))

	Nfp := ref.Nfp
	for k := range g.Elements {
		el := &g.Elements[k]
		el.Index = k
		el.X, el.Y = dg.X.Col(k).DataP, dg.Y.Col(k).DataP
		el.Rx, el.Sx = dg.Rx.Col(k).DataP, dg.Sx.Col(k).DataP
		el.Ry, el.Sy = dg.Ry.Col(k).DataP, dg.Sy.Col(k).DataP
		el.J = dg.J.Col(k).DataP
		el.Material = DefaultMaterial
		el.Faces = make([]Face, ref.NFaces)
		for f := range el.Faces {
			var (
				face = &el.Faces[f]
				rows = utils.NewRange(f*Nfp, (f+1)*Nfp-1)
			)
			face.Number = f
			face.Role = TriangleFace
			face.Nodes = ref.FaceNodes[f]
			face.X = dg.FaceNodeX.Col(k).Subset(rows).DataP
			face.Y = dg.FaceNodeY.Col(k).Subset(rows).DataP
			face.NX = dg.NX.Col(k).Subset(rows).DataP
			face.NY = dg.NY.Col(k).Subset(rows).DataP
			face.SJ = dg.SJ.Col(k).Subset(rows).DataP
			face.FScale = dg.FScale.Col(k).Subset(rows).DataP
			kn, fn := dg.EToE[k][f], dg.EToF[k][f]
			if kn < 0 {
				face.Kind = BoundaryFace
				face.Neighbor, face.NeighborFace = -1, -1
				face.FluxKey = FluxBoundary
				xMid := 0.5 * (face.X[0] + face.X[Nfp-1])
				yMid := 0.5 * (face.Y[0] + face.Y[Nfp-1])
				face.BC = bcs(xMid, yMid)
				continue
			}
			face.Kind = InteriorFace
			face.FluxKey = FluxInterior
			face.Neighbor, face.NeighborFace = kn, fn
			match := dg.MatchFaceNodes(k, f, kn, fn)
			face.NeighborNodes = make(utils.Index, Nfp)
			for i, j := range match {
				face.NeighborNodes[i] = ref.FaceNodes[fn][j]
			}
		}
	}
	g.SetMaterial(nil)
	return
}

// SetMaterial samples the material of every element and refreshes the
// exterior material seen by each face. A nil f resets to DefaultMaterial.
func (g *Grid) SetMaterial(f MaterialFunc) {
	for k := range g.Elements {
		el := &g.Elements[k]
		if f == nil {
			el.Material = DefaultMaterial
		} else {
			el.Material = f(el.X, el.Y)
		}
	}
	g.refreshExtMaterial()
}

// SetElementMaterials assigns one material per element, in element order.
func (g *Grid) SetElementMaterials(mats []Material) (err error) {
	if len(mats) != g.K() {
		return fmt.Errorf("have %d materials for %d elements", len(mats), g.K())
	}
	for k := range g.Elements {
		g.Elements[k].Material = mats[k]
	}
	g.refreshExtMaterial()
	return
}

func (g *Grid) refreshExtMaterial() {
	for k := range g.Elements {
		el := &g.Elements[k]
		for fn := range el.Faces {
			face := &el.Faces[fn]
			switch {
			case face.Kind == InteriorFace:
				face.ExtMaterial = g.Elements[face.Neighbor].Material
			case face.BC.Material != nil:
				face.ExtMaterial = *face.BC.Material
			default:
				face.ExtMaterial = el.Material
			}
		}
	}
}

// LiftFlux returns LIFT * (FScale .* flux) for one component of the per face
// fluxes of el.
func (g *Grid) LiftFlux(el *Element, flux []Field, comp int) []float64 {
	var (
		Nfp = g.Ref.Nfp
		fs  = make([]float64, g.Ref.NFaces*Nfp)
	)
	for f := range el.Faces {
		face := &el.Faces[f]
		fc := flux[f].C[comp]
		for i := 0; i < Nfp; i++ {
			fs[f*Nfp+i] = face.FScale[i] * fc[i]
		}
	}
	return g.Ops.LIFT.MulVec(fs)
}

// Coordinates returns the node coordinates of all elements, element by
// element. y is nil in 1D.
func (g *Grid) Coordinates() (x, y []float64) {
	x = make([]float64, 0, g.K()*g.Ref.Np)
	for k := range g.Elements {
		x = append(x, g.Elements[k].X...)
	}
	if g.Dim() == 2 {
		y = make([]float64, 0, g.K()*g.Ref.Np)
		for k := range g.Elements {
			y = append(y, g.Elements[k].Y...)
		}
	}
	return
}
