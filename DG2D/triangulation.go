package DG2D

import (
	"fmt"
	"sort"

	"github.com/notargets/gondg/types"
)

type InternalEdgeNumber uint8

const (
	First InternalEdgeNumber = iota
	Second
	Third
)

func (ie InternalEdgeNumber) String() string {
	return [3]string{"First", "Second", "Third"}[ie]
}

type Triangulation struct {
	Edges map[types.EdgeKey]*Edge // key is the sorted vertex pair of the edge
}

// Edge carries at most two connections, a single connection is a boundary.
type Edge struct {
	NumConnectedTris       uint8
	ConnectedTris          [2]int
	ConnectedTriEdgeNumber [2]InternalEdgeNumber
}

func NewTriangulation(EToV [][3]int) (tmesh *Triangulation) {
	tmesh = &Triangulation{
		Edges: make(map[types.EdgeKey]*Edge),
	}
	for k, verts := range EToV {
		tmesh.NewEdge([2]int{verts[0], verts[1]}, k, First)
		tmesh.NewEdge([2]int{verts[1], verts[2]}, k, Second)
		tmesh.NewEdge([2]int{verts[2], verts[0]}, k, Third)
	}
	return
}

func (tmesh *Triangulation) NewEdge(verts [2]int, k int, intEdgeNumber InternalEdgeNumber) (e *Edge) {
	var (
		ok bool
		en = types.NewEdgeKey(verts)
	)
	if e, ok = tmesh.Edges[en]; !ok {
		e = &Edge{}
		tmesh.Edges[en] = e
	}
	if e.NumConnectedTris > 1 {
		panic(fmt.Errorf("malformed mesh: more than two connected triangles on edge %s", en))
	}
	conn := e.NumConnectedTris
	e.ConnectedTris[conn] = k
	e.ConnectedTriEdgeNumber[conn] = intEdgeNumber
	e.NumConnectedTris++
	return
}

// Connect2D returns the neighbor element and neighbor face for each face of
// each of the K triangles, -1 marks a boundary face.
func (tmesh *Triangulation) Connect2D(K int) (EToE, EToF [][3]int) {
	EToE, EToF = make([][3]int, K), make([][3]int, K)
	for k := 0; k < K; k++ {
		EToE[k] = [3]int{-1, -1, -1}
		EToF[k] = [3]int{-1, -1, -1}
	}
	for _, e := range tmesh.Edges {
		if e.NumConnectedTris != 2 {
			continue
		}
		k0, k1 := e.ConnectedTris[0], e.ConnectedTris[1]
		f0, f1 := int(e.ConnectedTriEdgeNumber[0]), int(e.ConnectedTriEdgeNumber[1])
		EToE[k0][f0], EToF[k0][f0] = k1, f1
		EToE[k1][f1], EToF[k1][f1] = k0, f0
	}
	return
}

// BoundaryEdges returns the edges with a single connected triangle, sorted
// by key so that iteration is reproducible.
func (tmesh *Triangulation) BoundaryEdges() (keys []types.EdgeKey) {
	for en, e := range tmesh.Edges {
		if e.NumConnectedTris == 1 {
			keys = append(keys, en)
		}
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return
}
