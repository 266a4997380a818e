package readfiles

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/notargets/gondg/geometry2D"
	"github.com/notargets/gondg/types"
)

type MaterialGroup struct {
	ElementCount  int
	MaterialValue float64
	Title         string
}

// BoundaryGroup is one named set of boundary edges, the name is lower case.
type BoundaryGroup struct {
	Name  string
	Edges []types.EdgeKey
}

// GambitMesh is a two dimensional Gambit neutral file. Material holds the
// material value of every element, 1 for elements outside any group.
type GambitMesh struct {
	Mesh       *geometry2D.Mesh
	Material   []float64
	Groups     []MaterialGroup
	Boundaries []BoundaryGroup
}

func ReadGambit2DFile(filename string, verbose bool) (gm *GambitMesh, err error) {
	var (
		file *os.File
	)
	if verbose {
		fmt.Printf("Reading Gambit Neutral file named: %s\n", filename)
	}
	if file, err = os.Open(filename); err != nil {
		return nil, fmt.Errorf("unable to open file %s: %w", filename, err)
	}
	defer file.Close()
	if gm, err = ReadGambit2D(file); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	if verbose {
		xmin, xmax, ymin, ymax := gm.Mesh.Bounds()
		fmt.Printf("Nv = %d, K = %d\n", len(gm.Mesh.Points), gm.Mesh.K())
		fmt.Printf("Nmats = %d, Nbcs = %d\n", len(gm.Groups), len(gm.Boundaries))
		fmt.Printf("Bounding Box:\nXMin/XMax = %5.3f, %5.3f\nYMin/YMax = %5.3f, %5.3f\n",
			xmin, xmax, ymin, ymax)
	}
	return
}

// ReadGambit2D parses a neutral file of triangles in two space dimensions.
func ReadGambit2D(r io.Reader) (gm *GambitMesh, err error) {
	var (
		Nv, K, Nmats, Nbcs, Nsd int
		pts                     []geometry2D.Point
		tris                    [][3]int
	)
	gr := &gambitReader{reader: bufio.NewReader(r)}
	// Title block
	if err = gr.skipLines(6); err != nil {
		return
	}
	if Nv, K, Nmats, Nbcs, Nsd, err = gr.readHeader(); err != nil {
		return
	}
	if Nsd != 2 {
		return nil, fmt.Errorf("have %d space dimensions, need 2", Nsd)
	}
	if err = gr.skipLines(2); err != nil {
		return
	}
	if pts, err = gr.read2DVertices(Nv); err != nil {
		return
	}
	if err = gr.skipLines(2); err != nil {
		return
	}
	if tris, err = gr.readTris(K, Nv); err != nil {
		return
	}
	if err = gr.skipLines(2); err != nil {
		return
	}
	gm = &GambitMesh{
		Material: make([]float64, K),
	}
	for k := range gm.Material {
		gm.Material[k] = 1
	}
	for i := 0; i < Nmats; i++ {
		var mg MaterialGroup
		if mg, err = gr.readMaterialHeader(); err != nil {
			return nil, err
		}
		if err = gr.readMaterialGroup(mg, gm.Material); err != nil {
			return nil, err
		}
		gm.Groups = append(gm.Groups, mg)
		if err = gr.skipLines(2); err != nil {
			return nil, err
		}
	}
	if gm.Boundaries, err = gr.readBCS(Nbcs, tris); err != nil {
		return nil, err
	}
	// Edge keys do not depend on vertex order, re-orienting is safe after
	// the boundary edges are read
	if gm.Mesh, err = geometry2D.NewMesh(pts, tris); err != nil {
		return nil, err
	}
	return
}

// BoundaryName returns the group of the boundary edge whose midpoint is
// closest to (x, y), ok is false when no edge midpoint lies within tol.
func (gm *GambitMesh) BoundaryName(x, y, tol float64) (name string, ok bool) {
	dBest := math.MaxFloat64
	for _, bg := range gm.Boundaries {
		for _, ek := range bg.Edges {
			var (
				v      = ek.Vertices()
				p0, p1 = gm.Mesh.Points[v[0]].X, gm.Mesh.Points[v[1]].X
				dx     = 0.5*(p0[0]+p1[0]) - x
				dy     = 0.5*(p0[1]+p1[1]) - y
			)
			if d := math.Sqrt(dx*dx + dy*dy); d < dBest {
				dBest, name = d, bg.Name
			}
		}
	}
	if dBest > tol {
		return "", false
	}
	return name, true
}

type gambitReader struct {
	reader *bufio.Reader
	lineNo int
}

func (gr *gambitReader) getLine() (line string, err error) {
	line, err = gr.reader.ReadString('\n')
	gr.lineNo++
	if err == io.EOF && len(line) != 0 {
		err = nil
	}
	if err != nil {
		if err == io.EOF {
			err = fmt.Errorf("early end of file at line %d", gr.lineNo)
		}
		return
	}
	line = strings.TrimRight(line, "\r\n")
	return
}

func (gr *gambitReader) skipLines(n int) (err error) {
	for i := 0; i < n; i++ {
		if _, err = gr.getLine(); err != nil {
			return
		}
	}
	return
}

func (gr *gambitReader) errorf(line, format string, args ...interface{}) error {
	return fmt.Errorf("line %d: %s: %q", gr.lineNo, fmt.Sprintf(format, args...), line)
}

// readHeader reads the counts of nodes, elements, material groups, boundary
// groups and space dimensions.
func (gr *gambitReader) readHeader() (Nv, K, Nmats, Nbcs, Nsd int, err error) {
	var (
		line   string
		n, dum int
	)
	if line, err = gr.getLine(); err != nil {
		return
	}
	if n, err = fmt.Sscanf(line, "%d %d %d %d %d %d", &Nv, &K, &Nmats, &Nbcs, &Nsd, &dum); err != nil || n < 6 {
		err = gr.errorf(line, "need 6 header counts, read %d", n)
	}
	return
}

func (gr *gambitReader) read2DVertices(Nv int) (pts []geometry2D.Point, err error) {
	var (
		line   string
		n, ind int
		x, y   float64
	)
	pts = make([]geometry2D.Point, Nv)
	for i := 0; i < Nv; i++ {
		if line, err = gr.getLine(); err != nil {
			return
		}
		if n, err = fmt.Sscanf(line, "%d %f %f", &ind, &x, &y); err != nil || n < 3 {
			return nil, gr.errorf(line, "need a vertex index and 2 coordinates, read %d", n)
		}
		if ind < 1 || ind > Nv {
			return nil, gr.errorf(line, "vertex index %d out of range [1,%d]", ind, Nv)
		}
		pts[ind-1].X = [2]float64{x, y}
	}
	return
}

//	ELEMENTS/CELLS 1.3.0
//	  1  3  3        1       2       3
//	  2  3  3        3       2       4
func (gr *gambitReader) readTris(K, Nv int) (tris [][3]int, err error) {
	var (
		line                string
		n, ind, typ, nfaces int
		v                   [3]int
	)
	tris = make([][3]int, K)
	for i := 0; i < K; i++ {
		if line, err = gr.getLine(); err != nil {
			return
		}
		if n, err = fmt.Sscanf(line, "%d %d %d %d %d %d", &ind, &typ, &nfaces, &v[0], &v[1], &v[2]); err != nil || n < 6 {
			return nil, gr.errorf(line, "need 6 fields for a triangle, read %d", n)
		}
		if nfaces != 3 {
			return nil, gr.errorf(line, "element %d has %d vertices, only triangles are supported", ind, nfaces)
		}
		if ind < 1 || ind > K {
			return nil, gr.errorf(line, "element index %d out of range [1,%d]", ind, K)
		}
		for j := range v {
			if v[j] < 1 || v[j] > Nv {
				return nil, gr.errorf(line, "vertex index %d out of range [1,%d]", v[j], Nv)
			}
			tris[ind-1][j] = v[j] - 1
		}
	}
	return
}

//	GROUP:           1 ELEMENTS:        977 MATERIAL:      1.000 NFLAGS:          0
//	                  epsilon: 1.000
//	       0
func (gr *gambitReader) readMaterialHeader() (mg MaterialGroup, err error) {
	var (
		line  string
		n, gn int
	)
	if line, err = gr.getLine(); err != nil {
		return
	}
	if n, err = fmt.Sscanf(line, "GROUP: %d ELEMENTS: %d MATERIAL: %f", &gn, &mg.ElementCount, &mg.MaterialValue); err != nil || n < 3 {
		err = gr.errorf(line, "need a group number, element count and material value, read %d", n)
		return
	}
	if line, err = gr.getLine(); err != nil {
		return
	}
	mg.Title = strings.TrimSpace(line)
	err = gr.skipLines(1)
	return
}

// readMaterialGroup reads the element list of a group, ten per line, and
// assigns the group value to each.
func (gr *gambitReader) readMaterialGroup(mg MaterialGroup, material []float64) (err error) {
	var (
		line string
		read int
	)
	for read < mg.ElementCount {
		if line, err = gr.getLine(); err != nil {
			return
		}
		fields := strings.Fields(line)
		if len(fields) == 0 || len(fields) > 10 {
			return gr.errorf(line, "need 1 to 10 element numbers, have %d", len(fields))
		}
		for _, f := range fields {
			var k int
			if _, err = fmt.Sscanf(f, "%d", &k); err != nil {
				return gr.errorf(line, "element number %q", f)
			}
			if k < 1 || k > len(material) {
				return gr.errorf(line, "element %d out of range [1,%d]", k, len(material))
			}
			material[k-1] = mg.MaterialValue
			read++
		}
	}
	if read != mg.ElementCount {
		return gr.errorf(line, "group %s lists %d elements, header says %d", mg.Title, read, mg.ElementCount)
	}
	return
}

//	 BOUNDARY CONDITIONS 2.0.0
//	                            Wall       1      12       0       6
//	      4        3        1
func (gr *gambitReader) readBCS(Nbcs int, tris [][3]int) (bgs []BoundaryGroup, err error) {
	var (
		line           string
		n              int
		bctyp          string
		bcid, numfaces int
	)
	for i := 0; i < Nbcs; i++ {
		if i != 0 {
			if err = gr.skipLines(1); err != nil {
				return
			}
		}
		if line, err = gr.getLine(); err != nil {
			return
		}
		if n, err = fmt.Sscanf(line, "%s %d %d", &bctyp, &bcid, &numfaces); err != nil || n < 3 {
			// A cylinder group carries a float parameter in place of the id
			var param float64
			if n, err = fmt.Sscanf(line, "%s %f %d", &bctyp, &param, &numfaces); err != nil || n < 3 {
				return nil, gr.errorf(line, "need a boundary name, id and face count, read %d", n)
			}
		}
		bg := BoundaryGroup{
			Name:  strings.ToLower(strings.TrimSpace(bctyp)),
			Edges: make([]types.EdgeKey, numfaces),
		}
		for j := 0; j < numfaces; j++ {
			var kp1, typ, faceNumberp1 int
			if line, err = gr.getLine(); err != nil {
				return
			}
			if n, err = fmt.Sscanf(line, "%d %d %d", &kp1, &typ, &faceNumberp1); err != nil || n < 3 {
				return nil, gr.errorf(line, "need element, type and face number, read %d", n)
			}
			if kp1 < 1 || kp1 > len(tris) || faceNumberp1 < 1 || faceNumberp1 > 3 {
				return nil, gr.errorf(line, "element %d face %d out of range", kp1, faceNumberp1)
			}
			tri := tris[kp1-1]
			bg.Edges[j] = types.NewEdgeKey([2]int{tri[faceNumberp1-1], tri[faceNumberp1%3]})
		}
		bgs = append(bgs, bg)
		if err = gr.skipLines(1); err != nil {
			return
		}
	}
	return
}
