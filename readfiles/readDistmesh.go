package readfiles

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/notargets/gondg/geometry2D"
)

// ReadDistmeshFiles reads a mesh from a points file of tab separated (x, y)
// pairs and a triangles file of tab separated 1-indexed vertex triples.
func ReadDistmeshFiles(pointsFile, trisFile string, verbose bool) (m *geometry2D.Mesh, err error) {
	var (
		pf, tf *os.File
	)
	if verbose {
		fmt.Printf("Reading distmesh files: %s, %s\n", pointsFile, trisFile)
	}
	if pf, err = os.Open(pointsFile); err != nil {
		return nil, fmt.Errorf("unable to open points file %s: %w", pointsFile, err)
	}
	defer pf.Close()
	if tf, err = os.Open(trisFile); err != nil {
		return nil, fmt.Errorf("unable to open triangles file %s: %w", trisFile, err)
	}
	defer tf.Close()
	if m, err = ReadDistmesh(pf, tf); err != nil {
		return
	}
	if verbose {
		xmin, xmax, ymin, ymax := m.Bounds()
		fmt.Printf("Nv = %d, K = %d\n", len(m.Points), m.K())
		fmt.Printf("Bounding Box:\nXMin/XMax = %5.3f, %5.3f\nYMin/YMax = %5.3f, %5.3f\n",
			xmin, xmax, ymin, ymax)
	}
	return
}

// ReadDistmesh parses the two record streams, vertex indices are converted
// to 0-based and triangles are re-oriented counter-clockwise.
func ReadDistmesh(points, tris io.Reader) (m *geometry2D.Mesh, err error) {
	var (
		pts       []geometry2D.Point
		triangles [][3]int
	)
	err = eachRecord(points, 2, func(lineNo int, fields []string) error {
		var pt geometry2D.Point
		for i, f := range fields {
			v, perr := strconv.ParseFloat(f, 64)
			if perr != nil {
				return fmt.Errorf("points line %d: %w", lineNo, perr)
			}
			pt.X[i] = v
		}
		pts = append(pts, pt)
		return nil
	})
	if err != nil {
		return
	}
	err = eachRecord(tris, 3, func(lineNo int, fields []string) error {
		var tri [3]int
		for i, f := range fields {
			v, perr := strconv.Atoi(f)
			if perr != nil {
				return fmt.Errorf("triangles line %d: %w", lineNo, perr)
			}
			if v < 1 {
				return fmt.Errorf("triangles line %d: vertex index %d, indices are 1-based", lineNo, v)
			}
			tri[i] = v - 1
		}
		triangles = append(triangles, tri)
		return nil
	})
	if err != nil {
		return
	}
	return geometry2D.NewMesh(pts, triangles)
}

func eachRecord(r io.Reader, nFields int, parse func(lineNo int, fields []string) error) (err error) {
	var (
		scanner = bufio.NewScanner(r)
		lineNo  int
	)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if len(line) == 0 {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) != nFields {
			return fmt.Errorf("line %d: have %d fields, need %d: %q", lineNo, len(fields), nFields, line)
		}
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}
		if err = parse(lineNo, fields); err != nil {
			return
		}
	}
	return scanner.Err()
}
