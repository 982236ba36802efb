package trimesh

import (
	"bufio"
	"fmt"
	"io"
)

// WriteOBJ writes the mesh as Wavefront OBJ. Face indices are 1-based
// per the format.
func WriteOBJ(w io.Writer, m *Mesh) error {
	bw := bufio.NewWriter(w)

	for _, v := range m.Vertices {
		if _, err := fmt.Fprintf(bw, "v %g %g %g\n", v[0], v[1], v[2]); err != nil {
			return fmt.Errorf("writing vertex: %w", err)
		}
	}
	for _, tri := range m.Triangles {
		if _, err := fmt.Fprintf(bw, "f %d %d %d\n", tri[0]+1, tri[1]+1, tri[2]+1); err != nil {
			return fmt.Errorf("writing face: %w", err)
		}
	}

	return bw.Flush()
}
