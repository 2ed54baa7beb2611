package export

import (
	"fmt"
	"io"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Faultbox/brickmesh/pkg/mesh"
)

// writeOBJ emits Wavefront OBJ. Vertex colors, when present, use the
// widely supported "v x y z r g b" extension with channels in [0,1].
func writeOBJ(w io.Writer, m *mesh.Mesh) error {
	colored := len(m.Colors) == len(m.Vertices) && len(m.Colors) > 0
	for i, v := range m.Vertices {
		var err error
		if colored {
			c := m.Colors[i]
			_, err = fmt.Fprintf(w, "v %g %g %g %g %g %g\n", v.X, v.Y, v.Z,
				float64(c[0])/255, float64(c[1])/255, float64(c[2])/255)
		} else {
			_, err = fmt.Fprintf(w, "v %g %g %g\n", v.X, v.Y, v.Z)
		}
		if err != nil {
			return err
		}
	}
	for _, f := range m.Faces {
		// OBJ face indices are 1-based.
		if _, err := fmt.Fprintf(w, "f %d %d %d\n", f[0]+1, f[1]+1, f[2]+1); err != nil {
			return err
		}
	}
	return nil
}

// writePLY emits ASCII PLY, with uchar vertex colors when present.
func writePLY(w io.Writer, m *mesh.Mesh) error {
	colored := len(m.Colors) == len(m.Vertices) && len(m.Colors) > 0

	if _, err := fmt.Fprintf(w, "ply\nformat ascii 1.0\nelement vertex %d\n", len(m.Vertices)); err != nil {
		return err
	}
	props := "property float x\nproperty float y\nproperty float z\n"
	if colored {
		props += "property uchar red\nproperty uchar green\nproperty uchar blue\n"
	}
	if _, err := fmt.Fprintf(w, "%selement face %d\nproperty list uchar int vertex_indices\nend_header\n",
		props, len(m.Faces)); err != nil {
		return err
	}

	for i, v := range m.Vertices {
		var err error
		if colored {
			c := m.Colors[i]
			_, err = fmt.Fprintf(w, "%g %g %g %d %d %d\n", v.X, v.Y, v.Z, c[0], c[1], c[2])
		} else {
			_, err = fmt.Fprintf(w, "%g %g %g\n", v.X, v.Y, v.Z)
		}
		if err != nil {
			return err
		}
	}
	for _, f := range m.Faces {
		if _, err := fmt.Fprintf(w, "3 %d %d %d\n", f[0], f[1], f[2]); err != nil {
			return err
		}
	}
	return nil
}

// writeSTL emits ASCII STL. STL has no color channel; facet normals are
// computed from the winding.
func writeSTL(w io.Writer, m *mesh.Mesh) error {
	if _, err := fmt.Fprintln(w, "solid brickmesh"); err != nil {
		return err
	}
	for _, f := range m.Faces {
		a, b, c := m.Vertices[f[0]], m.Vertices[f[1]], m.Vertices[f[2]]
		n := facetNormal(a, b, c)
		if _, err := fmt.Fprintf(w, "  facet normal %g %g %g\n    outer loop\n", n.X, n.Y, n.Z); err != nil {
			return err
		}
		for _, v := range [3]r3.Vec{a, b, c} {
			if _, err := fmt.Fprintf(w, "      vertex %g %g %g\n", v.X, v.Y, v.Z); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprint(w, "    endloop\n  endfacet\n"); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "endsolid brickmesh")
	return err
}

func facetNormal(a, b, c r3.Vec) r3.Vec {
	n := r3.Cross(r3.Sub(b, a), r3.Sub(c, a))
	l := r3.Norm(n)
	if l < 1e-12 {
		return r3.Vec{}
	}
	return r3.Scale(1/l, n)
}
