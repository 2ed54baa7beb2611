// Package mesh assembles placed bricks into triangulated world-space
// geometry.
package mesh

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Faultbox/brickmesh/pkg/brick"
	"github.com/Faultbox/brickmesh/pkg/transform"
)

// DefaultColor stands in for uncolored vertices when a merge mixes
// colored and uncolored inputs.
var DefaultColor = brick.Color{200, 200, 200}

// Mesh is a triangle mesh: vertex positions, faces indexing them, and
// optional per-vertex colors. Colors is either empty or holds exactly one
// color per vertex.
type Mesh struct {
	Vertices []r3.Vec
	Faces    [][3]int
	Colors   []brick.Color
}

// Clone returns a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	out := &Mesh{
		Vertices: make([]r3.Vec, len(m.Vertices)),
		Faces:    make([][3]int, len(m.Faces)),
	}
	copy(out.Vertices, m.Vertices)
	copy(out.Faces, m.Faces)
	if len(m.Colors) > 0 {
		out.Colors = make([]brick.Color, len(m.Colors))
		copy(out.Colors, m.Colors)
	}
	return out
}

// ApplyTransform maps every vertex through t, in place.
func (m *Mesh) ApplyTransform(t transform.Transform) {
	for i, v := range m.Vertices {
		m.Vertices[i] = t.Apply(v)
	}
}

// Transformed returns a transformed deep copy, leaving m untouched. This
// is how canonical geometry is placed: the shared canonical mesh is never
// mutated.
func (m *Mesh) Transformed(t transform.Transform) *Mesh {
	out := m.Clone()
	out.ApplyTransform(t)
	return out
}

// Merge concatenates meshes into a single mesh, re-indexing each mesh's
// faces by the cumulative vertex offset. Input order is preserved and
// coincident vertices are not deduplicated, so the result's vertex and
// face counts are the sums of the inputs'. If any input carries vertex
// colors, the merged mesh does too, padding uncolored inputs with
// DefaultColor. Merging nothing yields an empty mesh.
func Merge(meshes []*Mesh) *Mesh {
	var nv, nf int
	hasColors := false
	for _, m := range meshes {
		nv += len(m.Vertices)
		nf += len(m.Faces)
		if len(m.Colors) > 0 {
			hasColors = true
		}
	}

	merged := &Mesh{
		Vertices: make([]r3.Vec, 0, nv),
		Faces:    make([][3]int, 0, nf),
	}
	if hasColors {
		merged.Colors = make([]brick.Color, 0, nv)
	}

	for _, m := range meshes {
		offset := len(merged.Vertices)
		merged.Vertices = append(merged.Vertices, m.Vertices...)
		for _, f := range m.Faces {
			merged.Faces = append(merged.Faces, [3]int{f[0] + offset, f[1] + offset, f[2] + offset})
		}
		if hasColors {
			if len(m.Colors) > 0 {
				merged.Colors = append(merged.Colors, m.Colors...)
			} else {
				for range m.Vertices {
					merged.Colors = append(merged.Colors, DefaultColor)
				}
			}
		}
	}
	return merged
}
