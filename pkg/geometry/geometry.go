// Package geometry procedurally generates canonical brick-local meshes
// and serves them through a concurrent-read cache.
package geometry

import (
	"math"
	"slices"
	"sync"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Faultbox/brickmesh/pkg/brick"
	"github.com/Faultbox/brickmesh/pkg/mesh"
)

// Brick-grid units, LDraw convention: 20 units between stud centres,
// 8 units per plate of height. Z is up; a brick rests on z=0.
const (
	StudPitch   = 20.0
	PlateHeight = 8.0
	StudRadius  = 6.0
	StudHeight  = 4.0

	studSegments = 8
)

// Dimensions describe a stud-grid brick: footprint in studs and height in
// plates (a standard brick is three plates tall).
type Dimensions struct {
	Name   string
	StudsX int
	StudsY int
	Plates int
}

// VertexCount returns how many vertices the tessellated mesh has.
func (d Dimensions) VertexCount() int {
	return 8 + d.StudsX*d.StudsY*(2*studSegments+1)
}

// FaceCount returns how many triangles the tessellated mesh has.
func (d Dimensions) FaceCount() int {
	return 12 + d.StudsX*d.StudsY*3*studSegments
}

var catalog = map[string]Dimensions{
	"3001": {"Brick 2 x 4", 4, 2, 3},
	"3002": {"Brick 2 x 3", 3, 2, 3},
	"3003": {"Brick 2 x 2", 2, 2, 3},
	"3004": {"Brick 1 x 2", 2, 1, 3},
	"3005": {"Brick 1 x 1", 1, 1, 3},
	"3010": {"Brick 1 x 4", 4, 1, 3},
	"3020": {"Plate 2 x 4", 4, 2, 1},
	"3021": {"Plate 2 x 3", 3, 2, 1},
	"3022": {"Plate 2 x 2", 2, 2, 1},
	"3023": {"Plate 1 x 2", 2, 1, 1},
	"3024": {"Plate 1 x 1", 1, 1, 1},
}

// Lookup returns the catalog dimensions for a brick type.
func Lookup(typeID string) (Dimensions, bool) {
	d, ok := catalog[typeID]
	return d, ok
}

// Types returns the known brick type IDs, sorted.
func Types() []string {
	ids := make([]string, 0, len(catalog))
	for id := range catalog {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

type cacheKey struct {
	typeID  string
	color   brick.Color
	colored bool
}

// Library serves canonical meshes, caching each (type, color) pair after
// first use. Cached meshes are shared: callers must not mutate them.
// Safe for concurrent use.
type Library struct {
	mu    sync.RWMutex
	cache map[cacheKey]*mesh.Mesh
}

// NewLibrary returns an empty Library.
func NewLibrary() *Library {
	return &Library{cache: make(map[cacheKey]*mesh.Mesh)}
}

// CanonicalMesh implements mesh.Source. The mesh is in brick-local space;
// when color is non-nil every vertex carries it.
func (l *Library) CanonicalMesh(typeID string, color *brick.Color) (*mesh.Mesh, error) {
	key := cacheKey{typeID: typeID}
	if color != nil {
		key.color = *color
		key.colored = true
	}

	l.mu.RLock()
	m, ok := l.cache[key]
	l.mu.RUnlock()
	if ok {
		return m, nil
	}

	dims, ok := catalog[typeID]
	if !ok {
		return nil, &mesh.UnknownBrickTypeError{Type: typeID, Record: -1}
	}

	m = tessellate(dims)
	if color != nil {
		m.Colors = make([]brick.Color, len(m.Vertices))
		for i := range m.Colors {
			m.Colors[i] = *color
		}
	}

	l.mu.Lock()
	l.cache[key] = m
	l.mu.Unlock()
	return m, nil
}

// tessellate builds the local-space mesh: a cuboid body centred on the
// origin in x/y and resting on z=0, with one cylindrical stud per grid
// cell on top. Faces wind counter-clockwise seen from outside.
func tessellate(d Dimensions) *mesh.Mesh {
	w := float64(d.StudsX) * StudPitch
	depth := float64(d.StudsY) * StudPitch
	h := float64(d.Plates) * PlateHeight
	hw, hd := w/2, depth/2

	m := &mesh.Mesh{
		Vertices: make([]r3.Vec, 0, d.VertexCount()),
		Faces:    make([][3]int, 0, d.FaceCount()),
	}

	m.Vertices = append(m.Vertices,
		r3.Vec{X: -hw, Y: -hd}, r3.Vec{X: hw, Y: -hd},
		r3.Vec{X: hw, Y: hd}, r3.Vec{X: -hw, Y: hd},
		r3.Vec{X: -hw, Y: -hd, Z: h}, r3.Vec{X: hw, Y: -hd, Z: h},
		r3.Vec{X: hw, Y: hd, Z: h}, r3.Vec{X: -hw, Y: hd, Z: h},
	)
	m.Faces = append(m.Faces,
		[3]int{0, 2, 1}, [3]int{0, 3, 2}, // bottom
		[3]int{4, 5, 6}, [3]int{4, 6, 7}, // top
		[3]int{0, 1, 5}, [3]int{0, 5, 4}, // -y side
		[3]int{1, 2, 6}, [3]int{1, 6, 5}, // +x side
		[3]int{2, 3, 7}, [3]int{2, 7, 6}, // +y side
		[3]int{3, 0, 4}, [3]int{3, 4, 7}, // -x side
	)

	for i := 0; i < d.StudsX; i++ {
		for j := 0; j < d.StudsY; j++ {
			cx := -hw + StudPitch/2 + float64(i)*StudPitch
			cy := -hd + StudPitch/2 + float64(j)*StudPitch
			addStud(m, cx, cy, h)
		}
	}
	return m
}

func addStud(m *mesh.Mesh, cx, cy, base float64) {
	start := len(m.Vertices)
	for _, z := range [2]float64{base, base + StudHeight} {
		for k := 0; k < studSegments; k++ {
			a := 2 * math.Pi * float64(k) / studSegments
			m.Vertices = append(m.Vertices, r3.Vec{
				X: cx + StudRadius*math.Cos(a),
				Y: cy + StudRadius*math.Sin(a),
				Z: z,
			})
		}
	}
	apex := len(m.Vertices)
	m.Vertices = append(m.Vertices, r3.Vec{X: cx, Y: cy, Z: base + StudHeight})

	for k := 0; k < studSegments; k++ {
		next := (k + 1) % studSegments
		b0, b1 := start+k, start+next
		t0, t1 := start+studSegments+k, start+studSegments+next
		m.Faces = append(m.Faces,
			[3]int{b0, b1, t1}, [3]int{b0, t1, t0}, // wall
			[3]int{t0, t1, apex},                   // cap
		)
	}
}
