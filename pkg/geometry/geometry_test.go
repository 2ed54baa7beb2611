package geometry

import (
	"errors"
	"sync"
	"testing"

	"github.com/Faultbox/brickmesh/pkg/brick"
	"github.com/Faultbox/brickmesh/pkg/mesh"
)

func TestCanonicalMeshCounts(t *testing.T) {
	lib := NewLibrary()
	for _, id := range Types() {
		dims, _ := Lookup(id)
		m, err := lib.CanonicalMesh(id, nil)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", id, err)
		}
		if len(m.Vertices) != dims.VertexCount() {
			t.Errorf("%s: got %d vertices, want %d", id, len(m.Vertices), dims.VertexCount())
		}
		if len(m.Faces) != dims.FaceCount() {
			t.Errorf("%s: got %d faces, want %d", id, len(m.Faces), dims.FaceCount())
		}
	}
}

func TestCanonicalMeshIndicesInBounds(t *testing.T) {
	lib := NewLibrary()
	m, err := lib.CanonicalMesh("3001", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for fi, f := range m.Faces {
		for _, idx := range f {
			if idx < 0 || idx >= len(m.Vertices) {
				t.Fatalf("face %d index %d out of bounds (%d vertices)", fi, idx, len(m.Vertices))
			}
		}
	}
}

func TestCanonicalMeshGeometryExtents(t *testing.T) {
	lib := NewLibrary()
	m, _ := lib.CanonicalMesh("3001", nil) // 2x4 brick: 80 x 40, height 24+4
	var minZ, maxZ, minX, maxX float64
	for i, v := range m.Vertices {
		if i == 0 {
			minZ, maxZ, minX, maxX = v.Z, v.Z, v.X, v.X
			continue
		}
		minZ = min(minZ, v.Z)
		maxZ = max(maxZ, v.Z)
		minX = min(minX, v.X)
		maxX = max(maxX, v.X)
	}
	if minZ != 0 {
		t.Errorf("brick should rest on z=0, got min z %v", minZ)
	}
	if maxZ != 3*PlateHeight+StudHeight {
		t.Errorf("got max z %v, want %v", maxZ, 3*PlateHeight+StudHeight)
	}
	if minX != -40 || maxX != 40 {
		t.Errorf("got x extent [%v, %v], want [-40, 40]", minX, maxX)
	}
}

func TestCanonicalMeshUnknownType(t *testing.T) {
	lib := NewLibrary()
	_, err := lib.CanonicalMesh("9999", nil)
	var unknown *mesh.UnknownBrickTypeError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownBrickTypeError, got %v", err)
	}
	if unknown.Type != "9999" {
		t.Errorf("error should name the type, got %q", unknown.Type)
	}
}

func TestCanonicalMeshCacheReuse(t *testing.T) {
	lib := NewLibrary()
	a, _ := lib.CanonicalMesh("3001", nil)
	b, _ := lib.CanonicalMesh("3001", nil)
	if a != b {
		t.Error("repeated lookups should return the cached mesh")
	}

	red := brick.Color{255, 0, 0}
	c, _ := lib.CanonicalMesh("3001", &red)
	if c == a {
		t.Error("colored variant must not share the uncolored cache entry")
	}
	d, _ := lib.CanonicalMesh("3001", &red)
	if c != d {
		t.Error("repeated colored lookups should return the cached mesh")
	}
}

func TestCanonicalMeshColorsFillAllVertices(t *testing.T) {
	lib := NewLibrary()
	red := brick.Color{255, 0, 0}
	m, err := lib.CanonicalMesh("3024", &red)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(m.Colors) != len(m.Vertices) {
		t.Fatalf("got %d colors for %d vertices", len(m.Colors), len(m.Vertices))
	}
	for i, c := range m.Colors {
		if c != red {
			t.Fatalf("vertex %d color %v, want %v", i, c, red)
		}
	}
}

func TestLibraryConcurrentReads(t *testing.T) {
	lib := NewLibrary()
	ids := Types()

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				id := ids[i%len(ids)]
				if _, err := lib.CanonicalMesh(id, nil); err != nil {
					t.Errorf("%s: %v", id, err)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestTypesSorted(t *testing.T) {
	ids := Types()
	if len(ids) == 0 {
		t.Fatal("catalog should not be empty")
	}
	for i := 1; i < len(ids); i++ {
		if ids[i-1] >= ids[i] {
			t.Errorf("types not sorted: %q before %q", ids[i-1], ids[i])
		}
	}
	if _, ok := Lookup("3001"); !ok {
		t.Error("catalog should know type 3001")
	}
}
