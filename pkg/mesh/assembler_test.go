package mesh

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Faultbox/brickmesh/pkg/brick"
)

// fakeSource serves one shared quad per known type.
type fakeSource struct {
	known map[string]*Mesh
}

func newFakeSource(types ...string) *fakeSource {
	s := &fakeSource{known: make(map[string]*Mesh)}
	for _, id := range types {
		s.known[id] = quad()
	}
	return s
}

func (s *fakeSource) CanonicalMesh(typeID string, color *brick.Color) (*Mesh, error) {
	m, ok := s.known[typeID]
	if !ok {
		return nil, &UnknownBrickTypeError{Type: typeID, Record: -1}
	}
	if color != nil {
		colored := m.Clone()
		colored.Colors = make([]brick.Color, len(colored.Vertices))
		for i := range colored.Colors {
			colored.Colors[i] = *color
		}
		return colored, nil
	}
	return m, nil
}

func placements(n int) []brick.Placement {
	out := make([]brick.Placement, n)
	for i := range out {
		p, err := brick.NewPlacement("3001", [3]float64{float64(i) * 20, 0, 0}, [4]float64{1, 0, 0, 0}, nil)
		if err != nil {
			panic(err)
		}
		out[i] = p
	}
	return out
}

func TestAssembleOnePerRecordInOrder(t *testing.T) {
	a := &Assembler{Source: newFakeSource("3001")}

	got, err := a.Assemble(placements(3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 meshes, got %d", len(got))
	}
	for i, m := range got {
		want := r3.Vec{X: float64(i) * 20}
		if diff := cmp.Diff(want, m.Vertices[0], approx); diff != "" {
			t.Errorf("mesh %d out of order or misplaced:\n%s", i, diff)
		}
	}
}

func TestAssembleDoesNotMutateCanonical(t *testing.T) {
	src := newFakeSource("3001")
	a := &Assembler{Source: src}

	if _, err := a.Assemble(placements(2)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(quad().Vertices, src.known["3001"].Vertices, approx); diff != "" {
		t.Errorf("canonical mesh was mutated:\n%s", diff)
	}
}

func TestAssembleEmpty(t *testing.T) {
	a := &Assembler{Source: newFakeSource("3001")}

	got, err := a.Assemble(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty list, got %d meshes", len(got))
	}

	merged, err := a.AssembleMerged(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(merged.Vertices) != 0 || len(merged.Faces) != 0 {
		t.Errorf("expected empty merged mesh, got %d vertices", len(merged.Vertices))
	}
}

func TestAssembleUnknownTypeAbortsWithRecordIndex(t *testing.T) {
	a := &Assembler{Source: newFakeSource("3001")}
	recs := placements(3)
	recs[1].Type = "9999"

	_, err := a.Assemble(recs)
	var unknown *UnknownBrickTypeError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownBrickTypeError, got %v", err)
	}
	if unknown.Type != "9999" || unknown.Record != 1 {
		t.Errorf("error should name record 1 type 9999, got record %d type %q", unknown.Record, unknown.Type)
	}
}

func TestAssembleMergedSums(t *testing.T) {
	a := &Assembler{Source: newFakeSource("3001")}

	merged, err := a.AssembleMerged(placements(4))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(merged.Vertices) != 4*4 {
		t.Errorf("expected %d vertices, got %d", 4*4, len(merged.Vertices))
	}
	if len(merged.Faces) != 4*2 {
		t.Errorf("expected %d faces, got %d", 4*2, len(merged.Faces))
	}
}

func TestAssembleParallelMatchesSerial(t *testing.T) {
	recs := placements(32)

	serial, err := (&Assembler{Source: newFakeSource("3001")}).Assemble(recs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	parallel, err := (&Assembler{Source: newFakeSource("3001"), Workers: 8}).Assemble(recs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(serial) != len(parallel) {
		t.Fatalf("length mismatch: %d vs %d", len(serial), len(parallel))
	}
	for i := range serial {
		if diff := cmp.Diff(serial[i].Vertices, parallel[i].Vertices, approx); diff != "" {
			t.Errorf("mesh %d differs between serial and parallel:\n%s", i, diff)
		}
	}
}

func TestAssembleParallelUnknownTypeStillFails(t *testing.T) {
	recs := placements(16)
	recs[9].Type = "9999"
	a := &Assembler{Source: newFakeSource("3001"), Workers: 4}

	_, err := a.Assemble(recs)
	var unknown *UnknownBrickTypeError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownBrickTypeError, got %v", err)
	}
}

func TestUnknownBrickTypeErrorMessage(t *testing.T) {
	err := &UnknownBrickTypeError{Type: "9999", Record: 3}
	want := fmt.Sprintf("record %d: unknown brick type %q", 3, "9999")
	if err.Error() != want {
		t.Errorf("got %q, want %q", err.Error(), want)
	}
}
