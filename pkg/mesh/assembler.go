package mesh

import (
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/brickmesh/pkg/brick"
)

// Source supplies the canonical brick-local mesh for a brick type. The
// returned mesh may be shared across calls; callers must treat it as
// read-only and transform copies. Implementations must be safe for
// concurrent reads.
type Source interface {
	CanonicalMesh(typeID string, color *brick.Color) (*Mesh, error)
}

// UnknownBrickTypeError reports a brick type the geometry source cannot
// resolve. Record is the offending placement's index in the input
// sequence, or -1 when the failure is not tied to a sequence.
type UnknownBrickTypeError struct {
	Type   string
	Record int
}

func (e *UnknownBrickTypeError) Error() string {
	if e.Record >= 0 {
		return fmt.Sprintf("record %d: unknown brick type %q", e.Record, e.Type)
	}
	return fmt.Sprintf("unknown brick type %q", e.Type)
}

// Assembler turns placement records into world-space meshes.
//
// Workers caps how many records are transformed in parallel; zero or one
// means serial. Parallel assembly is purely a performance knob: results
// are written back by record index, so output order never depends on
// which worker finishes first.
type Assembler struct {
	Source  Source
	Workers int
}

// Assemble produces one transformed mesh per record, in record order.
// Zero records yields an empty list. An unresolvable brick type aborts the
// whole assembly; a partial result with silently missing bricks is worse
// than a visible failure.
func (a *Assembler) Assemble(records []brick.Placement) ([]*Mesh, error) {
	out := make([]*Mesh, len(records))

	if a.Workers > 1 && len(records) > 1 {
		g := new(errgroup.Group)
		g.SetLimit(a.Workers)
		for i := range records {
			i := i
			g.Go(func() error {
				m, err := a.place(i, records[i])
				if err != nil {
					return err
				}
				out[i] = m
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
		return out, nil
	}

	for i := range records {
		m, err := a.place(i, records[i])
		if err != nil {
			return nil, err
		}
		out[i] = m
	}
	return out, nil
}

// AssembleMerged is Assemble followed by Merge: one mesh accumulating all
// records. Zero records yields an empty mesh, not an error.
func (a *Assembler) AssembleMerged(records []brick.Placement) (*Mesh, error) {
	meshes, err := a.Assemble(records)
	if err != nil {
		return nil, err
	}
	return Merge(meshes), nil
}

func (a *Assembler) place(i int, rec brick.Placement) (*Mesh, error) {
	canonical, err := a.Source.CanonicalMesh(rec.Type, rec.Color)
	if err != nil {
		var unknown *UnknownBrickTypeError
		if errors.As(err, &unknown) && unknown.Record < 0 {
			unknown.Record = i
		}
		return nil, err
	}
	return canonical.Transformed(rec.Transform()), nil
}
