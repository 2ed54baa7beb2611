// Package brick models brick assemblies: placement records, composite
// groupings, build steps, and the JSON document format they load from.
package brick

import (
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Faultbox/brickmesh/pkg/transform"
)

// Color is an RGB triple, each channel 0-255.
type Color [3]uint8

// Placement is a single primitive brick instance: a type, a position in
// brick-grid units, a unit-quaternion orientation, and an optional color.
// A nil Color means the default material.
type Placement struct {
	Type     string
	Position r3.Vec
	Rotation quat.Number
	Color    *Color
}

// Transform returns the placement's rigid transform.
func (p Placement) Transform() transform.Transform {
	return transform.Transform{Rotation: p.Rotation, Translation: p.Position}
}

// NewPlacement builds a validated placement from a scalar-first quaternion
// (w,x,y,z) and a position vector.
func NewPlacement(typeID string, position [3]float64, rotation [4]float64, color *Color) (Placement, error) {
	tf, err := transform.New(rotation, position)
	if err != nil {
		return Placement{}, err
	}
	return Placement{
		Type:     typeID,
		Position: tf.Translation,
		Rotation: tf.Rotation,
		Color:    color,
	}, nil
}

// EntryKind tags the variant held by an Entry.
type EntryKind int

const (
	// EntryInvalid marks an input shape that matched neither a primitive
	// nor a composite. Kept so strict and tolerant expansion can treat it
	// differently instead of re-inspecting raw fields.
	EntryInvalid EntryKind = iota
	EntryPrimitive
	EntryComposite
)

// Entry is one item in a step's brick list, resolved to an explicit
// variant once at parse time.
type Entry struct {
	Kind      EntryKind
	Primitive *Placement // set when Kind == EntryPrimitive
	Composite *Composite // set when Kind == EntryComposite
	Invalid   string     // why classification failed, when Kind == EntryInvalid
}

// Composite is a grouping of sub-placements, each positioned relative to
// the composite's own origin. It is owned by the step that references it
// and has no identity of its own.
type Composite struct {
	Position r3.Vec
	Rotation quat.Number
	Color    *Color
	Children []Entry
}

// Transform returns the composite's local rigid transform.
func (c *Composite) Transform() transform.Transform {
	return transform.Transform{Rotation: c.Rotation, Translation: c.Position}
}

// Step is one discrete assembly state. Steps are immutable once built
// from input data.
type Step struct {
	Index   int
	Entries []Entry
}

// LeafCount returns how many primitive placements the step holds after
// expanding composites. Invalid entries count for zero.
func (s Step) LeafCount() int {
	n := 0
	for _, e := range s.Entries {
		n += leafCount(e)
	}
	return n
}

func leafCount(e Entry) int {
	switch e.Kind {
	case EntryPrimitive:
		return 1
	case EntryComposite:
		n := 0
		for _, child := range e.Composite.Children {
			n += leafCount(child)
		}
		return n
	}
	return 0
}

// Assembly is an ordered sequence of steps representing a build history;
// the step with the greatest index is the final state. Read-only once
// loaded.
type Assembly struct {
	Steps []Step
}

// SingleStep wraps a flat placement list in a one-step assembly, so ad-hoc
// placements run through the same pipeline as loaded build histories.
func SingleStep(placements ...Placement) *Assembly {
	entries := make([]Entry, len(placements))
	for i := range placements {
		p := placements[i]
		entries[i] = Entry{Kind: EntryPrimitive, Primitive: &p}
	}
	return &Assembly{Steps: []Step{{Index: 0, Entries: entries}}}
}

// FinalStep returns the step with the numerically greatest index. It scans
// for the maximum rather than assuming the steps arrived sorted. The
// second return is false for an empty assembly.
func (a *Assembly) FinalStep() (Step, bool) {
	if len(a.Steps) == 0 {
		return Step{}, false
	}
	final := a.Steps[0]
	for _, s := range a.Steps[1:] {
		if s.Index > final.Index {
			final = s
		}
	}
	return final, true
}
