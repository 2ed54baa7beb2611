package brick

import "github.com/Faultbox/brickmesh/pkg/transform"

// Flatten expands one step into a flat, ordered placement list: primitive
// entries pass through with their own color (or none), composite entries
// expand depth-first via Expand. Malformed entries fail with
// CompositeExpansionError, or are skipped when tolerant is set.
func Flatten(s Step, tolerant bool) ([]Placement, error) {
	var out []Placement
	for i, e := range s.Entries {
		switch e.Kind {
		case EntryPrimitive:
			out = append(out, *e.Primitive)
		case EntryComposite:
			var err error
			out, err = expand(out, e.Composite, transform.Identity(), nil, tolerant, s.Index)
			if err != nil {
				return nil, err
			}
		default:
			if tolerant {
				continue
			}
			return nil, &CompositeExpansionError{Step: s.Index, Entry: i, Reason: e.Invalid}
		}
	}
	return out, nil
}
