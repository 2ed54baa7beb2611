package brick

import "github.com/Faultbox/brickmesh/pkg/transform"

// Expand flattens a composite into primitive placements. Traversal is
// depth-first and preserves input order at every level, so downstream
// per-brick color assignment stays stable. Each returned placement carries
// the fully composed world transform, decomposed back into a
// position/orientation pair, and the color inherited from the nearest
// enclosing definition that sets one; an explicit leaf color wins.
//
// parent is the transform in effect at the composite's root, identity when
// the composite stands alone. An empty composite expands to an empty
// slice. A malformed child entry fails with CompositeExpansionError unless
// tolerant is set, in which case it is skipped.
func Expand(c *Composite, parent transform.Transform, tolerant bool) ([]Placement, error) {
	return expand(nil, c, parent, nil, tolerant, -1)
}

func expand(dst []Placement, c *Composite, parent transform.Transform, inherited *Color, tolerant bool, step int) ([]Placement, error) {
	world := transform.Compose(parent, c.Transform())
	color := inherited
	if c.Color != nil {
		color = c.Color
	}

	for i, child := range c.Children {
		switch child.Kind {
		case EntryPrimitive:
			dst = append(dst, placeLeaf(*child.Primitive, world, color))
		case EntryComposite:
			var err error
			dst, err = expand(dst, child.Composite, world, color, tolerant, step)
			if err != nil {
				return nil, err
			}
		default:
			if tolerant {
				continue
			}
			return nil, &CompositeExpansionError{Step: step, Entry: i, Reason: child.Invalid}
		}
	}
	return dst, nil
}

// placeLeaf composes a primitive's local transform into world and resolves
// its effective color.
func placeLeaf(p Placement, world transform.Transform, inherited *Color) Placement {
	composed := transform.Compose(world, p.Transform())
	p.Position = composed.Translation
	p.Rotation = composed.Rotation
	if p.Color == nil {
		p.Color = inherited
	}
	return p
}
