package brick

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strconv"

	"github.com/Faultbox/brickmesh/pkg/transform"
)

// Assembly document schema. Each operation is one build step keyed by its
// ordinal index:
//
//	{"operations": {"0": {"bricks": [
//	    {"brick_type": "3001",
//	     "brick_transform": {"position": [x,y,z], "rotation": [w,x,y,z]},
//	     "color": [r,g,b]},
//	    {"brick_transform": {...}, "bricks": [...]}   // composite, no brick_type
//	]}}}
type rawDocument struct {
	Operations map[string]rawStep `json:"operations"`
}

type rawStep struct {
	Bricks []rawEntry `json:"bricks"`
}

type rawEntry struct {
	BrickType string        `json:"brick_type"`
	Transform *rawTransform `json:"brick_transform"`
	Color     []int         `json:"color"`
	Bricks    []rawEntry    `json:"bricks"`
}

type rawTransform struct {
	Position []float64 `json:"position"`
	Rotation []float64 `json:"rotation"`
}

// Load reads and parses an assembly document from disk.
func Load(path string) (*Assembly, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading assembly %s: %w", path, err)
	}
	asm, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return asm, nil
}

// Parse builds an Assembly from a JSON document. Every entry is resolved
// to an explicit primitive/composite/invalid variant here, once; nothing
// downstream re-inspects raw field presence. Steps are returned sorted by
// ascending index.
func Parse(data []byte) (*Assembly, error) {
	var doc rawDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &InputError{Field: "document", Reason: err.Error()}
	}
	if doc.Operations == nil {
		return nil, &InputError{Field: "operations", Reason: "missing required field"}
	}

	steps := make([]Step, 0, len(doc.Operations))
	for key, op := range doc.Operations {
		idx, err := strconv.Atoi(key)
		if err != nil {
			return nil, &InputError{
				Field:  "operations." + key,
				Reason: "step key is not an integer",
			}
		}

		entries := make([]Entry, 0, len(op.Bricks))
		for i, re := range op.Bricks {
			entry, err := classify(re, fmt.Sprintf("operations.%s.bricks[%d]", key, i))
			if err != nil {
				return nil, err
			}
			entries = append(entries, entry)
		}
		steps = append(steps, Step{Index: idx, Entries: entries})
	}

	slices.SortFunc(steps, func(a, b Step) int { return a.Index - b.Index })
	return &Assembly{Steps: steps}, nil
}

// classify resolves one raw entry into its variant. Shape mismatches (an
// entry that is neither a placement nor a composite) become EntryInvalid
// so that tolerant expansion can skip them; value-level violations in an
// otherwise well-shaped entry (bad quaternion, bad color, missing
// transform) always fail.
func classify(re rawEntry, field string) (Entry, error) {
	hasType := re.BrickType != ""
	hasChildren := re.Bricks != nil

	switch {
	case hasType && hasChildren:
		return Entry{Invalid: "carries both brick_type and nested bricks"}, nil
	case !hasType && !hasChildren:
		return Entry{Invalid: "has neither brick_type nor nested bricks"}, nil
	}

	if re.Transform == nil {
		return Entry{}, &InputError{Field: field + ".brick_transform", Reason: "missing required field"}
	}
	tf, err := transform.FromSlices(re.Transform.Rotation, re.Transform.Position)
	if err != nil {
		return Entry{}, fmt.Errorf("%s: %w", field, err)
	}
	color, err := parseColor(re.Color, field)
	if err != nil {
		return Entry{}, err
	}

	if hasType {
		return Entry{
			Kind: EntryPrimitive,
			Primitive: &Placement{
				Type:     re.BrickType,
				Position: tf.Translation,
				Rotation: tf.Rotation,
				Color:    color,
			},
		}, nil
	}

	children := make([]Entry, 0, len(re.Bricks))
	for i, sub := range re.Bricks {
		child, err := classify(sub, fmt.Sprintf("%s.bricks[%d]", field, i))
		if err != nil {
			return Entry{}, err
		}
		children = append(children, child)
	}
	return Entry{
		Kind: EntryComposite,
		Composite: &Composite{
			Position: tf.Translation,
			Rotation: tf.Rotation,
			Color:    color,
			Children: children,
		},
	}, nil
}

func parseColor(raw []int, field string) (*Color, error) {
	if raw == nil {
		return nil, nil
	}
	if len(raw) != 3 {
		return nil, &InputError{
			Field:  field + ".color",
			Reason: fmt.Sprintf("color needs 3 channels, got %d", len(raw)),
		}
	}
	var c Color
	for i, ch := range raw {
		if ch < 0 || ch > 255 {
			return nil, &InputError{
				Field:  field + ".color",
				Reason: fmt.Sprintf("channel %d out of range 0-255: %d", i, ch),
			}
		}
		c[i] = uint8(ch)
	}
	return &c, nil
}
