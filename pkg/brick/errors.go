package brick

import "fmt"

// InputError reports a malformed top-level assembly document: a schema
// violation, a non-integer step key, or a missing required field.
type InputError struct {
	Field  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid assembly input at %s: %s", e.Field, e.Reason)
}

// CompositeExpansionError reports a step entry that is neither a valid
// placement nor a valid composite. Step is -1 when the expansion was not
// tied to a step. Entry is the offending entry's index at its own nesting
// level.
type CompositeExpansionError struct {
	Step   int
	Entry  int
	Reason string
}

func (e *CompositeExpansionError) Error() string {
	if e.Step >= 0 {
		return fmt.Sprintf("step %d: cannot expand entry %d: %s", e.Step, e.Entry, e.Reason)
	}
	return fmt.Sprintf("cannot expand entry %d: %s", e.Entry, e.Reason)
}
