// Package transform builds and composes rigid transforms (rotation +
// translation) from orientation/position pairs.
package transform

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// UnitTolerance is how far a quaternion's norm may stray from 1 before it
// is rejected as non-normalized.
const UnitTolerance = 1e-6

// InvalidTransformError reports a malformed orientation or position.
type InvalidTransformError struct {
	Reason string
}

func (e *InvalidTransformError) Error() string {
	return "invalid transform: " + e.Reason
}

// Transform is a rigid transform: it rotates a point about the origin,
// then translates it. The rotation is held as a unit quaternion with the
// scalar part in Real.
type Transform struct {
	Rotation    quat.Number
	Translation r3.Vec
}

// Identity returns the transform that leaves points unchanged.
func Identity() Transform {
	return Transform{Rotation: quat.Number{Real: 1}}
}

// New builds a transform from a scalar-first quaternion (w,x,y,z) and a
// translation vector. The quaternion must already be a unit quaternion;
// a non-unit or non-finite one is rejected, never renormalized.
func New(rotation [4]float64, translation [3]float64) (Transform, error) {
	for i, c := range rotation {
		if !isFinite(c) {
			return Transform{}, &InvalidTransformError{
				Reason: fmt.Sprintf("rotation component %d is not finite", i),
			}
		}
	}
	for i, c := range translation {
		if !isFinite(c) {
			return Transform{}, &InvalidTransformError{
				Reason: fmt.Sprintf("position component %d is not finite", i),
			}
		}
	}

	q := quat.Number{Real: rotation[0], Imag: rotation[1], Jmag: rotation[2], Kmag: rotation[3]}
	if n := quat.Abs(q); math.Abs(n-1) > UnitTolerance {
		return Transform{}, &InvalidTransformError{
			Reason: fmt.Sprintf("rotation is not a unit quaternion (norm %v)", n),
		}
	}

	return Transform{
		Rotation:    q,
		Translation: r3.Vec{X: translation[0], Y: translation[1], Z: translation[2]},
	}, nil
}

// FromSlices is New for raw decoded arrays whose arity is not known at
// compile time. Wrong-length input fails with InvalidTransformError.
func FromSlices(rotation, translation []float64) (Transform, error) {
	if len(rotation) != 4 {
		return Transform{}, &InvalidTransformError{
			Reason: fmt.Sprintf("rotation needs 4 components (w,x,y,z), got %d", len(rotation)),
		}
	}
	if len(translation) != 3 {
		return Transform{}, &InvalidTransformError{
			Reason: fmt.Sprintf("position needs 3 components, got %d", len(translation)),
		}
	}
	return New(
		[4]float64{rotation[0], rotation[1], rotation[2], rotation[3]},
		[3]float64{translation[0], translation[1], translation[2]},
	)
}

// Apply maps a point in the transform's local frame into its parent frame.
func (t Transform) Apply(p r3.Vec) r3.Vec {
	return r3.Add(r3.Rotation(t.Rotation).Rotate(p), t.Translation)
}

// Compose chains child onto parent: applying the result to a point in the
// child's local frame yields the point in the parent's ultimate frame.
// Composition is associative.
func Compose(parent, child Transform) Transform {
	return Transform{
		Rotation:    quat.Mul(parent.Rotation, child.Rotation),
		Translation: r3.Add(r3.Rotation(parent.Rotation).Rotate(child.Translation), parent.Translation),
	}
}

// Quaternion returns the rotation decomposed scalar-first (w,x,y,z).
func (t Transform) Quaternion() [4]float64 {
	return [4]float64{t.Rotation.Real, t.Rotation.Imag, t.Rotation.Jmag, t.Rotation.Kmag}
}

// Position returns the translation components.
func (t Transform) Position() [3]float64 {
	return [3]float64{t.Translation.X, t.Translation.Y, t.Translation.Z}
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
