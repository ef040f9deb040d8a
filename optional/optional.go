package optional

import (
	"fmt"
	"reflect"
)

// Nothing is the sentinel rendered by String when the raw value is absent.
const Nothing = "Nothing"

// Optional wraps a value of type T that may or may not be meaningfully present.
//
// The wrapper stores nothing but the raw value: presence is derived on every
// query from the absent check plus the has-value conditions currently
// registered for T, never cached on the instance. An Optional is immutable
// after construction and safe to copy.
//
// T should be a nullable-capable type (pointer, map, slice, interface, ...)
// for the absent marker to exist; for non-nilable types the plain absent
// check never rejects and only registered conditions can.
type Optional[T any] struct {
	value T
}

// Of wraps a value, failing with ErrAbsentValue when the value is absent or
// rejected by the active has-value conditions for T. On successful return
// HasValue is guaranteed true (barring concurrent registration).
//
// A failing condition evaluation is returned as a *PredicateEvaluationError.
func Of[T any](value T) (Optional[T], error) {
	present, err := presenceOf(defaultRegistry, value)
	if err != nil {
		return Optional[T]{}, err
	}

	if !present {
		return Optional[T]{}, ErrAbsentValue
	}

	return Optional[T]{value: value}, nil
}

// OfNullable wraps a value, never failing on absent input: a value rejected
// by the presence checker for T yields the canonical empty instance instead.
//
// A failing condition evaluation panics with a *PredicateEvaluationError,
// matching the propagation behavior of HasValue.
func OfNullable[T any](value T) Optional[T] {
	present, err := presenceOf(defaultRegistry, value)
	if err != nil {
		panic(err)
	}

	if !present {
		return Optional[T]{}
	}

	return Optional[T]{value: value}
}

// None returns the canonical empty Optional for T.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// presenceOf evaluates the memoized presence checker for T against a value.
func presenceOf[T any](r *Registry, value T) (bool, error) {
	checker := r.checkerFor(reflect.TypeFor[T]())

	return checker(value)
}

// HasValue reports whether the wrapped value counts as present under the
// conditions currently registered for T.
//
// It re-evaluates the (memoized) presence checker on every call; conditions
// registered after construction therefore affect existing instances. A
// failing condition evaluation panics with a *PredicateEvaluationError; use
// Check when conditions may fail.
func (o Optional[T]) HasValue() bool {
	present, err := o.Check()
	if err != nil {
		panic(err)
	}

	return present
}

// Check reports presence like HasValue, surfacing a failing condition
// evaluation as a *PredicateEvaluationError instead of panicking.
func (o Optional[T]) Check() (bool, error) {
	return presenceOf(defaultRegistry, o.value)
}

// HasValueIn reports presence of the wrapped value under an explicit registry
// instead of the process-wide default.
func HasValueIn[T any](r *Registry, o Optional[T]) (bool, error) {
	return presenceOf(r, o.value)
}

// OrElse returns the wrapped value if present, else the fallback.
func (o Optional[T]) OrElse(fallback T) T {
	if o.HasValue() {
		return o.value
	}

	return fallback
}

// OrElseGet returns the wrapped value if present, else the supplier's result.
// The supplier is invoked lazily, only when the value is not present.
func (o Optional[T]) OrElseGet(supply func() T) T {
	if o.HasValue() {
		return o.value
	}

	return supply()
}

// OrZero returns the wrapped value if present, else the zero value of T
// (nil for nullable-capable types).
func (o Optional[T]) OrZero() T {
	if o.HasValue() {
		return o.value
	}

	var zero T

	return zero
}

// Value returns the raw stored value without any presence check, even when it
// is absent or rejected by the active conditions. It never fails: this is the
// deliberate escape valve for callers who accept the absent marker. Callers
// needing strictness use OrElse or an explicit HasValue check instead.
func (o Optional[T]) Value() T {
	return o.value
}

// Equal reports whether two Optionals of the same T wrap equal values under
// the value's own (deep) equality. Absent equals absent.
func (o Optional[T]) Equal(other Optional[T]) bool {
	return reflect.DeepEqual(o.value, other.value)
}

// String renders the wrapped value's own string form, or the Nothing sentinel
// when the raw value is absent. Rendering follows the raw value, not
// HasValue: a value rejected by a condition still renders itself.
func (o Optional[T]) String() string {
	if IsAbsent(o.value) {
		return Nothing
	}

	return fmt.Sprintf("%v", o.value)
}

// IsAbsent reports whether a value is the absent marker: a nil interface or a
// nil pointer, map, slice, channel or function. Values of non-nilable kinds
// are never absent.
func IsAbsent(value any) bool {
	if value == nil {
		return true
	}

	rv := reflect.ValueOf(value)

	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return rv.IsNil()

	default:
		return false
	}
}
