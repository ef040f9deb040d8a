package optional

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrAbsentValue is returned by the strict factory when the supplied value is
// absent or rejected by the active has-value conditions.
var ErrAbsentValue = errors.New("absent value supplied")

// ErrNilPredicate is returned when a nil has-value condition is registered.
var ErrNilPredicate = errors.New("nil predicate supplied")

// ErrRegistrySealed is returned when a condition is registered on a sealed registry.
var ErrRegistrySealed = errors.New("registry is sealed against further conditions")

// PredicateEvaluationError reports that a registered has-value condition
// panicked while being evaluated against a value.
//
// Conditions must be pure and total over their declared scope; a failing
// condition is a contract violation and is never swallowed. The error
// surfaces as a return value from Of and Check, and as a panic payload from
// the bool-returning conveniences (HasValue, OrElse, ...).
type PredicateEvaluationError struct {
	Scope     reflect.Type // the type the condition was registered for
	ValueType reflect.Type // dynamic type of the evaluated value, nil for untyped nil
	Cause     any          // the recovered panic payload
}

// Error describes the failed evaluation including scope and value type.
func (e *PredicateEvaluationError) Error() string {
	return fmt.Sprintf("has-value condition for %v failed evaluating %v: %v", e.Scope, e.ValueType, e.Cause)
}

// Unwrap exposes the cause when the condition panicked with an error.
func (e *PredicateEvaluationError) Unwrap() error {
	if err, ok := e.Cause.(error); ok {
		return err
	}

	return nil
}
