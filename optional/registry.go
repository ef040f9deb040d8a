package optional

import (
	"reflect"
	"sync"
)

// Predicate is a caller-supplied has-value condition for values of type T.
// It further restricts what counts as "present" beyond the plain absent check.
//
// Predicates must be pure and total over their declared type: no I/O, no
// hidden state, no panics. A panicking predicate surfaces as a
// *PredicateEvaluationError on the next presence query.
type Predicate[T any] func(value T) bool

// condition is a type-erased, scope-tagged predicate as stored in a Registry.
type condition struct {
	scope reflect.Type
	eval  func(value any) (bool, error)
}

// checkerFunc decides presence for one concrete type. Built lazily, memoized.
type checkerFunc func(value any) (bool, error)

// Registry is a type-scoped store of has-value conditions together with the
// per-type presence checkers derived from them.
//
// Registration is additive only: conditions accumulate per type and are
// evaluated as a conjunction, there is no removal. A condition registered for
// an interface type applies to every type assignable to it; a condition
// registered for `any` applies to all types.
//
// The registry is safe for concurrent use. Registering a condition
// invalidates every memoized checker, so instances evaluated afterwards see
// the new condition set. Registration is still meant to happen during
// application setup; call Seal once configuration is complete to reject
// late registrations.
type Registry struct {
	mu         sync.RWMutex
	sealed     bool
	conditions []condition
	checkers   map[reflect.Type]checkerFunc
}

// NewRegistry creates an empty condition registry.
//
// Most callers use the process-wide default registry through
// ApplyHasValueCondition and the Optional methods; an explicit Registry is
// for hosts that prefer injecting configuration over ambient state.
func NewRegistry() *Registry {
	return &Registry{checkers: make(map[reflect.Type]checkerFunc)}
}

var defaultRegistry = NewRegistry()

// DefaultRegistry returns the process-wide registry consulted by the
// Optional methods and the package-level registration functions.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// ApplyHasValueCondition registers a has-value condition for T, and for every
// type assignable to T, on the default registry.
func ApplyHasValueCondition[T any](predicate Predicate[T]) error {
	return RegisterCondition(defaultRegistry, predicate)
}

// Seal freezes the default registry; see Registry.Seal.
func Seal() {
	defaultRegistry.Seal()
}

// RegisterCondition registers a has-value condition for T, and for every type
// assignable to T, on the given registry.
func RegisterCondition[T any](r *Registry, predicate Predicate[T]) error {
	if predicate == nil {
		return ErrNilPredicate
	}

	scope := reflect.TypeFor[T]()

	return r.register(condition{scope: scope, eval: guardedEval(scope, predicate)})
}

// guardedEval adapts a typed predicate to a type-erased condition.
//
// A value whose dynamic type does not satisfy the scope passes the condition
// untouched, so a condition scoped to a concrete type never empties unrelated
// instances held via a wider specialization. Panics are recovered and
// converted into a *PredicateEvaluationError.
func guardedEval[T any](scope reflect.Type, predicate Predicate[T]) func(value any) (bool, error) {
	return func(value any) (result bool, err error) {
		defer func() {
			if cause := recover(); cause != nil {
				result = false
				err = &PredicateEvaluationError{Scope: scope, ValueType: reflect.TypeOf(value), Cause: cause}
			}
		}()

		typed, ok := value.(T)
		if !ok {
			// A nil interface never satisfies an assertion, but a condition
			// scoped to `any` is still meant to see it (as a nil T). Any
			// other mismatch passes the condition untouched.
			if value != nil || scope != anyType {
				return true, nil
			}
		}

		return predicate(typed), nil
	}
}

func (r *Registry) register(c condition) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed {
		return ErrRegistrySealed
	}

	r.conditions = append(r.conditions, c)

	// Every memoized checker may be stale now.
	clear(r.checkers)

	return nil
}

// Seal freezes the registry: any later registration returns ErrRegistrySealed.
//
// Sealing removes the race between registration and concurrent presence
// queries entirely. Call it once application setup is complete. Sealing is
// irreversible for the life of the process.
func (r *Registry) Seal() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sealed = true
}

// Sealed reports whether the registry has been sealed.
func (r *Registry) Sealed() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sealed
}
