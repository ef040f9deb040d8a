package optional

import (
	"reflect"
)

var anyType = reflect.TypeFor[any]()

// checkerFor returns the memoized presence checker for the given static type,
// building it from the currently registered conditions on first use.
func (r *Registry) checkerFor(typ reflect.Type) checkerFunc {
	r.mu.RLock()
	chk, found := r.checkers[typ]
	r.mu.RUnlock()

	if found {
		return chk
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Another goroutine may have built it while we waited for the lock.
	if chk, found = r.checkers[typ]; found {
		return chk
	}

	chk = r.buildChecker(typ)
	r.checkers[typ] = chk

	return chk
}

// buildChecker derives the presence checker for one concrete type.
//
// The default checker is the plain not-absent check. When conditions apply,
// presence becomes "not absent AND every applicable condition holds",
// evaluated as a short-circuiting conjunction in registration order.
//
// The `any` specialization is special twice over: it hosts every registered
// condition (each guarded by its own dynamic-type check), and an absent value
// is still offered to the conditions registered for `any` itself, so wildcard
// filters can reclassify a nil. With no wildcard conditions a nil stays absent.
//
// Must be called with the write lock held.
func (r *Registry) buildChecker(typ reflect.Type) checkerFunc {
	wildcardHost := typ == anyType

	var applicable []condition
	var wildcards []condition

	for _, c := range r.conditions {
		switch {
		case wildcardHost:
			applicable = append(applicable, c)
			if c.scope == anyType {
				wildcards = append(wildcards, c)
			}

		case typ == c.scope || typ.AssignableTo(c.scope):
			applicable = append(applicable, c)
		}
	}

	if len(applicable) == 0 {
		return notAbsentChecker
	}

	if wildcardHost {
		return func(value any) (bool, error) {
			if IsAbsent(value) {
				if len(wildcards) == 0 {
					return false, nil
				}

				return evalConjunction(wildcards, value)
			}

			return evalConjunction(applicable, value)
		}
	}

	return func(value any) (bool, error) {
		if IsAbsent(value) {
			return false, nil
		}

		return evalConjunction(applicable, value)
	}
}

func notAbsentChecker(value any) (bool, error) {
	return !IsAbsent(value), nil
}

// evalConjunction short-circuits: the first rejecting or failing condition decides.
func evalConjunction(conditions []condition, value any) (bool, error) {
	for _, c := range conditions {
		holds, err := c.eval(value)
		if err != nil {
			return false, err
		}

		if !holds {
			return false, nil
		}
	}

	return true, nil
}
