// Package optional provides a generic value-presence wrapper with
// customizable, per-type presence semantics.
//
// An Optional wraps a value that may or may not be meaningfully present.
// Beyond the plain nil check, callers can narrow what "present" means for a
// type by registering has-value conditions, which are evaluated as a
// short-circuiting conjunction on every presence query.
//
// Key types:
//   - Optional: the value container with query, extraction, equality,
//     rendering and JSON round-trip operations
//   - Registry: a type-scoped store of has-value conditions with a lazily
//     built, memoized presence checker per concrete type
//   - Predicate: a caller-supplied emptiness condition
//
// Common usage pattern:
//
//	// During application setup, narrow presence for a type.
//	_ = optional.ApplyHasValueCondition(func(email string) bool {
//		return email != ""
//	})
//	optional.Seal()
//
//	opt := optional.OfNullable("")
//	opt.HasValue() // false: rejected by the registered condition
//
//	strict, err := optional.Of(customerEmail)
//	if err != nil {
//		// handle absent input
//	}
//	_ = strict.OrElse("unknown@example.com")
//
// Conditions registered for an interface type apply to every type that
// implements it; conditions registered for `any` apply to all types.
// Registration is meant to be completed before the first presence query;
// registries can be sealed to enforce that.
package optional
