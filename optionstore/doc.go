// Package optionstore provides the persistence contract for optional values.
//
// An optional value is persisted as exactly one field: the raw JSON payload,
// or the stored absent marker (a nil payload / SQL NULL). Presence is never
// persisted — it is re-derived from the live has-value condition set on the
// next query after loading.
//
// This package defines the storage-agnostic pieces shared by store
// implementations:
//   - StorableValue: the scalar DTO stores accept and return
//   - ValueStore: the store contract (Save, Load, Remove)
//   - the generic bridge between optional.Optional and StorableValue
//   - observability interfaces (Logger, MetricsCollector, TracingCollector)
//     implementations can be configured with, dependency-free by design
//
// Common usage pattern:
//
//	store, err := postgresengine.NewStoreFromPGXPool(pool)
//	if err != nil {
//		// handle error
//	}
//
//	err = optionstore.SaveOptional(ctx, store, "reply-to", replyTo)
//
//	replyTo, err = optionstore.LoadOptional[*mail.Address](ctx, store, "reply-to")
//	if errors.Is(err, optionstore.ErrValueNotFound) {
//		// key was never saved; distinct from a stored absent value
//	}
package optionstore
