package optionstore

import (
	"context"
	"errors"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/presencekit/optional-go/optional"
)

var ErrEncodingPayloadFailed = errors.New("encoding value payload failed")
var ErrDecodingPayloadFailed = errors.New("decoding value payload failed")

var codec = jsoniter.ConfigCompatibleWithStandardLibrary

// ValueStore is the contract store implementations fulfill.
//
// Load returns ErrValueNotFound when no value was ever saved for the key,
// which is distinct from a saved absent value (a StorableValue carrying the
// stored absent marker).
type ValueStore interface {
	Save(ctx context.Context, value StorableValue) error
	Load(ctx context.Context, key string) (StorableValue, error)
	Remove(ctx context.Context, key string) error
}

// StorableValueFrom converts an Optional into its storable form.
//
// The conversion follows the raw wrapped value, not HasValue: an absent raw
// value becomes the stored absent marker, anything else is serialized as-is,
// even when the active conditions currently reject it. Presence is re-derived
// on the next query after loading.
func StorableValueFrom[T any](key string, opt optional.Optional[T], updatedAt time.Time) (StorableValue, error) {
	raw := opt.Value()

	if optional.IsAbsent(raw) {
		return BuildAbsentStorableValue(key, updatedAt)
	}

	payload, marshalErr := codec.Marshal(raw)
	if marshalErr != nil {
		return StorableValue{}, errors.Join(ErrEncodingPayloadFailed, marshalErr)
	}

	return BuildStorableValue(key, payload, updatedAt)
}

// OptionalFrom reconstructs an Optional from its storable form by
// round-tripping the single payload field. The stored absent marker yields
// the canonical empty instance.
func OptionalFrom[T any](value StorableValue) (optional.Optional[T], error) {
	if value.Absent() {
		return optional.None[T](), nil
	}

	var opt optional.Optional[T]

	if unmarshalErr := codec.Unmarshal(value.PayloadJSON, &opt); unmarshalErr != nil {
		return optional.None[T](), errors.Join(ErrDecodingPayloadFailed, unmarshalErr)
	}

	return opt, nil
}

// SaveOptional persists an Optional under the given key. The store fills in
// the update timestamp.
func SaveOptional[T any](ctx context.Context, store ValueStore, key string, opt optional.Optional[T]) error {
	value, buildErr := StorableValueFrom(key, opt, time.Time{})
	if buildErr != nil {
		return buildErr
	}

	return store.Save(ctx, value)
}

// LoadOptional loads the Optional persisted under the given key.
// Returns ErrValueNotFound when the key was never saved.
func LoadOptional[T any](ctx context.Context, store ValueStore, key string) (optional.Optional[T], error) {
	value, loadErr := store.Load(ctx, key)
	if loadErr != nil {
		return optional.None[T](), loadErr
	}

	return OptionalFrom[T](value)
}
