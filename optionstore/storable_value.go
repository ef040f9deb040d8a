package optionstore

import (
	"encoding/json"
	"time"
)

// StorableValue is a DTO (data transfer object) used by value stores to save
// optional values and load them back.
//
// It is built on scalars to be completely agnostic of the value types client
// code wraps in optionals. A nil PayloadJSON is the stored absent marker;
// a non-nil payload carries the raw value as JSON. Presence is not part of
// the DTO — it is derived from the live condition set after loading.
//
// While its properties are exported, it should only be constructed with the
// supplied factory methods:
//   - BuildStorableValue
//   - BuildAbsentStorableValue
type StorableValue struct {
	Key         string
	PayloadJSON []byte
	UpdatedAt   time.Time
}

// BuildStorableValue is a factory method for StorableValue.
//
// It populates the StorableValue with the given scalar input.
// Returns an error if the key is empty or payloadJSON is non-nil invalid JSON.
func BuildStorableValue(key string, payloadJSON []byte, updatedAt time.Time) (StorableValue, error) {
	if key == "" {
		return StorableValue{}, ErrEmptyValueKey
	}

	if payloadJSON != nil && !json.Valid(payloadJSON) {
		return StorableValue{}, ErrInvalidPayloadJSON
	}

	return StorableValue{
		Key:         key,
		PayloadJSON: payloadJSON,
		UpdatedAt:   updatedAt,
	}, nil
}

// BuildAbsentStorableValue is a factory method for StorableValue.
//
// It populates the StorableValue with the stored absent marker (nil payload).
// Returns an error if the key is empty.
func BuildAbsentStorableValue(key string, updatedAt time.Time) (StorableValue, error) {
	return BuildStorableValue(key, nil, updatedAt)
}

// Absent reports whether this StorableValue carries the stored absent marker.
func (sv StorableValue) Absent() bool {
	return sv.PayloadJSON == nil
}
