package optional

import (
	jsoniter "github.com/json-iterator/go"
)

var codec = jsoniter.ConfigCompatibleWithStandardLibrary

var jsonNull = []byte("null")

// MarshalJSON serializes the Optional as exactly one field: the raw wrapped
// value, or null when it is absent. Presence itself is never serialized; it
// is re-derived from the live condition set on the next query after a
// round trip.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if IsAbsent(o.value) {
		return jsonNull, nil
	}

	return codec.Marshal(o.value)
}

// UnmarshalJSON reconstructs the Optional from the single raw-value field.
// The decoded value is wrapped as-is, without consulting the presence
// checker, so a value that the current conditions reject round-trips intact
// and is rejected again on the next presence query.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	var value T

	if err := codec.Unmarshal(data, &value); err != nil {
		return err
	}

	o.value = value

	return nil
}
