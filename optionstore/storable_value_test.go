package optionstore_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/presencekit/optional-go/optionstore"
)

func Test_BuildStorableValue(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		key         string
		payloadJSON []byte
		expectedErr error
	}{
		{name: "valid_payload", key: "reply-to", payloadJSON: []byte(`{"address":"a@b.c"}`)},
		{name: "nil_payload_is_the_absent_marker", key: "reply-to", payloadJSON: nil},
		{name: "empty_key_rejected", key: "", payloadJSON: []byte(`{}`), expectedErr: optionstore.ErrEmptyValueKey},
		{name: "invalid_json_rejected", key: "reply-to", payloadJSON: []byte(`{broken`), expectedErr: optionstore.ErrInvalidPayloadJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, err := optionstore.BuildStorableValue(tt.key, tt.payloadJSON, now)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.key, value.Key)
			assert.Equal(t, tt.payloadJSON, value.PayloadJSON)
			assert.Equal(t, now, value.UpdatedAt)
			assert.Equal(t, tt.payloadJSON == nil, value.Absent())
		})
	}
}

func Test_BuildAbsentStorableValue(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	value, err := optionstore.BuildAbsentStorableValue("reply-to", now)

	require.NoError(t, err)
	assert.True(t, value.Absent())
	assert.Nil(t, value.PayloadJSON)
}
