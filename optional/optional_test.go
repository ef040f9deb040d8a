package optional_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/presencekit/optional-go/optional"
)

func Test_Of_WrapsPresentValue(t *testing.T) {
	value := "lent-to-reader"

	opt, err := optional.Of(&value)

	require.NoError(t, err)
	assert.True(t, opt.HasValue())
	assert.Equal(t, &value, opt.OrElse(nil))
}

func Test_Of_FailsOnAbsentValue(t *testing.T) {
	_, err := optional.Of[*string](nil)

	assert.ErrorIs(t, err, optional.ErrAbsentValue)
}

func Test_Of_FailsOnNilMap(t *testing.T) {
	var labels map[string]string

	_, err := optional.Of(labels)

	assert.ErrorIs(t, err, optional.ErrAbsentValue)
}

func Test_OfNullable_AbsentYieldsCanonicalEmpty(t *testing.T) {
	opt := optional.OfNullable[*string](nil)

	assert.False(t, opt.HasValue())
	assert.True(t, opt.Equal(optional.None[*string]()))
}

func Test_OfNullable_PresentValueRoundTrips(t *testing.T) {
	value := "in-circulation"

	opt := optional.OfNullable(&value)

	require.True(t, opt.HasValue())
	assert.Equal(t, &value, opt.OrZero())
}

func Test_None_HasNoValue(t *testing.T) {
	opt := optional.None[[]int]()

	assert.False(t, opt.HasValue())
	assert.Nil(t, opt.OrZero())
}

func Test_OrElse_ReturnsFallbackWhenAbsent(t *testing.T) {
	fallback := "unknown"

	got := optional.None[*string]().OrElse(&fallback)

	assert.Equal(t, &fallback, got)
}

func Test_OrElseGet_InvokesSupplierOnlyWhenAbsent(t *testing.T) {
	value := "present"
	supplierCalled := false
	supply := func() *string {
		supplierCalled = true
		return nil
	}

	got := optional.OfNullable(&value).OrElseGet(supply)

	assert.Equal(t, &value, got)
	assert.False(t, supplierCalled, "supplier must not be invoked when a value is present")

	got = optional.None[*string]().OrElseGet(supply)

	assert.Nil(t, got)
	assert.True(t, supplierCalled)
}

func Test_OrZero_ReturnsAbsentMarkerWhenAbsent(t *testing.T) {
	assert.Nil(t, optional.None[*string]().OrZero())
	assert.Nil(t, optional.OfNullable[map[string]int](nil).OrZero())
}

func Test_Value_UncheckedExtractionNeverFails(t *testing.T) {
	// The deliberate escape valve: extracting from an empty Optional yields
	// the absent marker instead of failing.
	assert.Nil(t, optional.None[*string]().Value())

	value := "raw"
	assert.Equal(t, &value, optional.OfNullable(&value).Value())
}

func Test_Equal_IsAnEquivalenceRelation(t *testing.T) {
	left := "same"
	right := "same"
	other := "different"

	a := optional.OfNullable(&left)
	b := optional.OfNullable(&right)
	c := optional.OfNullable(&left)
	d := optional.OfNullable(&other)

	assert.True(t, a.Equal(a), "reflexive")
	assert.True(t, a.Equal(b) && b.Equal(a), "symmetric, value-based")
	assert.True(t, a.Equal(b) && b.Equal(c) && a.Equal(c), "transitive")
	assert.False(t, a.Equal(d))
}

func Test_Equal_AbsentEqualsAbsent(t *testing.T) {
	assert.True(t, optional.None[*string]().Equal(optional.OfNullable[*string](nil)))
}

func Test_String_RendersNothingSentinelForAbsentValue(t *testing.T) {
	assert.Equal(t, optional.Nothing, optional.None[*string]().String())
}

func Test_String_RendersTheValueItself(t *testing.T) {
	value := "x"

	opt := optional.OfNullable(&value)

	assert.Contains(t, opt.String(), "x")
}

func Test_IsAbsent(t *testing.T) {
	var nilPointer *string
	var nilSlice []byte
	var nilMap map[string]int
	present := "present"

	tests := []struct {
		name   string
		value  any
		absent bool
	}{
		{name: "untyped_nil", value: nil, absent: true},
		{name: "typed_nil_pointer", value: nilPointer, absent: true},
		{name: "nil_slice", value: nilSlice, absent: true},
		{name: "nil_map", value: nilMap, absent: true},
		{name: "pointer_to_value", value: &present, absent: false},
		{name: "non_nilable_string", value: "", absent: false},
		{name: "non_nilable_int", value: 0, absent: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.absent, optional.IsAbsent(tt.value))
		})
	}
}
