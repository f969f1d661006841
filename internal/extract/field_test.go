package extract

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestField_Unwrap(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		want  string
		valid bool
	}{
		{"value", `{"value": "ACME"}`, "ACME", true},
		{"number as text", `{"value": 4711}`, "4711", true},
		{"null value", `{"value": null}`, "default", false},
		{"no value key", `{"confidence": 0.9}`, "default", false},
		{"not a wrapper", `"ACME"`, "default", false},
		{"object value", `{"value": {"x": 1}}`, "default", false},
		{"empty string stays set", `{"value": ""}`, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f Field[string]
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &f))
			assert.Equal(t, tt.valid, f.Valid())
			assert.Equal(t, tt.want, Unwrap(f, "default"))
		})
	}
}

func TestField_Numbers(t *testing.T) {
	tests := []struct {
		raw  string
		want string
		ok   bool
	}{
		{`{"value": -150.00}`, "-150", true},
		{`{"value": "19.5"}`, "19.5", true},
		{`{"value": " "}`, "", false},
		{`{"value": "n/a"}`, "", false},
		{`{"value": true}`, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			var f Field[decimal.Decimal]
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &f))
			v, ok := f.Get()
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, v.String())
			}
		})
	}

	var n Field[int]
	require.NoError(t, json.Unmarshal([]byte(`{"value": "30"}`), &n))
	assert.Equal(t, 30, Unwrap(n, 0))

	var b Field[bool]
	require.NoError(t, json.Unmarshal([]byte(`{"value": "true"}`), &b))
	assert.True(t, Unwrap(b, false))
}

func TestField_Integers(t *testing.T) {
	tests := []struct {
		raw  string
		want int
		ok   bool
	}{
		{`{"value": 30}`, 30, true},
		{`{"value": "30"}`, 30, true},
		{`{"value": 30.0}`, 30, true},
		{`{"value": -7}`, -7, true},
		{`{"value": 2147483647}`, 2147483647, true},
		{`{"value": 2147483648}`, 0, false},
		{`{"value": 1e19}`, 0, false},
		{`{"value": 9223372036854775808}`, 0, false},
		{`{"value": -9223372036854775809}`, 0, false},
		{`{"value": 1.5}`, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			var f Field[int]
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &f))
			v, ok := f.Get()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, v)
		})
	}
}

func TestField_MissingKeyIsUnset(t *testing.T) {
	var vb VendorBlock
	require.NoError(t, json.Unmarshal([]byte(`{"vendorName": {"value": "ACME"}}`), &vb))

	assert.Equal(t, "ACME", Unwrap(vb.VendorName, ""))
	assert.False(t, vb.VendorTaxID.Valid())
	assert.Nil(t, Ptr(vb.VendorTaxID))
	assert.Equal(t, "ACME", *Ptr(vb.VendorName))
}

func TestField_MarshalJSON(t *testing.T) {
	out, err := json.Marshal(struct {
		A Field[string] `json:"a"`
		B Field[int]    `json:"b"`
	}{A: Some("x")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a": {"value": "x"}, "b": null}`, string(out))
}
