package hcl

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestCtyToNative(t *testing.T) {
	testCases := []struct {
		name string
		in   cty.Value
		want any
	}{
		{name: "null", in: cty.NullVal(cty.String), want: nil},
		{name: "unknown", in: cty.UnknownVal(cty.String), want: nil},
		{name: "string", in: cty.StringVal("x"), want: "x"},
		{name: "whole number", in: cty.NumberIntVal(-4), want: int64(-4)},
		{name: "fraction", in: cty.NumberFloatVal(1.5), want: 1.5},
		{name: "bool", in: cty.True, want: true},
		{name: "set", in: cty.SetVal([]cty.Value{cty.StringVal("a")}), want: []any{"a"}},
		{
			name: "nested object",
			in: cty.ObjectVal(map[string]cty.Value{
				"list": cty.ListVal([]cty.Value{cty.NumberIntVal(1)}),
			}),
			want: map[string]any{"list": []any{int64(1)}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ctyToNative(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCtyToNative_Unsupported(t *testing.T) {
	thing := cty.Capsule("thing", reflect.TypeFor[struct{}]())
	_, err := ctyToNative(cty.CapsuleVal(thing, &struct{}{}))
	assert.ErrorContains(t, err, "unsupported value type")
}
