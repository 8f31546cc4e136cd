package value

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStringPrecedence(t *testing.T) {
	cases := []struct {
		in   string
		want Value
	}{
		{"true", Bool(true)},
		{"false", Bool(false)},
		{"42", Int(42)},
		{"-7", Int(-7)},
		{"hello", String("hello")},
		{"a::1::true", Array(String("a"), Int(1), Bool(true))},
	}
	for _, c := range cases {
		got, err := ParseString(c.in)
		require.NoError(t, err, "ParseString(%q)", c.in)
		assert.True(t, Equal(got, c.want), "ParseString(%q) = %v, want %v", c.in, got, c.want)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	values := []Value{
		Bool(true),
		Int(123),
		Float(1.5),
		String("hi"),
		Array(Int(1), Bool(false), Array(String("nested"))),
	}
	for _, v := range values {
		b, err := json.Marshal(v)
		require.NoError(t, err)

		var got Value
		require.NoError(t, json.Unmarshal(b, &got))
		assert.True(t, Equal(v, got), "round trip %v -> %s -> %v", v, b, got)
	}
}

func TestJSONIntegerVsFloat(t *testing.T) {
	var v Value
	require.NoError(t, json.Unmarshal([]byte("5"), &v))
	assert.Equal(t, KindInteger, v.Kind())

	require.NoError(t, json.Unmarshal([]byte("5.5"), &v))
	assert.Equal(t, KindFloat, v.Kind())
}

func TestEqualStructural(t *testing.T) {
	a := Array(Int(1), String("x"))
	b := Array(Int(1), String("x"))
	c := Array(Int(1), String("y"))
	assert.True(t, Equal(a, b), "expected equal arrays to be equal")
	assert.False(t, Equal(a, c), "expected differing arrays to be unequal")
}
