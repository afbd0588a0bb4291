package escape

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// u builds a \uXXXX escape sequence.
func u(hex string) string {
	return "\\" + "u" + hex
}

func TestName(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "plain", input: "static1field", expected: "static1field"},
		{name: "separators", input: "foo:bar=hi", expected: `foo\:bar\=hi`},
		{name: "non-ascii", input: "BulgariaŴhatsUp", expected: "Bulgaria" + u("0174") + "hatsUp"},
		{name: "space", input: "my var", expected: `my\ var`},
		{name: "leading comment marker", input: "#tag", expected: `\#tag`},
		{name: "inner hash kept", input: "something#else", expected: "something#else"},
		{name: "backslash", input: `a\b`, expected: `a\\b`},
		{name: "control", input: "a\tb", expected: "a" + u("0009") + "b"},
		{name: "astral plane", input: "x😀", expected: "x" + u("d83d") + u("de00")},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Name(tc.input))
		})
	}
}

func TestValue(t *testing.T) {
	assert.Equal(t, `x\:\=y`, Value("x:=y"))
	assert.Equal(t, "Say "+u("0174")+"hat?", Value("Say Ŵhat?"))
	assert.Equal(t, `\ padded value`, Value(" padded value"))
	assert.Equal(t, "five hundred twenty-four", Value("five hundred twenty-four"))
}

func TestComment(t *testing.T) {
	assert.Equal(t, ":::=test=:::", Comment(":::=test=:::"))
	assert.Equal(t, strings.Repeat(u("0174"), 4), Comment("ŴŴŴŴ"))
	assert.Equal(t, "line"+u("000a")+"next", Comment("line\nnext"))
}

func TestText(t *testing.T) {
	var nilMap map[string]int
	var nilPtr *int

	assert.Equal(t, "null", Text(nil))
	assert.Equal(t, "null", Text(nilMap))
	assert.Equal(t, "null", Text(nilPtr))
	assert.Equal(t, "42", Text(42))
	assert.Equal(t, "hi", Text("hi"))
	assert.Equal(t, "map[1:one 2:two]", Text(map[int]string{2: "two", 1: "one"}))
}

func TestUnescape_RoundTrip(t *testing.T) {
	inputs := []string{
		"plain",
		"foo:bar=hi",
		"BulgariaŴhatsUp",
		" leading space",
		`back\slash`,
		"tab\there",
		"emoji 😀 inside",
		"#hash",
	}
	for _, in := range inputs {
		for _, escaped := range []string{Name(in), Value(in), Comment(in)} {
			out, err := Unescape(escaped)
			require.NoError(t, err, "escaped form %q", escaped)
			assert.Equal(t, in, out)
		}
	}
}

func TestUnescape_Errors(t *testing.T) {
	_, err := Unescape(`abc\`)
	require.Error(t, err)

	_, err = Unescape(`\u12`)
	require.Error(t, err)

	_, err = Unescape(`\u12zz`)
	require.Error(t, err)
}

func TestUnescape_UppercaseHex(t *testing.T) {
	out, err := Unescape(u("0174"))
	require.NoError(t, err)
	assert.Equal(t, "Ŵ", out)

	out, err = Unescape(u("00E9"))
	require.NoError(t, err)
	assert.Equal(t, "é", out)
}
