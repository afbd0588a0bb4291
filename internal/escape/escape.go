// Package escape renders variable names, values and docs into the
// properties-style text used by dumps.
//
// The output is reversible by any parser that understands the usual
// "key=value" line format with '#' comments, backslash-escaped separators
// and \uXXXX escapes.
package escape

import (
	"fmt"
	"reflect"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// Null is the rendering of a nil value.
const Null = "null"

const hexDigits = "0123456789abcdef"

// Name escapes a variable name for the key side of a dump line.
func Name(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i, r := range s {
		switch {
		case r == ' ':
			b.WriteString(`\ `)
		case i == 0 && (r == '#' || r == '!'):
			b.WriteByte('\\')
			b.WriteRune(r)
		default:
			writeRune(&b, r, true)
		}
	}
	return b.String()
}

// Value escapes a rendered value for the value side of a dump line.
func Value(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i, r := range s {
		if i == 0 && r == ' ' {
			b.WriteString(`\ `)
			continue
		}
		writeRune(&b, r, true)
	}
	return b.String()
}

// Comment escapes doc text for a '#' line. Separators are left alone since
// comment lines are never split into key and value.
func Comment(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		writeRune(&b, r, false)
	}
	return b.String()
}

// Text is the natural text form of a value. Nil values and nil pointers,
// maps, slices, funcs and channels render as "null".
func Text(v any) string {
	if IsNil(v) {
		return Null
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// IsNil reports whether v is nil or a typed nil of a nillable kind.
func IsNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

func writeRune(b *strings.Builder, r rune, separators bool) {
	switch {
	case r == '\\':
		b.WriteString(`\\`)
	case separators && (r == ':' || r == '='):
		b.WriteByte('\\')
		b.WriteRune(r)
	case r >= 0x20 && r <= 0x7e:
		b.WriteRune(r)
	case r > 0xffff:
		// Surrogate pairs, as Java's Properties reads them. Parsers that
		// decode each \uXXXX on its own do not rebuild these code points.
		r1, r2 := utf16.EncodeRune(r)
		writeUnit(b, r1)
		writeUnit(b, r2)
	default:
		writeUnit(b, r)
	}
}

func writeUnit(b *strings.Builder, r rune) {
	b.WriteString(`\u`)
	b.WriteByte(hexDigits[(r>>12)&0xf])
	b.WriteByte(hexDigits[(r>>8)&0xf])
	b.WriteByte(hexDigits[(r>>4)&0xf])
	b.WriteByte(hexDigits[r&0xf])
}

// Unescape reverses Name, Value and Comment. Any backslash followed by a
// character other than 'u' yields that character; \uXXXX sequences are
// decoded, joining surrogate pairs.
func Unescape(s string) (string, error) {
	if !strings.ContainsRune(s, '\\') {
		return s, nil
	}
	var b strings.Builder
	b.Grow(len(s))
	var high rune
	for i := 0; i < len(s); {
		if s[i] != '\\' {
			r, size := utf8.DecodeRuneInString(s[i:])
			if high != 0 {
				b.WriteRune(utf8.RuneError)
				high = 0
			}
			b.WriteRune(r)
			i += size
			continue
		}
		if i+1 >= len(s) {
			return "", fmt.Errorf("dangling backslash at offset %d", i)
		}
		if s[i+1] != 'u' {
			r, size := utf8.DecodeRuneInString(s[i+1:])
			b.WriteRune(r)
			i += 1 + size
			continue
		}
		if i+6 > len(s) {
			return "", fmt.Errorf("truncated unicode escape at offset %d", i)
		}
		var unit rune
		for _, c := range s[i+2 : i+6] {
			d := strings.IndexRune(hexDigits, toLower(c))
			if d < 0 {
				return "", fmt.Errorf("invalid unicode escape %q at offset %d", s[i:i+6], i)
			}
			unit = unit<<4 | rune(d)
		}
		i += 6
		switch {
		case utf16.IsSurrogate(unit) && high == 0 && unit < 0xdc00:
			high = unit
		case utf16.IsSurrogate(unit) && high != 0:
			b.WriteRune(utf16.DecodeRune(high, unit))
			high = 0
		default:
			if high != 0 {
				b.WriteRune(utf8.RuneError)
				high = 0
			}
			b.WriteRune(unit)
		}
	}
	if high != 0 {
		b.WriteRune(utf8.RuneError)
	}
	return b.String(), nil
}

func toLower(r rune) rune {
	if r >= 'A' && r <= 'F' {
		return r + ('a' - 'A')
	}
	return r
}
