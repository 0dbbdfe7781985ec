package tsv

import (
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"
)

func valueType(v interface{}) (reflect.Type, error) {
	val := reflect.ValueOf(v)
	if !val.IsValid() {
		return nil, &UnsupportedTypeError{}
	}

loop:
	for {
		switch val.Kind() {
		case reflect.Ptr, reflect.Interface:
			el := val.Elem()
			if !el.IsValid() {
				break loop
			}
			val = el
		default:
			break loop
		}
	}

	typ := walkType(val.Type())
	if typ.Kind() != reflect.Struct {
		return nil, &UnsupportedTypeError{Type: typ}
	}
	return typ, nil
}

// walkType strips pointer levels from typ.
func walkType(typ reflect.Type) reflect.Type {
	for typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	return typ
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] > unicode.MaxASCII {
			return false
		}
	}
	return true
}

// splitAny slices s into all substrings separated by any rune in seps.
// Adjacent separators yield empty fields, so the result always has one
// more element than the number of separators found.
func splitAny(s, seps string) []string {
	if len(seps) == 1 {
		return strings.Split(s, seps)
	}
	n := 1
	for _, r := range s {
		if strings.ContainsRune(seps, r) {
			n++
		}
	}
	out := make([]string, 0, n)
	for {
		i := strings.IndexAny(s, seps)
		if i < 0 {
			break
		}
		out = append(out, s[:i])
		_, size := utf8.DecodeRuneInString(s[i:])
		s = s[i+size:]
	}
	return append(out, s)
}
