package tsv

import (
	"encoding"
	"reflect"
	"sync"
	"time"
)

// fieldDescription maps one column to a struct field.
type fieldDescription struct {
	name     string
	baseType reflect.Type
	tag      tag
	index    []int
}

type typeKey struct {
	tag string
	reflect.Type
}

var (
	timeType        = reflect.TypeOf(time.Time{})
	tsvMarshaler    = reflect.TypeOf((*Marshaler)(nil)).Elem()
	tsvUnmarshaler  = reflect.TypeOf((*Unmarshaler)(nil)).Elem()
	textMarshaler   = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()
	textUnmarshaler = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
)

// buildFields lists the columns of k.Type in declaration order. Embedded
// structs without a tag and structs tagged inline are flattened in place.
func buildFields(k typeKey) []fieldDescription {
	return appendFields(nil, k.tag, k.Type, nil, "")
}

func appendFields(out []fieldDescription, tagname string, typ reflect.Type, index []int, prefix string) []fieldDescription {
	for i := 0; i < typ.NumField(); i++ {
		sf := typ.Field(i)
		if sf.PkgPath != "" && !sf.Anonymous {
			// unexported field
			continue
		}

		t := parseTag(tagname, sf)
		if t.ignore {
			continue
		}

		ft := walkType(sf.Type)
		idx := makeIndex(index, i)

		flatten := (sf.Anonymous && t.empty) || t.inline
		if flatten && ft.Kind() == reflect.Struct && !isScalarStruct(ft) {
			out = appendFields(out, tagname, ft, idx, prefix+t.prefix)
			continue
		}
		if sf.PkgPath != "" {
			// ignore embedded unexported non-struct fields.
			continue
		}

		out = append(out, fieldDescription{
			name:     prefix + t.name,
			baseType: sf.Type,
			tag:      t,
			index:    idx,
		})
	}
	return out
}

// isScalarStruct reports whether a struct type is written as one field.
func isScalarStruct(typ reflect.Type) bool {
	if typ == timeType {
		return true
	}
	ptr := reflect.PtrTo(typ)
	return typ.Implements(tsvMarshaler) || ptr.Implements(tsvMarshaler) ||
		typ.Implements(textMarshaler) || ptr.Implements(textMarshaler) ||
		ptr.Implements(tsvUnmarshaler) || ptr.Implements(textUnmarshaler)
}

func makeIndex(index []int, v int) []int {
	out := make([]int, len(index), len(index)+1)
	copy(out, index)
	return append(out, v)
}

var fieldCache = struct {
	mtx sync.RWMutex
	m   map[typeKey][]fieldDescription
}{m: make(map[typeKey][]fieldDescription)}

func cachedFields(k typeKey) []fieldDescription {
	fieldCache.mtx.RLock()
	fields, ok := fieldCache.m[k]
	fieldCache.mtx.RUnlock()

	if ok {
		return fields
	}

	fields = buildFields(k)

	fieldCache.mtx.Lock()
	fieldCache.m[k] = fields
	fieldCache.mtx.Unlock()

	return fields
}
