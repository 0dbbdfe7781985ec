package tsv

import (
	"reflect"
	"strings"
)

const defaultTag = "tsv"

type tag struct {
	name      string
	prefix    string
	empty     bool
	omitEmpty bool
	ignore    bool
	inline    bool
}

// parseTag reads the tsv tag of field. The first element is the column
// name; the rest are options:
//
//	omitempty - write the zero value as an empty field
//	inline    - flatten a struct field, prefixing its column names
func parseTag(tagname string, field reflect.StructField) (t tag) {
	tags := strings.Split(field.Tag.Get(tagname), ",")
	if len(tags) == 1 && tags[0] == "" {
		t.name = field.Name
		t.empty = true
		return
	}

	switch tags[0] {
	case "-":
		t.ignore = true
		return
	case "":
		t.name = field.Name
	default:
		t.name = tags[0]
	}
	for _, opt := range tags[1:] {
		switch strings.TrimSpace(opt) {
		case "omitempty":
			t.omitEmpty = true
		case "inline":
			if walkType(field.Type).Kind() == reflect.Struct {
				t.inline = true
				t.prefix = tags[0]
			}
		}
	}
	return
}
