package tsv

import (
	"encoding"
	"encoding/base64"
	"fmt"
	"reflect"
	"strconv"
	"time"
)

// InvalidUnmarshalError describes an invalid argument passed to Unmarshal.
// The argument must be a non-nil pointer to a struct.
type InvalidUnmarshalError struct {
	Type reflect.Type
}

func (e *InvalidUnmarshalError) Error() string {
	if e.Type == nil {
		return "tsv: Unmarshal(nil)"
	}
	if e.Type.Kind() != reflect.Ptr {
		return "tsv: Unmarshal(non-pointer " + e.Type.String() + ")"
	}
	return "tsv: Unmarshal(nil " + e.Type.String() + ")"
}

// DecodeError reports the record field that could not be decoded.
// Column is 0-based.
type DecodeError struct {
	Column int
	Name   string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("tsv: decode column %d %q: %v", e.Column, e.Name, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Unmarshal stores the fields of record in the struct pointed to by v,
// using the column order of Marshal. Columns missing from a short record
// leave their struct fields untouched; extra fields are ignored.
// An empty field sets a pointer to nil and any other type to its zero value.
func Unmarshal(record []string, v interface{}) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return &InvalidUnmarshalError{Type: reflect.TypeOf(v)}
	}
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			rv.Set(reflect.New(rv.Type().Elem()))
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return &UnsupportedTypeError{Type: rv.Type()}
	}

	fields := cachedFields(typeKey{defaultTag, rv.Type()})
	for i, f := range fields {
		if i >= len(record) {
			break
		}
		dec, err := decodeFn(f.baseType)
		if err != nil {
			return err
		}
		fv, err := allocFieldByIndex(rv, f.index)
		if err != nil {
			return err
		}
		if err := dec(record[i], fv); err != nil {
			return &DecodeError{Column: i, Name: f.name, Err: err}
		}
	}
	return nil
}

// allocFieldByIndex walks index like reflect.Value.FieldByIndex and
// allocates nil embedded pointers on the way. A nil embedded pointer to an
// unexported struct cannot be allocated and is reported as an error.
func allocFieldByIndex(v reflect.Value, index []int) (reflect.Value, error) {
	for i, x := range index {
		if i > 0 && v.Kind() == reflect.Ptr {
			if v.IsNil() {
				if !v.CanSet() {
					return reflect.Value{}, fmt.Errorf("tsv: cannot set embedded pointer to unexported struct: %v", v.Type().Elem())
				}
				v.Set(reflect.New(v.Type().Elem()))
			}
			v = v.Elem()
		}
		v = v.Field(x)
	}
	return v, nil
}

type decodeFunc func(s string, v reflect.Value) error

func decodeUnmarshaler(s string, v reflect.Value) error {
	return v.Addr().Interface().(Unmarshaler).UnmarshalTSV(s)
}

func decodeTextUnmarshaler(s string, v reflect.Value) error {
	return v.Addr().Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(s))
}

func decodeTime(s string, v reflect.Value) error {
	if s == "" {
		v.Set(reflect.Zero(v.Type()))
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return err
	}
	v.Set(reflect.ValueOf(t))
	return nil
}

func decodeString(s string, v reflect.Value) error {
	v.SetString(s)
	return nil
}

func decodeBool(s string, v reflect.Value) error {
	if s == "" {
		v.SetBool(false)
		return nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	v.SetBool(b)
	return nil
}

func decodeInt(s string, v reflect.Value) error {
	if s == "" {
		v.SetInt(0)
		return nil
	}
	n, err := strconv.ParseInt(s, 10, v.Type().Bits())
	if err != nil {
		return err
	}
	v.SetInt(n)
	return nil
}

func decodeUint(s string, v reflect.Value) error {
	if s == "" {
		v.SetUint(0)
		return nil
	}
	n, err := strconv.ParseUint(s, 10, v.Type().Bits())
	if err != nil {
		return err
	}
	v.SetUint(n)
	return nil
}

func decodeFloat(s string, v reflect.Value) error {
	if s == "" {
		v.SetFloat(0)
		return nil
	}
	f, err := strconv.ParseFloat(s, v.Type().Bits())
	if err != nil {
		return err
	}
	v.SetFloat(f)
	return nil
}

func decodeBytes(s string, v reflect.Value) error {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return err
	}
	v.SetBytes(b)
	return nil
}

// decodeInterface fills an empty interface with the raw field.
func decodeInterface(s string, v reflect.Value) error {
	v.Set(reflect.ValueOf(s))
	return nil
}

func decodePtr(typ reflect.Type) (decodeFunc, error) {
	next, err := decodeFn(typ.Elem())
	if err != nil {
		return nil, err
	}
	return func(s string, v reflect.Value) error {
		if s == "" {
			v.Set(reflect.Zero(v.Type()))
			return nil
		}
		if v.IsNil() {
			v.Set(reflect.New(typ.Elem()))
		}
		return next(s, v.Elem())
	}, nil
}

func decodeFn(typ reflect.Type) (decodeFunc, error) {
	ptr := reflect.PtrTo(typ)
	if ptr.Implements(tsvUnmarshaler) {
		return decodeUnmarshaler, nil
	}

	if typ == timeType {
		return decodeTime, nil
	}

	if ptr.Implements(textUnmarshaler) {
		return decodeTextUnmarshaler, nil
	}

	switch typ.Kind() {
	case reflect.String:
		return decodeString, nil
	case reflect.Bool:
		return decodeBool, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return decodeInt, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return decodeUint, nil
	case reflect.Float32, reflect.Float64:
		return decodeFloat, nil
	case reflect.Interface:
		if typ.NumMethod() == 0 {
			return decodeInterface, nil
		}
	case reflect.Ptr:
		return decodePtr(typ)
	case reflect.Slice:
		if typ.Elem().Kind() == reflect.Uint8 {
			return decodeBytes, nil
		}
	}

	return nil, &UnsupportedTypeError{Type: typ}
}
