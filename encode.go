package tsv

import (
	"encoding"
	"encoding/base64"
	"fmt"
	"reflect"
	"strconv"
	"time"
)

// UnsupportedTypeError is returned when a value of an unsupported type
// is marshaled or unmarshaled.
type UnsupportedTypeError struct {
	Type reflect.Type
}

func (e *UnsupportedTypeError) Error() string {
	if e.Type == nil {
		return "tsv: unsupported type: nil"
	}
	return "tsv: unsupported type: " + e.Type.String()
}

// MarshalerError is returned when a MarshalTSV or MarshalText method fails.
type MarshalerError struct {
	Type          reflect.Type
	MarshalerType string
	Err           error
}

func (e *MarshalerError) Error() string {
	return fmt.Sprintf("tsv: error calling %s for type %s: %v", e.MarshalerType, e.Type, e.Err)
}

func (e *MarshalerError) Unwrap() error {
	return e.Err
}

// Header returns the column names of the struct v in record order.
// Names come from the tsv tag, or the field name when there is none.
func Header(v interface{}) ([]string, error) {
	typ, err := valueType(v)
	if err != nil {
		return nil, err
	}
	fields := cachedFields(typeKey{defaultTag, typ})
	hl := make([]string, 0, len(fields))
	for _, f := range fields {
		hl = append(hl, f.name)
	}
	return hl, nil
}

// Marshal returns the record for the struct v, one field per exported
// struct field in declaration order.
//
// Strings are written as is, numbers and booleans with strconv, time.Time
// as RFC 3339 and []byte as base64. Nil pointers and fields tagged
// omitempty holding their zero value are written as empty fields.
// Types implementing Marshaler or encoding.TextMarshaler write themselves.
func Marshal(v interface{}) ([]string, error) {
	val := reflect.ValueOf(v)
	for val.Kind() == reflect.Ptr || val.Kind() == reflect.Interface {
		if val.IsNil() {
			return nil, &UnsupportedTypeError{Type: reflect.TypeOf(v)}
		}
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return nil, &UnsupportedTypeError{Type: reflect.TypeOf(v)}
	}

	fields := cachedFields(typeKey{defaultTag, val.Type()})
	record := make([]string, len(fields))
	for i, f := range fields {
		fv, ok := fieldByIndex(val, f.index)
		if !ok {
			continue
		}
		if f.tag.omitEmpty && fv.IsZero() {
			continue
		}
		enc, err := encodeFn(fv.Type(), fv.CanAddr())
		if err != nil {
			return nil, err
		}
		if record[i], err = enc(fv); err != nil {
			return nil, err
		}
	}
	return record, nil
}

// fieldByIndex is reflect.Value.FieldByIndex that reports false instead
// of panicking on a nil embedded pointer.
func fieldByIndex(v reflect.Value, index []int) (reflect.Value, bool) {
	for i, x := range index {
		if i > 0 && v.Kind() == reflect.Ptr {
			if v.IsNil() {
				return reflect.Value{}, false
			}
			v = v.Elem()
		}
		v = v.Field(x)
	}
	return v, true
}

type encodeFunc func(v reflect.Value) (string, error)

func encodeMarshaler(v reflect.Value) (string, error) {
	if v.Kind() == reflect.Ptr && v.IsNil() {
		return "", nil
	}
	s, err := v.Interface().(Marshaler).MarshalTSV()
	if err != nil {
		return "", &MarshalerError{Type: v.Type(), MarshalerType: "MarshalTSV", Err: err}
	}
	return s, nil
}

func encodePtrMarshaler(v reflect.Value) (string, error) {
	return encodeMarshaler(v.Addr())
}

func encodeTextMarshaler(v reflect.Value) (string, error) {
	if v.Kind() == reflect.Ptr && v.IsNil() {
		return "", nil
	}
	b, err := v.Interface().(encoding.TextMarshaler).MarshalText()
	if err != nil {
		return "", &MarshalerError{Type: v.Type(), MarshalerType: "MarshalText", Err: err}
	}
	return string(b), nil
}

func encodePtrTextMarshaler(v reflect.Value) (string, error) {
	return encodeTextMarshaler(v.Addr())
}

func encodeTime(v reflect.Value) (string, error) {
	t := v.Interface().(time.Time)
	if t.IsZero() {
		return "", nil
	}
	return t.Format(time.RFC3339), nil
}

func encodeString(v reflect.Value) (string, error) {
	return v.String(), nil
}

func encodeBool(v reflect.Value) (string, error) {
	return strconv.FormatBool(v.Bool()), nil
}

func encodeInt(v reflect.Value) (string, error) {
	return strconv.FormatInt(v.Int(), 10), nil
}

func encodeUint(v reflect.Value) (string, error) {
	return strconv.FormatUint(v.Uint(), 10), nil
}

func encodeFloat(bits int) encodeFunc {
	return func(v reflect.Value) (string, error) {
		return strconv.FormatFloat(v.Float(), 'f', -1, bits), nil
	}
}

func encodeBytes(v reflect.Value) (string, error) {
	return base64.StdEncoding.EncodeToString(v.Bytes()), nil
}

func encodeInterface(v reflect.Value) (string, error) {
	if v.IsNil() {
		return "", nil
	}
	el := v.Elem()
	enc, err := encodeFn(el.Type(), false)
	if err != nil {
		return "", err
	}
	return enc(el)
}

func encodePtr(typ reflect.Type) (encodeFunc, error) {
	next, err := encodeFn(typ.Elem(), true)
	if err != nil {
		return nil, err
	}
	return func(v reflect.Value) (string, error) {
		if v.IsNil() {
			return "", nil
		}
		return next(v.Elem())
	}, nil
}

func encodeFn(typ reflect.Type, canAddr bool) (encodeFunc, error) {
	if typ.Implements(tsvMarshaler) {
		return encodeMarshaler, nil
	}
	if canAddr && reflect.PtrTo(typ).Implements(tsvMarshaler) {
		return encodePtrMarshaler, nil
	}

	if typ == timeType {
		return encodeTime, nil
	}

	if typ.Implements(textMarshaler) {
		return encodeTextMarshaler, nil
	}
	if canAddr && reflect.PtrTo(typ).Implements(textMarshaler) {
		return encodePtrTextMarshaler, nil
	}

	switch typ.Kind() {
	case reflect.String:
		return encodeString, nil
	case reflect.Bool:
		return encodeBool, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return encodeInt, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return encodeUint, nil
	case reflect.Float32:
		return encodeFloat(32), nil
	case reflect.Float64:
		return encodeFloat(64), nil
	case reflect.Interface:
		return encodeInterface, nil
	case reflect.Ptr:
		return encodePtr(typ)
	case reflect.Slice:
		if typ.Elem().Kind() == reflect.Uint8 {
			return encodeBytes, nil
		}
	}

	return nil, &UnsupportedTypeError{Type: typ}
}
