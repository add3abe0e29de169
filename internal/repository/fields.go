package repository

import (
	"encoding/json"
	"reflect"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	objectIDType = reflect.TypeOf(primitive.ObjectID{})
	timeType     = reflect.TypeOf(time.Time{})

	fieldCache sync.Map // reflect.Type -> map[string]reflect.StructField
)

// CoerceFilter converts filter values to the field types of T.
// A key that is not a storage field of T is a ValidationError.
func CoerceFilter[T any](filter Filter) (Filter, error) {
	out, err := coerce[T](filter, true)
	if err != nil {
		return nil, err
	}
	return Filter(out), nil
}

// CoerceFields converts partial-update values to the field types of T.
// Unknown keys and the immutable _id are dropped.
func CoerceFields[T any](fields Fields) (Fields, error) {
	out, err := coerce[T](fields, false)
	if err != nil {
		return nil, err
	}
	return Fields(out), nil
}

func coerce[T any](in map[string]any, filter bool) (map[string]any, error) {
	out := make(map[string]any, len(in))
	if len(in) == 0 {
		return out, nil
	}
	known := storageFields(reflect.TypeOf((*T)(nil)).Elem())
	for key, val := range in {
		if key == "_id" && !filter {
			continue
		}
		f, ok := known[key]
		if !ok {
			if filter {
				return nil, &ValidationError{Field: key, Reason: "is not a known field"}
			}
			continue
		}
		v, err := coerceValue(val, f.Type)
		if err != nil {
			return nil, &ValidationError{Field: key, Reason: "has an invalid value"}
		}
		out[key] = v
	}
	return out, nil
}

func coerceValue(val any, typ reflect.Type) (any, error) {
	if val == nil {
		return reflect.Zero(typ).Interface(), nil
	}
	rv := reflect.ValueOf(val)
	if rv.Type().AssignableTo(typ) {
		return val, nil
	}
	if typ.Kind() == reflect.Pointer && rv.Type().AssignableTo(typ.Elem()) {
		p := reflect.New(typ.Elem())
		p.Elem().Set(rv)
		return p.Interface(), nil
	}

	if s, ok := val.(string); ok {
		base := typ
		if base.Kind() == reflect.Pointer {
			base = base.Elem()
		}
		switch base {
		case objectIDType:
			oid, err := ParseID(s)
			if err != nil {
				return nil, err
			}
			return wrapPointer(reflect.ValueOf(oid), typ), nil
		case timeType:
			if t, err := time.Parse("2006-01-02", s); err == nil {
				return wrapPointer(reflect.ValueOf(t), typ), nil
			}
		}
	}

	raw, err := json.Marshal(val)
	if err != nil {
		return nil, err
	}
	target := reflect.New(typ)
	if err := json.Unmarshal(raw, target.Interface()); err == nil {
		return target.Elem().Interface(), nil
	}
	// Query strings carry every value as text: "true", "3".
	s, ok := val.(string)
	if !ok {
		return nil, err
	}
	target = reflect.New(typ)
	if err := json.Unmarshal([]byte(s), target.Interface()); err != nil {
		return nil, err
	}
	return target.Elem().Interface(), nil
}

func wrapPointer(v reflect.Value, typ reflect.Type) any {
	if typ.Kind() != reflect.Pointer {
		return v.Interface()
	}
	p := reflect.New(typ.Elem())
	p.Elem().Set(v)
	return p.Interface()
}

// storageFields maps the bson field names of struct type t to their struct fields.
func storageFields(t reflect.Type) map[string]reflect.StructField {
	if cached, ok := fieldCache.Load(t); ok {
		return cached.(map[string]reflect.StructField)
	}
	out := make(map[string]reflect.StructField, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name := strings.SplitN(f.Tag.Get("bson"), ",", 2)[0]
		if name == "-" {
			continue
		}
		if name == "" {
			name = strings.ToLower(f.Name)
		}
		out[name] = f
	}
	fieldCache.Store(t, out)
	return out
}

// FieldValue returns the value of the storage field name on rec, a pointer to a struct.
func FieldValue(rec any, name string) (any, bool) {
	v := reflect.ValueOf(rec)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct {
		return nil, false
	}
	f, ok := storageFields(v.Elem().Type())[name]
	if !ok {
		return nil, false
	}
	return v.Elem().FieldByIndex(f.Index).Interface(), true
}

// SetField assigns val, already coerced to the field type, to the storage field name on rec.
func SetField(rec any, name string, val any) bool {
	v := reflect.ValueOf(rec)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct {
		return false
	}
	f, ok := storageFields(v.Elem().Type())[name]
	if !ok {
		return false
	}
	dst := v.Elem().FieldByIndex(f.Index)
	src := reflect.ValueOf(val)
	if !src.IsValid() {
		dst.Set(reflect.Zero(dst.Type()))
		return true
	}
	if !src.Type().AssignableTo(dst.Type()) {
		return false
	}
	dst.Set(src)
	return true
}

// SameValue compares two field values, treating times by instant.
func SameValue(a, b any) bool {
	switch x := a.(type) {
	case time.Time:
		y, ok := b.(time.Time)
		return ok && x.Equal(y)
	case *time.Time:
		y, ok := b.(*time.Time)
		if !ok {
			return false
		}
		if x == nil || y == nil {
			return x == y
		}
		return x.Equal(*y)
	}
	return reflect.DeepEqual(a, b)
}
