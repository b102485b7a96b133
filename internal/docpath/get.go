package docpath

import (
	"reflect"
	"strconv"
)

// Get returns the value stored at path.
func Get(root any, path string) (any, error) {
	v, err := Lookup(root, path)
	if err != nil {
		return nil, err
	}
	return v.Interface(), nil
}

// Lookup is Get returning the reflect.Value found at path.
func Lookup(root any, path string) (reflect.Value, error) {
	segs, err := Parse(path)
	if err != nil {
		return reflect.Value{}, err
	}

	v := reflect.ValueOf(root)
	if !v.IsValid() {
		return reflect.Value{}, &PathError{Path: path, Reason: "document is nil"}
	}
	segs = trimRootAlias(v, segs)

	for _, seg := range segs {
		v = indirect(v)
		if !v.IsValid() {
			return reflect.Value{}, &PathError{Path: path, Segment: seg.String(), Reason: "nil value on path"}
		}
		switch v.Kind() {
		case reflect.Struct:
			if seg.IsIndex {
				return reflect.Value{}, &PathError{Path: path, Segment: seg.String(), Reason: "cannot index into " + v.Type().String()}
			}
			idx, ok := fieldIndex(v.Type(), seg.Key)
			if !ok {
				return reflect.Value{}, &PathError{Path: path, Segment: seg.String(), Reason: "unknown field of " + v.Type().String()}
			}
			v = v.Field(idx)
		case reflect.Map:
			if v.Type().Key().Kind() != reflect.String {
				return reflect.Value{}, &PathError{Path: path, Segment: seg.String(), Reason: "map keys must be strings"}
			}
			key := seg.Key
			if seg.IsIndex {
				key = strconv.Itoa(seg.Index)
			}
			kv := reflect.New(v.Type().Key()).Elem()
			kv.SetString(key)
			next := v.MapIndex(kv)
			if !next.IsValid() {
				return reflect.Value{}, &PathError{Path: path, Segment: seg.String(), Reason: "key not found"}
			}
			v = next
		case reflect.Slice, reflect.Array:
			if !seg.IsIndex {
				return reflect.Value{}, &PathError{Path: path, Segment: seg.String(), Reason: "list requires an index"}
			}
			if seg.Index >= v.Len() {
				return reflect.Value{}, &PathError{Path: path, Segment: seg.String(), Reason: "index out of range (length " + strconv.Itoa(v.Len()) + ")"}
			}
			v = v.Index(seg.Index)
		default:
			return reflect.Value{}, &PathError{Path: path, Segment: seg.String(), Reason: "cannot descend into " + v.Kind().String()}
		}
	}
	return v, nil
}

// indirect follows pointers and interfaces. It returns the zero Value when
// it meets a nil.
func indirect(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}
