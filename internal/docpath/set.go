package docpath

import (
	"encoding/json"
	"reflect"
	"strconv"
	"strings"
)

// rootAlias is the key under which the application state exposes the
// document. A leading "data." is dropped when the root has no such field.
const rootAlias = "data"

// LeafFunc produces the replacement for the value found at the end of a path.
// cur is the zero value of the target type when nothing exists there yet.
type LeafFunc func(cur reflect.Value) (reflect.Value, error)

// Set returns a copy of root with the value at path replaced by value. root
// itself is never modified. Missing intermediate pointers, maps and
// interface containers are created; an index equal to the list length
// appends.
func Set[T any](root T, path string, value any) (T, error) {
	return Update(root, path, func(cur reflect.Value) (reflect.Value, error) {
		out, err := Convert(cur.Type(), value)
		if err != nil {
			return cur, &PathError{Path: path, Reason: "cannot assign value", Cause: err}
		}
		return out, nil
	})
}

// Update is Set with a caller-provided leaf computation. Errors returned by
// fn are passed through unchanged.
func Update[T any](root T, path string, fn LeafFunc) (T, error) {
	segs, err := Parse(path)
	if err != nil {
		return root, err
	}

	rv := reflect.ValueOf(&root).Elem()
	segs = trimRootAlias(rv, segs)
	if len(segs) == 0 {
		return root, &PathError{Path: path, Reason: "path selects the document root"}
	}

	w := walker{path: path, leaf: fn}
	updated, err := w.set(rv, segs)
	if err != nil {
		return root, err
	}

	out := reflect.New(rv.Type()).Elem()
	out.Set(updated)
	return out.Interface().(T), nil
}

// Convert returns value as a reflect.Value of type t. Assignable values are
// used as is; anything else is decoded through a JSON round trip, which lets
// loosely typed input (decoded request bodies) populate typed fields.
func Convert(t reflect.Type, value any) (reflect.Value, error) {
	out := reflect.New(t).Elem()
	if value == nil {
		return out, nil
	}

	rv := reflect.ValueOf(value)
	if rv.Type().AssignableTo(t) {
		out.Set(rv)
		return out, nil
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return out, err
	}
	ptr := reflect.New(t)
	if err := json.Unmarshal(raw, ptr.Interface()); err != nil {
		return out, err
	}
	return ptr.Elem(), nil
}

type walker struct {
	path string
	leaf LeafFunc
}

func (w walker) fail(seg Segment, reason string, cause error) error {
	return &PathError{Path: w.path, Segment: seg.String(), Reason: reason, Cause: cause}
}

func (w walker) set(v reflect.Value, segs []Segment) (reflect.Value, error) {
	if len(segs) == 0 {
		out, err := w.leaf(v)
		if err != nil {
			return v, err
		}
		return out, nil
	}

	seg := segs[0]
	switch v.Kind() {
	case reflect.Pointer:
		clone := reflect.New(v.Type().Elem())
		if !v.IsNil() {
			clone.Elem().Set(v.Elem())
		}
		updated, err := w.set(clone.Elem(), segs)
		if err != nil {
			return v, err
		}
		clone.Elem().Set(updated)
		return clone, nil

	case reflect.Interface:
		inner := emptyContainer(seg)
		if !v.IsNil() {
			inner = v.Elem()
		}
		updated, err := w.set(inner, segs)
		if err != nil {
			return v, err
		}
		out := reflect.New(v.Type()).Elem()
		out.Set(updated)
		return out, nil

	case reflect.Struct:
		if seg.IsIndex {
			return v, w.fail(seg, "cannot index into "+v.Type().String(), nil)
		}
		idx, ok := fieldIndex(v.Type(), seg.Key)
		if !ok {
			return v, w.fail(seg, "unknown field of "+v.Type().String(), nil)
		}
		out := reflect.New(v.Type()).Elem()
		out.Set(v)
		updated, err := w.set(out.Field(idx), segs[1:])
		if err != nil {
			return v, err
		}
		out.Field(idx).Set(updated)
		return out, nil

	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return v, w.fail(seg, "map keys must be strings", nil)
		}
		key := reflect.New(v.Type().Key()).Elem()
		key.SetString(seg.Key)
		if seg.IsIndex {
			key.SetString(strconv.Itoa(seg.Index))
		}
		out := reflect.MakeMapWithSize(v.Type(), v.Len()+1)
		if !v.IsNil() {
			iter := v.MapRange()
			for iter.Next() {
				out.SetMapIndex(iter.Key(), iter.Value())
			}
		}
		cur := out.MapIndex(key)
		if !cur.IsValid() {
			cur = reflect.Zero(v.Type().Elem())
		}
		updated, err := w.set(cur, segs[1:])
		if err != nil {
			return v, err
		}
		out.SetMapIndex(key, updated)
		return out, nil

	case reflect.Slice:
		if !seg.IsIndex {
			return v, w.fail(seg, "list requires an index", nil)
		}
		n := v.Len()
		if seg.Index > n {
			return v, w.fail(seg, "index out of range (length "+strconv.Itoa(n)+")", nil)
		}
		length := n
		if seg.Index == n {
			length = n + 1
		}
		out := reflect.MakeSlice(v.Type(), length, length)
		reflect.Copy(out, v)
		updated, err := w.set(out.Index(seg.Index), segs[1:])
		if err != nil {
			return v, err
		}
		out.Index(seg.Index).Set(updated)
		return out, nil

	default:
		return v, w.fail(seg, "cannot descend into "+v.Kind().String(), nil)
	}
}

func emptyContainer(seg Segment) reflect.Value {
	if seg.IsIndex {
		return reflect.ValueOf([]any{})
	}
	return reflect.ValueOf(map[string]any{})
}

// fieldIndex finds the exported field whose JSON name (or Go name when
// untagged) equals key.
func fieldIndex(t reflect.Type, key string) (int, bool) {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name := f.Name
		if tag, ok := f.Tag.Lookup("json"); ok {
			tagName, _, _ := strings.Cut(tag, ",")
			if tagName == "-" {
				continue
			}
			if tagName != "" {
				name = tagName
			}
		}
		if name == key {
			return i, true
		}
	}
	return 0, false
}

func trimRootAlias(root reflect.Value, segs []Segment) []Segment {
	if len(segs) == 0 || segs[0].IsIndex || segs[0].Key != rootAlias {
		return segs
	}
	t := root.Type()
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() == reflect.Struct {
		if _, ok := fieldIndex(t, rootAlias); ok {
			return segs
		}
		return segs[1:]
	}
	return segs
}
