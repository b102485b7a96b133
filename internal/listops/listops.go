// Package listops implements the ordered-list operations used by resume
// sections. Every operation returns a new list and leaves its input alone.
// Out-of-range indexes and moves past either end are no-ops: they report
// changed == false and return the input list.
package listops

import "reflect"

// AppendValue returns a copy of list with item added at the end.
func AppendValue(list, item reflect.Value) reflect.Value {
	n := list.Len()
	out := reflect.MakeSlice(list.Type(), n+1, n+1)
	reflect.Copy(out, list)
	out.Index(n).Set(item)
	return out
}

// DeleteValue returns a copy of list without the element at i.
func DeleteValue(list reflect.Value, i int) (reflect.Value, bool) {
	n := list.Len()
	if i < 0 || i >= n {
		return list, false
	}
	out := reflect.MakeSlice(list.Type(), 0, n-1)
	out = reflect.AppendSlice(out, list.Slice(0, i))
	out = reflect.AppendSlice(out, list.Slice(i+1, n))
	return out, true
}

// MoveUpValue swaps the element at i with its predecessor.
func MoveUpValue(list reflect.Value, i int) (reflect.Value, bool) {
	if i <= 0 || i >= list.Len() {
		return list, false
	}
	return swap(list, i, i-1), true
}

// MoveDownValue swaps the element at i with its successor.
func MoveDownValue(list reflect.Value, i int) (reflect.Value, bool) {
	if i < 0 || i >= list.Len()-1 {
		return list, false
	}
	return swap(list, i, i+1), true
}

func swap(list reflect.Value, i, j int) reflect.Value {
	out := reflect.MakeSlice(list.Type(), list.Len(), list.Len())
	reflect.Copy(out, list)
	tmp := reflect.New(list.Type().Elem()).Elem()
	tmp.Set(out.Index(i))
	out.Index(i).Set(out.Index(j))
	out.Index(j).Set(tmp)
	return out
}

// Append is the typed form of AppendValue.
func Append[T any](items []T, item T) []T {
	return AppendValue(reflect.ValueOf(items), reflect.ValueOf(&item).Elem()).Interface().([]T)
}

// Delete is the typed form of DeleteValue.
func Delete[T any](items []T, i int) []T {
	out, _ := DeleteValue(reflect.ValueOf(items), i)
	return out.Interface().([]T)
}

// MoveUp is the typed form of MoveUpValue.
func MoveUp[T any](items []T, i int) []T {
	out, _ := MoveUpValue(reflect.ValueOf(items), i)
	return out.Interface().([]T)
}

// MoveDown is the typed form of MoveDownValue.
func MoveDown[T any](items []T, i int) []T {
	out, _ := MoveDownValue(reflect.ValueOf(items), i)
	return out.Interface().([]T)
}
