package webapp

import "reflect"

// unset is the type of the Unset sentinel. It is unexported so no legal
// attribute value can collide with it.
type unset struct{}

// Unset marks a cell that has not been computed yet. Compute functions may
// return it to leave a cell untouched.
var Unset any = unset{}

// IsUnset reports whether v is the Unset sentinel.
func IsUnset(v any) bool {
	_, ok := v.(unset)
	return ok
}

// sameValue reports whether writing b over a would be a no-op.
//
// Funcs never compare equal, so re-assigning a handler always takes effect.
// Slices compare by backing array and length, maps, pointers and channels by
// identity. Other comparable values use ==.
func sameValue(a, b any) (same bool) {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	switch ta.Kind() {
	case reflect.Func:
		return false
	case reflect.Slice:
		va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
		return va.Len() == vb.Len() && va.Pointer() == vb.Pointer()
	case reflect.Map, reflect.Pointer, reflect.Chan, reflect.UnsafePointer:
		return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
	}
	if !ta.Comparable() {
		return false
	}
	// Structs with interface fields holding uncomparable values panic on ==.
	defer func() {
		if recover() != nil {
			same = false
		}
	}()
	return a == b
}

// toFloat converts numeric attribute values to float64. Unset and
// non-numeric values read as 0.
func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case int32:
		return float64(n)
	case uint:
		return float64(n)
	case uint64:
		return float64(n)
	case uint32:
		return float64(n)
	case bool:
		if n {
			return 1
		}
	}
	return 0
}

// truthy follows the loose boolean reading used by visibility flags:
// nonzero numbers, true, and non-empty strings are true.
func truthy(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		return b != ""
	case nil, unset:
		return false
	}
	return toFloat(v) != 0
}
