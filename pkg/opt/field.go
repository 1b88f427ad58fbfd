// Package opt distinguishes "field not provided" from "field provided with a
// zero or null value" in partial updates.
package opt

import "encoding/json"

// Field carries a value together with whether the caller supplied it.
// The zero Field is "not provided".
type Field[T any] struct {
	Value T
	Set   bool
}

// Some returns a provided field.
func Some[T any](v T) Field[T] {
	return Field[T]{Value: v, Set: true}
}

// None returns a field that was not provided.
func None[T any]() Field[T] {
	return Field[T]{}
}

// Get returns the value and whether it was provided.
func (f Field[T]) Get() (T, bool) {
	return f.Value, f.Set
}

// Map transforms a provided value, leaving an absent field absent.
func Map[T, U any](f Field[T], fn func(T) U) Field[U] {
	if !f.Set {
		return Field[U]{}
	}
	return Some(fn(f.Value))
}

// UnmarshalJSON marks the field as provided. encoding/json only calls it when
// the key is present in the document, including an explicit null.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.Set = true
	return json.Unmarshal(data, &f.Value)
}

// MarshalJSON encodes the bare value.
func (f Field[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.Value)
}
