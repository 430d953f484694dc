package common

import (
	"bytes"
	"encoding/json"
)

// Option is a field that may be absent. In JSON an absent key leaves Set
// false, while an explicit null sets it with the zero value.
type Option[T any] struct {
	Value T
	Set   bool
}

// Some returns a set option
func Some[T any](v T) Option[T] {
	return Option[T]{Value: v, Set: true}
}

// None returns an unset option
func None[T any]() Option[T] {
	return Option[T]{}
}

// Get returns the value and whether it was set
func (o Option[T]) Get() (T, bool) {
	return o.Value, o.Set
}

func (o *Option[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		var zero T
		o.Value = zero
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

func (o Option[T]) MarshalJSON() ([]byte, error) {
	if !o.Set {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}
