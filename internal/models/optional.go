package models

import (
	"bytes"
	"encoding/json"
)

// Optional holds either a value (Some) or nothing (None).
//
// Analysis queries return Optional results instead of pointers so that an
// absent result has to be checked explicitly by the caller. The zero value
// is None.
type Optional[T any] struct {
	value T
	ok    bool
}

// Some wraps v in a present Optional.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, ok: true}
}

// None returns an empty Optional.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// Get returns the held value and whether it is present.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.ok
}

// IsSome reports whether a value is present.
func (o Optional[T]) IsSome() bool {
	return o.ok
}

// IsNone reports whether the Optional is empty.
func (o Optional[T]) IsNone() bool {
	return !o.ok
}

// MustGet returns the held value and panics when the Optional is empty.
func (o Optional[T]) MustGet() T {
	if !o.ok {
		panic("models: MustGet called on an empty Optional")
	}
	return o.value
}

// OrElse returns the held value, or fallback when the Optional is empty.
func (o Optional[T]) OrElse(fallback T) T {
	if !o.ok {
		return fallback
	}
	return o.value
}

var jsonNull = []byte("null")

// MarshalJSON encodes None as null and Some(v) as v.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.ok {
		return jsonNull, nil
	}
	return json.Marshal(o.value)
}

// UnmarshalJSON decodes null as None and anything else as Some.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), jsonNull) {
		*o = None[T]()
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*o = Some(v)
	return nil
}

// MarshalYAML encodes None as null.
func (o Optional[T]) MarshalYAML() (interface{}, error) {
	if !o.ok {
		return nil, nil
	}
	return o.value, nil
}

// UnmarshalYAML implements the yaml.v3 obsolete-style unmarshaler so the
// models package does not need to import yaml.
func (o *Optional[T]) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var v *T
	if err := unmarshal(&v); err != nil {
		return err
	}
	if v == nil {
		*o = None[T]()
		return nil
	}
	*o = Some(*v)
	return nil
}
