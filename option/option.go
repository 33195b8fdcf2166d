// Package option provides Option, the optional-value wrapper recognised by
// typesynth builders.
//
// A struct field declared as option.Option[T] is classified as optional: its
// builder setter accepts a plain T and Build succeeds whether or not the
// setter was called. Builders also use Option for their own per-field slots so
// that "not yet set" is representable for every field.
package option

import "fmt"

// Option holds either a value of type T or nothing. The zero value is None.
type Option[T any] struct {
	value T
	ok    bool
}

// Some returns an Option holding v.
func Some[T any](v T) Option[T] {
	return Option[T]{value: v, ok: true}
}

// None returns an empty Option.
func None[T any]() Option[T] {
	return Option[T]{}
}

// Get returns the held value and whether it is present.
func (o Option[T]) Get() (T, bool) {
	return o.value, o.ok
}

// IsSome reports whether a value is present.
func (o Option[T]) IsSome() bool {
	return o.ok
}

// IsNone reports whether the Option is empty.
func (o Option[T]) IsNone() bool {
	return !o.ok
}

// OrElse returns the held value, or def when empty.
func (o Option[T]) OrElse(def T) T {
	if !o.ok {
		return def
	}

	return o.value
}

// String returns "Some(v)" or "None".
func (o Option[T]) String() string {
	if !o.ok {
		return "None"
	}

	return fmt.Sprintf("Some(%v)", o.value)
}
