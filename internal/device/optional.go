package device

import "encoding/json"

// Optional holds a value that may be absent. The zero value is absent.
//
// It exists to keep "no data" and "zero-valued data" distinguishable all
// the way to the renderer: a row backed by an absent Optional is omitted,
// not shown with a placeholder.
type Optional[T any] struct {
	value   T
	present bool
}

// Some returns a present Optional holding v
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, present: true}
}

// None returns an absent Optional
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// Present reports whether a value is held
func (o Optional[T]) Present() bool {
	return o.present
}

// Get returns the held value and whether it is present
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.present
}

// Or returns the held value, or fallback when absent
func (o Optional[T]) Or(fallback T) T {
	if o.present {
		return o.value
	}
	return fallback
}

// MarshalJSON encodes the held value, or null when absent
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.present {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}

// UnmarshalJSON decodes null as absent and anything else as a present value
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*o = Optional[T]{}
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*o = Some(v)
	return nil
}
