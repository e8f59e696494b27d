package helper

import "encoding/json"

// Optional is a patch field that distinguishes "absent from the payload"
// from "explicitly set", including explicitly set to null, which clears a
// nullable column. Plain pointers cannot express the difference, so update
// DTOs use this instead.
type Optional[T any] struct {
	Present bool
	Value   *T // nil when the field was provided as null
}

// Set builds a present Optional holding v.
func Set[T any](v T) Optional[T] {
	return Optional[T]{Present: true, Value: &v}
}

// SetNull builds a present Optional holding null.
func SetNull[T any]() Optional[T] {
	return Optional[T]{Present: true}
}

// Get returns the value and whether the field was present in the payload.
// A present null yields (nil, true).
func (o Optional[T]) Get() (*T, bool) {
	return o.Value, o.Present
}

// IsSet reports presence with a non-null value.
func (o Optional[T]) IsSet() bool {
	return o.Present && o.Value != nil
}

// UnmarshalJSON is only invoked for keys that appear in the payload, which
// is what makes Present reliable.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Present = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Present || o.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*o.Value)
}
