package patch

import "strings"

// Optional is a field of a partial update. The zero value means "absent".
type Optional[T any] struct {
	value T
	set   bool
}

func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, set: true}
}

func None[T any]() Optional[T] {
	return Optional[T]{}
}

// FromPtr maps a nil pointer to an absent field.
func FromPtr[T any](p *T) Optional[T] {
	if p == nil {
		return None[T]()
	}
	return Some(*p)
}

// NonBlank is FromPtr for strings, treating whitespace-only values as absent.
func NonBlank(p *string) Optional[string] {
	if p == nil || strings.TrimSpace(*p) == "" {
		return None[string]()
	}
	return Some(*p)
}

func (o Optional[T]) Get() (T, bool) {
	return o.value, o.set
}
