package outline

// OneOrMany models the collapsing rule inherited from the legacy filler: a
// projection with exactly one element is treated as a bare value, anything
// else as a list. The sum type forces callers to choose a view instead of
// accidentally ranging over a scalar.
type OneOrMany[T any] struct {
	one    T
	many   []T
	single bool
}

// One wraps a single collapsed value.
func One[T any](v T) OneOrMany[T] {
	return OneOrMany[T]{one: v, single: true}
}

// Many wraps a list without collapsing.
func Many[T any](vs []T) OneOrMany[T] {
	return OneOrMany[T]{many: vs}
}

// Collapse wraps a slice, collapsing a length-1 slice to One.
func Collapse[T any](vs []T) OneOrMany[T] {
	if len(vs) == 1 {
		return One(vs[0])
	}
	return Many(vs)
}

// Single returns the collapsed value and whether this is a One.
func (m OneOrMany[T]) Single() (T, bool) {
	return m.one, m.single
}

// Values returns either view as a slice, in original order.
func (m OneOrMany[T]) Values() []T {
	if m.single {
		return []T{m.one}
	}
	return m.many
}

// Len counts elements across both views.
func (m OneOrMany[T]) Len() int {
	if m.single {
		return 1
	}
	return len(m.many)
}

// Flatten returns the legacy collapsed form: the bare element for One, the
// slice for Many. Template contexts consume this shape.
func (m OneOrMany[T]) Flatten() any {
	if m.single {
		return m.one
	}
	return m.many
}
