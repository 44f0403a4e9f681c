package variant

// Marker types for alternative sets, of arity 1 through 10. Each type parameter
// is one alternative, in index order, e.g. for Of3[int, float32, string],
// int has index 0, and string index 2. Duplicate types will cause a panic, the
// first time the set is used.
type (
	Of1[A0 any] struct{}
	Of2[A0, A1 any] struct{}
	Of3[A0, A1, A2 any] struct{}
	Of4[A0, A1, A2, A3 any] struct{}
	Of5[A0, A1, A2, A3, A4 any] struct{}
	Of6[A0, A1, A2, A3, A4, A5 any] struct{}
	Of7[A0, A1, A2, A3, A4, A5, A6 any] struct{}
	Of8[A0, A1, A2, A3, A4, A5, A6, A7 any] struct{}
	Of9[A0, A1, A2, A3, A4, A5, A6, A7, A8 any] struct{}
	Of10[A0, A1, A2, A3, A4, A5, A6, A7, A8, A9 any] struct{}
)

func (Of1[A0]) Alternatives() []Alternative {
	return []Alternative{Alt[A0]()}
}

func (Of2[A0, A1]) Alternatives() []Alternative {
	return []Alternative{Alt[A0](), Alt[A1]()}
}

func (Of3[A0, A1, A2]) Alternatives() []Alternative {
	return []Alternative{Alt[A0](), Alt[A1](), Alt[A2]()}
}

func (Of4[A0, A1, A2, A3]) Alternatives() []Alternative {
	return []Alternative{Alt[A0](), Alt[A1](), Alt[A2](), Alt[A3]()}
}

func (Of5[A0, A1, A2, A3, A4]) Alternatives() []Alternative {
	return []Alternative{
		Alt[A0](),
		Alt[A1](),
		Alt[A2](),
		Alt[A3](),
		Alt[A4](),
	}
}

func (Of6[A0, A1, A2, A3, A4, A5]) Alternatives() []Alternative {
	return []Alternative{
		Alt[A0](),
		Alt[A1](),
		Alt[A2](),
		Alt[A3](),
		Alt[A4](),
		Alt[A5](),
	}
}

func (Of7[A0, A1, A2, A3, A4, A5, A6]) Alternatives() []Alternative {
	return []Alternative{
		Alt[A0](),
		Alt[A1](),
		Alt[A2](),
		Alt[A3](),
		Alt[A4](),
		Alt[A5](),
		Alt[A6](),
	}
}

func (Of8[A0, A1, A2, A3, A4, A5, A6, A7]) Alternatives() []Alternative {
	return []Alternative{
		Alt[A0](),
		Alt[A1](),
		Alt[A2](),
		Alt[A3](),
		Alt[A4](),
		Alt[A5](),
		Alt[A6](),
		Alt[A7](),
	}
}

func (Of9[A0, A1, A2, A3, A4, A5, A6, A7, A8]) Alternatives() []Alternative {
	return []Alternative{
		Alt[A0](),
		Alt[A1](),
		Alt[A2](),
		Alt[A3](),
		Alt[A4](),
		Alt[A5](),
		Alt[A6](),
		Alt[A7](),
		Alt[A8](),
	}
}

func (Of10[A0, A1, A2, A3, A4, A5, A6, A7, A8, A9]) Alternatives() []Alternative {
	return []Alternative{
		Alt[A0](),
		Alt[A1](),
		Alt[A2](),
		Alt[A3](),
		Alt[A4](),
		Alt[A5](),
		Alt[A6](),
		Alt[A7](),
		Alt[A8](),
		Alt[A9](),
	}
}
