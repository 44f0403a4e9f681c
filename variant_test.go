package variant

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type numOrText = Of3[int, float32, string]

func TestVariant_getAndEmplace(t *testing.T) {
	v := New[numOrText](10)
	assert.Equal(t, 0, v.Index())
	assert.True(t, v.IsValid())
	assert.Equal(t, 2, v.MaxIndex())

	p, err := Get[int](v)
	require.NoError(t, err)
	assert.Equal(t, 10, *p)

	f, err := Get[float32](v)
	assert.Nil(t, f)
	assert.ErrorIs(t, err, ErrBadAccess)
	assert.EqualError(t, err, `variant: bad access: get: want float32, have int`)
	var accessErr *AccessError
	require.True(t, errors.As(err, &accessErr))
	assert.Equal(t, reflect.TypeFor[float32](), accessErr.Want)
	assert.Equal(t, reflect.TypeFor[int](), accessErr.Have)

	require.NoError(t, Emplace(v, func() (string, error) { return `Hello`, nil }))
	assert.Equal(t, 2, v.Index())
	assert.True(t, Holds[string](v))
	assert.False(t, Holds[int](v))
	s, err := Get[string](v)
	require.NoError(t, err)
	assert.Equal(t, `Hello`, *s)
}

func TestVariant_zeroValue(t *testing.T) {
	var v Variant[Of2[string, int]]
	assert.Equal(t, 0, v.Index())
	assert.True(t, v.IsValid())
	assert.Equal(t, reflect.TypeFor[string](), v.Type())
	p, err := Get[string](&v)
	require.NoError(t, err)
	assert.Equal(t, ``, *p)
	assert.Equal(t, ``, v.Value())
	assert.Equal(t, PolicyLinear, v.DestructorComplexity())

	Assign(&v, 3)
	assert.Equal(t, 1, v.Index())
	assert.Equal(t, 3, v.Value())
}

func TestGet_pointerIsLive(t *testing.T) {
	t.Run(`boxed`, func(t *testing.T) {
		v := New[Of2[int, string]](1)
		p, err := Get[int](v)
		require.NoError(t, err)
		*p = 5
		assert.Equal(t, 5, v.Value())
		assert.Equal(t, `5`, v.String())
	})
	t.Run(`inline`, func(t *testing.T) {
		v := New[Of2[int, float64]](1)
		p, err := Get[int](v)
		require.NoError(t, err)
		*p = 5
		assert.Equal(t, 5, v.Value())
		assert.Equal(t, `5`, v.String())
	})
}

func TestAssign_notAlternative(t *testing.T) {
	v := New[Of2[int, string]](1)
	r := assertPanics(t, func() { Assign(v, 1.5) }, `expected panic`)
	assert.Equal(t, `variant: float64 is not an alternative of variant.Of2[int,string]`, r)
	assert.Equal(t, 1, v.Value())
	assertPanics(t, func() { New[Of2[int, string]](int8(1)) }, `expected panic`)
	assertPanics(t, func() { _, _ = Get[bool](v) }, `expected panic`)
}

func TestEmplace_failure(t *testing.T) {
	v := New[Of2[int, string]](`x`)
	err := Emplace(v, func() (int, error) { return 0, errBoom })
	assert.Same(t, errBoom, err)
	assert.False(t, v.IsValid())
	assert.Equal(t, 2, v.Index())
	assert.Nil(t, v.Type())
	assert.Nil(t, v.Value())
	assert.False(t, v.Visit(func(int, any) { t.Error(`unexpected call`) }))

	_, err = Get[int](v)
	assert.ErrorIs(t, err, ErrBadAccess)
	assert.EqualError(t, err, `variant: bad access: get: want int, have invalid`)

	var b strings.Builder
	err = v.Print(&b)
	assert.ErrorIs(t, err, ErrInvalidAccess)
	assert.EqualError(t, err, `variant: invalid access: print: have invalid`)
	assert.Empty(t, b.String())
	assert.Equal(t, `<invalid>`, v.String())
	assert.Equal(t, `variant.Of2[int,string](<invalid>)`, fmt.Sprintf(`%#v`, v))

	// recovers via assignment
	Assign(v, 4)
	assert.True(t, v.IsValid())
	assert.Equal(t, 4, v.Value())
}

func TestEmplace_panic(t *testing.T) {
	v := New[Of2[int, string]](`x`)
	r := assertPanics(t, func() {
		_ = Emplace(v, func() (string, error) { panic(`ctor`) })
	}, `expected panic`)
	assert.Equal(t, `ctor`, r)
	assert.False(t, v.IsValid())
}

func TestEmplace_nilCtor(t *testing.T) {
	v := New[Of2[int, string]](1)
	r := assertPanics(t, func() { _ = Emplace[string](v, nil) }, `expected panic`)
	assert.Equal(t, `variant: nil constructor`, r)
	assert.Equal(t, 1, v.Value())
}

func TestEmplace_allFundamental(t *testing.T) {
	v := New[Of2[int, float64]](5)
	assert.Same(t, errBoom, Emplace(v, func() (float64, error) { return 0, errBoom }))
	assert.True(t, v.IsValid())
	assert.Equal(t, 5, v.Value())

	assertPanics(t, func() {
		_ = Emplace(v, func() (float64, error) { panic(`ctor`) })
	}, `expected panic`)
	assert.Equal(t, 5, v.Value())

	v.Destroy()
	assert.True(t, v.IsValid())
	assert.Equal(t, 5, v.Value())
}

func TestVariant_destroyOnce(t *testing.T) {
	for _, policy := range [...]Policy{PolicyLinear, PolicyConstant} {
		t.Run(policy.String(), func(t *testing.T) {
			t.Run(`boxed`, func(t *testing.T) {
				var n atomic.Int32
				v := New[Of3[int, resource, string]](resource{destroyed: &n}, WithPolicy(policy))
				require.Equal(t, policy, v.DestructorComplexity())
				Assign(v, 2)
				assert.Equal(t, int32(1), n.Load())
				Assign(v, `s`)
				v.Destroy()
				v.Destroy()
				assert.Equal(t, int32(1), n.Load())
				assert.False(t, v.IsValid())
			})

			t.Run(`inline`, func(t *testing.T) {
				handles.reset()
				defer handles.reset()
				v := New[Of2[int, handle]](handle(7), WithPolicy(policy))
				require.True(t, v.Set().Inline())
				assert.Equal(t, int32(0), handles.destroyed.Load())
				require.NoError(t, Emplace(v, func() (handle, error) { return 8, nil }))
				assert.Equal(t, int32(1), handles.destroyed.Load())
				assert.Equal(t, int32(7), handles.last.Load())
				v.Destroy()
				v.Destroy()
				assert.Equal(t, int32(2), handles.destroyed.Load())
				assert.Equal(t, int32(8), handles.last.Load())
			})
		})
	}
}

func TestVariant_CopyFrom(t *testing.T) {
	var clones int
	a := New[Of2[int, cloned]](cloned{clones: &clones, data: []int{1, 2}})
	b := NewDefault[Of2[int, cloned]]()
	require.NoError(t, b.CopyFrom(a))
	assert.Equal(t, 1, clones)
	assert.Equal(t, 1, b.Index())

	pb, err := Get[cloned](b)
	require.NoError(t, err)
	pb.data[0] = 9
	pa, err := Get[cloned](a)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, pa.data)

	require.NoError(t, a.CopyFrom(a))
	assert.Equal(t, 1, clones)
	assert.Equal(t, []int{1, 2}, pa.data)

	// invalid source
	a.Destroy()
	require.NoError(t, b.CopyFrom(a))
	assert.False(t, b.IsValid())
	assert.Equal(t, 1, clones)
}

func TestVariant_CopyFrom_fallible(t *testing.T) {
	a := New[Of2[int, fallible]](fallible{name: `a`})
	b := New[Of2[int, fallible]](7)
	require.False(t, b.IsNoFailCopyable())
	require.True(t, b.IsCopyable())
	require.NoError(t, b.CopyFrom(a))
	assert.Equal(t, fallible{name: `a (copy)`}, b.Value())

	bad := New[Of2[int, fallible]](fallible{err: errBoom, name: `bad`})
	assert.Same(t, errBoom, b.CopyFrom(bad))
	assert.False(t, b.IsValid())
	assert.Equal(t, fallible{err: errBoom, name: `bad`}, bad.Value())

	c, err := bad.Clone()
	assert.Nil(t, c)
	assert.Same(t, errBoom, err)
}

func TestVariant_CopyFrom_fundamental(t *testing.T) {
	a := New[Of2[int32, float64]](1.5)
	b := NewDefault[Of2[int32, float64]]()
	require.NoError(t, b.CopyFrom(a))
	assert.Equal(t, 1.5, b.Value())
	Assign(a, int32(3))
	assert.Equal(t, 1.5, b.Value())
	require.NoError(t, b.MoveFrom(a))
	assert.Equal(t, int32(3), b.Value())
	assert.Equal(t, int32(3), a.Value())
}

func TestVariant_MoveFrom(t *testing.T) {
	var n atomic.Int32
	a := New[Of2[int, resource]](resource{destroyed: &n, name: `r`})
	b := NewDefault[Of2[int, resource]]()
	require.True(t, b.IsNoFailMovable())
	require.NoError(t, b.MoveFrom(a))
	assert.Equal(t, resource{destroyed: &n, name: `r`}, b.Value())

	// the source is left invalid
	assert.False(t, a.IsValid())
	assert.Equal(t, 2, a.Index())
	assert.Nil(t, a.Value())
	assert.Equal(t, int32(0), n.Load())

	require.NoError(t, b.MoveFrom(b))
	assert.Equal(t, resource{destroyed: &n, name: `r`}, b.Value())

	b.Destroy()
	a.Destroy()
	Assign(a, 1)
	assert.Equal(t, int32(1), n.Load())

	// invalid source
	c := New[Of2[int, resource]](1)
	require.NoError(t, c.MoveFrom(a))
	assert.False(t, c.IsValid())
}

func TestVariant_MoveFrom_inline(t *testing.T) {
	handles.reset()
	defer handles.reset()
	a := New[Of2[int, handle]](handle(5))
	b := New[Of2[int, handle]](1)
	require.NoError(t, b.MoveFrom(a))
	assert.Equal(t, handle(5), b.Value())
	assert.False(t, a.IsValid())
	assert.Equal(t, int32(0), handles.destroyed.Load())

	// reusing the source must not destroy the moved value a second time
	Assign(a, 1)
	require.NoError(t, Emplace(a, func() (handle, error) { return 6, nil }))
	assert.Equal(t, int32(0), handles.destroyed.Load())

	b.Destroy()
	assert.Equal(t, int32(1), handles.destroyed.Load())
	assert.Equal(t, int32(5), handles.last.Load())
}

// copyThenMove copies original, moves the copy, and checks the result matches
// original, which must be unchanged
func copyThenMove[S Alternatives](t *testing.T, original *Variant[S]) {
	t.Helper()
	index, value := original.Index(), original.Value()

	copied := NewDefault[S]()
	require.NoError(t, copied.CopyFrom(original))
	moved := NewDefault[S]()
	require.NoError(t, moved.MoveFrom(copied))

	assert.Equal(t, value, moved.Value())
	assert.Equal(t, index, moved.Index())
	assert.Equal(t, index, original.Index())
	assert.Equal(t, value, original.Value())
}

func TestVariant_copyThenMove(t *testing.T) {
	for _, tc := range [...]struct {
		name string
		run  func(t *testing.T)
	}{
		{`boxed`, func(t *testing.T) { copyThenMove(t, New[Of3[int, string, [2]uint64]](`text`)) }},
		{`boxed fundamental value`, func(t *testing.T) { copyThenMove(t, New[Of3[int, string, [2]uint64]](7)) }},
		{`boxed clone`, func(t *testing.T) {
			var clones int
			copyThenMove(t, New[Of2[int, cloned]](cloned{clones: &clones, data: []int{1}}))
		}},
		{`inline`, func(t *testing.T) { copyThenMove(t, New[Of2[int, handle]](handle(3))) }},
		{`inline array`, func(t *testing.T) { copyThenMove(t, New[Of3[int, handle, [2]uint64]]([2]uint64{1, 2})) }},
		{`all fundamental`, func(t *testing.T) { copyThenMove(t, New[Of2[int32, float64]](2.5)) }},
	} {
		t.Run(tc.name, tc.run)
	}
}

func TestVariant_pinned(t *testing.T) {
	v := New[Of2[int, pinned]](1)
	w := NewDefault[Of2[int, pinned]]()
	assert.False(t, v.IsCopyable())
	assert.False(t, v.IsMovable())
	assert.False(t, v.Set().Inline())
	assert.Same(t, ErrNotCopyable, w.CopyFrom(v))
	assert.Same(t, ErrNotMovable, w.MoveFrom(v))
	assert.True(t, w.IsValid())
	c, err := v.Clone()
	assert.Nil(t, c)
	assert.Same(t, ErrNotCopyable, err)

	require.NoError(t, Emplace(v, func() (pinned, error) { return pinned{value: 3}, nil }))
	p, err := Get[pinned](v)
	require.NoError(t, err)
	p.Lock()
	p.value++
	p.Unlock()

	// swapping does not move the value
	v.Swap(w)
	q, err := Get[pinned](w)
	require.NoError(t, err)
	assert.Same(t, p, q)
	assert.Equal(t, 4, q.value)
}

func TestVariant_Clone(t *testing.T) {
	v := New[Of2[int, string]](`s`, WithPolicy(PolicyConstant))
	c, err := v.Clone()
	require.NoError(t, err)
	assert.Equal(t, `s`, c.Value())
	assert.Equal(t, PolicyConstant, c.DestructorComplexity())
	Assign(v, 1)
	assert.Equal(t, `s`, c.Value())

	v.Destroy()
	c, err = v.Clone()
	require.NoError(t, err)
	assert.False(t, c.IsValid())
}

func TestVariant_Swap(t *testing.T) {
	t.Run(`boxed`, func(t *testing.T) {
		a := New[Of2[int, string]](1)
		b := New[Of2[int, string]](`x`, WithPolicy(PolicyConstant))
		a.Swap(b)
		assert.Equal(t, `x`, a.Value())
		assert.Equal(t, 1, b.Value())
		assert.Equal(t, PolicyLinear, a.DestructorComplexity())
		assert.Equal(t, PolicyConstant, b.DestructorComplexity())
	})
	t.Run(`inline`, func(t *testing.T) {
		a := New[Of2[int32, float64]](int32(1))
		b := New[Of2[int32, float64]](2.5)
		a.Swap(b)
		assert.Equal(t, 2.5, a.Value())
		assert.Equal(t, int32(1), b.Value())
	})
	t.Run(`invalid`, func(t *testing.T) {
		a := New[Of2[int, string]](1)
		b := New[Of2[int, string]](`x`)
		b.Destroy()
		a.Swap(b)
		assert.False(t, a.IsValid())
		assert.Equal(t, 1, b.Value())
	})
}

func TestVariant_Print(t *testing.T) {
	for _, tc := range [...]struct {
		name string
		v    fmt.Stringer
		want string
	}{
		{`int`, New[numOrText](42), `42`},
		{`float`, New[numOrText](float32(1.5)), `1.5`},
		{`string`, New[numOrText](`hi`), `hi`},
		{`pointer stringer`, New[Of2[int, stringer]](stringer{value: 3}), `stringer(3)`},
		{`error`, New[Of2[int, error]](errBoom), `boom`},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.v.String())
			assert.Equal(t, tc.want, fmt.Sprint(tc.v))
		})
	}
}

func TestVariant_GoString(t *testing.T) {
	assert.Equal(t, `variant.Of2[int,string](1: "hi")`, fmt.Sprintf(`%#v`, New[Of2[int, string]](`hi`)))
}

func TestVariant_Visit(t *testing.T) {
	v := New[numOrText](float32(2))
	var (
		index int
		value any
	)
	require.True(t, v.Visit(func(i int, x any) { index, value = i, x }))
	assert.Equal(t, 1, index)
	assert.Equal(t, float32(2), value)
	assert.Equal(t, reflect.TypeFor[float32](), v.Type())
}

func TestVariant_setQueries(t *testing.T) {
	v := NewDefault[numOrText]()
	assert.Same(t, SetOf[numOrText](), v.Set())
	assert.Equal(t, v.Set().BufferByteSize(), v.BufferByteSize())
	assert.Equal(t, v.Set().Alignment(), v.Alignment())
	assert.True(t, v.IsCopyable())
	assert.True(t, v.IsNoFailCopyable())
	assert.True(t, v.IsMovable())
	assert.True(t, v.IsNoFailMovable())
	assert.Equal(t, 1, IndexOf[float32, numOrText]())
}
