package variant

import (
	"fmt"
	"io"
	"reflect"
	"strings"
)

type (
	// Variant holds exactly one value, of one of the alternatives of S. The
	// zero value holds the zero value of the first alternative (index 0),
	// and uses PolicyAuto.
	//
	// A Variant must not be copied after first use.
	Variant[S Alternatives] struct {
		_          noCopy
		st         storage
		threshold  Ratio
		policy     Policy
		complexity Policy // resolved, PolicyAuto if not yet resolved
	}

	// noCopy may be embedded into structs which must not be copied after the
	// first use, see https://golang.org/issues/8005#issuecomment-190753527
	noCopy struct{}
)

// New initializes a Variant holding value, which must be an alternative of
// S. A panic will occur if value's type is not an alternative, or invalid
// options are provided.
func New[S Alternatives, T any](value T, options ...Option) *Variant[S] {
	v := NewDefault[S](options...)
	Assign(v, value)
	return v
}

// NewDefault initializes a Variant holding the zero value of the first
// alternative, the same as the zero value of Variant, except configurable.
func NewDefault[S Alternatives](options ...Option) *Variant[S] {
	cfg, err := resolveOptions(options)
	if err != nil {
		panic(err)
	}
	var v Variant[S]
	v.init(cfg)
	return &v
}

func (x *Variant[S]) init(cfg *variantOptions) {
	x.policy = cfg.policy
	x.threshold = cfg.threshold
	x.complexity = SetOf[S]().Complexity(x.policy, x.threshold)
}

// Get returns a pointer to the live value, if T is the active alternative,
// otherwise an *AccessError wrapping ErrBadAccess. A panic will occur if T is
// not an alternative of S.
//
// The pointer is valid until the next operation that modifies v.
func Get[T any, S Alternatives](v *Variant[S]) (*T, error) {
	set := SetOf[S]()
	i := indexFor[T](set)
	if v.st.tag != i {
		return nil, &AccessError{Op: `get`, Want: set.alts[i].typ, Have: v.activeType(set), Err: ErrBadAccess}
	}
	return (*T)(v.st.live(set)), nil
}

// Holds reports whether T is the active alternative. A panic will occur if T
// is not an alternative of S.
func Holds[T any, S Alternatives](v *Variant[S]) bool {
	return v.st.tag == indexFor[T](SetOf[S]())
}

// IndexOf returns the index of T within S. A panic will occur if T is not an
// alternative of S.
func IndexOf[T any, S Alternatives]() int {
	return indexFor[T](SetOf[S]())
}

// Assign destroys the active value (if any), and replaces it with value. It
// cannot fail. A panic will occur if T is not an alternative of S.
func Assign[T any, S Alternatives](v *Variant[S], value T) {
	set := SetOf[S]()
	i := indexFor[T](set)
	v.st.destroyActive(set, v.DestructorComplexity())
	place(&v.st, set, i, value)
}

// Emplace destroys the active value (if any), then replaces it with the
// result of ctor. Any error from ctor is returned unchanged. A panic will
// occur if T is not an alternative of S, or ctor is nil.
//
// If ctor fails (returns an error, or panics), and S is not AllFundamental,
// v is left invalid. This is a weak guarantee: the previous value has
// already been destroyed, and is not restored. If S is AllFundamental, there
// is nothing to destroy, and v is left unchanged on failure.
//
// A panic from ctor is propagated, unchanged.
func Emplace[T any, S Alternatives](v *Variant[S], ctor func() (T, error)) error {
	if ctor == nil {
		panic(`variant: nil constructor`)
	}
	set := SetOf[S]()
	i := indexFor[T](set)
	// leaves v invalid, unless the set is all fundamental
	v.st.destroyActive(set, v.DestructorComplexity())
	value, err := ctor()
	if err != nil {
		return err
	}
	place(&v.st, set, i, value)
	return nil
}

// Set returns the Set for S.
func (x *Variant[S]) Set() *Set {
	return SetOf[S]()
}

// Index returns the index of the active alternative, or MaxIndex+1 (the
// number of alternatives), if invalid.
func (x *Variant[S]) Index() int {
	return x.st.tag
}

// IsValid reports whether there is a live value, which is always true, if
// the set is AllFundamental.
func (x *Variant[S]) IsValid() bool {
	return x.st.valid(SetOf[S]())
}

// MaxIndex returns the highest valid index, which is the number of
// alternatives minus one.
func (x *Variant[S]) MaxIndex() int {
	return SetOf[S]().Len() - 1
}

// BufferByteSize returns Set.BufferByteSize.
func (x *Variant[S]) BufferByteSize() uintptr {
	return SetOf[S]().BufferByteSize()
}

// Alignment returns Set.Alignment.
func (x *Variant[S]) Alignment() uintptr {
	return SetOf[S]().Alignment()
}

// IsCopyable returns Set.IsCopyable.
func (x *Variant[S]) IsCopyable() bool {
	return SetOf[S]().IsCopyable()
}

// IsNoFailCopyable returns Set.IsNoFailCopyable.
func (x *Variant[S]) IsNoFailCopyable() bool {
	return SetOf[S]().IsNoFailCopyable()
}

// IsMovable returns Set.IsMovable.
func (x *Variant[S]) IsMovable() bool {
	return SetOf[S]().IsMovable()
}

// IsNoFailMovable returns Set.IsNoFailMovable.
func (x *Variant[S]) IsNoFailMovable() bool {
	return SetOf[S]().IsNoFailMovable()
}

// DestructorComplexity returns the resolved destruction policy, which is
// always one of PolicyLinear or PolicyConstant.
func (x *Variant[S]) DestructorComplexity() Policy {
	if x.complexity == PolicyAuto {
		x.complexity = SetOf[S]().Complexity(x.policy, x.threshold)
	}
	return x.complexity
}

// Type returns the type of the active alternative, or nil if invalid.
func (x *Variant[S]) Type() reflect.Type {
	return x.activeType(SetOf[S]())
}

// Value returns a (shallow) copy of the active value, or nil if invalid.
func (x *Variant[S]) Value() any {
	set := SetOf[S]()
	if !x.st.valid(set) {
		return nil
	}
	return set.alts[x.st.tag].ops.value(x.st.live(set))
}

// Visit calls fn with the index and a (shallow) copy of the active value,
// returning false, without calling fn, if invalid.
func (x *Variant[S]) Visit(fn func(index int, value any)) bool {
	set := SetOf[S]()
	if !x.st.valid(set) {
		return false
	}
	fn(x.st.tag, set.alts[x.st.tag].ops.value(x.st.live(set)))
	return true
}

// Print writes the active value to w, using its own formatting (see
// fmt.Stringer and fmt.Formatter). An *AccessError wrapping
// ErrInvalidAccess is returned if invalid.
func (x *Variant[S]) Print(w io.Writer) error {
	set := SetOf[S]()
	if !x.st.valid(set) {
		return &AccessError{Op: `print`, Err: ErrInvalidAccess}
	}
	return lookup(set.dispatch().print, x.st.tag)(w, x.st.live(set))
}

// String implements fmt.Stringer, using Print. Invalid variants are
// formatted as "<invalid>".
func (x *Variant[S]) String() string {
	var b strings.Builder
	if err := x.Print(&b); err != nil {
		return `<invalid>`
	}
	return b.String()
}

// Destroy destroys the active value, leaving x invalid, if the set is not
// AllFundamental (otherwise it has no effect). Use Assign or Emplace to
// reuse x.
func (x *Variant[S]) Destroy() {
	x.st.destroyActive(SetOf[S](), x.DestructorComplexity())
}

// CopyFrom destroys the active value of x, and replaces it with a copy of
// the active value of src. If src is invalid, x will be invalid. If the copy
// fails, x is left invalid, and the error is returned unchanged.
// ErrNotCopyable is returned, without modifying x, if the set is not
// IsCopyable. Copying from x to itself has no effect.
func (x *Variant[S]) CopyFrom(src *Variant[S]) error {
	if x == src {
		return nil
	}
	set := SetOf[S]()
	if !set.copyable {
		return ErrNotCopyable
	}
	x.st.destroyActive(set, x.DestructorComplexity())
	return x.st.copyFrom(set, &src.st)
}

// MoveFrom destroys the active value of x, and replaces it with the active
// value of src. The source is left invalid (its value is never destroyed),
// unless the set is AllFundamental, in which case it is unchanged. If src is
// invalid, x will be invalid. ErrNotMovable is returned, without modifying x, if the set is not
// IsMovable. Moving from x to itself has no effect.
func (x *Variant[S]) MoveFrom(src *Variant[S]) error {
	if x == src {
		return nil
	}
	set := SetOf[S]()
	if !set.movable {
		return ErrNotMovable
	}
	x.st.destroyActive(set, x.DestructorComplexity())
	x.st.moveFrom(set, &src.st)
	return nil
}

// Clone returns a new Variant, with the same configuration as x, holding a
// copy of the active value. See also CopyFrom.
func (x *Variant[S]) Clone() (*Variant[S], error) {
	set := SetOf[S]()
	if !set.copyable {
		return nil, ErrNotCopyable
	}
	v := Variant[S]{
		threshold:  x.threshold,
		policy:     x.policy,
		complexity: x.complexity,
	}
	if err := v.st.copyFrom(set, &x.st); err != nil {
		return nil, err
	}
	return &v, nil
}

// Swap exchanges the values (but not the configuration) of x and other,
// without copying, moving, or destroying either. Sets that are not IsMovable
// are never Inline, so pointers to pinned values remain valid.
func (x *Variant[S]) Swap(other *Variant[S]) {
	x.st, other.st = other.st, x.st
}

// GoString implements fmt.GoStringer, e.g. for the %#v verb.
func (x *Variant[S]) GoString() string {
	set := SetOf[S]()
	if !x.st.valid(set) {
		return fmt.Sprintf(`%s(<invalid>)`, set)
	}
	return fmt.Sprintf(`%s(%d: %#v)`, set, x.st.tag, x.Value())
}

func (x *Variant[S]) activeType(set *Set) reflect.Type {
	if !x.st.valid(set) {
		return nil
	}
	return set.alts[x.st.tag].typ
}

// Lock is a no-op used by -copylocks checker from `go vet`.
func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
