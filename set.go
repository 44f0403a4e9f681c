package variant

import (
	"fmt"
	"reflect"
	"sync"
	"unsafe"

	"golang.org/x/exp/slices"
)

// Set holds the facts about an alternative set, computed once, see SetOf.
type Set struct {
	alts           []Alternative
	name           string
	tables         *tables
	tablesOnce     sync.Once
	maxSize        uintptr
	maxAlign       uintptr
	nonTrivial     int
	allFundamental bool
	inline         bool
	copyable       bool
	noFailCopyable bool
	movable        bool
}

// sets caches *Set per Alternatives type (reflect.Type -> *Set)
var sets sync.Map

// SetOf returns the (shared, immutable) Set for S, building it on first use.
// It panics if S has no alternatives, or contains duplicates.
func SetOf[S Alternatives]() *Set {
	key := reflect.TypeFor[S]()
	if v, ok := sets.Load(key); ok {
		return v.(*Set)
	}
	var s S
	set := NewSet(s.Alternatives()...)
	set.name = key.String()
	v, _ := sets.LoadOrStore(key, set)
	return v.(*Set)
}

// NewSet builds a Set from the given alternatives, panicking if there are
// none, or if any type appears more than once. Most callers should use
// SetOf, which caches the result.
func NewSet(alts ...Alternative) *Set {
	if len(alts) == 0 {
		panic(`variant: set must have at least one alternative`)
	}

	x := Set{
		alts:           slices.Clone(alts),
		maxAlign:       1,
		allFundamental: true,
		copyable:       true,
		noFailCopyable: true,
		movable:        true,
	}

	pointerFree := true
	for i, a := range x.alts {
		if a.typ == nil {
			panic(fmt.Sprintf(`variant: alternative %d: not initialized, use Alt`, i))
		}
		if j := slices.IndexFunc(x.alts[:i], func(b Alternative) bool { return b.typ == a.typ }); j >= 0 {
			panic(fmt.Sprintf(`variant: duplicate alternative: %s (indexes %d and %d)`, a.typ, j, i))
		}
		x.maxSize = max(x.maxSize, a.size)
		x.maxAlign = max(x.maxAlign, a.align)
		if !a.fundamental {
			x.allFundamental = false
			x.nonTrivial++
		}
		pointerFree = pointerFree && a.pointerFree
		x.copyable = x.copyable && a.Copyable()
		x.noFailCopyable = x.noFailCopyable && a.NoFailCopyable()
		x.movable = x.movable && a.Movable()
	}

	// pinned values must keep their address, see Variant.Swap
	x.inline = pointerFree && x.movable &&
		x.maxSize <= inlineSize &&
		x.maxAlign <= inlineAlign

	x.name = `Set` + fmt.Sprint(x.Types())

	return &x
}

// Len returns the number of alternatives, N, which is also the tag value
// used to indicate an invalid variant.
func (x *Set) Len() int { return len(x.alts) }

// Alternative returns the alternative at index i, panicking if it is out of
// range.
func (x *Set) Alternative(i int) Alternative { return x.alts[i] }

// Type returns the type of the alternative at index i.
func (x *Set) Type(i int) reflect.Type { return x.alts[i].typ }

// Types returns the types of all alternatives, in index order.
func (x *Set) Types() []reflect.Type {
	types := make([]reflect.Type, len(x.alts))
	for i, a := range x.alts {
		types[i] = a.typ
	}
	return types
}

// IndexOf returns the index of typ, if it is an alternative.
func (x *Set) IndexOf(typ reflect.Type) (int, bool) {
	if i := slices.IndexFunc(x.alts, func(a Alternative) bool { return a.typ == typ }); i >= 0 {
		return i, true
	}
	return 0, false
}

// MaxSize returns the largest size of any alternative, in bytes.
func (x *Set) MaxSize() uintptr { return x.maxSize }

// MaxAlign returns the largest alignment of any alternative, in bytes.
func (x *Set) MaxAlign() uintptr { return x.maxAlign }

// AllFundamental reports whether every alternative is fundamental, in which
// case variants of this set can never be invalid.
func (x *Set) AllFundamental() bool { return x.allFundamental }

// NonTrivial returns the number of alternatives that are not fundamental.
func (x *Set) NonTrivial() int { return x.nonTrivial }

// FractionNonTrivial returns NonTrivial divided by Len.
func (x *Set) FractionNonTrivial() float64 {
	return float64(x.nonTrivial) / float64(len(x.alts))
}

// Inline reports whether values are placed directly in the variant's own
// buffer, which requires every alternative to be pointer-free, movable, and
// fit. Otherwise, each constructed value occupies a single heap slot.
func (x *Set) Inline() bool { return x.inline }

// BufferByteSize returns the number of bytes of the variant's storage that
// hold the active value: MaxSize, if Inline, otherwise the size of a
// pointer.
func (x *Set) BufferByteSize() uintptr {
	if x.inline {
		return x.maxSize
	}
	return unsafe.Sizeof(unsafe.Pointer(nil))
}

// Alignment returns the alignment guaranteed for the active value, which is
// MaxAlign.
func (x *Set) Alignment() uintptr { return x.maxAlign }

// IsCopyable reports whether every alternative is copyable.
func (x *Set) IsCopyable() bool { return x.copyable }

// IsNoFailCopyable reports whether every alternative is copyable, without
// the possibility of failure.
func (x *Set) IsNoFailCopyable() bool { return x.noFailCopyable }

// IsMovable reports whether every alternative is movable.
func (x *Set) IsMovable() bool { return x.movable }

// IsNoFailMovable is equivalent to IsMovable, moves cannot fail.
func (x *Set) IsNoFailMovable() bool { return x.movable }

// Complexity resolves the destruction policy, for this set. PolicyAuto is
// resolved using threshold, see WithAutoThreshold.
func (x *Set) Complexity(policy Policy, threshold Ratio) Policy {
	if policy != PolicyAuto {
		return policy
	}
	return autoComplexity(len(x.alts), x.nonTrivial, threshold)
}

// String returns a description of the set, e.g. "variant.Of2[int,string]".
func (x *Set) String() string { return x.name }

func (x *Set) mustIndex(typ reflect.Type) int {
	i, ok := x.IndexOf(typ)
	if !ok {
		panic(fmt.Sprintf(`variant: %s is not an alternative of %s`, typ, x))
	}
	return i
}

func indexFor[T any](set *Set) int {
	return set.mustIndex(reflect.TypeFor[T]())
}
