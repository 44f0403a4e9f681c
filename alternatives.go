package variant

import (
	"fmt"
	"io"
	"reflect"
	"sync"
	"unsafe"
)

type (
	// Alternatives models a closed set of alternative types, and is
	// implemented by the marker types Of1 through Of10. Custom sets (e.g. of
	// greater arity) may be defined by returning one Alt per type, in order.
	//
	// Implementations must be usable as their zero value, and must return
	// the same alternatives, every time.
	Alternatives interface {
		Alternatives() []Alternative
	}

	// Alternative describes a single type of an Alternatives set, see Alt.
	Alternative struct {
		typ         reflect.Type
		ops         alternativeOps
		size        uintptr
		align       uintptr
		copier      copier
		fundamental bool
		pointerFree bool
		destroyer   bool
		pinned      bool
	}

	// Destroyer may be implemented by alternatives (on either the value or
	// pointer receiver) that hold resources which must be released, when the
	// value is replaced, or the variant is destroyed.
	//
	// Destroy will not be called on a value that has been moved from, the
	// source variant is left invalid.
	Destroyer interface {
		Destroy()
	}

	// Cloner may be implemented by alternatives that require a deep copy,
	// when copied between variants. It takes precedence over FallibleCloner.
	Cloner[T any] interface {
		Clone() T
	}

	// FallibleCloner may be implemented by alternatives that require a deep
	// copy, where copying may fail. Any error is returned, unchanged, from
	// the copy operation.
	FallibleCloner[T any] interface {
		TryClone() (T, error)
	}

	alternativeOps struct {
		alloc   func() unsafe.Pointer
		destroy func(p unsafe.Pointer)
		copy    func(dst, src unsafe.Pointer) error
		move    func(dst, src unsafe.Pointer)
		print   func(w io.Writer, p unsafe.Pointer) error
		value   func(p unsafe.Pointer) any
	}

	copier int
)

const (
	copierNone copier = iota
	copierPlain
	copierClone
	copierTryClone
)

var (
	destroyerType = reflect.TypeFor[Destroyer]()
	lockerType    = reflect.TypeFor[sync.Locker]()
	formatterType = reflect.TypeFor[fmt.Formatter]()
	stringerType  = reflect.TypeFor[fmt.Stringer]()
)

// Alt describes T as an alternative. All facts are determined statically,
// from the type (not any value):
//
//   - Fundamental: T is a bool, integer, float or complex, and does not
//     implement Destroyer.
//   - Pinned (neither movable nor plainly copyable): *T implements
//     sync.Locker, which is the same convention used by go vet.
//   - Copyable: T implements Cloner[T] or FallibleCloner[T], or isn't pinned.
func Alt[T any]() Alternative {
	typ := reflect.TypeFor[T]()
	ptr := reflect.PointerTo(typ)

	a := Alternative{
		typ:         typ,
		size:        typ.Size(),
		align:       uintptr(typ.Align()),
		pointerFree: !hasPointers(typ),
		destroyer:   ptr.Implements(destroyerType),
		pinned:      ptr.Implements(lockerType),
	}
	a.fundamental = isScalar(typ.Kind()) && !a.destroyer

	switch {
	case ptr.Implements(reflect.TypeFor[Cloner[T]]()):
		a.copier = copierClone
	case ptr.Implements(reflect.TypeFor[FallibleCloner[T]]()):
		a.copier = copierTryClone
	case !a.pinned:
		a.copier = copierPlain
	}

	a.ops.alloc = func() unsafe.Pointer {
		return unsafe.Pointer(new(T))
	}

	a.ops.destroy = func(p unsafe.Pointer) {
		v := (*T)(p)
		if d, ok := any(v).(Destroyer); ok {
			d.Destroy()
		}
		var zero T
		*v = zero
	}

	switch a.copier {
	case copierPlain:
		a.ops.copy = func(dst, src unsafe.Pointer) error {
			*(*T)(dst) = *(*T)(src)
			return nil
		}
	case copierClone:
		a.ops.copy = func(dst, src unsafe.Pointer) error {
			*(*T)(dst) = any((*T)(src)).(Cloner[T]).Clone()
			return nil
		}
	case copierTryClone:
		a.ops.copy = func(dst, src unsafe.Pointer) error {
			v, err := any((*T)(src)).(FallibleCloner[T]).TryClone()
			if err != nil {
				return err
			}
			*(*T)(dst) = v
			return nil
		}
	}

	if !a.pinned {
		fundamental := a.fundamental
		a.ops.move = func(dst, src unsafe.Pointer) {
			s := (*T)(src)
			*(*T)(dst) = *s
			if !fundamental {
				// ownership was transferred, the source must not release it
				var zero T
				*s = zero
			}
		}
	}

	// prefer the value receiver, so e.g. %v output is unchanged
	if !typ.Implements(formatterType) && !typ.Implements(stringerType) &&
		(ptr.Implements(formatterType) || ptr.Implements(stringerType)) {
		a.ops.print = func(w io.Writer, p unsafe.Pointer) error {
			_, err := fmt.Fprint(w, (*T)(p))
			return err
		}
	} else {
		a.ops.print = func(w io.Writer, p unsafe.Pointer) error {
			_, err := fmt.Fprint(w, *(*T)(p))
			return err
		}
	}

	a.ops.value = func(p unsafe.Pointer) any {
		return *(*T)(p)
	}

	return a
}

// Type returns the reflect.Type of the alternative.
func (x Alternative) Type() reflect.Type { return x.typ }

// Size returns the size of the alternative, in bytes.
func (x Alternative) Size() uintptr { return x.size }

// Align returns the alignment of the alternative, in bytes.
func (x Alternative) Align() uintptr { return x.align }

// Fundamental reports whether the alternative is a scalar, which needs no
// destruction.
func (x Alternative) Fundamental() bool { return x.fundamental }

// Copyable reports whether the alternative may be copied between variants.
func (x Alternative) Copyable() bool { return x.copier != copierNone }

// NoFailCopyable reports whether copying the alternative cannot fail.
func (x Alternative) NoFailCopyable() bool {
	return x.copier == copierPlain || x.copier == copierClone
}

// Movable reports whether the alternative may be moved between variants.
func (x Alternative) Movable() bool { return !x.pinned }

func isScalar(kind reflect.Kind) bool {
	switch kind {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128:
		return true
	default:
		return false
	}
}

// hasPointers reports whether values of typ may contain pointers, that the
// garbage collector must be able to see.
func hasPointers(typ reflect.Type) bool {
	switch typ.Kind() {
	case reflect.Array:
		return typ.Len() != 0 && hasPointers(typ.Elem())
	case reflect.Struct:
		for i := 0; i < typ.NumField(); i++ {
			if hasPointers(typ.Field(i).Type) {
				return true
			}
		}
		return false
	default:
		return !isScalar(typ.Kind())
	}
}
