package variant

import (
	"unsafe"
)

const inlineWords = 4

const (
	inlineSize  = unsafe.Sizeof([inlineWords]uint64{})
	inlineAlign = unsafe.Alignof([inlineWords]uint64{})
)

// storage is the tagged storage region of a variant. Exactly one value is
// live, identified by tag, unless tag is the number of alternatives (the
// invalid sentinel), which is only possible if the set is not
// Set.AllFundamental.
//
// If the set is Set.Inline, the live value occupies the start of words,
// otherwise it occupies ref, which is nil only if the value has not yet
// been materialized (i.e. the zero value of alternative 0), or there is no
// live value.
//
// The set is not stored, it must always be the same, for a given storage.
type storage struct {
	words [inlineWords]uint64
	ref   unsafe.Pointer
	tag   int
}

func (x *storage) valid(set *Set) bool {
	return x.tag != len(set.alts)
}

// live returns a pointer to the live value, which must exist.
func (x *storage) live(set *Set) unsafe.Pointer {
	if set.inline {
		return unsafe.Pointer(&x.words)
	}
	if x.ref == nil {
		x.ref = set.alts[x.tag].ops.alloc()
	}
	return x.ref
}

// slot prepares storage for a new value of alternative i, returning a
// pointer to it. There must be no live value (see destroyActive), unless the
// set is AllFundamental. The tag is not modified.
func (x *storage) slot(set *Set, i int) unsafe.Pointer {
	if set.inline {
		return unsafe.Pointer(&x.words)
	}
	x.ref = set.alts[i].ops.alloc()
	return x.ref
}

// release discards a slot allocated via slot, after a failed construction.
func (x *storage) release(set *Set) {
	if set.inline {
		x.words = [inlineWords]uint64{}
	} else {
		x.ref = nil
	}
	x.tag = len(set.alts)
}

// destroyActive destroys the live value, if any, leaving the storage
// invalid. It is a no-op if the set is AllFundamental.
func (x *storage) destroyActive(set *Set, complexity Policy) {
	if set.allFundamental || !x.valid(set) {
		return
	}
	set.destroy(complexity, x.tag, x.live(set))
	x.release(set)
}

// copyFrom copy-constructs the live value of src, into x, which must have
// been destroyed. On failure, x is left invalid.
func (x *storage) copyFrom(set *Set, src *storage) error {
	if !src.valid(set) {
		x.release(set)
		return nil
	}
	if set.allFundamental {
		// all plain copies, which can't fail
		x.words = src.words
		x.tag = src.tag
		return nil
	}
	tag := src.tag
	if err := lookup(set.dispatch().copy, tag)(x.slot(set, tag), src.live(set)); err != nil {
		x.release(set)
		return err
	}
	x.tag = tag
	return nil
}

// moveFrom move-constructs the live value of src, into x, which must have
// been destroyed. The source is left invalid, unless the set is
// AllFundamental, in which case it is unchanged.
func (x *storage) moveFrom(set *Set, src *storage) {
	if !src.valid(set) {
		x.release(set)
		return
	}
	if set.allFundamental {
		x.words = src.words
		x.tag = src.tag
		return
	}
	tag := src.tag
	lookup(set.dispatch().move, tag)(x.slot(set, tag), src.live(set))
	x.tag = tag
	// ownership was transferred, so there is nothing left to destroy
	src.release(set)
}

// place constructs value as alternative i. There must be no live value,
// unless the set is AllFundamental.
func place[T any](x *storage, set *Set, i int, value T) {
	*(*T)(x.slot(set, i)) = value
	x.tag = i
}
