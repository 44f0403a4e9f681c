package variant

import (
	"io"
	"unsafe"

	"github.com/joeycumines/go-variant/internal/fixedarray"
)

type (
	destroyFunc func(p unsafe.Pointer)
	copyFunc    func(dst, src unsafe.Pointer) error
	moveFunc    func(dst, src unsafe.Pointer)
	printFunc   func(w io.Writer, p unsafe.Pointer) error

	// tables are the dispatch tables of a Set, indexed by tag, see
	// Set.dispatch. The copy and move tables are nil unless every
	// alternative supports the operation.
	tables struct {
		destroy *fixedarray.Array[destroyFunc]
		copy    *fixedarray.Array[copyFunc]
		move    *fixedarray.Array[moveFunc]
		print   *fixedarray.Array[printFunc]
	}
)

// dispatch returns the tables for the set, building them on first use. The
// tables are immutable, once built, and shared by every variant of the set.
func (x *Set) dispatch() *tables {
	x.tablesOnce.Do(func() {
		t := tables{
			destroy: buildTable(x.alts, func(a *Alternative) destroyFunc { return a.ops.destroy }),
			print:   buildTable(x.alts, func(a *Alternative) printFunc { return a.ops.print }),
		}
		if x.copyable {
			t.copy = buildTable(x.alts, func(a *Alternative) copyFunc { return a.ops.copy })
		}
		if x.movable {
			t.move = buildTable(x.alts, func(a *Alternative) moveFunc { return a.ops.move })
		}
		x.tables = &t
	})
	return x.tables
}

// buildTable maps each alternative's index to the thunk returned by op.
func buildTable[F any](alts []Alternative, op func(a *Alternative) F) *fixedarray.Array[F] {
	table := fixedarray.New[F](len(alts))
	s := table.Data()
	for i := range alts {
		s[i] = op(&alts[i])
	}
	return table
}

// lookup returns the thunk for tag, which must identify a live alternative.
func lookup[F any](table *fixedarray.Array[F], tag int) F {
	return table.At(fixedarray.Index(tag, table.Size()))
}

// destroyLinear is the PolicyLinear counterpart to the destroy table.
func (x *Set) destroyLinear(tag int, p unsafe.Pointer) {
	for i := range x.alts {
		if i == tag {
			x.alts[i].ops.destroy(p)
			return
		}
	}
	panic(`variant: destroy: invalid tag`)
}

func (x *Set) destroy(complexity Policy, tag int, p unsafe.Pointer) {
	if complexity == PolicyConstant {
		lookup(x.dispatch().destroy, tag)(p)
		return
	}
	x.destroyLinear(tag, p)
}
