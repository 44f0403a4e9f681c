package variant

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
)

type (
	// resource is a non-trivial alternative that holds a pointer, so it is
	// never stored inline
	resource struct {
		destroyed *atomic.Int32
		name      string
	}

	// handle is a non-trivial alternative that is pointer-free, and small,
	// so it is stored inline
	handle int32

	// cloned implements Cloner, counting clones
	cloned struct {
		clones *int
		data   []int
	}

	// fallible implements FallibleCloner, failing if err is set
	fallible struct {
		err  error
		name string
	}

	// pinned must not be copied or moved (see Alt)
	pinned struct {
		mu    sync.Mutex
		value int
	}

	// stringer implements fmt.Stringer on the pointer receiver
	stringer struct {
		value int
	}

	// tests share this, so they must not run in parallel
	handleCounter struct {
		destroyed atomic.Int32
		last      atomic.Int32
	}
)

var handles handleCounter

var errBoom = errors.New(`boom`)

func (x *resource) Destroy() {
	if x.destroyed != nil {
		x.destroyed.Add(1)
	}
}

func (x handle) Destroy() {
	handles.destroyed.Add(1)
	handles.last.Store(int32(x))
}

func (x *handleCounter) reset() {
	x.destroyed.Store(0)
	x.last.Store(0)
}

func (x *cloned) Clone() cloned {
	*x.clones++
	return cloned{clones: x.clones, data: append([]int(nil), x.data...)}
}

func (x fallible) TryClone() (fallible, error) {
	if x.err != nil {
		return fallible{}, x.err
	}
	return fallible{name: x.name + ` (copy)`}, nil
}

func (x *pinned) Lock()   { x.mu.Lock() }
func (x *pinned) Unlock() { x.mu.Unlock() }

func (x *stringer) String() string {
	return fmt.Sprintf(`stringer(%d)`, x.value)
}

func assertPanics(t *testing.T, f func(), msg string) (r any) {
	t.Helper()
	defer func() {
		if r = recover(); r == nil {
			t.Errorf("%s", msg)
		}
	}()
	f()
	return
}
