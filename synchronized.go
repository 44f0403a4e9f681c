package variant

import (
	"io"
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/joeycumines/logiface"
)

// Synchronized wraps a Variant with a mutex, which is held for the full
// duration of every operation. Operations involving two instances acquire
// both locks, in a consistent order, see CopyFrom.
//
// The zero value is ready to use, and holds the zero value of the first
// alternative. A Synchronized must not be copied after first use.
type Synchronized[S Alternatives] struct {
	logger *logiface.Logger[logiface.Event]
	v      Variant[S]
	id     atomic.Uint64 // lock ordering, assigned on first use
	mu     sync.Mutex
}

// lastSynchronizedID is the source of Synchronized ids, see
// Synchronized.lockID.
var lastSynchronizedID atomic.Uint64

// NewSynchronized initializes a Synchronized, holding value. A panic will
// occur if value's type is not an alternative of S, or invalid options are
// provided.
func NewSynchronized[S Alternatives, T any](value T, options ...Option) *Synchronized[S] {
	x := NewSynchronizedDefault[S](options...)
	Assign(&x.v, value)
	return x
}

// NewSynchronizedDefault initializes a Synchronized, holding the zero value
// of the first alternative.
func NewSynchronizedDefault[S Alternatives](options ...Option) *Synchronized[S] {
	cfg, err := resolveOptions(options)
	if err != nil {
		panic(err)
	}
	var x Synchronized[S]
	x.v.init(cfg)
	x.logger = cfg.logger
	return &x
}

// GetSync returns a (shallow) copy of the live value, if T is the active
// alternative, otherwise an *AccessError wrapping ErrBadAccess. Use
// Synchronized.Do to access the value in place, e.g. for alternatives that
// must not be copied.
func GetSync[T any, S Alternatives](x *Synchronized[S]) (T, error) {
	x.mu.Lock()
	defer x.mu.Unlock()
	p, err := Get[T](&x.v)
	if err != nil {
		var zero T
		return zero, err
	}
	return *p, nil
}

// HoldsSync is the Synchronized equivalent of Holds.
func HoldsSync[T any, S Alternatives](x *Synchronized[S]) bool {
	x.mu.Lock()
	defer x.mu.Unlock()
	return Holds[T](&x.v)
}

// AssignSync is the Synchronized equivalent of Assign.
func AssignSync[T any, S Alternatives](x *Synchronized[S], value T) {
	x.mu.Lock()
	defer x.mu.Unlock()
	Assign(&x.v, value)
}

// EmplaceSync is the Synchronized equivalent of Emplace. The lock is held
// while ctor is called, which must not access x.
func EmplaceSync[T any, S Alternatives](x *Synchronized[S], ctor func() (T, error)) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	err := Emplace(&x.v, ctor)
	if err != nil {
		x.logger.Debug().
			Str(`type`, reflect.TypeFor[T]().String()).
			Bool(`valid`, x.v.IsValid()).
			Err(err).
			Log(`variant: emplace failed`)
	}
	return err
}

// Do calls fn with the wrapped Variant, while holding the lock. The Variant
// (and any pointers obtained from it) must not be retained after fn returns.
func (x *Synchronized[S]) Do(fn func(v *Variant[S]) error) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	return fn(&x.v)
}

// Index is the Synchronized equivalent of Variant.Index.
func (x *Synchronized[S]) Index() int {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.v.Index()
}

// IsValid is the Synchronized equivalent of Variant.IsValid.
func (x *Synchronized[S]) IsValid() bool {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.v.IsValid()
}

// Value is the Synchronized equivalent of Variant.Value.
func (x *Synchronized[S]) Value() any {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.v.Value()
}

// DestructorComplexity is the Synchronized equivalent of
// Variant.DestructorComplexity.
func (x *Synchronized[S]) DestructorComplexity() Policy {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.v.DestructorComplexity()
}

// Print is the Synchronized equivalent of Variant.Print. The lock is held
// while writing to w.
func (x *Synchronized[S]) Print(w io.Writer) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.v.Print(w)
}

// String is the Synchronized equivalent of Variant.String.
func (x *Synchronized[S]) String() string {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.v.String()
}

// Destroy is the Synchronized equivalent of Variant.Destroy.
func (x *Synchronized[S]) Destroy() {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.v.Destroy()
}

// Snapshot returns a copy of the wrapped Variant, see Variant.Clone.
func (x *Synchronized[S]) Snapshot() (*Variant[S], error) {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.v.Clone()
}

// CopyFrom is the Synchronized equivalent of Variant.CopyFrom. Both locks
// are held, acquired in order of a stable, per-instance id, which avoids
// deadlock with a concurrent operation in the opposite direction.
func (x *Synchronized[S]) CopyFrom(src *Synchronized[S]) error {
	if x == src {
		return nil
	}
	unlock := x.lockPair(src)
	defer unlock()
	err := x.v.CopyFrom(&src.v)
	if err != nil {
		x.logger.Debug().
			Bool(`valid`, x.v.IsValid()).
			Err(err).
			Log(`variant: copy failed`)
	}
	return err
}

// MoveFrom is the Synchronized equivalent of Variant.MoveFrom, see also
// CopyFrom.
func (x *Synchronized[S]) MoveFrom(src *Synchronized[S]) error {
	if x == src {
		return nil
	}
	unlock := x.lockPair(src)
	defer unlock()
	err := x.v.MoveFrom(&src.v)
	if err != nil {
		x.logger.Debug().
			Err(err).
			Log(`variant: move failed`)
	}
	return err
}

// Swap is the Synchronized equivalent of Variant.Swap, see also CopyFrom.
func (x *Synchronized[S]) Swap(other *Synchronized[S]) {
	if x == other {
		return
	}
	unlock := x.lockPair(other)
	defer unlock()
	x.v.Swap(&other.v)
}

// lockPair locks both x and other (which must be distinct), returning a
// function that unlocks both.
func (x *Synchronized[S]) lockPair(other *Synchronized[S]) (unlock func()) {
	first, second := x, other
	if first.lockID() > second.lockID() {
		first, second = second, first
	}
	first.mu.Lock()
	second.mu.Lock()
	x.logger.Trace().
		Int(`first`, int(first.lockID())).
		Int(`second`, int(second.lockID())).
		Log(`variant: acquired lock pair`)
	return func() {
		second.mu.Unlock()
		first.mu.Unlock()
	}
}

// lockID returns the id of x, assigning it if necessary. Ids are unique
// within the process, and never change.
func (x *Synchronized[S]) lockID() uint64 {
	if id := x.id.Load(); id != 0 {
		return id
	}
	x.id.CompareAndSwap(0, lastSynchronizedID.Add(1))
	return x.id.Load()
}
