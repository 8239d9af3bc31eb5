package seq

import "golang.org/x/exp/constraints"

// Store is the growable backing primitive a Sequence owns. It is an ordered,
// random-access buffer; the sequence layers its own growth, default-value,
// and rotation semantics on top, so a store only needs the five operations
// below.
//
// Indices passed to At and Set are always in [0, Len()); the sequence never
// hands a store an out-of-range index.
type Store[V constraints.Integer] interface {
	// Len returns the number of stored elements.
	Len() int
	// At returns the element at index i.
	At(i int) V
	// Set replaces the element at index i.
	Set(i int, v V)
	// Append adds v after the last element.
	Append(v V)
	// Truncate drops elements from the tail so that Len() == n. n is always
	// in [0, Len()].
	Truncate(n int)
	// Fresh returns a new, empty store of the same kind. Used when a
	// sequence shrinks to zero: storage is replaced, not truncated, so any
	// held capacity is released.
	Fresh() Store[V]
}

// Reserver is the optional pre-reservation capability. Stores that can grow
// their capacity ahead of a bulk extension implement it; the sequence probes
// for it with a type assertion and silently skips the step otherwise.
type Reserver interface {
	// Reserve ensures capacity for at least n elements without changing Len.
	Reserve(n int)
}

// Capper is the optional capacity-reporting capability. Sequences over
// stores without it report their length as their capacity.
type Capper interface {
	Cap() int
}

// SliceStore is the default Store: a plain slice. It implements both the
// Reserver and Capper capabilities.
type SliceStore[V constraints.Integer] struct {
	elems []V
}

// NewSliceStore returns a slice-backed store holding vals.
func NewSliceStore[V constraints.Integer](vals ...V) *SliceStore[V] {
	s := &SliceStore[V]{}
	if len(vals) > 0 {
		s.elems = append(s.elems, vals...)
	}
	return s
}

func (s *SliceStore[V]) Len() int        { return len(s.elems) }
func (s *SliceStore[V]) At(i int) V      { return s.elems[i] }
func (s *SliceStore[V]) Set(i int, v V)  { s.elems[i] = v }
func (s *SliceStore[V]) Append(v V)      { s.elems = append(s.elems, v) }
func (s *SliceStore[V]) Truncate(n int)  { s.elems = s.elems[:n] }
func (s *SliceStore[V]) Fresh() Store[V] { return &SliceStore[V]{} }

// Cap returns the capacity of the underlying slice.
func (s *SliceStore[V]) Cap() int { return cap(s.elems) }

// Reserve grows the underlying capacity to at least n. It never shrinks.
func (s *SliceStore[V]) Reserve(n int) {
	if n <= cap(s.elems) {
		return
	}
	buf := make([]V, len(s.elems), n)
	copy(buf, s.elems)
	s.elems = buf
}

// RingStore is a deque-style Store backed by a circular buffer. It
// implements neither Reserver nor Capper; sequences over it fall back to
// the probe defaults.
type RingStore[V constraints.Integer] struct {
	buf  []V
	head int
	n    int
}

// NewRingStore returns a ring-buffer store holding vals.
func NewRingStore[V constraints.Integer](vals ...V) *RingStore[V] {
	r := &RingStore[V]{}
	for _, v := range vals {
		r.Append(v)
	}
	return r
}

func (r *RingStore[V]) Len() int { return r.n }

func (r *RingStore[V]) At(i int) V {
	return r.buf[(r.head+i)%len(r.buf)]
}

func (r *RingStore[V]) Set(i int, v V) {
	r.buf[(r.head+i)%len(r.buf)] = v
}

func (r *RingStore[V]) Append(v V) {
	if r.n == len(r.buf) {
		r.grow(r.n + 1)
	}
	r.buf[(r.head+r.n)%len(r.buf)] = v
	r.n++
}

func (r *RingStore[V]) Truncate(n int) { r.n = n }

func (r *RingStore[V]) Fresh() Store[V] { return &RingStore[V]{} }

// grow relinearizes the ring into a larger buffer.
func (r *RingStore[V]) grow(min int) {
	c := len(r.buf) * 2
	if c < 8 {
		c = 8
	}
	if c < min {
		c = min
	}
	buf := make([]V, c)
	for i := 0; i < r.n; i++ {
		buf[i] = r.buf[(r.head+i)%len(r.buf)]
	}
	r.buf = buf
	r.head = 0
}
