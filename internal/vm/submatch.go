package vm

// unset marks a submatch slot that has never been written.
const unset = -1

// sub is a reference-counted, copy-on-write capture vector (spec §4.6,
// §9 "Refcounted capture cells"). Threads share a sub until one of them
// needs to write a slot; at that point it is cloned (or mutated in place
// if this thread holds the only reference).
type sub struct {
	refs  int
	slots []int
}

// pool is the free-list allocator for sub values, owned by one Matcher and
// shared across nested (procedure/lookaround) executions of it (spec §9:
// "the free list is the single allocator state owned by the matcher").
type pool struct {
	nslots int
	free   []*sub
}

func newPool(nslots int) *pool { return &pool{nslots: nslots} }

func (p *pool) alloc() *sub {
	if n := len(p.free); n > 0 {
		s := p.free[n-1]
		p.free = p.free[:n-1]
		s.refs = 1
		return s
	}
	slots := make([]int, p.nslots)
	for i := range slots {
		slots[i] = unset
	}
	return &sub{refs: 1, slots: slots}
}

// fresh returns a new sub with every slot unset.
func (p *pool) fresh() *sub {
	s := p.alloc()
	for i := range s.slots {
		s.slots[i] = unset
	}
	return s
}

// retain increments s's reference count and returns it, for the SplitLo/
// SplitHi style fan-out where one thread's sub is handed to two successor
// threads.
func (p *pool) retain(s *sub) *sub {
	s.refs++
	return s
}

// release drops a reference, returning s to the free list once unreferenced.
func (p *pool) release(s *sub) {
	s.refs--
	if s.refs == 0 {
		p.free = append(p.free, s)
	}
}

// setSlot implements copy-on-write update of slot i to v: mutate in place
// if s is uniquely held, otherwise clone first.
func (p *pool) setSlot(s *sub, i, v int) *sub {
	if s.refs == 1 {
		s.slots[i] = v
		return s
	}
	clone := p.alloc()
	copy(clone.slots, s.slots)
	p.release(s)
	clone.slots[i] = v
	return clone
}

// clone returns an independent copy of s's slots, for reading out a result
// (e.g. reporting spans) without keeping the pooled value alive.
func (s *sub) clone() []int {
	out := make([]int, len(s.slots))
	copy(out, s.slots)
	return out
}
