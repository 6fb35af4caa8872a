package dialectcsv

// =============================================================================
// Field Buffer - Growable byte accumulator with small-buffer optimization
// =============================================================================

const (
	// inlineBufSize is the capacity of the fixed inline storage. Fields
	// no longer than this never touch the heap.
	inlineBufSize = 128

	// maxBufferCap is the absolute capacity cap. A growth request past
	// this point fails with ErrBufferLimit instead of wrapping.
	maxBufferCap = 1 << 30
)

// fieldBuffer accumulates the bytes of the field currently being parsed.
// It starts on fixed inline storage and is promoted, one-way, to a
// heap-backed slice on overflow. Capacity never shrinks; reset only drops
// the length.
type fieldBuffer struct {
	inline [inlineBufSize]byte
	heap   []byte // nil until promoted
	n      int
}

// len returns the number of accumulated bytes.
func (b *fieldBuffer) len() int {
	return b.n
}

// bytes returns the accumulated bytes. The slice aliases the buffer's
// storage and is invalidated by the next appendByte or reset.
func (b *fieldBuffer) bytes() []byte {
	if b.heap != nil {
		return b.heap[:b.n]
	}
	return b.inline[:b.n]
}

// appendByte adds one byte, growing the storage as needed.
func (b *fieldBuffer) appendByte(c byte) error {
	switch {
	case b.heap == nil && b.n < inlineBufSize:
		b.inline[b.n] = c
		b.n++
		return nil
	case b.heap == nil:
		// Promote to heap storage, copying the inline bytes.
		h := make([]byte, 2*inlineBufSize)
		copy(h, b.inline[:b.n])
		b.heap = h
	case b.n == len(b.heap):
		next, ok := growCap(len(b.heap))
		if !ok {
			return ErrBufferLimit
		}
		h := make([]byte, next)
		copy(h, b.heap)
		b.heap = h
	}
	b.heap[b.n] = c
	b.n++
	return nil
}

// growCap returns the doubled capacity, capped at maxBufferCap.
// ok is false when cur has already reached the cap.
func growCap(cur int) (next int, ok bool) {
	if cur >= maxBufferCap {
		return 0, false
	}
	next = cur * 2
	if next > maxBufferCap {
		next = maxBufferCap
	}
	return next, true
}

// reset drops the accumulated bytes but retains capacity.
func (b *fieldBuffer) reset() {
	b.n = 0
}

// release returns heap storage to the allocator and reverts to the
// inline storage.
func (b *fieldBuffer) release() {
	b.heap = nil
	b.n = 0
}
