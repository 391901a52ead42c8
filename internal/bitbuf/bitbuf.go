// Package bitbuf slices single bits out of a 32-bit integer stream.
package bitbuf

// Source is anything that yields uniformly distributed 32-bit words.
type Source interface {
	Uint32() uint32
}

// Reader buffers one word from its source and hands it out a bit at a time,
// least significant bit first. A Reader borrows its source: every refill
// advances the source's state.
type Reader struct {
	src  Source
	bits uint32
	left uint
}

// NewReader returns a Reader with an empty buffer. Nothing is drawn from src
// until the first call to Bit.
func NewReader(src Source) *Reader {
	return &Reader{src: src}
}

// Bit returns the next bit (0 or 1), refilling from the source when all 32
// buffered bits have been consumed.
func (r *Reader) Bit() uint32 {
	if r.left == 0 {
		r.bits = r.src.Uint32()
		r.left = 32
	}
	bit := r.bits & 1
	r.bits >>= 1
	r.left--
	return bit
}

// Remaining reports how many buffered bits are left before the next refill.
func (r *Reader) Remaining() int {
	return int(r.left)
}

// Source returns the underlying source so that callers can draw whole words
// from the same stream without going through the bit buffer.
func (r *Reader) Source() Source {
	return r.src
}
