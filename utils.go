package main

import "io"

// -----------------------------------------------------------------------------
// BitWriter / BitReader
// -----------------------------------------------------------------------------

// BitWriter packs variable-width values (MSB-first) into an io.Writer.
// Completed bytes are buffered and handed to the writer in batches.
type BitWriter struct {
	w   io.Writer
	acc uint32 // bit accumulator, newest bits at the bottom
	n   uint   // live bits in acc, 0..7 between calls
	out []byte
	err error
}

func NewBitWriter(w io.Writer) *BitWriter {
	return &BitWriter{w: w, out: make([]byte, 0, 256)}
}

// WriteBits appends the low nbits of v, most significant bit first.
// nbits must not exceed 24.
func (bw *BitWriter) WriteBits(v uint32, nbits uint) error {
	if bw.err != nil {
		return bw.err
	}
	bw.acc = bw.acc<<nbits | v&(1<<nbits-1)
	bw.n += nbits
	for bw.n >= 8 {
		bw.n -= 8
		bw.out = append(bw.out, byte(bw.acc>>bw.n))
	}
	if len(bw.out) >= 256 {
		return bw.drain()
	}
	return nil
}

// Flush pads the leftover bits with zeros up to a byte boundary and
// writes everything buffered to the underlying writer.
func (bw *BitWriter) Flush() error {
	if bw.err != nil {
		return bw.err
	}
	if bw.n > 0 {
		bw.out = append(bw.out, byte(bw.acc<<(8-bw.n)))
		bw.acc = 0
		bw.n = 0
	}
	return bw.drain()
}

// Reset re-targets the writer at w and clears all bit state.
func (bw *BitWriter) Reset(w io.Writer) {
	bw.w = w
	bw.acc = 0
	bw.n = 0
	bw.out = bw.out[:0]
	bw.err = nil
}

func (bw *BitWriter) drain() error {
	if len(bw.out) == 0 {
		return nil
	}
	_, err := bw.w.Write(bw.out)
	bw.out = bw.out[:0]
	if err != nil {
		bw.err = err
	}
	return err
}

// BitReader unpacks MSB-first values from byte chunks fed one at a time.
// When the current chunk runs out mid-value it reports !ok and keeps the
// accumulator, so reading resumes seamlessly after the next Feed. This
// is what lets the decoder run on input arriving in arbitrary pieces.
type BitReader struct {
	data []byte
	pos  int
	acc  uint32
	n    uint // live bits in acc
}

// Feed replaces the current chunk. Any previous chunk must have been
// consumed (ReadBits returned !ok).
func (br *BitReader) Feed(p []byte) {
	br.data = p
	br.pos = 0
}

// ReadBits returns the next nbits as an unsigned value, or ok=false if
// fewer than nbits are available. nbits must not exceed 24.
func (br *BitReader) ReadBits(nbits uint) (uint32, bool) {
	for br.n < nbits {
		if br.pos >= len(br.data) {
			return 0, false
		}
		br.acc = br.acc<<8 | uint32(br.data[br.pos])
		br.pos++
		br.n += 8
	}
	br.n -= nbits
	return br.acc >> br.n & (1<<nbits - 1), true
}

// pending returns the count and value of the bits left in the
// accumulator. Used to tell end-of-stream padding from truncation.
func (br *BitReader) pending() (uint, uint32) {
	return br.n, br.acc & (1<<br.n - 1)
}
