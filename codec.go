// Adaptive-dictionary (LZW) byte-stream codec with variable-width codes.
// Codes start at 8 bits and grow as the dictionary fills; when the
// dictionary runs out of slots both sides reset it to the 256 literal
// entries at the same point of the code sequence, so the stream carries
// no widths, no markers and no framing at all.

package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

// Encoder compresses a byte stream into LZW codes. Feed input with
// Write; Close emits the pending code and the final padding. Not safe
// for concurrent use; one Encoder handles one stream end to end.
type Encoder struct {
	bw    *BitWriter
	dict  *encDict
	cur   Code // longest match so far; codeNil before the first byte
	width uint
}

// NewEncoder returns an encoder with the default dictionary size,
// writing compressed bytes to w.
func NewEncoder(w io.Writer) *Encoder {
	e, _ := NewEncoderDict(w, DefaultDictSize)
	return e
}

// NewEncoderDict returns an encoder with a dictionary of dictSize
// codes, 258..1<<24. Both sides of a stream must use the same size.
func NewEncoderDict(w io.Writer, dictSize int) (*Encoder, error) {
	if dictSize < minDictSize || dictSize > maxDictSize {
		return nil, fmt.Errorf("%w: %d", ErrDictSize, dictSize)
	}
	return &Encoder{
		bw:    NewBitWriter(w),
		dict:  newEncDict(dictSize),
		cur:   codeNil,
		width: 8,
	}, nil
}

// Write consumes p, extending the current match byte by byte and
// emitting a code each time a match ends. Output may lag input: codes
// reach the underlying writer in batches and on Close.
func (e *Encoder) Write(p []byte) (int, error) {
	for i, b := range p {
		if e.cur == codeNil {
			// the very first byte only seeds the match with its
			// own literal code, nothing is emitted for it
			e.cur = Code(b)
			continue
		}
		if nc := e.dict.find(e.cur, b); nc != codeNil {
			e.cur = nc
			continue
		}
		if err := e.bw.WriteBits(uint32(e.cur), e.width); err != nil {
			return i, err
		}
		if e.dict.add(e.cur, b) == codeNil {
			e.dict.reset()
			e.width = 8
		} else if e.dict.max == Code(1)<<e.width {
			// the new entry crossed the width boundary; the wider
			// width applies from the next emitted code on
			e.width++
		}
		e.cur = Code(b)
	}
	return len(p), nil
}

// Close emits the pending code and zero-pads the last byte. The code
// stream is complete only after Close.
func (e *Encoder) Close() error {
	if e.cur != codeNil {
		if err := e.bw.WriteBits(uint32(e.cur), e.width); err != nil {
			return err
		}
		e.cur = codeNil
	}
	return e.bw.Flush()
}

// Reset makes the encoder ready for a new stream written to w.
func (e *Encoder) Reset(w io.Writer) {
	e.bw.Reset(w)
	e.dict.reset()
	e.cur = codeNil
	e.width = 8
}

// Decoder reconstructs the original bytes from an LZW code stream.
// Write feeds compressed bytes in chunks of any size; decoded bytes go
// to the sink passed at construction. Close verifies the stream ended
// on a code boundary.
type Decoder struct {
	w     io.Writer
	br    BitReader
	dict  *decDict
	prev  Code // last received code; codeNil at start and after a reset
	width uint
	err   error
}

// NewDecoder returns a decoder with the default dictionary size,
// writing decoded bytes to w.
func NewDecoder(w io.Writer) *Decoder {
	d, _ := NewDecoderDict(w, DefaultDictSize)
	return d
}

// NewDecoderDict returns a decoder with a dictionary of dictSize codes.
// The size must match the one the stream was encoded with.
func NewDecoderDict(w io.Writer, dictSize int) (*Decoder, error) {
	if dictSize < minDictSize || dictSize > maxDictSize {
		return nil, fmt.Errorf("%w: %d", ErrDictSize, dictSize)
	}
	return &Decoder{
		w:     w,
		dict:  newDecDict(dictSize),
		prev:  codeNil,
		width: 8,
	}, nil
}

// Write decodes every complete code in p. A code split across chunk
// boundaries is reassembled when the next chunk arrives. Errors are
// sticky: after a wrong code or a sink failure the stream is dead.
func (d *Decoder) Write(p []byte) (int, error) {
	if d.err != nil {
		return 0, d.err
	}
	d.br.Feed(p)
	for {
		c, ok := d.br.ReadBits(d.width)
		if !ok {
			// out of input; bit state is kept for the next chunk
			return len(p), nil
		}
		if err := d.step(Code(c)); err != nil {
			d.err = err
			return d.br.pos, err
		}
	}
}

// step handles one received code: resolve, emit, and do the deferred
// insert for the previous code. The decoder creates each entry one
// code later than the encoder did, which is why a code equal to
// max+1 can be valid (the classic KwKwK case).
func (d *Decoder) step(c Code) error {
	switch {
	case c <= d.dict.max:
		s := d.dict.resolve(c)
		if _, err := d.w.Write(s); err != nil {
			return err
		}
		if d.prev != codeNil {
			if d.dict.add(d.prev, s[0]) == codeNil {
				return ErrDictFull
			}
		}
	case c == d.dict.max+1 && d.prev != codeNil:
		// the encoder created this entry right before emitting it;
		// synthesize it from the previous code before resolving
		if d.dict.add(d.prev, d.dict.firstByte(d.prev)) == codeNil {
			return ErrDictFull
		}
		if _, err := d.w.Write(d.dict.resolve(c)); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: code %d, max %d", ErrWrongCode, c, d.dict.max)
	}

	if d.dict.full() {
		// the encoder's matching insert fails one code later and
		// resets there, so both sides land on the same boundary
		d.dict.reset()
		d.width = 8
		d.prev = codeNil
		return nil
	}
	if d.dict.max+1 == Code(1)<<d.width {
		d.width++
	}
	d.prev = c
	return nil
}

// Close reports whether the stream ended cleanly. Sub-byte zero bits
// are the encoder's padding; a full leftover byte or any set leftover
// bit means the final code was cut off.
func (d *Decoder) Close() error {
	if d.err != nil {
		return d.err
	}
	if n, v := d.br.pending(); n >= 8 || v != 0 {
		d.err = ErrTruncated
		return d.err
	}
	return nil
}

// Reset makes the decoder ready for a new stream decoded into w.
func (d *Decoder) Reset(w io.Writer) {
	d.w = w
	d.br = BitReader{}
	d.dict.reset()
	d.prev = codeNil
	d.width = 8
	d.err = nil
}

// Encode compresses data in one call with the default dictionary size.
func Encode(data []byte) ([]byte, error) {
	return EncodeDict(data, DefaultDictSize)
}

// EncodeDict compresses data with a dictionary of dictSize codes.
func EncodeDict(data []byte, dictSize int) ([]byte, error) {
	var buf bytes.Buffer
	e, err := NewEncoderDict(&buf, dictSize)
	if err != nil {
		return nil, err
	}
	if _, err := e.Write(data); err != nil {
		return nil, err
	}
	if err := e.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode decompresses a complete code stream in one call.
func Decode(data []byte) ([]byte, error) {
	return DecodeDict(data, DefaultDictSize)
}

// DecodeDict decompresses a stream encoded with a dictionary of
// dictSize codes.
func DecodeDict(data []byte, dictSize int) ([]byte, error) {
	var buf bytes.Buffer
	d, err := NewDecoderDict(&buf, dictSize)
	if err != nil {
		return nil, err
	}
	if _, err := d.Write(data); err != nil {
		return nil, err
	}
	if err := d.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// -----------------------------------------------------------------------------
// Errors
// -----------------------------------------------------------------------------

var (
	// ErrWrongCode means a received code points past the next free
	// dictionary slot: the stream is corrupt or was encoded with
	// different parameters. Decoding stops rather than guess.
	ErrWrongCode = errors.New("lzw: wrong code")

	// ErrTruncated means the input ended in the middle of a code.
	ErrTruncated = errors.New("lzw: truncated input")

	// ErrDictFull means an insert failed with no reset possible.
	// The reset protocol prevents this on well-formed streams.
	ErrDictFull = errors.New("lzw: dictionary full")

	// ErrDictSize rejects dictionary sizes outside 258..1<<24.
	ErrDictSize = errors.New("lzw: dictionary size out of range")
)
