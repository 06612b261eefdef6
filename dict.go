package main

// Code identifies one dictionary string entry.
type Code uint32

// codeNil marks "no code": the root prefix and absent links. It lives
// outside the code value space, so the node arenas are exactly
// dictSize long.
const codeNil = ^Code(0)

const (
	// DefaultDictSize is the dictionary size used by Encode, Decode,
	// NewEncoder and NewDecoder. Bigger dictionaries delay resets and
	// cost more memory; the wire format does not change.
	DefaultDictSize = 1 << 16

	minDictSize = 258     // literal table plus room to make progress
	maxDictSize = 1 << 24 // codes must fit the 24-bit packing limit
)

// encNode carries the string payload plus the intrusive child links
// that make (prefix, ch) lookups scan one sibling chain instead of the
// whole table.
type encNode struct {
	prev  Code
	first Code
	next  Code
	ch    byte
}

// encDict is the encoder-side dictionary: an arena of nodes whose
// children form a forest rooted at each prefix code.
type encDict struct {
	nodes []encNode
	max   Code // highest assigned code
}

func newEncDict(size int) *encDict {
	d := &encDict{nodes: make([]encNode, size)}
	for i := 0; i < 256; i++ {
		d.nodes[i] = encNode{prev: codeNil, first: codeNil, next: codeNil, ch: byte(i)}
	}
	d.max = 255
	return d
}

// find returns the code for string(prefix)+ch, or codeNil.
func (d *encDict) find(prefix Code, ch byte) Code {
	for c := d.nodes[prefix].first; c != codeNil; c = d.nodes[c].next {
		if d.nodes[c].ch == ch {
			return c
		}
	}
	return codeNil
}

// add assigns the next code to string(prefix)+ch and prepends it to the
// prefix's child chain. Returns codeNil when the table is full; the
// table is left untouched in that case.
func (d *encDict) add(prefix Code, ch byte) Code {
	if int(d.max) == len(d.nodes)-1 {
		return codeNil
	}
	d.max++
	c := d.max
	d.nodes[c] = encNode{prev: prefix, first: codeNil, next: d.nodes[prefix].first, ch: ch}
	d.nodes[prefix].first = c
	return c
}

// reset drops everything above the literal table. Clearing the
// literals' child links is enough: codes above 255 can never be
// reached again once no literal points at them.
func (d *encDict) reset() {
	for i := 0; i < 256; i++ {
		d.nodes[i].first = codeNil
	}
	d.max = 255
}

type decNode struct {
	prev Code
	ch   byte
}

// decDict maps codes back to byte strings. resolve fills the scratch
// buffer from the end, because a string's length is unknown until the
// prefix walk completes.
type decDict struct {
	nodes []decNode
	buf   []byte
	max   Code
}

func newDecDict(size int) *decDict {
	d := &decDict{nodes: make([]decNode, size), buf: make([]byte, size)}
	for i := 0; i < 256; i++ {
		d.nodes[i] = decNode{prev: codeNil, ch: byte(i)}
	}
	d.max = 255
	return d
}

func (d *decDict) add(prefix Code, ch byte) Code {
	if int(d.max) == len(d.nodes)-1 {
		return codeNil
	}
	d.max++
	d.nodes[d.max] = decNode{prev: prefix, ch: ch}
	return d.max
}

// full reports whether the last slot has just been assigned.
func (d *decDict) full() bool {
	return int(d.max) == len(d.nodes)-1
}

// resolve returns the string behind code as a suffix of the scratch
// buffer. The slice is only valid until the next resolve.
func (d *decDict) resolve(code Code) []byte {
	i := len(d.buf)
	for c := code; c != codeNil; c = d.nodes[c].prev {
		i--
		d.buf[i] = d.nodes[c].ch
	}
	return d.buf[i:]
}

// firstByte returns the first character of the string behind code
// without materializing the whole string.
func (d *decDict) firstByte(code Code) byte {
	c := code
	for d.nodes[c].prev != codeNil {
		c = d.nodes[c].prev
	}
	return d.nodes[c].ch
}

// reset returns to the literal-only table. Entries 0..255 are never
// overwritten, so dropping the high-water mark is all it takes.
func (d *decDict) reset() {
	d.max = 255
}
