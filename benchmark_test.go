package main

import (
	"bytes"
	golzw "compress/lzw"
	"io"
	"math/rand/v2"
	"testing"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zstd"
)

// benchCorpus builds a deterministic 1 MiB mix of word-like text, so
// the dictionary codecs have something to chew on while the data is
// not trivially constant.
func benchCorpus() []byte {
	words := []string{
		"stream", "dictionary", "prefix", "variable", "width",
		"code", "reset", "literal", "entry", "buffer",
	}
	r := rand.New(rand.NewPCG(7, 9))
	var buf bytes.Buffer
	for buf.Len() < 1<<20 {
		buf.WriteString(words[r.IntN(len(words))])
		if r.IntN(8) == 0 {
			buf.WriteByte(byte(r.IntN(256)))
		} else {
			buf.WriteByte(' ')
		}
	}
	return buf.Bytes()
}

func benchmarkRoundTrip(b *testing.B, data []byte, encode func([]byte) ([]byte, error), decode func([]byte) ([]byte, error)) {
	// Warm-up outside the timed section, and a one-time sanity check.
	comp, err := encode(data)
	if err != nil {
		b.Fatalf("encode failed: %v", err)
	}
	plain, err := decode(comp)
	if err != nil {
		b.Fatalf("decode failed: %v", err)
	}
	if !bytes.Equal(plain, data) {
		b.Fatalf("round trip mismatch")
	}
	if testing.Verbose() {
		b.Logf("in=%d bytes out=%d bytes (%.1f%%)", len(data), len(comp), float64(len(comp))*100/float64(len(data)))
	}

	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		comp, err := encode(data)
		if err != nil {
			b.Fatalf("encode failed: %v", err)
		}
		if _, err := decode(comp); err != nil {
			b.Fatalf("decode failed: %v", err)
		}
	}
}

// BenchmarkCodecs compares this codec against flate, zstd and the
// stdlib LZW on the same corpus with the identical loop shape:
// encode(); decode(). All codecs reuse their state between iterations.
func BenchmarkCodecs(b *testing.B) {
	data := benchCorpus()

	b.Run("LZW", func(b *testing.B) {
		var cbuf, obuf bytes.Buffer
		enc := NewEncoder(&cbuf)
		dec := NewDecoder(&obuf)

		benchmarkRoundTrip(b, data,
			func(data []byte) ([]byte, error) {
				cbuf.Reset()
				enc.Reset(&cbuf)
				if _, err := enc.Write(data); err != nil {
					return nil, err
				}
				if err := enc.Close(); err != nil {
					return nil, err
				}
				return cbuf.Bytes(), nil
			},
			func(comp []byte) ([]byte, error) {
				obuf.Reset()
				dec.Reset(&obuf)
				if _, err := dec.Write(comp); err != nil {
					return nil, err
				}
				if err := dec.Close(); err != nil {
					return nil, err
				}
				return obuf.Bytes(), nil
			},
		)
	})

	b.Run("GoLZW", func(b *testing.B) {
		var cbuf bytes.Buffer

		benchmarkRoundTrip(b, data,
			func(data []byte) ([]byte, error) {
				cbuf.Reset()
				w := golzw.NewWriter(&cbuf, golzw.LSB, 8)
				if _, err := w.Write(data); err != nil {
					return nil, err
				}
				if err := w.Close(); err != nil {
					return nil, err
				}
				return cbuf.Bytes(), nil
			},
			func(comp []byte) ([]byte, error) {
				r := golzw.NewReader(bytes.NewReader(comp), golzw.LSB, 8)
				defer r.Close()
				return io.ReadAll(r)
			},
		)
	})

	b.Run("Flate", func(b *testing.B) {
		var cbuf bytes.Buffer
		w, err := flate.NewWriter(&cbuf, flate.DefaultCompression)
		if err != nil {
			b.Fatalf("flate writer: %v", err)
		}

		benchmarkRoundTrip(b, data,
			func(data []byte) ([]byte, error) {
				cbuf.Reset()
				w.Reset(&cbuf)
				if _, err := w.Write(data); err != nil {
					return nil, err
				}
				if err := w.Close(); err != nil {
					return nil, err
				}
				return cbuf.Bytes(), nil
			},
			func(comp []byte) ([]byte, error) {
				r := flate.NewReader(bytes.NewReader(comp))
				defer r.Close()
				return io.ReadAll(r)
			},
		)
	})

	b.Run("Zstd", func(b *testing.B) {
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			b.Fatalf("zstd writer: %v", err)
		}
		dec, err := zstd.NewReader(nil)
		if err != nil {
			b.Fatalf("zstd reader: %v", err)
		}
		defer enc.Close()
		defer dec.Close()

		benchmarkRoundTrip(b, data,
			func(data []byte) ([]byte, error) {
				return enc.EncodeAll(data, nil), nil
			},
			func(comp []byte) ([]byte, error) {
				return dec.DecodeAll(comp, nil)
			},
		)
	})
}

func BenchmarkEncode(b *testing.B) {
	data := benchCorpus()
	var cbuf bytes.Buffer
	enc := NewEncoder(&cbuf)

	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		cbuf.Reset()
		enc.Reset(&cbuf)
		if _, err := enc.Write(data); err != nil {
			b.Fatalf("encode failed: %v", err)
		}
		if err := enc.Close(); err != nil {
			b.Fatalf("encode failed: %v", err)
		}
	}
}

func BenchmarkDecode(b *testing.B) {
	data := benchCorpus()
	comp, err := Encode(data)
	if err != nil {
		b.Fatalf("encode failed: %v", err)
	}
	var obuf bytes.Buffer
	dec := NewDecoder(&obuf)

	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		obuf.Reset()
		dec.Reset(&obuf)
		if _, err := dec.Write(comp); err != nil {
			b.Fatalf("decode failed: %v", err)
		}
		if err := dec.Close(); err != nil {
			b.Fatalf("decode failed: %v", err)
		}
	}
}
