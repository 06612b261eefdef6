package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

func main() {
	if len(os.Args) < 2 || len(os.Args) > 3 {
		fmt.Fprint(os.Stderr, "Compress:   lzw <input-file> [dict-size]\nDecompress: lzw <input.lzw> [dict-size]\n")
		os.Exit(1)
	}

	inputPath := os.Args[1]
	ext := strings.ToLower(filepath.Ext(inputPath))

	dictSize := DefaultDictSize
	if len(os.Args) == 3 {
		n, err := strconv.Atoi(os.Args[2])
		if err != nil || n < minDictSize || n > maxDictSize {
			fmt.Fprintf(os.Stderr, "dict-size must be an integer between %d and %d\n", minDictSize, maxDictSize)
			os.Exit(1)
		}
		dictSize = n
	}

	// If input is .lzw → decompress to the stripped name
	if ext == ".lzw" {
		outPath := strings.TrimSuffix(inputPath, filepath.Ext(inputPath))
		if err := decompressFile(inputPath, outPath, dictSize); err != nil {
			fmt.Fprintln(os.Stderr, "decompress error:", err)
			os.Exit(1)
		}
		fmt.Printf("Decompressed %s → %s\n", inputPath, outPath)
		return
	}

	// Otherwise: compress → <input>.lzw
	outPath := inputPath + ".lzw"
	if err := compressFile(inputPath, outPath, dictSize); err != nil {
		fmt.Fprintln(os.Stderr, "compress error:", err)
		os.Exit(1)
	}
	fmt.Printf("Compressed %s (dict=%d) → %s\n", inputPath, dictSize, outPath)
}

func compressFile(inPath, outPath string, dictSize int) error {
	in, err := os.Open(inPath)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer out.Close()

	enc, err := NewEncoderDict(out, dictSize)
	if err != nil {
		return err
	}
	if _, err := io.Copy(enc, in); err != nil {
		return err
	}
	return enc.Close()
}

func decompressFile(inPath, outPath string, dictSize int) error {
	in, err := os.Open(inPath)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer out.Close()

	dec, err := NewDecoderDict(out, dictSize)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dec, in); err != nil {
		return err
	}
	return dec.Close()
}
