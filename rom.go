// rom.go - ROM image loader.
//
// The real board stores ROM as two interleaved byte-wide images: one IC
// carries even physical addresses, the other odd. Ported from
// original_source/src/main.c's ROM-loading block in main(), generalised
// into a function that releases its file handles on every exit path
// (spec.md §9, "scoped acquisition").

package main

import (
	"fmt"
	"io"
	"os"
)

// LoadROM opens oddPath and evenPath (each romLength/2 bytes) and interleaves
// them into one linear romLength-byte image: rom[2k] = odd[k], rom[2k+1] = even[k].
//
// Short reads or open failures on either file abort with a diagnostic,
// matching spec.md §6 and §7 (configuration errors are fatal at startup).
func LoadROM(oddPath, evenPath string) ([]byte, error) {
	half := romLength / 2

	oddBuf, err := readExactly(oddPath, half)
	if err != nil {
		return nil, fmt.Errorf("loading odd ROM image %q: %w", oddPath, err)
	}

	evenBuf, err := readExactly(evenPath, half)
	if err != nil {
		return nil, fmt.Errorf("loading even ROM image %q: %w", evenPath, err)
	}

	rom := make([]byte, romLength)
	for k := 0; k < half; k++ {
		rom[2*k+0] = oddBuf[k]
		rom[2*k+1] = evenBuf[k]
	}
	return rom, nil
}

// readExactly opens path and reads exactly n bytes, closing the file on
// every return path.
func readExactly(path string, n int) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf := make([]byte, n)
	if _, err := io.ReadFull(f, buf); err != nil {
		return nil, fmt.Errorf("short read (want %d bytes): %w", n, err)
	}
	return buf, nil
}
