package main

import (
	"os"
	"path/filepath"
	"testing"
)

// TestROMBootstrap is spec.md §8 scenario 1: byte rom[0] comes from ic2.bin
// (odd), rom[1] from ic1.bin (even).
func TestROMBootstrap(t *testing.T) {
	dir := t.TempDir()
	half := romLength / 2

	odd := make([]byte, half)
	even := make([]byte, half)
	odd[0] = 0xAA
	even[0] = 0x55

	oddPath := filepath.Join(dir, "ic2.bin")
	evenPath := filepath.Join(dir, "ic1.bin")
	if err := os.WriteFile(oddPath, odd, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(evenPath, even, 0o644); err != nil {
		t.Fatal(err)
	}

	rom, err := LoadROM(oddPath, evenPath)
	if err != nil {
		t.Fatalf("LoadROM: %v", err)
	}
	if len(rom) != romLength {
		t.Fatalf("len(rom) = %d, want %d", len(rom), romLength)
	}
	if rom[0] != 0xAA {
		t.Fatalf("rom[0] = 0x%02X, want 0xAA (from ic2.bin)", rom[0])
	}
	if rom[1] != 0x55 {
		t.Fatalf("rom[1] = 0x%02X, want 0x55 (from ic1.bin)", rom[1])
	}
}

func TestROMLoadShortFileIsError(t *testing.T) {
	dir := t.TempDir()
	oddPath := filepath.Join(dir, "ic2.bin")
	evenPath := filepath.Join(dir, "ic1.bin")

	// Odd file too short.
	if err := os.WriteFile(oddPath, make([]byte, 10), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(evenPath, make([]byte, romLength/2), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadROM(oddPath, evenPath); err == nil {
		t.Fatal("expected error for short odd ROM file, got nil")
	}
}

func TestROMLoadMissingFileIsError(t *testing.T) {
	if _, err := LoadROM("/nonexistent/ic2.bin", "/nonexistent/ic1.bin"); err == nil {
		t.Fatal("expected error for missing ROM files, got nil")
	}
}
