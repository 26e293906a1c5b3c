// dump.go - Debug dumps of the synthesised signal, for off-line inspection.
//
// Ported from original_source/src/datatrak_gen.c's datatrak_gen_dumpRaw and
// datatrak_gen_dumpModulated. Both are append-only, one cycle per call
// (spec.md §6), and release their file handle on every exit path
// (spec.md §9, "scoped acquisition").

package main

import (
	"encoding/binary"
	"math"
	"os"
)

// DumpWriter appends successive Frames to a debug-dump file. One DumpWriter
// per dump kind; both share the open-append-close-on-every-call shape the
// original C functions use (fopen(..., "ab") / fclose per call).
type DumpWriter struct {
	path string
	kind dumpKind
	mod  modulatedState
}

type dumpKind int

const (
	dumpRaw dumpKind = iota
	dumpModulated
)

// NewRawDumpWriter dumps 16-bit little-endian signed phase samples,
// interleaved F1/F2, scaled by 32 — matching datatrak_gen_dumpRaw.
func NewRawDumpWriter(path string) *DumpWriter { return &DumpWriter{path: path, kind: dumpRaw} }

// NewModulatedDumpWriter dumps 16-bit little-endian stereo PCM at 44100 Hz,
// matching datatrak_gen_dumpModulated. Each millisecond of signal becomes
// samplesPerMs (44) sample frames; the extra 0.1 sample per ms is dropped.
func NewModulatedDumpWriter(path string) *DumpWriter {
	return &DumpWriter{path: path, kind: dumpModulated}
}

// modulatedState carries the phase accumulators datatrak_gen_dumpModulated
// keeps across calls (phi_f1, phi_f2, and the previous sample's phase), so a
// sequence of dump calls produces continuous audio rather than a click at
// every cycle boundary.
type modulatedState struct {
	phiF1, phiF2       float64
	lastPhF1, lastPhF2 int
	init               bool
}

const (
	sampleRate  = 44100.0
	toneFreq    = 1000.0
	samplesPerMs = int(sampleRate) / 1000 // 44 whole samples per ms
)

// WriteCycle appends one cycle's worth of samples for the given frame.
func (d *DumpWriter) WriteCycle(gen *Generator, frame *Frame) error {
	f, err := os.OpenFile(d.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	switch d.kind {
	case dumpRaw:
		return writeRawCycle(f, gen, frame)
	default:
		return d.writeModulatedCycle(f, gen, frame)
	}
}

func writeRawCycle(f *os.File, gen *Generator, frame *Frame) error {
	n := gen.MsPerCycle()
	buf := make([]byte, n*2*2)
	for ms := 0; ms < n; ms++ {
		f1 := int16((int(frame.F1Phase[ms]) - phaseZero) * 32)
		f2 := int16((int(frame.F2Phase[ms]) - phaseZero) * 32)
		binary.LittleEndian.PutUint16(buf[ms*4:], uint16(f1))
		binary.LittleEndian.PutUint16(buf[ms*4+2:], uint16(f2))
	}
	_, err := f.Write(buf)
	return err
}

func (d *DumpWriter) writeModulatedCycle(f *os.File, gen *Generator, frame *Frame) error {
	st := &d.mod
	if !st.init {
		st.lastPhF1 = phaseZero
		st.lastPhF2 = phaseZero
		st.init = true
	}

	theta := (2.0 * math.Pi) * toneFreq / sampleRate
	n := gen.MsPerCycle()
	samplesPerMsInt := int(samplesPerMs)

	buf := make([]byte, n*samplesPerMsInt*2*2)
	pos := 0
	for ms := 0; ms < n; ms++ {
		for s := 0; s < samplesPerMsInt; s++ {
			phShF1 := (float64(int(frame.F1Phase[ms])-st.lastPhF1) / phaseAmpl) * (2.0 * math.Pi)
			phShF2 := (float64(int(frame.F2Phase[ms])-st.lastPhF2) / phaseAmpl) * (2.0 * math.Pi)
			st.lastPhF1 = int(frame.F1Phase[ms])
			st.lastPhF2 = int(frame.F2Phase[ms])

			st.phiF1 += theta + phShF1
			st.phiF2 += theta + phShF2

			s1 := int16(math.Round(16383.0 * (float64(frame.F1Amplitude[ms]) / 255.0) * math.Sin(st.phiF1)))
			s2 := int16(math.Round(16383.0 * (float64(frame.F2Amplitude[ms]) / 255.0) * math.Sin(st.phiF2)))
			binary.LittleEndian.PutUint16(buf[pos:], uint16(s1))
			binary.LittleEndian.PutUint16(buf[pos+2:], uint16(s2))
			pos += 4
		}
	}
	_, err := f.Write(buf)
	return err
}
