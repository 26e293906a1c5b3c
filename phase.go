// phase.go - RF phase register, ADC front-end, and digital output port 1.
//
// Grounded on spec.md §4.4: the phase register streams the generator's
// current frame to the firmware one sample at a time. High byte first,
// low byte second-and-advances; a 16-bit read behaves as high-byte-only
// then advance.

package main

// PhaseUnit bridges the Datatrak generator to the bus: it owns the read
// cursor into the current frame and the freqsel/adsel latches that the
// digital output port and ADC consult.
type PhaseUnit struct {
	gen   *Generator
	frame *Frame
	cur   int // read cursor, in [0, msPerCycle)

	freqsel uint8 // 0 = F1, 1 = F2 (bit 0 of output port 1 writes)
	adsel   uint8 // ADC channel select, bits [3:2] of output port 1 writes

	// onFrame, if set, is called with the just-synthesised frame every time
	// the cursor wraps — the hook debug dumps (dump.go) attach to so each
	// dump writer sees exactly one call per cycle (spec.md §6).
	onFrame func(*Frame)
}

// NewPhaseUnit synthesises the first frame immediately so the very first
// read has data to stream.
func NewPhaseUnit(gen *Generator) *PhaseUnit {
	p := &PhaseUnit{gen: gen, frame: &Frame{}}
	p.gen.Generate(p.frame)
	return p
}

// currentPhase10 returns the current sample's 10-bit phase value for the
// frequency channel selected by freqsel.
func (p *PhaseUnit) currentPhase10() uint16 {
	if p.freqsel == 0 {
		return p.frame.F1Phase[p.cur]
	}
	return p.frame.F2Phase[p.cur]
}

// currentAmplitude returns the current sample's RSSI-proxy amplitude for the
// frequency channel selected by freqsel.
func (p *PhaseUnit) currentAmplitude() uint8 {
	if p.freqsel == 0 {
		return p.frame.F1Amplitude[p.cur]
	}
	return p.frame.F2Amplitude[p.cur]
}

// advance moves the read cursor to the next millisecond sample, wrapping
// and synthesising a fresh frame when the cycle ends (spec.md §3 invariant 4).
func (p *PhaseUnit) advance() {
	p.cur++
	if p.cur >= p.gen.MsPerCycle() {
		p.cur = 0
		p.gen.Generate(p.frame)
		if p.onFrame != nil {
			p.onFrame(p.frame)
		}
	}
}

// SetFrameHook installs or clears the per-cycle callback debug dumps use.
func (p *PhaseUnit) SetFrameHook(fn func(*Frame)) {
	p.onFrame = fn
}

// ReadHigh services a read of 0x240201: the low 8 bits of the 10-bit phase.
func (p *PhaseUnit) ReadHigh() uint8 {
	return uint8(p.currentPhase10())
}

// ReadLow services a read of 0x240200: the top 2 bits of the phase value
// in the high nibble, and advances the read cursor.
func (p *PhaseUnit) ReadLow() uint8 {
	top2 := uint8(p.currentPhase10()>>8) & 0x03
	v := top2 << 4
	p.advance()
	return v
}

// ReadLow16 services a 16-bit read at 0x240200: high-byte-only, then advance.
func (p *PhaseUnit) ReadLow16() uint16 {
	v := uint16(p.ReadHigh()) << 8
	p.advance()
	return v
}

// ReadADC services a read of the ADC at 0x240000/0x240001. adsel == 0
// returns the current sample's amplitude on the selected channel; any other
// adsel is unimplemented (reserved for battery/UHF-board readings).
func (p *PhaseUnit) ReadADC(unimpl UnimplementedValuePolicy) uint8 {
	if p.adsel == 0 {
		return p.currentAmplitude()
	}
	return unimpl.value8()
}

// WriteOutPort1 latches freqsel and adsel from a write to digital output
// port 1 (spec.md §4.1 point 6).
func (p *PhaseUnit) WriteOutPort1(value uint8) {
	p.freqsel = value & 0x01
	p.adsel = (value >> 2) & 0x3
}
