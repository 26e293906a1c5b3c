// datatrak.go - Datatrak LF navigation-signal generator.
//
// Ported from original_source/src/datatrak_gen.c (datatrak_gen_init,
// datatrak_gen_generate) per spec.md §4.5. Windows, Gold-code trigger
// selection, clock-dibit phase mapping, and navslot construction are kept
// bit-for-bit identical to the original; only the host language changed.

package main

const (
	phaseZero = 499 // PHASE_ZERO
	phaseAmpl = 499 // PHASE_AMPL

	rssiMin = 1   // RSSI_MIN: transmitter off
	rssiMax = 255 // RSSI_MAX: full power

	outbufLen = 1680 // DATATRAK_BUF_LEN: sized for the interlaced 24-slot variant

	navslotsPerCycle = 8
	msPerCycleEightSlot = 340 + navslotsPerCycle*80 + 40 + navslotsPerCycle*80 + 20 // 1680

	clockAmpl = 1.0 // CLOCK_AMPL: 1.0 in the canonical draft, 0.5 in an earlier one — use 1.0
)

// goldcode is the fixed 64-bit Datatrak Gold code, one bit modulated per
// cycle. Word order preserved exactly as original_source/src/datatrak_gen.c
// has it — the author's own comment notes it "might be a bug" in the real
// firmware, but Mk2 receivers expect it this way, so the emulator keeps it.
var goldcode = [2]uint32{0xFA9B8700, 0xAE32BD97}

// dtTrig50Template and dtTrig375Template are the firmware's signed 16-bit
// reference trigger waveforms, 40 samples each, copied verbatim from
// DT_TRIG50_TEMPLATE / DT_TRIG375_TEMPLATE.
var dtTrig50Template = [40]int16{
	54, 124, 181, 218,
	232, 221, 185, 129,
	59, -21, -99, -169,
	-223, -257, -265, -250,
	-210, -150, -76, 6,
	87, 159, 215, 249,
	260, 245, 206, 147,
	74, -8, -89, -160,
	-216, -251, -261, -245,
	-207, -148, -74, 8,
}

var dtTrig375Template = [40]int16{
	-43, -98, -144, -181,
	-203, -212, -204, -183,
	-149, -106, -53, 4,
	62, 118, 168, 210,
	240, 258, 263, 253,
	229, 193, 147, 93,
	33, -28, -88, -143,
	-189, -225, -248, -258,
	-254, -236, -204, -162,
	-110, -53, 9, 69,
}

// Frame is one navigation cycle's worth of per-millisecond samples.
// Buffered at outbufLen; in eight-slot mode msPerCycle equals outbufLen
// (1680), so Generate fills every entry.
type Frame struct {
	F1Phase     [outbufLen]uint16
	F2Phase     [outbufLen]uint16
	F1Amplitude [outbufLen]uint8
	F2Amplitude [outbufLen]uint8
}

// Generator synthesises one Datatrak navigation cycle at a time.
type Generator struct {
	mode      NavMode
	msPerCycle int

	goldcodeN int // 0-63
	clockN    int // 0-65535

	trig50  [40]uint16
	trig375 [40]uint16

	// SlotPhaseOffset/SlotPower restore the per-slot configurability
	// original_source/src/datatrak_gen.h reserves ("may be per-slot
	// configurable... to emulate a navigation fix") that spec.md's
	// distillation dropped to a hardcoded PHASE_ZERO. Indexed by navslot
	// number, F1 slots 0-7 then F2 slots 0-7 (SPEC_FULL.md §4.1).
	SlotPhaseOffset [24]uint16
	SlotPower       [24]uint8
}

// NewGenerator precomputes the trigger templates once, as spec.md §9
// requires ("a fixed precomputed integer table is acceptable and
// preferred"), and seeds the initial Gold-code/clock state.
func NewGenerator(mode NavMode) (*Generator, error) {
	if err := ValidateNavMode(mode); err != nil {
		return nil, err
	}

	g := &Generator{
		mode:       mode,
		msPerCycle: msPerCycleEightSlot,
		goldcodeN:  0,
		clockN:     12345,
	}
	for i := range g.SlotPhaseOffset {
		g.SlotPhaseOffset[i] = phaseZero
	}
	for i := range g.SlotPower {
		g.SlotPower[i] = rssiMax
	}

	const scale = 1.73 // best trigger match quality per datatrak_gen_init's comment
	for i := 0; i < 40; i++ {
		g.trig50[i] = rescaleTemplate(dtTrig50Template[i], scale)
		g.trig375[i] = rescaleTemplate(dtTrig375Template[i], scale)
	}

	return g, nil
}

func rescaleTemplate(sample int16, scale float64) uint16 {
	v := int(float64(sample)*scale) + phaseZero
	return uint16(v)
}

// MsPerCycle returns the number of valid samples in a generated Frame.
func (g *Generator) MsPerCycle() int { return g.msPerCycle }

// GoldcodeN and ClockN expose the generator's persistent state for tests and
// the debug monitor.
func (g *Generator) GoldcodeN() int { return g.goldcodeN }
func (g *Generator) ClockN() int    { return g.clockN }

// SetSlotPhaseOffset overrides navslot slot's phase ramp origin, taking
// effect from the next Generate call. slot is an index into the combined
// F1-then-F2 navslot numbering (0-7 are F1, 8-15 are F2 in eight-slot mode;
// the array is sized to 24 to also accommodate the reserved interlaced
// mode); out-of-range slots are ignored.
func (g *Generator) SetSlotPhaseOffset(slot int, offset uint16) {
	if slot < 0 || slot >= len(g.SlotPhaseOffset) {
		return
	}
	g.SlotPhaseOffset[slot] = offset
}

// SetSlotPower overrides navslot slot's transmitted amplitude, taking
// effect from the next Generate call.
func (g *Generator) SetSlotPower(slot int, power uint8) {
	if slot < 0 || slot >= len(g.SlotPower) {
		return
	}
	g.SlotPower[slot] = power
}

// Generate synthesises the next navigation cycle into frame, millisecond by
// millisecond, then advances goldcodeN (and, on wraparound, clockN).
func (g *Generator) Generate(frame *Frame) {
	goldWord := g.goldcodeN / 32
	goldBit := g.goldcodeN % 32

	navStart := 340
	navEnd := navStart + navslotsPerCycle*80
	guard1End := navEnd + 40
	f2NavEnd := guard1End + navslotsPerCycle*80

	for i := 0; i < g.msPerCycle; i++ {
		// Defaults for every millisecond: TX off, phase centred.
		frame.F1Phase[i] = phaseZero
		frame.F2Phase[i] = phaseZero
		frame.F1Amplitude[i] = rssiMin
		frame.F2Amplitude[i] = rssiMin

		switch {
		case i < 40, (i >= 40 && i < 45), (i >= 85 && i < 95), (i >= 115 && i < 120), (i >= 300 && i < 340):
			// Anti-aliasing windows and trigger/clock settling gaps.
			frame.F1Phase[i] = phaseZero
			frame.F1Amplitude[i] = rssiMax

		case i >= 45 && i < 85:
			// Trigger: Gold-code-modulated waveform.
			k := i - 45
			if goldcode[goldWord]&(1<<uint(goldBit)) != 0 {
				frame.F1Phase[i] = g.trig375[k]
			} else {
				frame.F1Phase[i] = g.trig50[k]
			}
			frame.F1Amplitude[i] = rssiMax

		case i >= 95 && i < 115:
			// Clock dibit: two bits of clockN transmitted per Gold-code step.
			bitN := (g.goldcodeN % 8) * 2
			bits := (g.clockN >> uint(bitN)) & 3
			if g.goldcodeN >= 32 {
				bits ^= 3
			}
			var pha int
			switch bits {
			case 0:
				pha = 0
			case 1:
				pha = 5
			case 2:
				pha = 15
			case 3:
				pha = 10
			}
			idx := ((i - 95) + pha) % 20
			frame.F1Phase[i] = uint16(float64(g.trig50[idx])*clockAmpl + float64(phaseZero)*(1.0-clockAmpl))
			frame.F1Amplitude[i] = 255

		case i >= navStart && i < navEnd:
			slot := (i - navStart) / 80
			timeInSlot := (i - navStart) % 80
			frame.F1Phase[i] = navslotPhase(g.SlotPhaseOffset[slot], timeInSlot)
			frame.F1Amplitude[i] = g.SlotPower[slot]

		case i >= guard1End && i < f2NavEnd:
			slot := (i - guard1End) / 80
			timeInSlot := (i - guard1End) % 80
			frame.F2Phase[i] = navslotPhase(g.SlotPhaseOffset[navslotsPerCycle+slot], timeInSlot)
			frame.F2Amplitude[i] = g.SlotPower[navslotsPerCycle+slot]

		default:
			// Guard intervals: TX off, already defaulted above.
		}
	}

	g.goldcodeN++
	if g.goldcodeN == 64 {
		g.goldcodeN = 0
		g.clockN++
	}
}

// navslotPhase computes one navslot's phase sample: 40ms of phase advance
// (+40 counts/ms) followed by 40ms of phase retard, both modulo 1000,
// rooted at offset instead of the hardcoded PHASE_ZERO (SPEC_FULL.md §4.1).
func navslotPhase(offset uint16, timeInSlot int) uint16 {
	if timeInSlot < 40 {
		return uint16((int(offset) + timeInSlot*40) % 1000)
	}
	x := int(offset) - (timeInSlot-40)*40
	for x < 0 {
		x += 1000
	}
	return uint16(x % 1000)
}
