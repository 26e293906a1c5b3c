package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestGenerator(t *testing.T) *Generator {
	t.Helper()
	g, err := NewGenerator(NavModeEightSlot)
	require.NoError(t, err)
	return g
}

// TestGoldcodeClockProgression is spec.md §8 scenario 11: goldcodeN advances
// by one every Generate call and wraps at 64, incrementing clockN on wrap.
func TestGoldcodeClockProgression(t *testing.T) {
	g := newTestGenerator(t)
	startClock := g.ClockN()
	var frame Frame

	for i := 0; i < 63; i++ {
		g.Generate(&frame)
	}
	require.Equal(t, 63, g.GoldcodeN())
	require.Equal(t, startClock, g.ClockN(), "clockN must not advance before the 64th step")

	g.Generate(&frame)
	require.Equal(t, 0, g.GoldcodeN(), "goldcodeN wraps to 0 at 64")
	require.Equal(t, startClock+1, g.ClockN(), "clockN advances exactly on wraparound")
}

// TestGeneratePhaseAndAmplitudeRange checks the invariant that every sample
// produced falls within the 10-bit phase / 8-bit amplitude ranges the bus
// and phase register expect.
func TestGeneratePhaseAndAmplitudeRange(t *testing.T) {
	g := newTestGenerator(t)
	var frame Frame
	g.Generate(&frame)

	for i := 0; i < g.MsPerCycle(); i++ {
		require.Lessf(t, frame.F1Phase[i], uint16(1024), "F1Phase[%d] out of 10-bit range", i)
		require.Lessf(t, frame.F2Phase[i], uint16(1024), "F2Phase[%d] out of 10-bit range", i)
		require.GreaterOrEqualf(t, frame.F1Amplitude[i], uint8(rssiMin), "F1Amplitude[%d] below RSSI_MIN", i)
		require.GreaterOrEqualf(t, frame.F2Amplitude[i], uint8(rssiMin), "F2Amplitude[%d] below RSSI_MIN", i)
	}
}

// TestNavslotRotationFormula is spec.md §8 scenario 13: a navslot's phase
// ramps up for 40ms then back down, rooted at the slot's configured offset.
func TestNavslotRotationFormula(t *testing.T) {
	require.Equal(t, uint16(phaseZero), navslotPhase(phaseZero, 0))
	require.Equal(t, uint16((phaseZero+39*40)%1000), navslotPhase(phaseZero, 39))

	// Descending half resets to the slot offset at timeInSlot==40, then
	// ramps down from there.
	require.Equal(t, uint16(phaseZero), navslotPhase(phaseZero, 40))
	want79 := phaseZero - 39*40
	for want79 < 0 {
		want79 += 1000
	}
	require.Equal(t, uint16(want79), navslotPhase(phaseZero, 79))
}

// TestSlotPhaseOffsetOverrideAffectsOutput is the SPEC_FULL.md-added
// per-slot configurability property: overriding a slot's phase offset
// changes exactly that slot's navslot samples in the next generated frame.
func TestSlotPhaseOffsetOverrideAffectsOutput(t *testing.T) {
	g := newTestGenerator(t)
	g.SetSlotPhaseOffset(0, 700)

	var frame Frame
	g.Generate(&frame)

	// Navslot 0 begins at sample index 340 in eight-slot mode.
	require.Equal(t, uint16(700), frame.F1Phase[340])
	// Navslot 1 (index 420) must be unaffected.
	require.Equal(t, uint16(phaseZero), frame.F1Phase[420])
}

// TestSlotPowerOverrideAffectsAmplitude confirms SetSlotPower reaches the
// amplitude samples for its navslot, and only its navslot.
func TestSlotPowerOverrideAffectsAmplitude(t *testing.T) {
	g := newTestGenerator(t)
	g.SetSlotPower(0, 128)

	var frame Frame
	g.Generate(&frame)

	require.Equal(t, uint8(128), frame.F1Amplitude[340])
	require.Equal(t, uint8(rssiMax), frame.F1Amplitude[420])
}

func TestSetSlotPhaseOffsetIgnoresOutOfRangeSlot(t *testing.T) {
	g := newTestGenerator(t)
	require.NotPanics(t, func() {
		g.SetSlotPhaseOffset(-1, 1)
		g.SetSlotPhaseOffset(24, 1)
	})
}

func TestRescaleTemplatePreservesTruncationOrder(t *testing.T) {
	// The scaled sample is truncated toward zero before phaseZero is added:
	// int(sample*scale) + phaseZero.
	got := rescaleTemplate(54, 1.73)
	require.Equal(t, uint16(int(54.0*1.73)+phaseZero), got)
}
