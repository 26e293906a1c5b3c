package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestUARTTxPendSetsInterruptWhenUnmasked is spec.md §8 scenario 12: a write
// to the transmit holding register sets the UART interrupt pending only
// when the channel's TxRdy bit is unmasked in IMR.
func TestUARTTxPendSetsInterruptWhenUnmasked(t *testing.T) {
	ic := NewInterruptController()
	u := NewUART(ic)

	// Channel A's THR, with IMR masking TxRdy off: no interrupt.
	u.Write8(uartBase+(3<<1), 0x41)
	require.Equal(t, 0, ic.Level(), "no interrupt expected while TxRdy is masked")

	// Unmask channel A's TxRdy, then write again.
	u.Write8(uartBase+(5<<1), 0x01)
	require.Equal(t, priorityUART, ic.Level(), "writing IMR with TxRdy set should itself pend")

	// Clear the IMR pend, then write THR with TxRdy unmasked: the write pends.
	ic.Acknowledge()
	require.Equal(t, 0, ic.Level(), "acknowledge should clear the UART pend")
	u.Write8(uartBase+(3<<1), 0x42)
	require.Equal(t, priorityUART, ic.Level(), "THR write with TxRdy unmasked should pend")
}

func TestUARTModeRegisterAlternatesMR1MR2(t *testing.T) {
	ic := NewInterruptController()
	u := NewUART(ic)

	mrAddr := uartBase + (0 << 1)
	u.Write8(mrAddr, 0xAA) // MR1A
	u.Write8(mrAddr, 0xBB) // MR2A

	u.a.mrPointer = false
	require.Equal(t, uint8(0xAA), u.Read8(mrAddr, UnimplementedReadsZero))
	require.Equal(t, uint8(0xBB), u.Read8(mrAddr, UnimplementedReadsZero))
}

func TestUARTIVRLatchIsReturnedOnAcknowledge(t *testing.T) {
	ic := NewInterruptController()
	u := NewUART(ic)

	u.Write8(uartBase+(12<<1), 0x55)
	u.Write8(uartBase+(5<<1), 0x01) // unmask TxRdy => pend
	require.Equal(t, uint8(0x55), ic.Acknowledge())
}

func TestUARTTransmitWithNoTransportDoesNotPanic(t *testing.T) {
	ic := NewInterruptController()
	u := NewUART(ic)
	// Channel A has no attached Transport; Write8 to THR must be a silent no-op.
	require.NotPanics(t, func() {
		u.Write8(uartBase+(3<<1), 0x58)
	})
}

func TestUARTApplyEnable(t *testing.T) {
	require.True(t, applyEnable(false, 1))
	require.False(t, applyEnable(true, 2))
	require.True(t, applyEnable(true, 0))
	require.False(t, applyEnable(false, 3))
}
