// uart.go - Dual-channel UART device.
//
// Register decode table, command semantics, and the fixed status/interrupt
// register constants are ported from original_source/src/uart.c
// (UartRegWrite/UartRegRead) per spec.md §4.3.

package main

import "log"

// uartChannel holds the per-channel register state spec.md §3 describes.
type uartChannel struct {
	txEnabled, rxEnabled bool
	mrPointer            bool   // MRn: false selects MR1, true selects MR2
	mr                   [2]uint8
	transport            *Transport
}

// UART implements the dual-channel serial controller. Shared state (IMR,
// IVR, output port) lives once; each channel has its own enables and mode
// register bank, matching uart_s in original_source/src/uart.h.
type UART struct {
	a, b uartChannel

	imr     uint8
	ivr     uint8
	outPort uint8

	ic *InterruptController
}

// NewUART creates a UART with both channels absent; AttachA/AttachB connect them.
func NewUART(ic *InterruptController) *UART {
	return &UART{ivr: 0x0F, ic: ic}
}

// AttachA connects channel A's transport. A nil transport marks it absent.
func (u *UART) AttachA(t *Transport) { u.a.transport = t }

// AttachB connects channel B's transport. A nil transport marks it absent.
func (u *UART) AttachB(t *Transport) { u.b.transport = t }

// applyEnable decodes a command register's 2-bit enable/disable/unchanged
// field, per the C original's ENDIS table.
func applyEnable(cur bool, bits uint8) bool {
	switch bits {
	case 1:
		return true
	case 2:
		return false
	default: // 0 unchanged, 3 reserved
		return cur
	}
}

// Read8 services a byte read at one of the sixteen register indices
// (address bits [4:1] select the register; spec.md §4.3's table).
func (u *UART) Read8(addr uint32, unimpl UnimplementedValuePolicy) uint8 {
	idx := (addr >> 1) & 0x0F
	switch idx {
	case 0, 8: // mode register, alternating MR1/MR2
		ch := u.channel(idx)
		v := ch.mr[boolToIdx(ch.mrPointer)]
		ch.mrPointer = !ch.mrPointer
		return v
	case 1, 9: // status register: TxRDY on, TxEMT on, RxRDY off
		return 0x0C
	case 2, 10: // BRG test (stub)
		return unimpl.value8()
	case 3, 11: // receive holding (stub — no RX data modelled beyond the transport queue)
		ch := u.channel(idx)
		if ch.transport != nil {
			if b, ok := ch.transport.TryRecv(); ok {
				return b
			}
		}
		return unimpl.value8()
	case 4, 12: // IPCR / IVR
		if idx == 12 {
			return u.ivr
		}
		return unimpl.value8()
	case 5: // interrupt status: both TXRDYs asserted
		return 0x11
	case 14: // IP0-6 (stub)
		return unimpl.value8()
	default:
		log.Printf("[uart] unimplemented read from %s (0x%06X)", uartRegName(addr, true), addr)
		return unimpl.value8()
	}
}

// Write8 services a byte write at one of the sixteen register indices.
func (u *UART) Write8(addr uint32, value uint8) {
	idx := (addr >> 1) & 0x0F
	switch idx {
	case 0, 8: // mode register, alternating MR1/MR2
		ch := u.channel(idx)
		ch.mr[boolToIdx(ch.mrPointer)] = value
		ch.mrPointer = !ch.mrPointer

	case 1, 9: // clock-select (not modelled beyond acceptance)

	case 2, 10: // command register
		ch := u.channel(idx)
		ch.rxEnabled = applyEnable(ch.rxEnabled, value&0x03)
		ch.txEnabled = applyEnable(ch.txEnabled, (value>>2)&0x03)
		switch (value >> 4) & 0x0F {
		case 1: // Reset MRn pointer
			ch.mrPointer = false
		case 2: // Reset receiver
			ch.rxEnabled = false
		case 3: // Reset transmitter
			ch.txEnabled = false
		default: // other commands accepted without further effect
		}

	case 3, 11: // transmit holding register
		ch := u.channel(idx)
		if ch.transport != nil {
			if err := ch.transport.Send(value); err != nil {
				log.Printf("[uart] channel %s send failed: %v", channelName(idx), err)
			}
		}
		if u.txRdyUnmasked(idx) {
			u.ic.SetPending(IRQUART)
		}

	case 4, 12: // ACR / interrupt vector latch
		if idx == 12 {
			u.ivr = value
			u.ic.SetUARTVector(value)
		}

	case 5: // interrupt mask register
		u.imr = value
		if u.imr&0x01 != 0 || u.imr&0x10 != 0 {
			u.ic.SetPending(IRQUART)
		}

	case 14: // set output port bits
		u.outPort |= value

	case 15: // clear output port bits
		u.outPort &^= value

	default:
		log.Printf("[uart] unimplemented write to %s (0x%06X) = 0x%02X", uartRegName(addr, false), addr, value)
	}
}

// txRdyUnmasked reports whether the channel's TxRdy bit is unmasked in IMR
// (bit 0 for A, bit 4 for B), per original_source/src/uart.c's TX-holding
// write handler.
func (u *UART) txRdyUnmasked(idx uint32) bool {
	if idx < 8 {
		return u.imr&0x01 != 0
	}
	return u.imr&0x10 != 0
}

func (u *UART) channel(idx uint32) *uartChannel {
	if idx < 8 {
		return &u.a
	}
	return &u.b
}

func boolToIdx(b bool) int {
	if b {
		return 1
	}
	return 0
}

func channelName(idx uint32) string {
	if idx < 8 {
		return "A"
	}
	return "B"
}

// uartRegName mirrors original_source/src/uart.c's GetUartRegFromAddr: a
// diagnostic-only lookup of the register name a given address/direction
// maps to, for log messages.
func uartRegName(addr uint32, reading bool) string {
	names := [16][2]string{
		{"MR1A/MR2A", "MR1A/MR2A"},
		{"SRA", "CSRA"},
		{"BRG Test", "CRA"},
		{"RHRA", "THRA"},
		{"IPCR", "ACR"},
		{"ISR", "IMR"},
		{"CUR", "CTUR"},
		{"CLR", "CTLR"},
		{"MR1B/MR2B", "MR1B/MR2B"},
		{"SRB", "CSRB"},
		{"1x/16x Test", "CRB"},
		{"RHRB", "THRB"},
		{"IVR", "IVR"},
		{"IP0-6", "OPCR"},
		{"START COUNTER", "SET OUT BITS"},
		{"STOP  COUNTER", "RESET OUT BITS"},
	}
	idx := (addr >> 1) & 0x0F
	if reading {
		return names[idx][0]
	}
	return names[idx][1]
}
