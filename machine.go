// machine.go - The machine: a single value owning all emulator state.
//
// spec.md §9's design note calls for exactly this: "the source keeps the
// emulator's state in a handful of globals... reimplement as a single
// machine value owning all state; operations are methods on it."

package main

import (
	"fmt"
	"log"
)

// Machine owns ROM, RAM (via the bus), the UART, the interrupt controller,
// and the Datatrak generator, and wires them together.
type Machine struct {
	Bus       *MachineBus
	Interrupt *InterruptController
	UART      *UART
	Generator *Generator
	Phase     *PhaseUnit

	uartA, uartB *Transport
}

// NewMachine loads ROM, builds every device, and wires the bus per
// spec.md §4.1-§4.5. UART transport connect failures are non-fatal (§7);
// everything else here is a configuration error and aborts startup.
func NewMachine(cfg Config) (*Machine, error) {
	rom, err := LoadROM(cfg.ROMOddPath, cfg.ROMEvenPath)
	if err != nil {
		return nil, fmt.Errorf("machine init: %w", err)
	}

	gen, err := NewGenerator(cfg.Mode)
	if err != nil {
		return nil, fmt.Errorf("machine init: %w", err)
	}

	ic := NewInterruptController()
	uart := NewUART(ic)
	phase := NewPhaseUnit(gen)
	bus := NewMachineBus(rom, cfg.RAMSize, uart, phase, cfg.Unimplemented)

	m := &Machine{
		Bus:       bus,
		Interrupt: ic,
		UART:      uart,
		Generator: gen,
		Phase:     phase,
	}

	if cfg.UARTBasePort > 0 {
		m.attachUARTTransports(cfg.UARTBasePort)
	}

	m.attachDumpWriters(cfg)

	return m, nil
}

// attachDumpWriters wires the optional debug-dump files (spec.md §6) to the
// phase unit's per-cycle hook. Either, both, or neither may be configured.
func (m *Machine) attachDumpWriters(cfg Config) {
	var raw, modulated *DumpWriter
	if cfg.RawDumpPath != "" {
		raw = NewRawDumpWriter(cfg.RawDumpPath)
	}
	if cfg.ModulatedDumpPath != "" {
		modulated = NewModulatedDumpWriter(cfg.ModulatedDumpPath)
	}
	if raw == nil && modulated == nil {
		return
	}
	m.Phase.SetFrameHook(func(frame *Frame) {
		if raw != nil {
			if err := raw.WriteCycle(m.Generator, frame); err != nil {
				log.Printf("[dump] raw phase dump failed: %v", err)
			}
		}
		if modulated != nil {
			if err := modulated.WriteCycle(m.Generator, frame); err != nil {
				log.Printf("[dump] modulated audio dump failed: %v", err)
			}
		}
	})
}

// attachUARTTransports dials both loopback endpoints. A failed dial marks
// the channel absent and logs once; it never aborts startup (spec.md §7).
func (m *Machine) attachUARTTransports(basePort int) {
	a, err := DialTransport(basePort)
	if err != nil {
		log.Printf("[uart] channel A: failed to connect to loopback port %d: %v", basePort, err)
	} else {
		m.uartA = a
		m.UART.AttachA(a)
	}

	b, err := DialTransport(basePort + 1)
	if err != nil {
		log.Printf("[uart] channel B: failed to connect to loopback port %d: %v", basePort+1, err)
	} else {
		m.uartB = b
		m.UART.AttachB(b)
	}
}

// Close releases any open UART transports. Safe to call even if neither
// channel connected.
func (m *Machine) Close() error {
	if m.uartA != nil {
		m.uartA.Close()
	}
	if m.uartB != nil {
		m.uartB.Close()
	}
	return nil
}
