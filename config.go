// config.go - Board-wide constants and run-time configuration.
//
// Address map and sizes from spec.md §3; UnimplementedValue policy from
// original_source/src/machine.h's UNIMPL_READS_AS_FF build switch, promoted
// here to a run-time flag rather than a compile-time #ifdef.

package main

import (
	"errors"
	"fmt"
)

const (
	romLength = 256 * 1024
	romBase   = 0x000000

	ramBase   = 0x200000
	ramWindow = 256 * 1024 // size of the address-space window mapped to RAM

	adcBase         = 0x240000
	adcEnd          = 0x2400FF
	eepromReadBase  = 0x240100
	eepromReadEnd   = 0x2401FF
	phaseRegBase    = 0x240200
	phaseRegEnd     = 0x2402FF
	uartBase        = 0x240300
	uartEnd         = 0x2403FF
	outPort1Base    = 0x240700
	outPort1End     = 0x2407FF
	eepromWriteBase = 0x240800
	eepromWriteEnd  = 0x2408FF

	asicRegionBase = 0x240000
	asicRegionEnd  = 0x24FFFF

	spuriousVector = 0x18 // M68K-style autovector "spurious interrupt"
)

// UnimplementedValuePolicy selects what an unhandled read returns.
type UnimplementedValuePolicy int

const (
	// UnimplementedReadsZero returns 0x00... for unhandled reads (default).
	UnimplementedReadsZero UnimplementedValuePolicy = iota
	// UnimplementedReadsOnes returns 0xFF... for unhandled reads.
	UnimplementedReadsOnes
)

// value32 returns the policy's sentinel masked to the given bit width.
func (p UnimplementedValuePolicy) value32() uint32 {
	if p == UnimplementedReadsOnes {
		return 0xFFFFFFFF
	}
	return 0
}

func (p UnimplementedValuePolicy) value16() uint16 {
	return uint16(p.value32())
}

func (p UnimplementedValuePolicy) value8() uint8 {
	return uint8(p.value32())
}

// NavMode selects the Datatrak cycle layout. Only eight-slot is implemented;
// interlaced is reserved (see DATATRAK_MODE in original_source/src/datatrak_gen.h).
type NavMode int

const (
	NavModeEightSlot NavMode = iota
	NavModeInterlaced
)

var errUnsupportedNavMode = errors.New("unsupported navigation mode")

// ParseNavMode maps the CLI's --nav-mode string onto a NavMode, for main.go.
func ParseNavMode(s string) (NavMode, error) {
	switch s {
	case "eight-slot", "":
		return NavModeEightSlot, nil
	case "interlaced":
		return NavModeInterlaced, nil
	default:
		return 0, fmt.Errorf("%w: %q (want \"eight-slot\" or \"interlaced\")", errUnsupportedNavMode, s)
	}
}

// ValidateNavMode is the "out-of-band mode selector at init" fatal assertion
// spec.md §7 requires: only defined modes are accepted.
func ValidateNavMode(m NavMode) error {
	switch m {
	case NavModeEightSlot:
		return nil
	case NavModeInterlaced:
		return fmt.Errorf("%w: interlaced mode is reserved, not yet implemented", errUnsupportedNavMode)
	default:
		return fmt.Errorf("%w: %d", errUnsupportedNavMode, m)
	}
}

// Config collects every run-time parameter the emulator needs at startup.
// Assembled once from CLI flags in main.go and passed by value into NewMachine,
// following the teacher's GUIConfig/AudioConfig value-struct convention
// rather than package-level globals (see SPEC_FULL.md §2).
type Config struct {
	ROMOddPath  string // ic2.bin: the "odd" half-image; LoadROM puts its bytes at even addresses (rom[2k])
	ROMEvenPath string // ic1.bin: the "even" half-image; LoadROM puts its bytes at odd addresses (rom[2k+1])

	RAMSize int

	UARTBasePort int // UART channel A connects here, channel B to +1

	Unimplemented UnimplementedValuePolicy
	Mode          NavMode

	RawDumpPath       string
	ModulatedDumpPath string

	Realtime bool
	Monitor  bool
}

// DefaultConfig returns the configuration the reference firmware expects.
func DefaultConfig() Config {
	return Config{
		ROMOddPath:   "ic2.bin",
		ROMEvenPath:  "ic1.bin",
		RAMSize:      ramWindow,
		UARTBasePort: 10000,
		Unimplemented: UnimplementedReadsZero,
		Mode:          NavModeEightSlot,
	}
}
