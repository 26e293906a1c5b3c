// interrupt.go - Priority-encoded interrupt controller.
//
// Generalises original_source/src/main.h's InterruptFlags_s ({phase_tick, uart})
// into a small fixed table of named flags, each with a fixed priority and
// vector, per spec.md §3/§4.2.

package main

import "sync"

// IRQSource identifies one of the controller's pending-flag slots.
type IRQSource int

const (
	IRQPhaseTick IRQSource = iota
	IRQUART
	irqSourceCount
)

const (
	priorityPhaseTick = 5
	priorityUART      = 2

	vectorPhaseTick = 255
)

// InterruptController maintains pending flags, computes the priority-encoded
// output level, and supplies a vector on acknowledge. Exactly one flag is
// cleared per acknowledge (spec.md §4.2) so a higher-priority event that
// arrives between the pend and the acknowledge still pre-empts correctly.
type InterruptController struct {
	mu      sync.Mutex
	pending [irqSourceCount]bool
	uartIVR uint8 // latched by the UART's vector register, read here on ack

	level int
}

// NewInterruptController returns a controller with nothing pending and the
// UART vector defaulted to 0x0F (original_source/src/uart.c's UartInit).
func NewInterruptController() *InterruptController {
	return &InterruptController{uartIVR: 0x0F}
}

func priorityOf(src IRQSource) int {
	switch src {
	case IRQPhaseTick:
		return priorityPhaseTick
	case IRQUART:
		return priorityUART
	default:
		return 0
	}
}

// SetPending marks src pending and recomputes the output level.
func (ic *InterruptController) SetPending(src IRQSource) {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	ic.pending[src] = true
	ic.recomputeLevel()
}

// SetUARTVector latches the vector the UART's IVR register holds, read back
// here when the UART interrupt is acknowledged.
func (ic *InterruptController) SetUARTVector(v uint8) {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	ic.uartIVR = v
}

// Level returns the 3-bit interrupt level currently presented to the CPU.
func (ic *InterruptController) Level() int {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	return ic.level
}

// recomputeLevel is the priority encoder: the level is the maximum priority
// of any currently-pending flag. Caller must hold ic.mu.
func (ic *InterruptController) recomputeLevel() {
	level := 0
	for src := IRQSource(0); src < irqSourceCount; src++ {
		if ic.pending[src] && priorityOf(src) > level {
			level = priorityOf(src)
		}
	}
	ic.level = level
}

// Acknowledge scans in descending priority, returns the vector of the
// highest-priority pending flag, clears only that flag, and recomputes the
// output level. Returns spuriousVector if nothing is pending.
func (ic *InterruptController) Acknowledge() uint8 {
	ic.mu.Lock()
	defer ic.mu.Unlock()

	best := IRQSource(-1)
	bestPriority := 0
	for src := IRQSource(0); src < irqSourceCount; src++ {
		if ic.pending[src] && priorityOf(src) > bestPriority {
			bestPriority = priorityOf(src)
			best = src
		}
	}
	if best < 0 {
		return spuriousVector
	}

	ic.pending[best] = false
	ic.recomputeLevel()

	switch best {
	case IRQPhaseTick:
		return vectorPhaseTick
	case IRQUART:
		return ic.uartIVR
	default:
		return spuriousVector
	}
}
