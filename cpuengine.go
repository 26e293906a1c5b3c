// cpuengine.go - CPU engine callback contract.
//
// The CPU instruction interpreter itself is explicitly out of scope
// (spec.md §1): it is a black box that the tick driver asks to run a cycle
// budget, and that calls back into Bus for memory access and into
// InterruptController.Acknowledge when it takes an interrupt. This file
// defines that contract and a reference implementation used by tests and by
// any caller that wants to drive the bus/peripherals without a real core.

package main

// CPUEngine is the callback contract the tick driver relies on (spec.md §2,
// §4.6, §6). A real implementation lives outside this module entirely; it
// is supplied at NewMachine time.
type CPUEngine interface {
	// ExecuteCycles runs up to budget cycles' worth of instructions,
	// issuing Bus reads/writes and InterruptController.Acknowledge calls as
	// needed, and returns the number of cycles actually consumed.
	ExecuteCycles(budget int) int
}

// nullCPUEngine is a CPUEngine that consumes its entire budget and performs
// no bus traffic. It exists so the tick driver, bus, and peripherals can be
// exercised in isolation — exactly the scenario spec.md's property tests
// (§8) and this repo's own tests run under.
type nullCPUEngine struct{}

func (nullCPUEngine) ExecuteCycles(budget int) int { return budget }
