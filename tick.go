// tick.go - Tick driver / main loop.
//
// Grounded on spec.md §4.6 and the teacher's commented drive-loop shape in
// main.go ("for { cpu.ExecuteInstruction() }"): each iteration runs one
// tick's worth of CPU cycles, pends the phase-tick interrupt, and
// re-evaluates the interrupt level — all synchronously, within one
// goroutine, per spec.md §5's single-threaded cooperative model.

package main

import "time"

const (
	cpuClockHz  = 20_000_000
	tickRateHz  = 1_000
	cyclesPerTick = cpuClockHz / tickRateHz // 20,000
)

// TickDriver runs the emulated CPU forward one tick at a time.
type TickDriver struct {
	cpu      CPUEngine
	ic       *InterruptController
	realtime bool

	// snapshot, if non-nil, receives a best-effort status snapshot once per
	// tick for the debug monitor (SPEC_FULL.md §2.3). Sends are
	// non-blocking: a slow or absent reader never stalls the core.
	snapshot chan<- Snapshot
	gen      *Generator
	uart     *UART
	ticks    uint64
}

// NewTickDriver wires the driver to the CPU engine and interrupt controller.
func NewTickDriver(cpu CPUEngine, ic *InterruptController, realtime bool) *TickDriver {
	return &TickDriver{cpu: cpu, ic: ic, realtime: realtime}
}

// AttachMonitor arms snapshot publication for the debug monitor.
func (d *TickDriver) AttachMonitor(ch chan<- Snapshot, gen *Generator, uart *UART) {
	d.snapshot = ch
	d.gen = gen
	d.uart = uart
}

// Run drives the loop forever. It only returns if stop is closed, giving
// callers (tests, the debug monitor's clean-shutdown path) a way to end it;
// spec.md §5 notes the real loop has no other cancellation.
func (d *TickDriver) Run(stop <-chan struct{}) {
	tickPeriod := time.Second / tickRateHz
	for {
		select {
		case <-stop:
			return
		default:
		}

		start := time.Now()

		d.cpu.ExecuteCycles(cyclesPerTick)
		d.ic.SetPending(IRQPhaseTick)
		d.ticks++

		d.publishSnapshot()

		if d.realtime {
			if elapsed := time.Since(start); elapsed < tickPeriod {
				time.Sleep(tickPeriod - elapsed)
			}
		}
	}
}

func (d *TickDriver) publishSnapshot() {
	if d.snapshot == nil {
		return
	}
	snap := Snapshot{
		Ticks:         d.ticks,
		InterruptLvl:  d.ic.Level(),
	}
	if d.gen != nil {
		snap.GoldcodeN = d.gen.GoldcodeN()
		snap.ClockN = d.gen.ClockN()
	}
	if d.uart != nil {
		snap.UARTAAttached = d.uart.a.transport != nil
		snap.UARTBAttached = d.uart.b.transport != nil
	}
	select {
	case d.snapshot <- snap:
	default:
		// Reader isn't keeping up; drop rather than block the core.
	}
}
