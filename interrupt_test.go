package main

import "testing"

// TestInterruptLevelIsMaxPendingPriority is spec.md §8 scenario 8: the level
// the controller presents is the highest priority among pending flags.
func TestInterruptLevelIsMaxPendingPriority(t *testing.T) {
	ic := NewInterruptController()
	if got := ic.Level(); got != 0 {
		t.Fatalf("Level() with nothing pending = %d, want 0", got)
	}

	ic.SetPending(IRQUART)
	if got := ic.Level(); got != priorityUART {
		t.Fatalf("Level() with UART pending = %d, want %d", got, priorityUART)
	}

	ic.SetPending(IRQPhaseTick)
	if got := ic.Level(); got != priorityPhaseTick {
		t.Fatalf("Level() with both pending = %d, want %d", got, priorityPhaseTick)
	}
}

// TestInterruptPriorityPreemption is spec.md §8 scenario 9: with both the
// phase-tick and UART flags pending, level reads 5, acknowledge returns the
// phase-tick vector and clears only that flag, dropping the level to the
// UART's priority.
func TestInterruptPriorityPreemption(t *testing.T) {
	ic := NewInterruptController()
	ic.SetPending(IRQUART)
	ic.SetPending(IRQPhaseTick)

	if got := ic.Level(); got != 5 {
		t.Fatalf("Level() = %d, want 5", got)
	}

	vec := ic.Acknowledge()
	if vec != vectorPhaseTick {
		t.Fatalf("Acknowledge() = %d, want %d (phase-tick vector)", vec, vectorPhaseTick)
	}

	if got := ic.Level(); got != priorityUART {
		t.Fatalf("Level() after ack = %d, want %d (UART still pending)", got, priorityUART)
	}

	// Second acknowledge clears the UART flag and returns its latched vector.
	vec = ic.Acknowledge()
	if vec != 0x0F {
		t.Fatalf("Acknowledge() = 0x%02X, want 0x0F (default UART vector)", vec)
	}
	if got := ic.Level(); got != 0 {
		t.Fatalf("Level() after both acks = %d, want 0", got)
	}
}

func TestInterruptAcknowledgeWithNothingPendingIsSpurious(t *testing.T) {
	ic := NewInterruptController()
	if got := ic.Acknowledge(); got != spuriousVector {
		t.Fatalf("Acknowledge() with nothing pending = 0x%02X, want 0x%02X", got, spuriousVector)
	}
}

func TestInterruptUARTVectorIsLatchedAndReturnedOnAck(t *testing.T) {
	ic := NewInterruptController()
	ic.SetUARTVector(0x42)
	ic.SetPending(IRQUART)

	if got := ic.Acknowledge(); got != 0x42 {
		t.Fatalf("Acknowledge() = 0x%02X, want 0x42", got)
	}
}
