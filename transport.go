// transport.go - UART loopback transports.
//
// Ported from original_source/src/uart.c's UartInit: each channel dials a
// TCP loopback endpoint (UART_PORT, UART_PORT+1). A failed connect leaves
// the channel absent; writes are silently dropped (spec.md §4.3, §7).
//
// Reads run on a per-channel goroutine that posts into a bounded channel so
// a slow or silent remote terminal never blocks the single-threaded core
// (SPEC_FULL.md §6, the "production implementation" spec.md §5 anticipates).

package main

import (
	"net"
	"strconv"
	"time"
)

const rxQueueDepth = 256

// Transport is a byte-oriented bidirectional stream handle for one UART
// channel. A channel with no Transport is "absent" per spec.md §3.
type Transport struct {
	conn net.Conn
	rx   chan byte
	done chan struct{}
}

// DialTransport connects to 127.0.0.1:port. On failure it returns
// (nil, err) — the caller marks the channel absent and continues; this is
// never a fatal error (spec.md §7, "Transport... non-fatal, channel marked
// absent, logged once").
func DialTransport(port int) (*Transport, error) {
	conn, err := net.DialTimeout("tcp", net.JoinHostPort("127.0.0.1", strconv.Itoa(port)), 2*time.Second)
	if err != nil {
		return nil, err
	}
	t := &Transport{
		conn: conn,
		rx:   make(chan byte, rxQueueDepth),
		done: make(chan struct{}),
	}
	go t.readLoop()
	return t, nil
}

func (t *Transport) readLoop() {
	buf := make([]byte, 1)
	for {
		n, err := t.conn.Read(buf)
		if err != nil {
			return
		}
		if n == 1 {
			select {
			case t.rx <- buf[0]:
			case <-t.done:
				return
			}
		}
	}
}

// Send transmits one byte. Errors are swallowed by the caller (UART device):
// the real device has no way to report a send failure to the firmware.
func (t *Transport) Send(b byte) error {
	_, err := t.conn.Write([]byte{b})
	return err
}

// TryRecv returns the next received byte and true, or (0, false) if none is
// queued yet — a non-blocking poll so the tick loop never stalls on RX.
func (t *Transport) TryRecv() (byte, bool) {
	select {
	case b := <-t.rx:
		return b, true
	default:
		return 0, false
	}
}

// Close releases the connection and stops the read goroutine.
func (t *Transport) Close() error {
	close(t.done)
	return t.conn.Close()
}
