// Package serial runs the diagnostic protocol over a machine.Serialer. The
// console is read-only: it answers identity and state queries and never
// mutates device state. USB carries only the HID interface, so the console
// lives on a UART.
package serial

import (
	"machine"
	"time"

	"github.com/buttonboxco/tinygo-buttonbox-rp2040/pkg/protocol"
)

// Console services diagnostic requests on a serial port.
type Console struct {
	port    machine.Serialer
	handler *protocol.Handler
}

// NewConsole creates a console over the given port.
func NewConsole(port machine.Serialer, handler *protocol.Handler) *Console {
	return &Console{
		port:    port,
		handler: handler,
	}
}

// Handle reads frames and writes responses until power-off. Run it on its
// own goroutine.
func (c *Console) Handle() {
	r := portReader{port: c.port}
	for {
		frame, err := protocol.ReadFrame(&r)
		if err != nil {
			if err == protocol.ErrCRCMismatch {
				c.respond(&protocol.Response{Status: protocol.StatusCRCError})
			}
			// Desynced or partial input: resync on the next sync byte.
			continue
		}
		c.respond(c.handler.Handle(frame))
	}
}

func (c *Console) respond(resp *protocol.Response) {
	if err := protocol.WriteResponse(c.port, resp); err != nil {
		println("serial: write failed")
	}
}

// portReader adapts the byte-oriented Serialer to io.Reader, yielding while
// the RX buffer is empty.
type portReader struct {
	port machine.Serialer
}

func (r *portReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	for {
		b, err := r.port.ReadByte()
		if err != nil {
			time.Sleep(time.Millisecond)
			continue
		}
		p[0] = b
		return 1, nil
	}
}
