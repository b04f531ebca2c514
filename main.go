package main

import (
	"machine"
	"sync/atomic"
	"time"

	"github.com/buttonboxco/tinygo-buttonbox-rp2040/pkg/button"
	"github.com/buttonboxco/tinygo-buttonbox-rp2040/pkg/display"
	"github.com/buttonboxco/tinygo-buttonbox-rp2040/pkg/gamepad"
	"github.com/buttonboxco/tinygo-buttonbox-rp2040/pkg/identity"
	"github.com/buttonboxco/tinygo-buttonbox-rp2040/pkg/protocol"
	"github.com/buttonboxco/tinygo-buttonbox-rp2040/pkg/report"
	"github.com/buttonboxco/tinygo-buttonbox-rp2040/pkg/usbdesc"
	"github.com/buttonboxco/tinygo-buttonbox-rp2040/serial"
)

// Physical wiring: both switches close to ground, the lines idle high
// through the internal pull-ups.
const (
	button1Pin = machine.GP14
	button2Pin = machine.GP15
)

// pollInterval paces the sample loop so empty polls do not saturate the USB
// bus. Tunable; not a correctness requirement.
const pollInterval = 100 * time.Microsecond

func main() {
	// Descriptors must be in place before the HID subsystem starts.
	usbdesc.Install()
	pad := gamepad.Port()

	button1Pin.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	button2Pin.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	sampler := button.NewSampler(button1Pin, button2Pin)
	emitter := report.NewEmitter(pad)

	// Published snapshot of the last sent report for the diagnostic
	// console. The emitter's own field stays confined to this goroutine.
	var lastReport atomic.Uint32

	handler := protocol.NewHandler(identity.DeviceInfo(), func() byte {
		return byte(lastReport.Load())
	}, usbdesc.ReportDescriptor)

	// Diagnostic console on UART1; I2C0 holds GP0/GP1 for the display.
	uart := machine.UART1
	uart.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.UART1_TX_PIN,
		RX:       machine.UART1_RX_PIN,
	})
	console := serial.NewConsole(uart, handler)
	go console.Handle()

	screen := display.NewManager()

	for {
		state := sampler.Sample()
		switch emitter.Update(state) {
		case report.OutcomeSent:
			lastReport.Store(uint32(emitter.LastSent()))
			if screen != nil {
				screen.ShowReport(emitter.LastSent(), state)
			}
		case report.OutcomeBusy:
			// Host has not drained the endpoint yet; the next cycle
			// re-compares and retries the same value.
		case report.OutcomeUnavailable:
			// Unconfigured or detached; sends resume once the stack
			// reports the configured state again.
		}
		time.Sleep(pollInterval)
	}
}
