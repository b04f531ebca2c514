package report

import (
	"errors"

	"github.com/buttonboxco/tinygo-buttonbox-rp2040/pkg/button"
)

// Endpoint errors. The emitter maps ErrBusy onto OutcomeBusy and treats any
// other failure as the device being unavailable.
var (
	ErrBusy        = errors.New("hid endpoint busy")
	ErrUnavailable = errors.New("usb device not configured")
)

// Endpoint delivers a one-byte input report to the host.
type Endpoint interface {
	Send(report byte) error
}

// Outcome is the result of one Update call.
type Outcome uint8

const (
	OutcomeUnchanged Outcome = iota
	OutcomeSent
	OutcomeBusy
	OutcomeUnavailable
)

func (o Outcome) String() string {
	switch o {
	case OutcomeUnchanged:
		return "unchanged"
	case OutcomeSent:
		return "sent"
	case OutcomeBusy:
		return "busy"
	case OutcomeUnavailable:
		return "unavailable"
	}
	return "unknown"
}

// Emitter owns the last report value successfully handed to the endpoint.
// All reads and writes of that value must stay on one goroutine; the poll
// loop in main is that owner.
type Emitter struct {
	endpoint Endpoint
	lastSent byte
}

// NewEmitter creates an emitter. The initial last-sent value is 0x00, all
// released, matching what the host assumes before the first report.
func NewEmitter(endpoint Endpoint) *Emitter {
	return &Emitter{endpoint: endpoint}
}

// Update packs the snapshot and sends it if it differs from the last report
// the endpoint accepted. lastSent moves only on a successful send, so a
// Busy or Unavailable attempt needs no bookkeeping: the next poll cycle
// packs the same candidate, the comparison fails again, and the send is
// retried until it succeeds or the state changes.
func (e *Emitter) Update(st button.State) Outcome {
	candidate := Pack(st)
	if candidate == e.lastSent {
		return OutcomeUnchanged
	}
	switch err := e.endpoint.Send(candidate); {
	case err == nil:
		e.lastSent = candidate
		return OutcomeSent
	case errors.Is(err, ErrBusy):
		return OutcomeBusy
	default:
		return OutcomeUnavailable
	}
}

// LastSent returns the report value most recently accepted by the endpoint.
func (e *Emitter) LastSent() byte {
	return e.lastSent
}
