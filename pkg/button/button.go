// Package button samples the two momentary switches wired to the box.
// Each switch closes to ground and its line idles high through an internal
// pull-up, so the sampler inverts the electrical level into pressed=true
// polarity. Downstream code never sees the active-low wiring convention.
package button

// State is the pressed/released snapshot of both buttons. It is recomputed
// every poll cycle and never persisted.
type State struct {
	Button1 bool
	Button2 bool
}

// Pin is the single GPIO capability the sampler needs. machine.Pin
// satisfies it directly.
type Pin interface {
	Get() bool
}

// Sampler reads the instantaneous logic level of the two button lines.
type Sampler struct {
	button1 Pin
	button2 Pin
}

// NewSampler creates a sampler over two input pins configured with pull-ups.
func NewSampler(button1, button2 Pin) *Sampler {
	return &Sampler{
		button1: button1,
		button2: button2,
	}
}

// Sample reads both lines. A low read means the switch is closed (pressed).
// A stuck or disconnected line reads high and is indistinguishable from
// released; that is a hardware limitation, not an error.
//
// No debouncing happens here: mechanical bounce produces exactly as many
// state transitions as the contacts generate.
func (s *Sampler) Sample() State {
	return State{
		Button1: !s.button1.Get(),
		Button2: !s.button2.Get(),
	}
}
