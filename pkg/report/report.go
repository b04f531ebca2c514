// Package report packs button state into the one-byte HID input report and
// decides when a new report is worth sending to the host.
//
// Report layout (1 byte, no report ID):
//
//	Bit 0: button 1 (1 = pressed)
//	Bit 1: button 2 (1 = pressed)
//	Bits 2-7: constant padding, always 0
package report

import "github.com/buttonboxco/tinygo-buttonbox-rp2040/pkg/button"

// Bit positions in the report byte.
const (
	Button1Bit  byte = 0x01
	Button2Bit  byte = 0x02
	ButtonMask  byte = 0x03
	PaddingMask byte = 0xFC
)

// Pack builds the report byte for a button snapshot. The padding bits are
// never set; the value is a pure function of the snapshot.
func Pack(st button.State) byte {
	var r byte
	if st.Button1 {
		r |= Button1Bit
	}
	if st.Button2 {
		r |= Button2Bit
	}
	return r
}

// Unpack decodes a report byte back into a snapshot, ignoring padding bits.
func Unpack(r byte) button.State {
	return button.State{
		Button1: r&Button1Bit != 0,
		Button2: r&Button2Bit != 0,
	}
}

// Valid reports whether only button bits are set.
func Valid(r byte) bool {
	return r&PaddingMask == 0
}
