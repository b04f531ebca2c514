// Package gamepad exposes the button box as a USB HID gamepad input
// endpoint. The input report is a single byte with no report ID; the
// matching descriptor lives in pkg/usbdesc.
package gamepad

import (
	"machine"
	"machine/usb"
	"machine/usb/hid"

	"github.com/buttonboxco/tinygo-buttonbox-rp2040/pkg/report"
	"github.com/buttonboxco/tinygo-buttonbox-rp2040/pkg/usbdesc"
)

// Device is the HID input endpoint for the button box. It implements
// report.Endpoint.
type Device struct {
	waitTxc bool
}

var device *Device

// Port returns the endpoint, registering it with the HID subsystem on first
// use. Call usbdesc.Install before the first Port call so the stack
// enumerates with the button box descriptor.
func Port() *Device {
	if device == nil {
		device = &Device{}
		hid.SetHandler(device)
		// SetHandler registers the class request handler under the stock
		// composite interface number. The HID-only configuration numbers
		// its lone interface 0, so SET_IDLE and GET_REPORT arrive with
		// wIndex 0 and must route there as well.
		machine.ConfigureUSBEndpoint(usbdesc.Descriptor,
			nil,
			[]usb.SetupConfig{
				{Index: usbdesc.HIDInterfaceNumber, Handler: hid.DefaultSetupHandler},
			})
	}
	return device
}

// TxHandler is called by the USB interrupt when the host has drained the
// endpoint. This implements the hidDevicer interface.
// There is no queue to refill: the poll loop retries by re-comparison.
func (d *Device) TxHandler() bool {
	d.waitTxc = false
	return false
}

// RxHandler implements the hidDevicer interface. The button box has no
// output reports.
func (d *Device) RxHandler(b []byte) bool {
	return false
}

// Ready reports whether the host has configured the device.
func (d *Device) Ready() bool {
	return machine.USBDev.InitEndpointComplete
}

// Send pushes a one-byte input report onto the interrupt IN endpoint.
// It returns report.ErrUnavailable until the host has configured the device
// and report.ErrBusy while the previous packet is still in flight.
func (d *Device) Send(r byte) error {
	if !machine.USBDev.InitEndpointComplete {
		return report.ErrUnavailable
	}
	if d.waitTxc {
		return report.ErrBusy
	}
	d.waitTxc = true
	hid.SendUSBPacket([]byte{r})
	return nil
}
