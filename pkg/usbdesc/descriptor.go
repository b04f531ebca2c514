// Package usbdesc assembles the USB descriptors for the button box: a
// single-interface HID gamepad with a one-byte input report and the fixed
// vendor identity from pkg/identity.
package usbdesc

import (
	"machine/usb"
	"machine/usb/descriptor"

	"github.com/buttonboxco/tinygo-buttonbox-rp2040/pkg/identity"
)

// HIDInterfaceNumber is the lone interface of the HID-only configuration.
// Class requests (SET_IDLE, GET_REPORT) arrive with this number in wIndex,
// so the HID setup handler must be registered under it as well.
const HIDInterfaceNumber = 0

// ReportDescriptor is the HID report descriptor for the 2-button gamepad.
// Hosts cache the layout per VID/PID, so it must stay bit-exact:
//
//	Usage Page (Generic Desktop) / Usage (Gamepad) / Collection (Application)
//	  Usage (Pointer) / Collection (Physical)
//	    2 button bits (usages 1-2), 6 constant padding bits
//
// No report ID: the single input report is implicit.
var ReportDescriptor = descriptor.Append([][]byte{
	descriptor.HIDUsagePageGenericDesktop,
	descriptor.HIDUsageDesktopGamepad,
	descriptor.HIDCollectionApplication,
	descriptor.HIDUsageDesktopPointer,
	descriptor.HIDCollectionPhysical,
	// 2 buttons, 1 bit each
	descriptor.HIDUsagePageButton,
	descriptor.HIDUsageMinimum(1),
	descriptor.HIDUsageMaximum(2),
	descriptor.HIDLogicalMinimum(0),
	descriptor.HIDLogicalMaximum(1),
	descriptor.HIDReportCount(2),
	descriptor.HIDReportSize(1),
	descriptor.HIDInputDataVarAbs,
	// 6 bits of constant padding to close out the byte
	descriptor.HIDReportCount(6),
	descriptor.HIDReportSize(1),
	descriptor.HIDInputConstVarAbs,
	descriptor.HIDCollectionEnd,
	descriptor.HIDCollectionEnd,
})

// deviceBytes builds the device descriptor block. Only the class triplet
// needs patching here: the machine layer stamps idVendor/idProduct from the
// machine/usb package variables on every device descriptor request, so a
// byte patch for them would be overwritten anyway.
func deviceBytes() []byte {
	d := make([]byte, len(descriptor.DeviceCDC.Bytes()))
	copy(d, descriptor.DeviceCDC.Bytes())

	d[4] = identity.DeviceClass // bDeviceClass: interface-specific
	d[5] = 0x00                 // bDeviceSubClass
	d[6] = 0x00                 // bDeviceProtocol

	return d
}

// configurationBytes builds the HID-only configuration: one interface with
// the interrupt IN/OUT endpoint pair the HID transport uses.
func configurationBytes() []byte {
	intf := make([]byte, len(descriptor.InterfaceHID.Bytes()))
	copy(intf, descriptor.InterfaceHID.Bytes())
	intf[2] = HIDInterfaceNumber // bInterfaceNumber

	classHID := make([]byte, len(descriptor.ClassHID.Bytes()))
	copy(classHID, descriptor.ClassHID.Bytes())
	// Update ClassLength to match our report descriptor
	classHID[7] = byte(len(ReportDescriptor))
	classHID[8] = byte(len(ReportDescriptor) >> 8)

	cfg := descriptor.Append([][]byte{
		descriptor.ConfigurationCDCHID.Bytes(),
		intf,
		classHID,
		descriptor.EndpointEP4IN.Bytes(),
		descriptor.EndpointEP5OUT.Bytes(),
	})

	// bNumInterfaces for the single-interface layout. wTotalLength is
	// recomputed from the configuration length by the machine layer on
	// every device descriptor request; no patch needed.
	cfg[4] = 1

	return cfg
}

// Descriptor is the complete USB descriptor for the button box.
var Descriptor = descriptor.Descriptor{
	Device:        deviceBytes(),
	Configuration: configurationBytes(),
	HID: map[uint16][]byte{
		HIDInterfaceNumber: ReportDescriptor,
	},
}

// Install points the USB stack at the button box identity. VID/PID and the
// manufacturer/product/serial strings go through the exported machine/usb
// variables, which the machine layer reads when answering descriptor
// requests; the stock CDC+HID descriptor is replaced with the HID-only one.
// It must run before the HID subsystem is enabled, i.e. before the first
// gamepad.Port call.
func Install() {
	usb.VendorID = identity.VendorID
	usb.ProductID = identity.ProductID
	usb.Manufacturer = identity.Manufacturer
	usb.Product = identity.Product
	usb.Serial = identity.SerialNumber

	descriptor.CDCHID.Device = Descriptor.Device
	descriptor.CDCHID.Configuration = Descriptor.Configuration
	descriptor.CDCHID.HID = Descriptor.HID
}
