// Package identity pins the USB identity of the button box. The values are
// fixed for host compatibility; hosts remember input mappings per VID/PID,
// so changing them orphans existing setups.
package identity

import (
	"encoding/binary"
	"errors"
)

const (
	VendorID  uint16 = 0x16C0
	ProductID uint16 = 0x27DD

	Manufacturer = "Button Box Co"
	Product      = "2-Button Box"
	SerialNumber = "001"

	// Interface-specific device class; the HID interface carries the class.
	DeviceClass uint8 = 0x00

	FirmwareMajor uint8 = 0
	FirmwareMinor uint8 = 1

	ButtonCount uint8 = 2
)

var ErrInvalidSize = errors.New("invalid info size")

// Info is the fixed-layout identity record served over the diagnostic
// protocol.
// Total size: 8 bytes
// Layout:
//
//	[0-1]: VendorID (uint16)
//	[2-3]: ProductID (uint16)
//	[4]:   FirmwareMajor (uint8)
//	[5]:   FirmwareMinor (uint8)
//	[6]:   ButtonCount (uint8)
//	[7]:   Reserved (uint8)
type Info struct {
	VendorID      uint16
	ProductID     uint16
	FirmwareMajor uint8
	FirmwareMinor uint8
	ButtonCount   uint8
	Reserved      uint8
}

// DeviceInfo returns the identity of this firmware build.
func DeviceInfo() Info {
	return Info{
		VendorID:      VendorID,
		ProductID:     ProductID,
		FirmwareMajor: FirmwareMajor,
		FirmwareMinor: FirmwareMinor,
		ButtonCount:   ButtonCount,
	}
}

// MarshalBinary implements encoding.BinaryMarshaler for Info.
func (i *Info) MarshalBinary() ([]byte, error) {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint16(buf[0:], i.VendorID)
	binary.LittleEndian.PutUint16(buf[2:], i.ProductID)
	buf[4] = i.FirmwareMajor
	buf[5] = i.FirmwareMinor
	buf[6] = i.ButtonCount
	buf[7] = i.Reserved
	return buf, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler for Info.
func (i *Info) UnmarshalBinary(data []byte) error {
	if len(data) < 8 {
		return ErrInvalidSize
	}

	i.VendorID = binary.LittleEndian.Uint16(data[0:])
	i.ProductID = binary.LittleEndian.Uint16(data[2:])
	i.FirmwareMajor = data[4]
	i.FirmwareMinor = data[5]
	i.ButtonCount = data[6]
	i.Reserved = data[7]
	return nil
}
