// Package protocol implements the framed diagnostic protocol served on the
// serial console. The device side is strictly read-only: every command
// reports identity or state, none changes anything.
//
// Frame format:
//
//	[SYNC:1][CMD:1][LEN:2][PAYLOAD:LEN][CRC:2]
//	- SYNC: 0xAA (frame start marker)
//	- CMD: Command byte
//	- LEN: Payload length (uint16, little-endian)
//	- PAYLOAD: Variable length data
//	- CRC: CRC16-CCITT of [CMD][LEN][PAYLOAD]
//
// Response format is identical with a status byte in place of the command.
package protocol

import (
	"encoding/binary"
	"errors"
	"io"

	"github.com/buttonboxco/tinygo-buttonbox-rp2040/pkg/identity"
)

const (
	SyncByte = 0xAA

	// Command codes (host → device)
	CmdPing          = 0x01
	CmdGetInfo       = 0x02
	CmdGetState      = 0x03
	CmdGetDescriptor = 0x04
	CmdDiscover      = 0x05

	// Response status codes (device → host)
	StatusOK          = 0x00
	StatusError       = 0x01
	StatusInvalidCmd  = 0x02
	StatusInvalidData = 0x03
	StatusCRCError    = 0x04
)

var (
	ErrInvalidFrame = errors.New("invalid frame")
	ErrCRCMismatch  = errors.New("CRC mismatch")
)

// maxPayload bounds a frame before allocation. Every real payload is tiny;
// the HID report descriptor is the largest response.
const maxPayload = 256

// StateFunc returns the last report transmitted to the host. It must read a
// published snapshot, never the emitter's own field, so the emitter keeps a
// single owner.
type StateFunc func() byte

// Handler processes protocol commands.
type Handler struct {
	info       identity.Info
	state      StateFunc
	descriptor []byte
}

// NewHandler creates a handler serving the given identity, report snapshot
// and HID report descriptor.
func NewHandler(info identity.Info, state StateFunc, descriptor []byte) *Handler {
	return &Handler{
		info:       info,
		state:      state,
		descriptor: descriptor,
	}
}

// Frame represents a protocol frame.
type Frame struct {
	Cmd     uint8
	Payload []byte
}

// Response represents a protocol response.
type Response struct {
	Status  uint8
	Payload []byte
}

// ReadFrame reads and validates a frame from the reader.
func ReadFrame(r io.Reader) (*Frame, error) {
	// Read sync byte
	sync := make([]byte, 1)
	if _, err := io.ReadFull(r, sync); err != nil {
		return nil, err
	}
	if sync[0] != SyncByte {
		return nil, ErrInvalidFrame
	}

	// Read header (cmd + len)
	header := make([]byte, 3)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, err
	}

	cmd := header[0]
	length := binary.LittleEndian.Uint16(header[1:])

	if length > maxPayload {
		return nil, ErrInvalidFrame
	}

	// Read payload
	var payload []byte
	if length > 0 {
		payload = make([]byte, length)
		if _, err := io.ReadFull(r, payload); err != nil {
			return nil, err
		}
	}

	// Read CRC
	crcBytes := make([]byte, 2)
	if _, err := io.ReadFull(r, crcBytes); err != nil {
		return nil, err
	}
	receivedCRC := binary.LittleEndian.Uint16(crcBytes)

	calculatedCRC := calcCRC(append(header, payload...))
	if receivedCRC != calculatedCRC {
		return nil, ErrCRCMismatch
	}

	return &Frame{
		Cmd:     cmd,
		Payload: payload,
	}, nil
}

// WriteFrame writes a command frame to the writer. The device never sends
// commands; this is the host side, kept for tooling and tests.
func WriteFrame(w io.Writer, frame *Frame) error {
	return writeFramed(w, frame.Cmd, frame.Payload)
}

// WriteResponse writes a response frame to the writer.
func WriteResponse(w io.Writer, resp *Response) error {
	return writeFramed(w, resp.Status, resp.Payload)
}

// writeFramed encodes [SYNC][code][LEN][PAYLOAD][CRC] in a single write.
func writeFramed(w io.Writer, code uint8, payload []byte) error {
	payloadLen := uint16(len(payload))
	buf := make([]byte, 0, 6+len(payload))

	buf = append(buf, SyncByte, code)

	lenBytes := make([]byte, 2)
	binary.LittleEndian.PutUint16(lenBytes, payloadLen)
	buf = append(buf, lenBytes...)
	buf = append(buf, payload...)

	crcBytes := make([]byte, 2)
	binary.LittleEndian.PutUint16(crcBytes, calcCRC(buf[1:]))
	buf = append(buf, crcBytes...)

	_, err := w.Write(buf)
	return err
}

// Handle dispatches a frame to its command handler.
func (h *Handler) Handle(frame *Frame) *Response {
	switch frame.Cmd {
	case CmdPing:
		// Echo the payload back.
		return &Response{Status: StatusOK, Payload: frame.Payload}
	case CmdGetInfo:
		return h.handleGetInfo()
	case CmdGetState:
		return h.handleGetState(frame.Payload)
	case CmdGetDescriptor:
		return &Response{Status: StatusOK, Payload: h.descriptor}
	case CmdDiscover:
		return &Response{Status: StatusOK, Payload: []byte(identity.Product)}
	default:
		return &Response{Status: StatusInvalidCmd}
	}
}

// handleGetInfo returns the marshaled identity record.
// Response: [VID:2][PID:2][FwMajor:1][FwMinor:1][Buttons:1][Reserved:1]
func (h *Handler) handleGetInfo() *Response {
	data, err := h.info.MarshalBinary()
	if err != nil {
		return &Response{Status: StatusError}
	}
	return &Response{Status: StatusOK, Payload: data}
}

// handleGetState returns the last report sent to the host.
// Response: [Report:1]
func (h *Handler) handleGetState(payload []byte) *Response {
	if len(payload) != 0 {
		return &Response{Status: StatusInvalidData}
	}
	return &Response{Status: StatusOK, Payload: []byte{h.state()}}
}

// calcCRC calculates CRC16-CCITT.
// Polynomial: 0x1021, Initial: 0xFFFF
func calcCRC(data []byte) uint16 {
	var crc uint16 = 0xFFFF

	for _, b := range data {
		crc ^= uint16(b) << 8
		for i := 0; i < 8; i++ {
			if crc&0x8000 != 0 {
				crc = (crc << 1) ^ 0x1021
			} else {
				crc <<= 1
			}
		}
	}

	return crc
}
