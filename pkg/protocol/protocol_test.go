package protocol

import (
	"bytes"
	"testing"

	"github.com/buttonboxco/tinygo-buttonbox-rp2040/pkg/identity"
)

var testDescriptor = []byte{0x05, 0x01, 0x09, 0x05, 0xA1, 0x01, 0xC0}

func newTestHandler(state *byte) *Handler {
	return NewHandler(identity.DeviceInfo(), func() byte {
		return *state
	}, testDescriptor)
}

func TestFrameEncodingDecoding(t *testing.T) {
	original := &Frame{
		Cmd:     CmdPing,
		Payload: []byte{1, 2, 3, 4},
	}

	var buf bytes.Buffer
	if err := WriteFrame(&buf, original); err != nil {
		t.Fatalf("WriteFrame failed: %v", err)
	}

	decoded, err := ReadFrame(&buf)
	if err != nil {
		t.Fatalf("ReadFrame failed: %v", err)
	}

	if decoded.Cmd != original.Cmd {
		t.Errorf("Cmd: expected 0x%x, got 0x%x", original.Cmd, decoded.Cmd)
	}
	if !bytes.Equal(decoded.Payload, original.Payload) {
		t.Errorf("Payload: expected %v, got %v", original.Payload, decoded.Payload)
	}
}

func TestFrameCRCMismatch(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteFrame(&buf, &Frame{Cmd: CmdPing, Payload: []byte{9}}); err != nil {
		t.Fatalf("WriteFrame failed: %v", err)
	}

	// Flip a payload bit; the CRC no longer matches.
	raw := buf.Bytes()
	raw[4] ^= 0x01

	if _, err := ReadFrame(bytes.NewReader(raw)); err != ErrCRCMismatch {
		t.Errorf("Expected ErrCRCMismatch, got %v", err)
	}
}

func TestFrameBadSync(t *testing.T) {
	raw := []byte{0x55, CmdPing, 0, 0, 0, 0}
	if _, err := ReadFrame(bytes.NewReader(raw)); err != ErrInvalidFrame {
		t.Errorf("Expected ErrInvalidFrame, got %v", err)
	}
}

func TestPingCommand(t *testing.T) {
	state := byte(0)
	handler := newTestHandler(&state)

	frame := &Frame{
		Cmd:     CmdPing,
		Payload: []byte{0xAA, 0xBB, 0xCC},
	}

	resp := handler.Handle(frame)

	if resp.Status != StatusOK {
		t.Errorf("Expected status OK, got 0x%x", resp.Status)
	}
	if !bytes.Equal(resp.Payload, frame.Payload) {
		t.Errorf("Expected echo payload, got %v", resp.Payload)
	}
}

func TestGetInfo(t *testing.T) {
	state := byte(0)
	handler := newTestHandler(&state)

	resp := handler.Handle(&Frame{Cmd: CmdGetInfo})
	if resp.Status != StatusOK {
		t.Fatalf("GetInfo failed: status 0x%x", resp.Status)
	}

	var info identity.Info
	if err := info.UnmarshalBinary(resp.Payload); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if info.VendorID != identity.VendorID || info.ProductID != identity.ProductID {
		t.Errorf("Identity mismatch: got %+v", info)
	}
}

func TestGetState(t *testing.T) {
	state := byte(0x01)
	handler := newTestHandler(&state)

	resp := handler.Handle(&Frame{Cmd: CmdGetState})
	if resp.Status != StatusOK {
		t.Fatalf("GetState failed: status 0x%x", resp.Status)
	}
	if len(resp.Payload) != 1 || resp.Payload[0] != 0x01 {
		t.Errorf("Expected report 0x01, got %v", resp.Payload)
	}

	// The handler tracks the published snapshot.
	state = 0x03
	resp = handler.Handle(&Frame{Cmd: CmdGetState})
	if resp.Payload[0] != 0x03 {
		t.Errorf("Expected report 0x03, got 0x%02x", resp.Payload[0])
	}
}

func TestGetStateRejectsPayload(t *testing.T) {
	state := byte(0)
	handler := newTestHandler(&state)

	resp := handler.Handle(&Frame{Cmd: CmdGetState, Payload: []byte{1}})
	if resp.Status != StatusInvalidData {
		t.Errorf("Expected status InvalidData, got 0x%x", resp.Status)
	}
}

func TestGetDescriptor(t *testing.T) {
	state := byte(0)
	handler := newTestHandler(&state)

	resp := handler.Handle(&Frame{Cmd: CmdGetDescriptor})
	if resp.Status != StatusOK {
		t.Fatalf("GetDescriptor failed: status 0x%x", resp.Status)
	}
	if !bytes.Equal(resp.Payload, testDescriptor) {
		t.Errorf("Descriptor mismatch: got %v", resp.Payload)
	}
}

func TestDiscover(t *testing.T) {
	state := byte(0)
	handler := newTestHandler(&state)

	resp := handler.Handle(&Frame{Cmd: CmdDiscover})
	if resp.Status != StatusOK {
		t.Fatalf("Discover failed: status 0x%x", resp.Status)
	}
	if string(resp.Payload) != identity.Product {
		t.Errorf("Expected product string, got %q", resp.Payload)
	}
}

func TestUnknownCommand(t *testing.T) {
	state := byte(0)
	handler := newTestHandler(&state)

	resp := handler.Handle(&Frame{Cmd: 0x7F})
	if resp.Status != StatusInvalidCmd {
		t.Errorf("Expected status InvalidCmd, got 0x%x", resp.Status)
	}
}
