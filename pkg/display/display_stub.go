//go:build nodebug

// Package display provides a no-op stub when built with the nodebug tag.
// This saves memory by excluding the SSD1306 driver and font data.
//
// To build without display support, use:
//
//	tinygo build -tags=nodebug -target=pico -o firmware.uf2 .
package display

import "github.com/buttonboxco/tinygo-buttonbox-rp2040/pkg/button"

// Manager is a no-op stub when the nodebug build tag is used.
type Manager struct{}

// NewManager returns nil when the nodebug build tag is used.
// The poll loop handles a nil display gracefully.
func NewManager() *Manager {
	return nil
}

// ShowReport is a no-op in nodebug mode.
func (m *Manager) ShowReport(r byte, st button.State) {}
