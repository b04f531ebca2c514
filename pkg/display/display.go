//go:build !nodebug

// Package display drives an optional SSD1306 OLED showing the last report
// sent to the host. It is a bench debugging aid, not part of the HID path.
//
// To build without display support (saves RAM and flash), use:
//
//	tinygo build -tags=nodebug -target=pico -o firmware.uf2 .
package display

import (
	"fmt"
	"image/color"
	"machine"
	"time"

	"tinygo.org/x/drivers/ssd1306"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"

	"github.com/buttonboxco/tinygo-buttonbox-rp2040/pkg/button"
	"github.com/buttonboxco/tinygo-buttonbox-rp2040/pkg/identity"
)

const (
	// I2C configuration
	i2cAddress = 0x3C
	sclPin     = machine.GPIO1
	sdaPin     = machine.GPIO0

	// Display dimensions
	screenWidth  = 128
	screenHeight = 64

	// Text rows (baseline y coordinates)
	rowTitle  = 12
	rowReport = 30
	rowStatus = 48
)

var white = color.RGBA{255, 255, 255, 255}

// Manager handles the SSD1306 display for debug output.
type Manager struct {
	device *ssd1306.Device
	i2c    *machine.I2C
}

// NewManager creates and initializes the display manager.
// Returns nil if display initialization fails (non-fatal for debug).
func NewManager() *Manager {
	i2c := machine.I2C0
	if err := i2c.Configure(machine.I2CConfig{
		Frequency: 400000, // 400kHz fast mode
		SCL:       sclPin,
		SDA:       sdaPin,
	}); err != nil {
		println("display: i2c config failed")
		return nil
	}

	// Small delay for bus stabilization
	time.Sleep(10 * time.Millisecond)

	dev := ssd1306.NewI2C(i2c)
	dev.Configure(ssd1306.Config{
		Address: i2cAddress,
		Width:   screenWidth,
		Height:  screenHeight,
	})
	dev.ClearDisplay()

	m := &Manager{
		device: dev,
		i2c:    i2c,
	}

	m.writeLine(rowTitle, identity.Product)
	m.writeLine(rowStatus, "waiting for host")
	m.device.Display()

	return m
}

// ShowReport draws the report byte and per-button markers after a state
// change made it to the host.
func (m *Manager) ShowReport(r byte, st button.State) {
	m.device.ClearBuffer()
	m.writeLine(rowTitle, identity.Product)
	m.writeLine(rowReport, fmt.Sprintf("report 0x%02X", r))
	m.writeLine(rowStatus, "B1 "+mark(st.Button1)+"   B2 "+mark(st.Button2))
	m.device.Display()
}

func (m *Manager) writeLine(y int16, s string) {
	tinyfont.WriteLine(m.device, &proggy.TinySZ8pt7b, 0, y, s, white)
}

func mark(pressed bool) string {
	if pressed {
		return "*"
	}
	return "-"
}
