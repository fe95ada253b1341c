// Package console implements the interactive terminal preview of the simulator.
package console

import "fmt"

// Slider ranges and defaults of the acquisition controls.
const (
	CurrentMin     = 10.0
	CurrentMax     = 500.0
	VoltageMin     = 40.0
	VoltageMax     = 120.0
	DefaultCurrent = 200.0
	DefaultVoltage = 70.0

	coarseCurrentStep = 10.0
	coarseVoltageStep = 5.0
	fineStep          = 1.0
)

// Controls holds the tube current (mA) and voltage (kVp) selected by the user.
type Controls struct {
	Current float64
	Voltage float64
}

// DefaultControls returns the startup settings, 200 mA at 70 kVp.
func DefaultControls() Controls {
	return Controls{Current: DefaultCurrent, Voltage: DefaultVoltage}
}

// Clamp keeps both controls inside their slider range.
func (c Controls) Clamp() Controls {
	return Controls{
		Current: min(max(c.Current, CurrentMin), CurrentMax),
		Voltage: min(max(c.Voltage, VoltageMin), VoltageMax),
	}
}

// Apply returns the controls after key k. Keys that do not move a slider
// leave the controls unchanged.
func (c Controls) Apply(k Key) Controls {
	switch k {
	case KeyCurrentUp:
		c.Current += coarseCurrentStep
	case KeyCurrentDown:
		c.Current -= coarseCurrentStep
	case KeyCurrentUpFine:
		c.Current += fineStep
	case KeyCurrentDownFine:
		c.Current -= fineStep
	case KeyVoltageUp:
		c.Voltage += coarseVoltageStep
	case KeyVoltageDown:
		c.Voltage -= coarseVoltageStep
	case KeyVoltageUpFine:
		c.Voltage += fineStep
	case KeyVoltageDownFine:
		c.Voltage -= fineStep
	}
	return c.Clamp()
}

// StatusLine formats the status bar shown under the preview.
func StatusLine(c Controls, width, height int) string {
	return fmt.Sprintf("mA: %.0f kVp: %.0f Size: %dx%d", c.Current, c.Voltage, width, height)
}
