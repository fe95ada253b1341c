package physics

// Params is the calibration set bound into a Calculator.
// Lengths are in cm, attenuation in 1/cm, voltage in kVp, current in mA.
type Params struct {
	// Phantom geometry
	FOVX          float64 // physical width spanned by the image
	SphereRadius  float64
	SphereCenterX float64
	SphereCenterY float64

	// Effective attenuation mu(kVp)
	MuRef        float64
	VoltageRef   float64
	MuPower      float64
	MuMin        float64
	VoltageFloor float64

	// Incident intensity I0(mA)
	I0Min       float64
	I0Max       float64
	CurrentLow  float64
	CurrentHigh float64
}

// DefaultParams returns the reference calibration of the didactic model.
func DefaultParams() Params {
	return Params{
		FOVX:          20.0,
		SphereRadius:  6.0,
		SphereCenterX: 0.0,
		SphereCenterY: 0.0,

		MuRef:        0.50,
		VoltageRef:   60.0,
		MuPower:      2.2,
		MuMin:        0.05,
		VoltageFloor: 10.0,

		I0Min:       0.60,
		I0Max:       1.40,
		CurrentLow:  10.0,
		CurrentHigh: 500.0,
	}
}
