// internal/physics/attenuation.go
// Beer-Lambert projection through a single-material spherical phantom.
//
//	I(x, y) = I0(mA) * exp(-mu(kVp) * t(x, y))
//
// Steps:
//  1. Thickness t [cm]: chord through a sphere of radius R, 2*sqrt(R^2 - r^2) for r <= R, else 0.
//  2. mu [1/cm] falls off with kVp by a power law, floored at MuMin.
//  3. I0 rises linearly with mA over [CurrentLow, CurrentHigh], clamped at both ends.
//  4. Display clamp to [0, 1].
//
// Didactic model: no scatter, heel effect, detector response or noise.

package physics

import "math"

// Calculator evaluates the attenuation model for a fixed calibration set.
// It holds no mutable state and is safe for concurrent use.
type Calculator struct {
	p Params
}

// NewCalculator binds a calibration set into a Calculator.
func NewCalculator(p Params) *Calculator {
	return &Calculator{p: p}
}

// Params returns the calibration set the calculator was built with.
func (c *Calculator) Params() Params {
	return c.p
}

// Compute returns the normalized intensity field for the given tube current (mA),
// tube voltage (kVp) and grid shape. Every value lies in [0, 1].
//
// seed is reserved for stochastic effects (noise, scatter) and is currently ignored.
//
// Compute panics if shape has a non-positive dimension; callers validate with Shape.Validate.
func (c *Calculator) Compute(current, voltage float64, shape Shape, seed *int64) *Field {
	t := c.Thickness(shape)
	mu := c.Mu(voltage)
	i0 := c.IncidentIntensity(current)

	for k, tk := range t.Pix {
		t.Pix[k] = clamp(i0*math.Exp(-mu*tk), 0, 1)
	}
	return t
}

// Thickness returns the path length [cm] through the phantom at every pixel.
// Pixels are square with size FOVX/width; the grid is centered on the image
// midpoint with x to the right and y down.
//
// Thickness panics if shape has a non-positive dimension.
func (c *Calculator) Thickness(shape Shape) *Field {
	if err := shape.Validate(); err != nil {
		panic(err)
	}
	h, w := shape.Height, shape.Width
	px := c.p.FOVX / float64(w)
	r := c.p.SphereRadius
	cx, cy := float64(w-1)/2.0, float64(h-1)/2.0

	t := newField(shape)
	for i := 0; i < h; i++ {
		dy := (float64(i)-cy)*px - c.p.SphereCenterY
		for j := 0; j < w; j++ {
			dx := (float64(j)-cx)*px - c.p.SphereCenterX
			d := math.Sqrt(dx*dx + dy*dy)
			if d > r {
				continue
			}
			// max guards round-off at d ~ R
			t.Pix[i*w+j] = 2.0 * math.Sqrt(math.Max(0, r*r-d*d))
		}
	}
	return t
}

// Mu returns the effective linear attenuation coefficient [1/cm] at the given voltage.
// Voltage is floored at VoltageFloor; the result is floored at MuMin.
func (c *Calculator) Mu(voltage float64) float64 {
	v := math.Max(c.p.VoltageFloor, voltage)
	mu := c.p.MuRef * math.Pow(c.p.VoltageRef/v, c.p.MuPower)
	return math.Max(c.p.MuMin, mu)
}

// IncidentIntensity returns I0 for the given current. Current outside
// [CurrentLow, CurrentHigh] clamps to the nearest end, so I0 stays in [I0Min, I0Max].
func (c *Calculator) IncidentIntensity(current float64) float64 {
	n := normalize(current, c.p.CurrentLow, c.p.CurrentHigh)
	return c.p.I0Min + (c.p.I0Max-c.p.I0Min)*n
}

// normalize maps v linearly from [lo, hi] onto [0, 1], clamping outside values.
func normalize(v, lo, hi float64) float64 {
	if hi <= lo {
		return 0
	}
	return clamp((v-lo)/(hi-lo), 0, 1)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
