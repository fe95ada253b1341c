package physics

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDefault() *Calculator {
	return NewCalculator(DefaultParams())
}

func TestCompute_ShapeAndRange(t *testing.T) {
	calc := newDefault()

	shapes := []Shape{{1, 1}, {1, 7}, {9, 1}, {16, 32}, {31, 17}, {64, 64}}
	params := []struct{ current, voltage float64 }{
		{10, 40}, {200, 70}, {500, 120}, {0, 0}, {-50, -10}, {5000, 1000},
	}

	for _, s := range shapes {
		for _, p := range params {
			f := calc.Compute(p.current, p.voltage, s, nil)
			require.Equal(t, s, f.Shape())
			require.Len(t, f.Pix, s.Height*s.Width)
			for _, v := range f.Pix {
				assert.GreaterOrEqual(t, v, 0.0)
				assert.LessOrEqual(t, v, 1.0)
			}
		}
	}
}

func TestCompute_Deterministic(t *testing.T) {
	calc := newDefault()
	seed := int64(42)

	a := calc.Compute(200, 70, Shape{64, 48}, nil)
	b := calc.Compute(200, 70, Shape{64, 48}, nil)
	c := calc.Compute(200, 70, Shape{64, 48}, &seed)

	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("repeat call differs (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(a, c); diff != "" {
		t.Errorf("seed changed output (-unseeded +seeded):\n%s", diff)
	}
}

func TestCompute_MonotonicInCurrent(t *testing.T) {
	calc := newDefault()
	shape := Shape{64, 64}

	prev := calc.Compute(10, 70, shape, nil)
	for current := 20.0; current <= 500; current += 10 {
		next := calc.Compute(current, 70, shape, nil)
		for k := range next.Pix {
			if next.Pix[k] < prev.Pix[k] {
				t.Fatalf("current %v: pixel %d decreased from %v to %v", current, k, prev.Pix[k], next.Pix[k])
			}
		}
		prev = next
	}
}

func TestCompute_MonotonicInVoltage(t *testing.T) {
	calc := newDefault()
	shape := Shape{64, 64}

	prevMu := calc.Mu(10)
	prev := calc.Compute(200, 10, shape, nil)
	for voltage := 15.0; voltage <= 200; voltage += 5 {
		mu := calc.Mu(voltage)
		assert.LessOrEqual(t, mu, prevMu, "mu increased at %v kVp", voltage)

		next := calc.Compute(200, voltage, shape, nil)
		for k := range next.Pix {
			if next.Pix[k] < prev.Pix[k] {
				t.Fatalf("voltage %v: pixel %d decreased from %v to %v", voltage, k, prev.Pix[k], next.Pix[k])
			}
		}
		prev, prevMu = next, mu
	}
}

func TestCompute_Silhouette(t *testing.T) {
	calc := newDefault()
	shape := Shape{256, 256}
	px := 20.0 / 256.0
	c := 255.0 / 2.0

	for _, p := range []struct{ current, voltage float64 }{{10, 40}, {200, 70}, {480, 120}} {
		i0 := calc.IncidentIntensity(p.current)
		want := math.Min(i0, 1.0)
		thick := calc.Thickness(shape)
		f := calc.Compute(p.current, p.voltage, shape, nil)

		outside := 0
		for i := 0; i < shape.Height; i++ {
			for j := 0; j < shape.Width; j++ {
				x, y := (float64(j)-c)*px, (float64(i)-c)*px
				if math.Sqrt(x*x+y*y) <= 6.0 {
					continue
				}
				outside++
				assert.Equal(t, 0.0, thick.At(i, j))
				assert.Equal(t, want, f.At(i, j))
			}
		}
		assert.Greater(t, outside, 0)
	}
}

func TestCompute_ReferenceCenter(t *testing.T) {
	calc := newDefault()

	i0 := 0.60 + (1.40-0.60)*((200.0-10.0)/(500.0-10.0))
	mu := 0.50 * math.Pow(60.0/70.0, 2.2)
	want := i0 * math.Exp(-mu*12.0)

	t.Run("odd grid has an exact center pixel", func(t *testing.T) {
		f := calc.Compute(200, 70, Shape{257, 257}, nil)
		assert.Equal(t, 12.0, calc.Thickness(Shape{257, 257}).At(128, 128))
		assert.InDelta(t, want, f.At(128, 128), 1e-12)
	})

	t.Run("even grid center pixels sit half a pixel off axis", func(t *testing.T) {
		f := calc.Compute(200, 70, Shape{256, 256}, nil)
		thick := calc.Thickness(Shape{256, 256})
		for _, ij := range [][2]int{{127, 127}, {127, 128}, {128, 127}, {128, 128}} {
			assert.InDelta(t, 12.0, thick.At(ij[0], ij[1]), 2e-3)
			assert.InEpsilon(t, want, f.At(ij[0], ij[1]), 1e-3)
		}
		assert.Equal(t, thick.Max(), thick.At(128, 128))
		assert.Equal(t, f.Min(), f.At(128, 128))
	})
}

func TestCompute_DegenerateGrid(t *testing.T) {
	calc := newDefault()

	f := calc.Compute(200, 70, Shape{1, 1}, nil)
	require.Len(t, f.Pix, 1)
	assert.GreaterOrEqual(t, f.Pix[0], 0.0)
	assert.LessOrEqual(t, f.Pix[0], 1.0)
	// a single pixel sits on the sphere axis
	assert.InDelta(t, calc.IncidentIntensity(200)*math.Exp(-calc.Mu(70)*12.0), f.Pix[0], 1e-12)
}

func TestCompute_VoltageFloor(t *testing.T) {
	calc := newDefault()
	shape := Shape{32, 32}

	zero := calc.Compute(200, 0, shape, nil)
	ten := calc.Compute(200, 10, shape, nil)
	negative := calc.Compute(200, -40, shape, nil)

	if diff := cmp.Diff(ten, zero); diff != "" {
		t.Errorf("voltage 0 differs from 10 (-10 +0):\n%s", diff)
	}
	if diff := cmp.Diff(ten, negative); diff != "" {
		t.Errorf("voltage -40 differs from 10 (-10 +-40):\n%s", diff)
	}
}

func TestCompute_InvalidShapePanics(t *testing.T) {
	calc := newDefault()

	for _, s := range []Shape{{0, 10}, {10, 0}, {-1, 5}, {0, 0}} {
		assert.Panics(t, func() { calc.Compute(200, 70, s, nil) }, "shape %v", s)
	}
}

func TestMu(t *testing.T) {
	calc := newDefault()

	assert.InDelta(t, 0.50, calc.Mu(60), 1e-15)
	assert.InDelta(t, 0.50*math.Pow(60.0/120.0, 2.2), calc.Mu(120), 1e-15)
	// 0.5 * (60/10000)^2.2 is far below the floor
	assert.Equal(t, 0.05, calc.Mu(10000))
	assert.Equal(t, calc.Mu(10), calc.Mu(0))
}

func TestIncidentIntensity(t *testing.T) {
	calc := newDefault()

	tests := []struct {
		name    string
		current float64
		want    float64
	}{
		{"low end", 10, 0.60},
		{"high end", 500, 1.40},
		{"midpoint", 255, 1.00},
		{"below range clamps", -100, 0.60},
		{"above range clamps", 9000, 1.40},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, calc.IncidentIntensity(tt.current), 1e-12)
		})
	}
}

func TestNormalize_DegenerateDomain(t *testing.T) {
	assert.Equal(t, 0.0, normalize(5, 10, 10))
	assert.Equal(t, 0.0, normalize(5, 10, 1))
	assert.Equal(t, 0.5, normalize(5, 0, 10))
}

func TestCompute_CustomParams(t *testing.T) {
	p := DefaultParams()
	p.SphereRadius = 2.0
	p.SphereCenterX = 5.0
	calc := NewCalculator(p)

	thick := calc.Thickness(Shape{21, 21})
	// pixel size 20/21; column 15 sits at x = 5*20/21 ~ 4.76 cm, within the shifted sphere
	assert.Greater(t, thick.At(10, 15), 0.0)
	assert.Equal(t, 0.0, thick.At(10, 10))
	assert.Equal(t, p, calc.Params())
}

func TestShapeValidate(t *testing.T) {
	assert.NoError(t, Shape{1, 1}.Validate())
	assert.ErrorIs(t, Shape{0, 1}.Validate(), ErrInvalidShape)
	assert.ErrorIs(t, Shape{1, -3}.Validate(), ErrInvalidShape)
}

func TestFieldStats(t *testing.T) {
	f := &Field{Height: 2, Width: 2, Pix: []float64{0.25, 1, 0, 0.75}}

	assert.Equal(t, 0.0, f.Min())
	assert.Equal(t, 1.0, f.Max())
	assert.Equal(t, 0.5, f.Mean())
	assert.Equal(t, 0.75, f.At(1, 1))
}
