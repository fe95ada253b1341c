package physics

import (
	"errors"
	"fmt"
)

// ErrInvalidShape reports a grid with a non-positive dimension.
var ErrInvalidShape = errors.New("shape must have positive height and width")

// Shape is the (height, width) of a pixel grid.
type Shape struct {
	Height int
	Width  int
}

// Validate returns ErrInvalidShape if either dimension is not positive.
func (s Shape) Validate() error {
	if s.Height <= 0 || s.Width <= 0 {
		return fmt.Errorf("%w: got %dx%d", ErrInvalidShape, s.Width, s.Height)
	}
	return nil
}

// Field is a row-major 2D float field. Row i, column j lives at Pix[i*Width+j].
type Field struct {
	Height int
	Width  int
	Pix    []float64
}

func newField(s Shape) *Field {
	return &Field{
		Height: s.Height,
		Width:  s.Width,
		Pix:    make([]float64, s.Height*s.Width),
	}
}

// Shape returns the grid shape of the field.
func (f *Field) Shape() Shape {
	return Shape{Height: f.Height, Width: f.Width}
}

// At returns the value at row i, column j.
func (f *Field) At(i, j int) float64 {
	return f.Pix[i*f.Width+j]
}

// Min returns the smallest value in the field.
func (f *Field) Min() float64 {
	m := f.Pix[0]
	for _, v := range f.Pix[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

// Max returns the largest value in the field.
func (f *Field) Max() float64 {
	m := f.Pix[0]
	for _, v := range f.Pix[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

// Mean returns the arithmetic mean of the field.
func (f *Field) Mean() float64 {
	var sum float64
	for _, v := range f.Pix {
		sum += v
	}
	return sum / float64(len(f.Pix))
}
