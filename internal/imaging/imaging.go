package imaging

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/tiff"

	"xraysim/internal/physics"
)

// ErrUnsupportedFormat is returned for an unknown export format name.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Format names an encoded image format.
type Format string

const (
	FormatPNG  Format = "png"
	FormatTIFF Format = "tiff"
)

// ParseFormat maps a case-insensitive name to a Format. An empty name selects PNG.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "png":
		return FormatPNG, nil
	case "tif", "tiff":
		return FormatTIFF, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	if f == FormatTIFF {
		return "image/tiff"
	}
	return "image/png"
}

// Ext returns the file extension of the format, including the dot.
func (f Format) Ext() string {
	if f == FormatTIFF {
		return ".tiff"
	}
	return ".png"
}

// ToGray quantizes a [0, 1] field to 8-bit grayscale. Values are truncated, not rounded.
func ToGray(f *physics.Field) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, f.Width, f.Height))
	for i := 0; i < f.Height; i++ {
		for j := 0; j < f.Width; j++ {
			img.SetGray(j, i, color.Gray{Y: uint8(unit(f.At(i, j)) * 255)})
		}
	}
	return img
}

// ToGray16 quantizes a [0, 1] field to 16-bit grayscale.
func ToGray16(f *physics.Field) *image.Gray16 {
	img := image.NewGray16(image.Rect(0, 0, f.Width, f.Height))
	for i := 0; i < f.Height; i++ {
		for j := 0; j < f.Width; j++ {
			img.SetGray16(j, i, color.Gray16{Y: uint16(unit(f.At(i, j)) * 65535)})
		}
	}
	return img
}

// Encode writes the field to w. PNG is 8-bit; TIFF keeps 16 bits per pixel.
func Encode(w io.Writer, f *physics.Field, format Format) error {
	switch format {
	case FormatPNG:
		return png.Encode(w, ToGray(f))
	case FormatTIFF:
		return tiff.Encode(w, ToGray16(f), &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// Scale resizes src to w x h with bilinear interpolation.
func Scale(src *image.Gray, w, h int) *image.Gray {
	dst := image.NewGray(image.Rect(0, 0, w, h))
	xdraw.BiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}

// unit clamps v to [0, 1]; the field is already clamped but callers may hand in raw data.
func unit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
