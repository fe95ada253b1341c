package console

import (
	"image"

	"xraysim/internal/imaging"
)

// shades runs from dark to bright.
var shades = []rune(" .:-=+*#%@")

// PreviewSize fits an imgW x imgH image into a terminal of cols x rows cells,
// keeping the aspect ratio. Cells are taken to be twice as tall as wide.
func PreviewSize(cols, rows, imgW, imgH int) (int, int) {
	if cols <= 0 || rows <= 0 || imgW <= 0 || imgH <= 0 {
		return 0, 0
	}
	w := cols
	h := w * imgH / (2 * imgW)
	if h > rows {
		h = rows
		w = h * 2 * imgW / imgH
	}
	return max(w, 1), max(h, 1)
}

// Preview downscales img to cols x rows and maps each pixel onto the shade ramp.
// The result is indexed [row][col].
func Preview(img *image.Gray, cols, rows int) [][]rune {
	if img == nil || cols <= 0 || rows <= 0 {
		return nil
	}
	small := imaging.Scale(img, cols, rows)

	out := make([][]rune, rows)
	for y := range out {
		line := make([]rune, cols)
		for x, v := range small.Pix[y*small.Stride : y*small.Stride+cols] {
			line[x] = shades[int(v)*(len(shades)-1)/255]
		}
		out[y] = line
	}
	return out
}
