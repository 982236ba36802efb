package terrain

import (
	"fmt"
	"image"
	"os"

	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// imageUpscale is the nearest-neighbor repeat factor applied to image
// heightmaps before fitting them to the field shape.
const imageUpscale = 3

// loadImageMap replaces the whole field, border included, with heights
// decoded from an image file.
func (t *Terrain) loadImageMap(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}

	heights, rows, cols := imageHeights(img)
	heights, rows, cols = upscaleNearest(heights, rows, cols, imageUpscale)
	t.Field.Raw = fitToShape(heights, rows, cols, t.Field.Rows, t.Field.Cols)
	return nil
}

// imageHeights extracts the height channel from an image: the alpha
// channel when the image carries one, the gray value otherwise.
func imageHeights(img image.Image) (heights []int16, rows, cols int) {
	b := img.Bounds()
	cols = b.Dx()
	rows = b.Dy()
	heights = make([]int16, rows*cols)

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			px := img.At(b.Min.X+c, b.Min.Y+r)
			var v uint32
			switch img.(type) {
			case *image.Gray, *image.Gray16:
				v, _, _, _ = px.RGBA()
			default:
				_, _, _, v = px.RGBA()
			}
			heights[r*cols+c] = int16(v >> 8)
		}
	}
	return heights, rows, cols
}

// upscaleNearest repeats every sample factor times along both axes.
func upscaleNearest(src []int16, rows, cols, factor int) ([]int16, int, int) {
	outRows := rows * factor
	outCols := cols * factor
	out := make([]int16, outRows*outCols)
	for r := 0; r < outRows; r++ {
		srcRow := src[(r/factor)*cols : (r/factor+1)*cols]
		dstRow := out[r*outCols : (r+1)*outCols]
		for c := 0; c < outCols; c++ {
			dstRow[c] = srcRow[c/factor]
		}
	}
	return out, outRows, outCols
}

// fitToShape centers the source grid inside (or over) the destination
// shape, zero-padding or cropping each axis as needed.
func fitToShape(src []int16, srcRows, srcCols, dstRows, dstCols int) []int16 {
	dst := make([]int16, dstRows*dstCols)
	offR := (dstRows - srcRows) / 2
	offC := (dstCols - srcCols) / 2

	for r := 0; r < dstRows; r++ {
		sr := r - offR
		if sr < 0 || sr >= srcRows {
			continue
		}
		for c := 0; c < dstCols; c++ {
			sc := c - offC
			if sc < 0 || sc >= srcCols {
				continue
			}
			dst[r*dstCols+c] = src[sr*srcCols+sc]
		}
	}
	return dst
}
