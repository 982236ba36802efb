// Package heightfield provides discretized terrain height grids and the
// shape generators used to populate them.
//
// Heights are stored as signed 16-bit raw units; the world-space height of
// a sample is its raw value times the vertical scale, and the world-space
// footprint of a sample is one horizontal scale unit on each axis.
package heightfield

import "fmt"

// Field is a composite terrain heightfield covering the whole map,
// including the flat border margin around the sub-terrain grid.
type Field struct {
	Rows int // samples along the world X (length) axis
	Cols int // samples along the world Y (width) axis

	HorizontalScale float64 // meters per sample
	VerticalScale   float64 // meters per raw height unit

	// Raw holds the height samples in row-major order.
	Raw []int16
}

// NewField creates a zeroed field of rows x cols samples.
func NewField(rows, cols int, horizontalScale, verticalScale float64) *Field {
	return &Field{
		Rows:            rows,
		Cols:            cols,
		HorizontalScale: horizontalScale,
		VerticalScale:   verticalScale,
		Raw:             make([]int16, rows*cols),
	}
}

// At returns the raw height at (row, col).
func (f *Field) At(row, col int) int16 {
	return f.Raw[row*f.Cols+col]
}

// Set writes the raw height at (row, col).
func (f *Field) Set(row, col int, v int16) {
	f.Raw[row*f.Cols+col] = v
}

// HeightAt returns the world-space height at (row, col).
func (f *Field) HeightAt(row, col int) float64 {
	return float64(f.At(row, col)) * f.VerticalScale
}

// SampleAtWorld maps a world position to the nearest sample indices,
// clamped to the field bounds.
func (f *Field) SampleAtWorld(x, y float64) (row, col int) {
	row = clampIndex(int(x/f.HorizontalScale), f.Rows)
	col = clampIndex(int(y/f.HorizontalScale), f.Cols)
	return row, col
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// SubTerrain is one grid cell's local heightfield patch before it is
// composited into a Field. It is mutated in place by exactly one
// generator and then copied out.
type SubTerrain struct {
	Name string

	Width  int // samples along the local Y axis
	Length int // samples along the local X axis

	HorizontalScale float64
	VerticalScale   float64

	// Heights holds Length rows of Width samples, row-major.
	Heights []int16
}

// NewSubTerrain creates a flat patch of length x width samples.
func NewSubTerrain(name string, width, length int, horizontalScale, verticalScale float64) *SubTerrain {
	return &SubTerrain{
		Name:            name,
		Width:           width,
		Length:          length,
		HorizontalScale: horizontalScale,
		VerticalScale:   verticalScale,
		Heights:         make([]int16, width*length),
	}
}

// At returns the raw height at local position (x, y), x in [0, Length)
// and y in [0, Width).
func (t *SubTerrain) At(x, y int) int16 {
	return t.Heights[x*t.Width+y]
}

// Set writes the raw height at local position (x, y).
func (t *SubTerrain) Set(x, y int, v int16) {
	t.Heights[x*t.Width+y] = v
}

// Fill writes v into the half-open rectangle [x0, x1) x [y0, y1),
// clipped to the patch bounds.
func (t *SubTerrain) Fill(x0, x1, y0, y1 int, v int16) {
	x0, x1 = clipRange(x0, x1, t.Length)
	y0, y1 = clipRange(y0, y1, t.Width)
	for x := x0; x < x1; x++ {
		row := t.Heights[x*t.Width : (x+1)*t.Width]
		for y := y0; y < y1; y++ {
			row[y] = v
		}
	}
}

// MaxIn returns the maximum raw height in the half-open rectangle
// [x0, x1) x [y0, y1), clipped to the patch bounds.
func (t *SubTerrain) MaxIn(x0, x1, y0, y1 int) int16 {
	x0, x1 = clipRange(x0, x1, t.Length)
	y0, y1 = clipRange(y0, y1, t.Width)
	var max int16
	first := true
	for x := x0; x < x1; x++ {
		for y := y0; y < y1; y++ {
			if h := t.At(x, y); first || h > max {
				max = h
				first = false
			}
		}
	}
	return max
}

// toRaw converts a world-space height to raw units.
func (t *SubTerrain) toRaw(height float64) int16 {
	return int16(height / t.VerticalScale)
}

// toSamples converts a world-space distance to a sample count.
func (t *SubTerrain) toSamples(dist float64) int {
	return int(dist / t.HorizontalScale)
}

func clipRange(lo, hi, n int) (int, int) {
	if lo < 0 {
		lo = 0
	}
	if hi > n {
		hi = n
	}
	if hi < lo {
		hi = lo
	}
	return lo, hi
}

func (t *SubTerrain) String() string {
	return fmt.Sprintf("%s %dx%d (h=%g v=%g)", t.Name, t.Length, t.Width, t.HorizontalScale, t.VerticalScale)
}
