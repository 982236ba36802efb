// Package trimesh converts heightfields into triangle meshes suitable
// for physics collision and rendering.
package trimesh

import (
	"github.com/Faultbox/terraforge/pkg/heightfield"
)

// Mesh holds vertex and triangle index buffers. Both buffers only ever
// grow; augmentation appends, never rewrites.
type Mesh struct {
	Vertices  [][3]float32
	Triangles [][3]uint32
}

// FromHeightfield triangulates a heightfield into a mesh.
//
// Each sample becomes one vertex at (row*hScale, col*hScale,
// height*vScale) and each grid cell becomes two triangles. When the
// height difference between neighboring samples exceeds the slope
// threshold, the shared vertices are shifted one sample toward the higher
// side so the connecting faces become near-vertical walls instead of
// stretched ramps. A non-positive threshold disables the correction.
func FromHeightfield(f *heightfield.Field, hScale, vScale, slopeThreshold float64) *Mesh {
	rows, cols := f.Rows, f.Cols

	moveX := make([]int8, rows*cols)
	moveY := make([]int8, rows*cols)
	moveCorners := make([]int8, rows*cols)
	if slopeThreshold > 0 {
		thr := slopeThreshold * hScale / vScale
		for i := 0; i < rows; i++ {
			for j := 0; j < cols; j++ {
				h := float64(f.At(i, j))
				if i+1 < rows && float64(f.At(i+1, j))-h > thr {
					moveX[i*cols+j]++
				}
				if i > 0 && float64(f.At(i-1, j))-h > thr {
					moveX[i*cols+j]--
				}
				if j+1 < cols && float64(f.At(i, j+1))-h > thr {
					moveY[i*cols+j]++
				}
				if j > 0 && float64(f.At(i, j-1))-h > thr {
					moveY[i*cols+j]--
				}
				if i+1 < rows && j+1 < cols && float64(f.At(i+1, j+1))-h > thr {
					moveCorners[i*cols+j]++
				}
				if i > 0 && j > 0 && float64(f.At(i-1, j-1))-h > thr {
					moveCorners[i*cols+j]--
				}
			}
		}
	}

	vertices := make([][3]float32, rows*cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			idx := i*cols + j
			dx := float64(moveX[idx])
			dy := float64(moveY[idx])
			// Diagonal steps only move vertices the axis moves left alone.
			if moveX[idx] == 0 {
				dx += float64(moveCorners[idx])
			}
			if moveY[idx] == 0 {
				dy += float64(moveCorners[idx])
			}
			vertices[idx] = [3]float32{
				float32((float64(i) + dx) * hScale),
				float32((float64(j) + dy) * hScale),
				float32(float64(f.At(i, j)) * vScale),
			}
		}
	}

	triangles := make([][3]uint32, 0, 2*(rows-1)*(cols-1))
	for i := 0; i < rows-1; i++ {
		for j := 0; j < cols-1; j++ {
			ind0 := uint32(i*cols + j)
			ind1 := ind0 + 1
			ind2 := ind0 + uint32(cols)
			ind3 := ind2 + 1
			triangles = append(triangles,
				[3]uint32{ind0, ind3, ind1},
				[3]uint32{ind0, ind2, ind3},
			)
		}
	}

	return &Mesh{Vertices: vertices, Triangles: triangles}
}

// AppendBlock appends a rectangular prism sitting on the ground plane at
// (x, y) with footprint s1 x s2 and the given height.
//
// The prism contributes its 8 corner vertices and every index triple
// i<j<k over them (56 triangles). The result is a redundant pile of
// overlapping faces rather than a minimal closed box; that is fine for
// collision and visual use, which are the only consumers.
func (m *Mesh) AppendBlock(x, y, s1, s2, h float64) {
	base := uint32(len(m.Vertices))

	for _, z := range []float64{0, h} {
		m.Vertices = append(m.Vertices,
			[3]float32{float32(x), float32(y), float32(z)},
			[3]float32{float32(x + s1), float32(y), float32(z)},
			[3]float32{float32(x), float32(y + s2), float32(z)},
			[3]float32{float32(x + s1), float32(y + s2), float32(z)},
		)
	}

	for i := uint32(0); i < 8; i++ {
		for j := i + 1; j < 8; j++ {
			for k := j + 1; k < 8; k++ {
				m.Triangles = append(m.Triangles, [3]uint32{base + i, base + j, base + k})
			}
		}
	}
}
