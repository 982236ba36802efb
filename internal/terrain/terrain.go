// Package terrain assembles procedural sub-terrains into a composite
// heightfield with per-cell spawn origins and an optional collision
// trimesh.
package terrain

import (
	"fmt"
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/Faultbox/terraforge/internal/config"
	"github.com/Faultbox/terraforge/pkg/heightfield"
	"github.com/Faultbox/terraforge/pkg/trimesh"
)

// Image-derived maps are coarser than procedural ones; their mesh
// conversion compensates by stretching the vertical axis and shrinking
// the horizontal one.
const (
	imageHScaleFactor = 0.4
	imageVScaleFactor = 4.0
)

// Terrain owns the composite heightfield, the per-cell spawn origins and
// the optional trimesh for one generated environment. It is built once
// and read afterwards; there is no partial regeneration.
type Terrain struct {
	// Field is the ground-collision heightmap, nil for none/plane mesh
	// types.
	Field *heightfield.Field

	// Origins holds the world (x, y, z) spawn position per grid cell.
	Origins [][][3]float64

	// Mesh is the triangulated terrain, only set for the trimesh type.
	Mesh *trimesh.Mesh

	cfg         config.Config
	proportions heightfield.ProportionTable

	widthPx  int // samples per cell along the width axis
	lengthPx int // samples per cell along the length axis
	border   int // flat margin samples on every side

	rng *rand.Rand
	log *zap.Logger
}

// New generates a terrain from the configuration. All failures are fatal
// construction errors; a returned Terrain is complete.
func New(cfg *config.Config, log *zap.Logger) (*Terrain, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	t := &Terrain{cfg: *cfg, log: log}
	if cfg.Mesh.Type == config.MeshNone || cfg.Mesh.Type == config.MeshPlane {
		return t, nil
	}

	tc := cfg.Terrain
	// Only curriculum and randomized dispatch draws over the proportion
	// thresholds; image and selected modes never consult them.
	if tc.MapPath == "" && (tc.Curriculum || !tc.Selected) {
		var err error
		t.proportions, err = heightfield.NewProportionTable(tc.Proportions)
		if err != nil {
			return nil, fmt.Errorf("terrain proportions: %w", err)
		}
	}
	t.widthPx = int(tc.Width / tc.HorizontalScale)
	t.lengthPx = int(tc.Length / tc.HorizontalScale)
	t.border = int(tc.BorderSize / tc.HorizontalScale)

	totRows := tc.NumRows*t.lengthPx + 2*t.border
	totCols := tc.NumCols*t.widthPx + 2*t.border
	t.Field = heightfield.NewField(totRows, totCols, tc.HorizontalScale, tc.VerticalScale)

	t.Origins = make([][][3]float64, tc.NumRows)
	for i := range t.Origins {
		t.Origins[i] = make([][3]float64, tc.NumCols)
	}

	t.rng = rand.New(rand.NewPCG(uint64(cfg.Seed), 0))

	switch {
	case tc.MapPath != "":
		if err := t.loadImageMap(tc.MapPath); err != nil {
			return nil, fmt.Errorf("loading heightmap image: %w", err)
		}
		log.Info("heightfield loaded from image",
			zap.String("path", tc.MapPath),
			zap.Int("rows", totRows), zap.Int("cols", totCols))
	case tc.Curriculum:
		t.curriculum()
	case tc.Selected:
		if err := t.selected(); err != nil {
			return nil, err
		}
	default:
		t.randomized()
	}

	if cfg.Mesh.Type == config.MeshTrimesh {
		hs := tc.HorizontalScale
		vs := tc.VerticalScale
		if tc.MapPath != "" {
			hs *= imageHScaleFactor
			vs *= imageVScaleFactor
		}
		t.Mesh = trimesh.FromHeightfield(t.Field, hs, vs, cfg.Mesh.SlopeThreshold)
		if tc.MapPath != "" {
			placed := AugmentWithBlocks(t.Mesh, cfg.Seed, log)
			log.Info("mesh augmented with blocks", zap.Int("blocks", placed))
		}
		log.Info("trimesh built",
			zap.Int("vertices", len(t.Mesh.Vertices)),
			zap.Int("triangles", len(t.Mesh.Triangles)))
	}

	return t, nil
}

// randomized populates every cell with a uniform terrain-kind draw and a
// difficulty picked from a small fixed set.
func (t *Terrain) randomized() {
	difficulties := [3]float64{0.5, 0.75, 0.9}
	for row := 0; row < t.cfg.Terrain.NumRows; row++ {
		for col := 0; col < t.cfg.Terrain.NumCols; col++ {
			choice := t.rng.Float64()
			difficulty := difficulties[t.rng.IntN(len(difficulties))]
			t.place(t.makeTerrain(choice, difficulty), row, col)
		}
	}
}

// curriculum populates the grid with a deterministic ramp: difficulty
// grows along rows, terrain-kind variety along columns.
func (t *Terrain) curriculum() {
	for row := 0; row < t.cfg.Terrain.NumRows; row++ {
		for col := 0; col < t.cfg.Terrain.NumCols; col++ {
			choice, difficulty := curriculumParams(row, col, t.cfg.Terrain.NumRows, t.cfg.Terrain.NumCols)
			t.place(t.makeTerrain(choice, difficulty), row, col)
		}
	}
}

// curriculumParams maps a grid position to its (choice, difficulty)
// pair. The small choice offset keeps draws off the exact threshold
// boundaries.
func curriculumParams(row, col, numRows, numCols int) (choice, difficulty float64) {
	difficulty = float64(row) / float64(numRows)
	choice = float64(col)/float64(numCols) + 0.001
	return choice, difficulty
}

// selected populates every cell with the one externally chosen
// generator. An unknown kind name is a fatal lookup error.
func (t *Terrain) selected() error {
	sel := t.cfg.Terrain.SelectedAs
	kind, err := heightfield.ParseKind(sel.Type)
	if err != nil {
		return fmt.Errorf("selected terrain: %w", err)
	}
	gen := selectedGenerators[kind]

	for row := 0; row < t.cfg.Terrain.NumRows; row++ {
		for col := 0; col < t.cfg.Terrain.NumCols; col++ {
			sub := t.newPatch()
			gen(sub, t.rng, sel)
			t.place(sub, row, col)
		}
	}
	return nil
}

// place copies a sub-terrain into the field at its cell offset and
// computes the cell's spawn origin. Placement overwrites; placing the
// same patch twice leaves the field unchanged.
func (t *Terrain) place(sub *heightfield.SubTerrain, row, col int) {
	startX := t.border + row*t.lengthPx
	startY := t.border + col*t.widthPx
	for x := 0; x < sub.Length; x++ {
		for y := 0; y < sub.Width; y++ {
			t.Field.Set(startX+x, startY+y, sub.At(x, y))
		}
	}

	tc := t.cfg.Terrain
	originX := (float64(row) + 0.5) * tc.Length
	originY := (float64(col) + 0.5) * tc.Width

	// Spawn height rides the highest point within one meter of the cell
	// center so agents never start inside geometry.
	x1 := int((tc.Length/2 - 1) / tc.HorizontalScale)
	x2 := int((tc.Length/2 + 1) / tc.HorizontalScale)
	y1 := int((tc.Width/2 - 1) / tc.HorizontalScale)
	y2 := int((tc.Width/2 + 1) / tc.HorizontalScale)
	originZ := float64(sub.MaxIn(x1, x2, y1, y2)) * tc.VerticalScale

	t.Origins[row][col] = [3]float64{originX, originY, originZ}
}
