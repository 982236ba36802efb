package terrain

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/terraforge/internal/config"
)

func TestUpscaleNearest(t *testing.T) {
	src := []int16{
		1, 2,
		3, 4,
	}
	out, rows, cols := upscaleNearest(src, 2, 2, 3)
	if rows != 6 || cols != 6 {
		t.Fatalf("upscaled to %dx%d, want 6x6", rows, cols)
	}

	at := func(r, c int) int16 { return out[r*cols+c] }
	if at(0, 0) != 1 || at(2, 2) != 1 {
		t.Error("top-left 3x3 region should repeat sample 1")
	}
	if at(0, 3) != 2 || at(2, 5) != 2 {
		t.Error("top-right 3x3 region should repeat sample 2")
	}
	if at(5, 0) != 3 || at(5, 5) != 4 {
		t.Error("bottom row regions should repeat samples 3 and 4")
	}
}

func TestFitToShapePad(t *testing.T) {
	src := []int16{
		1, 2,
		3, 4,
	}
	out := fitToShape(src, 2, 2, 4, 4)

	at := func(r, c int) int16 { return out[r*4+c] }
	// Source lands centered with a one-sample zero margin.
	if at(1, 1) != 1 || at(1, 2) != 2 || at(2, 1) != 3 || at(2, 2) != 4 {
		t.Errorf("source block misplaced: %v", out)
	}
	for _, rc := range [][2]int{{0, 0}, {0, 3}, {3, 0}, {3, 3}, {0, 1}, {1, 0}} {
		if at(rc[0], rc[1]) != 0 {
			t.Errorf("padding at (%d,%d) = %d, want 0", rc[0], rc[1], at(rc[0], rc[1]))
		}
	}
}

func TestFitToShapeCrop(t *testing.T) {
	src := make([]int16, 16)
	for i := range src {
		src[i] = int16(i)
	}
	out := fitToShape(src, 4, 4, 2, 2)

	// The central 2x2 block survives.
	want := []int16{5, 6, 9, 10}
	for i := range want {
		if out[i] != want[i] {
			t.Errorf("out[%d] = %d, want %d", i, out[i], want[i])
		}
	}
}

func TestImageHeightsGray(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 3, 2))
	img.SetGray(2, 1, color.Gray{Y: 128})

	heights, rows, cols := imageHeights(img)
	if rows != 2 || cols != 3 {
		t.Fatalf("got %dx%d, want 2x3", rows, cols)
	}
	if heights[1*3+2] != 128 {
		t.Errorf("gray sample = %d, want 128", heights[1*3+2])
	}
	if heights[0] != 0 {
		t.Errorf("unset gray sample = %d, want 0", heights[0])
	}
}

func TestImageHeightsAlpha(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, G: 255, B: 255, A: 200})
	img.SetNRGBA(1, 1, color.NRGBA{R: 10, G: 10, B: 10, A: 50})

	heights, _, _ := imageHeights(img)
	if heights[0] != 200 {
		t.Errorf("alpha sample = %d, want 200", heights[0])
	}
	if heights[3] != 50 {
		t.Errorf("alpha sample = %d, want 50", heights[3])
	}
}

func TestNewImageMode(t *testing.T) {
	// A 10x10 image with uniform alpha 200 becomes a 30x30 plateau
	// centered in the 50x50 field.
	img := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 100, G: 100, B: 100, A: 200})
		}
	}

	path := filepath.Join(t.TempDir(), "map.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating image file: %v", err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encoding image: %v", err)
	}
	f.Close()

	cfg := testConfig()
	cfg.Terrain.NumRows = 1
	cfg.Terrain.NumCols = 1
	cfg.Terrain.Length = 4.0
	cfg.Terrain.Width = 4.0
	cfg.Terrain.BorderSize = 0.5
	cfg.Terrain.MapPath = path
	cfg.Mesh.Type = config.MeshTrimesh

	tr := newTestTerrain(t, cfg)

	if tr.Field.Rows != 50 || tr.Field.Cols != 50 {
		t.Fatalf("field is %dx%d, want 50x50", tr.Field.Rows, tr.Field.Cols)
	}
	if h := tr.Field.At(25, 25); h != 200 {
		t.Errorf("center sample = %d, want 200", h)
	}
	if h := tr.Field.At(0, 0); h != 0 {
		t.Errorf("corner sample = %d, want 0", h)
	}
	if tr.Mesh == nil {
		t.Fatal("expected a trimesh in image mode")
	}
}

func TestNewImageModeMissingFile(t *testing.T) {
	cfg := testConfig()
	cfg.Terrain.MapPath = "/nonexistent/map.png"

	if _, err := New(cfg, nil); err == nil {
		t.Fatal("expected error for missing heightmap image")
	}
}
