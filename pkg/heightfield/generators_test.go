package heightfield

import (
	"math/rand/v2"
	"testing"
)

// newTestPatch creates a 100x100 patch with the scales used by the
// default terrain configuration.
func newTestPatch() *SubTerrain {
	return NewSubTerrain("test", 100, 100, 0.1, 0.005)
}

func TestPyramidSlopedPeaksAtCenter(t *testing.T) {
	patch := newTestPatch()
	PyramidSloped(patch, 0.4, 3.0)

	center := patch.At(50, 50)
	if center <= 0 {
		t.Fatalf("center height = %d, want > 0", center)
	}
	if corner := patch.At(0, 0); corner != 0 {
		t.Errorf("corner height = %d, want 0", corner)
	}
	// Heights never exceed the platform height (clamped).
	for i, h := range patch.Heights {
		if h < 0 || h > center {
			t.Fatalf("height[%d] = %d outside [0, %d]", i, h, center)
		}
	}
}

func TestPyramidSlopedNegative(t *testing.T) {
	patch := newTestPatch()
	PyramidSloped(patch, -0.4, 3.0)

	if center := patch.At(50, 50); center >= 0 {
		t.Errorf("center height = %d, want < 0", center)
	}
	if corner := patch.At(0, 0); corner != 0 {
		t.Errorf("corner height = %d, want 0", corner)
	}
}

func TestPyramidStairsRings(t *testing.T) {
	patch := newTestPatch()
	PyramidStairs(patch, 0.31, 0.1, 3.0)

	step := int16(0.1 / patch.VerticalScale)
	if h := patch.At(0, 0); h != 0 {
		t.Errorf("outer ring = %d, want 0", h)
	}
	// First ring starts one step width (3 samples) in.
	if h := patch.At(3, 50); h != step {
		t.Errorf("first ring = %d, want %d", h, step)
	}
	// Heights grow monotonically walking in toward the center.
	prev := int16(-1)
	for x := 0; x <= 50; x++ {
		h := patch.At(x, 50)
		if h < prev {
			t.Fatalf("height decreased at x=%d: %d -> %d", x, prev, h)
		}
		prev = h
	}
}

func TestRandomUniformDeterministic(t *testing.T) {
	a := newTestPatch()
	b := newTestPatch()
	RandomUniform(a, rand.New(rand.NewPCG(7, 0)), -0.05, 0.05, 0.005, 0.2)
	RandomUniform(b, rand.New(rand.NewPCG(7, 0)), -0.05, 0.05, 0.005, 0.2)

	for i := range a.Heights {
		if a.Heights[i] != b.Heights[i] {
			t.Fatalf("height[%d] differs: %d vs %d", i, a.Heights[i], b.Heights[i])
		}
	}

	lo := int16(-0.05 / a.VerticalScale)
	hi := int16(0.05 / a.VerticalScale)
	for i, h := range a.Heights {
		if h < lo || h > hi {
			t.Fatalf("height[%d] = %d outside [%d, %d]", i, h, lo, hi)
		}
	}
}

func TestDiscreteObstaclesPlatformFlat(t *testing.T) {
	patch := newTestPatch()
	rng := rand.New(rand.NewPCG(3, 0))
	DiscreteObstacles(patch, rng, 0.25, 1.0, 2.0, 20, 3.0)

	plat := int(3.0 / patch.HorizontalScale)
	x1 := (patch.Length - plat) / 2
	y1 := (patch.Width - plat) / 2
	for x := x1; x < x1+plat; x++ {
		for y := y1; y < y1+plat; y++ {
			if h := patch.At(x, y); h != 0 {
				t.Fatalf("platform sample (%d,%d) = %d, want 0", x, y, h)
			}
		}
	}

	// Obstacle heights stay within the configured band.
	maxRaw := int16(0.25 / patch.VerticalScale)
	for i, h := range patch.Heights {
		if h < -maxRaw || h > maxRaw {
			t.Fatalf("height[%d] = %d outside +-%d", i, h, maxRaw)
		}
	}
}

func TestDiscreteObstacleCellsHeightBand(t *testing.T) {
	patch := newTestPatch()
	rng := rand.New(rand.NewPCG(9, 0))
	DiscreteObstacleCells(patch, rng, 0.14, 0.15, 2, 5, 150, 3.0)

	lo := int16(0.14 / patch.VerticalScale)
	hi := int16(0.15 / patch.VerticalScale)
	seen := false
	for i, h := range patch.Heights {
		if h == 0 {
			continue
		}
		seen = true
		if h < lo || h > hi {
			t.Fatalf("height[%d] = %d outside [%d, %d]", i, h, lo, hi)
		}
	}
	if !seen {
		t.Error("no obstacles were placed")
	}
}

func TestSteppingStonesSunkenBase(t *testing.T) {
	patch := newTestPatch()
	rng := rand.New(rand.NewPCG(5, 0))
	SteppingStones(patch, rng, 1.1, 0.3, 0.0, 4.0, -10.0)

	depth := int16(-10.0 / patch.VerticalScale)
	foundDepth := false
	for _, h := range patch.Heights {
		if h == depth {
			foundDepth = true
			break
		}
	}
	if !foundDepth {
		t.Error("no sample at base depth; stones cover everything")
	}

	// Central platform is flat.
	plat := int(4.0 / patch.HorizontalScale)
	x1 := (patch.Length - plat) / 2
	y1 := (patch.Width - plat) / 2
	for x := x1; x < x1+plat; x++ {
		for y := y1; y < y1+plat; y++ {
			if h := patch.At(x, y); h != 0 {
				t.Fatalf("platform sample (%d,%d) = %d, want 0", x, y, h)
			}
		}
	}
}

func TestGapRingAndPlatform(t *testing.T) {
	patch := newTestPatch()
	Gap(patch, 1.0, 3.0)

	cx := patch.Length / 2
	cy := patch.Width / 2
	half := 15  // 3.0m platform -> 30 samples, half extent
	outer := 25 // half + 1.0m gap (10 samples)

	for x := 0; x < patch.Length; x++ {
		for y := 0; y < patch.Width; y++ {
			h := patch.At(x, y)
			dx := x - cx
			dy := y - cy
			inPlatform := dx >= -half && dx < half && dy >= -half && dy < half
			inOuter := dx >= -outer && dx < outer && dy >= -outer && dy < outer
			switch {
			case inPlatform:
				if h != 0 {
					t.Fatalf("platform sample (%d,%d) = %d, want 0", x, y, h)
				}
			case inOuter:
				if h != -1000 {
					t.Fatalf("moat sample (%d,%d) = %d, want -1000", x, y, h)
				}
			default:
				if h != 0 {
					t.Fatalf("outside sample (%d,%d) = %d, want 0", x, y, h)
				}
			}
		}
	}
}

func TestPitDepth(t *testing.T) {
	patch := newTestPatch()
	Pit(patch, 1.0, 4.0)

	cx := patch.Length / 2
	cy := patch.Width / 2
	half := 20 // 4.0m platform / 0.1m samples / 2

	for x := 0; x < patch.Length; x++ {
		for y := 0; y < patch.Width; y++ {
			h := patch.At(x, y)
			dx := x - cx
			dy := y - cy
			inside := dx >= -half && dx < half && dy >= -half && dy < half
			if inside && h != -200 {
				t.Fatalf("pit sample (%d,%d) = %d, want -200", x, y, h)
			}
			if !inside && h != 0 {
				t.Fatalf("outside sample (%d,%d) = %d, want 0", x, y, h)
			}
		}
	}
}

func TestFillClipsToBounds(t *testing.T) {
	patch := NewSubTerrain("clip", 10, 10, 0.1, 0.005)
	patch.Fill(-5, 15, -5, 15, 7)
	for i, h := range patch.Heights {
		if h != 7 {
			t.Fatalf("height[%d] = %d, want 7", i, h)
		}
	}
}

func TestMaxIn(t *testing.T) {
	patch := NewSubTerrain("max", 10, 10, 0.1, 0.005)
	patch.Set(4, 6, 42)
	patch.Set(9, 9, 99)

	if got := patch.MaxIn(0, 10, 0, 10); got != 99 {
		t.Errorf("MaxIn full = %d, want 99", got)
	}
	if got := patch.MaxIn(3, 6, 5, 8); got != 42 {
		t.Errorf("MaxIn window = %d, want 42", got)
	}
	if got := patch.MaxIn(0, 3, 0, 3); got != 0 {
		t.Errorf("MaxIn flat window = %d, want 0", got)
	}
}
