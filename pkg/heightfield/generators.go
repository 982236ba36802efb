package heightfield

import "math/rand/v2"

// Generators mutate a SubTerrain in place. All of them leave a flat
// platform around the patch center so an agent can be spawned safely.
// Generators that need noise take an explicit *rand.Rand so that callers
// control determinism.

// PyramidSloped raises (or, for negative slopes, lowers) the patch into a
// pyramid whose apex sits at the center. Heights are clamped so the
// central platform stays flat.
func PyramidSloped(t *SubTerrain, slope, platformSize float64) {
	cx := t.Length / 2
	cy := t.Width / 2
	peak := int(slope * (t.HorizontalScale / t.VerticalScale) * float64(t.Width) / 2)
	for x := 0; x < t.Length; x++ {
		fx := float64(cx-absInt(cx-x)) / float64(cx)
		for y := 0; y < t.Width; y++ {
			fy := float64(cy-absInt(cy-y)) / float64(cy)
			t.Set(x, y, t.At(x, y)+int16(float64(peak)*fx*fy))
		}
	}

	half := int(platformSize / t.HorizontalScale / 2)
	corner := t.At(t.Length/2-half, t.Width/2-half)
	lo := min(corner, 0)
	hi := max(corner, 0)
	for i, h := range t.Heights {
		t.Heights[i] = min(max(h, lo), hi)
	}
}

// RandomUniform adds uniform noise to the patch: heights are drawn at a
// coarse resolution from a quantized range and bilinearly upsampled onto
// the patch. A zero downsampledScale samples at full resolution.
func RandomUniform(t *SubTerrain, rng *rand.Rand, minHeight, maxHeight, step, downsampledScale float64) {
	if downsampledScale == 0 {
		downsampledScale = t.HorizontalScale
	}
	lo := int(minHeight / t.VerticalScale)
	hi := int(maxHeight / t.VerticalScale)
	stride := int(step / t.VerticalScale)
	if stride < 1 {
		stride = 1
	}
	var levels []int16
	for h := lo; h <= hi; h += stride {
		levels = append(levels, int16(h))
	}

	downL := max(int(float64(t.Length)*t.HorizontalScale/downsampledScale), 2)
	downW := max(int(float64(t.Width)*t.HorizontalScale/downsampledScale), 2)
	down := make([]float64, downL*downW)
	for i := range down {
		down[i] = float64(levels[rng.IntN(len(levels))])
	}

	for x := 0; x < t.Length; x++ {
		u := float64(x) * float64(downL-1) / float64(t.Length-1)
		i0 := int(u)
		i1 := min(i0+1, downL-1)
		fu := u - float64(i0)
		for y := 0; y < t.Width; y++ {
			v := float64(y) * float64(downW-1) / float64(t.Width-1)
			j0 := int(v)
			j1 := min(j0+1, downW-1)
			fv := v - float64(j0)

			h := down[i0*downW+j0]*(1-fu)*(1-fv) +
				down[i1*downW+j0]*fu*(1-fv) +
				down[i0*downW+j1]*(1-fu)*fv +
				down[i1*downW+j1]*fu*fv
			t.Set(x, y, t.At(x, y)+int16(h))
		}
	}
}

// PyramidStairs builds concentric steps climbing (or descending, for a
// negative step height) toward a central platform.
func PyramidStairs(t *SubTerrain, stepWidth, stepHeight, platformSize float64) {
	sw := t.toSamples(stepWidth)
	if sw < 1 {
		sw = 1
	}
	sh := int(stepHeight / t.VerticalScale)
	plat := t.toSamples(platformSize)

	height := 0
	startX, stopX := 0, t.Length
	startY, stopY := 0, t.Width
	for stopX-startX > plat && stopY-startY > plat {
		startX += sw
		stopX -= sw
		startY += sw
		stopY -= sw
		height += sh
		t.Fill(startX, stopX, startY, stopY, int16(height))
	}
}

// DiscreteObstacles scatters rectangles of height +-maxHeight (and half
// of it) on a 4-sample grid, then flattens the central platform.
func DiscreteObstacles(t *SubTerrain, rng *rand.Rand, maxHeight, minSize, maxSize float64, numRects int, platformSize float64) {
	maxRaw := int(maxHeight / t.VerticalScale)
	heights := []int16{int16(-maxRaw), int16(-maxRaw / 2), int16(maxRaw / 2), int16(maxRaw)}

	minS := t.toSamples(minSize)
	maxS := t.toSamples(maxSize)
	sizes := strideRange(minS, maxS, 4)

	for k := 0; k < numRects; k++ {
		w := sizes[rng.IntN(len(sizes))]
		l := sizes[rng.IntN(len(sizes))]
		sx := strideChoice(rng, t.Length-w, 4)
		sy := strideChoice(rng, t.Width-l, 4)
		t.Fill(sx, sx+w, sy, sy+l, heights[rng.IntN(len(heights))])
	}

	flattenPlatform(t, platformSize)
}

// DiscreteObstacleCells densely scatters rectangles whose heights are
// drawn uniformly from a narrow raw-unit band, then flattens the central
// platform. Used for cell-like obstacle courses.
func DiscreteObstacleCells(t *SubTerrain, rng *rand.Rand, minHeight, maxHeight, minSize, maxSize float64, numRects int, platformSize float64) {
	lo := int(minHeight / t.VerticalScale)
	hi := int(maxHeight / t.VerticalScale)
	if hi < lo {
		hi = lo
	}

	minS := t.toSamples(minSize)
	maxS := t.toSamples(maxSize)
	sizes := strideRange(minS, maxS, 4)

	for k := 0; k < numRects; k++ {
		w := sizes[rng.IntN(len(sizes))]
		l := sizes[rng.IntN(len(sizes))]
		sx := strideChoice(rng, t.Length-w, 4)
		sy := strideChoice(rng, t.Width-l, 4)
		t.Fill(sx, sx+w, sy, sy+l, int16(lo+rng.IntN(hi-lo+1)))
	}

	flattenPlatform(t, platformSize)
}

// SteppingStones sinks the patch to a given depth and lays a staggered
// grid of stones across it, keeping the central platform flat.
func SteppingStones(t *SubTerrain, rng *rand.Rand, stoneSize, stoneDistance, maxHeight, platformSize, depth float64) {
	ss := t.toSamples(stoneSize)
	if ss < 1 {
		ss = 1
	}
	sd := t.toSamples(stoneDistance)
	maxRaw := int(maxHeight / t.VerticalScale)

	var levels []int16
	for h := -maxRaw - 1; h < maxRaw; h++ {
		levels = append(levels, int16(h))
	}

	t.Fill(0, t.Length, 0, t.Width, int16(depth/t.VerticalScale))

	if t.Length >= t.Width {
		for startX := 0; startX < t.Length; startX += ss + sd {
			stopX := min(t.Length, startX+ss)
			startY := rng.IntN(ss)
			// close the leading gap so rows stay reachable
			t.Fill(startX, stopX, 0, max(0, startY-sd), levels[rng.IntN(len(levels))])
			for ; startY < t.Width; startY += ss + sd {
				stopY := min(t.Width, startY+ss)
				t.Fill(startX, stopX, startY, stopY, levels[rng.IntN(len(levels))])
			}
		}
	} else {
		for startY := 0; startY < t.Width; startY += ss + sd {
			stopY := min(t.Width, startY+ss)
			startX := rng.IntN(ss)
			t.Fill(0, max(0, startX-sd), startY, stopY, levels[rng.IntN(len(levels))])
			for ; startX < t.Length; startX += ss + sd {
				stopX := min(t.Length, startX+ss)
				t.Fill(startX, stopX, startY, stopY, levels[rng.IntN(len(levels))])
			}
		}
	}

	flattenPlatform(t, platformSize)
}

// flattenPlatform zeroes the platform-sized square around the center.
func flattenPlatform(t *SubTerrain, platformSize float64) {
	plat := t.toSamples(platformSize)
	x1 := (t.Length - plat) / 2
	x2 := (t.Length + plat) / 2
	y1 := (t.Width - plat) / 2
	y2 := (t.Width + plat) / 2
	t.Fill(x1, x2, y1, y2, 0)
}

// strideRange returns {lo, lo+step, ...} strictly below hi, or {lo} when
// the range is empty.
func strideRange(lo, hi, step int) []int {
	var out []int
	for v := lo; v < hi; v += step {
		out = append(out, v)
	}
	if len(out) == 0 {
		out = []int{lo}
	}
	return out
}

// strideChoice picks a start offset on a step-aligned grid in [0, hi).
func strideChoice(rng *rand.Rand, hi, step int) int {
	if hi <= 0 {
		return 0
	}
	n := (hi + step - 1) / step
	return rng.IntN(n) * step
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
