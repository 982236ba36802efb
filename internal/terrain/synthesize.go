package terrain

import (
	"math/rand/v2"

	"github.com/Faultbox/terraforge/internal/config"
	"github.com/Faultbox/terraforge/pkg/heightfield"
)

// derivedParams are the generator parameters scaled from a difficulty in
// [0, 1]. All grow with difficulty except the stone size, which shrinks
// so the stepping stones get harder to hit.
type derivedParams struct {
	slope          float64
	stepHeight     float64
	obstacleHeight float64
	stoneSize      float64
	stoneDistance  float64
	gapSize        float64
	pitDepth       float64
}

func deriveParams(difficulty float64) derivedParams {
	p := derivedParams{
		slope:          difficulty * 0.4,
		stepHeight:     0.05 + 0.18*difficulty,
		obstacleHeight: 0.05 + 0.2*difficulty,
		stoneSize:      1.5 * (1.05 - difficulty),
		stoneDistance:  0.1,
		gapSize:        1.0 * difficulty,
		pitDepth:       1.0 * difficulty,
	}
	if difficulty == 0 {
		p.stoneDistance = 0.05
	}
	return p
}

// newPatch creates a flat sub-terrain sized for one grid cell.
func (t *Terrain) newPatch() *heightfield.SubTerrain {
	tc := t.cfg.Terrain
	return heightfield.NewSubTerrain("terrain", t.widthPx, t.lengthPx, tc.HorizontalScale, tc.VerticalScale)
}

// makeTerrain synthesizes one sub-terrain for a (choice, difficulty)
// pair. The choice is compared against the cumulative proportion
// thresholds in order; a draw past the last threshold falls through to a
// pit. The synthesizer draws no randomness itself beyond what the noise
// generators consume.
func (t *Terrain) makeTerrain(choice, difficulty float64) *heightfield.SubTerrain {
	sub := t.newPatch()
	p := deriveParams(difficulty)

	switch {
	case choice < t.proportions[0]:
		slope := p.slope
		// Lower half of the slope interval runs downhill.
		if choice < t.proportions[0]/2 {
			slope = -slope
		}
		heightfield.PyramidSloped(sub, slope, 3.0)
	case choice < t.proportions[1]:
		heightfield.PyramidSloped(sub, p.slope, 3.0)
		heightfield.RandomUniform(sub, t.rng, -0.05, 0.05, 0.005, 0.2)
	case choice < t.proportions[3]:
		step := p.stepHeight
		if choice < t.proportions[2] {
			step = -step
		}
		heightfield.PyramidStairs(sub, 0.31, step, 3.0)
	case choice < t.proportions[4]:
		heightfield.DiscreteObstacles(sub, t.rng, p.obstacleHeight, 1.0, 2.0, 20, 3.0)
	case choice < t.proportions[5]:
		heightfield.DiscreteObstacleCells(sub, t.rng, 0.14, 0.15, 2.0, 5.0, int(200*difficulty), 3.0)
	case choice < t.proportions[6]:
		heightfield.SteppingStones(sub, t.rng, p.stoneSize, p.stoneDistance, 0.0, 4.0, -10.0)
	case choice < t.proportions[7]:
		heightfield.Gap(sub, p.gapSize, 3.0)
	default:
		heightfield.Pit(sub, p.pitDepth, 4.0)
	}

	return sub
}

// selectedGenerators maps every terrain kind to a closure applying
// SelectedConfig parameters. Zero-valued size parameters fall back to
// the synthesizer's defaults.
var selectedGenerators = map[heightfield.Kind]func(*heightfield.SubTerrain, *rand.Rand, config.SelectedConfig){
	heightfield.KindPyramidSloped: func(s *heightfield.SubTerrain, _ *rand.Rand, p config.SelectedConfig) {
		heightfield.PyramidSloped(s, p.Slope, orDefault(p.PlatformSize, 3.0))
	},
	heightfield.KindRandomUniform: func(s *heightfield.SubTerrain, rng *rand.Rand, p config.SelectedConfig) {
		heightfield.RandomUniform(s, rng, p.MinHeight, p.MaxHeight, orDefault(p.Step, 0.005), p.DownsampledScale)
	},
	heightfield.KindPyramidStairs: func(s *heightfield.SubTerrain, _ *rand.Rand, p config.SelectedConfig) {
		heightfield.PyramidStairs(s, orDefault(p.StepWidth, 0.31), p.StepHeight, orDefault(p.PlatformSize, 3.0))
	},
	heightfield.KindDiscreteObstacles: func(s *heightfield.SubTerrain, rng *rand.Rand, p config.SelectedConfig) {
		heightfield.DiscreteObstacles(s, rng, p.MaxHeight, p.MinSize, p.MaxSize, p.NumRects, orDefault(p.PlatformSize, 3.0))
	},
	heightfield.KindDiscreteObstacleCells: func(s *heightfield.SubTerrain, rng *rand.Rand, p config.SelectedConfig) {
		heightfield.DiscreteObstacleCells(s, rng, p.MinHeight, p.MaxHeight, p.MinSize, p.MaxSize, p.NumRects, orDefault(p.PlatformSize, 3.0))
	},
	heightfield.KindSteppingStones: func(s *heightfield.SubTerrain, rng *rand.Rand, p config.SelectedConfig) {
		heightfield.SteppingStones(s, rng, p.StoneSize, p.StoneDistance, p.MaxHeight, orDefault(p.PlatformSize, 4.0), orDefault(p.Depth, -10.0))
	},
	heightfield.KindGap: func(s *heightfield.SubTerrain, _ *rand.Rand, p config.SelectedConfig) {
		heightfield.Gap(s, p.GapSize, orDefault(p.PlatformSize, 3.0))
	},
	heightfield.KindPit: func(s *heightfield.SubTerrain, _ *rand.Rand, p config.SelectedConfig) {
		heightfield.Pit(s, p.Depth, orDefault(p.PlatformSize, 4.0))
	},
}

func orDefault(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}
