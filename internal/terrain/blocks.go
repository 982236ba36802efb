package terrain

import (
	"math"
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/Faultbox/terraforge/pkg/trimesh"
)

// Block placement tuning.
const (
	blocksPerArea    = 1.0 // blocks per square meter of elevated terrain
	blockHeight      = 0.1
	blockSeparation  = 1.0
	spawnClearance   = 3.0 // keep-out radius around the bbox min corner
	maxBlockAttempts = 1000
)

// blockFootprints are the candidate block dimensions, in meters.
var blockFootprints = [3][2]float64{{0.15, 0.15}, {0.15, 0.3}, {0.3, 0.15}}

// AugmentWithBlocks scatters small rectangular blocks over the elevated
// part of a mesh for extra obstacle variety and appends their geometry.
// Placement is fully determined by the seed. Returns the number of
// blocks placed.
//
// Candidates near the bounding box's minimum corner are rejected to keep
// the spawn platform clear. The separation check against earlier blocks
// compares signed per-axis deltas against a single threshold; it is not
// a true overlap test and is kept as-is for compatibility with the
// terrain layouts tuned against it.
func AugmentWithBlocks(m *trimesh.Mesh, seed int64, log *zap.Logger) int {
	if log == nil {
		log = zap.NewNop()
	}

	// Bounding box of everything above the flat base.
	x0, x1 := math.Inf(1), math.Inf(-1)
	y0, y1 := math.Inf(1), math.Inf(-1)
	for _, v := range m.Vertices {
		if v[2] <= 0.1 {
			continue
		}
		x0 = min(x0, float64(v[0]))
		x1 = max(x1, float64(v[0]))
		y0 = min(y0, float64(v[1]))
		y1 = max(y1, float64(v[1]))
	}
	if math.IsInf(x0, 1) {
		return 0
	}

	numBlocks := int((x1 - x0) * (y1 - y0) * blocksPerArea)
	rng := rand.New(rand.NewPCG(uint64(seed), 0))

	type block struct {
		x, y, s1, s2 float64
	}
	var blocks []block

	for idx := 0; idx < numBlocks; idx++ {
		placed := false
		for attempt := 0; attempt < maxBlockAttempts; attempt++ {
			fp := blockFootprints[rng.IntN(len(blockFootprints))]
			x := rng.Float64()*(x1-x0) + x0
			y := rng.Float64()*(y1-y0) + y0

			if math.Hypot(x-x0, y-y0) < spawnClearance {
				continue
			}
			if len(blocks) > 0 {
				minDX, minDY := math.Inf(1), math.Inf(1)
				for _, b := range blocks {
					minDX = min(minDX, b.x-x)
					minDY = min(minDY, b.y-y)
				}
				if min(minDX, minDY) > blockSeparation {
					continue
				}
			}

			blocks = append(blocks, block{x: x, y: y, s1: fp[0], s2: fp[1]})
			placed = true
			break
		}
		if !placed {
			log.Warn("block placement attempts exhausted",
				zap.Int("placed", len(blocks)), zap.Int("wanted", numBlocks))
			break
		}
	}

	for _, b := range blocks {
		m.AppendBlock(b.x, b.y, b.s1, b.s2, blockHeight)
	}
	return len(blocks)
}
