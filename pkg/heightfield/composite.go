package heightfield

// gapDepthRaw is the raw height written into gap moats. It is deep
// enough that any agent falling in is unambiguously off the terrain.
const gapDepthRaw = -1000

// Gap carves a moat of the given world-unit width around a flat central
// platform: the outer square is sunk to the moat depth first, then the
// platform square is restored to zero.
func Gap(t *SubTerrain, gapSize, platformSize float64) {
	gap := t.toSamples(gapSize)
	half := t.toSamples(platformSize) / 2
	outer := half + gap

	cx := t.Length / 2
	cy := t.Width / 2
	t.Fill(cx-outer, cx+outer, cy-outer, cy+outer, gapDepthRaw)
	t.Fill(cx-half, cx+half, cy-half, cy+half, 0)
}

// Pit sinks a platform-sized square centered on the patch to the given
// world-unit depth. The surrounding terrain is untouched.
func Pit(t *SubTerrain, depth, platformSize float64) {
	raw := int16(depth / t.VerticalScale)
	half := int(platformSize / t.HorizontalScale / 2)

	cx := t.Length / 2
	cy := t.Width / 2
	t.Fill(cx-half, cx+half, cy-half, cy+half, -raw)
}
