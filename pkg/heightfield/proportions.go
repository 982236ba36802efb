package heightfield

import (
	"errors"
	"fmt"
	"math"
)

// NumTerrainKinds is the number of terrain-shape branches a proportion
// vector selects between.
const NumTerrainKinds = 8

// Proportion table errors.
var (
	ErrProportionLength = errors.New("proportion vector must have 8 entries")
	ErrProportionValue  = errors.New("proportion entries must be non-negative")
	ErrProportionSum    = errors.New("proportion entries must sum to 1")
)

// ProportionTable holds cumulative selection thresholds derived from a
// terrain-type proportion vector. A uniform draw in [0, 1) is mapped to
// the first branch whose threshold it falls strictly below; a draw past
// the last threshold selects the fallback branch.
type ProportionTable [NumTerrainKinds]float64

// NewProportionTable validates a proportion vector and prefix-sums it
// into cumulative thresholds.
func NewProportionTable(proportions []float64) (ProportionTable, error) {
	var table ProportionTable
	if len(proportions) != NumTerrainKinds {
		return table, fmt.Errorf("%w: got %d", ErrProportionLength, len(proportions))
	}
	sum := 0.0
	for i, p := range proportions {
		if p < 0 {
			return table, fmt.Errorf("%w: entry %d is %g", ErrProportionValue, i, p)
		}
		sum += p
		table[i] = sum
	}
	if math.Abs(sum-1.0) > 1e-6 {
		return table, fmt.Errorf("%w: sum is %g", ErrProportionSum, sum)
	}
	// Accumulated rounding can push the last threshold past 1, which
	// would swallow the fallback branch for draws at exactly 1.
	table[NumTerrainKinds-1] = 1.0
	return table, nil
}

// Threshold returns the i-th cumulative threshold.
func (p ProportionTable) Threshold(i int) float64 {
	return p[i]
}
