package heightfield

import (
	"errors"
	"fmt"
)

// Kind identifies one of the terrain-shape branches.
type Kind int

// Terrain kinds, in proportion-table order.
const (
	KindPyramidSloped Kind = iota
	KindRandomUniform
	KindPyramidStairs
	KindDiscreteObstacles
	KindDiscreteObstacleCells
	KindSteppingStones
	KindGap
	KindPit
)

// ErrUnknownKind is returned when a terrain kind name is not recognized.
var ErrUnknownKind = errors.New("unknown terrain kind")

var kindNames = map[Kind]string{
	KindPyramidSloped:         "pyramid_sloped",
	KindRandomUniform:         "random_uniform",
	KindPyramidStairs:         "pyramid_stairs",
	KindDiscreteObstacles:     "discrete_obstacles",
	KindDiscreteObstacleCells: "discrete_obstacle_cells",
	KindSteppingStones:        "stepping_stones",
	KindGap:                   "gap",
	KindPit:                   "pit",
}

// String returns the configuration name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind maps a configuration name to a Kind.
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}
