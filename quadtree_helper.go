package golife

import (
	"math/rand"
)

// randomCellSet returns a CellSet with cells live independently at the
// given density over [0, width) x [0, height), seeded from rng.
func randomCellSet(rng *rand.Rand, width, height int32, density float64) *CellSet {
	out := NewCellSet()
	for x := int32(0); x < width; x++ {
		for y := int32(0); y < height; y++ {
			if rng.Float64() < density {
				out.Insert(Cell{X: x, Y: y})
			}
		}
	}
	return out
}
