package golife

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSparseLifeBlockStable(t *testing.T) {
	block := NewCellSet(Cell{X: 0, Y: 0}, Cell{X: 1, Y: 0}, Cell{X: 0, Y: 1}, Cell{X: 1, Y: 1})
	next := SparseLife(block, nil, nil)
	assert.True(t, block.Equal(next))
}

func TestSparseLifeBlinkerOscillates(t *testing.T) {
	horizontal := NewCellSet(Cell{X: 0, Y: 1}, Cell{X: 1, Y: 1}, Cell{X: 2, Y: 1})
	vertical := NewCellSet(Cell{X: 1, Y: 0}, Cell{X: 1, Y: 1}, Cell{X: 1, Y: 2})

	next := SparseLife(horizontal, nil, nil)
	assert.True(t, vertical.Equal(next))

	back := SparseLife(next, nil, nil)
	assert.True(t, horizontal.Equal(back))
}

func TestSparseLifeUnderpopulationAndOverpopulation(t *testing.T) {
	lonely := NewCellSet(Cell{X: 0, Y: 0})
	next := SparseLife(lonely, nil, nil)
	assert.Equal(t, 0, next.Len())

	crowded := NewCellSet(
		Cell{X: 0, Y: 0}, Cell{X: 1, Y: 0}, Cell{X: -1, Y: 0},
		Cell{X: 0, Y: 1}, Cell{X: 0, Y: -1},
	)
	next = SparseLife(crowded, nil, nil)
	assert.False(t, next.Contains(Cell{X: 0, Y: 0}))
}

func TestSparseLifeBirth(t *testing.T) {
	triple := NewCellSet(Cell{X: 0, Y: 0}, Cell{X: 1, Y: 0}, Cell{X: 0, Y: 1})
	next := SparseLife(triple, nil, nil)
	assert.True(t, next.Contains(Cell{X: 1, Y: 1}))
}

func TestSparseLifeBounded(t *testing.T) {
	edge := NewCellSet(Cell{X: 0, Y: 0}, Cell{X: 1, Y: 0}, Cell{X: 2, Y: 0})
	bounds := &Rect{X: 0, Y: 0, Width: 3, Height: 3}
	next := SparseLife(edge, bounds, nil)
	// the vertical blinker phase would land at x=1 y=-1..1; y=-1 is
	// outside bounds so that neighbour contribution never counts.
	assert.False(t, next.Contains(Cell{X: 1, Y: -1}))
}

func TestSparseLifeNilData(t *testing.T) {
	next := SparseLife(nil, nil, nil)
	assert.Equal(t, 0, next.Len())
}

func TestSparseLifeCancelled(t *testing.T) {
	data := NewCellSet(Cell{X: 0, Y: 0}, Cell{X: 1, Y: 0}, Cell{X: 0, Y: 1})
	cancel := NewCancelToken()
	cancel.Cancel()
	next := SparseLife(data, nil, cancel)
	assert.Same(t, data, next)
}

func TestSparseLifeEmptyStaysEmpty(t *testing.T) {
	next := SparseLife(NewCellSet(), nil, nil)
	assert.Equal(t, 0, next.Len())
}
