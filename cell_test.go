package golife

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCellPackedRoundTrip(t *testing.T) {
	c := Cell{X: -12, Y: 34}
	assert.Equal(t, c, unpackCell(c.Packed()))
}

func TestCellSetInsertErase(t *testing.T) {
	s := NewCellSet()
	assert.True(t, s.Insert(Cell{X: 1, Y: 1}))
	assert.False(t, s.Insert(Cell{X: 1, Y: 1}))
	assert.Equal(t, 1, s.Len())

	assert.True(t, s.Erase(Cell{X: 1, Y: 1}))
	assert.False(t, s.Erase(Cell{X: 1, Y: 1}))
	assert.Equal(t, 0, s.Len())
}

func TestCellSetContains(t *testing.T) {
	s := NewCellSet(Cell{X: 0, Y: 0}, Cell{X: 5, Y: -5})
	assert.True(t, s.Contains(Cell{X: 0, Y: 0}))
	assert.False(t, s.Contains(Cell{X: 1, Y: 0}))
}

func TestCellSetCloneIndependent(t *testing.T) {
	s := NewCellSet(Cell{X: 1, Y: 1})
	clone := s.Clone()
	clone.Insert(Cell{X: 2, Y: 2})
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 2, clone.Len())
}

func TestCellSetEqual(t *testing.T) {
	a := NewCellSet(Cell{X: 1, Y: 1}, Cell{X: 2, Y: 2})
	b := NewCellSet(Cell{X: 2, Y: 2}, Cell{X: 1, Y: 1})
	c := NewCellSet(Cell{X: 1, Y: 1})
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestCellSetEqualNil(t *testing.T) {
	empty := NewCellSet()
	assert.True(t, empty.Equal(nil))
	assert.False(t, NewCellSet(Cell{X: 0, Y: 0}).Equal(nil))
}

func TestCellSetChecksumOrderIndependent(t *testing.T) {
	a := NewCellSet(Cell{X: 1, Y: 1}, Cell{X: 2, Y: 2}, Cell{X: 3, Y: 3})
	b := NewCellSet()
	b.Insert(Cell{X: 3, Y: 3})
	b.Insert(Cell{X: 1, Y: 1})
	b.Insert(Cell{X: 2, Y: 2})
	assert.Equal(t, a.Checksum(), b.Checksum())
}

func TestCellSetChecksumDiffers(t *testing.T) {
	a := NewCellSet(Cell{X: 1, Y: 1})
	b := NewCellSet(Cell{X: 2, Y: 2})
	assert.NotEqual(t, a.Checksum(), b.Checksum())
}

func TestCellSetForEach(t *testing.T) {
	s := NewCellSet(Cell{X: 1, Y: 1}, Cell{X: 2, Y: 2})
	seen := map[Cell]bool{}
	s.ForEach(func(c Cell) { seen[c] = true })
	assert.Len(t, seen, 2)
}
