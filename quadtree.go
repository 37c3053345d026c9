package golife

// treePos is an absolute lattice coordinate in the 64-bit space the
// quadtree itself operates in — wider than Cell's 32 bits because a
// long-lived HashQuadtree can expand its root many times over a run.
// CellSet and Grid stay in 32-bit Cell space; treePos only appears at
// the boundary where a quadtree is built from, or converted back into,
// concrete cells.
type treePos struct {
	X, Y int64
}

// HashQuadtree is the hash-consed representation of a live-cell set: a
// root node reference (nil for an empty tree), the 64-bit offset of the
// root's north-west corner, and the root's level (depth, edges from
// root to leaf; size = 2^depth).
type HashQuadtree struct {
	root             *lifeNode
	offsetX, offsetY int64
	depth            int32
}

// HashQuadtreeFromCells builds a quadtree over cells, translated by
// offset. An empty CellSet produces an empty tree with a nil root.
func HashQuadtreeFromCells(cells *CellSet, offsetX, offsetY int64) *HashQuadtree {
	if cells == nil || cells.Len() == 0 {
		return &HashQuadtree{}
	}

	pts := make([]treePos, 0, cells.Len())
	minX, minY, maxX, maxY := int64(0), int64(0), int64(0), int64(0)
	first := true
	for c := range cells.cells {
		p := treePos{X: int64(c.X), Y: int64(c.Y)}
		pts = append(pts, p)
		if first {
			minX, maxX, minY, maxY = p.X, p.X, p.Y, p.Y
			first = false
			continue
		}
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}

	span := maxX - minX
	if dy := maxY - minY; dy > span {
		span = dy
	}
	span++

	size := nextPowerOfTwo(span)
	depth := log2Int64(size)
	root := buildTreeRegion(pts, minX, minY, size)

	return &HashQuadtree{
		root:    root,
		offsetX: minX + offsetX,
		offsetY: minY + offsetY,
		depth:   depth,
	}
}

func nextPowerOfTwo(n int64) int64 {
	if n <= 1 {
		return 1
	}
	size := int64(1)
	for size < n {
		size <<= 1
	}
	return size
}

func log2Int64(n int64) int32 {
	var depth int32
	for n > 1 {
		n >>= 1
		depth++
	}
	return depth
}

// buildTreeRegion recursively partitions cells by the horizontal and
// vertical midlines of the size x size square rooted at (x, y), base
// casing at size 1 (a single leaf).
func buildTreeRegion(cells []treePos, x, y, size int64) *lifeNode {
	if len(cells) == 0 {
		return emptyTree(size)
	}
	if size == 1 {
		return trueNode
	}

	half := size / 2
	midY := y + half
	midX := x + half

	splitY := partitionBy(cells, func(p treePos) bool { return p.Y < midY })
	north, south := cells[:splitY], cells[splitY:]

	splitNorthX := partitionBy(north, func(p treePos) bool { return p.X < midX })
	splitSouthX := partitionBy(south, func(p treePos) bool { return p.X < midX })

	nw := buildTreeRegion(north[:splitNorthX], x, y, half)
	ne := buildTreeRegion(north[splitNorthX:], x+half, y, half)
	sw := buildTreeRegion(south[:splitSouthX], x, y+half, half)
	se := buildTreeRegion(south[splitSouthX:], x+half, y+half, half)

	return findOrCreate(nw, ne, sw, se)
}

// partitionBy reorders cells in place so every element satisfying pred
// comes first, and returns the split index. Order within each side is
// unspecified — callers only rely on the split point.
func partitionBy(cells []treePos, pred func(treePos) bool) int {
	i := 0
	for j := 0; j < len(cells); j++ {
		if pred(cells[j]) {
			cells[i], cells[j] = cells[j], cells[i]
			i++
		}
	}
	return i
}

// IsEmpty reports whether the tree has no live cells.
func (q *HashQuadtree) IsEmpty() bool {
	return q == nil || nodeIsEmptyOrFalse(q.root)
}

// Depth returns the root's level.
func (q *HashQuadtree) Depth() int32 {
	if q == nil {
		return 0
	}
	return q.depth
}

// Size returns the side length of the root's bounding square (0 for an
// empty tree).
func (q *HashQuadtree) Size() int64 {
	if q.IsEmpty() {
		return 0
	}
	return int64(1) << uint(q.depth)
}

// Offset returns the 64-bit coordinate of the root's north-west corner.
func (q *HashQuadtree) Offset() (x, y int64) {
	if q == nil {
		return 0, 0
	}
	return q.offsetX, q.offsetY
}

// Equal reports whether q and other describe the same set of live
// cells, independent of tree shape (two differently-offset trees can
// describe the same cells without being the same interned root).
func (q *HashQuadtree) Equal(other *HashQuadtree) bool {
	if q == other {
		return true
	}
	if q.IsEmpty() && other.IsEmpty() {
		return true
	}
	if q != nil && other != nil && q.root == other.root && q.offsetX == other.offsetX && q.offsetY == other.offsetY {
		return true
	}
	return treePosSetEqual(q.collect(), other.collect())
}

func treePosSetEqual(a, b []treePos) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[treePos]struct{}, len(a))
	for _, p := range a {
		set[p] = struct{}{}
	}
	for _, p := range b {
		if _, ok := set[p]; !ok {
			return false
		}
	}
	return true
}

// quadFrame is one level of the iterator's explicit DFS stack: the node
// being visited, its absolute position and size, and which quadrant to
// descend into next (NW, NE, SW, SE in that order).
type quadFrame struct {
	node     *lifeNode
	x, y     int64
	size     int64
	quadrant uint8
}

// QuadtreeIterator performs a restartable depth-first traversal of a
// HashQuadtree's live cells, NW/NE/SW/SE order, pruning empty subtrees.
type QuadtreeIterator struct {
	stack   []quadFrame
	current treePos
}

// Begin returns a fresh iterator positioned before the first cell.
func (q *HashQuadtree) Begin() *QuadtreeIterator {
	it := &QuadtreeIterator{}
	if q != nil && q.root != nil {
		it.stack = append(it.stack, quadFrame{node: q.root, x: q.offsetX, y: q.offsetY, size: maxInt64(1, q.Size())})
	}
	return it
}

// Next advances to the next live cell, returning false once exhausted.
func (it *QuadtreeIterator) Next() bool {
	for len(it.stack) > 0 {
		frame := &it.stack[len(it.stack)-1]

		if frame.size == 1 {
			isTrue := frame.node == trueNode
			it.stack = it.stack[:len(it.stack)-1]
			if isTrue {
				it.current = treePos{X: frame.x, Y: frame.y}
				return true
			}
			continue
		}

		if frame.quadrant >= 4 {
			it.stack = it.stack[:len(it.stack)-1]
			continue
		}

		half := frame.size / 2
		var child *lifeNode
		cx, cy := frame.x, frame.y
		switch frame.quadrant {
		case 0:
			child = frame.node.nw
		case 1:
			child = frame.node.ne
			cx += half
		case 2:
			child = frame.node.sw
			cy += half
		case 3:
			child = frame.node.se
			cx += half
			cy += half
		}
		frame.quadrant++

		if !nodeIsEmptyOrFalse(child) {
			it.stack = append(it.stack, quadFrame{node: child, x: cx, y: cy, size: half})
		}
	}
	return false
}

// Cell returns the cell the most recent successful Next() landed on.
func (it *QuadtreeIterator) Cell() treePos {
	return it.current
}

func (q *HashQuadtree) collect() []treePos {
	var out []treePos
	it := q.Begin()
	for it.Next() {
		out = append(out, it.Cell())
	}
	return out
}

// ToCellSet materialises the tree's live cells as a CellSet, truncating
// each absolute position into Cell's 32-bit coordinates.
func (q *HashQuadtree) ToCellSet() *CellSet {
	out := NewCellSet()
	it := q.Begin()
	for it.Next() {
		p := it.Cell()
		out.Insert(Cell{X: int32(p.X), Y: int32(p.Y)})
	}
	return out
}

func maxInt64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
