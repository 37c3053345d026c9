package golife

import "fmt"

// maxAdvanceOf returns the largest power of two dividing numSteps,
// clamped to at least 1 for any positive numSteps. This is the
// generation budget a single NextGeneration call is allowed to spend:
// an odd step count always advances by exactly one generation per
// call, never by zero (the naive "largest power of two" computation
// underflows to zero when numSteps is a plain 1; clamping fixes that).
func maxAdvanceOf(numSteps int64) int64 {
	if numSteps <= 0 {
		return 0
	}
	power := int64(1)
	for numSteps%(power*2) == 0 {
		power *= 2
	}
	return power
}

// naturalAdvance is the number of generations a level-L node's cached
// NextGeneration result represents: 2^(L-2), bottoming out at the
// level-2 base case which always advances exactly one generation.
func naturalAdvance(level int32) int64 {
	if level < 2 {
		return 0
	}
	return int64(1) << uint(level-2)
}

func maxInt32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}

// childOf returns n's child in the given quadrant (0=NW, 1=NE, 2=SW,
// 3=SE), or falseNode if n itself is falseNode or the level-0 leaf
// trueNode (neither has children).
func childOf(n *lifeNode, quadrant int) *lifeNode {
	if n == nil || n == trueNode {
		return nil
	}
	switch quadrant {
	case 0:
		return n.nw
	case 1:
		return n.ne
	case 2:
		return n.sw
	default:
		return n.se
	}
}

// centeredSubNode returns the node one level down built from n's four
// grandchildren nearest the center: n.se.nw, n.sw.ne, n.nw.se, n.ne.sw.
func centeredSubNode(n *lifeNode) *lifeNode {
	if n == nil {
		return nil
	}
	se := childOf(n.se, 0)
	sw := childOf(n.sw, 1)
	nw := childOf(n.nw, 3)
	ne := childOf(n.ne, 2)
	return findOrCreate(nw, ne, sw, se)
}

// centeredHorizontal straddles the boundary between w (west) and e
// (east), pulling the two inner columns of grandchildren from each.
func centeredHorizontal(w, e *lifeNode) *lifeNode {
	se := childOf(childOf(e, 2), 0)
	ne := childOf(childOf(e, 0), 2)
	sw := childOf(childOf(w, 3), 1)
	nw := childOf(childOf(w, 1), 3)
	return findOrCreate(nw, ne, sw, se)
}

// centeredVertical straddles the boundary between n (north) and s
// (south), pulling the two inner rows of grandchildren from each.
func centeredVertical(n, s *lifeNode) *lifeNode {
	se := childOf(childOf(s, 1), 0)
	sw := childOf(childOf(s, 0), 1)
	nw := childOf(childOf(n, 2), 3)
	ne := childOf(childOf(n, 3), 2)
	return findOrCreate(nw, ne, sw, se)
}

// centeredSubSubNode returns the node two levels down built from the
// innermost great-grandchild of each of n's direct children.
func centeredSubSubNode(n *lifeNode) *lifeNode {
	if n == nil {
		return nil
	}
	se := childOf(childOf(n.se, 0), 0)
	sw := childOf(childOf(n.sw, 1), 1)
	nw := childOf(childOf(n.nw, 3), 3)
	ne := childOf(childOf(n.ne, 2), 2)
	return findOrCreate(nw, ne, sw, se)
}

// needsExpansion reports whether any live cell sits close enough to
// n's border (within one quadrant's thickness) that advancing it
// safely requires first growing the universe by one level. A level at
// or below 2 always needs expansion first, since the base case and
// the centered-construction helpers both assume a level-2-or-deeper
// tree to recurse over.
func needsExpansion(n *lifeNode, level int32) bool {
	if level <= 2 {
		return true
	}
	if n == nil {
		return false
	}
	if !nodeIsEmptyOrFalse(n.nw) && (!nodeIsEmptyOrFalse(n.nw.nw) || !nodeIsEmptyOrFalse(n.nw.ne) || !nodeIsEmptyOrFalse(n.nw.sw)) {
		return true
	}
	if !nodeIsEmptyOrFalse(n.ne) && (!nodeIsEmptyOrFalse(n.ne.nw) || !nodeIsEmptyOrFalse(n.ne.ne) || !nodeIsEmptyOrFalse(n.ne.se)) {
		return true
	}
	if !nodeIsEmptyOrFalse(n.sw) && (!nodeIsEmptyOrFalse(n.sw.nw) || !nodeIsEmptyOrFalse(n.sw.sw) || !nodeIsEmptyOrFalse(n.sw.se)) {
		return true
	}
	if !nodeIsEmptyOrFalse(n.se) && (!nodeIsEmptyOrFalse(n.se.ne) || !nodeIsEmptyOrFalse(n.se.sw) || !nodeIsEmptyOrFalse(n.se.se)) {
		return true
	}
	return false
}

// wrapLeafToLevel1 lifts a level-0 leaf (trueNode or falseNode) into a
// level-1 node with the leaf placed at the NW corner, leaving the
// root's absolute offset unchanged. expandUniverse cannot handle this
// step itself — a leaf has no children to redistribute into the four
// new quadrants.
func wrapLeafToLevel1(n *lifeNode) *lifeNode {
	return findOrCreate(n, nil, nil, nil)
}

// expandUniverse wraps n (level L, L >= 1) in an empty border, moving
// each of n's direct children into the innermost corner of one of four
// new level-L quadrants, which combine into a new level-(L+1) root.
func expandUniverse(n *lifeNode, level int32) *lifeNode {
	emptyChild := emptyTree(int64(1) << uint(maxInt32(level-1, 0)))
	if n == nil {
		return findOrCreate(emptyChild, emptyChild, emptyChild, emptyChild)
	}
	newSE := findOrCreate(n.se, emptyChild, emptyChild, emptyChild)
	newSW := findOrCreate(emptyChild, n.sw, emptyChild, emptyChild)
	newNW := findOrCreate(emptyChild, emptyChild, emptyChild, n.nw)
	newNE := findOrCreate(emptyChild, emptyChild, n.ne, emptyChild)
	return findOrCreate(newNW, newNE, newSW, newSE)
}

// advanceBase is the level-2 base case: it reads the 4x4 neighbourhood
// out of n's leaves, runs one generation of brute-force SparseLife
// over it, and packs the centered 2x2 result back into a level-1 node
// (falseNode when all four cells are dead).
func advanceBase(n *lifeNode) *lifeNode {
	if nodeIsEmptyOrFalse(n) {
		return nil
	}

	local := NewCellSet()
	addQuadrant := func(q *lifeNode, ox, oy int32) {
		if nodeIsEmptyOrFalse(q) {
			return
		}
		if q.nw == trueNode {
			local.Insert(Cell{X: ox, Y: oy})
		}
		if q.ne == trueNode {
			local.Insert(Cell{X: ox + 1, Y: oy})
		}
		if q.sw == trueNode {
			local.Insert(Cell{X: ox, Y: oy + 1})
		}
		if q.se == trueNode {
			local.Insert(Cell{X: ox + 1, Y: oy + 1})
		}
	}
	addQuadrant(n.nw, 0, 0)
	addQuadrant(n.ne, 2, 0)
	addQuadrant(n.sw, 0, 2)
	addQuadrant(n.se, 2, 2)

	next := SparseLife(local, &Rect{X: 0, Y: 0, Width: 4, Height: 4}, nil)

	nw, ne := boolNode(next.Contains(Cell{X: 1, Y: 1})), boolNode(next.Contains(Cell{X: 2, Y: 1}))
	sw, se := boolNode(next.Contains(Cell{X: 1, Y: 2})), boolNode(next.Contains(Cell{X: 2, Y: 2}))
	if nw == nil && ne == nil && sw == nil && se == nil {
		return nil
	}
	return findOrCreate(nw, ne, sw, se)
}

func boolNode(live bool) *lifeNode {
	if live {
		return trueNode
	}
	return nil
}

// advanceCombine builds the classic nine-overlapping-square
// decomposition of a level-L node and advances each of the resulting
// four level-(L-1) squares by recursing through advanceNode with the
// given childBudget, combining the four results into the final
// level-(L-1) node. It returns that node along with the number of
// generations the recursion actually advanced (the minimum reported
// by the four branches, which agree in practice but are not assumed
// to).
func advanceCombine(n *lifeNode, level int32, childBudget int64) (*lifeNode, int64) {
	n00 := centeredSubNode(n.nw)
	n01 := centeredHorizontal(n.nw, n.ne)
	n02 := centeredSubNode(n.ne)
	n10 := centeredVertical(n.nw, n.sw)
	n11 := centeredSubSubNode(n)
	n12 := centeredVertical(n.ne, n.se)
	n20 := centeredSubNode(n.sw)
	n21 := centeredHorizontal(n.sw, n.se)
	n22 := centeredSubNode(n.se)

	nw, gNW := advanceNode(findOrCreate(n00, n01, n10, n11), level-1, childBudget)
	ne, gNE := advanceNode(findOrCreate(n01, n02, n11, n12), level-1, childBudget)
	sw, gSW := advanceNode(findOrCreate(n10, n11, n20, n21), level-1, childBudget)
	se, gSE := advanceNode(findOrCreate(n11, n12, n21, n22), level-1, childBudget)

	generations := gNW
	for _, g := range [3]int64{gNE, gSW, gSE} {
		if g < generations {
			generations = g
		}
	}
	return findOrCreate(nw, ne, sw, se), generations
}

// advanceFast computes the full, unthrottled Gosper doubling of a
// level-L node (L > 2): the result is always advanced by exactly
// naturalAdvance(level) generations. It is memoised independent of any
// step budget, since the fast path by definition always computes the
// same answer for the same (node, level) pair.
func advanceFast(n *lifeNode, level int32) *lifeNode {
	key := stepKey{node: n, level: level}
	if v, ok := stepCache.Load(key); ok {
		return v.(*lifeNode)
	}

	groupKey := fmt.Sprintf("fast|%p|%d", n, level)
	v, _, _ := stepCacheGroup.Do(groupKey, func() (interface{}, error) {
		if existing, ok := stepCache.Load(key); ok {
			return existing, nil
		}
		// Two rounds of level-(L-1) advances: the nine overlapping
		// level-(L-1) squares first, then the four squares their results tile.
		adv := func(a, b, c, d *lifeNode) *lifeNode {
			r, _ := advanceNode(findOrCreate(a, b, c, d), level-1, naturalAdvance(level-1))
			return r
		}
		k := childOf
		nw, ne, sw, se := n.nw, n.ne, n.sw, n.se
		r00, r01, r02 := adv(k(nw, 0), k(nw, 1), k(nw, 2), k(nw, 3)), adv(k(nw, 1), k(ne, 0), k(nw, 3), k(ne, 2)), adv(k(ne, 0), k(ne, 1), k(ne, 2), k(ne, 3))
		r10, r11, r12 := adv(k(nw, 2), k(nw, 3), k(sw, 0), k(sw, 1)), adv(k(nw, 3), k(ne, 2), k(sw, 1), k(se, 0)), adv(k(ne, 2), k(ne, 3), k(se, 0), k(se, 1))
		r20, r21, r22 := adv(k(sw, 0), k(sw, 1), k(sw, 2), k(sw, 3)), adv(k(sw, 1), k(se, 0), k(sw, 3), k(se, 2)), adv(k(se, 0), k(se, 1), k(se, 2), k(se, 3))
		result := findOrCreate(adv(r00, r01, r10, r11), adv(r01, r02, r11, r12), adv(r10, r11, r20, r21), adv(r11, r12, r21, r22))
		actual, _ := stepCache.LoadOrStore(key, result)
		return actual, nil
	})
	return v.(*lifeNode)
}

type slowResult struct {
	node        *lifeNode
	generations int64
}

// advanceSlow is the throttled path: when a level-L node's natural
// doubling speed would overshoot the caller's remaining step budget,
// it recurses one level down with the same budget instead of doubling
// unconditionally, trading a smaller per-call generation count for
// never advancing further than asked.
func advanceSlow(n *lifeNode, level int32, maxAdvance int64) (*lifeNode, int64) {
	key := slowKey{node: n, level: level, maxAdvance: maxAdvance}
	if v, ok := slowCache.Load(key); ok {
		r := v.(*slowResult)
		return r.node, r.generations
	}

	groupKey := fmt.Sprintf("slow|%p|%d|%d", n, level, maxAdvance)
	v, _, _ := slowCacheGroup.Do(groupKey, func() (interface{}, error) {
		if existing, ok := slowCache.Load(key); ok {
			return existing, nil
		}
		node, generations := advanceCombine(n, level, maxAdvance)
		result := &slowResult{node: node, generations: generations}
		actual, _ := slowCache.LoadOrStore(key, result)
		return actual, nil
	})
	r := v.(*slowResult)
	return r.node, r.generations
}

// advanceNode is the single entry point the rest of the package calls
// to advance a node by up to maxAdvance generations: it picks the base
// case, the fast doubling path, or the throttled slow path, and
// reports exactly how many generations it advanced.
func advanceNode(n *lifeNode, level int32, maxAdvance int64) (*lifeNode, int64) {
	if nodeIsEmptyOrFalse(n) {
		return emptyTree(int64(1) << uint(maxInt32(level-2, 0))), maxAdvance
	}
	if level <= 2 {
		return advanceBase(n), 1
	}
	if naturalAdvance(level) <= maxAdvance {
		return advanceFast(n, level), naturalAdvance(level)
	}
	return advanceSlow(n, level, maxAdvance)
}

// NextGeneration grows q's universe as needed and advances it by up to
// maxAdvance generations (see maxAdvanceOf), returning the new tree
// and the number of generations actually advanced.
func (q *HashQuadtree) NextGeneration(maxAdvance int64) (*HashQuadtree, int64) {
	if q.IsEmpty() {
		return &HashQuadtree{offsetX: q.offsetX, offsetY: q.offsetY, depth: q.depth}, 0
	}

	root, level := q.root, q.depth
	offsetX, offsetY := q.offsetX, q.offsetY

	if level == 0 {
		root = wrapLeafToLevel1(root)
		level = 1
	}
	if level == 1 {
		delta := int64(1) << uint(maxInt32(level-1, 0))
		root = expandUniverse(root, level)
		offsetX -= delta
		offsetY -= delta
		level = 2
	}

	for needsExpansion(root, level) && level < 62 {
		delta := int64(1) << uint(level-1)
		root = expandUniverse(root, level)
		offsetX -= delta
		offsetY -= delta
		level++
	}
	// One more level of empty border, so cells that grow outward during
	// the advance stay inside the centered half the result keeps.
	delta := int64(1) << uint(level-1)
	root = expandUniverse(root, level)
	offsetX -= delta
	offsetY -= delta
	level++

	advanced, generations := advanceNode(root, level, maxAdvance)
	centerDelta := int64(1) << uint(maxInt32(level-2, 0))

	return &HashQuadtree{
		root:    advanced,
		offsetX: offsetX + centerDelta,
		offsetY: offsetY + centerDelta,
		depth:   level - 1,
	}, generations
}
