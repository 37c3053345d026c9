package golife

import (
	"fmt"
	"log"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

// The node pool, the fast/slow step caches, and the empty-tree cache are
// process-wide: every HashQuadtree, in every Grid, on every goroutine,
// shares them for the life of the process. sync.Map gives the
// correctness guarantee structural hash-consing needs (LoadOrStore is
// atomic, so two racing builders of the same four children always agree
// on which *lifeNode wins); singleflight.Group is layered on top purely
// to stop two goroutines that observe the same cache miss at the same
// time from doing the same recursive Advance work twice.
var (
	nodePool      sync.Map // childKey -> *lifeNode
	nodePoolGroup singleflight.Group

	stepCache      sync.Map // stepKey -> *lifeNode (fast path, full natural advance)
	stepCacheGroup singleflight.Group

	slowCache      sync.Map // slowKey -> *slowResult (throttled path: node plus generations advanced)
	slowCacheGroup singleflight.Group

	emptyTreeCache sync.Map // size(int64) -> *lifeNode

	nodeIDCounter uint64 = 2 // 0 reserved for falseNode, 1 for trueNode
	nodePoolSize  int64
)

type childKey struct {
	nw, ne, sw, se *lifeNode
}

// stepKey identifies a memoised full-speed advance: the same *lifeNode
// only ever appears at one level in a given caller's tree, but nothing
// stops two different Grids from handing the same pointer in at two
// different levels, so level is part of the key rather than assumed.
type stepKey struct {
	node  *lifeNode
	level int32
}

type slowKey struct {
	node       *lifeNode
	level      int32
	maxAdvance int64
}

// nodePoolCacheWarnSize mirrors the teacher's own single diagnostic log
// line (NextGen's cache-size notice in the original quadtree package):
// a milestone worth a log line, not a policy that evicts anything —
// the pool is intentionally monotonically growing for the run.
const nodePoolCacheWarnSize = 8_000_000

// findOrCreate returns the unique interned node for the given four
// children, allocating and inserting one if this combination has never
// been seen before.
func findOrCreate(nw, ne, sw, se *lifeNode) *lifeNode {
	key := childKey{nw, ne, sw, se}
	if v, ok := nodePool.Load(key); ok {
		return v.(*lifeNode)
	}

	groupKey := fmt.Sprintf("%p|%p|%p|%p", nw, ne, sw, se)
	v, _, _ := nodePoolGroup.Do(groupKey, func() (interface{}, error) {
		if existing, ok := nodePool.Load(key); ok {
			return existing, nil
		}
		node := &lifeNode{
			nw: nw, ne: ne, sw: sw, se: se,
			id:      atomic.AddUint64(&nodeIDCounter, 1),
			isEmpty: nodeIsEmptyOrFalse(nw) && nodeIsEmptyOrFalse(ne) && nodeIsEmptyOrFalse(sw) && nodeIsEmptyOrFalse(se),
		}
		node.hash = combineNodeHash(nw, ne, sw, se)

		actual, loaded := nodePool.LoadOrStore(key, node)
		if !loaded {
			n := atomic.AddInt64(&nodePoolSize, 1)
			if n%nodePoolCacheWarnSize == 0 {
				log.Println("golife: node pool has grown to", n, "interned nodes")
			}
		}
		return actual, nil
	})
	return v.(*lifeNode)
}

// emptyTree returns the memoised all-dead node covering a size x size
// square, recursively building and interning any missing smaller sizes
// along the way. emptyTree(1) is falseNode (nil).
func emptyTree(size int64) *lifeNode {
	if size <= 1 {
		return nil
	}
	if v, ok := emptyTreeCache.Load(size); ok {
		return v.(*lifeNode)
	}
	child := emptyTree(size / 2)
	node := findOrCreate(child, child, child, child)
	emptyTreeCache.LoadOrStore(size, node)
	return node
}
