// Package golife implements the simulation core of a Game-of-Life engine:
// two interchangeable evolution algorithms (SparseLife and HashLife) over
// an unbounded two-dimensional lattice of live cells, a run-length
// encoding for rectangular regions, a Grid façade that picks between the
// algorithms, and a SimulationWorker that runs evolution on a background
// goroutine with lock-free snapshot publication.
//
// HashLife is Gosper's algorithm: a hash-consed quadtree where every node
// memoises its own centered result advanced 2^(k-2) generations. The node
// pool and step caches are process-wide — every Grid and every goroutine
// in the process shares the same interned nodes, so identical subtrees
// (a glider a thousand cells away from another glider) are stored once.
//
// SparseLife is the non-memoised fallback: a single neighbour-counting
// pass, used directly for small or chaotic patterns and as the level-2
// base case inside HashLife's recursion.
package golife
