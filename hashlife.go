package golife

// HashLifeAdvance advances data by numSteps generations using Gosper's
// algorithm: it builds (or reuses) a hash-consed quadtree over data,
// repeatedly calls NextGeneration with the largest power-of-two budget
// that divides the remaining step count, and flattens the result
// back into a CellSet. cancel is consulted between NextGeneration
// calls, never in the middle of one, so a cancelled run always returns
// a tree consistent with some whole number of completed generations.
func HashLifeAdvance(data *CellSet, numSteps int64, cancel *CancelToken) (*CellSet, int64) {
	if numSteps <= 0 {
		return data.Clone(), 0
	}

	tree := HashQuadtreeFromCells(data, 0, 0)

	remaining := numSteps
	var advanced int64
	for remaining > 0 {
		if cancel.Cancelled() {
			break
		}
		budget := maxAdvanceOf(remaining)
		next, generations := tree.NextGeneration(budget)
		tree = next
		if generations <= 0 {
			break
		}
		advanced += generations
		remaining -= generations
	}

	return tree.ToCellSet(), advanced
}
