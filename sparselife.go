package golife

var neighborDX = [8]int32{-1, -1, -1, 0, 0, 1, 1, 1}
var neighborDY = [8]int32{-1, 0, 1, -1, 1, -1, 0, 1}

// SparseLife advances data by one generation under B3/S23, counting
// Moore neighbours in a transient map rather than building any
// persistent structure. bounds is nil for an unbounded universe;
// otherwise neighbours outside bounds never contribute and never
// become live.
//
// cancel is consulted once per live cell scanned; if it fires mid-pass,
// SparseLife returns data unchanged (the input is never mutated in any
// case — this only controls whether the new generation is computed at
// all).
func SparseLife(data *CellSet, bounds *Rect, cancel *CancelToken) *CellSet {
	if data == nil {
		return NewCellSet()
	}

	neighborCount := make(map[Cell]uint8, data.Len()*8)
	for c := range data.cells {
		if cancel.Cancelled() {
			return data
		}
		for i := 0; i < 8; i++ {
			n := Cell{X: c.X + neighborDX[i], Y: c.Y + neighborDY[i]}
			if bounds != nil && bounds.Width > 0 && bounds.Height > 0 && !bounds.InBounds(n) {
				continue
			}
			neighborCount[n]++
		}
	}

	next := NewCellSet()
	for pos, count := range neighborCount {
		if count == 3 || (count == 2 && data.Contains(pos)) {
			next.Insert(pos)
		}
	}
	return next
}
