package golife

import "fmt"

// ErrInvalidFormat is returned by DecodeRegion when a byte in the stream
// is missing the 0x40 marker bit, or a size field is internally
// inconsistent. Decoding aborts without partial state.
var ErrInvalidFormat = fmt.Errorf("golife: rle stream is not well-formed")

// ErrCapacityExceeded is returned by EncodeRegion when a region's cell
// count overflows every available storage width (1, 2, 4, and 8 bytes).
var ErrCapacityExceeded = fmt.Errorf("golife: region exceeds the largest rle storage width")

// OversizeError is returned by DecodeRegion when the decoded live cell
// count reaches warnThreshold before the stream is fully consumed. No
// cells are committed; Count reports how many live cells were seen so
// the caller can re-prompt with a higher threshold.
type OversizeError struct {
	Count uint64
}

func (e *OversizeError) Error() string {
	return fmt.Sprintf("golife: rle region contains at least %d live cells, over the warn threshold", e.Count)
}
