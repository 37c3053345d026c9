package golife

// The wire format packs run-length counts into bytes whose top two
// bits are fixed: bit 6 set (the 0x40 marker, so a reader can always
// tell a data byte from the 0x00 terminator) and bit 7 clear. Each
// byte therefore carries 6 payload bits. Multi-byte values are split
// into big-endian 6-bit chunks and written most-significant chunk
// first; the four header fields (offsetX, offsetY, width, height) are
// always encoded as exactly four marker-bytes regardless of the
// chosen run-length storage width, and the three flag fields
// (first-run liveness, offsetX sign, offsetY sign) are always exactly
// one marker-byte each. Only the run-length counts themselves are W
// bytes wide, giving 6*W payload bits per count.
const rleMarker = 0x40

// rleStorageWidth is the byte width used to encode each run-length
// count: the smallest of 1, 2, 4, 8 such that width*height cells fit
// in 6*W bits, mirroring the original encoder's SelectStorageType
// thresholds (count <= max>>2 for a byte, max>>4 for two bytes, and so
// on).
func rleStorageWidth(width, height int32) (int, error) {
	cellCount := uint64(width) * uint64(height)
	for _, w := range [4]int{1, 2, 4, 8} {
		limit := uint64(1)<<uint(6*w) - 1
		if cellCount <= limit {
			return w, nil
		}
	}
	return 0, ErrCapacityExceeded
}

// packUint packs the low 6*n bits of v into n marker-bytes, most
// significant chunk first.
func packUint(v uint64, n int) []byte {
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		shift := uint(6 * (n - 1 - i))
		out[i] = byte((v>>shift)&0x3F) | rleMarker
	}
	return out
}

// unpackUint reads n marker-bytes (most significant first) back into a
// uint64, validating the marker bit on every byte.
func unpackUint(data []byte) (uint64, error) {
	var v uint64
	for _, b := range data {
		if b&0xC0 != rleMarker {
			return 0, ErrInvalidFormat
		}
		v = (v << 6) | uint64(b&0x3F)
	}
	return v, nil
}

func zigzagSign(v int32) (magnitude uint32, negative bool) {
	if v < 0 {
		return uint32(-v), true
	}
	return uint32(v), false
}

// EncodeRegion serialises the live cells of region (read from cells,
// which need not itself be bounded to region) into the bit-packed RLE
// wire format: a four-marker-byte header of offsetX/offsetY/width/
// height, three one-byte flags, then alternating dead/live run-length
// counts traversed column-major (X slow, Y fast), terminated by 0x00.
func EncodeRegion(cells *CellSet, region Rect) ([]byte, error) {
	width, height := region.Width, region.Height
	if width <= 0 || height <= 0 {
		return []byte{0x00}, nil
	}

	w, err := rleStorageWidth(width, height)
	if err != nil {
		return nil, err
	}

	var out []byte
	offX, negX := zigzagSign(region.X)
	offY, negY := zigzagSign(region.Y)
	out = append(out, packUint(uint64(offX), 4)...)
	out = append(out, packUint(uint64(offY), 4)...)
	out = append(out, packUint(uint64(uint32(width)), 4)...)
	out = append(out, packUint(uint64(uint32(height)), 4)...)

	runs := []uint64{}
	firstLive := false
	var current bool
	var runLength uint64
	started := false

	appendCell := func(live bool) {
		if !started {
			started = true
			current = live
			firstLive = live
			runLength = 1
			return
		}
		if live == current {
			runLength++
			return
		}
		runs = append(runs, runLength)
		current = live
		runLength = 1
	}

	for x := region.X; x < region.X+width; x++ {
		for y := region.Y; y < region.Y+height; y++ {
			appendCell(cells.Contains(Cell{X: x, Y: y}))
		}
	}
	if started {
		runs = append(runs, runLength)
	}

	out = append(out, boolFlagByte(firstLive), boolFlagByte(negX), boolFlagByte(negY))

	limit := uint64(1)<<uint(6*w) - 1
	for _, run := range runs {
		for run > limit {
			out = append(out, packUint(limit, w)...)
			out = append(out, packUint(0, w)...)
			run -= limit
		}
		out = append(out, packUint(run, w)...)
	}
	out = append(out, 0x00)
	return out, nil
}

func boolFlagByte(v bool) byte {
	if v {
		return rleMarker | '1'&0x3F
	}
	return rleMarker | '0'&0x3F
}

func readBoolFlag(b byte) (bool, error) {
	if b&0xC0 != rleMarker {
		return false, ErrInvalidFormat
	}
	switch b & 0x3F {
	case '1' & 0x3F:
		return true, nil
	case '0' & 0x3F:
		return false, nil
	default:
		return false, ErrInvalidFormat
	}
}

// DecodeRegion parses the RLE wire format produced by EncodeRegion. If
// the live cell count reaches warnThreshold before the stream is
// exhausted, decoding aborts and returns an *OversizeError reporting
// how many cells were seen; pass a non-positive warnThreshold to
// disable the check.
func DecodeRegion(data []byte, warnThreshold uint64) (*CellSet, Rect, error) {
	if len(data) == 1 && data[0] == 0x00 {
		return NewCellSet(), Rect{}, nil
	}
	if len(data) < 4*4+3+1 {
		return nil, Rect{}, ErrInvalidFormat
	}

	pos := 0
	readDim := func() (int64, error) {
		v, err := unpackUint(data[pos : pos+4])
		pos += 4
		return int64(v), err
	}

	offXMag, err := readDim()
	if err != nil {
		return nil, Rect{}, err
	}
	offYMag, err := readDim()
	if err != nil {
		return nil, Rect{}, err
	}
	width64, err := readDim()
	if err != nil {
		return nil, Rect{}, err
	}
	height64, err := readDim()
	if err != nil {
		return nil, Rect{}, err
	}

	firstLive, err := readBoolFlag(data[pos])
	if err != nil {
		return nil, Rect{}, err
	}
	pos++
	negX, err := readBoolFlag(data[pos])
	if err != nil {
		return nil, Rect{}, err
	}
	pos++
	negY, err := readBoolFlag(data[pos])
	if err != nil {
		return nil, Rect{}, err
	}
	pos++

	width, height := int32(width64), int32(height64)
	if width <= 0 || height <= 0 {
		return nil, Rect{}, ErrInvalidFormat
	}
	offX, offY := int32(offXMag), int32(offYMag)
	if negX {
		offX = -offX
	}
	if negY {
		offY = -offY
	}
	region := Rect{X: offX, Y: offY, Width: width, Height: height}

	w, err := rleStorageWidth(width, height)
	if err != nil {
		return nil, Rect{}, err
	}

	cells := NewCellSet()
	live := firstLive
	var liveCount uint64
	x, y := region.X, region.Y

	for pos < len(data) {
		if data[pos] == 0x00 {
			pos++
			break
		}
		if pos+w > len(data) {
			return nil, Rect{}, ErrInvalidFormat
		}
		count, err := unpackUint(data[pos : pos+w])
		if err != nil {
			return nil, Rect{}, err
		}
		pos += w

		for i := uint64(0); i < count; i++ {
			if live {
				liveCount++
				if warnThreshold > 0 && liveCount >= warnThreshold {
					return nil, Rect{}, &OversizeError{Count: liveCount}
				}
				cells.Insert(Cell{X: x, Y: y})
			}
			y++
			if y >= region.Y+height {
				y = region.Y
				x++
			}
		}

		live = !live
	}

	return cells, region, nil
}
