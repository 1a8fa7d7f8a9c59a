package lmq

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Rotation returns the order in which n slots are attempted when the last
// attempted slot was cursor: cursor+1 .. n-1 followed by 0 .. cursor. Every
// slot appears exactly once. A cursor of -1 means nothing has been attempted
// yet, so the order starts at slot zero.
func Rotation(cursor, n int) []int {
	return RotationFunc(cursor, n, nil)
}

// RotationFunc is like Rotation but leaves out any slot for which accept
// returns false. A nil accept function accepts every slot.
func RotationFunc(cursor, n int, accept func(int) bool) []int {
	if n <= 0 {
		return nil
	}
	cursor = normalizeCursor(cursor, n)

	result := make([]int, 0, n)
	for i := 1; i <= n; i++ {
		index := (cursor + i) % n
		if accept != nil && !accept(index) {
			continue
		}
		result = append(result, index)
	}
	return result
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// normalizeCursor brings cursor into [-1, n-1]. Negative values mean
// "before first", values past the end wrap around.
func normalizeCursor(cursor, n int) int {
	switch {
	case cursor < 0:
		return -1
	case cursor >= n:
		return cursor % n
	default:
		return cursor
	}
}
