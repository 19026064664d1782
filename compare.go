package vortex

import "crypto/subtle"

// byteAt returns b[i], or 0 past the end of b. The bound check depends only
// on the public length. Tests swap it out to count visited positions.
var byteAt = func(b []byte, i int) byte {
	if i < len(b) {
		return b[i]
	}
	return 0
}

// Equal reports whether a and b hold the same bytes. The time taken depends
// only on max(len(a), len(b)), never on the contents or on where the first
// difference is.
func Equal(a, b []byte) bool { return EqualN(a, b, 0) }

// EqualN is Equal with a caller-chosen amount of work: it visits
// max(n, len(a), len(b)) positions of both slices whatever their lengths,
// so comparing against a fixed n hides which length was supplied.
func EqualN(a, b []byte, n int) bool {
	n = max(n, len(a), len(b))
	var acc byte
	for i := 0; i < n; i++ {
		acc |= byteAt(a, i) ^ byteAt(b, i)
	}
	return subtle.ConstantTimeByteEq(acc, 0)&lengthsEqual(len(a), len(b)) == 1
}

// lengthsEqual returns 1 if x == y and 0 otherwise, without branching.
func lengthsEqual(x, y int) int {
	ux, uy := uint64(x), uint64(y)
	lo := subtle.ConstantTimeEq(int32(uint32(ux)), int32(uint32(uy)))
	hi := subtle.ConstantTimeEq(int32(uint32(ux>>32)), int32(uint32(uy>>32)))
	return lo & hi
}
