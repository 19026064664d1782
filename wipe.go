package vortex

import "runtime"

// wipeBytes zeroes b. The KeepAlive stops the compiler from treating the
// stores as dead when b is about to go out of scope.
func wipeBytes(b []byte) {
	clear(b)
	runtime.KeepAlive(b)
}
