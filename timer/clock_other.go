//go:build !unix

package timer

import "time"

var epoch = time.Now()

// time.Since uses the runtime's monotonic reading on every platform.
func detectClock() (monotonic bool, frequency uint64) {
	return true, 1000000000
}

func readClock(_ bool) uint64 {
	return uint64(time.Since(epoch).Nanoseconds())
}
