//go:build unix

package timer

import "golang.org/x/sys/unix"

func detectClock() (monotonic bool, frequency uint64) {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_MONOTONIC, &ts); err == nil {
		return true, 1000000000
	}
	return false, 1000000
}

func readClock(monotonic bool) uint64 {
	if monotonic {
		var ts unix.Timespec
		if err := unix.ClockGettime(unix.CLOCK_MONOTONIC, &ts); err == nil {
			return uint64(ts.Sec)*1000000000 + uint64(ts.Nsec)
		}
	}

	var tv unix.Timeval
	if err := unix.Gettimeofday(&tv); err != nil {
		return 0
	}
	return uint64(tv.Sec)*1000000 + uint64(tv.Usec)
}
