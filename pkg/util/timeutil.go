package util

import "time"

// Now exposes time.Now in local time; archive keys and forecast dates use the local clock.
func Now() time.Time {
	return time.Now()
}

// NowUTC exposes time.Now for deterministic testing.
func NowUTC() time.Time {
	return time.Now().UTC()
}
