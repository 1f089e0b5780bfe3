package services

import "time"

// millis converts t to milliseconds since the Unix epoch, keeping the
// sub-millisecond fraction.
func millis(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Millisecond)
}
