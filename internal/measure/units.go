package measure

import "time"

// Milliseconds converts d to fractional milliseconds.
func Milliseconds(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// Seconds converts d to fractional seconds.
func Seconds(d time.Duration) float64 {
	return float64(d) / float64(time.Second)
}

func FromMilliseconds(ms float64) time.Duration {
	return time.Duration(ms * float64(time.Millisecond))
}

func FromSeconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
