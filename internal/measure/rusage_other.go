//go:build unix && !darwin

package measure

// ru_maxrss is reported in kilobytes.
const maxRSSDivisor = 1
