package measure

// ru_maxrss is reported in bytes.
const maxRSSDivisor = 1024
