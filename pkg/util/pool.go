package util

import "runtime"

const (
	minPoolSize = 4
	maxPoolSize = 32
)

// GetOptimalPoolSize returns the size shared by the per-grammar parser
// pools and the batch workers: twice the CPU count, clamped to [4, 32].
// The two must agree so that a worker never waits for a parser. Parsing
// spends most of its time in cgo, which is why it runs more workers than
// cores.
func GetOptimalPoolSize() int {
	return min(max(runtime.NumCPU()*2, minPoolSize), maxPoolSize)
}

// GetOptimalPoolSizeWithOverride returns override when it is positive and
// GetOptimalPoolSize() otherwise.
func GetOptimalPoolSizeWithOverride(override int) int {
	if override > 0 {
		return override
	}
	return GetOptimalPoolSize()
}
