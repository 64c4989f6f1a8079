//go:build arm64

package simd

import "golang.org/x/sys/cpu"

// Reported by Detected only; there are no arm64 index kernels yet.
func detectFeatures() feature {
	var f feature
	if cpu.ARM64.HasASIMD {
		f |= featASIMD
	}
	if cpu.ARM64.HasSVE2 {
		f |= featSVE2
	}
	return f
}
