//go:build amd64

package simd

import "golang.org/x/sys/cpu"

func detectFeatures() feature {
	var f feature
	for bit, ok := range map[feature]bool{
		featAVX2:     cpu.X86.HasAVX2,
		featAVX512F:  cpu.X86.HasAVX512F,
		featAVX512BW: cpu.X86.HasAVX512BW,
	} {
		if ok {
			f |= bit
		}
	}
	return f
}
