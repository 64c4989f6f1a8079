package simd

import (
	"os"
	"strings"
)

// ISA identifies an instruction set.
type ISA uint8

const (
	// Generic is the portable Go kernel.
	Generic ISA = iota
	// NEON is ARM64 Advanced SIMD.
	NEON
	// SVE2 is the ARM64 scalable vector extension.
	SVE2
	// AVX2 is x86-64 AVX2 (256-bit, 8 int32 lanes).
	AVX2
	// AVX512 is x86-64 AVX-512 F+BW (512-bit, 16 int32 lanes).
	AVX512
)

// String returns the string representation of an ISA.
func (i ISA) String() string {
	switch i {
	case Generic:
		return "generic"
	case NEON:
		return "neon"
	case SVE2:
		return "sve2"
	case AVX2:
		return "avx2"
	case AVX512:
		return "avx512"
	default:
		return "unknown"
	}
}

// ParseISA parses a string into an ISA value.
func ParseISA(s string) (ISA, bool) {
	for _, isa := range []ISA{Generic, NEON, SVE2, AVX2, AVX512} {
		if strings.EqualFold(strings.TrimSpace(s), isa.String()) {
			return isa, true
		}
	}
	return Generic, false
}

// EnvOverride names the environment variable that forces a specific ISA.
// Values the CPU lacks, or that have no index kernel, are ignored.
const EnvOverride = "LINSEARCH_SIMD"

// feature is a CPU capability bit reported by detectFeatures.
type feature uint8

const (
	featASIMD feature = 1 << iota
	featSVE2
	featAVX2
	featAVX512F
	featAVX512BW
)

// Fixed at package init.
var (
	cpuFeatures feature
	activeISA   ISA
	hasOverride bool
)

func init() {
	cpuFeatures = detectFeatures()
	activeISA, hasOverride = resolveISA(os.Getenv(EnvOverride))
	active = indexKernels[activeISA]
}

func (f feature) has(want feature) bool { return f&want == want }

// resolveISA honours override when usable, otherwise picks the widest
// usable ISA.
func resolveISA(override string) (ISA, bool) {
	if override != "" {
		if isa, ok := ParseISA(override); ok && usable(isa) {
			return isa, true
		}
	}
	for _, isa := range []ISA{AVX512, AVX2} {
		if usable(isa) {
			return isa, false
		}
	}
	return Generic, false
}

// usable reports whether the CPU supports isa and this build has an index
// kernel for it.
func usable(isa ISA) bool {
	_, ok := indexKernels[isa]
	return ok && supported(isa)
}

func supported(isa ISA) bool {
	switch isa {
	case Generic:
		return true
	case NEON:
		return cpuFeatures.has(featASIMD)
	case SVE2:
		return cpuFeatures.has(featSVE2)
	case AVX2:
		return cpuFeatures.has(featAVX2)
	case AVX512:
		return cpuFeatures.has(featAVX512F | featAVX512BW)
	}
	return false
}

// ActiveISA returns the ISA backing IndexInt32.
func ActiveISA() ISA {
	return activeISA
}

// IsOverridden reports whether LINSEARCH_SIMD selected the active ISA.
func IsOverridden() bool {
	return hasOverride
}

// Detected returns every ISA the CPU supports, kernel or not.
func Detected() []ISA {
	var out []ISA
	for _, isa := range []ISA{Generic, NEON, SVE2, AVX2, AVX512} {
		if supported(isa) {
			out = append(out, isa)
		}
	}
	return out
}
