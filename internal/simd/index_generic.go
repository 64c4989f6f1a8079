//go:build !amd64 || noasm

package simd

// No asm kernels exist for this target.
var indexKernels = map[ISA]kernel{Generic: genericKernel}
