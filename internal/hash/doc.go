// Package hash provides the CRC32-Castagnoli checksum that protects dataset
// payloads and blob uploads.
//
// Go's hash/crc32 uses the SSE4.2 and ARMv8 CRC instructions for this
// polynomial when the CPU has them.
package hash
