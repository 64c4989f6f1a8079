// Package dataset generates, encodes and stores reproducible benchmark inputs.
//
// A Dataset is a sequence, a target and the index the target is expected at.
// Datasets are serialized in the LSDS format:
//
//	magic "LSDS" | version u8 | compression u8 | reserved u16
//	count u64 | target i32 | expected i64
//	nameLen u16 | name
//	payloadLen u64 | crc32c u32 | payload
//
// All integers are little-endian. The payload is the int32 array, optionally
// compressed with LZ4 or ZSTD. The checksum covers the uncompressed payload.
package dataset
