// Package testutil generates reproducible int32 sequences for tests,
// benchmarks and the dataset generator.
//
// An RNG is a PCG source behind a mutex, so one instance can feed several
// goroutines while Reset still replays the same values:
//
//	rng := testutil.NewRNG(seed)
//	seq := make([]int32, 4096)
//	rng.FillInt32Range(seq, 0, 1000) // uniform [0, 1000)
//	rng.FillZipfInt32(seq, 1.5, 255) // skewed, many repeats
//	uniq := rng.UniqueInt32s(4096)   // shuffled 0..4095
package testutil
