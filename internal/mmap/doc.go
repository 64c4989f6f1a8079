// Package mmap maps stored dataset files read-only so the local blob store
// can serve them without copying through kernel buffers.
//
//	m, err := mmap.Open("datasets/middle-4096.lsds")
//	if err != nil { ... }
//	defer m.Close()
//
//	_ = m.Advise(mmap.AccessSequential)
//	data := m.Bytes()
//
// Unix uses mmap(2) and madvise(2). Windows uses CreateFileMapping and
// MapViewOfFile; Advise is a no-op there.
//
// A Mapping is safe for concurrent reads. Close is idempotent, but callers
// must not touch Bytes after Close returns.
package mmap
