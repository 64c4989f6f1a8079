// Package fs abstracts the file system calls blob writes make, so tests can
// inject I/O failures.
//
// Production code uses [Default]. Tests wrap it in a [FaultyFS]:
//
//	ffs := fs.NewFaultyFS(nil)
//	ffs.AddRule(".lsds", fs.Fault{FailOnSync: true})
//
// There are no context parameters. Local file operations are not
// interruptible at the syscall level.
package fs
