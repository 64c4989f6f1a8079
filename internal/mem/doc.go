// Package mem allocates aligned int32 buffers and computes how many leading
// elements a scan must handle before its cursor reaches an aligned address.
package mem
