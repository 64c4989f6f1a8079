// Package conv provides checked integer conversions for on-disk headers.
package conv
