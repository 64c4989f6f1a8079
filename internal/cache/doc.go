// Package cache holds recently read blob blocks in memory.
//
// LRU bounds the cache by bytes and, when given a resource.Controller,
// also charges cached bytes against the run's memory budget. A block the
// budget refuses is simply not cached.
package cache
