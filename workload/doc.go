// Package workload defines the operation script replayed against an
// allocator backend, along with a text format for it, a parser and a
// generator for random scripts.
//
// Text format has one record per line, "#" starts a comment:
//
//   # slot words
//   malloc 0 16
//   malloc 1 32
//   free 0
//   free 1
package workload
