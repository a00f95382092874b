// Package delta implements the operation algebra for a Quill-compatible
// rich text Delta: composition, transformation, slicing, splitting and
// canonical compaction over sequences of insert/retain/delete operations.
//
// The package is pure and synchronous. Every exported function is a
// deterministic function of its arguments; there is no shared mutable
// state beyond the process-wide embed handler registry, which is
// populated once at startup and read without locking thereafter.
package delta
