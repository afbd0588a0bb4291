// Package discovery finds the exportable attributes of a Go type.
//
// Two declaration mechanisms feed a single, ordered attribute table per type:
//
//   - Struct tags on fields. A field tagged `export:"name"` is exported under
//     that name; an empty name keeps the field name. Options follow the name,
//     comma separated: "expand" flattens a keyed collection into one variable
//     per key and "ttl=<duration>" caches the value for that long. A separate
//     `doc:"..."` tag documents the field. Fields of type func() T or
//     func() (T, error) are computed accessors and are called on every read.
//
//   - An explicit declaration table, filled with Declare, for the things a tag
//     cannot describe: methods, class-level (static) members backed by package
//     state, and methods of interface types.
//
// # Resolution order
//
// The table for a type is built once and cached. Declarations are collected
// from the type itself first, then from its embedded structs depth-first, then
// from declared interface types the type implements, in the order they were
// declared. The first declaration seen for an underlying member wins, so an
// outer type overrides what it embeds, mirroring Go's own promotion rules.
//
// Static targets only see static members; instance targets see everything.
package discovery
