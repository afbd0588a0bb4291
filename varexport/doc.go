// Package varexport is an in-process registry of named, documented runtime
// variables.
//
// Code that owns some state exports it into a Namespace; code that wants to
// look at it (admin pages, debug dumps, metrics bridges) queries or dumps the
// namespace without knowing where the values come from.
//
// # Exporting
//
// Struct fields are exported with tags, methods and package-level state with
// a declaration table (see package discovery):
//
//	type Cache struct {
//		Hits   int64            `export:"cache-hits" doc:"Lookups served from memory"`
//		Shards map[string]int   `export:"shard-size,expand,ttl=10s"`
//	}
//
//	ns := varexport.ForNamespace("cache").IncludeInGlobal()
//	err := ns.Export(varexport.Instance(c), "")
//
// Instances are held weakly: once the exported value is garbage collected its
// variables disappear from the namespace. Class-level members, exported with
// TypeOf, are not tied to any instance.
//
// # Namespaces
//
// A namespace sees its own variables plus those of every namespace that names
// it as parent, prefixed with "<child>-" at each level. Including a namespace
// in the global one therefore makes variable "hits" of namespace "cache"
// visible globally as "cache-hits".
//
// # Dumps
//
// Dump writes one "name=value" line per variable in a properties-compatible
// format: ':' and '=' are backslash-escaped and anything outside printable
// ASCII becomes a \uXXXX escape. With docs enabled each line is preceded by a
// blank line and, when documented, a "# doc" comment. DumpJSON writes the same
// variables on a single line as {name='value', ...}.
//
// Expand-flagged variables holding a keyed collection are listed as one
// variable per key, named "<name>#<key>". A collection that fails while being
// iterated is listed as a single "<name>#error" variable instead.
//
// Plain Go maps are iterated without any locking, and the runtime aborts the
// process on a concurrent map write that no recover can catch. A map that its
// owner mutates while it may be dumped must be exported as a sync.Map or
// through a Ranger that takes the owner's lock.
package varexport
