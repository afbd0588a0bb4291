// Package app wires a varexport registry for the command line: it loads the
// declarative configuration, registers the built-in modules and renders one
// namespace in the requested format. It is decoupled from flag parsing and
// process exit codes.
package app
