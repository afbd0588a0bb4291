// Package config defines the format-agnostic model of declarative registry
// content: namespaces, their parents and the managed variables they hold.
//
// Concrete loaders, such as the HCL one, translate their own syntax into a
// Model and validate it before handing it over.
package config
