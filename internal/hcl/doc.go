// Package hcl loads declarative registry content from HCL files into the
// format-agnostic config.Model.
//
//	start_time = true
//
//	namespace "build" {
//	  include_in_global = true
//
//	  variable "version" {
//	    doc   = "Release version"
//	    value = "1.2.3"
//	  }
//	}
//
// Variable values are HCL expressions. They may read the process environment
// through the env object (env.USER) and call upper, lower, format and join.
package hcl
