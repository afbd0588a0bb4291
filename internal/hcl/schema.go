package hcl

import "github.com/hashicorp/hcl/v2"

// fileRoot decodes the top level of one file. Unknown blocks and attributes
// are rejected by gohcl.
type fileRoot struct {
	StartTime  *bool             `hcl:"start_time,optional"`
	Namespaces []*namespaceBlock `hcl:"namespace,block"`
}

type namespaceBlock struct {
	Name            string           `hcl:"name,label"`
	IncludeInGlobal *bool            `hcl:"include_in_global,optional"`
	Parent          *string          `hcl:"parent,optional"`
	Variables       []*variableBlock `hcl:"variable,block"`
}

type variableBlock struct {
	Name  string         `hcl:"name,label"`
	Doc   *string        `hcl:"doc,optional"`
	Value hcl.Expression `hcl:"value"`
}
