package app

import (
	"context"

	"github.com/vk/varexport/modules/buildinfo"
	"github.com/vk/varexport/modules/goruntime"
	"github.com/vk/varexport/modules/process"
	"github.com/vk/varexport/varexport"
)

// Module exports some part of the process state into a registry.
type Module interface {
	Name() string
	Register(ctx context.Context, reg *varexport.Registry) error
}

// coreModules returns every module compiled into the varexport binary.
func coreModules() []Module {
	return []Module{
		&buildinfo.Module{},
		&goruntime.Module{},
		&process.Module{},
	}
}
