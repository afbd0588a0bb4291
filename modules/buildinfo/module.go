// Package buildinfo exports how the running binary was built.
package buildinfo

import (
	"context"
	"runtime"
	"runtime/debug"

	"github.com/vk/varexport/varexport"
)

const Namespace = "build"

// Info is read once at registration; it never changes during a run.
type Info struct {
	GoVersion string            `export:"go-version" doc:"Go toolchain that built the binary"`
	Path      string            `export:"path" doc:"Main package path"`
	Version   string            `export:"version" doc:"Main module version"`
	Settings  map[string]string `export:"settings,expand" doc:"Build settings"`
}

// Read collects the build information embedded in the binary. Without it
// only the Go version is known.
func Read() *Info {
	info := &Info{GoVersion: runtime.Version(), Settings: map[string]string{}}
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	info.GoVersion = bi.GoVersion
	info.Path = bi.Path
	info.Version = bi.Main.Version
	for _, s := range bi.Settings {
		info.Settings[s.Key] = s.Value
	}
	return info
}

// Module registers build information.
type Module struct {
	info *Info
}

func (m *Module) Name() string { return "buildinfo" }

func (m *Module) Register(_ context.Context, reg *varexport.Registry) error {
	if m.info == nil {
		m.info = Read()
	}
	return reg.ForNamespace(Namespace).IncludeInGlobal().Export(varexport.Instance(m.info), "")
}
