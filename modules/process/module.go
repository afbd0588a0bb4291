// Package process exports identity of the running process into the "process"
// namespace.
package process

import (
	"context"
	"os"
	"strings"

	"github.com/vk/varexport/varexport"
)

const Namespace = "process"

type Process struct {
	PID        int                    `export:"pid" doc:"Process ID"`
	Args       string                 `export:"args" doc:"Command line"`
	Hostname   func() (string, error) `export:"hostname" doc:"Host name reported by the kernel"`
	WorkingDir func() (string, error) `export:"working-dir" doc:"Current working directory"`
	Executable func() (string, error) `export:"executable" doc:"Path of the running binary"`
}

// Current describes this process. Host name and directories are looked up
// on every read.
func Current() *Process {
	return &Process{
		PID:        os.Getpid(),
		Args:       strings.Join(os.Args, " "),
		Hostname:   os.Hostname,
		WorkingDir: os.Getwd,
		Executable: os.Executable,
	}
}

// Module registers the current process.
type Module struct {
	proc *Process
}

func (m *Module) Name() string { return "process" }

func (m *Module) Register(_ context.Context, reg *varexport.Registry) error {
	if m.proc == nil {
		m.proc = Current()
	}
	return reg.ForNamespace(Namespace).IncludeInGlobal().Export(varexport.Instance(m.proc), "")
}
