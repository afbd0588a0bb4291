// Package goruntime exports Go runtime state into the "runtime" namespace.
package goruntime

import (
	"context"
	"reflect"
	"runtime"
	"time"

	"github.com/vk/varexport/varexport"
	"github.com/vk/varexport/varexport/discovery"
)

const Namespace = "runtime"

// Stats is the exported view of the runtime. Memory statistics stop the
// world to read, so they are cached.
type Stats struct {
	started time.Time
}

func NewStats() *Stats { return &Stats{started: time.Now()} }

func (s *Stats) Goroutines() int { return runtime.NumGoroutine() }

func (s *Stats) Uptime() time.Duration { return time.Since(s.started).Truncate(time.Millisecond) }

func (s *Stats) Memory() map[string]uint64 {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	return map[string]uint64{
		"heap-alloc":   ms.HeapAlloc,
		"heap-objects": ms.HeapObjects,
		"heap-sys":     ms.HeapSys,
		"sys":          ms.Sys,
		"total-alloc":  ms.TotalAlloc,
		"num-gc":       uint64(ms.NumGC),
	}
}

func init() {
	err := discovery.Declare(reflect.TypeFor[Stats](),
		discovery.Member{Method: "Goroutines", Name: "goroutines", Doc: "Number of live goroutines"},
		discovery.Member{Method: "Uptime", Name: "uptime", Doc: "Time since the statistics were registered"},
		discovery.Member{Method: "Memory", Name: "memory", Doc: "Memory allocator statistics in bytes", Expand: true, TTL: time.Second},
		discovery.Member{Static: "GOMAXPROCS", Name: "gomaxprocs", Doc: "Maximum number of CPUs executing Go code", Get: func() any { return runtime.GOMAXPROCS(0) }},
		discovery.Member{Static: "NumCPU", Name: "num-cpu", Doc: "Logical CPUs usable by the process", Get: func() any { return runtime.NumCPU() }},
		discovery.Member{Static: "Version", Name: "go-version", Doc: "Go runtime version", Get: func() any { return runtime.Version() }},
	)
	if err != nil {
		panic(err)
	}
}

// Module registers runtime statistics.
type Module struct {
	stats *Stats
}

func (m *Module) Name() string { return "goruntime" }

// Register exports the statistics into the runtime namespace, included in
// global. The module keeps its Stats alive for as long as it is referenced.
func (m *Module) Register(_ context.Context, reg *varexport.Registry) error {
	if m.stats == nil {
		m.stats = NewStats()
	}
	return reg.ForNamespace(Namespace).IncludeInGlobal().Export(varexport.Instance(m.stats), "")
}
