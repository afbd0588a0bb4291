package goruntime

import (
	"context"
	"log/slog"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/varexport/varexport"
)

func TestRegister(t *testing.T) {
	reg := varexport.NewRegistry(varexport.WithLogger(slog.New(slog.DiscardHandler)))
	m := &Module{}
	require.NoError(t, m.Register(context.Background(), reg))

	ns := reg.ForNamespace(Namespace)
	assert.Positive(t, ns.Value("goroutines"))
	assert.Equal(t, runtime.NumCPU(), ns.Value("num-cpu"))
	assert.Equal(t, runtime.Version(), ns.Value("go-version"))
	assert.Positive(t, ns.Value("memory#heap-alloc"))
	assert.IsType(t, time.Duration(0), ns.Value("uptime"))

	var global []string
	reg.Global().VisitVariables(func(v varexport.Variable) {
		global = append(global, v.Name())
	})
	assert.Contains(t, global, "runtime-goroutines")
	assert.Contains(t, global, "runtime-memory#sys")
	for _, name := range global {
		assert.True(t, strings.HasPrefix(name, "runtime-"), name)
	}
	runtime.KeepAlive(m)
}
