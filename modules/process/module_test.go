package process

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/varexport/varexport"
)

func TestRegister_Current(t *testing.T) {
	reg := varexport.NewRegistry(varexport.WithLogger(slog.New(slog.DiscardHandler)))
	m := &Module{}
	require.NoError(t, m.Register(context.Background(), reg))

	ns := reg.ForNamespace(Namespace)
	assert.Equal(t, os.Getpid(), ns.Value("pid"))
	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, wd, ns.Value("working-dir"))
	assert.Equal(t, os.Getpid(), reg.Global().Value("process-pid"))
	runtime.KeepAlive(m)
}

func TestRegister_FailingLookupIsNull(t *testing.T) {
	reg := varexport.NewRegistry(varexport.WithLogger(slog.New(slog.DiscardHandler)))
	m := &Module{proc: &Process{
		PID:        42,
		Args:       "app --flag",
		Hostname:   func() (string, error) { return "", errors.New("uname failed") },
		WorkingDir: func() (string, error) { return "/srv", nil },
		Executable: func() (string, error) { return "/usr/bin/app", nil },
	}}
	require.NoError(t, m.Register(context.Background(), reg))

	var lines []string
	reg.ForNamespace(Namespace).VisitVariables(func(v varexport.Variable) {
		lines = append(lines, v.String())
	})
	assert.Equal(t, []string{
		`args=app --flag`,
		"executable=/usr/bin/app",
		"hostname=null",
		"pid=42",
		"working-dir=/srv",
	}, lines)
	runtime.KeepAlive(m)
}
