package buildinfo

import (
	"context"
	"log/slog"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/varexport/varexport"
)

func TestRegister(t *testing.T) {
	reg := varexport.NewRegistry(varexport.WithLogger(slog.New(slog.DiscardHandler)))
	m := &Module{info: &Info{
		GoVersion: "go1.24.5",
		Path:      "github.com/vk/varexport/cmd/varexport",
		Version:   "(devel)",
		Settings:  map[string]string{"vcs.revision": "abc123", "GOOS": "linux"},
	}}
	require.NoError(t, m.Register(context.Background(), reg))

	var names []string
	for _, v := range reg.Global().Variables() {
		names = append(names, v.String())
	}
	assert.Equal(t, []string{
		"build-go-version=go1.24.5",
		"build-path=github.com/vk/varexport/cmd/varexport",
		"build-settings#GOOS=linux",
		"build-settings#vcs.revision=abc123",
		"build-version=(devel)",
	}, names)
	runtime.KeepAlive(m)
}

func TestRead(t *testing.T) {
	info := Read()
	assert.NotEmpty(t, info.GoVersion)
	assert.NotNil(t, info.Settings)
}
