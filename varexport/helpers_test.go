package varexport

import (
	"log/slog"
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/varexport/varexport/discovery"
)

var exampleStatic = "static value"

type exampleObject struct {
	Ex1      int    `export:"ex1field" doc:"Example variable 1"`
	Ex2      string `export:"ex2field" doc:"Example variable 2"`
	Untagged int
	private  int
}

func (e *exampleObject) Ex1Twice() int { return e.Ex1 * 2 }

type baseObject struct {
	Base int `export:"base"`
}

type derivedObject struct {
	baseObject
	Derived string `export:"derived"`
}

// newTestRegistry isolates a test from the process-wide adapter and registry.
func newTestRegistry(t *testing.T, opts ...Option) *Registry {
	t.Helper()
	a := discovery.New()
	require.NoError(t, a.Declare(reflect.TypeFor[exampleObject](),
		discovery.Member{Method: "Ex1Twice", Name: "ex1method", Doc: "Twice ex1"},
		discovery.Member{Static: "exampleStatic", Name: "static1field", Get: func() any { return exampleStatic }},
	))
	base := []Option{WithAdapter(a), WithLogger(slog.New(slog.DiscardHandler))}
	return NewRegistry(append(base, opts...)...)
}

func variableNames(vars []Variable) []string {
	out := make([]string, 0, len(vars))
	for _, v := range vars {
		out = append(out, v.Name())
	}
	return out
}

func managedInt(name string, value int) *ManagedVariable[int] {
	return NewManaged(ManagedConfig[int]{Name: name, Value: value})
}
