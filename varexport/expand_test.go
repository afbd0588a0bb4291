package varexport

import (
	"errors"
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type brokenRanger struct{}

func (brokenRanger) RangeEntries(yield func(key, value any) bool) error {
	yield("a", 1)
	return errors.New("whoops!")
}

type panickyRanger struct{}

func (panickyRanger) RangeEntries(yield func(key, value any) bool) error {
	yield("a", 1)
	panic(errors.New("concurrent modification"))
}

type collections struct {
	Map     map[string]int            `export:"map,expand" doc:"A map"`
	NilMap  map[string]int            `export:"nilmap,expand"`
	Broken  *brokenRanger             `export:"broken,expand"`
	Panicky panickyRanger             `export:"panicky,expand"`
	Nested  map[string]map[int]string `export:"nested,expand"`
	Sync    *sync.Map                 `export:"sync,expand"`
	Scalar  int                       `export:"scalar,expand"`
}

func newCollections() *collections {
	c := &collections{
		Map:    map[string]int{"b": 2, "a": 1},
		Broken: &brokenRanger{},
		Nested: map[string]map[int]string{"m1": {1: "one"}, "m2": nil},
		Sync:   &sync.Map{},
		Scalar: 3,
	}
	c.Sync.Store("k", "v")
	return c
}

func TestExpand_Dump(t *testing.T) {
	reg := newTestRegistry(t)
	ns := reg.ForNamespace("expand")
	c := newCollections()
	require.NoError(t, ns.Export(Instance(c), ""))

	want := "broken#error=whoops!\n" +
		"map#a=1\n" +
		"map#b=2\n" +
		"nested#m1=map[1\\:one]\n" +
		"nested#m2=null\n" +
		"nilmap=null\n" +
		"panicky#error=concurrent modification\n" +
		"scalar=3\n" +
		"sync#k=v\n"
	assert.Equal(t, want, dump(t, ns, false))

	assert.Equal(t, []string{
		"broken#error", "map#a", "map#b", "nested#m1", "nested#m2",
		"nilmap", "panicky#error", "scalar", "sync#k",
	}, variableNames(ns.Variables()))
	runtime.KeepAlive(c)
}

func TestExpand_ChildrenInheritDoc(t *testing.T) {
	reg := newTestRegistry(t)
	ns := reg.ForNamespace("expand-docs")
	c := &collections{Map: map[string]int{"a": 1}}
	require.NoError(t, ns.ExportMember(Instance(c), "Map", "", ""))

	assert.Equal(t, "\n# A map\nmap#a=1\n", dump(t, ns, true))
	runtime.KeepAlive(c)
}

func TestExpand_Lookup(t *testing.T) {
	reg := newTestRegistry(t)
	ns := reg.ForNamespace("expand-lookup")
	c := newCollections()
	require.NoError(t, ns.Export(Instance(c), ""))

	assert.Equal(t, 1, ns.Value("map#a"))
	assert.Equal(t, map[int]string{1: "one"}, ns.Value("nested#m1"))
	assert.Nil(t, ns.Value("nested#m1#1"), "only one level is expanded")
	assert.Equal(t, "whoops!", ns.Value("broken#error"))
	assert.Nil(t, ns.Value("map#missing"))

	v, ok := ns.Variable("map")
	require.True(t, ok)
	ev, ok := v.(*ExpandedVariable)
	require.True(t, ok, "got %T", v)
	assert.Equal(t, c.Map, ev.Value())

	children, ok := ev.Children()
	require.True(t, ok)
	assert.Equal(t, []string{"map#a=1", "map#b=2"}, func() []string {
		var out []string
		for _, child := range children {
			out = append(out, child.String())
		}
		return out
	}())

	c.Map["c"] = 3
	assert.Equal(t, 3, ns.Value("map#c"), "collections are re-read on each query")
	runtime.KeepAlive(c)
}

func TestExpand_PrefixedInParent(t *testing.T) {
	reg := newTestRegistry(t)
	ns := reg.ForNamespace("coll").IncludeInGlobal()
	c := &collections{Map: map[string]int{"a": 1}}
	require.NoError(t, ns.ExportMember(Instance(c), "Map", "", ""))

	assert.Equal(t, []string{"coll-map#a"}, variableNames(reg.Global().Variables()))
	assert.Equal(t, 1, reg.Global().Value("coll-map#a"))
	runtime.KeepAlive(c)
}

func TestCompareKeys(t *testing.T) {
	c := &struct {
		Ints  map[int]string `export:"ints,expand"`
		Bools map[bool]int   `export:"bools,expand"`
		Mixed map[any]int    `export:"mixed,expand"`
	}{
		Ints:  map[int]string{10: "ten", 2: "two", -1: "minus"},
		Bools: map[bool]int{true: 1, false: 0},
		Mixed: map[any]int{"b": 1, 3: 2, "a": 3},
	}
	reg := newTestRegistry(t)
	ns := reg.ForNamespace("keys")
	require.NoError(t, ns.Export(Instance(c), ""))

	assert.Equal(t, []string{
		"bools#false", "bools#true",
		"ints#-1", "ints#2", "ints#10",
		"mixed#3", "mixed#a", "mixed#b",
	}, variableNames(ns.Variables()))
	runtime.KeepAlive(c)
}
