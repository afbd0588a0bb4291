package varexport

import (
	"cmp"
	"fmt"
	"io"
	"reflect"
	"slices"

	"github.com/vk/varexport/internal/escape"
)

// Ranger is implemented by keyed collections that iterate themselves and may
// fail doing so. Returning false from yield stops the iteration. Maps guarded
// by their owner's lock should be exported through a Ranger.
type Ranger interface {
	RangeEntries(yield func(key, value any) bool) error
}

// rangeable matches sync.Map and look-alikes.
type rangeable interface {
	Range(f func(key, value any) bool)
}

// ExpandedVariable lists a keyed collection as one variable per key. Values
// that are not collections are shown as a single variable.
type ExpandedVariable struct {
	inner Variable
}

func (e *ExpandedVariable) Name() string                 { return e.inner.Name() }
func (e *ExpandedVariable) Doc() string                  { return e.inner.Doc() }
func (e *ExpandedVariable) Value() any                   { return e.inner.Value() }
func (e *ExpandedVariable) WriteValue(w io.Writer) error { return writeValue(w, e) }
func (e *ExpandedVariable) String() string               { return formatVariable(e) }

// Children snapshots the collection. ok is false when the current value is
// nil or not a collection.
func (e *ExpandedVariable) Children() (children []Variable, ok bool) {
	return e.expansion(e.Name())
}

// Caching returns the TTL cache beneath the expansion, if the variable was
// exported with a ttl.
func (e *ExpandedVariable) Caching() (*CachingVariable, bool) {
	cv, ok := e.inner.(*CachingVariable)
	return cv, ok
}

func (e *ExpandedVariable) live() bool      { return e.inner.live() }
func (e *ExpandedVariable) docText() string { return e.inner.docText() }

// The dumped doc is taken after the value so that a cache reports the update
// the read caused.
func (e *ExpandedVariable) expansion(name string) ([]Variable, bool) {
	value := e.Value()
	return expand(name, e.inner.Doc(), e.inner.docText(), value)
}

type entry struct {
	key, value any
}

func expand(name, doc, text string, value any) ([]Variable, bool) {
	if escape.IsNil(value) {
		return nil, false
	}
	entries, ok, err := collectEntries(value)
	if !ok {
		return nil, false
	}
	if err != nil {
		return []Variable{&entryVariable{name: name + "#error", doc: doc, text: text, value: err.Error()}}, true
	}
	children := make([]Variable, 0, len(entries))
	for _, e := range entries {
		v := e.value
		if escape.IsNil(v) {
			v = nil
		}
		children = append(children, &entryVariable{
			name:  name + "#" + escape.Text(e.key),
			doc:   doc,
			text:  text,
			value: v,
		})
	}
	return children, true
}

func collectEntries(value any) (entries []entry, ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			entries, ok = nil, true
			if rerr, isErr := r.(error); isErr {
				err = rerr
			} else {
				err = fmt.Errorf("%v", r)
			}
		}
	}()

	add := func(k, v any) bool {
		entries = append(entries, entry{key: k, value: v})
		return true
	}
	switch c := value.(type) {
	case Ranger:
		if err := c.RangeEntries(add); err != nil {
			return nil, true, err
		}
		return entries, true, nil
	case rangeable:
		c.Range(add)
		return entries, true, nil
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Map {
		return nil, false, nil
	}
	keys := rv.MapKeys()
	slices.SortStableFunc(keys, compareKeys)
	for _, k := range keys {
		entries = append(entries, entry{key: k.Interface(), value: rv.MapIndex(k).Interface()})
	}
	return entries, true, nil
}

// compareKeys orders map keys the way fmt prints maps: numbers numerically,
// strings lexically, false before true, anything else by its text.
func compareKeys(a, b reflect.Value) int {
	if a.Kind() == reflect.Interface {
		a = a.Elem()
	}
	if b.Kind() == reflect.Interface {
		b = b.Elem()
	}
	if !a.IsValid() || !b.IsValid() {
		return cmp.Compare(boolRank(a.IsValid()), boolRank(b.IsValid()))
	}
	if a.Kind() != b.Kind() {
		return cmp.Compare(a.Kind(), b.Kind())
	}
	switch a.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return cmp.Compare(a.Int(), b.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return cmp.Compare(a.Uint(), b.Uint())
	case reflect.Float32, reflect.Float64:
		return cmp.Compare(a.Float(), b.Float())
	case reflect.String:
		return cmp.Compare(a.String(), b.String())
	case reflect.Bool:
		return cmp.Compare(boolRank(a.Bool()), boolRank(b.Bool()))
	}
	return cmp.Compare(fmt.Sprint(a.Interface()), fmt.Sprint(b.Interface()))
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}
