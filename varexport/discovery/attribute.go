package discovery

import (
	"fmt"
	"reflect"
	"time"

	"github.com/vk/varexport/internal/escape"
)

var errorType = reflect.TypeFor[error]()

// Attribute is one discovered export of a type.
type Attribute struct {
	// Member identifies the underlying member; two declarations with the same
	// Member describe the same thing and only the first one is kept.
	Member string
	// Natural is the Go name of the member.
	Natural string
	// Name is the declared export name, empty when none was declared.
	Name   string
	Doc    string
	Expand bool
	TTL    time.Duration
	Static bool
	// Manual members are skipped by Discover and only reachable via Lookup.
	Manual bool

	get func(target reflect.Value) (any, error)
}

// ExportName is the declared name, falling back to the natural one.
func (a Attribute) ExportName() string {
	if a.Name != "" {
		return a.Name
	}
	return a.Natural
}

// Get reads the attribute from target, a pointer to the exported instance.
// Static attributes ignore target. Typed nils are reported as nil.
func (a Attribute) Get(target reflect.Value) (any, error) {
	v, err := a.get(target)
	if err != nil {
		return nil, err
	}
	if escape.IsNil(v) {
		return nil, nil
	}
	return v, nil
}

func fieldGetter(path []int) func(reflect.Value) (any, error) {
	return func(target reflect.Value) (any, error) {
		v := target
		if v.Kind() == reflect.Pointer {
			if v.IsNil() {
				return nil, fmt.Errorf("nil target")
			}
			v = v.Elem()
		}
		fv, err := v.FieldByIndexErr(path)
		if err != nil {
			return nil, err
		}
		if fv.Kind() == reflect.Func {
			return call(fv)
		}
		return fv.Interface(), nil
	}
}

func methodGetter(name string) func(reflect.Value) (any, error) {
	return func(target reflect.Value) (any, error) {
		m := target.MethodByName(name)
		if !m.IsValid() {
			return nil, fmt.Errorf("%w: method %s", ErrNoSuchMember, name)
		}
		return call(m)
	}
}

func staticGetter(fn func() any) func(reflect.Value) (any, error) {
	return func(reflect.Value) (any, error) {
		return fn(), nil
	}
}

// call invokes a niladic func value returning T or (T, error).
func call(fn reflect.Value) (any, error) {
	if fn.IsNil() {
		return nil, nil
	}
	out := fn.Call(nil)
	if len(out) == 2 && !out[1].IsNil() {
		return nil, out[1].Interface().(error)
	}
	return out[0].Interface(), nil
}

// accessorShape reports whether ft, after skipping receivers, takes no
// arguments and returns T or (T, error).
func accessorShape(ft reflect.Type, receivers int) bool {
	if ft.Kind() != reflect.Func || ft.NumIn() != receivers || ft.IsVariadic() {
		return false
	}
	switch ft.NumOut() {
	case 1:
		return true
	case 2:
		return ft.Out(1) == errorType
	}
	return false
}
