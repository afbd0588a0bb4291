package varexport

import (
	"reflect"
	"weak"
)

// Target names what an export reads from: one instance, held weakly, or the
// class-level members of a type.
type Target struct {
	typ    reflect.Type
	holder *weakHolder
}

// Instance targets the value p points to. The registry never keeps p alive;
// once it is collected the variables exported from it are dropped.
func Instance[T any](p *T) Target {
	return Target{typ: reflect.TypeFor[T](), holder: newWeakHolder(p)}
}

// TypeOf targets the class-level members declared for T.
func TypeOf[T any]() Target {
	return Target{typ: reflect.TypeFor[T]()}
}

// Type is TypeOf for a type only known at run time.
func Type(t reflect.Type) Target {
	return Target{typ: t}
}

// Static reports whether the target has no instance.
func (t Target) Static() bool { return t.holder == nil }

func (t Target) String() string {
	if t.Static() {
		return "type " + t.typ.String()
	}
	return "instance of " + t.typ.String()
}

// weakHolder is the non-owning link from variables to their instance.
type weakHolder struct {
	resolve func() (reflect.Value, bool)
}

func newWeakHolder[T any](p *T) *weakHolder {
	wp := weak.Make(p)
	return &weakHolder{resolve: func() (reflect.Value, bool) {
		ptr := wp.Value()
		if ptr == nil {
			return reflect.Value{}, false
		}
		return reflect.ValueOf(ptr), true
	}}
}

func (h *weakHolder) alive() bool {
	_, ok := h.resolve()
	return ok
}
