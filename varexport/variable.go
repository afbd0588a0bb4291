package varexport

import (
	"fmt"
	"io"
	"log/slog"
	"reflect"

	"github.com/vk/varexport/internal/escape"
	"github.com/vk/varexport/varexport/discovery"
)

// Variable is a named value exposed for inspection. Values are computed on
// demand; a Variable never caches unless it is a *CachingVariable.
//
// Variables are created by exports, NewManaged and namespace queries.
type Variable interface {
	Name() string
	Doc() string
	// Value returns the current value, or nil when it is null or cannot be
	// read.
	Value() any
	// WriteValue writes the escaped text form of the current value.
	WriteValue(w io.Writer) error
	// String renders the variable as an escaped "name=value" line.
	String() string

	live() bool
	docText() string
	expansion(name string) ([]Variable, bool)
}

func formatVariable(v Variable) string {
	return escape.Name(v.Name()) + "=" + escape.Value(escape.Text(v.Value()))
}

func writeValue(w io.Writer, v Variable) error {
	_, err := io.WriteString(w, escape.Value(escape.Text(v.Value())))
	return err
}

// boundVariable reads a discovered attribute, either from a weakly held
// instance or from class-level state.
type boundVariable struct {
	name   string
	attr   discovery.Attribute
	holder *weakHolder
	logger func() *slog.Logger
}

func (b *boundVariable) Name() string { return b.name }
func (b *boundVariable) Doc() string  { return b.attr.Doc }

func (b *boundVariable) Value() any {
	v, err := b.read()
	if err != nil {
		b.logger().Debug("Variable read failed.", "variable", b.name, "error", err)
		return nil
	}
	return v
}

func (b *boundVariable) read() (v any, err error) {
	var target reflect.Value
	if b.holder != nil {
		var ok bool
		if target, ok = b.holder.resolve(); !ok {
			return nil, ErrUnreachableTarget
		}
	}
	defer func() {
		if r := recover(); r != nil {
			v, err = nil, fmt.Errorf("panic reading %s: %v", b.attr.Natural, r)
		}
	}()
	return b.attr.Get(target)
}

func (b *boundVariable) WriteValue(w io.Writer) error { return writeValue(w, b) }
func (b *boundVariable) String() string               { return formatVariable(b) }

func (b *boundVariable) live() bool {
	return b.holder == nil || b.holder.alive()
}

func (b *boundVariable) docText() string { return b.attr.Doc }

func (b *boundVariable) expansion(string) ([]Variable, bool) { return nil, false }

// renamed presents a variable under a prefixed name in a parent namespace.
type renamed struct {
	Variable
	name string
}

func (r *renamed) Name() string   { return r.name }
func (r *renamed) String() string { return formatVariable(r) }

func rename(v Variable, name string) Variable {
	if v.Name() == name {
		return v
	}
	if r, ok := v.(*renamed); ok {
		return &renamed{Variable: r.Variable, name: name}
	}
	return &renamed{Variable: v, name: name}
}

// entryVariable is one key of an expanded collection, frozen at the moment
// the collection was iterated.
type entryVariable struct {
	name  string
	doc   string
	text  string
	value any
}

func (e *entryVariable) Name() string                        { return e.name }
func (e *entryVariable) Doc() string                         { return e.doc }
func (e *entryVariable) Value() any                          { return e.value }
func (e *entryVariable) WriteValue(w io.Writer) error        { return writeValue(w, e) }
func (e *entryVariable) String() string                      { return formatVariable(e) }
func (e *entryVariable) live() bool                          { return true }
func (e *entryVariable) docText() string                     { return e.text }
func (e *entryVariable) expansion(string) ([]Variable, bool) { return nil, false }
