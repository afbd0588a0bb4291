package discovery

import (
	"fmt"
	"go/token"
	"reflect"
	"slices"
	"sync"
	"time"
)

// Member declares an export that a struct tag cannot express. Exactly one of
// Method or Static must be set.
type Member struct {
	// Method names a method of the declaring type, called on the instance.
	Method string
	// Static is the natural name of a class-level member read through Get.
	Static string
	Get    func() any

	Name   string
	Doc    string
	Expand bool
	TTL    time.Duration
	// Manual keeps the member out of bulk exports; it can still be exported
	// by explicit reference.
	Manual bool
}

// Adapter owns the declaration table and the per-type attribute cache.
type Adapter struct {
	mu     sync.RWMutex
	decls  map[reflect.Type][]Member
	ifaces []reflect.Type
	tables map[reflect.Type]table
}

type table struct {
	attrs []Attribute
	err   error
}

// New creates an adapter with an empty declaration table.
func New() *Adapter {
	return &Adapter{
		decls:  make(map[reflect.Type][]Member),
		tables: make(map[reflect.Type]table),
	}
}

var defaultAdapter = New()

// Default returns the process-wide adapter used by Declare.
func Default() *Adapter {
	return defaultAdapter
}

// Declare adds members to the default adapter. It is meant to be called from
// package initialisation, next to the type it describes.
func Declare(t reflect.Type, members ...Member) error {
	return defaultAdapter.Declare(t, members...)
}

// Declare records members for t. Interface types may only declare methods;
// they apply to every target implementing them.
func (a *Adapter) Declare(t reflect.Type, members ...Member) error {
	t = indirect(t)
	for _, m := range members {
		if err := validateMember(t, m); err != nil {
			return err
		}
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if _, known := a.decls[t]; !known && t.Kind() == reflect.Interface {
		a.ifaces = append(a.ifaces, t)
	}
	a.decls[t] = append(a.decls[t], members...)
	clear(a.tables)
	return nil
}

// Discover returns the attributes a bulk export of t produces, in resolution
// order. Static discovery returns class-level members only.
func (a *Adapter) Discover(t reflect.Type, static bool) ([]Attribute, error) {
	attrs, err := a.table(indirect(t))
	if err != nil {
		return nil, err
	}
	out := make([]Attribute, 0, len(attrs))
	for _, attr := range attrs {
		if attr.Manual || (static && !attr.Static) {
			continue
		}
		out = append(out, attr)
	}
	return out, nil
}

// Lookup resolves one explicitly referenced member by its Go name. Declared
// members keep their declared name and options; undeclared exported fields
// and methods of an instance resolve to a plain attribute.
func (a *Adapter) Lookup(t reflect.Type, member string, static bool) (Attribute, error) {
	t = indirect(t)
	attrs, err := a.table(t)
	if err != nil {
		return Attribute{}, err
	}
	for _, attr := range attrs {
		if attr.Natural == member && (!static || attr.Static) {
			return attr, nil
		}
	}

	fail := func(reason error) (Attribute, error) {
		return Attribute{}, &AttributeAccessError{Type: t, Member: member, Err: reason}
	}
	if static {
		return fail(ErrNoSuchMember)
	}
	if !token.IsExported(member) {
		return fail(ErrNotExported)
	}
	if t.Kind() == reflect.Struct {
		if f, ok := t.FieldByName(member); ok {
			if f.Type.Kind() == reflect.Func && !accessorShape(f.Type, 0) {
				return fail(fmt.Errorf("%w: func field has the wrong signature", ErrInvalidDeclaration))
			}
			return Attribute{Member: "field:" + member, Natural: member, get: fieldGetter(f.Index)}, nil
		}
	}
	if m, ok := reflect.PointerTo(t).MethodByName(member); ok {
		if !accessorShape(m.Type, 1) {
			return fail(fmt.Errorf("%w: method has the wrong signature", ErrInvalidDeclaration))
		}
		return memberAttribute(Member{Method: member}), nil
	}
	return fail(ErrNoSuchMember)
}

func (a *Adapter) table(t reflect.Type) ([]Attribute, error) {
	a.mu.RLock()
	tb, ok := a.tables[t]
	a.mu.RUnlock()
	if ok {
		return tb.attrs, tb.err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if tb, ok := a.tables[t]; ok {
		return tb.attrs, tb.err
	}
	b := &builder{decls: a.decls, seen: make(map[string]bool), visiting: make(map[reflect.Type]bool)}
	err := b.collect(t, nil)
	if err == nil {
		b.interfaces(t, a.ifaces)
	}
	a.tables[t] = table{attrs: b.attrs, err: err}
	return b.attrs, err
}

// builder walks the declaration sources of one type.
type builder struct {
	decls    map[reflect.Type][]Member
	seen     map[string]bool
	visiting map[reflect.Type]bool
	attrs    []Attribute
}

type embeddedStruct struct {
	typ  reflect.Type
	path []int
}

func (b *builder) add(attr Attribute) {
	if b.seen[attr.Member] {
		return
	}
	b.seen[attr.Member] = true
	b.attrs = append(b.attrs, attr)
}

// collect adds own fields and declarations of t, then recurses into its
// embedded structs. path is the field index path from the export target.
func (b *builder) collect(t reflect.Type, path []int) error {
	if b.visiting[t] {
		return nil
	}
	b.visiting[t] = true
	defer delete(b.visiting, t)

	var embedded []embeddedStruct
	if t.Kind() == reflect.Struct {
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			fieldPath := append(slices.Clone(path), i)
			if _, tagged := f.Tag.Lookup(exportTag); f.Anonymous && !tagged && indirect(f.Type).Kind() == reflect.Struct {
				embedded = append(embedded, embeddedStruct{typ: indirect(f.Type), path: fieldPath})
				continue
			}
			attr, ok, err := fieldAttribute(t, f, fieldPath)
			if err != nil {
				return err
			}
			if ok {
				b.add(attr)
			}
		}
	}
	for _, m := range b.decls[t] {
		b.add(memberAttribute(m))
	}
	for _, e := range embedded {
		if err := b.collect(e.typ, e.path); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) interfaces(t reflect.Type, ifaces []reflect.Type) {
	pt := reflect.PointerTo(t)
	for _, it := range ifaces {
		if it == t || !pt.Implements(it) {
			continue
		}
		for _, m := range b.decls[it] {
			b.add(memberAttribute(m))
		}
	}
}

func memberAttribute(m Member) Attribute {
	attr := Attribute{
		Name:   m.Name,
		Doc:    m.Doc,
		Expand: m.Expand,
		TTL:    m.TTL,
		Manual: m.Manual,
	}
	if m.Static != "" {
		attr.Member = "static:" + m.Static
		attr.Natural = m.Static
		attr.Static = true
		attr.get = staticGetter(m.Get)
		return attr
	}
	attr.Member = "method:" + m.Method
	attr.Natural = m.Method
	attr.get = methodGetter(m.Method)
	return attr
}

func validateMember(t reflect.Type, m Member) error {
	switch {
	case (m.Method == "") == (m.Static == ""):
		return fmt.Errorf("%w: %s: member must set exactly one of Method or Static", ErrInvalidDeclaration, t)
	case m.TTL < 0:
		return fmt.Errorf("%w: %s: negative ttl", ErrInvalidDeclaration, t)
	case m.Static != "":
		if t.Kind() == reflect.Interface {
			return fmt.Errorf("%w: interface %s cannot declare static members", ErrInvalidDeclaration, t)
		}
		if m.Get == nil {
			return fmt.Errorf("%w: static member %s.%s has no Get func", ErrInvalidDeclaration, t, m.Static)
		}
		return nil
	}

	var (
		method    reflect.Method
		ok        bool
		receivers = 1
	)
	if t.Kind() == reflect.Interface {
		method, ok = t.MethodByName(m.Method)
		receivers = 0
	} else {
		method, ok = reflect.PointerTo(t).MethodByName(m.Method)
	}
	if !ok {
		return fmt.Errorf("%w: %s has no exported method %s", ErrInvalidDeclaration, t, m.Method)
	}
	if !accessorShape(method.Type, receivers) {
		return fmt.Errorf("%w: method %s.%s must have no arguments and return T or (T, error)", ErrInvalidDeclaration, t, m.Method)
	}
	return nil
}

func indirect(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}
