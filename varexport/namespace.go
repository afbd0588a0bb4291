package varexport

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/vk/varexport/varexport/discovery"
)

// Namespace is a named group of variables. Its view includes the variables of
// every namespace that has it as parent.
type Namespace struct {
	name string
	reg  *Registry

	mu      sync.Mutex
	parent  *Namespace
	entries map[string]Variable
}

func newNamespace(r *Registry, name string) *Namespace {
	return &Namespace{name: name, reg: r, entries: make(map[string]Variable)}
}

func (n *Namespace) Name() string { return n.name }

func (n *Namespace) Parent() *Namespace {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.parent
}

// SetParent makes n's variables visible in parent as "<n>-<variable>". A nil
// parent detaches n. Making a namespace its own parent is ignored.
func (n *Namespace) SetParent(parent *Namespace) *Namespace {
	if parent == n {
		n.reg.log().Debug("Ignoring namespace as its own parent.", "namespace", n.name)
		return n
	}
	n.mu.Lock()
	n.parent = parent
	n.mu.Unlock()
	if parent != nil {
		n.reg.log().Debug("Attached namespace.", "namespace", n.name, "parent", parent.name)
	}
	return n
}

// IncludeInGlobal sets the global namespace as parent. It is a no-op on
// global itself.
func (n *Namespace) IncludeInGlobal() *Namespace {
	return n.SetParent(n.reg.global)
}

// Export exports every discovered member of target, each named prefix plus
// its export name. A later export of the same name replaces the earlier one.
func (n *Namespace) Export(target Target, prefix string) error {
	attrs, err := n.reg.adapter.Discover(target.typ, target.Static())
	if err != nil {
		return fmt.Errorf("export %s into %q: %w", target, n.name, err)
	}
	if !target.Static() && !target.holder.alive() {
		return fmt.Errorf("export %s into %q: %w", target, n.name, ErrUnreachableTarget)
	}
	vars := make([]Variable, 0, len(attrs))
	for _, attr := range attrs {
		vars = append(vars, n.bind(attr, target, prefix+attr.ExportName()))
	}
	n.put(vars...)
	n.reg.log().Debug("Exported variables.", "namespace", n.name, "target", target.String(), "prefix", prefix, "count", len(vars))
	return nil
}

// ExportMember exports a single member of target by its Go name, whether or
// not it is tagged or declared. The variable is named prefix plus name, or
// plus the member's export name when name is empty.
func (n *Namespace) ExportMember(target Target, member, prefix, name string) error {
	attr, err := n.reg.adapter.Lookup(target.typ, member, target.Static())
	if err != nil {
		return err
	}
	if !target.Static() && !target.holder.alive() {
		return fmt.Errorf("export %s.%s into %q: %w", target, member, n.name, ErrUnreachableTarget)
	}
	if name == "" {
		name = attr.ExportName()
	}
	n.put(n.bind(attr, target, prefix+name))
	n.reg.log().Debug("Exported member.", "namespace", n.name, "target", target.String(), "member", member, "variable", prefix+name)
	return nil
}

// ExportVariable adds a pre-built variable, typically a ManagedVariable,
// under its own name.
func (n *Namespace) ExportVariable(v Variable) {
	n.put(v)
}

func (n *Namespace) bind(attr discovery.Attribute, target Target, name string) Variable {
	holder := target.holder
	if attr.Static {
		holder = nil
	}
	var v Variable = &boundVariable{name: name, attr: attr, holder: holder, logger: n.reg.log}
	if attr.TTL > 0 {
		v = newCachingVariable(v, attr.TTL, n.reg.clock)
	}
	if attr.Expand {
		v = &ExpandedVariable{inner: v}
	}
	return v
}

func (n *Namespace) put(vars ...Variable) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, v := range vars {
		n.entries[v.Name()] = v
	}
}

// Reset drops all of n's own variables.
func (n *Namespace) Reset() {
	n.mu.Lock()
	dropped := len(n.entries)
	clear(n.entries)
	n.mu.Unlock()
	n.reg.log().Debug("Reset namespace.", "namespace", n.name, "dropped", dropped)
}

// snapshot copies the live entries, dropping those whose instance is gone.
func (n *Namespace) snapshot() []Variable {
	n.mu.Lock()
	out := make([]Variable, 0, len(n.entries))
	var pruned []string
	for name, v := range n.entries {
		if !v.live() {
			delete(n.entries, name)
			pruned = append(pruned, name)
			continue
		}
		out = append(out, v)
	}
	n.mu.Unlock()
	if len(pruned) > 0 {
		n.reg.log().Debug("Pruned collected variables.", "namespace", n.name, "variables", pruned)
	}
	return out
}

func (n *Namespace) collect(into map[string]Variable, prefix string, visited map[*Namespace]bool) {
	if visited[n] {
		return
	}
	visited[n] = true
	for _, v := range n.snapshot() {
		name := prefix + v.Name()
		into[name] = rename(v, name)
	}
	for _, child := range n.reg.children(n) {
		child.collect(into, prefix+child.name+"-", visited)
	}
}

// merged is the name to variable view of n and its descendants. Global also
// shows the start time, but only when it has something else to show.
func (n *Namespace) merged() map[string]Variable {
	view := make(map[string]Variable)
	n.collect(view, "", make(map[*Namespace]bool))
	if n == n.reg.global && len(view) > 0 {
		if st := n.reg.startVariable(); st != nil {
			view[StartTimeName] = st
		}
	}
	return view
}

func sortedVariables(view map[string]Variable) []Variable {
	names := make([]string, 0, len(view))
	for name := range view {
		names = append(names, name)
	}
	slices.Sort(names)
	out := make([]Variable, 0, len(names))
	for _, name := range names {
		out = append(out, view[name])
	}
	return out
}

// Variables returns the merged view sorted by name, with expanded collections
// replaced by their entries.
func (n *Namespace) Variables() []Variable {
	var out []Variable
	for _, v := range sortedVariables(n.merged()) {
		if children, ok := v.expansion(v.Name()); ok {
			out = append(out, children...)
			continue
		}
		out = append(out, v)
	}
	return out
}

func (n *Namespace) VisitVariables(visit func(Variable)) {
	for _, v := range n.Variables() {
		visit(v)
	}
}

// Variable looks up a variable of the merged view. Entries of expanded
// collections are found by their "<name>#<key>" name.
func (n *Namespace) Variable(name string) (Variable, bool) {
	view := n.merged()
	if v, ok := view[name]; ok {
		return v, true
	}
	for vname, v := range view {
		if !strings.HasPrefix(name, vname+"#") {
			continue
		}
		children, _ := v.expansion(vname)
		for _, c := range children {
			if c.Name() == name {
				return c, true
			}
		}
	}
	return nil, false
}

// Value is the current value of the named variable, nil when it is absent or
// null.
func (n *Namespace) Value(name string) any {
	if v, ok := n.Variable(name); ok {
		return v.Value()
	}
	return nil
}
