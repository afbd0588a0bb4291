package config

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
)

// Loader reads configuration files into a Model.
type Loader interface {
	Load(ctx context.Context, paths ...string) (*Model, error)
}

var ErrInvalidModel = errors.New("invalid configuration")

// Model is the merged content of every loaded configuration file.
type Model struct {
	// StartTime asks for the exporter start time to be shown in global.
	StartTime  bool
	Namespaces map[string]*Namespace
}

// Namespace is the format-agnostic representation of a `namespace` block.
type Namespace struct {
	Name            string
	IncludeInGlobal bool
	Parent          string
	Variables       []*Variable
}

// Variable is a constant exported as a managed variable.
type Variable struct {
	Name  string
	Doc   string
	Value any
}

func NewModel() *Model {
	return &Model{Namespaces: make(map[string]*Namespace)}
}

// Namespace returns the named namespace, adding it on first use. Blocks with
// the same name in several files merge into one.
func (m *Model) Namespace(name string) *Namespace {
	ns, ok := m.Namespaces[name]
	if !ok {
		ns = &Namespace{Name: name}
		m.Namespaces[name] = ns
	}
	return ns
}

// SortedNamespaces returns the namespaces ordered by name.
func (m *Model) SortedNamespaces() []*Namespace {
	out := make([]*Namespace, 0, len(m.Namespaces))
	for _, name := range slices.Sorted(maps.Keys(m.Namespaces)) {
		out = append(out, m.Namespaces[name])
	}
	return out
}

// Validate checks references between namespaces and name uniqueness.
func (m *Model) Validate() error {
	var errs []error
	for _, ns := range m.SortedNamespaces() {
		if ns.Parent != "" && ns.IncludeInGlobal {
			errs = append(errs, fmt.Errorf("%w: namespace %q sets both parent and include_in_global", ErrInvalidModel, ns.Name))
		}
		if ns.Parent == ns.Name {
			errs = append(errs, fmt.Errorf("%w: namespace %q is its own parent", ErrInvalidModel, ns.Name))
		}
		seen := make(map[string]bool, len(ns.Variables))
		for _, v := range ns.Variables {
			if seen[v.Name] {
				errs = append(errs, fmt.Errorf("%w: variable %q declared twice in namespace %q", ErrInvalidModel, v.Name, ns.Name))
			}
			seen[v.Name] = true
		}
	}
	return errors.Join(errs...)
}
