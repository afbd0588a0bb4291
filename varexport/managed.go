package varexport

import (
	"io"
	"sync"

	"github.com/vk/varexport/internal/escape"
)

// ManagedConfig describes a ManagedVariable. Name is required.
type ManagedConfig[T any] struct {
	Name  string
	Doc   string
	Value T
}

// ManagedVariable holds its own value, set explicitly by its owner.
type ManagedVariable[T any] struct {
	name string
	doc  string

	mu    sync.RWMutex
	value T
}

func NewManaged[T any](cfg ManagedConfig[T]) *ManagedVariable[T] {
	return &ManagedVariable[T]{name: cfg.Name, doc: cfg.Doc, value: cfg.Value}
}

func (m *ManagedVariable[T]) Set(v T) {
	m.mu.Lock()
	m.value = v
	m.mu.Unlock()
}

func (m *ManagedVariable[T]) Get() T {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.value
}

func (m *ManagedVariable[T]) Name() string { return m.name }
func (m *ManagedVariable[T]) Doc() string  { return m.doc }

func (m *ManagedVariable[T]) Value() any {
	v := any(m.Get())
	if escape.IsNil(v) {
		return nil
	}
	return v
}

func (m *ManagedVariable[T]) WriteValue(w io.Writer) error        { return writeValue(w, m) }
func (m *ManagedVariable[T]) String() string                      { return formatVariable(m) }
func (m *ManagedVariable[T]) live() bool                          { return true }
func (m *ManagedVariable[T]) docText() string                     { return m.doc }
func (m *ManagedVariable[T]) expansion(string) ([]Variable, bool) { return nil, false }
