package varexport

import (
	"log/slog"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/vk/varexport/varexport/discovery"
)

const (
	// GlobalName is the namespace every IncludeInGlobal call attaches to.
	GlobalName = "global"
	// StartTimeName is the variable global shows once a start time is set.
	StartTimeName = "exporter-start-time"
)

// Registry owns a set of namespaces, one of which is the global one.
type Registry struct {
	mu         sync.RWMutex
	namespaces map[string]*Namespace
	global     *Namespace

	adapter *discovery.Adapter
	logger  *slog.Logger
	clock   func() time.Time
	start   atomic.Pointer[startTime]
}

type startTime struct {
	at time.Time
	v  *ManagedVariable[string]
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger for export and pruning events. The default is
// slog.Default at the time of each event.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) { r.logger = logger }
}

// WithAdapter replaces the discovery adapter, discovery.Default otherwise.
func WithAdapter(a *discovery.Adapter) Option {
	return func(r *Registry) { r.adapter = a }
}

// WithClock sets the time source of caching variables created by exports.
func WithClock(clock func() time.Time) Option {
	return func(r *Registry) { r.clock = clock }
}

func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		namespaces: make(map[string]*Namespace),
		adapter:    discovery.Default(),
		clock:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.global = newNamespace(r, GlobalName)
	r.namespaces[GlobalName] = r.global
	return r
}

func (r *Registry) log() *slog.Logger {
	if r.logger != nil {
		return r.logger
	}
	return slog.Default()
}

// ForNamespace returns the namespace called name, creating it on first use.
// "global" is the global namespace.
func (r *Registry) ForNamespace(name string) *Namespace {
	r.mu.RLock()
	ns, ok := r.namespaces[name]
	r.mu.RUnlock()
	if ok {
		return ns
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if ns, ok := r.namespaces[name]; ok {
		return ns
	}
	ns = newNamespace(r, name)
	r.namespaces[name] = ns
	r.log().Debug("Created namespace.", "namespace", name)
	return ns
}

func (r *Registry) Global() *Namespace { return r.global }

// Namespaces lists every namespace created so far, sorted by name.
func (r *Registry) Namespaces() []*Namespace {
	r.mu.RLock()
	out := make([]*Namespace, 0, len(r.namespaces))
	for _, ns := range r.namespaces {
		out = append(out, ns)
	}
	r.mu.RUnlock()
	slices.SortFunc(out, func(a, b *Namespace) int { return strings.Compare(a.name, b.name) })
	return out
}

// VisitNamespaceVariables calls visit for every variable of the named
// namespace.
func (r *Registry) VisitNamespaceVariables(name string, visit func(Variable)) {
	r.ForNamespace(name).VisitVariables(visit)
}

// SetStartTime makes global show StartTimeName, formatted as RFC 3339.
func (r *Registry) SetStartTime(t time.Time) {
	r.start.Store(&startTime{
		at: t,
		v: NewManaged(ManagedConfig[string]{
			Name:  StartTimeName,
			Doc:   "Time the exporter was started",
			Value: t.Format(time.RFC3339),
		}),
	})
}

func (r *Registry) ClearStartTime() { r.start.Store(nil) }

func (r *Registry) StartTime() (time.Time, bool) {
	st := r.start.Load()
	if st == nil {
		return time.Time{}, false
	}
	return st.at, true
}

func (r *Registry) startVariable() Variable {
	if st := r.start.Load(); st != nil {
		return st.v
	}
	return nil
}

// Reset drops every variable of every namespace and clears the start time.
// Namespaces and their parent links survive.
func (r *Registry) Reset() {
	for _, ns := range r.Namespaces() {
		ns.Reset()
	}
	r.ClearStartTime()
}

// children returns the namespaces whose parent is n, sorted by name.
func (r *Registry) children(n *Namespace) []*Namespace {
	var out []*Namespace
	for _, ns := range r.Namespaces() {
		if ns != n && ns.Parent() == n {
			out = append(out, ns)
		}
	}
	return out
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry.
func Default() *Registry { return defaultRegistry }

func ForNamespace(name string) *Namespace { return defaultRegistry.ForNamespace(name) }

func Global() *Namespace { return defaultRegistry.Global() }

func VisitNamespaceVariables(name string, visit func(Variable)) {
	defaultRegistry.VisitNamespaceVariables(name, visit)
}
