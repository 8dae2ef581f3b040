package interpolate

import (
	"sync"

	"github.com/artpar/scenarist/internal/document"
)

// Namespace is the set of reference names a body may bind to, typically the
// save-as names of earlier scenario steps. It may be shared between editors.
type Namespace struct {
	mu    sync.RWMutex
	names []string
	index map[string]struct{}
}

// NewNamespace creates a namespace holding names. Empty and duplicate
// names are ignored.
func NewNamespace(names ...string) *Namespace {
	n := &Namespace{index: make(map[string]struct{})}
	for _, name := range names {
		n.add(name)
	}
	return n
}

// Add registers a name.
func (n *Namespace) Add(name string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.add(name)
}

func (n *Namespace) add(name string) {
	if name == "" {
		return
	}
	if _, exists := n.index[name]; exists {
		return
	}
	n.index[name] = struct{}{}
	n.names = append(n.names, name)
}

// Names returns a copy of the names in registration order.
func (n *Namespace) Names() []string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	result := make([]string, len(n.names))
	copy(result, n.names)
	return result
}

// Len returns the number of names.
func (n *Namespace) Len() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.names)
}

// Has reports whether ref resolves against the namespace. Property access
// is allowed: "user.id" resolves when "user" is registered.
func (n *Namespace) Has(ref string) bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if _, ok := n.index[ref]; ok {
		return true
	}
	_, ok := n.index[Root(ref)]
	return ok
}

// Unresolved returns the bindings of doc that do not resolve. The check is
// advisory; references are resolved later by whatever runs the scenario.
func (n *Namespace) Unresolved(doc *document.Object) []Binding {
	var missing []Binding
	for _, b := range Extract(doc) {
		if !n.Has(b.Name) {
			missing = append(missing, b)
		}
	}
	return missing
}

// Clone creates an independent copy of the namespace.
func (n *Namespace) Clone() *Namespace {
	return NewNamespace(n.Names()...)
}
