package selection

import (
	"sort"
	"strconv"

	"github.com/artpar/scenarist/internal/bodypath"
	"github.com/artpar/scenarist/internal/document"
	"github.com/artpar/scenarist/internal/field"
)

// Set is the set of paths currently active for editing. It is a view over a
// document; the document stays the source of truth.
type Set struct {
	paths map[string]struct{}
}

// New creates a set holding paths.
func New(paths ...string) *Set {
	s := &Set{paths: make(map[string]struct{}, len(paths))}
	for _, p := range paths {
		s.paths[p] = struct{}{}
	}
	return s
}

// Has reports whether p is selected.
func (s *Set) Has(p string) bool {
	_, ok := s.paths[p]
	return ok
}

// Add selects p.
func (s *Set) Add(p string) {
	s.paths[p] = struct{}{}
}

// Remove deselects p.
func (s *Set) Remove(p string) {
	delete(s.paths, p)
}

// Len returns the number of selected paths.
func (s *Set) Len() int {
	return len(s.paths)
}

// Paths returns the selected paths in sorted order.
func (s *Set) Paths() []string {
	out := make([]string, 0, len(s.paths))
	for p := range s.paths {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Clone returns an independent copy.
func (s *Set) Clone() *Set {
	return New(s.Paths()...)
}

// Merge adds every path of other.
func (s *Set) Merge(other *Set) {
	if other == nil {
		return
	}
	for p := range other.paths {
		s.paths[p] = struct{}{}
	}
}

// Derive builds the selection implied by doc: every mapping key reachable
// through plain mappings. Arrays are opaque; their elements are selected
// only through Expand.
func Derive(doc *document.Object) *Set {
	s := New()
	document.Walk(doc, func(p bodypath.Path, _ document.Value) {
		s.Add(p.String())
	})
	return s
}

// Expand selects the element index of the array at arrayPath and returns
// the element path.
func (s *Set) Expand(arrayPath string, index int) (string, error) {
	p, err := bodypath.Parse(arrayPath)
	if err != nil {
		return "", err
	}
	if index < 0 {
		return "", &bodypath.MalformedPathError{Path: arrayPath, Reason: "negative index " + strconv.Itoa(index)}
	}
	if index > bodypath.MaxIndex {
		return "", &bodypath.MalformedPathError{Path: arrayPath, Reason: "index too large: " + strconv.Itoa(index)}
	}
	elem, ok := p.Elem(index)
	if !ok {
		return "", &bodypath.MalformedPathError{Path: arrayPath, Reason: "cannot index an array element path"}
	}
	rendered := elem.String()
	s.Add(rendered)
	return rendered, nil
}

// Toggle flips the selection of path and applies the matching document
// change: deselecting removes the value, selecting stores the default for
// d's type (an empty string without a descriptor). It returns the document,
// which is new if doc was nil, and whether path is now selected.
//
// On a malformed path neither the set nor the document is touched.
func Toggle(s *Set, doc *document.Object, path string, d *field.Descriptor) (*document.Object, bool, error) {
	p, err := bodypath.Parse(path)
	if err != nil {
		return doc, s.Has(path), err
	}

	if s.Has(path) {
		s.deselect(p)
		if document.Remove(doc, p) && p.Last().Kind == bodypath.KindIndex {
			s.shiftAfter(p)
		}
		return doc, false, nil
	}

	var v document.Value = document.String("")
	if d != nil {
		v = field.DefaultFor(d.Type)
	}
	s.Add(path)
	return document.Set(doc, p, v), true, nil
}

// deselect drops p and every selected path nested under it.
func (s *Set) deselect(p bodypath.Path) {
	for sp := range s.paths {
		parsed, err := bodypath.Parse(sp)
		if err != nil {
			continue
		}
		if parsed.Within(p) {
			delete(s.paths, sp)
		}
	}
}

// shiftAfter renumbers selected siblings of a spliced array element so they
// keep pointing at the same values.
func (s *Set) shiftAfter(removed bodypath.Path) {
	n := len(removed) - 1
	at := removed[n]
	renamed := make(map[string]string)
	for sp := range s.paths {
		parsed, err := bodypath.Parse(sp)
		if err != nil || len(parsed) <= n {
			continue
		}
		if !parsed[:n].HasPrefix(removed[:n]) {
			continue
		}
		seg := parsed[n]
		if seg.Kind != bodypath.KindIndex || seg.Name != at.Name || seg.Index <= at.Index {
			continue
		}
		shifted := make(bodypath.Path, len(parsed))
		copy(shifted, parsed)
		shifted[n].Index--
		renamed[sp] = shifted.String()
	}
	for from := range renamed {
		delete(s.paths, from)
	}
	for _, to := range renamed {
		s.paths[to] = struct{}{}
	}
}

// Sync realigns the set with doc after an edit: every derivable path is
// added and selected paths that no longer resolve are dropped. Custom and
// expanded paths that still resolve are kept.
func (s *Set) Sync(doc *document.Object) {
	for sp := range s.paths {
		p, err := bodypath.Parse(sp)
		if err != nil {
			delete(s.paths, sp)
			continue
		}
		if _, ok := document.Get(doc, p); !ok {
			delete(s.paths, sp)
		}
	}
	s.Merge(Derive(doc))
}

// Discoverable reports whether path is reachable by Derive: either derived
// directly, or an array element whose array key is derived.
func Discoverable(derived *Set, path string) bool {
	if derived.Has(path) {
		return true
	}
	p, err := bodypath.Parse(path)
	if err != nil {
		return false
	}
	for i, seg := range p {
		if seg.Kind == bodypath.KindIndex {
			prefix := append(bodypath.Path{}, p[:i]...)
			return derived.Has(prefix.Child(seg.Name).String())
		}
	}
	return false
}
