package document

import (
	"github.com/artpar/scenarist/internal/bodypath"
)

// Get returns the value at p. A path that does not resolve is reported as
// absent, never as an error.
func Get(doc *Object, p bodypath.Path) (Value, bool) {
	if doc == nil || len(p) == 0 {
		return nil, false
	}

	var current Value = doc
	for _, seg := range p {
		obj, ok := current.(*Object)
		if !ok {
			return nil, false
		}
		child, ok := obj.Fields[seg.Name]
		if !ok {
			return nil, false
		}
		if seg.Kind == bodypath.KindIndex {
			arr, ok := child.(*Array)
			if !ok || seg.Index >= len(arr.Items) {
				return nil, false
			}
			child = arr.Items[seg.Index]
		}
		current = child
	}
	return current, true
}

// Set stores v at p, creating intermediate mappings as needed, and returns
// the document (a new one if doc is nil).
//
// Anything on the way that is not the container a segment needs is replaced:
// a key segment over a leaf or an array gets a fresh mapping, an index segment
// over a non-array gets a fresh array. Arrays are padded with empty mappings
// up to the index. v is stored by reference.
func Set(doc *Object, p bodypath.Path, v Value) *Object {
	if doc == nil {
		doc = NewObject()
	}
	if len(p) == 0 {
		return doc
	}
	if v == nil {
		v = Null{}
	}

	current := doc
	for _, seg := range p[:len(p)-1] {
		if seg.Kind == bodypath.KindIndex {
			arr := ensureArray(current, seg.Name, seg.Index)
			next, ok := arr.Items[seg.Index].(*Object)
			if !ok {
				next = NewObject()
				arr.Items[seg.Index] = next
			}
			current = next
			continue
		}

		next, ok := current.Fields[seg.Name].(*Object)
		if !ok {
			next = NewObject()
			current.Put(seg.Name, next)
		}
		current = next
	}

	last := p.Last()
	if last.Kind == bodypath.KindIndex {
		arr := ensureArray(current, last.Name, last.Index)
		arr.Items[last.Index] = v
	} else {
		current.Put(last.Name, v)
	}
	return doc
}

// ensureArray returns the array under name, replacing a non-array, padded so
// index is addressable.
func ensureArray(obj *Object, name string, index int) *Array {
	arr, ok := obj.Fields[name].(*Array)
	if !ok {
		arr = NewArray()
		obj.Put(name, arr)
	}
	for len(arr.Items) <= index {
		arr.Items = append(arr.Items, NewObject())
	}
	return arr
}

// Remove deletes the value at p. An array element is spliced out, shifting
// later elements down. It reports whether anything was removed.
func Remove(doc *Object, p bodypath.Path) bool {
	if doc == nil || len(p) == 0 {
		return false
	}

	var parent *Object
	if len(p) == 1 {
		parent = doc
	} else {
		v, ok := Get(doc, p.Parent())
		if !ok {
			return false
		}
		if parent, ok = v.(*Object); !ok {
			return false
		}
	}

	last := p.Last()
	child, ok := parent.Fields[last.Name]
	if !ok {
		return false
	}
	if last.Kind == bodypath.KindKey {
		delete(parent.Fields, last.Name)
		return true
	}

	arr, ok := child.(*Array)
	if !ok || last.Index >= len(arr.Items) {
		return false
	}
	arr.Items = append(arr.Items[:last.Index], arr.Items[last.Index+1:]...)
	return true
}

// Walk calls fn for every mapping key reachable through plain mappings,
// depth first in sorted key order. Arrays are visited as values but not
// descended into.
func Walk(doc *Object, fn func(p bodypath.Path, v Value)) {
	walk(doc, nil, fn)
}

func walk(obj *Object, prefix bodypath.Path, fn func(bodypath.Path, Value)) {
	for _, k := range obj.Keys() {
		p := prefix.Child(k)
		v := obj.Fields[k]
		fn(p, v)
		if child, ok := v.(*Object); ok {
			walk(child, p, fn)
		}
	}
}

// Leaves calls fn for every non-container value in the document, descending
// into arrays as well as mappings. Elements of nested arrays (arrays directly
// inside arrays) cannot be addressed by a path and are skipped.
func Leaves(doc *Object, fn func(p bodypath.Path, v Value)) {
	leaves(doc, nil, fn)
}

func leaves(obj *Object, prefix bodypath.Path, fn func(bodypath.Path, Value)) {
	for _, k := range obj.Keys() {
		p := prefix.Child(k)
		switch v := obj.Fields[k].(type) {
		case *Object:
			leaves(v, p, fn)
		case *Array:
			for i, item := range v.Items {
				ep, _ := p.Elem(i)
				switch iv := item.(type) {
				case *Object:
					leaves(iv, ep, fn)
				case *Array:
				default:
					fn(ep, iv)
				}
			}
		default:
			fn(p, v)
		}
	}
}
