package editor

import (
	"errors"
	"fmt"

	"github.com/artpar/scenarist/internal/bodypath"
	"github.com/artpar/scenarist/internal/catalog"
	"github.com/artpar/scenarist/internal/document"
	"github.com/artpar/scenarist/internal/field"
	"github.com/artpar/scenarist/internal/interpolate"
	"github.com/artpar/scenarist/internal/selection"
	"github.com/artpar/scenarist/internal/transfer"
)

// Common errors.
var (
	ErrUnknownReference = errors.New("unknown reference")
)

// Config holds editor configuration.
type Config struct {
	// Endpoint is the catalog classification of the body being edited.
	Endpoint string
	// StrictReferences rejects references whose root name is not in the
	// namespace.
	StrictReferences bool
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Endpoint: catalog.DefaultEndpoint,
	}
}

// Editor is an editing session over one request body. It owns the document
// and its selection; it is not safe for concurrent use.
type Editor struct {
	config    Config
	doc       *document.Object
	selected  *selection.Set
	fields    []field.Descriptor
	byPath    map[string]field.Descriptor
	namespace *interpolate.Namespace
}

// Option is a function that configures the Editor.
type Option func(*Editor)

// New creates a new Editor with the given options. The selection is derived
// from the starting document.
func New(opts ...Option) *Editor {
	e := &Editor{
		config:    DefaultConfig(),
		doc:       document.NewObject(),
		byPath:    make(map[string]field.Descriptor),
		namespace: interpolate.NewNamespace(),
	}

	for _, opt := range opts {
		opt(e)
	}

	e.selected = selection.Derive(e.doc)
	return e
}

// WithConfig sets the editor configuration.
func WithConfig(cfg Config) Option {
	return func(e *Editor) {
		e.config = cfg
	}
}

// WithFields sets the known field descriptors.
func WithFields(fields []field.Descriptor) Option {
	return func(e *Editor) {
		e.fields = append([]field.Descriptor(nil), fields...)
		e.byPath = make(map[string]field.Descriptor, len(fields))
		for _, d := range fields {
			e.byPath[d.Path] = d
		}
	}
}

// WithNamespace sets the reference names available to the body.
func WithNamespace(ns *interpolate.Namespace) Option {
	return func(e *Editor) {
		if ns != nil {
			e.namespace = ns
		}
	}
}

// WithDocument starts the session on doc. The document is edited in place.
func WithDocument(doc *document.Object) Option {
	return func(e *Editor) {
		if doc != nil {
			e.doc = doc
		}
	}
}

// Config returns the editor configuration.
func (e *Editor) Config() Config {
	return e.config
}

// Document returns the body being edited.
func (e *Editor) Document() *document.Object {
	return e.doc
}

// Selection returns the active paths.
func (e *Editor) Selection() *selection.Set {
	return e.selected
}

// Fields returns the known field descriptors.
func (e *Editor) Fields() []field.Descriptor {
	return append([]field.Descriptor(nil), e.fields...)
}

// Namespace returns the available reference names.
func (e *Editor) Namespace() *interpolate.Namespace {
	return e.namespace
}

// Descriptor returns the descriptor for path, if one is known.
func (e *Editor) Descriptor(path string) (field.Descriptor, bool) {
	d, ok := e.byPath[path]
	return d, ok
}

// Get returns the value at path.
func (e *Editor) Get(path string) (document.Value, bool, error) {
	p, err := bodypath.Parse(path)
	if err != nil {
		return nil, false, err
	}
	v, ok := document.Get(e.doc, p)
	return v, ok, nil
}

// Toggle flips the selection of path. Selecting stores the default for the
// field type; deselecting removes the value. A path that already holds a
// value counts as selected even when discovery never listed it, such as an
// element inside an array. It reports whether path is now selected.
func (e *Editor) Toggle(path string) (bool, error) {
	if _, ok, err := e.Get(path); err == nil && ok {
		e.selected.Add(path)
	}

	var d *field.Descriptor
	if known, ok := e.byPath[path]; ok {
		d = &known
	}
	doc, selected, err := selection.Toggle(e.selected, e.doc, path, d)
	if err != nil {
		return selected, err
	}
	e.doc = doc
	return selected, nil
}

// Check validates raw against the descriptor for path before it is coerced.
// It returns nil for paths without a descriptor.
func (e *Editor) Check(path string, raw document.Value) *field.ValidationError {
	d, ok := e.byPath[path]
	if !ok {
		return nil
	}
	return field.Validate(d, raw)
}

// SetValue stores raw at path, coerced to the field type when a descriptor
// is known, and selects the path.
func (e *Editor) SetValue(path string, raw document.Value) error {
	p, err := bodypath.Parse(path)
	if err != nil {
		return err
	}
	v := raw
	if d, ok := e.byPath[path]; ok {
		v = field.Coerce(raw, d.Type)
	}
	e.doc = document.Set(e.doc, p, v)
	e.selected.Add(path)
	e.selected.Sync(e.doc)
	return nil
}

// SetReference binds path to the reference name.
func (e *Editor) SetReference(path, name string) error {
	if e.config.StrictReferences && !e.namespace.Has(name) {
		return fmt.Errorf("%w: %s", ErrUnknownReference, name)
	}
	doc, err := transfer.SetReference(e.doc, path, name)
	if err != nil {
		return err
	}
	e.doc = doc
	e.selected.Add(path)
	e.selected.Sync(e.doc)
	return nil
}

// Expand selects element index of the array at arrayPath.
func (e *Editor) Expand(arrayPath string, index int) (string, error) {
	return e.selected.Expand(arrayPath, index)
}

// Import replaces the document with the parsed text and re-derives the
// selection. On error the session is unchanged.
func (e *Editor) Import(text string) error {
	doc, err := transfer.Import(text)
	if err != nil {
		return err
	}
	e.replace(doc)
	return nil
}

// Export renders the document as indented JSON.
func (e *Editor) Export() string {
	return transfer.Export(e.doc)
}

// LoadTemplate replaces the document with a copy of tmpl.
func (e *Editor) LoadTemplate(tmpl *document.Object) {
	e.replace(document.CloneObject(tmpl))
}

func (e *Editor) replace(doc *document.Object) {
	if doc == nil {
		doc = document.NewObject()
	}
	e.doc = doc
	e.selected = selection.Derive(doc)
}

// ApplyRequired stores the type default for every required field that has
// no value and selects it. It returns the paths it filled.
func (e *Editor) ApplyRequired() []string {
	var filled []string
	for _, d := range e.fields {
		if !d.Required {
			continue
		}
		p, err := bodypath.Parse(d.Path)
		if err != nil {
			continue
		}
		if _, ok := document.Get(e.doc, p); ok {
			continue
		}
		e.doc = document.Set(e.doc, p, field.DefaultFor(d.Type))
		e.selected.Add(d.Path)
		filled = append(filled, d.Path)
	}
	if len(filled) > 0 {
		e.selected.Sync(e.doc)
	}
	return filled
}

// Randomize fills every known field with a sample value of its type and
// selects it. It returns the paths it filled.
func (e *Editor) Randomize() []string {
	var filled []string
	for _, d := range e.fields {
		p, err := bodypath.Parse(d.Path)
		if err != nil {
			continue
		}
		e.doc = document.Set(e.doc, p, field.Sample(d))
		e.selected.Add(d.Path)
		filled = append(filled, d.Path)
	}
	e.selected.Sync(e.doc)
	return filled
}

// Validate checks every known field against the document. The result is
// advisory; nothing is changed.
func (e *Editor) Validate() []field.ValidationError {
	var problems []field.ValidationError
	for _, d := range e.fields {
		p, err := bodypath.Parse(d.Path)
		if err != nil {
			continue
		}
		v, _ := document.Get(e.doc, p)
		if verr := field.Validate(d, v); verr != nil {
			problems = append(problems, *verr)
		}
	}
	return problems
}

// UnresolvedReferences lists bindings whose names are not in the namespace.
func (e *Editor) UnresolvedReferences() []interpolate.Binding {
	return e.namespace.Unresolved(e.doc)
}
