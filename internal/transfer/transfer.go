package transfer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/artpar/scenarist/internal/bodypath"
	"github.com/artpar/scenarist/internal/document"
	"github.com/artpar/scenarist/internal/interpolate"
	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"
)

// Common errors.
var (
	ErrInvalidJSON  = errors.New("invalid JSON")
	ErrInvalidQuery = errors.New("invalid query")
)

// ParseError reports JSON text that could not be imported.
type ParseError struct {
	Msg string
	Err error
}

func (e *ParseError) Error() string {
	return "invalid JSON: " + e.Msg
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrInvalidJSON.
func (e *ParseError) Is(target error) bool {
	return target == ErrInvalidJSON
}

var exportOptions = oj.Options{Indent: 2, Sort: true}

// Export renders doc as pretty-printed JSON with sorted keys. A nil
// document exports as an empty object.
func Export(doc *document.Object) string {
	if doc == nil {
		doc = document.NewObject()
	}
	return oj.JSON(document.ToAny(doc), &exportOptions)
}

// ExportValue renders a single value the way Export renders documents.
func ExportValue(v document.Value) string {
	if v == nil {
		return "null"
	}
	return oj.JSON(document.ToAny(v), &exportOptions)
}

// ParseValue parses text holding any JSON value.
func ParseValue(text string) (document.Value, error) {
	data, err := oj.ParseString(text)
	if err != nil {
		return nil, &ParseError{Msg: err.Error(), Err: err}
	}
	v, err := document.FromAny(data)
	if err != nil {
		return nil, &ParseError{Msg: err.Error(), Err: err}
	}
	return v, nil
}

// Import parses text into a new document. The top-level value must be an
// object. Nothing is returned on failure, so a caller's current document is
// never partially replaced.
func Import(text string) (*document.Object, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &ParseError{Msg: "empty input"}
	}

	data, err := oj.ParseString(text)
	if err != nil {
		return nil, &ParseError{Msg: err.Error(), Err: err}
	}

	v, err := document.FromAny(data)
	if err != nil {
		return nil, &ParseError{Msg: err.Error(), Err: err}
	}
	obj, ok := v.(*document.Object)
	if !ok {
		return nil, &ParseError{Msg: fmt.Sprintf("top-level value must be an object, got %s", v.Kind())}
	}
	return obj, nil
}

// SetReference binds the value at path to the reference name, stored as
// the literal ${name}. The name is not checked against any namespace.
func SetReference(doc *document.Object, path, name string) (*document.Object, error) {
	p, err := bodypath.Parse(path)
	if err != nil {
		return doc, err
	}
	return document.Set(doc, p, document.String(interpolate.Format(name))), nil
}

// Query evaluates a JSONPath expression such as $.items[*].id against doc
// and returns the matching values in document order.
func Query(doc *document.Object, expr string) ([]document.Value, error) {
	x, err := jp.ParseString(expr)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidQuery, expr, err)
	}
	if doc == nil {
		doc = document.NewObject()
	}

	var values []document.Value
	for _, result := range x.Get(document.ToAny(doc)) {
		v, err := document.FromAny(result)
		if err != nil {
			return nil, fmt.Errorf("%w %q: %v", ErrInvalidQuery, expr, err)
		}
		values = append(values, v)
	}
	return values, nil
}
