package field

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/artpar/scenarist/internal/document"
)

// Type is the declared semantic type of a field.
type Type string

const (
	TypeString  Type = "string"
	TypeNumber  Type = "number"
	TypeInteger Type = "integer"
	TypeBoolean Type = "boolean"
	TypeArray   Type = "array"
	TypeObject  Type = "object"
	TypeEnum    Type = "enum"
)

// Known reports whether t is one of the declared types.
func (t Type) Known() bool {
	switch t {
	case TypeString, TypeNumber, TypeInteger, TypeBoolean, TypeArray, TypeObject, TypeEnum:
		return true
	default:
		return false
	}
}

// Numeric reports whether t is number or integer.
func (t Type) Numeric() bool {
	return t == TypeNumber || t == TypeInteger
}

// Descriptor describes one known field of a request body.
type Descriptor struct {
	Path     string   `yaml:"path" json:"path"`
	Type     Type     `yaml:"type" json:"type"`
	Required bool     `yaml:"required,omitempty" json:"required,omitempty"`
	Enum     []string `yaml:"enum,omitempty" json:"enum,omitempty"`
}

// DefaultFor returns the value a freshly selected field of type t holds.
// Containers are new on every call.
func DefaultFor(t Type) document.Value {
	switch t {
	case TypeString:
		return document.String("")
	case TypeNumber, TypeInteger:
		return document.Number(0)
	case TypeBoolean:
		return document.Bool(false)
	case TypeArray:
		return document.NewArray()
	case TypeObject:
		return document.NewObject()
	default:
		return document.String("")
	}
}

// Coerce converts raw input to type t.
//
// Numeric coercion is lossy: an empty or unparsable string becomes 0. Run
// Validate first when bad input must be reported.
func Coerce(raw document.Value, t Type) document.Value {
	switch t {
	case TypeArray:
		if arr, ok := raw.(*document.Array); ok {
			return arr
		}
		return DefaultFor(t)
	case TypeObject:
		if obj, ok := raw.(*document.Object); ok {
			return obj
		}
		return DefaultFor(t)
	case TypeBoolean:
		switch v := raw.(type) {
		case document.Bool:
			return v
		case document.String:
			return document.Bool(strings.EqualFold(string(v), "true"))
		default:
			return document.Bool(document.Truthy(raw))
		}
	case TypeNumber, TypeInteger:
		switch v := raw.(type) {
		case document.Number:
			return v
		case document.String:
			f, ok := parseNumber(string(v))
			if !ok {
				return document.Number(0)
			}
			return document.Number(f)
		case document.Bool:
			if v {
				return document.Number(1)
			}
			return document.Number(0)
		default:
			return document.Number(0)
		}
	default:
		return raw
	}
}

func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Validation codes.
const (
	CodeRequired   = "required"
	CodeNotNumber  = "not_number"
	CodeNotInteger = "not_integer"
	CodeNotInEnum  = "not_in_enum"
)

// ValidationError is an advisory problem with a field value.
type ValidationError struct {
	Path    string
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

var decimalPattern = regexp.MustCompile(`^[-+]?(\d+(\.\d*)?|\.\d+)$`)

// Validate checks value against d. It returns nil when the value is acceptable.
func Validate(d Descriptor, value document.Value) *ValidationError {
	if document.IsEmpty(value) {
		if d.Required {
			return &ValidationError{Path: d.Path, Code: CodeRequired, Message: "is required"}
		}
		return nil
	}

	switch {
	case d.Type.Numeric():
		var n float64
		switch v := value.(type) {
		case document.String:
			s := strings.TrimSpace(string(v))
			if !decimalPattern.MatchString(s) {
				return &ValidationError{Path: d.Path, Code: CodeNotNumber, Message: "must be a valid number"}
			}
			n, _ = strconv.ParseFloat(s, 64)
		case document.Number:
			n = float64(v)
		default:
			return nil
		}
		if d.Type == TypeInteger && n != math.Trunc(n) {
			return &ValidationError{Path: d.Path, Code: CodeNotInteger, Message: "must be an integer"}
		}
	case len(d.Enum) > 0:
		s, ok := value.(document.String)
		if !ok {
			return nil
		}
		for _, allowed := range d.Enum {
			if string(s) == allowed {
				return nil
			}
		}
		return &ValidationError{
			Path:    d.Path,
			Code:    CodeNotInEnum,
			Message: "must be one of " + strings.Join(d.Enum, ", "),
		}
	}
	return nil
}
