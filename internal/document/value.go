// Package document holds the JSON document model edited by the body editor
// and the path-addressed accessor over it.
//
// Containers are pointers: storing an *Array or *Object with Set stores the
// reference, not a copy. Callers that insert shared data (templates, values
// taken from another document) must Clone it first or later edits will show
// up in both places.
package document

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
)

// Kind identifies the variant of a Value.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	KindArray
	KindObject
)

// String returns the string representation of a kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "boolean"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is a node of a document. The set of implementations is closed:
// String, Number, Bool, Null, *Array and *Object. A nil Value means absent.
type Value interface {
	Kind() Kind
	isValue()
}

// String is a string leaf.
type String string

// Number is a numeric leaf.
type Number float64

// Bool is a boolean leaf.
type Bool bool

// Null is the JSON null leaf.
type Null struct{}

// Array is an ordered sequence node.
type Array struct {
	Items []Value
}

// Object is a mapping node. Key order is not significant.
type Object struct {
	Fields map[string]Value
}

func (String) Kind() Kind  { return KindString }
func (Number) Kind() Kind  { return KindNumber }
func (Bool) Kind() Kind    { return KindBool }
func (Null) Kind() Kind    { return KindNull }
func (*Array) Kind() Kind  { return KindArray }
func (*Object) Kind() Kind { return KindObject }

func (String) isValue()  {}
func (Number) isValue()  {}
func (Bool) isValue()    {}
func (Null) isValue()    {}
func (*Array) isValue()  {}
func (*Object) isValue() {}

// NewObject creates an empty mapping node.
func NewObject() *Object {
	return &Object{Fields: make(map[string]Value)}
}

// NewArray creates a sequence node holding items.
func NewArray(items ...Value) *Array {
	if items == nil {
		items = []Value{}
	}
	return &Array{Items: items}
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (Value, bool) {
	if o == nil {
		return nil, false
	}
	v, ok := o.Fields[key]
	return v, ok
}

// Put stores v under key. A nil v is stored as Null.
func (o *Object) Put(key string, v Value) {
	if o.Fields == nil {
		o.Fields = make(map[string]Value)
	}
	if v == nil {
		v = Null{}
	}
	o.Fields[key] = v
}

// Keys returns the keys in sorted order.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	keys := make([]string, 0, len(o.Fields))
	for k := range o.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of keys.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.Fields)
}

// Len returns the number of elements.
func (a *Array) Len() int {
	if a == nil {
		return 0
	}
	return len(a.Items)
}

// Clone returns a deep copy of v. Leaves are immutable and shared.
func Clone(v Value) Value {
	switch t := v.(type) {
	case *Object:
		return CloneObject(t)
	case *Array:
		if t == nil {
			return nil
		}
		out := &Array{Items: make([]Value, len(t.Items))}
		for i, item := range t.Items {
			out.Items[i] = Clone(item)
		}
		return out
	default:
		return v
	}
}

// CloneObject is Clone specialised to mapping nodes.
func CloneObject(o *Object) *Object {
	if o == nil {
		return nil
	}
	out := &Object{Fields: make(map[string]Value, len(o.Fields))}
	for k, item := range o.Fields {
		out.Fields[k] = Clone(item)
	}
	return out
}

// Equal reports whether a and b are deeply equal.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch x := a.(type) {
	case *Object:
		y := b.(*Object)
		if x.Len() != y.Len() {
			return false
		}
		for k, xv := range x.Fields {
			yv, ok := y.Fields[k]
			if !ok || !Equal(xv, yv) {
				return false
			}
		}
		return true
	case *Array:
		y := b.(*Array)
		if x.Len() != y.Len() {
			return false
		}
		for i := range x.Items {
			if !Equal(x.Items[i], y.Items[i]) {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}

// Truthy reports the truthiness of v: false, 0, NaN, "", null and absent
// are falsy; everything else, including empty containers, is truthy.
func Truthy(v Value) bool {
	switch t := v.(type) {
	case nil, Null:
		return false
	case Bool:
		return bool(t)
	case Number:
		f := float64(t)
		return f != 0 && !math.IsNaN(f)
	case String:
		return t != ""
	default:
		return true
	}
}

// IsEmpty reports whether v counts as "no value" for a required field:
// absent, null, an empty string, an empty array or an object without keys.
func IsEmpty(v Value) bool {
	switch t := v.(type) {
	case nil, Null:
		return true
	case String:
		return t == ""
	case *Array:
		return t.Len() == 0
	case *Object:
		return t.Len() == 0
	default:
		return false
	}
}

// FromAny converts decoded JSON/YAML data (maps, slices, strings, numbers,
// booleans, nil) into a Value.
func FromAny(x any) (Value, error) {
	switch t := x.(type) {
	case nil:
		return Null{}, nil
	case Value:
		return t, nil
	case string:
		return String(t), nil
	case bool:
		return Bool(t), nil
	case float64:
		return finite(t)
	case float32:
		return finite(float64(t))
	case int:
		return Number(t), nil
	case int64:
		return Number(t), nil
	case int32:
		return Number(t), nil
	case uint64:
		return Number(t), nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return nil, fmt.Errorf("invalid number %q: %w", t.String(), err)
		}
		return finite(f)
	case map[string]any:
		obj := &Object{Fields: make(map[string]Value, len(t))}
		for k, item := range t {
			v, err := FromAny(item)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", k, err)
			}
			obj.Fields[k] = v
		}
		return obj, nil
	case map[any]any:
		obj := &Object{Fields: make(map[string]Value, len(t))}
		for k, item := range t {
			key := fmt.Sprint(k)
			v, err := FromAny(item)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", key, err)
			}
			obj.Fields[key] = v
		}
		return obj, nil
	case []any:
		arr := &Array{Items: make([]Value, len(t))}
		for i, item := range t {
			v, err := FromAny(item)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			arr.Items[i] = v
		}
		return arr, nil
	case fmt.Stringer:
		// Big numbers from some decoders arrive as Stringers.
		f, err := strconv.ParseFloat(t.String(), 64)
		if err != nil {
			return nil, fmt.Errorf("unsupported value %T", x)
		}
		return Number(f), nil
	default:
		return nil, fmt.Errorf("unsupported value %T", x)
	}
}

// maxExactInt is the largest integer a float64 holds exactly.
const maxExactInt = 1 << 53

// finite rejects NaN and infinities, which JSON cannot represent.
func finite(f float64) (Value, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("number %v is out of range", f)
	}
	return Number(f), nil
}

// ToAny converts v into plain Go data suitable for JSON encoders. Integral
// numbers become int64 so they encode without a fractional part.
func ToAny(v Value) any {
	switch t := v.(type) {
	case nil, Null:
		return nil
	case String:
		return string(t)
	case Bool:
		return bool(t)
	case Number:
		f := float64(t)
		if f == math.Trunc(f) && math.Abs(f) <= maxExactInt {
			return int64(f)
		}
		return f
	case *Array:
		out := make([]any, len(t.Items))
		for i, item := range t.Items {
			out[i] = ToAny(item)
		}
		return out
	case *Object:
		out := make(map[string]any, len(t.Fields))
		for k, item := range t.Fields {
			out[k] = ToAny(item)
		}
		return out
	default:
		return nil
	}
}
