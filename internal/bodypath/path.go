package bodypath

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformedPath is matched by every MalformedPathError.
var ErrMalformedPath = errors.New("malformed path")

// MaxIndex is the largest array index a path may address. Setting an index
// pads the array up to it, so the bound caps the size of that padding.
const MaxIndex = 9999

// Kind identifies what a segment addresses.
type Kind int

const (
	// KindKey addresses a key of a mapping.
	KindKey Kind = iota
	// KindIndex addresses an element of the array stored under Name.
	KindIndex
)

// String returns the string representation of a kind.
func (k Kind) String() string {
	switch k {
	case KindKey:
		return "key"
	case KindIndex:
		return "index"
	default:
		return "unknown"
	}
}

// Segment is one component of a path.
type Segment struct {
	Kind  Kind
	Name  string
	Index int
}

// Key returns a key segment.
func Key(name string) Segment {
	return Segment{Kind: KindKey, Name: name}
}

// Elem returns an index segment for element index of the array under name.
func Elem(name string, index int) Segment {
	return Segment{Kind: KindIndex, Name: name, Index: index}
}

// String renders the segment as it appears in a path string.
func (s Segment) String() string {
	if s.Kind == KindIndex {
		return s.Name + "[" + strconv.Itoa(s.Index) + "]"
	}
	return s.Name
}

// Path addresses a location in a nested document, e.g. "a.b[2].c".
type Path []Segment

// MalformedPathError reports a path string that cannot be parsed.
type MalformedPathError struct {
	Path   string
	Reason string
}

func (e *MalformedPathError) Error() string {
	return fmt.Sprintf("malformed path %q: %s", e.Path, e.Reason)
}

// Is reports whether target is ErrMalformedPath.
func (e *MalformedPathError) Is(target error) bool {
	return target == ErrMalformedPath
}

// Parse parses a dotted/bracketed path string.
func Parse(s string) (Path, error) {
	if s == "" {
		return nil, &MalformedPathError{Path: s, Reason: "empty path"}
	}

	parts := strings.Split(s, ".")
	path := make(Path, 0, len(parts))
	for i, part := range parts {
		seg, reason := parseSegment(part)
		if reason != "" {
			return nil, &MalformedPathError{Path: s, Reason: fmt.Sprintf("segment %d: %s", i+1, reason)}
		}
		path = append(path, seg)
	}
	return path, nil
}

// MustParse is like Parse but panics on error. Intended for literals.
func MustParse(s string) Path {
	p, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return p
}

func parseSegment(part string) (Segment, string) {
	if part == "" {
		return Segment{}, "empty segment"
	}

	open := strings.IndexByte(part, '[')
	end := strings.IndexByte(part, ']')
	if open < 0 && end < 0 {
		return Key(part), ""
	}
	if open < 0 || end < 0 || end < open {
		return Segment{}, "unbalanced brackets"
	}
	if end != len(part)-1 {
		return Segment{}, "unexpected characters after ']'"
	}
	if strings.Count(part, "[") != 1 || strings.Count(part, "]") != 1 {
		return Segment{}, "only one index per segment is supported"
	}

	name := part[:open]
	if name == "" {
		return Segment{}, "index without field name"
	}

	raw := part[open+1 : end]
	index, ok := parseIndex(raw)
	if !ok {
		return Segment{}, fmt.Sprintf("index %q is not a non-negative integer", raw)
	}
	if index > MaxIndex {
		return Segment{}, fmt.Sprintf("index too large: %d exceeds %d", index, MaxIndex)
	}
	return Elem(name, index), ""
}

// parseIndex accepts canonical decimal indices only, so rendering reproduces the input.
func parseIndex(raw string) (int, bool) {
	if raw == "" {
		return 0, false
	}
	for _, r := range raw {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	if len(raw) > 1 && raw[0] == '0' {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}

// String renders the path. It is the inverse of Parse.
func (p Path) String() string {
	var b strings.Builder
	for i, seg := range p {
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(seg.String())
	}
	return b.String()
}

// Render is the functional form of Path.String.
func Render(p Path) string {
	return p.String()
}

// Parent returns the path without its last segment. The parent of a
// single-segment path is empty.
func (p Path) Parent() Path {
	if len(p) == 0 {
		return nil
	}
	return p[:len(p)-1:len(p)-1]
}

// Last returns the final segment.
func (p Path) Last() Segment {
	return p[len(p)-1]
}

// Child returns a new path with a key segment appended.
func (p Path) Child(name string) Path {
	return p.append(Key(name))
}

// Elem returns a new path whose last key segment becomes an index segment.
// It reports false if the path is empty or already ends in an index.
func (p Path) Elem(index int) (Path, bool) {
	if len(p) == 0 || p.Last().Kind != KindKey {
		return nil, false
	}
	out := make(Path, len(p))
	copy(out, p)
	out[len(out)-1] = Elem(out[len(out)-1].Name, index)
	return out, true
}

func (p Path) append(seg Segment) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, seg)
}

// HasPrefix reports whether q is a (non-strict) prefix of p.
func (p Path) HasPrefix(q Path) bool {
	if len(q) > len(p) {
		return false
	}
	for i := range q {
		if p[i] != q[i] {
			return false
		}
	}
	return true
}

// Equal reports whether both paths have identical segments.
func (p Path) Equal(q Path) bool {
	return len(p) == len(q) && p.HasPrefix(q)
}

// Within reports whether p addresses q itself or a location nested under it.
// Unlike HasPrefix, an element path "tags[1]" is within "tags".
func (p Path) Within(q Path) bool {
	if len(q) == 0 || len(q) > len(p) {
		return false
	}
	n := len(q) - 1
	if !p[:n].HasPrefix(q[:n]) {
		return false
	}
	if p[n] == q[n] {
		return true
	}
	return q[n].Kind == KindKey && p[n].Kind == KindIndex && p[n].Name == q[n].Name
}
