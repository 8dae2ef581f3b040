package interpolate

import (
	"regexp"
	"strings"

	"github.com/artpar/scenarist/internal/bodypath"
	"github.com/artpar/scenarist/internal/document"
)

// referenceBody matches name or name.property, e.g. createUser_response.data.id.
const referenceBody = `([a-zA-Z_$][a-zA-Z0-9_\-$]*(?:\.[a-zA-Z0-9_\-$\[\]]+)*)`

// referencePattern matches ${name} anywhere in a string.
var referencePattern = regexp.MustCompile(`\$\{\s*` + referenceBody + `\s*\}`)

// wholePattern matches a value that is exactly one reference.
var wholePattern = regexp.MustCompile(`^\$\{\s*` + referenceBody + `\s*\}$`)

// Format returns the literal stored for a reference to name.
func Format(name string) string {
	return "${" + name + "}"
}

// Parse returns the referenced name if s is exactly one ${name} reference.
func Parse(s string) (string, bool) {
	m := wholePattern.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// Root returns the binding a reference draws from: "step" for "step.data.id".
func Root(name string) string {
	if i := strings.IndexAny(name, ".["); i >= 0 {
		return name[:i]
	}
	return name
}

// ExtractNames returns the distinct reference names in input, in order of
// first appearance.
func ExtractNames(input string) []string {
	matches := referencePattern.FindAllStringSubmatch(input, -1)
	seen := make(map[string]bool)
	var result []string

	for _, match := range matches {
		name := match[1]
		if !seen[name] {
			seen[name] = true
			result = append(result, name)
		}
	}

	return result
}

// Binding is a reference found in a document.
type Binding struct {
	Path string
	Name string
}

// Extract returns every reference bound in doc's string leaves, including
// references embedded in longer strings such as "Bearer ${token}".
func Extract(doc *document.Object) []Binding {
	var result []Binding
	document.Leaves(doc, func(p bodypath.Path, v document.Value) {
		s, ok := v.(document.String)
		if !ok {
			return
		}
		for _, name := range ExtractNames(string(s)) {
			result = append(result, Binding{Path: p.String(), Name: name})
		}
	})
	return result
}
