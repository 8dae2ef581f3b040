package catalog

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/artpar/scenarist/internal/bodypath"
	"github.com/artpar/scenarist/internal/document"
	"github.com/artpar/scenarist/internal/field"
	"gopkg.in/yaml.v3"
)

// Common errors.
var (
	ErrUnknownEndpoint  = errors.New("unknown endpoint")
	ErrTemplateNotFound = errors.New("template not found")
	ErrInvalidCatalog   = errors.New("invalid catalog")
)

// DefaultEndpoint is the classification used when a URL yields none.
const DefaultEndpoint = "api-specs"

// catalogFile is the on-disk format. JSON files load too, being valid YAML.
type catalogFile struct {
	Endpoints map[string]endpointFile `yaml:"endpoints"`
}

type endpointFile struct {
	Fields    []field.Descriptor `yaml:"fields"`
	Templates map[string]any     `yaml:"templates"`
}

type endpoint struct {
	fields    []field.Descriptor
	byPath    map[string]field.Descriptor
	templates map[string]*document.Object
}

// Catalog holds field descriptors and body templates per endpoint
// classification. It is read-only once loaded.
type Catalog struct {
	endpoints map[string]*endpoint
}

// Load reads a catalog file.
func Load(path string) (*Catalog, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	return Parse(content)
}

// Parse decodes catalog data.
func Parse(data []byte) (*Catalog, error) {
	var raw catalogFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}

	c := &Catalog{endpoints: make(map[string]*endpoint, len(raw.Endpoints))}
	for name, ef := range raw.Endpoints {
		ep, err := buildEndpoint(ef)
		if err != nil {
			return nil, fmt.Errorf("%w: endpoint %q: %v", ErrInvalidCatalog, name, err)
		}
		c.endpoints[name] = ep
	}
	return c, nil
}

func buildEndpoint(ef endpointFile) (*endpoint, error) {
	ep := &endpoint{
		fields:    make([]field.Descriptor, 0, len(ef.Fields)),
		byPath:    make(map[string]field.Descriptor, len(ef.Fields)),
		templates: make(map[string]*document.Object, len(ef.Templates)),
	}

	for _, d := range ef.Fields {
		if _, err := bodypath.Parse(d.Path); err != nil {
			return nil, err
		}
		if d.Type == "" {
			d.Type = field.TypeString
		}
		if !d.Type.Known() {
			return nil, fmt.Errorf("field %q: unknown type %q", d.Path, d.Type)
		}
		if _, dup := ep.byPath[d.Path]; dup {
			return nil, fmt.Errorf("field %q declared twice", d.Path)
		}
		ep.fields = append(ep.fields, d)
		ep.byPath[d.Path] = d
	}

	for name, body := range ef.Templates {
		v, err := document.FromAny(body)
		if err != nil {
			return nil, fmt.Errorf("template %q: %v", name, err)
		}
		obj, ok := v.(*document.Object)
		if !ok {
			return nil, fmt.Errorf("template %q: body must be an object, got %s", name, v.Kind())
		}
		ep.templates[name] = obj
	}
	return ep, nil
}

// Endpoints returns the endpoint classifications in sorted order.
func (c *Catalog) Endpoints() []string {
	names := make([]string, 0, len(c.endpoints))
	for name := range c.endpoints {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Fields returns the descriptors of an endpoint in declaration order.
func (c *Catalog) Fields(endpointType string) ([]field.Descriptor, error) {
	ep, ok := c.endpoints[endpointType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEndpoint, endpointType)
	}
	result := make([]field.Descriptor, len(ep.fields))
	copy(result, ep.fields)
	return result, nil
}

// Lookup returns the descriptor declared for path.
func (c *Catalog) Lookup(endpointType, path string) (field.Descriptor, bool) {
	ep, ok := c.endpoints[endpointType]
	if !ok {
		return field.Descriptor{}, false
	}
	d, ok := ep.byPath[path]
	return d, ok
}

// TemplateNames returns the template names of an endpoint in sorted order.
func (c *Catalog) TemplateNames(endpointType string) []string {
	ep, ok := c.endpoints[endpointType]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(ep.templates))
	for name := range ep.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Template returns a deep copy of a named template body. Every call yields
// an independent document, so edits never leak back into the catalog.
func (c *Catalog) Template(endpointType, name string) (*document.Object, error) {
	ep, ok := c.endpoints[endpointType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEndpoint, endpointType)
	}
	body, ok := ep.templates[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s", ErrTemplateNotFound, endpointType, name)
	}
	return document.CloneObject(body), nil
}

// Classify derives the endpoint classification of a request URL: the path
// segment following "api", else the first path segment after the host.
func Classify(url string) string {
	if url == "" {
		return DefaultEndpoint
	}
	if i := strings.IndexAny(url, "?#"); i >= 0 {
		url = url[:i]
	}

	parts := strings.Split(url, "/")
	for i, part := range parts {
		if part == "api" && i+1 < len(parts) && parts[i+1] != "" {
			return parts[i+1]
		}
	}
	if len(parts) > 3 && parts[3] != "" {
		return parts[3]
	}
	return DefaultEndpoint
}
