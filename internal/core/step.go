package core

import (
	"errors"
	"strings"

	"github.com/artpar/scenarist/internal/catalog"
	"github.com/artpar/scenarist/internal/document"
	"github.com/google/uuid"
)

// bodyMethods are the methods whose requests carry a body.
var bodyMethods = map[string]bool{
	"POST":  true,
	"PUT":   true,
	"PATCH": true,
}

// Step is one HTTP request of a scenario. Its save-as name becomes a
// reference available to later steps.
type Step struct {
	id     string
	name   string
	method string
	url    string
	saveAs string
	body   *document.Object
}

// NewStep creates a step. Methods that carry a body start with an empty one.
func NewStep(method, url string) (*Step, error) {
	if method == "" {
		return nil, errors.New("method cannot be empty")
	}
	if url == "" {
		return nil, errors.New("url cannot be empty")
	}

	s := &Step{
		id:  uuid.New().String(),
		url: url,
	}
	s.SetMethod(method)
	return s, nil
}

func (s *Step) ID() string {
	return s.id
}

func (s *Step) Name() string {
	return s.name
}

func (s *Step) Method() string {
	return s.method
}

func (s *Step) URL() string {
	return s.url
}

func (s *Step) SaveAs() string {
	return s.saveAs
}

// Body returns the request body, nil for steps without one.
func (s *Step) Body() *document.Object {
	return s.body
}

func (s *Step) SetName(name string) {
	s.name = name
}

func (s *Step) SetURL(url string) {
	s.url = url
}

func (s *Step) SetSaveAs(name string) {
	s.saveAs = name
}

// SetBody replaces the body. The document is stored by reference.
func (s *Step) SetBody(body *document.Object) {
	s.body = body
}

// SetMethod changes the method, giving body methods an empty body when they
// have none.
func (s *Step) SetMethod(method string) {
	s.method = strings.ToUpper(method)
	if s.BodyAllowed() && s.body == nil {
		s.body = document.NewObject()
	}
}

// BodyAllowed reports whether the method carries a request body.
func (s *Step) BodyAllowed() bool {
	return bodyMethods[s.method]
}

// EndpointType returns the catalog classification of the step URL.
func (s *Step) EndpointType() string {
	return catalog.Classify(s.url)
}

// Duplicate returns a copy with a new ID and a deep copy of the body.
func (s *Step) Duplicate() *Step {
	return &Step{
		id:     uuid.New().String(),
		name:   s.name,
		method: s.method,
		url:    s.url,
		saveAs: s.saveAs,
		body:   document.CloneObject(s.body),
	}
}

func (s *Step) Validate() error {
	if s.name == "" {
		return errors.New("name is required")
	}
	if s.method == "" {
		return errors.New("method is required")
	}
	if s.url == "" {
		return errors.New("url is required")
	}
	return nil
}
