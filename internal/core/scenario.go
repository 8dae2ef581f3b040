package core

import (
	"errors"
	"fmt"

	"github.com/artpar/scenarist/internal/interpolate"
)

// Scenario is an ordered list of steps run one after another.
type Scenario struct {
	name  string
	steps []*Step
}

// NewScenario creates an empty scenario.
func NewScenario(name string) *Scenario {
	return &Scenario{name: name}
}

func (s *Scenario) Name() string {
	return s.name
}

// Steps returns a copy of the step list.
func (s *Scenario) Steps() []*Step {
	result := make([]*Step, len(s.steps))
	copy(result, s.steps)
	return result
}

// AddStep appends a step.
func (s *Scenario) AddStep(step *Step) {
	s.steps = append(s.steps, step)
}

// RemoveStep removes the step at index. It reports false if index is out of range.
func (s *Scenario) RemoveStep(index int) bool {
	if index < 0 || index >= len(s.steps) {
		return false
	}
	s.steps = append(s.steps[:index], s.steps[index+1:]...)
	return true
}

// DuplicateStep inserts a copy of the step at index right after it.
func (s *Scenario) DuplicateStep(index int) (*Step, bool) {
	if index < 0 || index >= len(s.steps) {
		return nil, false
	}
	dup := s.steps[index].Duplicate()
	s.steps = append(s.steps[:index+1], append([]*Step{dup}, s.steps[index+1:]...)...)
	return dup, true
}

// AvailableReferences returns the save-as names of the steps before index:
// the references a body of step index may bind to.
func (s *Scenario) AvailableReferences(index int) []string {
	if index > len(s.steps) {
		index = len(s.steps)
	}
	var refs []string
	for _, step := range s.steps[:max(index, 0)] {
		if step.SaveAs() != "" {
			refs = append(refs, step.SaveAs())
		}
	}
	return refs
}

// Namespace returns the reference namespace of step index.
func (s *Scenario) Namespace(index int) *interpolate.Namespace {
	return interpolate.NewNamespace(s.AvailableReferences(index)...)
}

// Validate reports every problem with the scenario.
func (s *Scenario) Validate() error {
	var errs []error
	if s.name == "" {
		errs = append(errs, errors.New("scenario name is required"))
	}
	if len(s.steps) == 0 {
		errs = append(errs, errors.New("at least one step is required"))
	}
	for i, step := range s.steps {
		if err := step.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("step %d: %w", i+1, err))
		}
	}
	return errors.Join(errs...)
}
