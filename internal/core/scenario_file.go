package core

import (
	"fmt"
	"os"

	"github.com/artpar/scenarist/internal/document"
	"gopkg.in/yaml.v3"
)

// scenarioFile is the on-disk scenario format. JSON files load too.
type scenarioFile struct {
	Name  string     `yaml:"name"`
	Steps []stepFile `yaml:"steps"`
}

type stepFile struct {
	Name   string         `yaml:"name"`
	Method string         `yaml:"method"`
	URL    string         `yaml:"url"`
	SaveAs string         `yaml:"save_as"`
	Body   map[string]any `yaml:"body"`
}

// LoadScenario reads a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}
	return ParseScenario(content)
}

// ParseScenario decodes scenario data.
func ParseScenario(data []byte) (*Scenario, error) {
	var raw scenarioFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}

	s := NewScenario(raw.Name)
	for i, sf := range raw.Steps {
		step, err := NewStep(sf.Method, sf.URL)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
		step.SetName(sf.Name)
		step.SetSaveAs(sf.SaveAs)
		if sf.Body != nil {
			body, err := document.FromAny(sf.Body)
			if err != nil {
				return nil, fmt.Errorf("step %d: invalid body: %w", i+1, err)
			}
			step.SetBody(body.(*document.Object))
		}
		s.AddStep(step)
	}
	return s, nil
}
