package harness

import (
	"strings"
	"testing"

	"github.com/artpar/scenarist/internal/bodypath"
	"github.com/artpar/scenarist/internal/document"
	"github.com/artpar/scenarist/internal/transfer"
)

// Assertions provides E2E-specific assertions.
type Assertions struct {
	t *testing.T
}

// NewAssertions creates an assertions helper.
func NewAssertions(t *testing.T) *Assertions {
	return &Assertions{t: t}
}

// OutputContains asserts the output contains all given strings.
func (a *Assertions) OutputContains(output string, expected ...string) {
	a.t.Helper()
	for _, exp := range expected {
		if !strings.Contains(output, exp) {
			a.t.Errorf("expected output to contain %q, got:\n%s", exp, truncate(output, 500))
		}
	}
}

// OutputNotContains asserts the output does not contain any of the given strings.
func (a *Assertions) OutputNotContains(output string, unexpected ...string) {
	a.t.Helper()
	for _, unexp := range unexpected {
		if strings.Contains(output, unexp) {
			a.t.Errorf("expected output NOT to contain %q, got:\n%s", unexp, truncate(output, 500))
		}
	}
}

// BodyValue asserts the body JSON holds expected at path.
func (a *Assertions) BodyValue(body, path string, expected document.Value) {
	a.t.Helper()
	doc, err := transfer.Import(body)
	if err != nil {
		a.t.Errorf("body is not valid JSON: %v\n%s", err, truncate(body, 500))
		return
	}
	actual, ok := document.Get(doc, bodypath.MustParse(path))
	if !ok {
		a.t.Errorf("expected a value at %s in body:\n%s", path, truncate(body, 500))
		return
	}
	if !document.Equal(expected, actual) {
		a.t.Errorf("expected %s at %s, got %s", transfer.ExportValue(expected), path, transfer.ExportValue(actual))
	}
}

// BodyMissing asserts the body JSON has no value at path.
func (a *Assertions) BodyMissing(body, path string) {
	a.t.Helper()
	doc, err := transfer.Import(body)
	if err != nil {
		a.t.Errorf("body is not valid JSON: %v\n%s", err, truncate(body, 500))
		return
	}
	if _, ok := document.Get(doc, bodypath.MustParse(path)); ok {
		a.t.Errorf("expected no value at %s in body:\n%s", path, truncate(body, 500))
	}
}

// NoError asserts the output doesn't contain error indicators.
func (a *Assertions) NoError(output string) {
	a.t.Helper()
	errorIndicators := []string{"Error:", "error:", "panic:", "PANIC:"}
	for _, ind := range errorIndicators {
		if strings.Contains(output, ind) {
			a.t.Errorf("unexpected error in output: found %q in:\n%s", ind, truncate(output, 500))
			return
		}
	}
}

// truncate truncates a string to maxLen characters.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "... (truncated)"
}
