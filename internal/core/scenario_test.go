package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStep(t *testing.T, name, saveAs string) *Step {
	t.Helper()
	step, err := NewStep("POST", "http://localhost:8099/api/"+name)
	require.NoError(t, err)
	step.SetName(name)
	step.SetSaveAs(saveAs)
	return step
}

func TestScenario_Steps(t *testing.T) {
	s := NewScenario("signup")
	assert.Equal(t, "signup", s.Name())
	assert.Empty(t, s.Steps())

	s.AddStep(newTestStep(t, "users", "user"))
	s.AddStep(newTestStep(t, "orders", "order"))
	require.Len(t, s.Steps(), 2)

	t.Run("returns a copy", func(t *testing.T) {
		steps := s.Steps()
		steps[0] = nil
		assert.NotNil(t, s.Steps()[0])
	})

	t.Run("removes by index", func(t *testing.T) {
		assert.False(t, s.RemoveStep(5))
		assert.False(t, s.RemoveStep(-1))
		assert.True(t, s.RemoveStep(0))
		require.Len(t, s.Steps(), 1)
		assert.Equal(t, "orders", s.Steps()[0].Name())
	})
}

func TestScenario_DuplicateStep(t *testing.T) {
	s := NewScenario("signup")
	s.AddStep(newTestStep(t, "users", "user"))
	s.AddStep(newTestStep(t, "orders", "order"))

	dup, ok := s.DuplicateStep(0)
	require.True(t, ok)
	steps := s.Steps()
	require.Len(t, steps, 3)
	assert.Equal(t, dup.ID(), steps[1].ID())
	assert.Equal(t, "orders", steps[2].Name())

	_, ok = s.DuplicateStep(3)
	assert.False(t, ok)
}

func TestScenario_AvailableReferences(t *testing.T) {
	s := NewScenario("signup")
	s.AddStep(newTestStep(t, "login", "token"))
	s.AddStep(newTestStep(t, "users", ""))
	s.AddStep(newTestStep(t, "orders", "order"))

	assert.Empty(t, s.AvailableReferences(0))
	assert.Equal(t, []string{"token"}, s.AvailableReferences(1))
	assert.Equal(t, []string{"token"}, s.AvailableReferences(2))
	assert.Equal(t, []string{"token", "order"}, s.AvailableReferences(3))
	assert.Equal(t, []string{"token", "order"}, s.AvailableReferences(10))
	assert.Empty(t, s.AvailableReferences(-1))

	ns := s.Namespace(3)
	assert.True(t, ns.Has("order.id"))
	assert.False(t, s.Namespace(1).Has("order"))
}

func TestScenario_Validate(t *testing.T) {
	t.Run("reports every problem", func(t *testing.T) {
		s := NewScenario("")
		err := s.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "scenario name is required")
		assert.Contains(t, err.Error(), "at least one step is required")
	})

	t.Run("numbers invalid steps", func(t *testing.T) {
		s := NewScenario("signup")
		s.AddStep(newTestStep(t, "users", ""))
		s.AddStep(newTestStep(t, "", ""))
		err := s.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "step 2: name is required")
	})

	t.Run("accepts valid scenarios", func(t *testing.T) {
		s := NewScenario("signup")
		s.AddStep(newTestStep(t, "users", "user"))
		assert.NoError(t, s.Validate())
	})
}
