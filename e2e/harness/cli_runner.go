package harness

import (
	"bytes"
	"context"
	"time"

	"github.com/artpar/scenarist/internal/cli"
)

// CLIResult holds CLI execution results.
type CLIResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Duration time.Duration
}

// CLIRunner executes CLI commands.
type CLIRunner struct {
	harness *E2EHarness
}

// Run executes a CLI command with the given arguments.
func (r *CLIRunner) Run(args ...string) (*CLIResult, error) {
	ctx, cancel := context.WithTimeout(context.Background(), r.harness.timeout)
	defer cancel()

	start := time.Now()

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	cmd := cli.NewRootCommand("test")
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)

	result := &CLIResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}

	if err != nil {
		result.ExitCode = 1
	}

	return result, err
}

// RunOnBody runs a body command against the body file name, passing the
// harness catalog when one is configured.
func (r *CLIRunner) RunOnBody(command, name string, args ...string) (*CLIResult, error) {
	full := []string{command, r.harness.Path(name)}
	full = append(full, args...)
	if r.harness.catalog != "" {
		full = append(full, "--catalog", r.harness.catalog)
	}
	return r.Run(full...)
}

// Set is a convenience method for the set command.
func (r *CLIRunner) Set(name, path, value string, opts ...string) (*CLIResult, error) {
	return r.RunOnBody("set", name, append([]string{path, value}, opts...)...)
}

// Toggle is a convenience method for the toggle command.
func (r *CLIRunner) Toggle(name, path string, opts ...string) (*CLIResult, error) {
	return r.RunOnBody("toggle", name, append([]string{path}, opts...)...)
}

// Ref is a convenience method for the ref command.
func (r *CLIRunner) Ref(name, path, ref string, opts ...string) (*CLIResult, error) {
	return r.RunOnBody("ref", name, append([]string{path, ref}, opts...)...)
}

// Export is a convenience method for the export command.
func (r *CLIRunner) Export(name string, opts ...string) (*CLIResult, error) {
	return r.RunOnBody("export", name, opts...)
}
