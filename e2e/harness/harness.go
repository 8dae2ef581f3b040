// Package harness provides E2E testing utilities for Scenarist.
package harness

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// E2EHarness is the main test orchestrator.
type E2EHarness struct {
	t       *testing.T
	tmpDir  string
	catalog string
	timeout time.Duration
}

// Config configures the harness.
type Config struct {
	Catalog string        // Catalog file content, written to the temp dir
	Timeout time.Duration // Default: 5 seconds
}

// New creates a new E2E harness.
func New(t *testing.T, cfg Config) *E2EHarness {
	t.Helper()

	if cfg.Timeout == 0 {
		cfg.Timeout = 5 * time.Second
	}

	h := &E2EHarness{
		t:       t,
		tmpDir:  t.TempDir(),
		timeout: cfg.Timeout,
	}

	if cfg.Catalog != "" {
		h.catalog = h.WriteFile("catalog.yaml", cfg.Catalog)
	}

	return h
}

// WriteFile writes content to name inside the temp dir and returns its path.
func (h *E2EHarness) WriteFile(name, content string) string {
	h.t.Helper()
	path := h.Path(name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		h.t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

// ReadFile returns the content of name inside the temp dir.
func (h *E2EHarness) ReadFile(name string) string {
	h.t.Helper()
	content, err := os.ReadFile(h.Path(name))
	if err != nil {
		h.t.Fatalf("failed to read %s: %v", name, err)
	}
	return string(content)
}

// Path returns the absolute path of name inside the temp dir.
func (h *E2EHarness) Path(name string) string {
	return filepath.Join(h.tmpDir, name)
}

// CatalogPath returns the catalog file path, empty without a catalog.
func (h *E2EHarness) CatalogPath() string {
	return h.catalog
}

// TmpDir returns the temporary directory path.
func (h *E2EHarness) TmpDir() string {
	return h.tmpDir
}

// Timeout returns the configured timeout.
func (h *E2EHarness) Timeout() time.Duration {
	return h.timeout
}

// T returns the testing.T instance.
func (h *E2EHarness) T() *testing.T {
	return h.t
}

// CLI returns a CLI runner for this harness.
func (h *E2EHarness) CLI() *CLIRunner {
	return &CLIRunner{harness: h}
}
