package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/artpar/scenarist/internal/catalog"
	"github.com/artpar/scenarist/internal/core"
	"github.com/artpar/scenarist/internal/editor"
	"github.com/artpar/scenarist/internal/interpolate"
	"github.com/spf13/cobra"
)

// BodyOptions holds the options shared by commands that edit a body file.
type BodyOptions struct {
	Catalog  string
	Endpoint string
	URL      string
	Method   string
	Out      string
	Refs     []string
	Scenario string
	Step     int
}

func addBodyFlags(cmd *cobra.Command, opts *BodyOptions) {
	cmd.Flags().StringVarP(&opts.Catalog, "catalog", "c", "", "Field catalog file (YAML or JSON)")
	cmd.Flags().StringVarP(&opts.Endpoint, "endpoint", "e", "", "Catalog endpoint (default: derived from --url)")
	cmd.Flags().StringVar(&opts.URL, "url", "", "Request URL used to classify the endpoint")
	cmd.Flags().StringVarP(&opts.Method, "method", "X", "POST", "Request method")
	cmd.Flags().StringVarP(&opts.Out, "out", "o", "", "Write the body here instead of the input file (- for stdout)")
	cmd.Flags().StringSliceVar(&opts.Refs, "refs", nil, "Reference names available to the body")
	cmd.Flags().StringVar(&opts.Scenario, "scenario", "", "Scenario file whose earlier steps provide references")
	cmd.Flags().IntVar(&opts.Step, "step", 0, "Step of --scenario being edited (1-based)")
}

// loadNamespace collects the reference names available to the body: the
// save-as names of the steps before --step plus --refs. The request URL and
// method default to those of the scenario step.
func loadNamespace(opts *BodyOptions) (*interpolate.Namespace, error) {
	ns := interpolate.NewNamespace()
	if opts.Scenario != "" {
		s, err := core.LoadScenario(opts.Scenario)
		if err != nil {
			return nil, err
		}
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("invalid scenario: %w", err)
		}
		steps := s.Steps()
		if opts.Step < 1 || opts.Step > len(steps) {
			return nil, fmt.Errorf("--step must be between 1 and %d", len(steps))
		}
		step := steps[opts.Step-1]
		if opts.URL == "" {
			opts.URL = step.URL()
			opts.Method = step.Method()
		}
		ns = s.Namespace(opts.Step - 1)
	}
	for _, name := range opts.Refs {
		ns.Add(name)
	}
	return ns, nil
}

// resolveEndpoint picks the catalog endpoint: the explicit flag, else the
// classification of the request URL.
func resolveEndpoint(opts *BodyOptions) (string, error) {
	if opts.URL == "" {
		if opts.Endpoint == "" {
			return catalog.DefaultEndpoint, nil
		}
		return opts.Endpoint, nil
	}

	step, err := core.NewStep(opts.Method, opts.URL)
	if err != nil {
		return "", fmt.Errorf("invalid request: %w", err)
	}
	if !step.BodyAllowed() {
		return "", fmt.Errorf("%s requests have no body", step.Method())
	}
	if opts.Endpoint != "" {
		return opts.Endpoint, nil
	}
	return step.EndpointType(), nil
}

func loadCatalog(opts *BodyOptions) (*catalog.Catalog, string, error) {
	endpoint, err := resolveEndpoint(opts)
	if err != nil {
		return nil, "", err
	}
	if opts.Catalog == "" {
		return nil, endpoint, nil
	}
	c, err := catalog.Load(opts.Catalog)
	if err != nil {
		return nil, "", err
	}
	return c, endpoint, nil
}

// openEditor loads the body file into an editor. A missing or empty file
// starts an empty body.
func openEditor(path string, opts *BodyOptions, strictRefs bool) (*editor.Editor, error) {
	ns, err := loadNamespace(opts)
	if err != nil {
		return nil, err
	}
	c, endpoint, err := loadCatalog(opts)
	if err != nil {
		return nil, err
	}

	editorOpts := []editor.Option{
		editor.WithConfig(editor.Config{Endpoint: endpoint, StrictReferences: strictRefs}),
		editor.WithNamespace(ns),
	}
	if c != nil {
		fields, err := c.Fields(endpoint)
		switch {
		case err == nil:
			editorOpts = append(editorOpts, editor.WithFields(fields))
		case errors.Is(err, catalog.ErrUnknownEndpoint) && opts.Endpoint == "":
			// classified endpoints without catalog entries edit free-form
		default:
			return nil, err
		}
	}

	e := editor.New(editorOpts...)
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return e, nil
		}
		return nil, fmt.Errorf("failed to read body: %w", err)
	}
	if strings.TrimSpace(string(content)) == "" {
		return e, nil
	}
	if err := e.Import(string(content)); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return e, nil
}

// writeBody stores the body as canonical JSON at --out, or back into path.
func writeBody(cmd *cobra.Command, path string, opts *BodyOptions, e *editor.Editor) error {
	text := e.Export() + "\n"
	target := opts.Out
	if target == "" {
		target = path
	}
	if target == "-" {
		_, err := fmt.Fprint(cmd.OutOrStdout(), text)
		return err
	}
	if err := os.WriteFile(target, []byte(text), 0644); err != nil {
		return fmt.Errorf("failed to write body: %w", err)
	}
	return nil
}
