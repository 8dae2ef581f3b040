package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/artpar/scenarist/internal/transfer"
	"github.com/spf13/cobra"
)

// NewFieldsCommand creates the fields command.
func NewFieldsCommand() *cobra.Command {
	opts := &BodyOptions{}

	cmd := &cobra.Command{
		Use:   "fields",
		Short: "List the catalog fields of an endpoint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, endpoint, err := loadCatalog(opts)
			if err != nil {
				return err
			}
			if c == nil {
				return fmt.Errorf("--catalog is required")
			}
			fields, err := c.Fields(endpoint)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "PATH\tTYPE\tREQUIRED\tVALUES")
			for _, d := range fields {
				fmt.Fprintf(w, "%s\t%s\t%t\t%s\n", d.Path, d.Type, d.Required, strings.Join(d.Enum, ","))
			}
			return w.Flush()
		},
	}

	addBodyFlags(cmd, opts)
	return cmd
}

// DefaultsOptions holds options for the defaults command.
type DefaultsOptions struct {
	BodyOptions
	Sample bool
}

// NewDefaultsCommand creates the defaults command.
func NewDefaultsCommand() *cobra.Command {
	opts := &DefaultsOptions{}

	cmd := &cobra.Command{
		Use:   "defaults FILE",
		Short: "Fill required catalog fields with default values",
		Long: `Fill every required catalog field that has no value with the default
for its type. With --sample every catalog field gets a random value.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEditor(args[0], &opts.BodyOptions, false)
			if err != nil {
				return err
			}

			var filled []string
			if opts.Sample {
				filled = e.Randomize()
			} else {
				filled = e.ApplyRequired()
			}
			if err := writeBody(cmd, args[0], &opts.BodyOptions, e); err != nil {
				return err
			}
			if opts.Out != "-" {
				for _, p := range filled {
					fmt.Fprintf(cmd.OutOrStdout(), "filled %s\n", p)
				}
			}
			return nil
		},
	}

	addBodyFlags(cmd, &opts.BodyOptions)
	cmd.Flags().BoolVar(&opts.Sample, "sample", false, "Fill every field with a random sample value")

	return cmd
}

// TemplateOptions holds options for the template command.
type TemplateOptions struct {
	BodyOptions
	Into string
}

// NewTemplateCommand creates the template command.
func NewTemplateCommand() *cobra.Command {
	opts := &TemplateOptions{}

	cmd := &cobra.Command{
		Use:   "template [NAME]",
		Short: "List body templates, or print one",
		Long: `List the body templates of an endpoint, or print one. With --into the
template replaces the body in FILE instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTemplate(cmd, args, opts)
		},
	}

	addBodyFlags(cmd, &opts.BodyOptions)
	cmd.Flags().StringVar(&opts.Into, "into", "", "Load the template into this body file")

	return cmd
}

func runTemplate(cmd *cobra.Command, args []string, opts *TemplateOptions) error {
	c, endpoint, err := loadCatalog(&opts.BodyOptions)
	if err != nil {
		return err
	}
	if c == nil {
		return fmt.Errorf("--catalog is required")
	}

	out := cmd.OutOrStdout()
	if len(args) == 0 {
		for _, name := range c.TemplateNames(endpoint) {
			fmt.Fprintln(out, name)
		}
		return nil
	}

	body, err := c.Template(endpoint, args[0])
	if err != nil {
		return err
	}
	if opts.Into == "" {
		fmt.Fprintln(out, transfer.Export(body))
		return nil
	}

	e, err := openEditor(opts.Into, &opts.BodyOptions, false)
	if err != nil {
		return err
	}
	e.LoadTemplate(body)
	return writeBody(cmd, opts.Into, &opts.BodyOptions, e)
}
