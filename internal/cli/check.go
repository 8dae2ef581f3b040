package cli

import (
	"fmt"

	"github.com/artpar/scenarist/internal/interpolate"
	"github.com/spf13/cobra"
)

// ValidateOptions holds options for the validate command.
type ValidateOptions struct {
	BodyOptions
	Strict bool
}

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	opts := &ValidateOptions{}

	cmd := &cobra.Command{
		Use:   "validate FILE",
		Short: "Check the body against the catalog fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEditor(args[0], &opts.BodyOptions, false)
			if err != nil {
				return err
			}

			problems := e.Validate()
			out := cmd.OutOrStdout()
			if len(problems) == 0 {
				fmt.Fprintln(out, "OK")
				return nil
			}
			for _, p := range problems {
				fmt.Fprintln(out, p.Error())
			}
			if opts.Strict {
				return fmt.Errorf("%d field(s) failed validation", len(problems))
			}
			return nil
		},
	}

	addBodyFlags(cmd, &opts.BodyOptions)
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "Exit with an error when validation fails")

	return cmd
}

// RefsOptions holds options for the refs command.
type RefsOptions struct {
	BodyOptions
	Strict bool
}

// NewRefsCommand creates the refs command.
func NewRefsCommand() *cobra.Command {
	opts := &RefsOptions{}

	cmd := &cobra.Command{
		Use:   "refs FILE",
		Short: "List the references bound in the body",
		Long: `List every ${name} reference in the body. References whose name is not
given with --refs are marked unresolved.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEditor(args[0], &opts.BodyOptions, false)
			if err != nil {
				return err
			}

			ns := e.Namespace()
			out := cmd.OutOrStdout()
			for _, b := range interpolate.Extract(e.Document()) {
				status := "ok"
				if !ns.Has(b.Name) {
					status = "unresolved"
				}
				fmt.Fprintf(out, "%s\t%s\t%s\n", b.Path, interpolate.Format(b.Name), status)
			}

			unresolved := e.UnresolvedReferences()
			if opts.Strict && len(unresolved) > 0 {
				return fmt.Errorf("%d unresolved reference(s)", len(unresolved))
			}
			return nil
		},
	}

	addBodyFlags(cmd, &opts.BodyOptions)
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "Exit with an error on unresolved references")

	return cmd
}
