package cli

import (
	"fmt"

	"github.com/artpar/scenarist/internal/document"
	"github.com/artpar/scenarist/internal/transfer"
	"github.com/spf13/cobra"
)

// GetOptions holds options for the get command.
type GetOptions struct {
	BodyOptions
	Query bool
}

// NewGetCommand creates the get command.
func NewGetCommand() *cobra.Command {
	opts := &GetOptions{}

	cmd := &cobra.Command{
		Use:   "get FILE PATH",
		Short: "Print the value at a path",
		Long: `Print the value at a path. With --query, PATH is a JSONPath expression
such as $.items[*].id and every match is printed on its own line.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(cmd, args[0], args[1], opts)
		},
	}

	addBodyFlags(cmd, &opts.BodyOptions)
	cmd.Flags().BoolVarP(&opts.Query, "query", "q", false, "Treat PATH as a JSONPath expression")

	return cmd
}

func runGet(cmd *cobra.Command, file, path string, opts *GetOptions) error {
	e, err := openEditor(file, &opts.BodyOptions, false)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if opts.Query {
		values, err := transfer.Query(e.Document(), path)
		if err != nil {
			return err
		}
		for _, v := range values {
			fmt.Fprintln(out, transfer.ExportValue(v))
		}
		return nil
	}

	v, ok, err := e.Get(path)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("no value at %s", path)
	}
	fmt.Fprintln(out, transfer.ExportValue(v))
	return nil
}

// SetOptions holds options for the set command.
type SetOptions struct {
	BodyOptions
	JSON   bool
	Strict bool
}

// NewSetCommand creates the set command.
func NewSetCommand() *cobra.Command {
	opts := &SetOptions{}

	cmd := &cobra.Command{
		Use:   "set FILE PATH VALUE",
		Short: "Set the value at a path",
		Long: `Set the value at a path, creating missing parents.

Values for catalog fields are converted to the field type. Use --json to
pass VALUE as a JSON literal instead of a string.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSet(cmd, args[0], args[1], args[2], opts)
		},
	}

	addBodyFlags(cmd, &opts.BodyOptions)
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Parse VALUE as JSON")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "Reject values that fail field validation")

	return cmd
}

func runSet(cmd *cobra.Command, file, path, value string, opts *SetOptions) error {
	e, err := openEditor(file, &opts.BodyOptions, false)
	if err != nil {
		return err
	}

	var raw document.Value = document.String(value)
	if opts.JSON {
		raw, err = transfer.ParseValue(value)
		if err != nil {
			return err
		}
	}
	if opts.Strict {
		if verr := e.Check(path, raw); verr != nil {
			return verr
		}
	}

	if err := e.SetValue(path, raw); err != nil {
		return err
	}
	return writeBody(cmd, file, &opts.BodyOptions, e)
}

// NewToggleCommand creates the toggle command.
func NewToggleCommand() *cobra.Command {
	opts := &BodyOptions{}

	cmd := &cobra.Command{
		Use:   "toggle FILE PATH",
		Short: "Add a field with its default value, or remove it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEditor(args[0], opts, false)
			if err != nil {
				return err
			}
			selected, err := e.Toggle(args[1])
			if err != nil {
				return err
			}
			if err := writeBody(cmd, args[0], opts, e); err != nil {
				return err
			}
			if opts.Out != "-" {
				state := "removed"
				if selected {
					state = "added"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", state, args[1])
			}
			return nil
		},
	}

	addBodyFlags(cmd, opts)
	return cmd
}

// RefOptions holds options for the ref command.
type RefOptions struct {
	BodyOptions
	Strict bool
}

// NewRefCommand creates the ref command.
func NewRefCommand() *cobra.Command {
	opts := &RefOptions{}

	cmd := &cobra.Command{
		Use:   "ref FILE PATH NAME",
		Short: "Bind a path to a reference like ${NAME}",
		Long: `Bind a path to the reference ${NAME}. NAME is a step's save-as name,
optionally followed by a property (createUser.data.id).`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEditor(args[0], &opts.BodyOptions, opts.Strict)
			if err != nil {
				return err
			}
			if err := e.SetReference(args[1], args[2]); err != nil {
				return err
			}
			return writeBody(cmd, args[0], &opts.BodyOptions, e)
		},
	}

	addBodyFlags(cmd, &opts.BodyOptions)
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "Reject names missing from --refs")

	return cmd
}
