package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
)

// ExportOptions holds options for the export command.
type ExportOptions struct {
	BodyOptions
	Clipboard bool
}

// NewExportCommand creates the export command.
func NewExportCommand() *cobra.Command {
	opts := &ExportOptions{}

	cmd := &cobra.Command{
		Use:   "export FILE",
		Short: "Print the body as canonical JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEditor(args[0], &opts.BodyOptions, false)
			if err != nil {
				return err
			}
			text := e.Export()
			if opts.Clipboard {
				if err := clipboard.WriteAll(text); err != nil {
					return fmt.Errorf("failed to copy to clipboard: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Copied body to clipboard")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}

	addBodyFlags(cmd, &opts.BodyOptions)
	cmd.Flags().BoolVar(&opts.Clipboard, "clipboard", false, "Copy to the clipboard instead of printing")

	return cmd
}

// ImportOptions holds options for the import command.
type ImportOptions struct {
	BodyOptions
	Clipboard bool
}

// NewImportCommand creates the import command.
func NewImportCommand() *cobra.Command {
	opts := &ImportOptions{}

	cmd := &cobra.Command{
		Use:   "import FILE [SOURCE]",
		Short: "Replace the body with JSON text",
		Long: `Replace the body with JSON read from SOURCE (- or omitted for stdin,
or --clipboard). The body file is left untouched when the JSON is invalid.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readSource(cmd, args[1:], opts.Clipboard)
			if err != nil {
				return err
			}
			e, err := openEditor(args[0], &opts.BodyOptions, false)
			if err != nil {
				return err
			}
			if err := e.Import(text); err != nil {
				return err
			}
			return writeBody(cmd, args[0], &opts.BodyOptions, e)
		},
	}

	addBodyFlags(cmd, &opts.BodyOptions)
	cmd.Flags().BoolVar(&opts.Clipboard, "clipboard", false, "Read JSON from the clipboard")

	return cmd
}

func readSource(cmd *cobra.Command, args []string, fromClipboard bool) (string, error) {
	if fromClipboard {
		text, err := clipboard.ReadAll()
		if err != nil {
			return "", fmt.Errorf("failed to read clipboard: %w", err)
		}
		return text, nil
	}
	if len(args) == 0 || args[0] == "-" {
		content, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(content), nil
	}
	content, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("failed to read source: %w", err)
	}
	return string(content), nil
}
