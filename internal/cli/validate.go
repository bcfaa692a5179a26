package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quillhw/omir/internal/emit"
	"github.com/quillhw/omir/internal/loader"
)

// ValidateOptions holds flags for the validate command.
type ValidateOptions struct {
	*RootOptions
}

// ValidateResult is the data payload of a validate run.
type ValidateResult struct {
	Circuit     string   `json:"circuit"`
	Valid       bool     `json:"valid"`
	Diagnostics []string `json:"diagnostics,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValidateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "validate <design-bundle>",
		Short: "Check a design bundle's OMIR annotations without emitting",
		Long: `Check a design bundle's OMIR annotations without emitting.

Runs the full emission stage against an in-memory sink: the bundle is
parsed, annotations are collected, and every node tree is serialized, but
no file is written and no artifact is produced.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(opts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *ValidateOptions, bundlePath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	_, circuit, err := loader.LoadFile(bundlePath)
	if err != nil {
		return fail(formatter, "LOAD_ERROR", err.Error())
	}

	// Force serialization with a throwaway override so annotation-less
	// bundles still get their node trees checked. The artifact is discarded.
	_, diags, err := emit.Run(circuit, emit.Options{OutputFilename: "-"})
	result := &ValidateResult{
		Circuit:     circuit.Name,
		Valid:       err == nil,
		Diagnostics: diagStrings(diags),
	}

	if err != nil {
		printDiagnostics(formatter, diags)
		_ = formatter.Error("INVALID", fmt.Sprintf("%d problem(s) found", len(diags)), result)
		return fmt.Errorf("validation failed with %d problem(s)", len(diags))
	}

	if err := formatter.Success(result); err != nil {
		return err
	}
	if formatter.Format == "text" {
		fmt.Fprintf(formatter.Writer, "✓ %s: OMIR annotations are valid\n", circuit.Name)
	}
	return nil
}
